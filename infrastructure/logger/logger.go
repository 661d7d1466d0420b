package logger

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger 封装zap日志器，提供结构化日志功能
type Logger struct {
	*zap.Logger
	config Config
}

// Config 日志配置
type Config struct {
	Level      string   `yaml:"level"`       // debug, info, warn, error
	Outputs    []string `yaml:"outputs"`     // stdout, file
	OutputFile string   `yaml:"output_file"` // 日志文件路径
	Format     string   `yaml:"format"`      // json 或 console
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Level:   "info",
		Outputs: []string{"stdout"},
		Format:  "json",
	}
}

// New 创建新的Logger实例
func New(cfg Config) (*Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %s: %w", cfg.Level, err)
	}

	var encoderConfig zapcore.EncoderConfig
	if cfg.Format == "console" {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	cores := []zapcore.Core{}

	if contains(cfg.Outputs, "stdout") {
		var encoder zapcore.Encoder
		if cfg.Format == "console" {
			encoder = zapcore.NewConsoleEncoder(encoderConfig)
		} else {
			encoder = zapcore.NewJSONEncoder(encoderConfig)
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level))
	}

	if contains(cfg.Outputs, "file") && cfg.OutputFile != "" {
		fileWriter, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file failed: %w", err)
		}
		encoder := zapcore.NewJSONEncoder(encoderConfig)
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(fileWriter), level))
	}

	core := zapcore.NewTee(cores...)
	zapLogger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	return &Logger{
		Logger: zapLogger,
		config: cfg,
	}, nil
}

// Nop 返回丢弃所有输出的Logger，测试或未注入时使用。
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// LogQuote 记录报价事件
func (l *Logger) LogQuote(option string, bid, offer, fair float64) {
	l.Info("quote_event",
		zap.String("option", option),
		zap.Float64("bid", bid),
		zap.Float64("offer", offer),
		zap.Float64("fair", fair),
		zap.String("ts", time.Now().UTC().Format(time.RFC3339Nano)),
	)
}

// LogFill 记录被动成交事件
func (l *Logger) LogFill(side string, option string, price float64, qty int) {
	l.Info("fill_event",
		zap.String("side", side),
		zap.String("option", option),
		zap.Float64("price", price),
		zap.Int("qty", qty),
		zap.String("ts", time.Now().UTC().Format(time.RFC3339Nano)),
	)
}

// LogHedge 记录对冲成交事件
func (l *Logger) LogHedge(underlyingID int, qty, netDelta float64) {
	l.Info("hedge_event",
		zap.Int("underlying_id", underlyingID),
		zap.Float64("qty", qty),
		zap.Float64("net_delta", netDelta),
		zap.String("ts", time.Now().UTC().Format(time.RFC3339Nano)),
	)
}

// LogError 记录错误并附带上下文
func (l *Logger) LogError(err error, context map[string]interface{}) {
	fields := make([]zap.Field, 0, len(context)+2)
	for k, v := range context {
		fields = append(fields, zap.Any(k, v))
	}
	fields = append(fields,
		zap.Error(err),
		zap.String("ts", time.Now().UTC().Format(time.RFC3339Nano)),
	)
	l.Error("error_event", fields...)
}

// Close 关闭日志器
func (l *Logger) Close() error {
	return l.Sync()
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
