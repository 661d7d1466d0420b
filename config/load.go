package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"options-maker-go/infrastructure/logger"
)

// AppConfig holds the main runtime configuration.
type AppConfig struct {
	Env         string             `yaml:"env"`
	Log         logger.Config      `yaml:"log"`
	Metrics     MetricsConfig      `yaml:"metrics"`
	Monitor     MonitorConfig      `yaml:"monitor"`
	Sim         SimConfig          `yaml:"sim"`
	Strategy    StrategyParams     `yaml:"strategy"`
	Underlyings []UnderlyingConfig `yaml:"underlyings"`
	Options     []OptionConfig     `yaml:"options"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// MonitorConfig 行情/报价事件的 websocket 监控端口。
type MonitorConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// SimConfig 模拟驱动参数。
type SimConfig struct {
	Steps           int     `yaml:"steps"`           // 模拟步数
	Seed            int64   `yaml:"seed"`            // 随机种子（0 表示按时间）
	FillProbability float64 `yaml:"fillProbability"` // 每步每侧被打的概率
}

// StrategyParams 做市策略可调参数。
type StrategyParams struct {
	Name         string  `yaml:"name"`
	BaseAbs      float64 `yaml:"baseAbs"`      // 基础绝对价差
	BasePct      float64 `yaml:"basePct"`      // 基础比例价差
	JumpCoeff    float64 `yaml:"jumpCoeff"`    // 跳动加成系数
	DeltaCoeff   float64 `yaml:"deltaCoeff"`   // delta 风险系数
	GammaCoeff   float64 `yaml:"gammaCoeff"`   // gamma 风险系数
	TimeStrength float64 `yaml:"timeStrength"` // 到期加宽强度
	CalmCap      float64 `yaml:"calmCap"`      // 平静行情价差上限
	MinSpread    float64 `yaml:"minSpread"`    // 价差下限
	MaxAbs       float64 `yaml:"maxAbs"`       // 价差上限绝对部分
	MaxPct       float64 `yaml:"maxPct"`       // 价差上限比例部分
	ExpiryTiny   float64 `yaml:"expiryTiny"`   // 到期报价加减量
	DeadBand     float64 `yaml:"deadBand"`     // 对冲带宽
	NetMax       float64 `yaml:"netMax"`       // 对冲后净持仓硬限额（0 不限制）
}

type UnderlyingConfig struct {
	ID        int     `yaml:"id"`
	Name      string  `yaml:"name"`
	Valuation float64 `yaml:"valuation"`
	UpProb    float64 `yaml:"upProb"`
	UpStep    float64 `yaml:"upStep"`
	DownProb  float64 `yaml:"downProb"`
	DownStep  float64 `yaml:"downStep"`
	Noise     float64 `yaml:"noise"`
}

type OptionConfig struct {
	ID           int    `yaml:"id"`
	Kind         string `yaml:"kind"` // call | put
	Steps        int    `yaml:"steps"`
	Strike       int    `yaml:"strike"`
	UnderlyingID int    `yaml:"underlyingId"`
}

// Load reads YAML config from path and applies basic validation.
func Load(path string) (AppConfig, error) {
	var cfg AppConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadWithEnvOverrides loads config then overrides selected fields from env vars.
func LoadWithEnvOverrides(path string) (AppConfig, error) {
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}
	if v := os.Getenv("OM_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("OM_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	return cfg, Validate(cfg)
}

// Validate ensures required fields are present.
// 标的的构造期不变量（步长、概率、漂移）由 instrument 构造器强制，
// 这里只做配置面的早期检查，保证错误在启动时而不是第一步定价时暴露。
func Validate(cfg AppConfig) error {
	if cfg.Env == "" {
		return errors.New("env is required")
	}
	if cfg.Sim.Steps <= 0 {
		return errors.New("sim.steps must be > 0")
	}
	if cfg.Sim.FillProbability < 0 || cfg.Sim.FillProbability > 1 {
		return errors.New("sim.fillProbability must be within [0,1]")
	}
	if len(cfg.Underlyings) == 0 {
		return errors.New("underlyings config is required")
	}
	seen := make(map[int]bool, len(cfg.Underlyings))
	for _, u := range cfg.Underlyings {
		if u.Name == "" {
			return fmt.Errorf("underlying %d: name is required", u.ID)
		}
		if seen[u.ID] {
			return fmt.Errorf("underlying %d: duplicate id", u.ID)
		}
		seen[u.ID] = true
		if u.UpStep <= 0 || u.DownStep <= 0 {
			return fmt.Errorf("underlying %s: upStep/downStep must be > 0", u.Name)
		}
		if u.UpProb <= 0 || u.DownProb <= 0 {
			return fmt.Errorf("underlying %s: upProb/downProb must be > 0", u.Name)
		}
	}
	for _, o := range cfg.Options {
		if o.Kind != "call" && o.Kind != "put" {
			return fmt.Errorf("option %d: kind must be call or put", o.ID)
		}
		if o.Steps < 0 {
			return fmt.Errorf("option %d: steps must be >= 0", o.ID)
		}
		if !seen[o.UnderlyingID] {
			return fmt.Errorf("option %d: unknown underlyingId %d", o.ID, o.UnderlyingID)
		}
	}
	return nil
}
