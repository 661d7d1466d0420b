package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"

	"options-maker-go/config"
	"options-maker-go/infrastructure/logger"
	"options-maker-go/metrics"
	"options-maker-go/monitor"
	"options-maker-go/sim"
)

// 配置驱动的模拟入口：加载 YAML，启动指标与监控端口，
// 支持价差参数热更新，运行完整模拟后输出终值报告。
func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config")
	flag.Parse()

	cfg, err := config.LoadWithEnvOverrides(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Close() }()

	if cfg.Metrics.Enabled {
		metrics.StartMetricsServer(cfg.Metrics.Addr)
		log.Info("metrics server started")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var pub *monitor.Publisher
	if cfg.Monitor.Enabled {
		pub = monitor.NewPublisher()
		stream := monitor.NewStream()
		stream.Pump(ctx, pub)
		mux := http.NewServeMux()
		mux.Handle("/stream", stream)
		go func() {
			_ = http.ListenAndServe(cfg.Monitor.Addr, mux)
		}()
		log.Info("monitor stream started")
	}

	runner, err := sim.FromConfig(cfg, log, pub)
	if err != nil {
		log.LogError(err, map[string]interface{}{"stage": "build runner"})
		os.Exit(1)
	}

	// 价差参数热更新
	watcher, err := config.NewWatcher(*configPath, 2*time.Second)
	if err == nil {
		defer func() { _ = watcher.Close() }()
		_ = watcher.Start(ctx, func(next config.AppConfig) {
			if next.Strategy.BaseAbs > 0 {
				runner.Desk.SetSpreadParams(sim.SpreadParamsFromConfig(next.Strategy))
				log.Info("spread params reloaded")
			}
		})
	}

	_, _ = daemon.SdNotify(false, daemon.SdNotifyReady)

	report, err := runner.Run(cfg.Sim.Steps)
	if err != nil {
		log.LogError(err, map[string]interface{}{"stage": "run"})
		os.Exit(1)
	}
	fmt.Printf("steps=%d cash=%.2f book=%.2f pnl=%.2f\n", report.Steps, report.Cash, report.BookValue, report.PnL)

	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)
}
