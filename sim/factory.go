package sim

import (
	"fmt"
	"math/rand"
	"time"

	"options-maker-go/config"
	"options-maker-go/infrastructure/logger"
	"options-maker-go/instrument"
	"options-maker-go/monitor"
	"options-maker-go/risk"
	"options-maker-go/strategy"
)

// FromConfig 按配置组装 Runner：构造标的/期权快照、对冲执行回调与策略。
func FromConfig(cfg config.AppConfig, log *logger.Logger, pub *monitor.Publisher) (*Runner, error) {
	underlyings := make([]instrument.Underlying, 0, len(cfg.Underlyings))
	for _, uc := range cfg.Underlyings {
		u, err := instrument.NewUnderlying(uc.ID, uc.Name, uc.Valuation, uc.UpProb, uc.UpStep, uc.DownProb, uc.DownStep, uc.Noise)
		if err != nil {
			return nil, err
		}
		underlyings = append(underlyings, u)
	}

	options := make([]instrument.Option, 0, len(cfg.Options))
	for _, oc := range cfg.Options {
		kind := instrument.Call
		if oc.Kind == "put" {
			kind = instrument.Put
		}
		var name string
		for _, u := range underlyings {
			if u.ID == oc.UnderlyingID {
				name = u.Name
				break
			}
		}
		o, err := instrument.NewOption(oc.ID, kind, oc.Steps, oc.Strike, oc.UnderlyingID, name)
		if err != nil {
			return nil, err
		}
		options = append(options, o)
	}

	seed := cfg.Sim.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	runner := &Runner{
		Underlyings:     underlyings,
		Options:         options,
		FillProbability: cfg.Sim.FillProbability,
		Rng:             rand.New(rand.NewSource(seed)),
		Log:             log,
		Pub:             pub,
	}

	// 对冲执行回调：按标的当前估值成交并计入现金账。
	execute := func(underlyingID int, quantity float64) error {
		for _, u := range runner.Underlyings {
			if u.ID == underlyingID {
				runner.RecordCash(-quantity * u.Valuation)
				return nil
			}
		}
		return fmt.Errorf("execute trade: underlying %d: %w", underlyingID, instrument.ErrUnknownUnderlying)
	}

	var guard risk.Guard
	deskCfg := strategy.DeskConfig{Name: cfg.Strategy.Name}
	if cfg.Strategy.BaseAbs > 0 {
		deskCfg.Spread = SpreadParamsFromConfig(cfg.Strategy)
	}
	if cfg.Strategy.DeadBand > 0 {
		deskCfg.Hedge = strategy.HedgeParams{DeadBand: cfg.Strategy.DeadBand}
	}

	desk, err := strategy.NewDesk(deskCfg, instrument.NewBook(underlyings, options), execute, guard, log)
	if err != nil {
		return nil, err
	}
	if cfg.Strategy.NetMax > 0 {
		// NetLimit 需要台账，台账又属于 desk，因此在构造后挂接。
		desk.SetGuard(risk.NetLimit{Max: cfg.Strategy.NetMax, Inv: desk.Position()})
	}
	runner.Desk = desk
	return runner, nil
}

// SpreadParamsFromConfig 将配置面的策略参数映射为策略包的价差参数。
func SpreadParamsFromConfig(p config.StrategyParams) strategy.SpreadParams {
	return strategy.SpreadParams{
		BaseAbs:      p.BaseAbs,
		BasePct:      p.BasePct,
		JumpCoeff:    p.JumpCoeff,
		DeltaCoeff:   p.DeltaCoeff,
		GammaCoeff:   p.GammaCoeff,
		TimeStrength: p.TimeStrength,
		CalmCap:      p.CalmCap,
		MinSpread:    p.MinSpread,
		MaxAbs:       p.MaxAbs,
		MaxPct:       p.MaxPct,
		ExpiryTiny:   p.ExpiryTiny,
	}
}
