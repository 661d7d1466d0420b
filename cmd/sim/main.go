package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"options-maker-go/infrastructure/logger"
	"options-maker-go/instrument"
	"options-maker-go/sim"
	"options-maker-go/strategy"
)

// 一个极简的本地模拟：单一标的随机游走，围绕平值挂一组 call/put，
// 驱动报价->撮合->对冲链路。可通过命令行参数调整，仅用于演示。
func main() {
	steps := flag.Int("steps", 20, "number of simulation steps")
	seed := flag.Int64("seed", 0, "rng seed (0 = time-based)")
	valuation := flag.Float64("valuation", 100, "initial underlying valuation")
	upStep := flag.Float64("upStep", 1, "up move step")
	downStep := flag.Float64("downStep", 1, "down move step")
	noise := flag.Float64("noise", 0.1, "per-step noise std dev")
	fillProb := flag.Float64("fillProb", 0.3, "per-option fill probability per step")
	flag.Parse()

	u, err := instrument.NewUnderlying(1, "SIM", *valuation, 0.5, *upStep, 0.5, *downStep, *noise)
	if err != nil {
		fmt.Fprintf(os.Stderr, "underlying: %v\n", err)
		os.Exit(1)
	}

	strike := int(*valuation)
	call, _ := instrument.OptionFromUnderlying(u, 1, instrument.Call, *steps, strike)
	put, _ := instrument.OptionFromUnderlying(u, 2, instrument.Put, *steps, strike)

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	runner := &sim.Runner{
		Underlyings:     []instrument.Underlying{u},
		Options:         []instrument.Option{call, put},
		FillProbability: *fillProb,
		Rng:             rand.New(rand.NewSource(*seed)),
		Log:             logger.Nop(),
	}

	execute := func(underlyingID int, quantity float64) error {
		for _, cur := range runner.Underlyings {
			if cur.ID == underlyingID {
				runner.RecordCash(-quantity * cur.Valuation)
				fmt.Printf("  hedge underlying=%d qty=%+.0f @ %.2f\n", underlyingID, quantity, cur.Valuation)
				return nil
			}
		}
		return fmt.Errorf("unknown underlying %d", underlyingID)
	}

	desk, err := strategy.NewDesk(strategy.DeskConfig{Name: "sim-desk"}, instrument.NewBook(runner.Underlyings, runner.Options), execute, nil, logger.Nop())
	if err != nil {
		fmt.Fprintf(os.Stderr, "desk: %v\n", err)
		os.Exit(1)
	}
	runner.Desk = desk

	for i := 0; i < *steps; i++ {
		if err := runner.Step(); err != nil {
			fmt.Fprintf(os.Stderr, "step %d: %v\n", i, err)
			os.Exit(1)
		}
		fmt.Printf("step %d valuation=%.2f\n", i+1, runner.Underlyings[0].Valuation)
	}
	report, err := runner.Finish()
	if err != nil {
		fmt.Fprintf(os.Stderr, "report: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("cash=%.2f book=%.2f pnl=%.2f\n", report.Cash, report.BookValue, report.PnL)
}
