// Package sim is the driving loop around the decision core: it advances
// the random walk, hits quotes with a simple taker model and delivers
// snapshot replacements to the desk. The core itself does no I/O.
package sim

import (
	"errors"
	"math/rand"

	"go.uber.org/zap"

	"options-maker-go/infrastructure/logger"
	"options-maker-go/instrument"
	"options-maker-go/metrics"
	"options-maker-go/monitor"
	"options-maker-go/pricing"
	"options-maker-go/strategy"
)

// Runner 将随机游走、报价、成交与对冲串起来的本地模拟驱动。
// 所有回调都在 Step 内同步完成，下一步开始前上一步必定结束。
type Runner struct {
	Desk            *strategy.Desk
	Underlyings     []instrument.Underlying
	Options         []instrument.Option
	FillProbability float64 // 每步每张期权被打一侧的概率
	Rng             *rand.Rand
	Log             *logger.Logger
	Pub             *monitor.Publisher // 可选事件分发

	step int
	cash float64 // 成交现金流，用于最终 PnL 标记
}

// Report 一次模拟运行的终值。
type Report struct {
	Steps     int
	Cash      float64
	BookValue float64 // 终局 mark-to-model
	PnL       float64
}

// RecordCash 外部成交的现金流入（卖出为正、买入为负）。
// 对冲执行回调通过它把成交计入现金账。
func (r *Runner) RecordCash(amount float64) {
	r.cash += amount
}

// Step 推进一个模拟步：报价->撮合->随机游走->快照替换（触发对冲）。
func (r *Runner) Step() error {
	if r.Desk == nil || r.Rng == nil {
		return errors.New("runner not initialized")
	}

	// 对每张活跃期权做市；随机打掉一侧
	for _, o := range r.Options {
		q, err := r.Desk.Quote(o)
		if err != nil {
			return err
		}
		if r.Pub != nil {
			r.Pub.PublishQuote(monitor.QuoteEvent{
				Step:   r.step,
				Option: o.String(),
				Bid:    q.Bid,
				Offer:  q.Offer,
			})
		}
		if r.Rng.Float64() >= r.FillProbability {
			continue
		}
		if r.Rng.Float64() < 0.5 {
			r.Desk.OnBidHit(o, q.Bid)
			r.cash -= q.Bid
		} else {
			r.Desk.OnOfferHit(o, q.Offer)
			r.cash += q.Offer
		}
	}

	// 整体替换快照：标的走一步，期权剩余步数减一，到期合约出场
	next := make([]instrument.Underlying, len(r.Underlyings))
	for i, u := range r.Underlyings {
		next[i] = u.AdvanceStep(r.Rng)
	}
	nextOpts := make([]instrument.Option, 0, len(r.Options))
	for _, o := range r.Options {
		if o.StepsUntilExpiry == 0 {
			continue
		}
		nextOpts = append(nextOpts, o.AdvanceStep())
	}
	r.Underlyings = next
	r.Options = nextOpts
	r.step++

	if err := r.Desk.OnStepAdvance(next, nextOpts); err != nil {
		return err
	}
	if r.Log != nil {
		r.Log.Debug("sim_step_advanced",
			zap.Int("step", r.step),
			zap.Int("active_options", len(nextOpts)),
		)
	}

	metrics.SimSteps.Inc()
	for _, u := range next {
		metrics.UpdateMarketMetrics(u.Name, u.Valuation, r.Desk.Position().UnderlyingQuantity(u.ID))
		if r.Pub != nil {
			r.Pub.PublishMark(monitor.MarkEvent{
				Step:       r.step,
				Underlying: u.Name,
				Valuation:  u.Valuation,
			})
		}
	}
	return nil
}

// Run 连续推进 steps 步并返回终值报告。
func (r *Runner) Run(steps int) (Report, error) {
	for i := 0; i < steps; i++ {
		if err := r.Step(); err != nil {
			return Report{}, err
		}
	}
	return r.Finish()
}

// Finish 按当前快照结算持仓并生成终值报告。
func (r *Runner) Finish() (Report, error) {
	book := instrument.NewBook(r.Underlyings, r.Options)
	value, err := r.Desk.Position().Valuation(book, pricing.Price)
	if err != nil {
		return Report{}, err
	}
	metrics.BookValuation.Set(value)
	return Report{
		Steps:     r.step,
		Cash:      r.cash,
		BookValue: value,
		PnL:       r.cash + value,
	}, nil
}
