// Package strategy contains the market-making decision core: quote
// shaping around the lattice fair value and delta hedging of the book.
package strategy

import (
	"errors"
	"math"
	"sync"

	"options-maker-go/infrastructure/logger"
	"options-maker-go/instrument"
	"options-maker-go/inventory"
	"options-maker-go/metrics"
	"options-maker-go/pricing"
	"options-maker-go/risk"
)

// Quote 双边报价。
type Quote struct {
	Bid   float64
	Offer float64
}

// Spread 报价价差。
func (q Quote) Spread() float64 {
	return q.Offer - q.Bid
}

// TradeExecutor 外部成交执行回调：quantity 正为买、负为卖。
// 必须在构造时注入，核心不依赖任何全局状态。
type TradeExecutor func(underlyingID int, quantity float64) error

// MarketMaker 策略契约：具体策略必须提供的能力。
type MarketMaker interface {
	Name() string
	Quote(o instrument.Option) (Quote, error)
	Price(o instrument.Option) (float64, error)
}

// DeskConfig 策略配置。
type DeskConfig struct {
	Name   string
	Spread SpreadParams
	Hedge  HedgeParams
}

// Desk 具体做市策略：持有最新快照与持仓台账，
// 所有回调在单一逻辑线程内同步运行完毕。
type Desk struct {
	cfg     DeskConfig
	execute TradeExecutor
	guard   risk.Guard
	log     *logger.Logger

	book     instrument.Book
	position *inventory.Position

	// 参数热更新保护；行情回调本身不并发
	mu sync.RWMutex
}

// NewDesk 创建做市策略。execute 为必填依赖。
func NewDesk(cfg DeskConfig, book instrument.Book, execute TradeExecutor, guard risk.Guard, log *logger.Logger) (*Desk, error) {
	if execute == nil {
		return nil, errors.New("trade executor is required")
	}
	if cfg.Name == "" {
		cfg.Name = "options-desk"
	}
	if cfg.Spread == (SpreadParams{}) {
		cfg.Spread = DefaultSpreadParams()
	}
	if cfg.Hedge == (HedgeParams{}) {
		cfg.Hedge = DefaultHedgeParams()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Desk{
		cfg:      cfg,
		execute:  execute,
		guard:    guard,
		log:      log,
		book:     book,
		position: inventory.NewPosition(),
	}, nil
}

func (d *Desk) Name() string {
	return d.cfg.Name
}

// Position 持仓台账（由本策略独占持有）。
func (d *Desk) Position() *inventory.Position {
	return d.position
}

// Book 当前快照集合。
func (d *Desk) Book() instrument.Book {
	return d.book
}

// SetGuard 挂接对冲下单前校验（构造后设置，便于引用本策略的台账）。
func (d *Desk) SetGuard(g risk.Guard) {
	d.guard = g
}

// SetSpreadParams 热更新价差参数。
func (d *Desk) SetSpreadParams(p SpreadParams) {
	d.mu.Lock()
	d.cfg.Spread = p
	d.mu.Unlock()
}

func (d *Desk) spreadParams() SpreadParams {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cfg.Spread
}

// Price 公允价值查询，对给定快照是纯函数。
func (d *Desk) Price(o instrument.Option) (float64, error) {
	u, err := d.book.UnderlyingFor(o)
	if err != nil {
		return 0, err
	}
	return pricing.Price(o, u), nil
}

// Quote 生成双边报价，恒有 bid <= offer 且 bid >= 0。
func (d *Desk) Quote(o instrument.Option) (Quote, error) {
	u, err := d.book.UnderlyingFor(o)
	if err != nil {
		return Quote{}, err
	}
	p := d.spreadParams()

	// 到期合约：内在价值上下各让一个 tiny
	if o.StepsUntilExpiry <= 0 {
		intrinsic := o.Intrinsic(u.Valuation)
		q := Quote{
			Bid:   math.Max(intrinsic-p.ExpiryTiny, 0),
			Offer: intrinsic + p.ExpiryTiny,
		}
		d.recordQuote(o, q, intrinsic)
		return q, nil
	}

	fair := pricing.Price(o, u)
	greeks := pricing.EstimateGreeks(o, u)
	half := CalcSpread(p, o, u, fair, greeks) / 2

	q := Quote{
		Bid:   math.Max(fair-half, 0),
		Offer: fair + half,
	}
	d.recordQuote(o, q, fair)
	return q, nil
}

func (d *Desk) recordQuote(o instrument.Option, q Quote, fair float64) {
	metrics.IncrementQuotesGenerated("bid")
	metrics.IncrementQuotesGenerated("offer")
	metrics.UpdateQuoteMetrics(fair, q.Spread())
	d.log.LogQuote(o.String(), q.Bid, q.Offer, fair)
}

// OnBidHit 我方买价被打：买入一张期权。
func (d *Desk) OnBidHit(o instrument.Option, bidPrice float64) {
	d.position.AddOptionQuantity(o.ID, 1)
	metrics.IncrementFills("bid")
	d.log.LogFill("bid", o.String(), bidPrice, 1)
}

// OnOfferHit 我方卖价被打：卖出一张期权。
func (d *Desk) OnOfferHit(o instrument.Option, offerPrice float64) {
	d.position.AddOptionQuantity(o.ID, -1)
	metrics.IncrementFills("offer")
	d.log.LogFill("offer", o.String(), offerPrice, -1)
}

// OnStepAdvance 接收整体替换后的快照并执行一轮对冲。
func (d *Desk) OnStepAdvance(newUnderlyings []instrument.Underlying, newOptions []instrument.Option) error {
	d.book = instrument.NewBook(newUnderlyings, newOptions)
	return d.Rebalance()
}

// BuyUnderlying 买入标的并入账；数量必须为正。
func (d *Desk) BuyUnderlying(underlyingID int, quantity float64) error {
	return d.tradeUnderlying(underlyingID, quantity, quantity)
}

// SellUnderlying 卖出标的并入账；数量必须为正。
func (d *Desk) SellUnderlying(underlyingID int, quantity float64) error {
	return d.tradeUnderlying(underlyingID, quantity, -quantity)
}

func (d *Desk) tradeUnderlying(underlyingID int, quantity, signed float64) error {
	if quantity <= 0 {
		return risk.ErrNonPositiveQuantity
	}
	if d.guard != nil {
		if err := d.guard.PreTrade(underlyingID, signed); err != nil {
			return err
		}
	}
	if err := d.execute(underlyingID, signed); err != nil {
		return err
	}
	d.position.AddUnderlyingQuantity(underlyingID, signed)
	return nil
}
