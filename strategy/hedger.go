package strategy

import (
	"math"

	"options-maker-go/metrics"
	"options-maker-go/pricing"
)

// HedgeParams 对冲参数。
type HedgeParams struct {
	DeadBand float64 // 净 delta 容忍带宽，超出才触发对冲
}

// DefaultHedgeParams 返回基准参数。
func DefaultHedgeParams() HedgeParams {
	return HedgeParams{DeadBand: 0.1}
}

// Rebalance 对冲一轮：聚合各标的净 delta 敞口，超出带宽的部分
// 一次性（非部分）对冲回带宽边缘。同步执行，无跨标的回滚：
// 某个标的执行失败时，已发出的其他对冲交易保持不变。
func (d *Desk) Rebalance() error {
	band := d.cfg.Hedge.DeadBand

	// 直接持有的标的每单位贡献 delta 1
	netDelta := make(map[int]float64)
	for id, qty := range d.position.UnderlyingQuantities() {
		netDelta[id] = qty
	}

	// 持仓期权的 delta 贡献，对最新快照重新估计
	for _, o := range d.book.Options {
		qty := d.position.OptionQuantity(o.ID)
		if qty == 0 {
			continue
		}
		u, err := d.book.UnderlyingFor(o)
		if err != nil {
			return err
		}
		greeks := pricing.EstimateGreeks(o, u)
		netDelta[o.UnderlyingID] += float64(qty) * greeks.Delta
	}

	for underlyingID, delta := range netDelta {
		u, err := d.book.UnderlyingByID(underlyingID)
		if err != nil {
			return err
		}
		metrics.UpdateHedgeMetrics(u.Name, delta)
		if math.Abs(delta) <= band {
			continue
		}

		// 只回冲带宽以外的超额部分
		edge := band
		if delta < 0 {
			edge = -band
		}
		excess := delta - edge
		tradeQty := math.Round(-excess)
		if tradeQty == 0 {
			continue
		}

		if tradeQty > 0 {
			if err := d.BuyUnderlying(underlyingID, tradeQty); err != nil {
				return err
			}
			metrics.RecordHedgeTrade("buy")
		} else {
			if err := d.SellUnderlying(underlyingID, -tradeQty); err != nil {
				return err
			}
			metrics.RecordHedgeTrade("sell")
		}
		d.log.LogHedge(underlyingID, tradeQty, delta)
	}
	return nil
}
