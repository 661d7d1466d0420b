package inventory

import (
	"math"
	"sync"
)

// Position 持仓台账：期权按整数数量、标的按两位小数数量记账。
// 由策略实例独占持有，随成交/对冲事件增量更新，运行期间不会重置。
type Position struct {
	mu            sync.RWMutex
	optionQty     map[int]int
	underlyingQty map[int]float64
}

func NewPosition() *Position {
	return &Position{
		optionQty:     make(map[int]int),
		underlyingQty: make(map[int]float64),
	}
}

// AddOptionQuantity 按成交方向调整期权持仓。
func (p *Position) AddOptionQuantity(optionID, quantity int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.optionQty[optionID] += quantity
}

// AddUnderlyingQuantity 调整标的持仓，增量先取两位小数再入账。
func (p *Position) AddUnderlyingQuantity(underlyingID int, quantity float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.underlyingQty[underlyingID] += math.Round(quantity*100) / 100
}

// OptionQuantity 当前期权持仓。
func (p *Position) OptionQuantity(optionID int) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.optionQty[optionID]
}

// UnderlyingQuantity 当前标的持仓。
func (p *Position) UnderlyingQuantity(underlyingID int) float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.underlyingQty[underlyingID]
}

// UnderlyingQuantities 标的持仓快照（拷贝，调用方可安全遍历）。
func (p *Position) UnderlyingQuantities() map[int]float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[int]float64, len(p.underlyingQty))
	for id, q := range p.underlyingQty {
		out[id] = q
	}
	return out
}

// OptionQuantities 期权持仓快照（拷贝）。
func (p *Position) OptionQuantities() map[int]int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[int]int, len(p.optionQty))
	for id, q := range p.optionQty {
		out[id] = q
	}
	return out
}
