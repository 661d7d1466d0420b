package risk

import (
	"errors"
	"fmt"
)

var (
	// ErrNonPositiveQuantity 买/卖指令的数量必须为正，违规请求在触达执行方之前拒绝。
	ErrNonPositiveQuantity = errors.New("trade quantity must be positive")
	// ErrNetExceed 对冲后净敞口超出硬限额。
	ErrNetExceed = errors.New("net exposure exceed")
)

// Guard 对冲下单前校验的通用接口。
type Guard interface {
	PreTrade(underlyingID int, deltaQty float64) error
}

// MultiGuard 顺序执行多个 Guard，任一返回错误则中止。
type MultiGuard struct {
	Guards []Guard
}

func (m MultiGuard) PreTrade(underlyingID int, deltaQty float64) error {
	for _, g := range m.Guards {
		if g == nil {
			continue
		}
		if err := g.PreTrade(underlyingID, deltaQty); err != nil {
			return err
		}
	}
	return nil
}

// Inventory 提供标的净持仓。
type Inventory interface {
	UnderlyingQuantity(underlyingID int) float64
}

// NetLimit 校验对冲后净持仓不超过硬限额（0 表示不限制）。
type NetLimit struct {
	Max float64
	Inv Inventory
}

func (n NetLimit) PreTrade(underlyingID int, deltaQty float64) error {
	if n.Max <= 0 || n.Inv == nil {
		return nil
	}
	net := n.Inv.UnderlyingQuantity(underlyingID) + deltaQty
	if abs(net) > n.Max {
		return fmt.Errorf("%w: %.2f > net %.2f", ErrNetExceed, net, n.Max)
	}
	return nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
