package pricing

import (
	"math"

	"options-maker-go/instrument"
)

// Greeks 局部风险敏感度估计。
type Greeks struct {
	Delta float64
	Gamma float64
}

// BumpSize 有限差分的扰动幅度，随标的步长缩放。
func BumpSize(u instrument.Underlying) float64 {
	return math.Max(1e-6, 0.25*(math.Abs(u.UpMoveStep)+math.Abs(u.DownMoveStep)))
}

// EstimateGreeks 通过三次重定价（spot、spot±bump）用中心差分估计 delta/gamma。
// 行权价附近 payoff 存在折点，gamma 估计在该区域噪声较大，属已知局限。
func EstimateGreeks(o instrument.Option, u instrument.Underlying) Greeks {
	bump := BumpSize(u)
	fair := Lattice(o, u, u.Valuation)
	up := Lattice(o, u, u.Valuation+bump)
	down := Lattice(o, u, u.Valuation-bump)
	return Greeks{
		Delta: (up - down) / (2 * bump),
		Gamma: (up + down - 2*fair) / (bump * bump),
	}
}
