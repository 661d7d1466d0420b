// Package pricing contains the binomial lattice pricer and the
// finite-difference greek estimator. Both are pure functions over the
// supplied snapshots; nothing here caches or mutates state.
package pricing

import (
	"options-maker-go/instrument"
)

// Lattice 用二叉格子倒推法计算期权公允价值，spot 为显式现价。
// 标的构造时已保证零漂移，步进概率本身即风险中性测度，无需额外贴现。
// 复杂度 O(steps²)，每次调用重算，不做记忆化。
func Lattice(o instrument.Option, u instrument.Underlying, spot float64) float64 {
	steps := o.StepsUntilExpiry
	if steps <= 0 {
		return o.Intrinsic(spot)
	}

	// 到期层 payoff：j 为上行次数
	values := make([]float64, steps+1)
	for j := 0; j <= steps; j++ {
		node := spot + float64(j)*u.UpMoveStep - float64(steps-j)*u.DownMoveStep
		values[j] = o.Intrinsic(node)
	}

	// 倒推：每层节点值为两个后继的概率加权
	for t := steps - 1; t >= 0; t-- {
		for j := 0; j <= t; j++ {
			values[j] = u.UpMoveProbability*values[j+1] + u.DownMoveProbability*values[j]
		}
	}
	return values[0]
}

// Price 以标的当前估值为 spot 定价。
func Price(o instrument.Option, u instrument.Underlying) float64 {
	return Lattice(o, u, u.Valuation)
}
