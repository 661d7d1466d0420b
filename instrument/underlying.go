package instrument

import (
	"fmt"
	"math"
	"math/rand"
)

// driftTolerance 漂移容忍度：期望步进超过该值则拒绝构造。
// 零漂移是格子定价不做贴现的前提。
const driftTolerance = 1e-5

// Underlying 标的资产的不可变快照。
// 每个模拟步由外部驱动整体替换，不做字段级修改。
type Underlying struct {
	ID   int
	Name string

	Valuation float64 // 当前估值（≥0，保留两位小数）

	UpMoveProbability   float64
	UpMoveStep          float64
	DownMoveProbability float64
	DownMoveStep        float64
	NoiseStdDev         float64
}

// NewUnderlying 构造并校验标的快照。校验只发生在构造期，后续使用不再重复。
func NewUnderlying(id int, name string, valuation, upProb, upStep, downProb, downStep, noise float64) (Underlying, error) {
	if valuation < 0 {
		return Underlying{}, fmt.Errorf("underlying %s: valuation must be >= 0", name)
	}
	if upStep <= 0 || downStep <= 0 {
		return Underlying{}, fmt.Errorf("underlying %s: up/down move steps must both be positive", name)
	}
	if upProb <= 0 || downProb <= 0 {
		return Underlying{}, fmt.Errorf("underlying %s: up/down move probabilities must both be positive", name)
	}
	if upProb+downProb != 1 {
		return Underlying{}, fmt.Errorf("underlying %s: up and down move probabilities must sum to 1", name)
	}
	if downProb*downStep-upProb*upStep > driftTolerance {
		return Underlying{}, fmt.Errorf("underlying %s: has drift", name)
	}
	return Underlying{
		ID:                  id,
		Name:                name,
		Valuation:           round2(valuation),
		UpMoveProbability:   upProb,
		UpMoveStep:          upStep,
		DownMoveProbability: downProb,
		DownMoveStep:        downStep,
		NoiseStdDev:         noise,
	}, nil
}

// Same 快照等价性按 ID 判断，不比较估值（估值每步都变）。
func (u Underlying) Same(other Underlying) bool {
	return u.ID == other.ID
}

// JumpScale 单步价格跳动幅度，报价与 greeks 的尺度基准。
func (u Underlying) JumpScale() float64 {
	return math.Abs(u.UpMoveStep) + math.Abs(u.DownMoveStep)
}

// AdvanceStep 执行一步随机游走并叠加高斯噪声，返回新快照。
// 估值不允许为负，保留两位小数。
func (u Underlying) AdvanceStep(rng *rand.Rand) Underlying {
	next := u
	if rng.Float64() < u.UpMoveProbability {
		next.Valuation += u.UpMoveStep
	} else {
		next.Valuation -= u.DownMoveStep
	}
	next.Valuation += rng.NormFloat64() * u.NoiseStdDev
	next.Valuation = round2(math.Max(next.Valuation, 0))
	return next
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
