package strategy

import (
	"math"

	"options-maker-go/instrument"
	"options-maker-go/pricing"
)

// SpreadParams 价差整形参数，可由配置覆盖并支持热更新。
type SpreadParams struct {
	BaseAbs      float64 // 基础绝对价差
	BasePct      float64 // 基础比例价差（乘以价格尺度）
	JumpCoeff    float64 // 标的跳动加成系数
	DeltaCoeff   float64 // delta 风险系数
	GammaCoeff   float64 // gamma 风险系数
	TimeStrength float64 // 临近到期的加宽强度
	CalmCap      float64 // 平静行情下的价差上限
	MinSpread    float64 // 最终下限
	MaxAbs       float64 // 最终上限的绝对部分
	MaxPct       float64 // 最终上限的比例部分
	ExpiryTiny   float64 // 到期报价的内在价值加减量
}

// DefaultSpreadParams 返回基准参数。
func DefaultSpreadParams() SpreadParams {
	return SpreadParams{
		BaseAbs:      0.1,
		BasePct:      0.006,
		JumpCoeff:    0.10,
		DeltaCoeff:   0.15,
		GammaCoeff:   0.03,
		TimeStrength: 1.5,
		CalmCap:      0.80,
		MinSpread:    0.03,
		MaxAbs:       10.0,
		MaxPct:       0.10,
		ExpiryTiny:   0.1,
	}
}

// CalcSpread 计算双边报价的总价差。
// 先算完整表达式 (base + jump + risk) * timeFactor，平静行情再截到 CalmCap，
// 最后统一 clamp 到 [MinSpread, MaxAbs + MaxPct*priceScale]。
func CalcSpread(p SpreadParams, o instrument.Option, u instrument.Underlying, fair float64, g pricing.Greeks) float64 {
	jumpScale := u.JumpScale()
	spot := u.Valuation
	moneyness := math.Abs(spot-float64(o.Strike)) / math.Max(1, spot)
	priceScale := math.Max(1, fair)

	baseSpread := p.BaseAbs + p.BasePct*priceScale
	jumpAddon := p.JumpCoeff * jumpScale
	// gamma 项保留原始行为：内层参数非负，min(0,·) 恒为 0
	riskSpread := p.DeltaCoeff*math.Min(1, math.Abs(g.Delta)) +
		p.GammaCoeff*math.Min(0, math.Abs(g.Gamma)*0.5*jumpScale)
	timeFactor := 1 + p.TimeStrength/float64(1+o.StepsUntilExpiry)

	spread := (baseSpread + jumpAddon + riskSpread) * timeFactor

	calm := jumpScale < 2 && o.StepsUntilExpiry >= 3 && moneyness >= 0.10
	if calm {
		spread = math.Min(spread, p.CalmCap)
	}

	maxSpread := p.MaxAbs + p.MaxPct*priceScale
	return math.Max(p.MinSpread, math.Min(spread, maxSpread))
}
