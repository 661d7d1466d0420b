package strategy

import (
	"math"
	"testing"

	"options-maker-go/instrument"
	"options-maker-go/pricing"
)

func mustUnderlying(t *testing.T, valuation, upStep, downStep float64) instrument.Underlying {
	t.Helper()
	u, err := instrument.NewUnderlying(1, "T", valuation, 0.5, upStep, 0.5, downStep, 0)
	if err != nil {
		t.Fatalf("underlying: %v", err)
	}
	return u
}

func mustOption(t *testing.T, kind instrument.Kind, steps, strike int) instrument.Option {
	t.Helper()
	o, err := instrument.NewOption(1, kind, steps, strike, 1, "T")
	if err != nil {
		t.Fatalf("option: %v", err)
	}
	return o
}

func TestCalcSpreadBounds(t *testing.T) {
	p := DefaultSpreadParams()
	cases := []struct {
		name               string
		upStep, downStep   float64
		steps, strike      int
		valuation          float64
	}{
		{"平值近到期", 1, 1, 1, 100, 100},
		{"平值远到期", 1, 1, 10, 100, 100},
		{"深度实值", 1, 1, 5, 50, 100},
		{"大跳动标的", 3, 3, 5, 100, 100},
		{"低价标的", 0.5, 0.5, 5, 2, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := mustUnderlying(t, tc.valuation, tc.upStep, tc.downStep)
			o := mustOption(t, instrument.Call, tc.steps, tc.strike)
			fair := pricing.Price(o, u)
			g := pricing.EstimateGreeks(o, u)
			spread := CalcSpread(p, o, u, fair, g)
			maxSpread := p.MaxAbs + p.MaxPct*math.Max(1, fair)
			if spread < p.MinSpread || spread > maxSpread {
				t.Fatalf("spread %v outside [%v, %v]", spread, p.MinSpread, maxSpread)
			}
		})
	}
}

func TestCalcSpreadCalmCap(t *testing.T) {
	// 平静行情（小跳动、远离到期、远离平值）下价差不超过 CalmCap。
	// strike 0 的 call 公允价值等于 spot，完整表达式远超 0.8。
	p := DefaultSpreadParams()
	u := mustUnderlying(t, 100, 0.5, 0.5)
	o := mustOption(t, instrument.Call, 5, 0)
	fair := pricing.Price(o, u)
	g := pricing.EstimateGreeks(o, u)
	spread := CalcSpread(p, o, u, fair, g)
	if spread != p.CalmCap {
		t.Fatalf("expected calm cap %v, got %v", p.CalmCap, spread)
	}
}

func TestCalcSpreadNotCalmWhenNearExpiry(t *testing.T) {
	p := DefaultSpreadParams()
	u := mustUnderlying(t, 100, 0.5, 0.5)
	o := mustOption(t, instrument.Call, 2, 0) // steps < 3：非平静
	fair := pricing.Price(o, u)
	g := pricing.EstimateGreeks(o, u)
	spread := CalcSpread(p, o, u, fair, g)
	if spread <= p.CalmCap {
		t.Fatalf("near expiry should not be capped: %v", spread)
	}
}

func TestCalcSpreadGammaTermIsInert(t *testing.T) {
	// min(0, |gamma|·scale) 恒为 0：gamma 系数不应影响价差（按原始行为保留）
	u := mustUnderlying(t, 100, 1, 1)
	o := mustOption(t, instrument.Call, 4, 100) // ATM，gamma 最大
	fair := pricing.Price(o, u)
	g := pricing.EstimateGreeks(o, u)

	withGamma := DefaultSpreadParams()
	noGamma := DefaultSpreadParams()
	noGamma.GammaCoeff = 0
	if CalcSpread(withGamma, o, u, fair, g) != CalcSpread(noGamma, o, u, fair, g) {
		t.Fatalf("gamma term should never contribute to spread")
	}
}

func TestCalcSpreadWidensTowardExpiry(t *testing.T) {
	p := DefaultSpreadParams()
	u := mustUnderlying(t, 100, 1, 1)
	near := mustOption(t, instrument.Call, 1, 100)
	far := mustOption(t, instrument.Call, 10, 100)
	nearSpread := CalcSpread(p, near, u, pricing.Price(near, u), pricing.EstimateGreeks(near, u))
	farSpread := CalcSpread(p, far, u, pricing.Price(far, u), pricing.EstimateGreeks(far, u))
	if nearSpread <= farSpread {
		t.Fatalf("expected wider spread near expiry: near=%v far=%v", nearSpread, farSpread)
	}
}
