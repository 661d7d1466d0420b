package pricing

import (
	"math"
	"testing"

	"options-maker-go/instrument"
)

func testUnderlying(t *testing.T, valuation float64) instrument.Underlying {
	t.Helper()
	u, err := instrument.NewUnderlying(1, "TEST", valuation, 0.5, 1, 0.5, 1, 0)
	if err != nil {
		t.Fatalf("underlying: %v", err)
	}
	return u
}

func TestLatticeTwoStepScenario(t *testing.T) {
	// 两步格子：终端节点 98/100/102，payoff 0/0/2，
	// t=1 层 0 和 1，t=0 得 0.5
	u := testUnderlying(t, 100)
	o, err := instrument.NewOption(1, instrument.Call, 2, 100, u.ID, u.Name)
	if err != nil {
		t.Fatalf("option: %v", err)
	}
	got := Price(o, u)
	if math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("expected fair value 0.5, got %v", got)
	}
}

func TestLatticeExpiredReturnsIntrinsic(t *testing.T) {
	u := testUnderlying(t, 105)
	cases := []struct {
		name   string
		kind   instrument.Kind
		strike int
		want   float64
	}{
		{"到期 call 内在价值", instrument.Call, 100, 5},
		{"到期 put 无价值", instrument.Put, 100, 0},
		{"到期 put 内在价值", instrument.Put, 110, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o, err := instrument.NewOption(1, tc.kind, 0, tc.strike, u.ID, u.Name)
			if err != nil {
				t.Fatalf("option: %v", err)
			}
			if got := Price(o, u); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestLatticeDeterministic(t *testing.T) {
	u := testUnderlying(t, 100)
	o, _ := instrument.NewOption(1, instrument.Call, 7, 103, u.ID, u.Name)
	first := Price(o, u)
	for i := 0; i < 5; i++ {
		if got := Price(o, u); got != first {
			t.Fatalf("price not deterministic: %v vs %v", got, first)
		}
	}
}

func TestLatticeCallMonotonicInSpot(t *testing.T) {
	u := testUnderlying(t, 100)
	o, _ := instrument.NewOption(1, instrument.Call, 5, 100, u.ID, u.Name)
	prev := -1.0
	for spot := 90.0; spot <= 110.0; spot += 0.5 {
		v := Lattice(o, u, spot)
		if v < prev {
			t.Fatalf("call price decreased with spot: spot=%v v=%v prev=%v", spot, v, prev)
		}
		prev = v
	}
}

func TestLatticeNonNegative(t *testing.T) {
	u := testUnderlying(t, 100)
	for steps := 0; steps <= 10; steps++ {
		for _, kind := range []instrument.Kind{instrument.Call, instrument.Put} {
			o, _ := instrument.NewOption(1, kind, steps, 97, u.ID, u.Name)
			if v := Price(o, u); v < 0 {
				t.Fatalf("negative fair value %v (kind=%v steps=%d)", v, kind, steps)
			}
		}
	}
}
