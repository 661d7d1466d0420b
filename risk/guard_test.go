package risk

import (
	"errors"
	"testing"
)

type fakeInv map[int]float64

func (f fakeInv) UnderlyingQuantity(id int) float64 { return f[id] }

func TestNetLimit(t *testing.T) {
	g := NetLimit{Max: 10, Inv: fakeInv{1: 8}}

	if err := g.PreTrade(1, 1); err != nil {
		t.Fatalf("within limit: %v", err)
	}
	if err := g.PreTrade(1, 3); !errors.Is(err, ErrNetExceed) {
		t.Fatalf("expected ErrNetExceed, got %v", err)
	}
	// 减仓可以穿越零点，但不能反向超限
	if err := g.PreTrade(1, -15); err != nil {
		t.Fatalf("reducing through zero stays in limit: %v", err)
	}
	if err := g.PreTrade(1, -25); !errors.Is(err, ErrNetExceed) {
		t.Fatalf("overshooting short side should also fail, got %v", err)
	}
}

func TestNetLimitDisabled(t *testing.T) {
	if err := (NetLimit{}).PreTrade(1, 1e9); err != nil {
		t.Fatalf("zero max should disable the check: %v", err)
	}
}

func TestMultiGuardStopsAtFirstError(t *testing.T) {
	calls := 0
	pass := guardFunc(func(int, float64) error { calls++; return nil })
	fail := guardFunc(func(int, float64) error { calls++; return ErrNetExceed })

	m := MultiGuard{Guards: []Guard{nil, pass, fail, pass}}
	if err := m.PreTrade(1, 1); !errors.Is(err, ErrNetExceed) {
		t.Fatalf("expected ErrNetExceed, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected short-circuit after failure, calls=%d", calls)
	}
}

type guardFunc func(int, float64) error

func (f guardFunc) PreTrade(id int, qty float64) error { return f(id, qty) }
