package strategy

import (
	"errors"
	"testing"

	"options-maker-go/instrument"
)

func TestRebalanceWithinDeadBandNoTrade(t *testing.T) {
	book, _ := singleOptionBook(t, instrument.Call, 2, 100, 100)
	d, exec := newTestDesk(t, book)
	d.Position().AddUnderlyingQuantity(1, 0.05)

	if err := d.Rebalance(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exec.trades) != 0 {
		t.Fatalf("exposure inside dead band must not trade: %+v", exec.trades)
	}
}

func TestRebalanceFlattensDirectHolding(t *testing.T) {
	book, _ := singleOptionBook(t, instrument.Call, 2, 100, 100)
	d, exec := newTestDesk(t, book)
	d.Position().AddUnderlyingQuantity(1, 5)

	if err := d.Rebalance(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 超额 4.9，round(-4.9) = -5：卖出 5
	if len(exec.trades) != 1 || exec.trades[0].quantity != -5 {
		t.Fatalf("expected single sell of 5, got %+v", exec.trades)
	}
	if got := d.Position().UnderlyingQuantity(1); got != 0 {
		t.Fatalf("expected flat position, got %v", got)
	}
}

func TestRebalanceHedgesOptionDelta(t *testing.T) {
	// strike 0 的深度实值 call delta 恒为 1：空 5 张 → 净 delta -5 → 买 5
	book, o := singleOptionBook(t, instrument.Call, 4, 0, 100)
	d, exec := newTestDesk(t, book)
	d.Position().AddOptionQuantity(o.ID, -5)

	if err := d.Rebalance(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exec.trades) != 1 || exec.trades[0].quantity != 5 {
		t.Fatalf("expected single buy of 5, got %+v", exec.trades)
	}
}

func TestRebalanceIdempotent(t *testing.T) {
	book, o := singleOptionBook(t, instrument.Call, 4, 0, 100)
	d, exec := newTestDesk(t, book)
	d.Position().AddOptionQuantity(o.ID, -5)

	if err := d.Rebalance(); err != nil {
		t.Fatalf("first pass: %v", err)
	}
	first := len(exec.trades)
	if first == 0 {
		t.Fatalf("first pass should trade")
	}
	// 无新成交的情况下紧接着再对冲一轮：敞口已在带宽内，不再交易
	if err := d.Rebalance(); err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if len(exec.trades) != first {
		t.Fatalf("second pass issued trades: %+v", exec.trades[first:])
	}
}

func TestRebalanceZeroQuantitySkipped(t *testing.T) {
	// 超额 0.3，round(-0.3) = 0：带宽外但取整后无需交易
	book, _ := singleOptionBook(t, instrument.Call, 2, 100, 100)
	d, exec := newTestDesk(t, book)
	d.Position().AddUnderlyingQuantity(1, 0.4)

	if err := d.Rebalance(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exec.trades) != 0 {
		t.Fatalf("rounded-to-zero hedge must not trade: %+v", exec.trades)
	}
}

func TestRebalanceSkipsZeroQuantityOptions(t *testing.T) {
	book, o := singleOptionBook(t, instrument.Call, 4, 0, 100)
	d, exec := newTestDesk(t, book)
	d.Position().AddOptionQuantity(o.ID, 3)
	d.Position().AddOptionQuantity(o.ID, -3) // 轧平

	if err := d.Rebalance(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exec.trades) != 0 {
		t.Fatalf("flat option book must not hedge: %+v", exec.trades)
	}
}

func TestRebalanceUnresolvedUnderlyingFatal(t *testing.T) {
	// 持仓期权引用的标的不在新快照里：立即上抛
	book, o := singleOptionBook(t, instrument.Call, 4, 100, 100)
	d, _ := newTestDesk(t, book)
	d.Position().AddOptionQuantity(o.ID, 1)

	if err := d.OnStepAdvance(nil, book.Options); !errors.Is(err, instrument.ErrUnknownUnderlying) {
		t.Fatalf("expected ErrUnknownUnderlying, got %v", err)
	}
}

func TestRebalanceExecutorErrorPropagates(t *testing.T) {
	book, _ := singleOptionBook(t, instrument.Call, 2, 100, 100)
	d, exec := newTestDesk(t, book)
	d.Position().AddUnderlyingQuantity(1, 5)
	exec.err = errors.New("venue down")

	if err := d.Rebalance(); err == nil {
		t.Fatalf("expected executor error to propagate")
	}
}
