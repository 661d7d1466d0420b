package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestQuoteMetrics(t *testing.T) {
	FairValue.Set(0)
	QuoteSpread.Set(0)

	UpdateQuoteMetrics(12.5, 0.8)

	if testutil.ToFloat64(FairValue) != 12.5 {
		t.Errorf("Expected FairValue to be 12.5, got %f", testutil.ToFloat64(FairValue))
	}
	if testutil.ToFloat64(QuoteSpread) != 0.8 {
		t.Errorf("Expected QuoteSpread to be 0.8, got %f", testutil.ToFloat64(QuoteSpread))
	}
}

func TestHedgeMetrics(t *testing.T) {
	UpdateHedgeMetrics("TECH", -2.4)

	got := testutil.ToFloat64(NetDelta.WithLabelValues("TECH"))
	if got != -2.4 {
		t.Errorf("Expected NetDelta to be -2.4, got %f", got)
	}
}

func TestMarketMetrics(t *testing.T) {
	UpdateMarketMetrics("TECH", 101.5, 3.0)

	if got := testutil.ToFloat64(UnderlyingValuation.WithLabelValues("TECH")); got != 101.5 {
		t.Errorf("Expected UnderlyingValuation to be 101.5, got %f", got)
	}
	if got := testutil.ToFloat64(UnderlyingPosition.WithLabelValues("TECH")); got != 3.0 {
		t.Errorf("Expected UnderlyingPosition to be 3.0, got %f", got)
	}
}
