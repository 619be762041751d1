package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestUpdateBestPrices(t *testing.T) {
	UpdateBestPrices("GAUGETEST", 100.5, 101)

	if got := testutil.ToFloat64(BestBidPrice.WithLabelValues("GAUGETEST")); got != 100.5 {
		t.Errorf("Expected best bid gauge 100.5, got %v", got)
	}
	if got := testutil.ToFloat64(BestAskPrice.WithLabelValues("GAUGETEST")); got != 101 {
		t.Errorf("Expected best ask gauge 101, got %v", got)
	}
	if got := testutil.ToFloat64(BookSpread.WithLabelValues("GAUGETEST")); got != 0.5 {
		t.Errorf("Expected spread gauge 0.5, got %v", got)
	}
}

func TestUpdateBestPricesClearsDrainedSides(t *testing.T) {
	UpdateBestPrices("DRAINTEST", 100.5, 101)
	UpdateBestPrices("DRAINTEST", 100.5, 0)

	if got := testutil.ToFloat64(BestAskPrice.WithLabelValues("DRAINTEST")); got != 0 {
		t.Errorf("Expected drained ask side to report 0, got %v", got)
	}
	if got := testutil.ToFloat64(BookSpread.WithLabelValues("DRAINTEST")); got != 0 {
		t.Errorf("Expected spread 0 with one side empty, got %v", got)
	}

	UpdateBestPrices("DRAINTEST", 0, 0)

	if got := testutil.ToFloat64(BestBidPrice.WithLabelValues("DRAINTEST")); got != 0 {
		t.Errorf("Expected drained bid side to report 0, got %v", got)
	}
}
