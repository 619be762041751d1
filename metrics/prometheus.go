package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Counter: Total orders accepted by the engine
	OrdersSubmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_submitted_total",
			Help: "Total number of orders accepted into a book by the matching engine",
		},
		[]string{"symbol", "side"},
	)

	// Counter: Total orders rejected
	OrdersRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_rejected_total",
			Help: "Total number of orders rejected at submit time",
		},
		[]string{"symbol", "reason"},
	)

	// Counter: Input records the ingestion adapter could not parse
	RecordsSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "records_skipped_total",
			Help: "Total number of malformed input records skipped by the ingestion adapter",
		},
		[]string{"reason"},
	)

	// Histogram: Submit latency
	SubmitLatencySeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "submit_latency_seconds",
			Help:    "Time taken to validate, sequence, and match a single order",
			Buckets: prometheus.ExponentialBuckets(0.000001, 2, 15), // 1us to ~16ms
		},
		[]string{"symbol"},
	)

	// Gauge: Current book depth (resting orders)
	CurrentBookDepth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "current_orderbook_depth",
			Help: "Current number of resting orders in the book",
		},
		[]string{"symbol", "side"},
	)

	// Gauge: Best bid/ask prices
	BestBidPrice = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "best_bid_price",
			Help: "Current best bid price in the book",
		},
		[]string{"symbol"},
	)

	BestAskPrice = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "best_ask_price",
			Help: "Current best ask price in the book",
		},
		[]string{"symbol"},
	)

	// Gauge: Spread (difference between best ask and best bid)
	BookSpread = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "orderbook_spread",
			Help: "Current spread between best bid and best ask",
		},
		[]string{"symbol"},
	)

	// Counter: Total trades executed
	TradesExecutedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trades_executed_total",
			Help: "Total number of trades executed",
		},
		[]string{"symbol"},
	)

	// Counter: Total volume traded
	TradedVolumeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traded_volume_total",
			Help: "Total volume traded",
		},
		[]string{"symbol"},
	)
)

// RecordOrderSubmitted increments the orders_submitted_total counter
func RecordOrderSubmitted(symbol, side string) {
	OrdersSubmittedTotal.WithLabelValues(symbol, side).Inc()
}

// RecordOrderRejected increments the orders_rejected_total counter
func RecordOrderRejected(symbol, reason string) {
	OrdersRejectedTotal.WithLabelValues(symbol, reason).Inc()
}

// RecordSkippedRecord increments the records_skipped_total counter
func RecordSkippedRecord(reason string) {
	RecordsSkippedTotal.WithLabelValues(reason).Inc()
}

// RecordSubmitLatency records the time taken to process one order
func RecordSubmitLatency(symbol string, seconds float64) {
	SubmitLatencySeconds.WithLabelValues(symbol).Observe(seconds)
}

// UpdateBookDepth updates the current book depth gauge
func UpdateBookDepth(symbol, side string, depth float64) {
	CurrentBookDepth.WithLabelValues(symbol, side).Set(depth)
}

// UpdateBestPrices updates best bid/ask prices and the spread gauge.
// A drained side reports zero rather than its last known price; the
// spread is only meaningful while both sides are populated.
func UpdateBestPrices(symbol string, bestBid, bestAsk float64) {
	BestBidPrice.WithLabelValues(symbol).Set(bestBid)
	BestAskPrice.WithLabelValues(symbol).Set(bestAsk)

	spread := 0.0
	if bestBid > 0 && bestAsk > 0 {
		spread = bestAsk - bestBid
	}
	BookSpread.WithLabelValues(symbol).Set(spread)
}

// RecordTrade records a trade execution
func RecordTrade(symbol string, quantity float64) {
	TradesExecutedTotal.WithLabelValues(symbol).Inc()
	TradedVolumeTotal.WithLabelValues(symbol).Add(quantity)
}
