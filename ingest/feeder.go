package ingest

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/yourusername/exchange-core/engine"
	"github.com/yourusername/exchange-core/logging"
	"github.com/yourusername/exchange-core/metrics"
	"github.com/yourusername/exchange-core/validation"
)

// Stats summarizes one replay run.
type Stats struct {
	Lines     uint64
	Submitted uint64
	Rejected  uint64
	Skipped   uint64
	Trades    uint64
}

// Feeder drives records from a Source into the matching engine in
// stream order. A record that cannot be parsed or that the engine
// rejects is reported and skipped; the stream always continues.
type Feeder struct {
	engine *engine.MatchingEngine
	label  string
}

func NewFeeder(me *engine.MatchingEngine) *Feeder {
	return &Feeder{engine: me, label: "source"}
}

// SetLabel names the source in replay log events.
func (f *Feeder) SetLabel(label string) {
	f.label = label
}

// Run replays the source to exhaustion and returns the run's counters.
// The only returned error is a source read failure; bad records never
// abort the stream.
func (f *Feeder) Run(src Source) (Stats, error) {
	var stats Stats
	started := time.Now()

	for {
		line, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return stats, fmt.Errorf("reading source: %w", err)
		}
		stats.Lines++

		if line == "" {
			continue
		}

		record, err := ParseRecord(line)
		if err != nil {
			stats.Skipped++
			reason := skipReason(err)
			metrics.RecordSkippedRecord(reason)
			logging.LogLineSkipped(int(stats.Lines), reason, err)
			continue
		}

		order := record.Order()

		submitStart := time.Now()
		trades, err := f.engine.Submit(order)
		metrics.RecordSubmitLatency(order.Symbol, time.Since(submitStart).Seconds())

		if err != nil {
			stats.Rejected++
			logging.LogOrderRejected(order.ID, order.Symbol, err.Error())
			continue
		}

		stats.Submitted++
		stats.Trades += uint64(len(trades))
		logging.LogOrderAccepted(order.ID, order.Symbol, string(order.Side),
			order.Price.String(), order.Quantity, order.ArrivalSeq)
	}

	logging.LogReplayCompleted(f.label, stats.Submitted, stats.Rejected,
		stats.Skipped, stats.Trades, time.Since(started))

	return stats, nil
}

// skipReason maps a parse error onto a stable diagnostic label.
func skipReason(err error) string {
	switch {
	case errors.Is(err, validation.ErrMalformedRecord):
		return "malformed_record"
	case errors.Is(err, validation.ErrInvalidOrderID):
		return "invalid_order_id"
	case errors.Is(err, validation.ErrInvalidSymbol):
		return "invalid_symbol"
	case errors.Is(err, validation.ErrInvalidSide):
		return "invalid_side"
	case errors.Is(err, validation.ErrInvalidPrice), errors.Is(err, validation.ErrPriceOutOfRange):
		return "invalid_price"
	case errors.Is(err, validation.ErrInvalidQuantity), errors.Is(err, validation.ErrQuantityOutOfRange):
		return "invalid_quantity"
	default:
		return "invalid_record"
	}
}
