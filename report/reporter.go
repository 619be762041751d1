package report

import (
	"fmt"
	"io"

	"github.com/yourusername/exchange-core/logging"
	"github.com/yourusername/exchange-core/models"
)

// Reporter consumes emitted trades. The engine invokes it synchronously
// in trade-sequence order, one trade at a time, as each trade occurs.
type Reporter interface {
	Report(trade *models.Trade)
}

// StreamReporter renders each trade on its own line in the literal
// execution format:
//
//	#<buyOrderId> <price> <quantity> #<sellOrderId>
//
// Lines are written as trades occur, never batched.
type StreamReporter struct {
	w   io.Writer
	err error
}

func NewStreamReporter(w io.Writer) *StreamReporter {
	return &StreamReporter{w: w}
}

func (r *StreamReporter) Report(trade *models.Trade) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, "#%s %s %d #%s\n",
		trade.BuyOrderID, trade.Price, trade.Quantity, trade.SellOrderID)
}

// Err returns the first write error encountered, if any.
func (r *StreamReporter) Err() error {
	return r.err
}

// LogReporter emits each trade as a structured log event.
type LogReporter struct{}

func NewLogReporter() *LogReporter {
	return &LogReporter{}
}

func (r *LogReporter) Report(trade *models.Trade) {
	logging.LogTradeExecuted(trade.Sequence, trade.TradeID.String(), trade.Symbol,
		trade.BuyOrderID, trade.SellOrderID, trade.Price.String(), trade.Quantity)
}

// MultiReporter fans each trade out to several reporters in order.
type MultiReporter []Reporter

func (m MultiReporter) Report(trade *models.Trade) {
	for _, r := range m {
		r.Report(trade)
	}
}
