package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/yourusername/exchange-core/models"
	"github.com/yourusername/exchange-core/validation"
)

// recordFields is the fixed field layout of an input record:
// id time symbol side price quantity
const recordFields = 6

// timeLayouts are tried in order when parsing the record's timestamp.
// The timestamp is informational only; time priority comes from stream
// order, never from this field.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"15:04:05",
	"15:04",
}

// Record is a parsed input record. Price and quantity have already
// been converted to the engine's fixed-point/integer types.
type Record struct {
	ID       string
	Time     time.Time
	Symbol   string
	Side     models.Side
	Price    models.Price
	Quantity int64
}

// Order builds the engine order for this record.
func (r *Record) Order() *models.Order {
	return models.NewOrder(r.ID, r.Symbol, r.Side, r.Price, r.Quantity, r.Time)
}

// ParseRecord parses one whitespace-delimited input line. Failures to
// split the line or convert its fields wrap ErrMalformedRecord; a
// structurally sound record with out-of-range values wraps the
// matching validation sentinel, so callers can treat both as a skipped
// record while keeping distinct diagnostics.
func ParseRecord(line string) (*Record, error) {
	fields := strings.Fields(line)
	if len(fields) != recordFields {
		return nil, fmt.Errorf("%w: expected %d fields, got %d",
			validation.ErrMalformedRecord, recordFields, len(fields))
	}

	if err := validation.ValidateOrderID(fields[0]); err != nil {
		return nil, err
	}

	ts, err := parseTime(fields[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", validation.ErrMalformedRecord, err)
	}

	if err := validation.ValidateSymbol(fields[2]); err != nil {
		return nil, err
	}

	side, err := validation.ParseSide(fields[3])
	if err != nil {
		return nil, err
	}

	price, err := models.ParsePrice(fields[4])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", validation.ErrInvalidPrice, err)
	}
	if err := validation.ValidatePrice(price); err != nil {
		return nil, err
	}

	quantity, err := validation.ParseQuantity(fields[5])
	if err != nil {
		return nil, err
	}

	return &Record{
		ID:       fields[0],
		Time:     ts,
		Symbol:   fields[2],
		Side:     side,
		Price:    price,
		Quantity: quantity,
	}, nil
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}
