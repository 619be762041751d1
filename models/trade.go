package models

import (
	"time"

	"github.com/google/uuid"
)

// Trade is an immutable execution record produced by the matching
// engine. Sequence is a monotonic counter over all trades the engine
// has emitted; trades are handed to the reporter in sequence order and
// never mutated or retracted afterwards.
type Trade struct {
	Sequence    uint64    `json:"sequence"`
	TradeID     uuid.UUID `json:"trade_id"`
	Symbol      string    `json:"symbol"`
	BuyOrderID  string    `json:"buy_order_id"`
	SellOrderID string    `json:"sell_order_id"`
	Price       Price     `json:"price"`
	Quantity    int64     `json:"quantity"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewTrade creates a new trade
func NewTrade(sequence uint64, symbol, buyOrderID, sellOrderID string, price Price, quantity int64) *Trade {
	return &Trade{
		Sequence:    sequence,
		TradeID:     uuid.New(),
		Symbol:      symbol,
		BuyOrderID:  buyOrderID,
		SellOrderID: sellOrderID,
		Price:       price,
		Quantity:    quantity,
		Timestamp:   time.Now(),
	}
}
