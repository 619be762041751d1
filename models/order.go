package models

import (
	"time"
)

// Side represents the side of an order (buy or sell)
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// IsValid reports whether the side is one of the two known values.
func (s Side) IsValid() bool {
	return s == SideBuy || s == SideSell
}

// Opposite returns the opposing side.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// OrderStatus represents the current status of an order
type OrderStatus string

const (
	OrderStatusOpen            OrderStatus = "open"
	OrderStatusPartiallyFilled OrderStatus = "partially_filled"
	OrderStatusFilled          OrderStatus = "filled"
	OrderStatusRejected        OrderStatus = "rejected"
)

// Order represents a limit order in the system. ID is supplied by the
// ingestion source and is opaque to the engine; ArrivalSeq is assigned
// by the engine at submission time and is the only value used for
// time-priority tie-breaks.
type Order struct {
	ID             string      `json:"id"`
	Symbol         string      `json:"symbol"`
	Side           Side        `json:"side"`
	Price          Price       `json:"price"`
	Quantity       int64       `json:"quantity"`
	FilledQuantity int64       `json:"filled_quantity"`
	ArrivalSeq     uint64      `json:"arrival_seq"`
	Timestamp      time.Time   `json:"timestamp"`
	Status         OrderStatus `json:"status"`
}

// NewOrder creates a new Order with default values. ArrivalSeq stays
// zero until the engine accepts the order.
func NewOrder(id, symbol string, side Side, price Price, quantity int64, ts time.Time) *Order {
	return &Order{
		ID:        id,
		Symbol:    symbol,
		Side:      side,
		Price:     price,
		Quantity:  quantity,
		Timestamp: ts,
		Status:    OrderStatusOpen,
	}
}

// IsValid validates the order fields
func (o *Order) IsValid() bool {
	if o.ID == "" || o.Symbol == "" {
		return false
	}
	if !o.Side.IsValid() {
		return false
	}
	if o.Quantity <= 0 {
		return false
	}
	if o.Price <= 0 {
		return false
	}
	if o.FilledQuantity < 0 || o.FilledQuantity > o.Quantity {
		return false
	}
	return true
}

// RemainingQuantity returns the unfilled quantity of the order
func (o *Order) RemainingQuantity() int64 {
	return o.Quantity - o.FilledQuantity
}

// IsFilled checks if the order is completely filled
func (o *Order) IsFilled() bool {
	return o.FilledQuantity == o.Quantity
}

// IsPartiallyFilled checks if the order is partially filled
func (o *Order) IsPartiallyFilled() bool {
	return o.FilledQuantity > 0 && o.FilledQuantity < o.Quantity
}

// Fill updates the order with a fill amount
func (o *Order) Fill(quantity int64) {
	o.FilledQuantity += quantity

	if o.IsFilled() {
		o.Status = OrderStatusFilled
	} else if o.IsPartiallyFilled() {
		o.Status = OrderStatusPartiallyFilled
	}
}

// Reject marks the order as rejected
func (o *Order) Reject() {
	o.Status = OrderStatusRejected
}
