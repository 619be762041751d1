package models

import (
	"testing"
	"time"
)

func testOrder(id string, side Side, price Price, qty int64) *Order {
	return NewOrder(id, "ACME", side, price, qty, time.Now())
}

func TestNewOrder(t *testing.T) {
	order := testOrder("ord-1", SideBuy, 10000, 10)

	if order.Status != OrderStatusOpen {
		t.Errorf("Expected status open, got %s", order.Status)
	}
	if order.FilledQuantity != 0 {
		t.Errorf("Expected zero filled quantity, got %d", order.FilledQuantity)
	}
	if order.ArrivalSeq != 0 {
		t.Errorf("Expected unassigned arrival sequence, got %d", order.ArrivalSeq)
	}
	if order.RemainingQuantity() != 10 {
		t.Errorf("Expected remaining quantity 10, got %d", order.RemainingQuantity())
	}
}

func TestOrderIsValid(t *testing.T) {
	valid := testOrder("ord-1", SideBuy, 10000, 10)
	if !valid.IsValid() {
		t.Error("Expected order to be valid")
	}

	noID := testOrder("", SideBuy, 10000, 10)
	if noID.IsValid() {
		t.Error("Order without id should be invalid")
	}

	badSide := testOrder("ord-2", Side("hold"), 10000, 10)
	if badSide.IsValid() {
		t.Error("Order with unknown side should be invalid")
	}

	zeroQty := testOrder("ord-3", SideSell, 10000, 0)
	if zeroQty.IsValid() {
		t.Error("Order with zero quantity should be invalid")
	}

	negativePrice := testOrder("ord-4", SideSell, -100, 10)
	if negativePrice.IsValid() {
		t.Error("Order with negative price should be invalid")
	}

	overfilled := testOrder("ord-5", SideBuy, 10000, 10)
	overfilled.FilledQuantity = 11
	if overfilled.IsValid() {
		t.Error("Order filled beyond its quantity should be invalid")
	}
}

func TestOrderFillTransitions(t *testing.T) {
	order := testOrder("ord-1", SideBuy, 10000, 10)

	order.Fill(4)
	if order.Status != OrderStatusPartiallyFilled {
		t.Errorf("Expected partially_filled after partial fill, got %s", order.Status)
	}
	if order.RemainingQuantity() != 6 {
		t.Errorf("Expected remaining quantity 6, got %d", order.RemainingQuantity())
	}
	if !order.IsPartiallyFilled() {
		t.Error("Expected IsPartiallyFilled to be true")
	}

	order.Fill(6)
	if order.Status != OrderStatusFilled {
		t.Errorf("Expected filled after full fill, got %s", order.Status)
	}
	if !order.IsFilled() {
		t.Error("Expected IsFilled to be true")
	}
	if order.RemainingQuantity() != 0 {
		t.Errorf("Expected remaining quantity 0, got %d", order.RemainingQuantity())
	}
}

func TestSideOpposite(t *testing.T) {
	if SideBuy.Opposite() != SideSell {
		t.Error("Expected opposite of buy to be sell")
	}
	if SideSell.Opposite() != SideBuy {
		t.Error("Expected opposite of sell to be buy")
	}
}
