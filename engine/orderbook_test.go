package engine

import (
	"testing"
	"time"

	"github.com/yourusername/exchange-core/models"
)

func newBookOrder(id string, side models.Side, price models.Price, qty int64, seq uint64) *models.Order {
	order := models.NewOrder(id, "ACME", side, price, qty, time.Now())
	order.ArrivalSeq = seq
	return order
}

func TestNewOrderBook(t *testing.T) {
	ob := NewOrderBook("ACME")

	if ob.Symbol != "ACME" {
		t.Errorf("Expected symbol ACME, got %s", ob.Symbol)
	}

	if ob.Size() != 0 {
		t.Errorf("Expected empty order book, got size %d", ob.Size())
	}

	if ob.BestBid() != nil || ob.BestAsk() != nil {
		t.Error("Expected empty book to have no best orders")
	}
}

func TestInsertBid(t *testing.T) {
	ob := NewOrderBook("ACME")

	order := newBookOrder("1", models.SideBuy, 10000, 10, 1)
	ob.Insert(order)

	if ob.Size() != 1 {
		t.Errorf("Expected order book size 1, got %d", ob.Size())
	}

	if !ob.Contains("1") {
		t.Error("Expected book to contain order 1")
	}

	best := ob.BestBid()
	if best == nil {
		t.Fatal("Expected best bid to exist")
	}
	if best.ID != "1" {
		t.Errorf("Expected best bid id 1, got %s", best.ID)
	}
}

func TestBestBidIsHighestPrice(t *testing.T) {
	ob := NewOrderBook("ACME")

	ob.Insert(newBookOrder("1", models.SideBuy, 10000, 10, 1))
	ob.Insert(newBookOrder("2", models.SideBuy, 10200, 10, 2))
	ob.Insert(newBookOrder("3", models.SideBuy, 9900, 10, 3))

	best := ob.BestBid()
	if best == nil {
		t.Fatal("Expected best bid to exist")
	}
	if best.Price != 10200 {
		t.Errorf("Expected best bid price 10200, got %d", best.Price)
	}
}

func TestBestAskIsLowestPrice(t *testing.T) {
	ob := NewOrderBook("ACME")

	ob.Insert(newBookOrder("1", models.SideSell, 10000, 10, 1))
	ob.Insert(newBookOrder("2", models.SideSell, 9800, 10, 2))
	ob.Insert(newBookOrder("3", models.SideSell, 10300, 10, 3))

	best := ob.BestAsk()
	if best == nil {
		t.Fatal("Expected best ask to exist")
	}
	if best.Price != 9800 {
		t.Errorf("Expected best ask price 9800, got %d", best.Price)
	}
}

func TestTimePriorityAtEqualPrice(t *testing.T) {
	ob := NewOrderBook("ACME")

	ob.Insert(newBookOrder("late", models.SideSell, 10000, 5, 2))
	ob.Insert(newBookOrder("later", models.SideSell, 10000, 5, 3))

	// Same price: the order inserted first keeps priority.
	best := ob.BestAsk()
	if best.ID != "late" {
		t.Errorf("Expected earliest arrival to have priority, got %s", best.ID)
	}
}

func TestFillBestRemovesFilledOrder(t *testing.T) {
	ob := NewOrderBook("ACME")

	ob.Insert(newBookOrder("1", models.SideBuy, 10000, 10, 1))

	order := ob.FillBest(models.SideBuy, 4)
	if order == nil {
		t.Fatal("Expected fill to return the order")
	}
	if order.RemainingQuantity() != 6 {
		t.Errorf("Expected remaining 6, got %d", order.RemainingQuantity())
	}
	if ob.Size() != 1 {
		t.Error("Partially filled order must stay in the book")
	}

	ob.FillBest(models.SideBuy, 6)
	if ob.Size() != 0 {
		t.Error("Fully filled order must not be observable in the book")
	}
	if ob.BestBid() != nil {
		t.Error("Expected empty bid side after full fill")
	}
	if ob.Bids.Levels() != 0 {
		t.Errorf("Expected empty price level to be removed, got %d levels", ob.Bids.Levels())
	}
}

func TestFillBestOnEmptySide(t *testing.T) {
	ob := NewOrderBook("ACME")
	if order := ob.FillBest(models.SideSell, 1); order != nil {
		t.Error("Expected nil when filling an empty side")
	}
}

func TestIsCrossed(t *testing.T) {
	ob := NewOrderBook("ACME")

	ob.Insert(newBookOrder("1", models.SideBuy, 10000, 10, 1))
	if ob.IsCrossed() {
		t.Error("One-sided book can never be crossed")
	}

	ob.Insert(newBookOrder("2", models.SideSell, 10100, 10, 2))
	if ob.IsCrossed() {
		t.Error("Bid below ask is not crossed")
	}

	ob.Insert(newBookOrder("3", models.SideSell, 10000, 10, 3))
	if !ob.IsCrossed() {
		t.Error("Bid equal to ask is crossed")
	}
}

func TestSpread(t *testing.T) {
	ob := NewOrderBook("ACME")

	if ob.Spread() != 0 {
		t.Error("Expected zero spread for empty book")
	}

	ob.Insert(newBookOrder("1", models.SideBuy, 10000, 10, 1))
	ob.Insert(newBookOrder("2", models.SideSell, 10250, 10, 2))

	if spread := ob.Spread(); spread != 250 {
		t.Errorf("Expected spread 250 ticks, got %d", spread)
	}
}

func TestSideCounters(t *testing.T) {
	ob := NewOrderBook("ACME")

	ob.Insert(newBookOrder("1", models.SideBuy, 10000, 10, 1))
	ob.Insert(newBookOrder("2", models.SideBuy, 10000, 5, 2))
	ob.Insert(newBookOrder("3", models.SideBuy, 9900, 7, 3))

	if levels := ob.Bids.Levels(); levels != 2 {
		t.Errorf("Expected 2 bid levels, got %d", levels)
	}
	if count := ob.Bids.OrderCount(); count != 3 {
		t.Errorf("Expected 3 bid orders, got %d", count)
	}
	if volume := ob.Bids.TotalVolume(); volume != 22 {
		t.Errorf("Expected bid volume 22, got %d", volume)
	}
}
