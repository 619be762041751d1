package engine

import (
	"container/list"

	"github.com/google/btree"

	"github.com/yourusername/exchange-core/models"
)

// PriceLevel holds the FIFO queue of resting orders at a single price.
// Queue order is arrival order, which is what gives equal-priced
// orders their time priority.
type PriceLevel struct {
	Price  models.Price
	Orders *list.List
	Volume int64
}

// NewPriceLevel creates a new price level
func NewPriceLevel(price models.Price) *PriceLevel {
	return &PriceLevel{
		Price:  price,
		Orders: list.New(),
	}
}

func (pl *PriceLevel) AddOrder(order *models.Order) *list.Element {
	element := pl.Orders.PushBack(order)
	pl.Volume += order.RemainingQuantity()
	return element
}

func (pl *PriceLevel) IsEmpty() bool {
	return pl.Orders.Len() == 0
}

func (pl *PriceLevel) Less(than btree.Item) bool {
	other := than.(*PriceLevel)
	return pl.Price < other.Price
}

// BookSide is a priority-ordered collection of resting orders for one
// side of a symbol's book. Price levels live in a B-tree keyed by
// price, so insertion is O(log n) and the best level is the tree's
// max (bids) or min (asks); the naive resort-on-every-insert approach
// does not survive a long-running book.
type BookSide struct {
	tree *btree.BTree
	side models.Side
}

func NewBookSide(side models.Side) *BookSide {
	return &BookSide{
		tree: btree.New(32),
		side: side,
	}
}

func (bs *BookSide) getOrCreatePriceLevel(price models.Price) *PriceLevel {
	searchLevel := &PriceLevel{Price: price}

	if item := bs.tree.Get(searchLevel); item != nil {
		return item.(*PriceLevel)
	}

	newLevel := NewPriceLevel(price)
	bs.tree.ReplaceOrInsert(newLevel)
	return newLevel
}

func (bs *BookSide) removePriceLevel(price models.Price) {
	bs.tree.Delete(&PriceLevel{Price: price})
}

// BestLevel returns the best price level for this side: highest price
// for bids, lowest for asks. Returns nil when the side is empty.
func (bs *BookSide) BestLevel() *PriceLevel {
	var item btree.Item
	if bs.side == models.SideBuy {
		item = bs.tree.Max()
	} else {
		item = bs.tree.Min()
	}

	if item != nil {
		return item.(*PriceLevel)
	}
	return nil
}

// PeekBest returns the best resting order under price-time priority,
// or nil when the side is empty.
func (bs *BookSide) PeekBest() *models.Order {
	level := bs.BestLevel()
	if level == nil {
		return nil
	}
	return level.Orders.Front().Value.(*models.Order)
}

// Levels returns the number of price levels on this side.
func (bs *BookSide) Levels() int {
	return bs.tree.Len()
}

// OrderCount returns the number of resting orders on this side.
func (bs *BookSide) OrderCount() int {
	count := 0
	bs.tree.Ascend(func(item btree.Item) bool {
		count += item.(*PriceLevel).Orders.Len()
		return true
	})
	return count
}

// TotalVolume returns the total resting quantity on this side.
func (bs *BookSide) TotalVolume() int64 {
	var volume int64
	bs.tree.Ascend(func(item btree.Item) bool {
		volume += item.(*PriceLevel).Volume
		return true
	})
	return volume
}

// OrderBook holds both sides of a single symbol's book plus an id
// index used for duplicate rejection. Invariant: every order present
// in a side has RemainingQuantity > 0; an order is removed from its
// side exactly when its remaining quantity reaches zero.
//
// The book carries no lock of its own. It is owned by the
// MatchingEngine and only ever mutated under the engine's single
// sequencing point.
type OrderBook struct {
	Symbol string
	Bids   *BookSide
	Asks   *BookSide
	orders map[string]*models.Order
}

// NewOrderBook creates a new order book for a symbol
func NewOrderBook(symbol string) *OrderBook {
	return &OrderBook{
		Symbol: symbol,
		Bids:   NewBookSide(models.SideBuy),
		Asks:   NewBookSide(models.SideSell),
		orders: make(map[string]*models.Order),
	}
}

func (ob *OrderBook) sideOf(side models.Side) *BookSide {
	if side == models.SideBuy {
		return ob.Bids
	}
	return ob.Asks
}

// Contains reports whether an order with this id is resting in the book.
func (ob *OrderBook) Contains(orderID string) bool {
	_, exists := ob.orders[orderID]
	return exists
}

// Insert adds a resting order to its side, maintaining price-time
// priority: orders queue at the back of their price level, and the
// level tree keeps levels ordered by price.
func (ob *OrderBook) Insert(order *models.Order) {
	level := ob.sideOf(order.Side).getOrCreatePriceLevel(order.Price)
	level.AddOrder(order)
	ob.orders[order.ID] = order
}

// BestBid returns the highest-priority resting buy order, or nil.
func (ob *OrderBook) BestBid() *models.Order {
	return ob.Bids.PeekBest()
}

// BestAsk returns the highest-priority resting sell order, or nil.
func (ob *OrderBook) BestAsk() *models.Order {
	return ob.Asks.PeekBest()
}

// FillBest applies a fill to the best resting order on the given side
// and returns it. The order is removed from the book the moment its
// remaining quantity reaches zero, so a fully filled order is never
// observable in a side.
func (ob *OrderBook) FillBest(side models.Side, quantity int64) *models.Order {
	bs := ob.sideOf(side)
	level := bs.BestLevel()
	if level == nil {
		return nil
	}

	element := level.Orders.Front()
	order := element.Value.(*models.Order)
	order.Fill(quantity)
	level.Volume -= quantity

	if order.IsFilled() {
		level.Orders.Remove(element)
		delete(ob.orders, order.ID)
		if level.IsEmpty() {
			bs.removePriceLevel(level.Price)
		}
	}

	return order
}

// IsCrossed reports whether the best bid price meets or exceeds the
// best ask price. Transient during matching, never observable after
// Submit returns.
func (ob *OrderBook) IsCrossed() bool {
	bid, ask := ob.BestBid(), ob.BestAsk()
	return bid != nil && ask != nil && bid.Price >= ask.Price
}

// Spread returns bestAsk - bestBid in ticks, or zero if either side is
// empty.
func (ob *OrderBook) Spread() models.Price {
	bid, ask := ob.BestBid(), ob.BestAsk()
	if bid == nil || ask == nil {
		return 0
	}
	return ask.Price - bid.Price
}

// Size returns the total number of resting orders in the book.
func (ob *OrderBook) Size() int {
	return len(ob.orders)
}
