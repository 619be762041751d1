package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/yourusername/exchange-core/metrics"
	"github.com/yourusername/exchange-core/models"
	"github.com/yourusername/exchange-core/validation"
)

// MatchingEngine owns the per-symbol order books and runs the crossing
// loop of a continuous double auction. Books are created lazily on the
// first order for a symbol and live for the process lifetime; orders
// for different symbols never match against each other.
//
// WHY A SINGLE SEQUENCING POINT:
// Price-time priority is only meaningful under a global total order of
// arrivals. Submit assigns the arrival sequence and drains the crossing
// loop under one mutex, so ties are broken fairly even if callers ever
// submit from multiple goroutines. Matching itself is a bounded,
// non-blocking loop: it runs to completion before Submit returns, and
// the book is never left crossed between calls.
type MatchingEngine struct {
	mu    sync.Mutex
	books map[string]*OrderBook

	arrivalSeq uint64
	tradeSeq   uint64

	tradeHandler func(*models.Trade)
	eventBus     *EventBus
}

func NewMatchingEngine() *MatchingEngine {
	return &MatchingEngine{
		books:    make(map[string]*OrderBook),
		eventBus: NewEventBus(),
	}
}

// SetTradeHandler installs a handler invoked synchronously for each
// trade, in trade-sequence order, as it occurs. This is the execution
// reporter hook; once handed over, the trade is owned by the handler.
func (me *MatchingEngine) SetTradeHandler(handler func(*models.Trade)) {
	me.mu.Lock()
	defer me.mu.Unlock()
	me.tradeHandler = handler
}

func (me *MatchingEngine) GetEventBus() *EventBus {
	return me.eventBus
}

func (me *MatchingEngine) SubscribeToEvents(eventType EventType, listener EventListener) {
	me.eventBus.Subscribe(eventType, listener)
}

// book returns the symbol's order book, creating it on first use.
func (me *MatchingEngine) book(symbol string) *OrderBook {
	book, exists := me.books[symbol]
	if !exists {
		book = NewOrderBook(symbol)
		me.books[symbol] = book
	}
	return book
}

// Submit validates an order, assigns its arrival sequence, inserts it
// into its symbol's book, and drains the crossing loop. It returns the
// trades produced by this submission in sequence order (possibly
// empty). A rejected order causes no book mutation at all.
func (me *MatchingEngine) Submit(order *models.Order) ([]*models.Trade, error) {
	me.mu.Lock()
	defer me.mu.Unlock()

	if err := validation.ValidateOrder(order); err != nil {
		order.Reject()
		metrics.RecordOrderRejected(order.Symbol, rejectReason(err))
		return nil, err
	}

	book := me.book(order.Symbol)
	if book.Contains(order.ID) {
		order.Reject()
		metrics.RecordOrderRejected(order.Symbol, "duplicate_order_id")
		return nil, fmt.Errorf("%w: order %s already resting in %s",
			validation.ErrDuplicateOrderID, order.ID, order.Symbol)
	}

	me.arrivalSeq++
	order.ArrivalSeq = me.arrivalSeq
	book.Insert(order)

	metrics.RecordOrderSubmitted(order.Symbol, string(order.Side))
	me.publishOrderAccepted(order)
	me.publishBookChange(order.Symbol, order.Side, "add", order.Price, order.Quantity)

	trades := me.match(book)

	me.updateBookMetrics(book)

	return trades, nil
}

// match crosses the best bid against the best ask until the book is no
// longer crossed. Each step trades at the price of the order that was
// already resting before the crossing submission: only one side can
// have just arrived per Submit call, so the maker is whichever best
// order has the earlier arrival sequence, and the taker pays the
// maker's price.
func (me *MatchingEngine) match(book *OrderBook) []*models.Trade {
	var trades []*models.Trade

	for {
		bid, ask := book.BestBid(), book.BestAsk()
		if bid == nil || ask == nil || bid.Price < ask.Price {
			break
		}

		tradePrice := bid.Price
		if ask.ArrivalSeq < bid.ArrivalSeq {
			tradePrice = ask.Price
		}

		quantity := min(bid.RemainingQuantity(), ask.RemainingQuantity())

		book.FillBest(models.SideBuy, quantity)
		book.FillBest(models.SideSell, quantity)

		if bid.IsFilled() {
			me.publishBookChange(book.Symbol, bid.Side, "remove", bid.Price, bid.Quantity)
		}
		if ask.IsFilled() {
			me.publishBookChange(book.Symbol, ask.Side, "remove", ask.Price, ask.Quantity)
		}

		me.tradeSeq++
		trade := models.NewTrade(me.tradeSeq, book.Symbol, bid.ID, ask.ID, tradePrice, quantity)
		trades = append(trades, trade)

		metrics.RecordTrade(book.Symbol, float64(quantity))
		me.publishTrade(trade)

		if me.tradeHandler != nil {
			me.tradeHandler(trade)
		}
	}

	return trades
}

// Book returns the symbol's order book, or nil if no order for the
// symbol has ever been submitted. The caller must treat it as
// read-only; the engine stays the exclusive writer.
func (me *MatchingEngine) Book(symbol string) *OrderBook {
	me.mu.Lock()
	defer me.mu.Unlock()
	return me.books[symbol]
}

// BestBid returns the highest-priority resting buy order for a symbol.
func (me *MatchingEngine) BestBid(symbol string) *models.Order {
	me.mu.Lock()
	defer me.mu.Unlock()
	if book := me.books[symbol]; book != nil {
		return book.BestBid()
	}
	return nil
}

// BestAsk returns the highest-priority resting sell order for a symbol.
func (me *MatchingEngine) BestAsk(symbol string) *models.Order {
	me.mu.Lock()
	defer me.mu.Unlock()
	if book := me.books[symbol]; book != nil {
		return book.BestAsk()
	}
	return nil
}

// GetStats returns engine-level counters for diagnostics.
func (me *MatchingEngine) GetStats() map[string]interface{} {
	me.mu.Lock()
	defer me.mu.Unlock()

	totalOrders := 0
	for _, book := range me.books {
		totalOrders += book.Size()
	}

	return map[string]interface{}{
		"symbols":          len(me.books),
		"resting_orders":   totalOrders,
		"orders_sequenced": me.arrivalSeq,
		"trades_emitted":   me.tradeSeq,
	}
}

func (me *MatchingEngine) publishOrderAccepted(order *models.Order) {
	me.eventBus.Publish(Event{
		Type:      EventTypeOrderAccepted,
		Timestamp: time.Now(),
		Data: OrderAcceptedEvent{
			OrderID:    order.ID,
			Symbol:     order.Symbol,
			Side:       order.Side,
			Price:      order.Price,
			Quantity:   order.Quantity,
			ArrivalSeq: order.ArrivalSeq,
			Timestamp:  time.Now(),
		},
	})
}

func (me *MatchingEngine) publishTrade(trade *models.Trade) {
	me.eventBus.Publish(Event{
		Type:      EventTypeNewTrade,
		Timestamp: time.Now(),
		Data: NewTradeEvent{
			Sequence:    trade.Sequence,
			TradeID:     trade.TradeID,
			Symbol:      trade.Symbol,
			BuyOrderID:  trade.BuyOrderID,
			SellOrderID: trade.SellOrderID,
			Price:       trade.Price,
			Quantity:    trade.Quantity,
			Timestamp:   trade.Timestamp,
		},
	})
}

// publishBookChange announces a resting order entering or leaving a
// book. "add" fires on insert, "remove" when a fill takes the order
// out; partial fills change no book membership and stay silent.
func (me *MatchingEngine) publishBookChange(symbol string, side models.Side, action string, price models.Price, quantity int64) {
	me.eventBus.Publish(Event{
		Type:      EventTypeBookChange,
		Timestamp: time.Now(),
		Data: BookChangeEvent{
			Symbol:    symbol,
			Side:      side,
			Action:    action,
			Price:     price,
			Quantity:  quantity,
			Timestamp: time.Now(),
		},
	})
}

// updateBookMetrics refreshes the depth, best-price, and spread gauges
// for a symbol after a submission has fully settled.
func (me *MatchingEngine) updateBookMetrics(book *OrderBook) {
	metrics.UpdateBookDepth(book.Symbol, "buy", float64(book.Bids.OrderCount()))
	metrics.UpdateBookDepth(book.Symbol, "sell", float64(book.Asks.OrderCount()))

	bestBidPrice := 0.0
	bestAskPrice := 0.0
	if bid := book.BestBid(); bid != nil {
		bestBidPrice = bid.Price.Decimal().InexactFloat64()
	}
	if ask := book.BestAsk(); ask != nil {
		bestAskPrice = ask.Price.Decimal().InexactFloat64()
	}
	metrics.UpdateBestPrices(book.Symbol, bestBidPrice, bestAskPrice)
}

// rejectReason maps a validation error onto a stable metric label.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, validation.ErrInvalidSide):
		return "invalid_side"
	case errors.Is(err, validation.ErrInvalidPrice), errors.Is(err, validation.ErrPriceOutOfRange):
		return "invalid_price"
	case errors.Is(err, validation.ErrInvalidQuantity), errors.Is(err, validation.ErrQuantityOutOfRange):
		return "invalid_quantity"
	case errors.Is(err, validation.ErrInvalidSymbol):
		return "invalid_symbol"
	case errors.Is(err, validation.ErrInvalidOrderID):
		return "invalid_order_id"
	case errors.Is(err, validation.ErrDuplicateOrderID):
		return "duplicate_order_id"
	default:
		return "invalid_order"
	}
}
