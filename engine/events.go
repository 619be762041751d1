package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/exchange-core/models"
)

type EventType string

const (
	EventTypeNewTrade      EventType = "NewTrade"
	EventTypeOrderAccepted EventType = "OrderAccepted"
	EventTypeBookChange    EventType = "BookChange"
)

type Event struct {
	Type      EventType
	Timestamp time.Time
	Data      interface{}
}

type NewTradeEvent struct {
	Sequence    uint64
	TradeID     uuid.UUID
	Symbol      string
	BuyOrderID  string
	SellOrderID string
	Price       models.Price
	Quantity    int64
	Timestamp   time.Time
}

type OrderAcceptedEvent struct {
	OrderID    string
	Symbol     string
	Side       models.Side
	Price      models.Price
	Quantity   int64
	ArrivalSeq uint64
	Timestamp  time.Time
}

type BookChangeEvent struct {
	Symbol    string
	Side      models.Side
	Action    string // "add" or "remove"
	Price     models.Price
	Quantity  int64
	Timestamp time.Time
}

type EventListener func(event Event)

// EventBus fans engine events out to observational listeners. Delivery
// is asynchronous and carries no ordering guarantee across events;
// anything that needs trades in sequence order must use the engine's
// synchronous trade handler instead.
type EventBus struct {
	listeners map[EventType][]EventListener
	mu        sync.RWMutex
}

func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventListener),
	}
}

func (eb *EventBus) Subscribe(eventType EventType, listener EventListener) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.listeners[eventType] = append(eb.listeners[eventType], listener)
}

func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	listeners := eb.listeners[event.Type]
	eb.mu.RUnlock()

	for _, listener := range listeners {
		go listener(event)
	}
}

// Unsubscribe removes all listeners for a specific event type
func (eb *EventBus) Unsubscribe(eventType EventType) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	delete(eb.listeners, eventType)
}

// GetListenerCount returns the number of listeners for an event type
func (eb *EventBus) GetListenerCount(eventType EventType) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.listeners[eventType])
}
