package events

import (
	"context"
	"sync"

	"cardbot/domain/entities"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange   EventType = "balance_change"
	EventTypeInventoryChange EventType = "inventory_change"
	EventTypeListingSold     EventType = "listing_sold"
	EventTypeTradeSettled    EventType = "trade_settled"
	EventTypeLotteryWon      EventType = "lottery_won"
	EventTypeEventClaimed    EventType = "event_claimed"
)

// AllEventTypes lists every event type the ledger raises
var AllEventTypes = []EventType{
	EventTypeBalanceChange,
	EventTypeInventoryChange,
	EventTypeListingSold,
	EventTypeTradeSettled,
	EventTypeLotteryWon,
	EventTypeEventClaimed,
}

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	UserID          int64                    `json:"user_id"`
	GuildID         int64                    `json:"guild_id"`
	OldBalance      int64                    `json:"old_balance"`
	NewBalance      int64                    `json:"new_balance"`
	TransactionType entities.TransactionType `json:"transaction_type"`
	ChangeAmount    int64                    `json:"change_amount"`
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// InventoryChangeEvent represents cards entering or leaving a user's inventory
type InventoryChangeEvent struct {
	UserID      int64  `json:"user_id"`
	GuildID     int64  `json:"guild_id"`
	CardID      string `json:"card_id"`
	Delta       int64  `json:"delta"`
	NewQuantity int64  `json:"new_quantity"`
}

func (e InventoryChangeEvent) Type() EventType {
	return EventTypeInventoryChange
}

// ListingSoldEvent represents a completed marketplace purchase
type ListingSoldEvent struct {
	GuildID   int64  `json:"guild_id"`
	ListingID int64  `json:"listing_id"`
	SellerID  int64  `json:"seller_id"`
	BuyerID   int64  `json:"buyer_id"`
	CardID    string `json:"card_id"`
	CardName  string `json:"card_name"`
	Price     int64  `json:"price"`
}

func (e ListingSoldEvent) Type() EventType {
	return EventTypeListingSold
}

// TradeSettledEvent represents an accepted and settled card trade
type TradeSettledEvent struct {
	GuildID           int64  `json:"guild_id"`
	TradeID           int64  `json:"trade_id"`
	InitiatorID       int64  `json:"initiator_id"`
	RecipientID       int64  `json:"recipient_id"`
	InitiatorCardName string `json:"initiator_card_name"`
	RecipientCardName string `json:"recipient_card_name"`
}

func (e TradeSettledEvent) Type() EventType {
	return EventTypeTradeSettled
}

// LotteryWonEvent represents a lottery whose winning number was bought
type LotteryWonEvent struct {
	GuildID       int64              `json:"guild_id"`
	LotteryID     int64              `json:"lottery_id"`
	LotteryName   string             `json:"lottery_name"`
	WinnerID      int64              `json:"winner_id"`
	WinningNumber int                `json:"winning_number"`
	PrizeType     entities.PrizeType `json:"prize_type"`
	PointsWon     int64              `json:"points_won"`
	HouseShare    int64              `json:"house_share"`
	CardName      string             `json:"card_name,omitempty"`
}

func (e LotteryWonEvent) Type() EventType {
	return EventTypeLotteryWon
}

// EventClaimedEvent represents a successful event reward claim
type EventClaimedEvent struct {
	GuildID      int64  `json:"guild_id"`
	UserID       int64  `json:"user_id"`
	EventName    string `json:"event_name"`
	PointsEarned int64  `json:"points_earned"`
	CardID       string `json:"card_id,omitempty"`
}

func (e EventClaimedEvent) Type() EventType {
	return EventTypeEventClaimed
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// SubscribeAll adds a handler for every known event type
func (b *Bus) SubscribeAll(handler Handler) {
	for _, eventType := range AllEventTypes {
		b.Subscribe(eventType, handler)
	}
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event to handlers")

	// Handlers run asynchronously so a slow subscriber never blocks the caller
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus holds events raised inside a unit of work until it commits.
// Flushes to the underlying event bus.
type TransactionalBus struct {
	real    *Bus
	pending []Event // stashed until Flush
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

// Publish queues an event until Flush
func (b *TransactionalBus) Publish(e Event) error {
	log.WithFields(log.Fields{
		"eventType":    e.Type(),
		"pendingCount": len(b.pending),
	}).Debug("Adding event to transactional bus pending queue")
	b.pending = append(b.pending, e)
	return nil
}

// Flush emits pending events; called after a successful commit
func (b *TransactionalBus) Flush(ctx context.Context) error {
	log.WithField("pendingEventCount", len(b.pending)).Debug("Flushing pending events to main event bus")

	// Handlers outlive the transaction, so they get a fresh context
	eventCtx := context.Background()
	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard drops pending events; called after a rollback
func (b *TransactionalBus) Discard() {
	if len(b.pending) > 0 {
		log.WithField("discardedEventCount", len(b.pending)).Debug("Discarding pending events")
	}
	b.pending = nil
}

// Pending returns the number of queued events
func (b *TransactionalBus) Pending() int {
	return len(b.pending)
}
