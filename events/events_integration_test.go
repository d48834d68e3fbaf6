package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"cardbot/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEventDeliveryIntegration tests the complete event flow from TransactionalBus to main Bus
func TestEventDeliveryIntegration(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventReceived := make(chan BalanceChangeEvent, 1)
	mainBus.Subscribe(EventTypeBalanceChange, func(ctx context.Context, event Event) {
		if balanceEvent, ok := event.(BalanceChangeEvent); ok {
			eventReceived <- balanceEvent
		} else {
			t.Errorf("Expected BalanceChangeEvent, got %T", event)
		}
	})

	testEvent := BalanceChangeEvent{
		UserID:          123456,
		GuildID:         789,
		OldBalance:      1000,
		NewBalance:      1050,
		TransactionType: entities.TransactionTypeBurn,
		ChangeAmount:    50,
	}

	require.NoError(t, transactionalBus.Publish(testEvent))
	assert.Equal(t, 1, transactionalBus.Pending())

	// Flushing simulates a successful commit
	require.NoError(t, transactionalBus.Flush(context.Background()))
	assert.Equal(t, 0, transactionalBus.Pending())

	select {
	case received := <-eventReceived:
		assert.Equal(t, testEvent, received)
	case <-time.After(2 * time.Second):
		t.Fatal("Event was not received within timeout")
	}
}

// TestMultipleEventsDelivery tests delivering multiple events in sequence
func TestMultipleEventsDelivery(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventsReceived := make(chan Event, 3)
	var wg sync.WaitGroup
	wg.Add(3)

	mainBus.SubscribeAll(func(ctx context.Context, event Event) {
		defer wg.Done()
		eventsReceived <- event
	})

	_ = transactionalBus.Publish(BalanceChangeEvent{UserID: 1, GuildID: 100, ChangeAmount: -20, TransactionType: entities.TransactionTypeMarketBuy})
	_ = transactionalBus.Publish(InventoryChangeEvent{UserID: 1, GuildID: 100, CardID: "00000001", Delta: 1, NewQuantity: 1})
	_ = transactionalBus.Publish(ListingSoldEvent{GuildID: 100, ListingID: 5, SellerID: 2, BuyerID: 1, Price: 20})

	require.NoError(t, transactionalBus.Flush(context.Background()))
	wg.Wait()
	close(eventsReceived)

	types := make(map[EventType]bool)
	for ev := range eventsReceived {
		types[ev.Type()] = true
	}
	assert.True(t, types[EventTypeBalanceChange])
	assert.True(t, types[EventTypeInventoryChange])
	assert.True(t, types[EventTypeListingSold])
}

// TestTransactionalBusDiscard tests that discarded events are not delivered
func TestTransactionalBusDiscard(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventReceived := make(chan bool, 1)
	mainBus.Subscribe(EventTypeLotteryWon, func(ctx context.Context, event Event) {
		eventReceived <- true
	})

	_ = transactionalBus.Publish(LotteryWonEvent{GuildID: 1, LotteryID: 2, WinnerID: 3, PointsWon: 95})

	// Discarding simulates a rollback
	transactionalBus.Discard()
	require.NoError(t, transactionalBus.Flush(context.Background()))

	select {
	case <-eventReceived:
		t.Fatal("Event was received despite being discarded")
	case <-time.After(100 * time.Millisecond):
	}
}

// TestBusRecoversFromPanics checks that a panicking handler does not stop other handlers
func TestBusRecoversFromPanics(t *testing.T) {
	bus := NewBus()
	done := make(chan struct{})

	bus.Subscribe(EventTypeTradeSettled, func(ctx context.Context, event Event) {
		panic("boom")
	})
	bus.Subscribe(EventTypeTradeSettled, func(ctx context.Context, event Event) {
		close(done)
	})

	bus.Emit(context.Background(), TradeSettledEvent{GuildID: 1, TradeID: 1})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("second handler did not run")
	}
}
