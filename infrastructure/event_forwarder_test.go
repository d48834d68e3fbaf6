package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"cardbot/domain/entities"
	"cardbot/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMessagePublisher struct {
	mock.Mock
}

func (m *mockMessagePublisher) Publish(ctx context.Context, subject string, data []byte) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

func TestEventForwarder_Forward(t *testing.T) {
	publisher := new(mockMessagePublisher)
	forwarder := NewEventForwarder(publisher)
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	forwarder.now = func() time.Time { return fixed }

	event := events.BalanceChangeEvent{
		UserID:          100,
		GuildID:         555,
		OldBalance:      10,
		NewBalance:      60,
		TransactionType: entities.TransactionTypeBurn,
		ChangeAmount:    50,
	}

	var published []byte
	publisher.On("Publish", mock.Anything, "cardbot.events.balance_change", mock.Anything).
		Run(func(args mock.Arguments) {
			published = args.Get(2).([]byte)
		}).
		Return(nil).Once()

	require.NoError(t, forwarder.Forward(context.Background(), event))
	publisher.AssertExpectations(t)

	var envelope EventEnvelope
	require.NoError(t, json.Unmarshal(published, &envelope))
	assert.Equal(t, "balance_change", envelope.EventType)
	assert.Equal(t, "cardbot", envelope.SourceService)
	assert.True(t, envelope.Timestamp.Equal(fixed))
	_, err := uuid.Parse(envelope.EventID)
	assert.NoError(t, err)

	var payload events.BalanceChangeEvent
	require.NoError(t, json.Unmarshal(envelope.Payload, &payload))
	assert.Equal(t, event, payload)
}

func TestEventForwarder_PublishError(t *testing.T) {
	publisher := new(mockMessagePublisher)
	forwarder := NewEventForwarder(publisher)

	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("nats down"))

	err := forwarder.Forward(context.Background(), events.TradeSettledEvent{GuildID: 1})
	assert.EqualError(t, err, "nats down")
}

func TestEventForwarder_AttachForwardsCommittedEvents(t *testing.T) {
	bus := events.NewBus()
	publisher := new(mockMessagePublisher)
	forwarder := NewEventForwarder(publisher)
	forwarder.Attach(bus)

	done := make(chan struct{})
	publisher.On("Publish", mock.Anything, "cardbot.events.lottery_won", mock.Anything).
		Run(func(mock.Arguments) { close(done) }).
		Return(nil).Once()

	tx := events.NewTransactionalBus(bus)
	require.NoError(t, tx.Publish(events.LotteryWonEvent{GuildID: 1}))
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)

	require.NoError(t, tx.Flush(context.Background()))
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("event was not forwarded")
	}
}

func TestSubjectFor(t *testing.T) {
	for _, eventType := range events.AllEventTypes {
		assert.Equal(t, "cardbot.events."+string(eventType), SubjectFor(eventType))
	}
}
