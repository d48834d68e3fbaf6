package services

import (
	"context"
	"testing"
	"time"

	"cardbot/domain"
	"cardbot/domain/entities"
	"cardbot/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestEventService(m *TestMocks, picker *RewardPicker) *eventService {
	return NewEventService(TestGuildID, m.Ledger, m.EventRepo, m.SetRepo, m.RarityRepo, picker, m.EventPublisher,
		func() time.Time { return testNow }).(*eventService)
}

func TestEventService_Claim_Cooldown(t *testing.T) {
	t.Parallel()

	event := &entities.Event{GuildID: TestGuildID, Name: TestEventName, PointReward: 10, CooldownHours: 24}

	tests := []struct {
		name      string
		lastClaim time.Time
		wantMsg   string
	}{
		{
			name:      "claimed an hour ago",
			lastClaim: testNow.Add(-time.Hour),
			wantMsg:   "You can claim **Daily** again in 23 hours.",
		},
		{
			name:      "claimed 23h30m ago",
			lastClaim: testNow.Add(-(23*time.Hour + 30*time.Minute)),
			wantMsg:   "You can claim **Daily** again in 30 minutes.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mocks := NewTestMocks()
			mocks.EventRepo.On("Get", mock.Anything, TestEventName).Return(event, nil)
			mocks.EventRepo.On("GetClaim", mock.Anything, TestUser1ID, TestEventName).
				Return(&entities.EventClaim{UserID: TestUser1ID, EventName: TestEventName, LastClaim: tt.lastClaim}, nil)

			_, err := newTestEventService(mocks, nil).Claim(context.Background(), TestUser1ID, TestEventName)

			require.ErrorIs(t, err, domain.ErrCooldown)
			msg, _ := domain.UserMessage(err)
			assert.Equal(t, tt.wantMsg, msg)
			mocks.Ledger.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			mocks.EventRepo.AssertNotCalled(t, "UpsertClaim", mock.Anything, mock.Anything)
		})
	}
}

func TestEventService_Claim_PointsOnly(t *testing.T) {
	mocks := NewTestMocks()
	event := &entities.Event{GuildID: TestGuildID, Name: TestEventName, PointReward: 25, CooldownHours: 24}
	mocks.EventRepo.On("Get", mock.Anything, TestEventName).Return(event, nil)
	mocks.EventRepo.On("GetClaim", mock.Anything, TestUser1ID, TestEventName).
		Return(&entities.EventClaim{LastClaim: testNow.Add(-25 * time.Hour)}, nil)
	mocks.Ledger.On("Credit", mock.Anything, TestUser1ID, int64(25), entities.TransactionTypeEventReward, mock.Anything).Return(int64(125), nil)
	mocks.EventRepo.On("UpsertClaim", mock.Anything, mock.MatchedBy(func(c *entities.EventClaim) bool {
		return c.LastClaim.Equal(testNow) && c.UserID == TestUser1ID
	})).Return(nil)
	mocks.ExpectEventPublish(events.EventTypeEventClaimed)

	result, err := newTestEventService(mocks, nil).Claim(context.Background(), TestUser1ID, TestEventName)

	require.NoError(t, err)
	assert.Equal(t, int64(25), result.PointsEarned)
	assert.Equal(t, int64(125), result.NewBalance)
	assert.Nil(t, result.Card)
	mocks.AssertAllExpectations(t)
}

func TestEventService_Claim_CardReward(t *testing.T) {
	t.Parallel()

	event := &entities.Event{GuildID: TestGuildID, Name: TestEventName, CooldownHours: 24, SetIDs: []int64{TestSetID}}
	dragon := testCard(TestCardID, "Dragon", TestRarityName)

	t.Run("awards a weighted card", func(t *testing.T) {
		mocks := NewTestMocks()
		mocks.EventRepo.On("Get", mock.Anything, TestEventName).Return(event, nil)
		mocks.EventRepo.On("GetClaim", mock.Anything, TestUser1ID, TestEventName).Return(nil, nil)
		mocks.Ledger.On("Balance", mock.Anything, TestUser1ID).Return(int64(0), nil)
		mocks.SetRepo.On("ListCards", mock.Anything, TestSetID).Return([]*entities.Card{dragon}, nil)
		mocks.RarityRepo.On("List", mock.Anything).Return([]*entities.Rarity{{Name: TestRarityName, Weight: 0.2}}, nil)
		mocks.Ledger.On("AddCard", mock.Anything, TestUser1ID, TestCardID, int64(1)).Return(int64(1), nil)
		mocks.EventRepo.On("UpsertClaim", mock.Anything, mock.Anything).Return(nil)
		mocks.EventPublisher.On("Publish", mock.MatchedBy(func(e events.Event) bool {
			ec, ok := e.(events.EventClaimedEvent)
			return ok && ec.CardID == TestCardID
		})).Return(nil)

		result, err := newTestEventService(mocks, NewRewardPicker(fixedSource{})).Claim(context.Background(), TestUser1ID, TestEventName)

		require.NoError(t, err)
		assert.Equal(t, dragon, result.Card)
		mocks.AssertAllExpectations(t)
	})

	t.Run("empty set still starts the cooldown", func(t *testing.T) {
		mocks := NewTestMocks()
		mocks.EventRepo.On("Get", mock.Anything, TestEventName).Return(event, nil)
		mocks.EventRepo.On("GetClaim", mock.Anything, TestUser1ID, TestEventName).Return(nil, nil)
		mocks.Ledger.On("Balance", mock.Anything, TestUser1ID).Return(int64(0), nil)
		mocks.SetRepo.On("ListCards", mock.Anything, TestSetID).Return([]*entities.Card{}, nil)
		mocks.EventRepo.On("UpsertClaim", mock.Anything, mock.Anything).Return(nil)
		mocks.ExpectEventPublish(events.EventTypeEventClaimed)

		result, err := newTestEventService(mocks, NewRewardPicker(fixedSource{})).Claim(context.Background(), TestUser1ID, TestEventName)

		require.NoError(t, err)
		assert.Nil(t, result.Card)
		assert.Equal(t, "No card reward available.", result.NoCardReason)
		mocks.Ledger.AssertNotCalled(t, "AddCard", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mocks.AssertAllExpectations(t)
	})
}

func TestEventService_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		event    *entities.Event
		existing *entities.Event
		wantKind error
	}{
		{name: "zero cooldown", event: &entities.Event{Name: "X", CooldownHours: 0}, wantKind: domain.ErrInvalid},
		{name: "negative reward", event: &entities.Event{Name: "X", PointReward: -1, CooldownHours: 1}, wantKind: domain.ErrInvalid},
		{name: "duplicate", event: &entities.Event{Name: "X", CooldownHours: 1}, existing: &entities.Event{Name: "X"}, wantKind: domain.ErrInvalid},
		{name: "valid", event: &entities.Event{Name: " X ", PointReward: 5, CooldownHours: 24}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mocks := NewTestMocks()
			mocks.EventRepo.On("Get", mock.Anything, "X").Return(tt.existing, nil).Maybe()
			mocks.EventRepo.On("Create", mock.Anything, tt.event).Return(nil).Maybe()

			err := newTestEventService(mocks, nil).Create(context.Background(), tt.event)

			if tt.wantKind != nil {
				assert.ErrorIs(t, err, tt.wantKind)
				mocks.EventRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "X", tt.event.Name)
			assert.Equal(t, TestGuildID, tt.event.GuildID)
		})
	}
}

func TestEventService_Update(t *testing.T) {
	t.Parallel()

	stored := func() *entities.Event {
		return &entities.Event{GuildID: TestGuildID, Name: TestEventName, PointReward: 10, CooldownHours: 24}
	}

	t.Run("changed cooldown clears claims", func(t *testing.T) {
		mocks := NewTestMocks()
		mocks.EventRepo.On("Get", mock.Anything, TestEventName).Return(stored(), nil)
		mocks.EventRepo.On("ResetClaims", mock.Anything, TestEventName).Return(int64(3), nil)
		mocks.EventRepo.On("Update", mock.Anything, TestEventName, mock.MatchedBy(func(e *entities.Event) bool {
			return e.Name == TestEventName && e.CooldownHours == 1
		})).Return(nil)

		edited := stored()
		edited.CooldownHours = 1
		require.NoError(t, newTestEventService(mocks, nil).Update(context.Background(), TestEventName, edited))
		mocks.AssertAllExpectations(t)
	})

	t.Run("renames", func(t *testing.T) {
		mocks := NewTestMocks()
		mocks.EventRepo.On("Get", mock.Anything, TestEventName).Return(stored(), nil)
		mocks.EventRepo.On("Get", mock.Anything, "Weekly").Return(nil, nil)
		mocks.EventRepo.On("ResetClaims", mock.Anything, TestEventName).Return(int64(0), nil)
		mocks.EventRepo.On("Update", mock.Anything, TestEventName, mock.MatchedBy(func(e *entities.Event) bool {
			return e.Name == "Weekly"
		})).Return(nil)

		edited := stored()
		edited.Name = " Weekly "
		require.NoError(t, newTestEventService(mocks, nil).Update(context.Background(), TestEventName, edited))
		assert.Equal(t, "Weekly", edited.Name)
		mocks.AssertAllExpectations(t)
	})

	t.Run("rename onto an existing event", func(t *testing.T) {
		mocks := NewTestMocks()
		mocks.EventRepo.On("Get", mock.Anything, TestEventName).Return(stored(), nil)
		mocks.EventRepo.On("Get", mock.Anything, "Weekly").Return(&entities.Event{Name: "Weekly", CooldownHours: 168}, nil)

		edited := stored()
		edited.Name = "Weekly"
		err := newTestEventService(mocks, nil).Update(context.Background(), TestEventName, edited)

		require.ErrorIs(t, err, domain.ErrInvalid)
		msg, _ := domain.UserMessage(err)
		assert.Equal(t, "An event named `Weekly` already exists.", msg)
		mocks.EventRepo.AssertNotCalled(t, "ResetClaims", mock.Anything, mock.Anything)
		mocks.EventRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown event", func(t *testing.T) {
		mocks := NewTestMocks()
		mocks.EventRepo.On("Get", mock.Anything, "Nope").Return(nil, nil)

		err := newTestEventService(mocks, nil).Update(context.Background(), "Nope", stored())

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventService_ResolveSets(t *testing.T) {
	mocks := NewTestMocks()
	mocks.SetRepo.On("GetByName", mock.Anything, "Base").Return(&entities.CardSet{ID: 1, Name: "Base"}, nil)
	mocks.SetRepo.On("GetByName", mock.Anything, "base").Return(&entities.CardSet{ID: 1, Name: "Base"}, nil)
	mocks.SetRepo.On("GetByName", mock.Anything, "Missing").Return(nil, nil)
	service := newTestEventService(mocks, nil)

	ids, err := service.ResolveSets(context.Background(), []string{"Base", " base ", ""})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids)

	_, err = service.ResolveSets(context.Background(), []string{"Missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
