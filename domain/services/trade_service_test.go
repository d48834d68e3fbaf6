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

func newTestTrade(m *TestMocks, book *TradeOfferBook) *tradeService {
	return NewTradeService(TestGuildID, m.Ledger, m.CardRepo, m.TradeRepo, book, m.EventPublisher).(*tradeService)
}

func TestTradeService_Propose(t *testing.T) {
	t.Parallel()

	offered := testCard(TestCardID, "Dragon", TestRarityName)
	requested := testCard(TestOtherCard, "Phoenix", TestRarityName)

	tests := []struct {
		name     string
		setup    func(*TestMocks)
		wantKind error
		wantMsg  string
	}{
		{
			name: "initiator lacks the offered card",
			setup: func(m *TestMocks) {
				m.Ledger.On("Quantity", mock.Anything, TestUser1ID, TestCardID).Return(int64(0), nil)
			},
			wantKind: domain.ErrInsufficient,
			wantMsg:  "You do not own any copies of **Dragon**.",
		},
		{
			name: "recipient lacks the requested card",
			setup: func(m *TestMocks) {
				m.Ledger.On("Quantity", mock.Anything, TestUser1ID, TestCardID).Return(int64(1), nil)
				m.Ledger.On("Quantity", mock.Anything, TestUser2ID, TestOtherCard).Return(int64(0), nil)
			},
			wantKind: domain.ErrInsufficient,
			wantMsg:  "The other user does not own any copies of **Phoenix**.",
		},
		{
			name: "both hold their cards",
			setup: func(m *TestMocks) {
				m.Ledger.On("Quantity", mock.Anything, TestUser1ID, TestCardID).Return(int64(2), nil)
				m.Ledger.On("Quantity", mock.Anything, TestUser2ID, TestOtherCard).Return(int64(1), nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mocks := NewTestMocks()
			mocks.ExpectCardLookup("Dragon", offered)
			mocks.ExpectCardLookup("Phoenix", requested)
			tt.setup(mocks)
			book := NewTradeOfferBook(time.Hour)

			offer, err := newTestTrade(mocks, book).Propose(context.Background(), TestUser1ID, TestUser2ID, "Dragon", "Phoenix")

			if tt.wantKind != nil {
				require.ErrorIs(t, err, tt.wantKind)
				msg, _ := domain.UserMessage(err)
				assert.Equal(t, tt.wantMsg, msg)
				assert.Equal(t, 0, book.Len())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Dragon", offer.OfferedCardName)
			assert.Equal(t, 1, book.Len())
			mocks.AssertAllExpectations(t)
		})
	}

	t.Run("self trade", func(t *testing.T) {
		mocks := NewTestMocks()
		_, err := newTestTrade(mocks, NewTradeOfferBook(time.Hour)).Propose(context.Background(), TestUser1ID, TestUser1ID, "a", "b")
		assert.ErrorIs(t, err, domain.ErrInvalid)
	})
}

func TestTradeService_Accept(t *testing.T) {
	t.Parallel()

	put := func(book *TradeOfferBook) *entities.TradeOffer {
		o := newTestOffer()
		o.OfferedCardName = "Dragon"
		o.RequestedCardName = "Phoenix"
		return book.Put(o)
	}

	t.Run("only the recipient may accept", func(t *testing.T) {
		mocks := NewTestMocks()
		book := NewTradeOfferBook(time.Hour)
		offer := put(book)

		_, err := newTestTrade(mocks, book).Accept(context.Background(), offer.ID, TestUser1ID)

		assert.ErrorIs(t, err, domain.ErrInvalid)
		assert.Equal(t, 1, book.Len())
	})

	t.Run("other guild cannot see the offer", func(t *testing.T) {
		mocks := NewTestMocks()
		book := NewTradeOfferBook(time.Hour)
		offer := put(book)
		other := NewTradeService(TestGuildID+1, mocks.Ledger, mocks.CardRepo, mocks.TradeRepo, book, mocks.EventPublisher)

		_, err := other.Accept(context.Background(), offer.ID, TestUser2ID)

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("initiator sold the card meanwhile", func(t *testing.T) {
		mocks := NewTestMocks()
		book := NewTradeOfferBook(time.Hour)
		offer := put(book)
		mocks.Ledger.On("RemoveCard", mock.Anything, TestUser1ID, TestCardID, int64(1)).
			Return(int64(0), domain.Insufficient("Insufficient quantity."))

		_, err := newTestTrade(mocks, book).Accept(context.Background(), offer.ID, TestUser2ID)

		require.ErrorIs(t, err, domain.ErrInsufficient)
		mocks.TradeRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
		assert.Equal(t, 0, book.Len())
	})

	t.Run("swaps cards and records history", func(t *testing.T) {
		mocks := NewTestMocks()
		book := NewTradeOfferBook(time.Hour)
		offer := put(book)
		mocks.Ledger.On("RemoveCard", mock.Anything, TestUser1ID, TestCardID, int64(1)).Return(int64(0), nil)
		mocks.Ledger.On("RemoveCard", mock.Anything, TestUser2ID, TestOtherCard, int64(1)).Return(int64(0), nil)
		mocks.Ledger.On("AddCard", mock.Anything, TestUser2ID, TestCardID, int64(1)).Return(int64(1), nil)
		mocks.Ledger.On("AddCard", mock.Anything, TestUser1ID, TestOtherCard, int64(1)).Return(int64(1), nil)
		mocks.TradeRepo.On("Record", mock.Anything, mock.MatchedBy(func(r *entities.TradeRecord) bool {
			return r.InitiatorCardID == TestCardID && r.RecipientCardID == TestOtherCard
		})).Return(nil)
		mocks.ExpectEventPublish(events.EventTypeTradeSettled)

		record, err := newTestTrade(mocks, book).Accept(context.Background(), offer.ID, TestUser2ID)

		require.NoError(t, err)
		assert.Equal(t, "Phoenix", record.RecipientCardName)
		mocks.AssertAllExpectations(t)

		_, err = newTestTrade(mocks, book).Accept(context.Background(), offer.ID, TestUser2ID)
		assert.ErrorIs(t, err, domain.ErrUnavailable)
	})
}

func TestTradeService_Deny(t *testing.T) {
	mocks := NewTestMocks()
	book := NewTradeOfferBook(time.Hour)
	offer := book.Put(newTestOffer())
	service := newTestTrade(mocks, book)

	_, err := service.Deny(context.Background(), offer.ID, int64(12345))
	assert.ErrorIs(t, err, domain.ErrInvalid)

	denied, err := service.Deny(context.Background(), offer.ID, TestUser1ID)
	require.NoError(t, err)
	assert.Equal(t, offer.ID, denied.ID)
	assert.Equal(t, 0, book.Len())
	mocks.Ledger.AssertNotCalled(t, "RemoveCard", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
