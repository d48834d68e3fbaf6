package services

import (
	"context"
	"testing"

	"cardbot/domain"
	"cardbot/domain/entities"
	"cardbot/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestMarket(m *TestMocks) *marketService {
	return NewMarketService(TestGuildID, m.Ledger, m.CardRepo, m.ListingRepo, m.EventPublisher).(*marketService)
}

func TestMarketService_Sell(t *testing.T) {
	t.Parallel()

	card := testCard(TestCardID, "Dragon", TestRarityName)

	t.Run("non-positive price", func(t *testing.T) {
		mocks := NewTestMocks()
		_, err := newTestMarket(mocks).Sell(context.Background(), TestUser1ID, "Dragon", 0)
		assert.ErrorIs(t, err, domain.ErrInvalid)
	})

	t.Run("seller without a copy", func(t *testing.T) {
		mocks := NewTestMocks()
		mocks.ExpectCardLookup("Dragon", card)
		mocks.Ledger.On("RemoveCard", mock.Anything, TestUser1ID, TestCardID, int64(1)).
			Return(int64(0), domain.Insufficient("Insufficient quantity."))

		_, err := newTestMarket(mocks).Sell(context.Background(), TestUser1ID, "Dragon", 100)

		assert.ErrorIs(t, err, domain.ErrInsufficient)
		mocks.ListingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("creates a listing and escrows the card", func(t *testing.T) {
		mocks := NewTestMocks()
		mocks.ExpectCardLookup("Dragon", card)
		mocks.Ledger.On("RemoveCard", mock.Anything, TestUser1ID, TestCardID, int64(1)).Return(int64(0), nil)
		mocks.ListingRepo.On("Create", mock.Anything, mock.MatchedBy(func(l *entities.SaleListing) bool {
			return l.UserID == TestUser1ID && l.CardID == TestCardID && l.Price == 100 && l.GuildID == TestGuildID
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*entities.SaleListing).ID = TestListingID
		}).Return(nil)

		listing, err := newTestMarket(mocks).Sell(context.Background(), TestUser1ID, "Dragon", 100)

		require.NoError(t, err)
		assert.Equal(t, TestListingID, listing.ID)
		assert.Equal(t, "Dragon", listing.CardName)
		mocks.AssertAllExpectations(t)
	})
}

func TestMarketService_Buy(t *testing.T) {
	t.Parallel()

	listing := func() *entities.SaleListing {
		return &entities.SaleListing{ID: TestListingID, GuildID: TestGuildID, UserID: TestUser2ID, CardID: TestCardID, Price: 100}
	}

	tests := []struct {
		name     string
		setup    func(*TestMocks)
		wantKind error
		wantMsg  string
	}{
		{
			name: "listing already gone",
			setup: func(m *TestMocks) {
				m.ListingRepo.On("GetByID", mock.Anything, TestListingID).Return(nil, nil)
			},
			wantKind: domain.ErrUnavailable,
			wantMsg:  "This card is no longer available.",
		},
		{
			name: "buyer cannot afford it",
			setup: func(m *TestMocks) {
				m.ListingRepo.On("GetByID", mock.Anything, TestListingID).Return(listing(), nil)
				m.Ledger.On("Debit", mock.Anything, TestUser1ID, int64(100), entities.TransactionTypeMarketBuy, mock.Anything).
					Return(int64(0), domain.Insufficient("Insufficient balance."))
			},
			wantKind: domain.ErrInsufficient,
			wantMsg:  "You do not have enough points to buy this card.",
		},
		{
			name: "another buyer claimed it first",
			setup: func(m *TestMocks) {
				m.ListingRepo.On("GetByID", mock.Anything, TestListingID).Return(listing(), nil)
				m.Ledger.On("Debit", mock.Anything, TestUser1ID, int64(100), entities.TransactionTypeMarketBuy, mock.Anything).Return(int64(0), nil)
				m.ListingRepo.On("Claim", mock.Anything, TestListingID).Return(nil, nil)
			},
			wantKind: domain.ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mocks := NewTestMocks()
			tt.setup(mocks)

			_, err := newTestMarket(mocks).Buy(context.Background(), TestUser1ID, TestListingID)

			require.ErrorIs(t, err, tt.wantKind)
			if tt.wantMsg != "" {
				msg, _ := domain.UserMessage(err)
				assert.Equal(t, tt.wantMsg, msg)
			}
			mocks.Ledger.AssertNotCalled(t, "AddCard", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			mocks.AssertAllExpectations(t)
		})
	}

	t.Run("own listing", func(t *testing.T) {
		mocks := NewTestMocks()
		mocks.ListingRepo.On("GetByID", mock.Anything, TestListingID).Return(listing(), nil)

		_, err := newTestMarket(mocks).Buy(context.Background(), TestUser2ID, TestListingID)

		assert.ErrorIs(t, err, domain.ErrInvalid)
	})

	t.Run("settles payment and card", func(t *testing.T) {
		mocks := NewTestMocks()
		mocks.ListingRepo.On("GetByID", mock.Anything, TestListingID).Return(listing(), nil)
		mocks.Ledger.On("Debit", mock.Anything, TestUser1ID, int64(100), entities.TransactionTypeMarketBuy, mock.Anything).Return(int64(400), nil)
		mocks.ListingRepo.On("Claim", mock.Anything, TestListingID).Return(listing(), nil)
		mocks.Ledger.On("Credit", mock.Anything, TestUser2ID, int64(100), entities.TransactionTypeMarketSale, mock.Anything).Return(int64(100), nil)
		mocks.Ledger.On("AddCard", mock.Anything, TestUser1ID, TestCardID, int64(1)).Return(int64(1), nil)
		mocks.CardRepo.On("GetByID", mock.Anything, TestCardID).Return(testCard(TestCardID, "Dragon", TestRarityName), nil)
		mocks.ExpectEventPublish(events.EventTypeListingSold)

		result, err := newTestMarket(mocks).Buy(context.Background(), TestUser1ID, TestListingID)

		require.NoError(t, err)
		assert.Equal(t, int64(400), result.BuyerBalance)
		assert.Equal(t, int64(100), result.SellerBalance)
		assert.Equal(t, "Dragon", result.Listing.CardName)
		mocks.AssertAllExpectations(t)
	})
}

func TestMarketService_RemoveSale(t *testing.T) {
	t.Parallel()

	t.Run("not the seller's listing", func(t *testing.T) {
		mocks := NewTestMocks()
		mocks.ListingRepo.On("ClaimOwned", mock.Anything, TestListingID, TestUser1ID).Return(nil, nil)

		_, err := newTestMarket(mocks).RemoveSale(context.Background(), TestUser1ID, TestListingID)

		require.ErrorIs(t, err, domain.ErrNotFound)
		msg, _ := domain.UserMessage(err)
		assert.Equal(t, "No such sale listing found for your account.", msg)
	})

	t.Run("returns the card", func(t *testing.T) {
		mocks := NewTestMocks()
		l := &entities.SaleListing{ID: TestListingID, UserID: TestUser1ID, CardID: TestCardID, Price: 10}
		mocks.ListingRepo.On("ClaimOwned", mock.Anything, TestListingID, TestUser1ID).Return(l, nil)
		mocks.Ledger.On("AddCard", mock.Anything, TestUser1ID, TestCardID, int64(1)).Return(int64(1), nil)

		got, err := newTestMarket(mocks).RemoveSale(context.Background(), TestUser1ID, TestListingID)

		require.NoError(t, err)
		assert.Equal(t, l, got)
		mocks.AssertAllExpectations(t)
	})
}
