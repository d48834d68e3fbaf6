package testhelpers

import (
	"context"

	"cardbot/domain/entities"
	"cardbot/domain/interfaces"

	"github.com/stretchr/testify/mock"
)

// MockLedgerService is a mock implementation of LedgerService
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Balance(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) Credit(ctx context.Context, userID int64, amount int64, txType entities.TransactionType, metadata map[string]any) (int64, error) {
	args := m.Called(ctx, userID, amount, txType, metadata)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) Debit(ctx context.Context, userID int64, amount int64, txType entities.TransactionType, metadata map[string]any) (int64, error) {
	args := m.Called(ctx, userID, amount, txType, metadata)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) Transfer(ctx context.Context, fromID, toID int64, amount int64) (*interfaces.TransferResult, error) {
	args := m.Called(ctx, fromID, toID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.TransferResult), args.Error(1)
}

func (m *MockLedgerService) SetBalance(ctx context.Context, userID int64, target int64) (int64, error) {
	args := m.Called(ctx, userID, target)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) AddCard(ctx context.Context, userID int64, cardID string, n int64) (int64, error) {
	args := m.Called(ctx, userID, cardID, n)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) RemoveCard(ctx context.Context, userID int64, cardID string, n int64) (int64, error) {
	args := m.Called(ctx, userID, cardID, n)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) Quantity(ctx context.Context, userID int64, cardID string) (int64, error) {
	args := m.Called(ctx, userID, cardID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) Inventory(ctx context.Context, userID int64) ([]*entities.InventoryCard, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.InventoryCard), args.Error(1)
}

func (m *MockLedgerService) GiftCard(ctx context.Context, fromID, toID int64, cardRef string) (*entities.Card, error) {
	args := m.Called(ctx, fromID, toID, cardRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Card), args.Error(1)
}

func (m *MockLedgerService) Leaderboard(ctx context.Context, limit int) ([]*entities.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LeaderboardEntry), args.Error(1)
}

// MockMarketService is a mock implementation of MarketService
type MockMarketService struct {
	mock.Mock
}

func (m *MockMarketService) Sell(ctx context.Context, userID int64, cardRef string, price int64) (*entities.SaleListing, error) {
	args := m.Called(ctx, userID, cardRef, price)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SaleListing), args.Error(1)
}

func (m *MockMarketService) Buy(ctx context.Context, buyerID int64, listingID int64) (*entities.PurchaseResult, error) {
	args := m.Called(ctx, buyerID, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PurchaseResult), args.Error(1)
}

func (m *MockMarketService) RemoveSale(ctx context.Context, userID int64, listingID int64) (*entities.SaleListing, error) {
	args := m.Called(ctx, userID, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SaleListing), args.Error(1)
}

func (m *MockMarketService) Listings(ctx context.Context, limit int) ([]*entities.SaleListing, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SaleListing), args.Error(1)
}

func (m *MockMarketService) ListingsBySeller(ctx context.Context, userID int64) ([]*entities.SaleListing, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SaleListing), args.Error(1)
}

// MockBurnService is a mock implementation of BurnService
type MockBurnService struct {
	mock.Mock
}

func (m *MockBurnService) Burn(ctx context.Context, userID int64, cardRef string) (*entities.BurnResult, error) {
	args := m.Called(ctx, userID, cardRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BurnResult), args.Error(1)
}

var (
	_ interfaces.LedgerService = (*MockLedgerService)(nil)
	_ interfaces.MarketService = (*MockMarketService)(nil)
	_ interfaces.BurnService   = (*MockBurnService)(nil)
)
