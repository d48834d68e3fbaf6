package testhelpers

import (
	"context"

	"cardbot/domain/entities"
	"cardbot/events"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Get(ctx context.Context, userID int64) (*entities.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) Credit(ctx context.Context, userID int64, amount int64) (int64, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) Debit(ctx context.Context, userID int64, amount int64) (int64, bool, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockAccountRepository) IncrementMessageCount(ctx context.Context, userID int64, threshold int) (bool, error) {
	args := m.Called(ctx, userID, threshold)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) TopBalances(ctx context.Context, limit int) ([]*entities.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LeaderboardEntry), args.Error(1)
}

// MockBalanceHistoryRepository is a mock implementation of BalanceHistoryRepository
type MockBalanceHistoryRepository struct {
	mock.Mock
}

func (m *MockBalanceHistoryRepository) Record(ctx context.Context, history *entities.BalanceHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *MockBalanceHistoryRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.BalanceHistory, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.BalanceHistory), args.Error(1)
}

// MockInventoryRepository is a mock implementation of InventoryRepository
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) Add(ctx context.Context, userID int64, cardID string, n int64) (int64, error) {
	args := m.Called(ctx, userID, cardID, n)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryRepository) Remove(ctx context.Context, userID int64, cardID string, n int64) (int64, bool, error) {
	args := m.Called(ctx, userID, cardID, n)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockInventoryRepository) GetQuantity(ctx context.Context, userID int64, cardID string) (int64, error) {
	args := m.Called(ctx, userID, cardID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryRepository) ListByUser(ctx context.Context, userID int64) ([]*entities.InventoryCard, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.InventoryCard), args.Error(1)
}

func (m *MockInventoryRepository) DeleteByCard(ctx context.Context, cardID string) (int64, error) {
	args := m.Called(ctx, cardID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCardRepository is a mock implementation of CardRepository
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Create(ctx context.Context, card *entities.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) GetByID(ctx context.Context, cardID string) (*entities.Card, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Card), args.Error(1)
}

func (m *MockCardRepository) GetByName(ctx context.Context, name string) (*entities.Card, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Card), args.Error(1)
}

func (m *MockCardRepository) Find(ctx context.Context, ref string) (*entities.Card, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Card), args.Error(1)
}

func (m *MockCardRepository) List(ctx context.Context) ([]*entities.Card, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Card), args.Error(1)
}

func (m *MockCardRepository) Search(ctx context.Context, query string, limit int) ([]*entities.Card, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Card), args.Error(1)
}

func (m *MockCardRepository) Update(ctx context.Context, card *entities.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) Delete(ctx context.Context, cardID string) (bool, error) {
	args := m.Called(ctx, cardID)
	return args.Bool(0), args.Error(1)
}

// MockRarityRepository is a mock implementation of RarityRepository
type MockRarityRepository struct {
	mock.Mock
}

func (m *MockRarityRepository) Upsert(ctx context.Context, rarity *entities.Rarity) error {
	args := m.Called(ctx, rarity)
	return args.Error(0)
}

func (m *MockRarityRepository) Get(ctx context.Context, name string) (*entities.Rarity, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Rarity), args.Error(1)
}

func (m *MockRarityRepository) List(ctx context.Context) ([]*entities.Rarity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Rarity), args.Error(1)
}

func (m *MockRarityRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRarityRepository) Delete(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockRarityRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockCardSetRepository is a mock implementation of CardSetRepository
type MockCardSetRepository struct {
	mock.Mock
}

func (m *MockCardSetRepository) Create(ctx context.Context, set *entities.CardSet) error {
	args := m.Called(ctx, set)
	return args.Error(0)
}

func (m *MockCardSetRepository) GetByID(ctx context.Context, id int64) (*entities.CardSet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CardSet), args.Error(1)
}

func (m *MockCardSetRepository) GetByName(ctx context.Context, name string) (*entities.CardSet, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CardSet), args.Error(1)
}

func (m *MockCardSetRepository) List(ctx context.Context) ([]*entities.CardSet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CardSet), args.Error(1)
}

func (m *MockCardSetRepository) Update(ctx context.Context, set *entities.CardSet) error {
	args := m.Called(ctx, set)
	return args.Error(0)
}

func (m *MockCardSetRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCardSetRepository) AddCard(ctx context.Context, setID int64, cardID string) (bool, error) {
	args := m.Called(ctx, setID, cardID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCardSetRepository) RemoveCard(ctx context.Context, setID int64, cardID string) (bool, error) {
	args := m.Called(ctx, setID, cardID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCardSetRepository) RemoveCardFromAll(ctx context.Context, cardID string) error {
	args := m.Called(ctx, cardID)
	return args.Error(0)
}

func (m *MockCardSetRepository) ListCards(ctx context.Context, setID int64) ([]*entities.Card, error) {
	args := m.Called(ctx, setID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Card), args.Error(1)
}

func (m *MockCardSetRepository) IsCardInPreset(ctx context.Context, cardID string) (bool, error) {
	args := m.Called(ctx, cardID)
	return args.Bool(0), args.Error(1)
}

// MockEventRepository is a mock implementation of EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, event *entities.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) Get(ctx context.Context, name string) (*entities.Event, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Event), args.Error(1)
}

func (m *MockEventRepository) List(ctx context.Context) ([]*entities.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Event), args.Error(1)
}

func (m *MockEventRepository) Update(ctx context.Context, name string, event *entities.Event) error {
	args := m.Called(ctx, name, event)
	return args.Error(0)
}

func (m *MockEventRepository) ResetClaims(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEventRepository) Delete(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockEventRepository) RemoveSetFromAll(ctx context.Context, setID int64) error {
	args := m.Called(ctx, setID)
	return args.Error(0)
}

func (m *MockEventRepository) GetClaim(ctx context.Context, userID int64, eventName string) (*entities.EventClaim, error) {
	args := m.Called(ctx, userID, eventName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.EventClaim), args.Error(1)
}

func (m *MockEventRepository) UpsertClaim(ctx context.Context, claim *entities.EventClaim) error {
	args := m.Called(ctx, claim)
	return args.Error(0)
}

// MockLotteryRepository is a mock implementation of LotteryRepository
type MockLotteryRepository struct {
	mock.Mock
}

func (m *MockLotteryRepository) Create(ctx context.Context, lottery *entities.Lottery) error {
	args := m.Called(ctx, lottery)
	return args.Error(0)
}

func (m *MockLotteryRepository) GetActiveByName(ctx context.Context, name string) (*entities.Lottery, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Lottery), args.Error(1)
}

func (m *MockLotteryRepository) ListActive(ctx context.Context) ([]*entities.Lottery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Lottery), args.Error(1)
}

func (m *MockLotteryRepository) Deactivate(ctx context.Context, lotteryID int64, winnerID int64) (bool, error) {
	args := m.Called(ctx, lotteryID, winnerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLotteryRepository) Delete(ctx context.Context, lotteryID int64) (bool, error) {
	args := m.Called(ctx, lotteryID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLotteryRepository) CreateTicket(ctx context.Context, ticket *entities.LotteryTicket) (bool, error) {
	args := m.Called(ctx, ticket)
	return args.Bool(0), args.Error(1)
}

func (m *MockLotteryRepository) CountTickets(ctx context.Context, lotteryID int64) (int64, error) {
	args := m.Called(ctx, lotteryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLotteryRepository) GetTicketNumbersByUser(ctx context.Context, lotteryID int64, userID int64) ([]int, error) {
	args := m.Called(ctx, lotteryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

// MockListingRepository is a mock implementation of ListingRepository
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(ctx context.Context, listing *entities.SaleListing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepository) GetByID(ctx context.Context, id int64) (*entities.SaleListing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SaleListing), args.Error(1)
}

func (m *MockListingRepository) Claim(ctx context.Context, id int64) (*entities.SaleListing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SaleListing), args.Error(1)
}

func (m *MockListingRepository) ClaimOwned(ctx context.Context, id int64, userID int64) (*entities.SaleListing, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SaleListing), args.Error(1)
}

func (m *MockListingRepository) List(ctx context.Context, limit int) ([]*entities.SaleListing, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SaleListing), args.Error(1)
}

func (m *MockListingRepository) ListBySeller(ctx context.Context, userID int64) ([]*entities.SaleListing, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SaleListing), args.Error(1)
}

func (m *MockListingRepository) DeleteByCard(ctx context.Context, cardID string) (int64, error) {
	args := m.Called(ctx, cardID)
	return args.Get(0).(int64), args.Error(1)
}

// MockTradeHistoryRepository is a mock implementation of TradeHistoryRepository
type MockTradeHistoryRepository struct {
	mock.Mock
}

func (m *MockTradeHistoryRepository) Record(ctx context.Context, record *entities.TradeRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockTradeHistoryRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*entities.TradeRecord, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.TradeRecord), args.Error(1)
}

// MockGuildSettingsRepository is a mock implementation of GuildSettingsRepository
type MockGuildSettingsRepository struct {
	mock.Mock
}

func (m *MockGuildSettingsRepository) GetOrCreateGuildSettings(ctx context.Context) (*entities.GuildSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GuildSettings), args.Error(1)
}

func (m *MockGuildSettingsRepository) UpdateGuildSettings(ctx context.Context, settings *entities.GuildSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// MockProfileRepository is a mock implementation of ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Get(ctx context.Context, userID int64) (*entities.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Profile), args.Error(1)
}

func (m *MockProfileRepository) Upsert(ctx context.Context, profile *entities.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) ClearFavouriteCard(ctx context.Context, cardID string) error {
	args := m.Called(ctx, cardID)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}
