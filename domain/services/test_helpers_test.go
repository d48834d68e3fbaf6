package services

import (
	"testing"

	"cardbot/domain/entities"
	"cardbot/domain/testhelpers"
	"cardbot/events"

	"github.com/stretchr/testify/mock"
)

// Test constants for consistent test data
const (
	TestGuildID    = int64(555555555)
	TestHouseID    = int64(999999)
	TestUser1ID    = int64(100)
	TestUser2ID    = int64(200)
	TestCardID     = "00000001"
	TestOtherCard  = "00000002"
	TestLotteryID  = int64(7)
	TestListingID  = int64(42)
	TestSetID      = int64(3)
	TestEventName  = "Daily"
	TestRarityName = "Rare"
)

// TestMocks aggregates all repository mocks for testing
type TestMocks struct {
	AccountRepo        *testhelpers.MockAccountRepository
	BalanceHistoryRepo *testhelpers.MockBalanceHistoryRepository
	InventoryRepo      *testhelpers.MockInventoryRepository
	CardRepo           *testhelpers.MockCardRepository
	RarityRepo         *testhelpers.MockRarityRepository
	SetRepo            *testhelpers.MockCardSetRepository
	EventRepo          *testhelpers.MockEventRepository
	LotteryRepo        *testhelpers.MockLotteryRepository
	ListingRepo        *testhelpers.MockListingRepository
	TradeRepo          *testhelpers.MockTradeHistoryRepository
	GuildSettingsRepo  *testhelpers.MockGuildSettingsRepository
	ProfileRepo        *testhelpers.MockProfileRepository
	EventPublisher     *testhelpers.MockEventPublisher
	Ledger             *testhelpers.MockLedgerService
}

// NewTestMocks creates a new set of mocks
func NewTestMocks() *TestMocks {
	return &TestMocks{
		AccountRepo:        &testhelpers.MockAccountRepository{},
		BalanceHistoryRepo: &testhelpers.MockBalanceHistoryRepository{},
		InventoryRepo:      &testhelpers.MockInventoryRepository{},
		CardRepo:           &testhelpers.MockCardRepository{},
		RarityRepo:         &testhelpers.MockRarityRepository{},
		SetRepo:            &testhelpers.MockCardSetRepository{},
		EventRepo:          &testhelpers.MockEventRepository{},
		LotteryRepo:        &testhelpers.MockLotteryRepository{},
		ListingRepo:        &testhelpers.MockListingRepository{},
		TradeRepo:          &testhelpers.MockTradeHistoryRepository{},
		GuildSettingsRepo:  &testhelpers.MockGuildSettingsRepository{},
		ProfileRepo:        &testhelpers.MockProfileRepository{},
		EventPublisher:     &testhelpers.MockEventPublisher{},
		Ledger:             &testhelpers.MockLedgerService{},
	}
}

// AssertAllExpectations verifies all mock expectations were met
func (m *TestMocks) AssertAllExpectations(t *testing.T) {
	m.AccountRepo.AssertExpectations(t)
	m.BalanceHistoryRepo.AssertExpectations(t)
	m.InventoryRepo.AssertExpectations(t)
	m.CardRepo.AssertExpectations(t)
	m.RarityRepo.AssertExpectations(t)
	m.SetRepo.AssertExpectations(t)
	m.EventRepo.AssertExpectations(t)
	m.LotteryRepo.AssertExpectations(t)
	m.ListingRepo.AssertExpectations(t)
	m.TradeRepo.AssertExpectations(t)
	m.GuildSettingsRepo.AssertExpectations(t)
	m.ProfileRepo.AssertExpectations(t)
	m.EventPublisher.AssertExpectations(t)
	m.Ledger.AssertExpectations(t)
}

// ExpectEventPublish sets up event publisher mock expectations
func (m *TestMocks) ExpectEventPublish(eventType events.EventType) {
	m.EventPublisher.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		return e.Type() == eventType
	})).Return(nil)
}

// ExpectCardLookup makes the card repository resolve ref to card
func (m *TestMocks) ExpectCardLookup(ref string, card *entities.Card) {
	m.CardRepo.On("Find", mock.Anything, ref).Return(card, nil)
}

// ExpectCardName makes the card repository's name lookup return card
func (m *TestMocks) ExpectCardName(name string, card *entities.Card) {
	m.CardRepo.On("GetByName", mock.Anything, name).Return(card, nil)
}

func testCard(id, name, rarity string) *entities.Card {
	return &entities.Card{
		GuildID: TestGuildID,
		CardID:  id,
		Name:    name,
		Rarity:  rarity,
	}
}

func int64Ptr(v int64) *int64 { return &v }
