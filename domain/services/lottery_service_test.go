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
	"pgregory.net/rapid"
)

const testWinningNumber = 1234

func newTestLottery(m *TestMocks) *lotteryService {
	draw := func() (int, error) { return testWinningNumber, nil }
	return NewLotteryService(TestGuildID, TestHouseID, m.Ledger, m.LotteryRepo, m.CardRepo, m.EventPublisher, draw).(*lotteryService)
}

func activeLottery(prize entities.PrizeType) *entities.Lottery {
	l := &entities.Lottery{
		ID:            TestLotteryID,
		GuildID:       TestGuildID,
		Name:          "Weekly",
		PrizeType:     prize,
		TicketPrice:   10,
		WinningNumber: testWinningNumber,
		Active:        true,
	}
	if prize == entities.PrizeTypeCard {
		id := TestCardID
		l.CardID = &id
	}
	return l
}

func TestLotteryService_Create(t *testing.T) {
	t.Parallel()

	t.Run("draws the winning number at creation", func(t *testing.T) {
		mocks := NewTestMocks()
		mocks.LotteryRepo.On("GetActiveByName", mock.Anything, "Weekly").Return(nil, nil)
		mocks.LotteryRepo.On("Create", mock.Anything, mock.MatchedBy(func(l *entities.Lottery) bool {
			return l.WinningNumber == testWinningNumber && l.Active && l.CardID == nil
		})).Return(nil)

		lottery, err := newTestLottery(mocks).Create(context.Background(), "Weekly", entities.PrizeTypePoints, "", 10)

		require.NoError(t, err)
		assert.Equal(t, testWinningNumber, lottery.WinningNumber)
		mocks.AssertAllExpectations(t)
	})

	t.Run("card prize needs an existing card", func(t *testing.T) {
		mocks := NewTestMocks()
		mocks.ExpectCardLookup("Ghost", nil)

		_, err := newTestLottery(mocks).Create(context.Background(), "Weekly", entities.PrizeTypeCard, "Ghost", 10)

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("duplicate active name", func(t *testing.T) {
		mocks := NewTestMocks()
		mocks.LotteryRepo.On("GetActiveByName", mock.Anything, "Weekly").Return(activeLottery(entities.PrizeTypePoints), nil)

		_, err := newTestLottery(mocks).Create(context.Background(), "Weekly", entities.PrizeTypePoints, "", 10)

		assert.ErrorIs(t, err, domain.ErrInvalid)
	})

	t.Run("zero price", func(t *testing.T) {
		mocks := NewTestMocks()
		_, err := newTestLottery(mocks).Create(context.Background(), "Weekly", entities.PrizeTypePoints, "", 0)
		assert.ErrorIs(t, err, domain.ErrInvalid)
	})
}

func TestLotteryService_BuyTicket(t *testing.T) {
	t.Parallel()

	t.Run("number out of range", func(t *testing.T) {
		for _, n := range []int{0, 5001, -3} {
			mocks := NewTestMocks()
			_, err := newTestLottery(mocks).BuyTicket(context.Background(), TestUser1ID, "Weekly", n)
			assert.ErrorIs(t, err, domain.ErrInvalid, "number %d", n)
		}
	})

	t.Run("taken number", func(t *testing.T) {
		mocks := NewTestMocks()
		mocks.LotteryRepo.On("GetActiveByName", mock.Anything, "Weekly").Return(activeLottery(entities.PrizeTypePoints), nil)
		mocks.Ledger.On("Debit", mock.Anything, TestUser1ID, int64(10), entities.TransactionTypeLottoTicket, mock.Anything).Return(int64(90), nil)
		mocks.LotteryRepo.On("CreateTicket", mock.Anything, mock.Anything).Return(false, nil)

		_, err := newTestLottery(mocks).BuyTicket(context.Background(), TestUser1ID, "Weekly", 7)

		require.ErrorIs(t, err, domain.ErrInsufficient)
		msg, _ := domain.UserMessage(err)
		assert.Equal(t, "Ticket number 7 is already taken.", msg)
	})

	t.Run("losing ticket", func(t *testing.T) {
		mocks := NewTestMocks()
		mocks.LotteryRepo.On("GetActiveByName", mock.Anything, "Weekly").Return(activeLottery(entities.PrizeTypePoints), nil)
		mocks.Ledger.On("Debit", mock.Anything, TestUser1ID, int64(10), entities.TransactionTypeLottoTicket, mock.Anything).Return(int64(90), nil)
		mocks.LotteryRepo.On("CreateTicket", mock.Anything, mock.Anything).Return(true, nil)
		mocks.LotteryRepo.On("CountTickets", mock.Anything, TestLotteryID).Return(int64(3), nil)

		result, err := newTestLottery(mocks).BuyTicket(context.Background(), TestUser1ID, "Weekly", 7)

		require.NoError(t, err)
		assert.False(t, result.Won)
		assert.Equal(t, int64(90), result.NewBalance)
		mocks.LotteryRepo.AssertNotCalled(t, "Deactivate", mock.Anything, mock.Anything, mock.Anything)
		mocks.AssertAllExpectations(t)
	})

	t.Run("winning points ticket splits the pot", func(t *testing.T) {
		mocks := NewTestMocks()
		mocks.LotteryRepo.On("GetActiveByName", mock.Anything, "Weekly").Return(activeLottery(entities.PrizeTypePoints), nil)
		mocks.Ledger.On("Debit", mock.Anything, TestUser1ID, int64(10), entities.TransactionTypeLottoTicket, mock.Anything).Return(int64(90), nil)
		mocks.LotteryRepo.On("CreateTicket", mock.Anything, mock.Anything).Return(true, nil)
		mocks.LotteryRepo.On("CountTickets", mock.Anything, TestLotteryID).Return(int64(21), nil)
		mocks.LotteryRepo.On("Deactivate", mock.Anything, TestLotteryID, TestUser1ID).Return(true, nil)
		// pot 210: winner 199, house 11
		mocks.Ledger.On("Credit", mock.Anything, TestUser1ID, int64(199), entities.TransactionTypeLottoWin, mock.Anything).Return(int64(289), nil)
		mocks.Ledger.On("Credit", mock.Anything, TestHouseID, int64(11), entities.TransactionTypeLottoHouse, mock.Anything).Return(int64(11), nil)
		mocks.ExpectEventPublish(events.EventTypeLotteryWon)

		result, err := newTestLottery(mocks).BuyTicket(context.Background(), TestUser1ID, "Weekly", testWinningNumber)

		require.NoError(t, err)
		assert.True(t, result.Won)
		assert.Equal(t, int64(199), result.PointsWon)
		assert.Equal(t, int64(11), result.HouseShare)
		assert.Equal(t, int64(289), result.NewBalance)
		assert.False(t, result.Lottery.Active)
		mocks.AssertAllExpectations(t)
	})

	t.Run("winning points ticket without a house account pays nothing", func(t *testing.T) {
		mocks := NewTestMocks()
		mocks.LotteryRepo.On("GetActiveByName", mock.Anything, "Weekly").Return(activeLottery(entities.PrizeTypePoints), nil)
		mocks.Ledger.On("Debit", mock.Anything, TestUser1ID, int64(10), entities.TransactionTypeLottoTicket, mock.Anything).Return(int64(90), nil)
		mocks.LotteryRepo.On("CreateTicket", mock.Anything, mock.Anything).Return(true, nil)
		mocks.LotteryRepo.On("CountTickets", mock.Anything, TestLotteryID).Return(int64(21), nil)
		mocks.LotteryRepo.On("Deactivate", mock.Anything, TestLotteryID, TestUser1ID).Return(true, nil)

		draw := func() (int, error) { return testWinningNumber, nil }
		svc := NewLotteryService(TestGuildID, 0, mocks.Ledger, mocks.LotteryRepo, mocks.CardRepo, mocks.EventPublisher, draw)

		_, err := svc.BuyTicket(context.Background(), TestUser1ID, "Weekly", testWinningNumber)

		assert.ErrorIs(t, err, domain.ErrConfigMissing)
		mocks.Ledger.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mocks.EventPublisher.AssertNotCalled(t, "Publish", mock.Anything)
	})

	t.Run("winning card ticket awards the card", func(t *testing.T) {
		mocks := NewTestMocks()
		mocks.LotteryRepo.On("GetActiveByName", mock.Anything, "Weekly").Return(activeLottery(entities.PrizeTypeCard), nil)
		mocks.Ledger.On("Debit", mock.Anything, TestUser1ID, int64(10), entities.TransactionTypeLottoTicket, mock.Anything).Return(int64(90), nil)
		mocks.LotteryRepo.On("CreateTicket", mock.Anything, mock.Anything).Return(true, nil)
		mocks.LotteryRepo.On("CountTickets", mock.Anything, TestLotteryID).Return(int64(1), nil)
		mocks.LotteryRepo.On("Deactivate", mock.Anything, TestLotteryID, TestUser1ID).Return(true, nil)
		mocks.Ledger.On("AddCard", mock.Anything, TestUser1ID, TestCardID, int64(1)).Return(int64(1), nil)
		mocks.CardRepo.On("GetByID", mock.Anything, TestCardID).Return(testCard(TestCardID, "Dragon", TestRarityName), nil)
		mocks.ExpectEventPublish(events.EventTypeLotteryWon)

		result, err := newTestLottery(mocks).BuyTicket(context.Background(), TestUser1ID, "Weekly", testWinningNumber)

		require.NoError(t, err)
		assert.True(t, result.Won)
		assert.Equal(t, "Dragon", result.CardWon.Name)
		mocks.Ledger.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mocks.AssertAllExpectations(t)
	})

	t.Run("lottery already closed by a concurrent winner", func(t *testing.T) {
		mocks := NewTestMocks()
		mocks.LotteryRepo.On("GetActiveByName", mock.Anything, "Weekly").Return(activeLottery(entities.PrizeTypePoints), nil)
		mocks.Ledger.On("Debit", mock.Anything, TestUser1ID, int64(10), entities.TransactionTypeLottoTicket, mock.Anything).Return(int64(90), nil)
		mocks.LotteryRepo.On("CreateTicket", mock.Anything, mock.Anything).Return(true, nil)
		mocks.LotteryRepo.On("CountTickets", mock.Anything, TestLotteryID).Return(int64(5), nil)
		mocks.LotteryRepo.On("Deactivate", mock.Anything, TestLotteryID, TestUser1ID).Return(false, nil)

		_, err := newTestLottery(mocks).BuyTicket(context.Background(), TestUser1ID, "Weekly", testWinningNumber)

		assert.ErrorIs(t, err, domain.ErrUnavailable)
		mocks.Ledger.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLotteryService_Info(t *testing.T) {
	mocks := NewTestMocks()
	mocks.LotteryRepo.On("GetActiveByName", mock.Anything, "Weekly").Return(activeLottery(entities.PrizeTypePoints), nil)
	mocks.LotteryRepo.On("CountTickets", mock.Anything, TestLotteryID).Return(int64(10), nil)

	info, err := newTestLottery(mocks).Info(context.Background(), "Weekly")

	require.NoError(t, err)
	assert.Equal(t, int64(10), info.TicketsSold)
	assert.Equal(t, int64(95), info.Prize)
}

func TestLotteryService_End(t *testing.T) {
	mocks := NewTestMocks()
	mocks.LotteryRepo.On("GetActiveByName", mock.Anything, "Gone").Return(nil, nil)

	_, err := newTestLottery(mocks).End(context.Background(), "Gone")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	mocks.LotteryRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCryptoNumberSource_InRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n, err := CryptoNumberSource()
		if err != nil {
			t.Fatal(err)
		}
		if !entities.IsValidTicketNumber(n) {
			t.Fatalf("drew %d", n)
		}
	})
}
