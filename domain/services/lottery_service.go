package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"cardbot/domain"
	"cardbot/domain/entities"
	"cardbot/domain/interfaces"
	"cardbot/events"

	log "github.com/sirupsen/logrus"
)

// NumberSource draws a winning number in [MinTicketNumber, MaxTicketNumber]
type NumberSource func() (int, error)

// CryptoNumberSource draws winning numbers from crypto/rand
func CryptoNumberSource() (int, error) {
	span := big.NewInt(entities.MaxTicketNumber - entities.MinTicketNumber + 1)
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return 0, fmt.Errorf("failed to draw winning number: %w", err)
	}
	return int(n.Int64()) + entities.MinTicketNumber, nil
}

type lotteryService struct {
	guildID        int64
	houseUserID    int64
	ledger         interfaces.LedgerService
	lotteryRepo    interfaces.LotteryRepository
	cardRepo       interfaces.CardRepository
	eventPublisher interfaces.EventPublisher
	drawNumber     NumberSource
}

// NewLotteryService creates a new lottery service. houseUserID receives the house
// share of points pots; a nil number source uses crypto/rand.
func NewLotteryService(
	guildID int64,
	houseUserID int64,
	ledger interfaces.LedgerService,
	lotteryRepo interfaces.LotteryRepository,
	cardRepo interfaces.CardRepository,
	eventPublisher interfaces.EventPublisher,
	drawNumber NumberSource,
) interfaces.LotteryService {
	if drawNumber == nil {
		drawNumber = CryptoNumberSource
	}
	return &lotteryService{
		guildID:        guildID,
		houseUserID:    houseUserID,
		ledger:         ledger,
		lotteryRepo:    lotteryRepo,
		cardRepo:       cardRepo,
		eventPublisher: eventPublisher,
		drawNumber:     drawNumber,
	}
}

// Create opens a lottery. The winning number is drawn here and never changes.
func (s *lotteryService) Create(ctx context.Context, name string, prizeType entities.PrizeType, cardRef string, ticketPrice int64) (*entities.Lottery, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Invalid("Lottery name cannot be empty.")
	}
	if ticketPrice <= 0 {
		return nil, domain.Invalid("Ticket price must be greater than 0.")
	}

	lottery := &entities.Lottery{
		GuildID:     s.guildID,
		Name:        name,
		PrizeType:   prizeType,
		TicketPrice: ticketPrice,
		Active:      true,
	}

	switch prizeType {
	case entities.PrizeTypePoints:
	case entities.PrizeTypeCard:
		card, err := findCard(ctx, s.cardRepo, cardRef)
		if err != nil {
			return nil, err
		}
		lottery.CardID = &card.CardID
	default:
		return nil, domain.Invalid("Prize must be `points` or `card`.")
	}

	existing, err := s.lotteryRepo.GetActiveByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing lottery: %w", err)
	}
	if existing != nil {
		return nil, domain.Invalid("A lottery named `%s` is already running.", name)
	}

	number, err := s.drawNumber()
	if err != nil {
		return nil, err
	}
	if !entities.IsValidTicketNumber(number) {
		return nil, fmt.Errorf("winning number %d out of range", number)
	}
	lottery.WinningNumber = number

	if err := s.lotteryRepo.Create(ctx, lottery); err != nil {
		return nil, fmt.Errorf("failed to create lottery: %w", err)
	}

	log.WithFields(log.Fields{
		"guildID":   s.guildID,
		"lotteryID": lottery.ID,
		"prizeType": prizeType,
		"price":     ticketPrice,
	}).Info("Lottery created")

	return lottery, nil
}

// BuyTicket debits the ticket price and records the number. Buying the winning
// number closes the lottery and pays out in the same transaction.
func (s *lotteryService) BuyTicket(ctx context.Context, userID int64, name string, number int) (*entities.TicketPurchaseResult, error) {
	if !entities.IsValidTicketNumber(number) {
		return nil, domain.Invalid("Ticket number must be between %d and %d.", entities.MinTicketNumber, entities.MaxTicketNumber)
	}

	lottery, err := s.getActive(ctx, name)
	if err != nil {
		return nil, err
	}

	balance, err := s.ledger.Debit(ctx, userID, lottery.TicketPrice, entities.TransactionTypeLottoTicket, map[string]any{
		"lottery_id":    lottery.ID,
		"ticket_number": number,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficient) {
			return nil, domain.Insufficient("You do not have enough points to buy a ticket.")
		}
		return nil, err
	}

	ticket := &entities.LotteryTicket{
		LotteryID:    lottery.ID,
		GuildID:      s.guildID,
		UserID:       userID,
		TicketNumber: number,
	}
	inserted, err := s.lotteryRepo.CreateTicket(ctx, ticket)
	if err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}
	if !inserted {
		return nil, domain.Insufficient("Ticket number %d is already taken.", number)
	}

	sold, err := s.lotteryRepo.CountTickets(ctx, lottery.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tickets: %w", err)
	}

	result := &entities.TicketPurchaseResult{
		Lottery:     lottery,
		Ticket:      ticket,
		NewBalance:  balance,
		TicketsSold: sold,
	}

	if number != lottery.WinningNumber {
		return result, nil
	}

	if err := s.payWinner(ctx, lottery, userID, sold, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *lotteryService) payWinner(ctx context.Context, lottery *entities.Lottery, winnerID int64, sold int64, result *entities.TicketPurchaseResult) error {
	closed, err := s.lotteryRepo.Deactivate(ctx, lottery.ID, winnerID)
	if err != nil {
		return fmt.Errorf("failed to close lottery: %w", err)
	}
	if !closed {
		return domain.Unavailable("This lottery has already been won.")
	}
	lottery.Active = false
	lottery.WinnerID = &winnerID
	result.Won = true

	event := events.LotteryWonEvent{
		GuildID:       s.guildID,
		LotteryID:     lottery.ID,
		LotteryName:   lottery.Name,
		WinnerID:      winnerID,
		WinningNumber: lottery.WinningNumber,
		PrizeType:     lottery.PrizeType,
	}
	metadata := map[string]any{"lottery_id": lottery.ID}

	if lottery.IsCardPrize() {
		if lottery.CardID == nil {
			return fmt.Errorf("card lottery %d has no card", lottery.ID)
		}
		if _, err := s.ledger.AddCard(ctx, winnerID, *lottery.CardID, 1); err != nil {
			return err
		}
		card, err := s.cardRepo.GetByID(ctx, *lottery.CardID)
		if err != nil {
			return fmt.Errorf("failed to get prize card: %w", err)
		}
		result.CardWon = card
		if card != nil {
			event.CardName = card.Name
		}
	} else {
		winnerShare, houseShare := entities.SplitPot(lottery.Pot(sold))
		if houseShare > 0 && s.houseUserID <= 0 {
			return domain.ConfigMissing("No house account is configured, so lottery pots cannot be paid out.")
		}
		if winnerShare > 0 {
			balance, err := s.ledger.Credit(ctx, winnerID, winnerShare, entities.TransactionTypeLottoWin, metadata)
			if err != nil {
				return err
			}
			result.NewBalance = balance
		}
		if houseShare > 0 {
			if _, err := s.ledger.Credit(ctx, s.houseUserID, houseShare, entities.TransactionTypeLottoHouse, metadata); err != nil {
				return err
			}
		}
		result.PointsWon = winnerShare
		result.HouseShare = houseShare
		event.PointsWon = winnerShare
		event.HouseShare = houseShare
	}

	if err := s.eventPublisher.Publish(event); err != nil {
		log.WithError(err).Error("Failed to publish lottery won event")
	}
	metrics.recordLotterySettled(ctx, s.guildID, string(lottery.PrizeType), "won")

	log.WithFields(log.Fields{
		"guildID":   s.guildID,
		"lotteryID": lottery.ID,
		"winnerID":  winnerID,
		"pointsWon": result.PointsWon,
	}).Info("Lottery won")

	return nil
}

// Info reports tickets sold and the prize a winner would currently receive
func (s *lotteryService) Info(ctx context.Context, name string) (*entities.LotteryInfo, error) {
	lottery, err := s.getActive(ctx, name)
	if err != nil {
		return nil, err
	}

	sold, err := s.lotteryRepo.CountTickets(ctx, lottery.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tickets: %w", err)
	}

	info := &entities.LotteryInfo{Lottery: lottery, TicketsSold: sold}
	if lottery.IsCardPrize() && lottery.CardID != nil {
		card, err := s.cardRepo.GetByID(ctx, *lottery.CardID)
		if err != nil {
			return nil, fmt.Errorf("failed to get prize card: %w", err)
		}
		info.PrizeCard = card
	} else {
		info.Prize, _ = entities.SplitPot(lottery.Pot(sold))
	}
	return info, nil
}

// End deletes an active lottery and its tickets without paying anyone
func (s *lotteryService) End(ctx context.Context, name string) (*entities.Lottery, error) {
	lottery, err := s.getActive(ctx, name)
	if err != nil {
		return nil, err
	}

	if _, err := s.lotteryRepo.Delete(ctx, lottery.ID); err != nil {
		return nil, fmt.Errorf("failed to delete lottery: %w", err)
	}
	metrics.recordLotterySettled(ctx, s.guildID, string(lottery.PrizeType), "ended")
	return lottery, nil
}

func (s *lotteryService) ListActive(ctx context.Context) ([]*entities.Lottery, error) {
	list, err := s.lotteryRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list lotteries: %w", err)
	}
	return list, nil
}

func (s *lotteryService) getActive(ctx context.Context, name string) (*entities.Lottery, error) {
	lottery, err := s.lotteryRepo.GetActiveByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("failed to get lottery: %w", err)
	}
	if lottery == nil {
		return nil, domain.NotFound("No active lottery named `%s`.", name)
	}
	return lottery, nil
}
