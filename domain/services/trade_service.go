package services

import (
	"context"
	"errors"
	"fmt"

	"cardbot/domain"
	"cardbot/domain/entities"
	"cardbot/domain/interfaces"
	"cardbot/events"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const defaultTradeHistoryLimit = 10

type tradeService struct {
	guildID        int64
	ledger         interfaces.LedgerService
	cardRepo       interfaces.CardRepository
	tradeRepo      interfaces.TradeHistoryRepository
	offers         *TradeOfferBook
	eventPublisher interfaces.EventPublisher
}

// NewTradeService creates a new trade service. The offer book is shared across
// guilds and requests; everything else is scoped to one unit of work.
func NewTradeService(
	guildID int64,
	ledger interfaces.LedgerService,
	cardRepo interfaces.CardRepository,
	tradeRepo interfaces.TradeHistoryRepository,
	offers *TradeOfferBook,
	eventPublisher interfaces.EventPublisher,
) interfaces.TradeService {
	return &tradeService{
		guildID:        guildID,
		ledger:         ledger,
		cardRepo:       cardRepo,
		tradeRepo:      tradeRepo,
		offers:         offers,
		eventPublisher: eventPublisher,
	}
}

// Propose checks both parties hold their cards and stores a pending offer.
// Ownership is not re-checked until settlement.
func (s *tradeService) Propose(ctx context.Context, initiatorID, recipientID int64, offeredRef, requestedRef string) (*entities.TradeOffer, error) {
	if initiatorID == recipientID {
		return nil, domain.Invalid("You cannot trade with yourself.")
	}

	offered, err := findCard(ctx, s.cardRepo, offeredRef)
	if err != nil {
		return nil, err
	}
	requested, err := findCard(ctx, s.cardRepo, requestedRef)
	if err != nil {
		return nil, err
	}

	have, err := s.ledger.Quantity(ctx, initiatorID, offered.CardID)
	if err != nil {
		return nil, err
	}
	if have < 1 {
		return nil, domain.Insufficient("You do not own any copies of **%s**.", offered.Name)
	}

	theirs, err := s.ledger.Quantity(ctx, recipientID, requested.CardID)
	if err != nil {
		return nil, err
	}
	if theirs < 1 {
		return nil, domain.Insufficient("The other user does not own any copies of **%s**.", requested.Name)
	}

	offer := s.offers.Put(&entities.TradeOffer{
		GuildID:           s.guildID,
		InitiatorID:       initiatorID,
		RecipientID:       recipientID,
		OfferedCardID:     offered.CardID,
		OfferedCardName:   offered.Name,
		RequestedCardID:   requested.CardID,
		RequestedCardName: requested.Name,
	})

	log.WithFields(log.Fields{
		"offerID":     offer.ID,
		"guildID":     s.guildID,
		"initiatorID": initiatorID,
		"recipientID": recipientID,
	}).Info("Trade offer created")

	return offer, nil
}

// Accept removes the offer from the book and swaps the cards. Once taken the offer
// is gone even if settlement fails.
func (s *tradeService) Accept(ctx context.Context, offerID uuid.UUID, userID int64) (*entities.TradeRecord, error) {
	offer, err := s.offers.Take(offerID, func(o *entities.TradeOffer) error {
		if o.GuildID != s.guildID {
			return domain.NotFound("Trade offer not found.")
		}
		if o.RecipientID != userID {
			return domain.Invalid("Only the recipient can accept this trade.")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.settle(ctx, offer)
}

func (s *tradeService) settle(ctx context.Context, offer *entities.TradeOffer) (*entities.TradeRecord, error) {
	if _, err := s.ledger.RemoveCard(ctx, offer.InitiatorID, offer.OfferedCardID, 1); err != nil {
		if errors.Is(err, domain.ErrInsufficient) {
			return nil, domain.Insufficient("Trade failed: the initiator no longer owns **%s**.", offer.OfferedCardName)
		}
		return nil, err
	}
	if _, err := s.ledger.RemoveCard(ctx, offer.RecipientID, offer.RequestedCardID, 1); err != nil {
		if errors.Is(err, domain.ErrInsufficient) {
			return nil, domain.Insufficient("Trade failed: the recipient no longer owns **%s**.", offer.RequestedCardName)
		}
		return nil, err
	}
	if _, err := s.ledger.AddCard(ctx, offer.RecipientID, offer.OfferedCardID, 1); err != nil {
		return nil, err
	}
	if _, err := s.ledger.AddCard(ctx, offer.InitiatorID, offer.RequestedCardID, 1); err != nil {
		return nil, err
	}

	record := &entities.TradeRecord{
		GuildID:           s.guildID,
		InitiatorID:       offer.InitiatorID,
		RecipientID:       offer.RecipientID,
		InitiatorCardID:   offer.OfferedCardID,
		RecipientCardID:   offer.RequestedCardID,
		InitiatorCardName: offer.OfferedCardName,
		RecipientCardName: offer.RequestedCardName,
	}
	if err := s.tradeRepo.Record(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record trade: %w", err)
	}

	event := events.TradeSettledEvent{
		GuildID:           s.guildID,
		TradeID:           record.ID,
		InitiatorID:       record.InitiatorID,
		RecipientID:       record.RecipientID,
		InitiatorCardName: record.InitiatorCardName,
		RecipientCardName: record.RecipientCardName,
	}
	if err := s.eventPublisher.Publish(event); err != nil {
		log.WithError(err).Error("Failed to publish trade settled event")
	}
	metrics.recordTradeSettled(ctx, s.guildID)

	return record, nil
}

// Deny removes an offer without touching inventories. Either party may deny.
func (s *tradeService) Deny(ctx context.Context, offerID uuid.UUID, userID int64) (*entities.TradeOffer, error) {
	return s.offers.Take(offerID, func(o *entities.TradeOffer) error {
		if o.GuildID != s.guildID {
			return domain.NotFound("Trade offer not found.")
		}
		if !o.IsParticipant(userID) {
			return domain.Invalid("Only the people in this trade can deny it.")
		}
		return nil
	})
}

func (s *tradeService) History(ctx context.Context, userID int64, limit int) ([]*entities.TradeRecord, error) {
	if limit <= 0 {
		limit = defaultTradeHistoryLimit
	}
	records, err := s.tradeRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get trade history: %w", err)
	}
	return records, nil
}
