package services

import (
	"context"
	"errors"
	"fmt"

	"cardbot/domain"
	"cardbot/domain/entities"
	"cardbot/domain/interfaces"
)

type burnService struct {
	ledger     interfaces.LedgerService
	cardRepo   interfaces.CardRepository
	rarityRepo interfaces.RarityRepository
}

// NewBurnService creates a new burn service
func NewBurnService(ledger interfaces.LedgerService, cardRepo interfaces.CardRepository, rarityRepo interfaces.RarityRepository) interfaces.BurnService {
	return &burnService{
		ledger:     ledger,
		cardRepo:   cardRepo,
		rarityRepo: rarityRepo,
	}
}

// Burn destroys one copy of a card and credits its rarity's burn value.
// A rarity without a burn value blocks the burn entirely.
func (s *burnService) Burn(ctx context.Context, userID int64, cardRef string) (*entities.BurnResult, error) {
	card, err := findCard(ctx, s.cardRepo, cardRef)
	if err != nil {
		return nil, err
	}

	rarity, err := s.rarityRepo.Get(ctx, card.Rarity)
	if err != nil {
		return nil, fmt.Errorf("failed to get rarity: %w", err)
	}
	if rarity == nil || !rarity.HasBurnValue() {
		return nil, domain.ConfigMissing("Burn value not configured for rarity `%s`", card.Rarity)
	}
	burnValue := *rarity.BurnValue

	remaining, err := s.ledger.RemoveCard(ctx, userID, card.CardID, 1)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficient) {
			return nil, domain.Insufficient("You do not own any copies of **%s**.", card.Name)
		}
		return nil, err
	}

	var newBalance int64
	if burnValue > 0 {
		newBalance, err = s.ledger.Credit(ctx, userID, burnValue, entities.TransactionTypeBurn, map[string]any{
			"card_id":   card.CardID,
			"card_name": card.Name,
			"rarity":    rarity.Name,
		})
	} else {
		newBalance, err = s.ledger.Balance(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	return &entities.BurnResult{
		Card:         card,
		PointsEarned: burnValue,
		NewBalance:   newBalance,
		Remaining:    remaining,
	}, nil
}
