package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cardbot/domain"
	"cardbot/domain/entities"
	"cardbot/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

const defaultSearchLimit = 25

type cardService struct {
	guildID       int64
	ledger        interfaces.LedgerService
	cardRepo      interfaces.CardRepository
	rarityRepo    interfaces.RarityRepository
	setRepo       interfaces.CardSetRepository
	inventoryRepo interfaces.InventoryRepository
	listingRepo   interfaces.ListingRepository
	profileRepo   interfaces.ProfileRepository
}

// NewCardService creates a new card administration service
func NewCardService(
	guildID int64,
	ledger interfaces.LedgerService,
	cardRepo interfaces.CardRepository,
	rarityRepo interfaces.RarityRepository,
	setRepo interfaces.CardSetRepository,
	inventoryRepo interfaces.InventoryRepository,
	listingRepo interfaces.ListingRepository,
	profileRepo interfaces.ProfileRepository,
) interfaces.CardService {
	return &cardService{
		guildID:       guildID,
		ledger:        ledger,
		cardRepo:      cardRepo,
		rarityRepo:    rarityRepo,
		setRepo:       setRepo,
		inventoryRepo: inventoryRepo,
		listingRepo:   listingRepo,
		profileRepo:   profileRepo,
	}
}

// Create adds a card definition and optionally links it to a set
func (s *cardService) Create(ctx context.Context, card *entities.Card, setName string) (*entities.Card, error) {
	card.GuildID = s.guildID
	card.Name = strings.TrimSpace(card.Name)
	if err := card.Validate(); err != nil {
		return nil, domain.Invalid("%s", capitalize(err.Error()))
	}

	rarity, err := s.requireRarity(ctx, card.Rarity)
	if err != nil {
		return nil, err
	}
	card.Rarity = rarity.Name

	if err := s.ensureNameFree(ctx, card.Name, ""); err != nil {
		return nil, err
	}

	var set *entities.CardSet
	if setName = strings.TrimSpace(setName); setName != "" {
		set, err = s.setRepo.GetByName(ctx, setName)
		if err != nil {
			return nil, fmt.Errorf("failed to get set: %w", err)
		}
		if set == nil {
			return nil, domain.NotFound("Set `%s` not found.", setName)
		}
	}

	if err := s.cardRepo.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	if set != nil {
		if _, err := s.setRepo.AddCard(ctx, set.ID, card.CardID); err != nil {
			return nil, fmt.Errorf("failed to add card to set: %w", err)
		}
	}

	log.WithFields(log.Fields{
		"guildID": s.guildID,
		"cardID":  card.CardID,
		"name":    card.Name,
	}).Info("Card created")

	return card, nil
}

// Edit changes a card's name, description, rarity or image
func (s *cardService) Edit(ctx context.Context, cardRef string, patch entities.CardPatch) (*entities.Card, error) {
	if patch.IsEmpty() {
		return nil, domain.Invalid("Nothing to update.")
	}

	card, err := s.mutableCard(ctx, cardRef, "edited")
	if err != nil {
		return nil, err
	}

	if patch.Name != nil && !strings.EqualFold(strings.TrimSpace(*patch.Name), card.Name) {
		if err := s.ensureNameFree(ctx, *patch.Name, card.CardID); err != nil {
			return nil, err
		}
	}
	if patch.Rarity != nil {
		rarity, err := s.requireRarity(ctx, *patch.Rarity)
		if err != nil {
			return nil, err
		}
		patch.Rarity = &rarity.Name
	}

	patch.Apply(card)
	if err := card.Validate(); err != nil {
		return nil, domain.Invalid("%s", capitalize(err.Error()))
	}

	if err := s.cardRepo.Update(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}
	return card, nil
}

// Delete removes a card together with its set memberships, listings and holdings
func (s *cardService) Delete(ctx context.Context, cardRef string) (*entities.Card, error) {
	card, err := s.mutableCard(ctx, cardRef, "deleted")
	if err != nil {
		return nil, err
	}

	if err := s.setRepo.RemoveCardFromAll(ctx, card.CardID); err != nil {
		return nil, fmt.Errorf("failed to remove card from sets: %w", err)
	}
	if _, err := s.listingRepo.DeleteByCard(ctx, card.CardID); err != nil {
		return nil, fmt.Errorf("failed to remove card listings: %w", err)
	}
	if _, err := s.inventoryRepo.DeleteByCard(ctx, card.CardID); err != nil {
		return nil, fmt.Errorf("failed to remove card from inventories: %w", err)
	}
	if err := s.profileRepo.ClearFavouriteCard(ctx, card.CardID); err != nil {
		return nil, fmt.Errorf("failed to clear favourite card: %w", err)
	}
	if _, err := s.cardRepo.Delete(ctx, card.CardID); err != nil {
		return nil, fmt.Errorf("failed to delete card: %w", err)
	}

	log.WithFields(log.Fields{
		"guildID": s.guildID,
		"cardID":  card.CardID,
	}).Info("Card deleted")

	return card, nil
}

func (s *cardService) Get(ctx context.Context, cardRef string) (*entities.Card, error) {
	return findCard(ctx, s.cardRepo, cardRef)
}

func (s *cardService) Search(ctx context.Context, query string, limit int) ([]*entities.Card, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	cards, err := s.cardRepo.Search(ctx, strings.TrimSpace(query), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search cards: %w", err)
	}
	return cards, nil
}

// Give grants copies of a card to a user
func (s *cardService) Give(ctx context.Context, userID int64, cardRef string, n int64) (*entities.Card, int64, error) {
	card, err := findCard(ctx, s.cardRepo, cardRef)
	if err != nil {
		return nil, 0, err
	}
	quantity, err := s.ledger.AddCard(ctx, userID, card.CardID, n)
	if err != nil {
		return nil, 0, err
	}
	return card, quantity, nil
}

// Take removes copies of a card from a user
func (s *cardService) Take(ctx context.Context, userID int64, cardRef string, n int64) (*entities.Card, int64, error) {
	card, err := findCard(ctx, s.cardRepo, cardRef)
	if err != nil {
		return nil, 0, err
	}
	remaining, err := s.ledger.RemoveCard(ctx, userID, card.CardID, n)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficient) {
			return nil, 0, domain.Insufficient("That user does not have %d of **%s**.", n, card.Name)
		}
		return nil, 0, err
	}
	return card, remaining, nil
}

func (s *cardService) requireRarity(ctx context.Context, name string) (*entities.Rarity, error) {
	rarity, err := s.rarityRepo.Get(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("failed to get rarity: %w", err)
	}
	if rarity == nil {
		return nil, domain.NotFound("Rarity `%s` does not exist.", name)
	}
	return rarity, nil
}

// ensureNameFree fails if another card already uses name. exceptID is the card being renamed.
func (s *cardService) ensureNameFree(ctx context.Context, name, exceptID string) error {
	name = strings.TrimSpace(name)
	existing, err := s.cardRepo.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to check card name: %w", err)
	}
	if existing != nil && existing.CardID != exceptID {
		return domain.Invalid("A card named `%s` already exists.", name)
	}
	return nil
}

// mutableCard resolves a card that is not part of a preset set
func (s *cardService) mutableCard(ctx context.Context, cardRef, verb string) (*entities.Card, error) {
	card, err := findCard(ctx, s.cardRepo, cardRef)
	if err != nil {
		return nil, err
	}
	preset, err := s.setRepo.IsCardInPreset(ctx, card.CardID)
	if err != nil {
		return nil, fmt.Errorf("failed to check preset membership: %w", err)
	}
	if preset {
		return nil, domain.Invalid("**%s** belongs to a preset set and cannot be %s.", card.Name, verb)
	}
	return card, nil
}
