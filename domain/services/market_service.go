package services

import (
	"context"
	"errors"
	"fmt"

	"cardbot/domain"
	"cardbot/domain/entities"
	"cardbot/domain/interfaces"
	"cardbot/events"

	log "github.com/sirupsen/logrus"
)

const defaultListingPageSize = 25

type marketService struct {
	guildID        int64
	ledger         interfaces.LedgerService
	cardRepo       interfaces.CardRepository
	listingRepo    interfaces.ListingRepository
	eventPublisher interfaces.EventPublisher
}

// NewMarketService creates a new marketplace service
func NewMarketService(
	guildID int64,
	ledger interfaces.LedgerService,
	cardRepo interfaces.CardRepository,
	listingRepo interfaces.ListingRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.MarketService {
	return &marketService{
		guildID:        guildID,
		ledger:         ledger,
		cardRepo:       cardRepo,
		listingRepo:    listingRepo,
		eventPublisher: eventPublisher,
	}
}

// Sell moves one copy of a card out of the user's inventory into a listing
func (s *marketService) Sell(ctx context.Context, userID int64, cardRef string, price int64) (*entities.SaleListing, error) {
	if price <= 0 {
		return nil, domain.Invalid("Price must be greater than 0.")
	}

	card, err := findCard(ctx, s.cardRepo, cardRef)
	if err != nil {
		return nil, err
	}

	if _, err := s.ledger.RemoveCard(ctx, userID, card.CardID, 1); err != nil {
		if errors.Is(err, domain.ErrInsufficient) {
			return nil, domain.Insufficient("You do not own any copies of **%s**.", card.Name)
		}
		return nil, err
	}

	listing := &entities.SaleListing{
		GuildID: s.guildID,
		UserID:  userID,
		CardID:  card.CardID,
		Price:   price,
	}
	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}
	listing.CardName = card.Name
	listing.CardRarity = card.Rarity

	return listing, nil
}

// Buy purchases a listing. The listing row is claimed with a delete so two buyers
// racing for it cannot both succeed.
func (s *marketService) Buy(ctx context.Context, buyerID int64, listingID int64) (*entities.PurchaseResult, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	if listing == nil {
		return nil, domain.Unavailable("This card is no longer available.")
	}
	if listing.UserID == buyerID {
		return nil, domain.Invalid("You cannot buy your own listing.")
	}

	metadata := map[string]any{
		"listing_id": listing.ID,
		"card_id":    listing.CardID,
	}

	buyerBalance, err := s.ledger.Debit(ctx, buyerID, listing.Price, entities.TransactionTypeMarketBuy, metadata)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficient) {
			return nil, domain.Insufficient("You do not have enough points to buy this card.")
		}
		return nil, err
	}

	claimed, err := s.listingRepo.Claim(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to claim listing: %w", err)
	}
	if claimed == nil {
		return nil, domain.Unavailable("This card is no longer available.")
	}

	sellerBalance, err := s.ledger.Credit(ctx, claimed.UserID, claimed.Price, entities.TransactionTypeMarketSale, metadata)
	if err != nil {
		return nil, err
	}
	if _, err := s.ledger.AddCard(ctx, buyerID, claimed.CardID, 1); err != nil {
		return nil, err
	}

	card, err := s.cardRepo.GetByID(ctx, claimed.CardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	if card != nil {
		claimed.CardName = card.Name
		claimed.CardRarity = card.Rarity
	}

	event := events.ListingSoldEvent{
		GuildID:   s.guildID,
		ListingID: claimed.ID,
		SellerID:  claimed.UserID,
		BuyerID:   buyerID,
		CardID:    claimed.CardID,
		CardName:  claimed.CardName,
		Price:     claimed.Price,
	}
	if err := s.eventPublisher.Publish(event); err != nil {
		log.WithError(err).Error("Failed to publish listing sold event")
	}

	return &entities.PurchaseResult{
		Listing:       claimed,
		Card:          card,
		BuyerBalance:  buyerBalance,
		SellerBalance: sellerBalance,
	}, nil
}

// RemoveSale withdraws a listing and returns the card to its seller
func (s *marketService) RemoveSale(ctx context.Context, userID int64, listingID int64) (*entities.SaleListing, error) {
	listing, err := s.listingRepo.ClaimOwned(ctx, listingID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove listing: %w", err)
	}
	if listing == nil {
		return nil, domain.NotFound("No such sale listing found for your account.")
	}

	if _, err := s.ledger.AddCard(ctx, userID, listing.CardID, 1); err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *marketService) Listings(ctx context.Context, limit int) ([]*entities.SaleListing, error) {
	if limit <= 0 {
		limit = defaultListingPageSize
	}
	listings, err := s.listingRepo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	return listings, nil
}

func (s *marketService) ListingsBySeller(ctx context.Context, userID int64) ([]*entities.SaleListing, error) {
	listings, err := s.listingRepo.ListBySeller(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list seller listings: %w", err)
	}
	return listings, nil
}
