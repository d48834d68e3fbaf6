package services

import (
	"context"
	"fmt"
	"strings"

	"cardbot/domain"
	"cardbot/domain/entities"
	"cardbot/domain/interfaces"
)

type profileService struct {
	guildID     int64
	ledger      interfaces.LedgerService
	profileRepo interfaces.ProfileRepository
	cardRepo    interfaces.CardRepository
}

// NewProfileService creates a new profile service
func NewProfileService(
	guildID int64,
	ledger interfaces.LedgerService,
	profileRepo interfaces.ProfileRepository,
	cardRepo interfaces.CardRepository,
) interfaces.ProfileService {
	return &profileService{
		guildID:     guildID,
		ledger:      ledger,
		profileRepo: profileRepo,
		cardRepo:    cardRepo,
	}
}

func (s *profileService) Get(ctx context.Context, userID int64) (*entities.ProfileView, error) {
	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		profile = &entities.Profile{GuildID: s.guildID, UserID: userID}
	}
	return s.view(ctx, profile)
}

// Update applies the patch on top of the stored profile. The favourite card must exist.
func (s *profileService) Update(ctx context.Context, userID int64, patch entities.ProfilePatch) (*entities.ProfileView, error) {
	if patch.IsEmpty() {
		return nil, domain.Invalid("Nothing to update.")
	}

	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		profile = &entities.Profile{GuildID: s.guildID, UserID: userID}
	}

	if patch.Bio != nil {
		profile.Bio = strings.TrimSpace(*patch.Bio)
	}
	if patch.SearchingFor != nil {
		profile.SearchingFor = strings.TrimSpace(*patch.SearchingFor)
	}
	if patch.FavouriteCard != nil {
		ref := strings.TrimSpace(*patch.FavouriteCard)
		if ref == "" {
			profile.FavouriteCardID = nil
		} else {
			card, err := findCard(ctx, s.cardRepo, ref)
			if err != nil {
				return nil, err
			}
			profile.FavouriteCardID = &card.CardID
		}
	}

	if err := profile.Validate(); err != nil {
		return nil, domain.Invalid("%s", capitalize(err.Error()))
	}
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return s.view(ctx, profile)
}

func (s *profileService) view(ctx context.Context, profile *entities.Profile) (*entities.ProfileView, error) {
	view := &entities.ProfileView{Profile: profile}

	if profile.FavouriteCardID != nil {
		card, err := s.cardRepo.GetByID(ctx, *profile.FavouriteCardID)
		if err != nil {
			return nil, fmt.Errorf("failed to get favourite card: %w", err)
		}
		view.FavouriteCard = card
	}

	holdings, err := s.ledger.Inventory(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}
	view.DistinctCards = len(holdings)
	view.TotalCards = entities.TotalCards(holdings)
	return view, nil
}
