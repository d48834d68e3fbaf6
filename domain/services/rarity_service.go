package services

import (
	"context"
	"fmt"
	"strings"

	"cardbot/domain"
	"cardbot/domain/entities"
	"cardbot/domain/interfaces"
)

type rarityService struct {
	guildID    int64
	rarityRepo interfaces.RarityRepository
}

// NewRarityService creates a new rarity configuration service
func NewRarityService(guildID int64, rarityRepo interfaces.RarityRepository) interfaces.RarityService {
	return &rarityService{
		guildID:    guildID,
		rarityRepo: rarityRepo,
	}
}

// Set creates a rarity or updates an existing one, keeping the existing name's casing
func (s *rarityService) Set(ctx context.Context, name string, weight float64, burnValue *int64) (*entities.Rarity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Invalid("Rarity name cannot be empty.")
	}
	if weight < 0 || weight > 1 {
		return nil, domain.Invalid("Weight must be between 0 and 1.")
	}
	if burnValue != nil && *burnValue < 0 {
		return nil, domain.Invalid("Burn value cannot be negative.")
	}

	existing, err := s.rarityRepo.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get rarity: %w", err)
	}
	if existing != nil {
		name = existing.Name
	}

	rarity := &entities.Rarity{
		GuildID:   s.guildID,
		Name:      name,
		Weight:    weight,
		BurnValue: burnValue,
	}
	if err := s.rarityRepo.Upsert(ctx, rarity); err != nil {
		return nil, fmt.Errorf("failed to save rarity: %w", err)
	}
	return rarity, nil
}

func (s *rarityService) List(ctx context.Context) ([]*entities.Rarity, error) {
	rarities, err := s.rarityRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rarities: %w", err)
	}
	return rarities, nil
}

func (s *rarityService) Remove(ctx context.Context, name string) error {
	existing, err := s.rarityRepo.Get(ctx, strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("failed to get rarity: %w", err)
	}
	if existing == nil {
		return domain.NotFound("Rarity `%s` not found.", name)
	}
	if _, err := s.rarityRepo.Delete(ctx, existing.Name); err != nil {
		return fmt.Errorf("failed to delete rarity: %w", err)
	}
	return nil
}

// Reset replaces the guild's rarity table with the defaults
func (s *rarityService) Reset(ctx context.Context) ([]*entities.Rarity, error) {
	if err := s.rarityRepo.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear rarities: %w", err)
	}
	return s.seed(ctx)
}

// EnsureDefaults seeds the default table only for a guild with no rarities at all
func (s *rarityService) EnsureDefaults(ctx context.Context) (bool, error) {
	count, err := s.rarityRepo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count rarities: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	if _, err := s.seed(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (s *rarityService) seed(ctx context.Context) ([]*entities.Rarity, error) {
	defaults := entities.DefaultRarities(s.guildID)
	for _, r := range defaults {
		if err := s.rarityRepo.Upsert(ctx, r); err != nil {
			return nil, fmt.Errorf("failed to seed rarity %s: %w", r.Name, err)
		}
	}
	return defaults, nil
}
