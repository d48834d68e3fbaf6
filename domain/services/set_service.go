package services

import (
	"context"
	"fmt"
	"strings"

	"cardbot/domain"
	"cardbot/domain/entities"
	"cardbot/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

const (
	importedRarityWeight    = 1.0
	importedRarityBurnValue = int64(10)
)

type setService struct {
	guildID    int64
	cardRepo   interfaces.CardRepository
	setRepo    interfaces.CardSetRepository
	eventRepo  interfaces.EventRepository
	rarityRepo interfaces.RarityRepository
}

// NewSetService creates a new card set service
func NewSetService(
	guildID int64,
	cardRepo interfaces.CardRepository,
	setRepo interfaces.CardSetRepository,
	eventRepo interfaces.EventRepository,
	rarityRepo interfaces.RarityRepository,
) interfaces.SetService {
	return &setService{
		guildID:    guildID,
		cardRepo:   cardRepo,
		setRepo:    setRepo,
		eventRepo:  eventRepo,
		rarityRepo: rarityRepo,
	}
}

func (s *setService) Create(ctx context.Context, name, description string) (*entities.CardSet, error) {
	return s.create(ctx, name, description, false)
}

// AddCard adds an existing card to a set
func (s *setService) AddCard(ctx context.Context, setName, cardRef string) (*entities.Card, error) {
	set, err := s.requireSet(ctx, setName)
	if err != nil {
		return nil, err
	}
	card, err := findCard(ctx, s.cardRepo, cardRef)
	if err != nil {
		return nil, err
	}

	added, err := s.setRepo.AddCard(ctx, set.ID, card.CardID)
	if err != nil {
		return nil, fmt.Errorf("failed to add card to set: %w", err)
	}
	if !added {
		return nil, domain.Invalid("**%s** is already in set `%s`.", card.Name, set.Name)
	}
	return card, nil
}

func (s *setService) RemoveCard(ctx context.Context, setName, cardRef string) (*entities.Card, error) {
	set, err := s.requireSet(ctx, setName)
	if err != nil {
		return nil, err
	}
	card, err := findCard(ctx, s.cardRepo, cardRef)
	if err != nil {
		return nil, err
	}

	removed, err := s.setRepo.RemoveCard(ctx, set.ID, card.CardID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove card from set: %w", err)
	}
	if !removed {
		return nil, domain.NotFound("**%s** is not in set `%s`.", card.Name, set.Name)
	}
	return card, nil
}

// Delete removes a set and drops it from every event that rewards it. Cards are kept.
func (s *setService) Delete(ctx context.Context, name string) error {
	set, err := s.requireSet(ctx, name)
	if err != nil {
		return err
	}
	return s.remove(ctx, set)
}

// Unload removes a preset set the same way Delete does, refusing sets made by hand
func (s *setService) Unload(ctx context.Context, name string) (*entities.CardSet, error) {
	set, err := s.requireSet(ctx, name)
	if err != nil {
		return nil, err
	}
	if !set.IsPreset {
		return nil, domain.Invalid("Set `%s` is not a preset. Use `/set delete` instead.", set.Name)
	}
	if err := s.remove(ctx, set); err != nil {
		return nil, err
	}
	return set, nil
}

// Edit renames a set or replaces its description
func (s *setService) Edit(ctx context.Context, name string, patch entities.CardSetPatch) (*entities.CardSet, error) {
	if patch.IsEmpty() {
		return nil, domain.Invalid("Give a new name or a new description.")
	}

	set, err := s.requireSet(ctx, name)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		newName := strings.TrimSpace(*patch.Name)
		if newName == "" {
			return nil, domain.Invalid("Set name cannot be empty.")
		}
		if !strings.EqualFold(newName, set.Name) {
			existing, err := s.setRepo.GetByName(ctx, newName)
			if err != nil {
				return nil, fmt.Errorf("failed to get set: %w", err)
			}
			if existing != nil {
				return nil, domain.Invalid("Set `%s` already exists.", existing.Name)
			}
		}
		set.Name = newName
	}
	if patch.Description != nil {
		set.Description = strings.TrimSpace(*patch.Description)
	}

	if err := s.setRepo.Update(ctx, set); err != nil {
		return nil, fmt.Errorf("failed to update set: %w", err)
	}
	return set, nil
}

// Export builds the import document for a set, listing the rarities its cards use.
// Preset sets are not exportable.
func (s *setService) Export(ctx context.Context, name string) (*entities.PresetSet, error) {
	set, err := s.requireSet(ctx, name)
	if err != nil {
		return nil, err
	}
	if set.IsPreset {
		return nil, domain.Invalid("Preset sets cannot be exported.")
	}

	cards, err := s.setRepo.ListCards(ctx, set.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list set cards: %w", err)
	}

	preset := &entities.PresetSet{
		Name:        set.Name,
		Description: set.Description,
		Cards:       make([]entities.PresetCard, 0, len(cards)),
	}
	seen := make(map[string]bool)
	for _, card := range cards {
		preset.Cards = append(preset.Cards, entities.PresetCard{
			Name:        card.Name,
			Description: card.Description,
			Rarity:      card.Rarity,
			ImageURL:    card.ImageURL,
		})

		key := strings.ToLower(card.Rarity)
		if seen[key] {
			continue
		}
		seen[key] = true
		rarity, err := s.rarityRepo.Get(ctx, card.Rarity)
		if err != nil {
			return nil, fmt.Errorf("failed to get rarity: %w", err)
		}
		if rarity != nil {
			preset.Rarities = append(preset.Rarities, entities.PresetRarity{
				Name:      rarity.Name,
				Weight:    rarity.Weight,
				BurnValue: rarity.BurnValue,
			})
		}
	}
	return preset, nil
}

func (s *setService) remove(ctx context.Context, set *entities.CardSet) error {
	if err := s.eventRepo.RemoveSetFromAll(ctx, set.ID); err != nil {
		return fmt.Errorf("failed to detach set from events: %w", err)
	}
	if _, err := s.setRepo.Delete(ctx, set.ID); err != nil {
		return fmt.Errorf("failed to delete set: %w", err)
	}

	log.WithFields(log.Fields{
		"guildID": s.guildID,
		"setID":   set.ID,
		"name":    set.Name,
		"preset":  set.IsPreset,
	}).Info("Card set removed")
	return nil
}

func (s *setService) Info(ctx context.Context, name string) (*entities.CardSetDetail, error) {
	set, err := s.requireSet(ctx, name)
	if err != nil {
		return nil, err
	}
	cards, err := s.setRepo.ListCards(ctx, set.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list set cards: %w", err)
	}
	return &entities.CardSetDetail{Set: set, Cards: cards}, nil
}

func (s *setService) List(ctx context.Context) ([]*entities.CardSet, error) {
	sets, err := s.setRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sets: %w", err)
	}
	return sets, nil
}

// ImportPreset creates the set, any rarities it needs and every card in it.
// Rarities the guild lacks are taken from the preset, or created with weight 1 and burn value 10.
func (s *setService) ImportPreset(ctx context.Context, preset *entities.PresetSet, isPreset bool) (*entities.CardSetDetail, error) {
	if err := preset.Validate(); err != nil {
		return nil, domain.Invalid("%s", capitalize(err.Error()))
	}

	set, err := s.create(ctx, preset.Name, preset.Description, isPreset)
	if err != nil {
		return nil, err
	}

	declared := make(map[string]entities.PresetRarity, len(preset.Rarities))
	for _, r := range preset.Rarities {
		declared[strings.ToLower(strings.TrimSpace(r.Name))] = r
	}

	rarityNames := make(map[string]string)
	cards := make([]*entities.Card, 0, len(preset.Cards))
	for _, pc := range preset.Cards {
		rarityName, err := s.ensureRarity(ctx, pc.Rarity, declared, rarityNames)
		if err != nil {
			return nil, err
		}

		card := &entities.Card{
			GuildID:     s.guildID,
			Name:        strings.TrimSpace(pc.Name),
			Description: pc.Description,
			Rarity:      rarityName,
			ImageURL:    pc.ImageURL,
		}
		if err := card.Validate(); err != nil {
			return nil, domain.Invalid("Card `%s`: %s", pc.Name, capitalize(err.Error()))
		}
		existing, err := s.cardRepo.GetByName(ctx, card.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to check card name: %w", err)
		}
		if existing != nil {
			return nil, domain.Invalid("A card named `%s` already exists.", card.Name)
		}

		if err := s.cardRepo.Create(ctx, card); err != nil {
			return nil, fmt.Errorf("failed to create card %s: %w", card.Name, err)
		}
		if _, err := s.setRepo.AddCard(ctx, set.ID, card.CardID); err != nil {
			return nil, fmt.Errorf("failed to add card %s to set: %w", card.Name, err)
		}
		cards = append(cards, card)
	}

	log.WithFields(log.Fields{
		"guildID": s.guildID,
		"set":     set.Name,
		"cards":   len(cards),
		"preset":  isPreset,
	}).Info("Card set imported")

	return &entities.CardSetDetail{Set: set, Cards: cards}, nil
}

func (s *setService) create(ctx context.Context, name, description string, isPreset bool) (*entities.CardSet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Invalid("Set name cannot be empty.")
	}

	existing, err := s.setRepo.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get set: %w", err)
	}
	if existing != nil {
		return nil, domain.Invalid("Set `%s` already exists.", existing.Name)
	}

	set := &entities.CardSet{
		GuildID:     s.guildID,
		Name:        name,
		Description: strings.TrimSpace(description),
		IsPreset:    isPreset,
	}
	if err := s.setRepo.Create(ctx, set); err != nil {
		return nil, fmt.Errorf("failed to create set: %w", err)
	}
	return set, nil
}

// ensureRarity returns the stored name for a rarity, creating it if the guild does not have it.
// resolved caches lookups for the duration of one import.
func (s *setService) ensureRarity(ctx context.Context, name string, declared map[string]entities.PresetRarity, resolved map[string]string) (string, error) {
	name = strings.TrimSpace(name)
	key := strings.ToLower(name)
	if stored, ok := resolved[key]; ok {
		return stored, nil
	}

	existing, err := s.rarityRepo.Get(ctx, name)
	if err != nil {
		return "", fmt.Errorf("failed to get rarity: %w", err)
	}
	if existing != nil {
		resolved[key] = existing.Name
		return existing.Name, nil
	}

	burn := importedRarityBurnValue
	rarity := &entities.Rarity{
		GuildID:   s.guildID,
		Name:      name,
		Weight:    importedRarityWeight,
		BurnValue: &burn,
	}
	if def, ok := declared[key]; ok {
		if def.Weight < 0 || def.Weight > 1 {
			return "", domain.Invalid("Rarity `%s` has weight outside 0 to 1.", name)
		}
		rarity.Weight = def.Weight
		rarity.BurnValue = def.BurnValue
	}

	if err := s.rarityRepo.Upsert(ctx, rarity); err != nil {
		return "", fmt.Errorf("failed to create rarity %s: %w", name, err)
	}
	resolved[key] = rarity.Name
	return rarity.Name, nil
}

func (s *setService) requireSet(ctx context.Context, name string) (*entities.CardSet, error) {
	set, err := s.setRepo.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("failed to get set: %w", err)
	}
	if set == nil {
		return nil, domain.NotFound("Set `%s` not found.", name)
	}
	return set, nil
}
