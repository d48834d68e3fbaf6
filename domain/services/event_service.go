package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cardbot/domain"
	"cardbot/domain/entities"
	"cardbot/domain/interfaces"
	"cardbot/domain/utils"
	"cardbot/events"

	log "github.com/sirupsen/logrus"
)

type eventService struct {
	guildID        int64
	ledger         interfaces.LedgerService
	eventRepo      interfaces.EventRepository
	setRepo        interfaces.CardSetRepository
	rarityRepo     interfaces.RarityRepository
	picker         *RewardPicker
	eventPublisher interfaces.EventPublisher
	now            func() time.Time
}

// NewEventService creates a new event service. A nil clock uses time.Now.
func NewEventService(
	guildID int64,
	ledger interfaces.LedgerService,
	eventRepo interfaces.EventRepository,
	setRepo interfaces.CardSetRepository,
	rarityRepo interfaces.RarityRepository,
	picker *RewardPicker,
	eventPublisher interfaces.EventPublisher,
	now func() time.Time,
) interfaces.EventService {
	if picker == nil {
		picker = NewRewardPicker(nil)
	}
	if now == nil {
		now = time.Now
	}
	return &eventService{
		guildID:        guildID,
		ledger:         ledger,
		eventRepo:      eventRepo,
		setRepo:        setRepo,
		rarityRepo:     rarityRepo,
		picker:         picker,
		eventPublisher: eventPublisher,
		now:            now,
	}
}

func (s *eventService) Create(ctx context.Context, event *entities.Event) error {
	event.Name = strings.TrimSpace(event.Name)
	event.GuildID = s.guildID
	if err := event.Validate(); err != nil {
		return domain.Invalid("%s", capitalize(err.Error()))
	}

	existing, err := s.eventRepo.Get(ctx, event.Name)
	if err != nil {
		return fmt.Errorf("failed to get event: %w", err)
	}
	if existing != nil {
		return domain.Invalid("An event named `%s` already exists.", event.Name)
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// Update saves an edited event and clears its claim history, so a changed
// cooldown applies to everyone from now on
func (s *eventService) Update(ctx context.Context, name string, event *entities.Event) error {
	event.GuildID = s.guildID
	event.Name = strings.TrimSpace(event.Name)
	if err := event.Validate(); err != nil {
		return domain.Invalid("%s", capitalize(err.Error()))
	}

	existing, err := s.eventRepo.Get(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to get event: %w", err)
	}
	if existing == nil {
		return domain.NotFound("Event not found.")
	}

	if event.Name != existing.Name {
		taken, err := s.eventRepo.Get(ctx, event.Name)
		if err != nil {
			return fmt.Errorf("failed to get event: %w", err)
		}
		if taken != nil {
			return domain.Invalid("An event named `%s` already exists.", event.Name)
		}
	}

	reset, err := s.eventRepo.ResetClaims(ctx, existing.Name)
	if err != nil {
		return fmt.Errorf("failed to reset event claims: %w", err)
	}
	if err := s.eventRepo.Update(ctx, existing.Name, event); err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	log.WithFields(log.Fields{
		"guildID":       s.guildID,
		"event":         existing.Name,
		"newName":       event.Name,
		"claimsCleared": reset,
	}).Info("Event updated")
	return nil
}

func (s *eventService) Delete(ctx context.Context, name string) error {
	deleted, err := s.eventRepo.Delete(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if !deleted {
		return domain.NotFound("Event not found.")
	}
	return nil
}

func (s *eventService) Get(ctx context.Context, name string) (*entities.Event, error) {
	event, err := s.eventRepo.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, domain.NotFound("Event not found.")
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context) ([]*entities.Event, error) {
	list, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return list, nil
}

func (s *eventService) ResolveSets(ctx context.Context, names []string) ([]int64, error) {
	ids := make([]int64, 0, len(names))
	seen := make(map[int64]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		set, err := s.setRepo.GetByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to get set: %w", err)
		}
		if set == nil {
			return nil, domain.NotFound("Set `%s` not found.", name)
		}
		if !seen[set.ID] {
			seen[set.ID] = true
			ids = append(ids, set.ID)
		}
	}
	return ids, nil
}

// Claim pays an event's rewards and starts the user's cooldown. Any failure leaves
// the previous claim time in place.
func (s *eventService) Claim(ctx context.Context, userID int64, name string) (*entities.EventClaimResult, error) {
	event, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	now := s.now()
	claim, err := s.eventRepo.GetClaim(ctx, userID, event.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}
	if claim != nil {
		if remaining := claim.Remaining(event.Cooldown(), now); remaining > 0 {
			return nil, domain.Cooldown("You can claim **%s** again in %s.", event.Name, utils.FormatCooldown(remaining))
		}
	}

	result := &entities.EventClaimResult{EventName: event.Name}

	if event.PointReward > 0 {
		balance, err := s.ledger.Credit(ctx, userID, event.PointReward, entities.TransactionTypeEventReward, map[string]any{
			"event": event.Name,
		})
		if err != nil {
			return nil, err
		}
		result.PointsEarned = event.PointReward
		result.NewBalance = balance
	} else {
		balance, err := s.ledger.Balance(ctx, userID)
		if err != nil {
			return nil, err
		}
		result.NewBalance = balance
	}

	if event.HasCardReward() {
		card, err := s.drawCard(ctx, event)
		if err != nil {
			return nil, err
		}
		if card == nil {
			result.NoCardReason = "No card reward available."
		} else {
			if _, err := s.ledger.AddCard(ctx, userID, card.CardID, 1); err != nil {
				return nil, err
			}
			result.Card = card
		}
	}

	if err := s.eventRepo.UpsertClaim(ctx, &entities.EventClaim{
		GuildID:   s.guildID,
		UserID:    userID,
		EventName: event.Name,
		LastClaim: now,
	}); err != nil {
		return nil, fmt.Errorf("failed to record claim: %w", err)
	}

	claimed := events.EventClaimedEvent{
		GuildID:      s.guildID,
		UserID:       userID,
		EventName:    event.Name,
		PointsEarned: result.PointsEarned,
	}
	if result.Card != nil {
		claimed.CardID = result.Card.CardID
	}
	if err := s.eventPublisher.Publish(claimed); err != nil {
		log.WithError(err).Error("Failed to publish event claimed event")
	}

	return result, nil
}

// drawCard picks a reward set uniformly, then a card from it by rarity weight.
// An empty set yields nil.
func (s *eventService) drawCard(ctx context.Context, event *entities.Event) (*entities.Card, error) {
	setID := event.SetIDs[s.picker.PickIndex(len(event.SetIDs))]

	cards, err := s.setRepo.ListCards(ctx, setID)
	if err != nil {
		return nil, fmt.Errorf("failed to list set cards: %w", err)
	}
	if len(cards) == 0 {
		log.WithFields(log.Fields{
			"guildID": s.guildID,
			"event":   event.Name,
			"setID":   setID,
		}).Warn("Event reward set has no cards")
		return nil, nil
	}

	rarities, err := s.rarityRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rarities: %w", err)
	}

	return s.picker.Pick(cards, entities.NewRarityWeights(rarities)), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:] + "."
}
