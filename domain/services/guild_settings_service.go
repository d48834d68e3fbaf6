package services

import (
	"context"
	"fmt"

	"cardbot/domain"
	"cardbot/domain/entities"
	"cardbot/domain/interfaces"
)

// guildSettingsService implements the GuildSettingsService interface
type guildSettingsService struct {
	ledger            interfaces.LedgerService
	guildSettingsRepo interfaces.GuildSettingsRepository
	accountRepo       interfaces.AccountRepository
}

// NewGuildSettingsService creates a new guild settings service
func NewGuildSettingsService(
	ledger interfaces.LedgerService,
	guildSettingsRepo interfaces.GuildSettingsRepository,
	accountRepo interfaces.AccountRepository,
) interfaces.GuildSettingsService {
	return &guildSettingsService{
		ledger:            ledger,
		guildSettingsRepo: guildSettingsRepo,
		accountRepo:       accountRepo,
	}
}

// GetOrCreateSettings retrieves guild settings or creates default ones if not found
func (s *guildSettingsService) GetOrCreateSettings(ctx context.Context) (*entities.GuildSettings, error) {
	settings, err := s.guildSettingsRepo.GetOrCreateGuildSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create guild settings: %w", err)
	}
	return settings, nil
}

// SetMessageReward configures how many messages earn how many points. A zero threshold disables it.
func (s *guildSettingsService) SetMessageReward(ctx context.Context, threshold int, points int64) (*entities.GuildSettings, error) {
	if threshold < 0 {
		return nil, domain.Invalid("Message threshold cannot be negative.")
	}
	if points < 0 {
		return nil, domain.Invalid("Reward points cannot be negative.")
	}

	settings, err := s.guildSettingsRepo.GetOrCreateGuildSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild settings: %w", err)
	}

	settings.MessageCountThreshold = threshold
	settings.MessageRewardPoints = points

	if err := s.guildSettingsRepo.UpdateGuildSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to update guild settings: %w", err)
	}
	return settings, nil
}

// SetLogChannel updates the announcement channel (nil disables announcements)
func (s *guildSettingsService) SetLogChannel(ctx context.Context, channelID *int64) (*entities.GuildSettings, error) {
	settings, err := s.guildSettingsRepo.GetOrCreateGuildSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild settings: %w", err)
	}

	settings.SetLogChannel(channelID)

	if err := s.guildSettingsRepo.UpdateGuildSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to update guild settings: %w", err)
	}
	return settings, nil
}

// SetVoicePoints configures the points paid per minute of voice chat. Zero disables it.
func (s *guildSettingsService) SetVoicePoints(ctx context.Context, points int64) (*entities.GuildSettings, error) {
	if points < 0 {
		return nil, domain.Invalid("Points per minute cannot be negative.")
	}

	settings, err := s.guildSettingsRepo.GetOrCreateGuildSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild settings: %w", err)
	}

	settings.VoicePointsPerMinute = points

	if err := s.guildSettingsRepo.UpdateGuildSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to update guild settings: %w", err)
	}
	return settings, nil
}

// RecordVoice credits whole minutes of voice chat at the guild's per-minute rate
func (s *guildSettingsService) RecordVoice(ctx context.Context, userID int64, minutes int64) (int64, error) {
	if minutes <= 0 {
		return 0, nil
	}

	settings, err := s.guildSettingsRepo.GetOrCreateGuildSettings(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get guild settings: %w", err)
	}
	if !settings.VoiceRewardEnabled() {
		return 0, nil
	}

	points := minutes * settings.VoicePointsPerMinute
	if _, err := s.ledger.Credit(ctx, userID, points, entities.TransactionTypeVoiceReward, map[string]any{
		"minutes":           minutes,
		"points_per_minute": settings.VoicePointsPerMinute,
	}); err != nil {
		return 0, err
	}
	return points, nil
}

// RecordMessage counts a message and credits the reward when the user reaches the threshold
func (s *guildSettingsService) RecordMessage(ctx context.Context, userID int64) (int64, error) {
	settings, err := s.guildSettingsRepo.GetOrCreateGuildSettings(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get guild settings: %w", err)
	}
	if !settings.MessageRewardEnabled() {
		return 0, nil
	}

	reached, err := s.accountRepo.IncrementMessageCount(ctx, userID, settings.MessageCountThreshold)
	if err != nil {
		return 0, fmt.Errorf("failed to count message: %w", err)
	}
	if !reached {
		return 0, nil
	}

	if _, err := s.ledger.Credit(ctx, userID, settings.MessageRewardPoints, entities.TransactionTypeMessageReward, map[string]any{
		"threshold": settings.MessageCountThreshold,
	}); err != nil {
		return 0, err
	}
	return settings.MessageRewardPoints, nil
}
