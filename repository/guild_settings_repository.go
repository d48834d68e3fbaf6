package repository

import (
	"context"
	"fmt"

	"cardbot/domain/entities"
)

// GuildSettingsRepository implements the GuildSettingsRepository interface
type GuildSettingsRepository struct {
	q       Queryable
	guildID int64
}

// NewGuildSettingsRepositoryScoped creates a new guild settings repository with a transaction and guild scope
func NewGuildSettingsRepositoryScoped(tx Queryable, guildID int64) *GuildSettingsRepository {
	return &GuildSettingsRepository{
		q:       tx,
		guildID: guildID,
	}
}

// GetOrCreateGuildSettings retrieves guild settings or creates default ones if not found
func (r *GuildSettingsRepository) GetOrCreateGuildSettings(ctx context.Context) (*entities.GuildSettings, error) {
	// The no-op update makes RETURNING yield the existing row on conflict
	query := `
		INSERT INTO guild_settings (guild_id, message_count_threshold, message_reward_points)
		VALUES ($1, $2, $3)
		ON CONFLICT (guild_id) DO UPDATE SET guild_id = EXCLUDED.guild_id
		RETURNING guild_id, message_count_threshold, message_reward_points, log_channel_id, voice_points_per_minute
	`

	var settings entities.GuildSettings
	err := r.q.QueryRow(ctx, query,
		r.guildID,
		entities.DefaultMessageCountThreshold,
		entities.DefaultMessageRewardPoints,
	).Scan(
		&settings.GuildID,
		&settings.MessageCountThreshold,
		&settings.MessageRewardPoints,
		&settings.LogChannelID,
		&settings.VoicePointsPerMinute,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild settings for guild %d: %w", r.guildID, err)
	}

	return &settings, nil
}

// UpdateGuildSettings updates guild settings
func (r *GuildSettingsRepository) UpdateGuildSettings(ctx context.Context, settings *entities.GuildSettings) error {
	query := `
		UPDATE guild_settings
		SET message_count_threshold = $2,
		    message_reward_points = $3,
		    log_channel_id = $4,
		    voice_points_per_minute = $5,
		    updated_at = NOW()
		WHERE guild_id = $1
	`

	result, err := r.q.Exec(ctx, query,
		r.guildID,
		settings.MessageCountThreshold,
		settings.MessageRewardPoints,
		settings.LogChannelID,
		settings.VoicePointsPerMinute,
	)
	if err != nil {
		return fmt.Errorf("failed to update guild settings for guild %d: %w", r.guildID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("guild settings for guild %d not found", r.guildID)
	}

	return nil
}
