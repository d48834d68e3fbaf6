package entities

const (
	DefaultMessageCountThreshold = 100
	DefaultMessageRewardPoints   = 10
)

// GuildSettings represents per-guild configuration settings
type GuildSettings struct {
	GuildID               int64  `db:"guild_id"`
	MessageCountThreshold int    `db:"message_count_threshold"`
	MessageRewardPoints   int64  `db:"message_reward_points"`
	LogChannelID          *int64 `db:"log_channel_id"` // Nullable - channel for economy announcements
	VoicePointsPerMinute  int64  `db:"voice_points_per_minute"`
}

// HasLogChannel checks if a log channel is configured
func (gs *GuildSettings) HasLogChannel() bool {
	return gs.LogChannelID != nil && *gs.LogChannelID > 0
}

// SetLogChannel sets the log channel ID
func (gs *GuildSettings) SetLogChannel(channelID *int64) {
	gs.LogChannelID = channelID
}

// VoiceRewardEnabled reports whether time in voice channels earns points
func (gs *GuildSettings) VoiceRewardEnabled() bool {
	return gs.VoicePointsPerMinute > 0
}

// MessageRewardEnabled reports whether chatting earns points
func (gs *GuildSettings) MessageRewardEnabled() bool {
	return gs.MessageCountThreshold > 0 && gs.MessageRewardPoints > 0
}
