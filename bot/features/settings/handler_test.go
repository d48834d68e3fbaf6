package settings

import (
	"testing"

	"cardbot/domain/entities"

	"github.com/stretchr/testify/assert"
)

func TestSettingsSummaries(t *testing.T) {
	channel := int64(555)

	tests := []struct {
		name          string
		settings      *entities.GuildSettings
		wantReward    string
		wantChannel   string
		wantEmbedLine string
	}{
		{
			name:          "defaults without channel",
			settings:      &entities.GuildSettings{MessageCountThreshold: 100, MessageRewardPoints: 10},
			wantReward:    "Members now earn 10 points every 100 messages.",
			wantChannel:   "Economy announcements are now disabled.",
			wantEmbedLine: "Not set",
		},
		{
			name:          "disabled reward with channel",
			settings:      &entities.GuildSettings{MessageCountThreshold: 0, MessageRewardPoints: 10, LogChannelID: &channel},
			wantReward:    "Message rewards are now disabled.",
			wantChannel:   "Economy announcements will be posted in <#555>.",
			wantEmbedLine: "<#555>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantReward, messageRewardSummary(tt.settings))
			assert.Equal(t, tt.wantChannel, logChannelSummary(tt.settings))
			assert.Equal(t, tt.wantEmbedLine, settingsEmbed(tt.settings).Fields[1].Value)
		})
	}
}

func TestVoicePointsSummary(t *testing.T) {
	assert.Equal(t, "Voice rewards are now disabled.", voicePointsSummary(&entities.GuildSettings{}))

	enabled := &entities.GuildSettings{VoicePointsPerMinute: 2}
	assert.Equal(t, "Members now earn 2 points per minute in voice chat.", voicePointsSummary(enabled))
	assert.Equal(t, "2 points per minute", settingsEmbed(enabled).Fields[2].Value)
}
