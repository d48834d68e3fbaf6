package settings

import (
	"context"
	"fmt"

	"cardbot/application"
	"cardbot/bot/common"
	"cardbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleMessageReward handles /settings message-reward
func (f *Feature) handleMessageReward(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	ctx := context.Background()
	var settings *entities.GuildSettings
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		settings, err = svc.Settings.SetMessageReward(ctx, int(opts.Int("count")), opts.Int("points"))
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	log.WithFields(log.Fields{
		"guildID":   guildID,
		"threshold": settings.MessageCountThreshold,
		"points":    settings.MessageRewardPoints,
	}).Info("Message reward updated")

	common.RespondWithSuccess(s, i, messageRewardSummary(settings), true)
}

// handleVoicePoints handles /settings voice-points
func (f *Feature) handleVoicePoints(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	ctx := context.Background()
	var settings *entities.GuildSettings
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		settings, err = svc.Settings.SetVoicePoints(ctx, opts.Int("points"))
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	log.WithFields(log.Fields{
		"guildID": guildID,
		"points":  settings.VoicePointsPerMinute,
	}).Info("Voice reward updated")

	common.RespondWithSuccess(s, i, voicePointsSummary(settings), true)
}

// handleLogChannel handles /settings log-channel. Omitting the channel disables announcements.
func (f *Feature) handleLogChannel(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	var channelID *int64
	if raw := opts.ChannelID("channel"); raw != "" {
		id, err := common.ParseUserID(raw)
		if err != nil {
			common.HandleError(s, i, common.NewUserError("Invalid channel selected.", "channel id parse failed"), false)
			return
		}
		channelID = &id
	}

	ctx := context.Background()
	var settings *entities.GuildSettings
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		settings, err = svc.Settings.SetLogChannel(ctx, channelID)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithSuccess(s, i, logChannelSummary(settings), true)
}

// handleShow handles /settings show
func (f *Feature) handleShow(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	ctx := context.Background()
	var settings *entities.GuildSettings
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		settings, err = svc.Settings.GetOrCreateSettings(ctx)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithEmbed(s, i, settingsEmbed(settings), nil, true)
}

func messageRewardSummary(settings *entities.GuildSettings) string {
	if !settings.MessageRewardEnabled() {
		return "Message rewards are now disabled."
	}
	return fmt.Sprintf("Members now earn %s every %d messages.",
		common.FormatPoints(settings.MessageRewardPoints), settings.MessageCountThreshold)
}

func voicePointsSummary(settings *entities.GuildSettings) string {
	if !settings.VoiceRewardEnabled() {
		return "Voice rewards are now disabled."
	}
	return fmt.Sprintf("Members now earn %s per minute in voice chat.", common.FormatPoints(settings.VoicePointsPerMinute))
}

func logChannelSummary(settings *entities.GuildSettings) string {
	if !settings.HasLogChannel() {
		return "Economy announcements are now disabled."
	}
	return fmt.Sprintf("Economy announcements will be posted in <#%d>.", *settings.LogChannelID)
}

func settingsEmbed(settings *entities.GuildSettings) *discordgo.MessageEmbed {
	messageReward := "Disabled"
	if settings.MessageRewardEnabled() {
		messageReward = fmt.Sprintf("%s every %d messages", common.FormatPoints(settings.MessageRewardPoints), settings.MessageCountThreshold)
	}
	voiceReward := "Disabled"
	if settings.VoiceRewardEnabled() {
		voiceReward = fmt.Sprintf("%s per minute", common.FormatPoints(settings.VoicePointsPerMinute))
	}
	logChannel := "Not set"
	if settings.HasLogChannel() {
		logChannel = fmt.Sprintf("<#%d>", *settings.LogChannelID)
	}

	return &discordgo.MessageEmbed{
		Title: "⚙️ Server Settings",
		Color: common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Message Reward", Value: messageReward, Inline: false},
			{Name: "Log Channel", Value: logChannel, Inline: false},
			{Name: "Voice Reward", Value: voiceReward, Inline: false},
		},
	}
}
