package bot

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"cardbot/application"
	"cardbot/bot/common"
	"cardbot/domain/entities"
	"cardbot/events"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// RegisterBotSubscriptions announces committed lottery wins and trades in each guild's log channel
func RegisterBotSubscriptions(bus *events.Bus, bot *Bot) {
	bus.Subscribe(events.EventTypeLotteryWon, func(ctx context.Context, event events.Event) {
		won, ok := event.(events.LotteryWonEvent)
		if !ok {
			log.WithField("eventType", event.Type()).Error("Received unexpected event in lottery announcement handler")
			return
		}
		bot.announce(ctx, won.GuildID, lotteryWonEmbed(won))
	})

	bus.Subscribe(events.EventTypeTradeSettled, func(ctx context.Context, event events.Event) {
		settled, ok := event.(events.TradeSettledEvent)
		if !ok {
			log.WithField("eventType", event.Type()).Error("Received unexpected event in trade announcement handler")
			return
		}
		bot.announce(ctx, settled.GuildID, tradeSettledEmbed(settled))
	})

	log.Info("Bot event subscriptions registered successfully")
}

// announce posts embed to the guild's log channel when one is configured
func (b *Bot) announce(ctx context.Context, guildID int64, embed *discordgo.MessageEmbed) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var settings *entities.GuildSettings
	err := b.runner.Run(ctx, guildID, func(svc *application.Services) error {
		var err error
		settings, err = svc.Settings.GetOrCreateSettings(ctx)
		return err
	})
	if err != nil {
		log.WithError(err).WithField("guildID", guildID).Error("Failed to load guild settings for announcement")
		return
	}
	if !settings.HasLogChannel() {
		return
	}

	channelID := strconv.FormatInt(*settings.LogChannelID, 10)
	if _, err := b.session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"guildID":   guildID,
			"channelID": channelID,
		}).Warn("Failed to post announcement")
	}
}

func lotteryWonEmbed(e events.LotteryWonEvent) *discordgo.MessageEmbed {
	prize := common.FormatPoints(e.PointsWon)
	if e.PrizeType == entities.PrizeTypeCard {
		prize = fmt.Sprintf("the card **%s**", e.CardName)
	}

	return &discordgo.MessageEmbed{
		Title:       "🎉 Lottery Won",
		Description: fmt.Sprintf("%s won the **%s** lottery with number **%d** and takes %s!", common.GetUserMention(e.WinnerID), e.LotteryName, e.WinningNumber, prize),
		Color:       common.ColorGold,
	}
}

func tradeSettledEmbed(e events.TradeSettledEvent) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🤝 Trade Completed",
		Description: fmt.Sprintf("%s traded **%s** to %s for **%s**.",
			common.GetUserMention(e.InitiatorID), e.InitiatorCardName,
			common.GetUserMention(e.RecipientID), e.RecipientCardName),
		Color: common.ColorSuccess,
	}
}
