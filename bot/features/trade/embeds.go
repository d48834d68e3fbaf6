package trade

import (
	"fmt"

	"cardbot/bot/common"
	"cardbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

func offerButtons(offerID uuid.UUID) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Accept",
					Style:    discordgo.SuccessButton,
					CustomID: common.TradeAcceptPrefix + offerID.String(),
				},
				discordgo.Button{
					Label:    "Deny",
					Style:    discordgo.DangerButton,
					CustomID: common.TradeDenyPrefix + offerID.String(),
				},
			},
		},
	}
}

func offerEmbed(offer *entities.TradeOffer) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🤝 Trade Offer",
		Description: fmt.Sprintf("%s wants to trade with %s.", common.GetUserMention(offer.InitiatorID), common.GetUserMention(offer.RecipientID)),
		Color:       common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Offers", Value: fmt.Sprintf("**%s** `%s`", offer.OfferedCardName, offer.OfferedCardID), Inline: true},
			{Name: "Wants", Value: fmt.Sprintf("**%s** `%s`", offer.RequestedCardName, offer.RequestedCardID), Inline: true},
			{Name: "Expires", Value: common.FormatDiscordTimestamp(offer.ExpiresAt, "R"), Inline: false},
		},
	}
}

func offerClosedEmbed(offer *entities.TradeOffer, title, reason string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: fmt.Sprintf("%s offered **%s** for **%s**.\n%s", common.GetUserMention(offer.InitiatorID), offer.OfferedCardName, offer.RequestedCardName, reason),
		Color:       color,
	}
}

func acceptedEmbed(record *entities.TradeRecord) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "✅ Trade Completed",
		Description: fmt.Sprintf("%s received **%s** and %s received **%s**.",
			common.GetUserMention(record.RecipientID), record.InitiatorCardName,
			common.GetUserMention(record.InitiatorID), record.RecipientCardName),
		Color: common.ColorSuccess,
	}
}

func historyEmbed(userID int64, records []*entities.TradeRecord) *discordgo.MessageEmbed {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		gave, got := r.InitiatorCardName, r.RecipientCardName
		if userID == r.RecipientID {
			gave, got = got, gave
		}
		lines = append(lines, fmt.Sprintf("%s gave **%s**, got **%s** with %s",
			common.FormatDiscordTimestamp(r.CreatedAt, "d"), gave, got, common.GetUserMention(r.CounterpartyOf(userID))))
	}

	return &discordgo.MessageEmbed{
		Title:       "📜 Trade History",
		Description: common.JoinLines(lines, "You have not completed any trades."),
		Color:       common.ColorInfo,
	}
}
