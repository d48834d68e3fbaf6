package economy

import (
	"fmt"

	"cardbot/bot/common"
	"cardbot/domain/entities"
	"cardbot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
)

const (
	leaderboardFileName = "leaderboard.png"

	// maxInventoryLines keeps the inventory embed within Discord's description limit
	maxInventoryLines = 40
)

func balanceEmbed(userID, balance int64) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "💰 Balance",
		Description: fmt.Sprintf("%s has **%s**.", common.GetUserMention(userID), common.FormatPoints(balance)),
		Color:       common.ColorPrimary,
	}
}

func transferEmbed(fromID, toID int64, result *interfaces.TransferResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "💸 Points Sent",
		Description: fmt.Sprintf("%s gave %s to %s.", common.GetUserMention(fromID), common.FormatPoints(result.Amount), common.GetUserMention(toID)),
		Color:       common.ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Your Balance", Value: common.FormatBalance(result.FromBalance), Inline: true},
		},
	}
}

func inventoryEmbed(userID int64, items []*entities.InventoryCard) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🎴 Inventory",
		Color: common.ColorPrimary,
	}

	if len(items) == 0 {
		embed.Description = fmt.Sprintf("%s has no cards yet.", common.GetUserMention(userID))
		return embed
	}

	lines := make([]string, 0, maxInventoryLines+1)
	for idx, item := range items {
		if idx == maxInventoryLines {
			lines = append(lines, fmt.Sprintf("…and %d more", len(items)-maxInventoryLines))
			break
		}
		lines = append(lines, common.FormatInventoryLine(item))
	}

	embed.Description = fmt.Sprintf("%s\n\n%s", common.GetUserMention(userID), common.JoinLines(lines, ""))
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("%d distinct cards, %d total", len(items), entities.TotalCards(items)),
	}
	return embed
}

func giftEmbed(fromID, toID int64, card *entities.Card) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "🎁 Card Gifted",
		Description: fmt.Sprintf("%s gifted %s to %s.", common.GetUserMention(fromID), common.FormatCardLine(card), common.GetUserMention(toID)),
		Color:       common.ColorSuccess,
	}
	if card.ImageURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: card.ImageURL}
	}
	return embed
}

func leaderboardEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🏆 Leaderboard",
		Color: common.ColorGold,
		Image: &discordgo.MessageEmbedImage{URL: "attachment://" + leaderboardFileName},
	}
}
