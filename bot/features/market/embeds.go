package market

import (
	"fmt"

	"cardbot/bot/common"
	"cardbot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

func listedEmbed(listing *entities.SaleListing) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🏷️ Card Listed",
		Description: common.FormatListingLine(listing),
		Color:       common.ColorInfo,
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Buy it with /market buy listing:%d", listing.ID)},
	}
}

func purchaseEmbed(buyerID int64, result *entities.PurchaseResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🛒 Purchase Complete",
		Description: fmt.Sprintf("%s bought %s from %s for **%s**.",
			common.GetUserMention(buyerID), common.FormatCardLine(result.Card),
			common.GetUserMention(result.Listing.UserID), common.FormatPoints(result.Listing.Price)),
		Color: common.ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Your Balance", Value: common.FormatBalance(result.BuyerBalance), Inline: true},
		},
	}
}

func listingsEmbed(listings []*entities.SaleListing, sellerID int64) *discordgo.MessageEmbed {
	lines := make([]string, 0, len(listings))
	for _, listing := range listings {
		lines = append(lines, common.FormatListingLine(listing))
	}

	title := "🏪 Marketplace"
	if sellerID != 0 {
		title = "🏪 Listings by " + common.GetUserMention(sellerID)
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: common.JoinLines(lines, "Nothing is for sale right now."),
		Color:       common.ColorInfo,
	}
}
