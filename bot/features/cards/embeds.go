package cards

import (
	"fmt"

	"cardbot/bot/common"
	"cardbot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// cardEmbed renders a card definition. An empty title uses the card name.
func cardEmbed(title string, card *entities.Card) *discordgo.MessageEmbed {
	if title == "" {
		title = card.Name
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: card.Description,
		Color:       common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Name", Value: card.Name, Inline: true},
			{Name: "ID", Value: fmt.Sprintf("`%s`", card.CardID), Inline: true},
			{Name: "Rarity", Value: card.Rarity, Inline: true},
		},
	}
	if card.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: card.ImageURL}
	}
	return embed
}

// cardChoices turns cards into autocomplete choices valued by card id
func cardChoices(cards []*entities.Card) []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(cards))
	for _, card := range cards {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  common.Truncate(fmt.Sprintf("%s (%s) #%s", card.Name, card.Rarity, card.CardID), 100),
			Value: card.CardID,
		})
	}
	return choices
}
