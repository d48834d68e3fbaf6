package rarity

import (
	"fmt"
	"strconv"
	"strings"

	"cardbot/bot/common"
	"cardbot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

func rarityListEmbed(title string, rarities []*entities.Rarity) *discordgo.MessageEmbed {
	lines := make([]string, 0, len(rarities))
	for _, r := range rarities {
		lines = append(lines, fmt.Sprintf("**%s**: weight %s, burn %s", r.Name, formatWeight(r.Weight), common.FormatBurnValue(r)))
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: common.JoinLines(lines, "No rarities are configured."),
		Color:       common.ColorInfo,
	}
}

// rarityChoices filters rarities by a case-insensitive substring
func rarityChoices(rarities []*entities.Rarity, query string) []*discordgo.ApplicationCommandOptionChoice {
	query = strings.ToLower(strings.TrimSpace(query))
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(rarities))
	for _, r := range rarities {
		if query != "" && !strings.Contains(strings.ToLower(r.Name), query) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: r.Name, Value: r.Name})
	}
	return choices
}
