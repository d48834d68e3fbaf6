package sets

import (
	"fmt"
	"strings"

	"cardbot/bot/common"
	"cardbot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// maxSetCardLines keeps the set embed within Discord's description limit
const maxSetCardLines = 40

func setDetailEmbed(detail *entities.CardSetDetail) *discordgo.MessageEmbed {
	lines := make([]string, 0, maxSetCardLines+1)
	for idx, card := range detail.Cards {
		if idx == maxSetCardLines {
			lines = append(lines, fmt.Sprintf("…and %d more", len(detail.Cards)-maxSetCardLines))
			break
		}
		lines = append(lines, common.FormatCardLine(card))
	}

	title := "📚 " + detail.Set.Name
	if detail.Set.IsPreset {
		title += " (preset)"
	}

	description := common.JoinLines(lines, "This set has no cards yet.")
	if detail.Set.Description != "" {
		description = detail.Set.Description + "\n\n" + description
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       common.ColorInfo,
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("%d cards", len(detail.Cards))},
	}
}

func exportEmbed(preset *entities.PresetSet) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "📦 Set Exported",
		Description: fmt.Sprintf("**%s** with %d cards. Import it elsewhere with `/set import`.", preset.Name, len(preset.Cards)),
		Color:       common.ColorSuccess,
	}
}

// exportFileName turns a set name into a safe attachment name
func exportFileName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "set.json"
	}
	return b.String() + ".json"
}

func setListEmbed(sets []*entities.CardSet) *discordgo.MessageEmbed {
	lines := make([]string, 0, len(sets))
	for _, set := range sets {
		line := "**" + set.Name + "**"
		if set.Description != "" {
			line += ": " + common.Truncate(set.Description, 80)
		}
		lines = append(lines, line)
	}

	return &discordgo.MessageEmbed{
		Title:       "📚 Card Sets",
		Description: common.JoinLines(lines, "No sets have been created."),
		Color:       common.ColorInfo,
	}
}

// setChoices filters sets by a case-insensitive substring
func setChoices(sets []*entities.CardSet, query string) []*discordgo.ApplicationCommandOptionChoice {
	query = strings.ToLower(strings.TrimSpace(query))
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(sets))
	for _, set := range sets {
		if query != "" && !strings.Contains(strings.ToLower(set.Name), query) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: set.Name, Value: set.Name})
	}
	return choices
}
