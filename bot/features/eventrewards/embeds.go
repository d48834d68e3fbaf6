package eventrewards

import (
	"fmt"
	"strings"

	"cardbot/bot/common"
	"cardbot/domain/entities"
	"cardbot/domain/utils"

	"github.com/bwmarrin/discordgo"
)

func eventEmbed(title string, event *entities.Event) *discordgo.MessageEmbed {
	cardReward := "none"
	if event.HasCardReward() {
		cardReward = fmt.Sprintf("1 card from %d set(s)", len(event.SetIDs))
	}

	return &discordgo.MessageEmbed{
		Title: title,
		Color: common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Name", Value: event.Name, Inline: true},
			{Name: "Points", Value: common.FormatBalance(event.PointReward), Inline: true},
			{Name: "Cooldown", Value: utils.FormatCooldown(event.Cooldown()), Inline: true},
			{Name: "Card Reward", Value: cardReward, Inline: false},
		},
	}
}

func eventListEmbed(list []*entities.Event) *discordgo.MessageEmbed {
	lines := make([]string, 0, len(list))
	for _, e := range list {
		line := fmt.Sprintf("**%s**: %s every %s", e.Name, common.FormatPoints(e.PointReward), utils.FormatCooldown(e.Cooldown()))
		if e.HasCardReward() {
			line += " + a card"
		}
		lines = append(lines, line)
	}

	return &discordgo.MessageEmbed{
		Title:       "📅 Events",
		Description: common.JoinLines(lines, "No events have been created."),
		Color:       common.ColorInfo,
	}
}

// claimMenu builds the event select menu, capped at Discord's option limit
func claimMenu(list []*entities.Event) []discordgo.MessageComponent {
	options := make([]discordgo.SelectMenuOption, 0, len(list))
	for idx, e := range list {
		if idx == common.MaxSelectOptions {
			break
		}
		options = append(options, discordgo.SelectMenuOption{
			Label:       common.Truncate(e.Name, 100),
			Value:       e.Name,
			Description: common.Truncate(fmt.Sprintf("%s, cooldown %s", common.FormatPoints(e.PointReward), utils.FormatCooldown(e.Cooldown())), 100),
		})
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    common.EventClaimSelect,
					Placeholder: "Choose an event",
					Options:     options,
				},
			},
		},
	}
}

func claimResultEmbed(result *entities.EventClaimResult) *discordgo.MessageEmbed {
	lines := []string{fmt.Sprintf("You claimed **%s**.", result.EventName)}
	if result.PointsEarned > 0 {
		lines = append(lines, fmt.Sprintf("+%s (balance %s)", common.FormatPoints(result.PointsEarned), common.FormatBalance(result.NewBalance)))
	}
	if result.Card != nil {
		lines = append(lines, "You got "+common.FormatCardLine(result.Card))
	} else if result.NoCardReason != "" {
		lines = append(lines, result.NoCardReason)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎁 Reward Claimed",
		Description: strings.Join(lines, "\n"),
		Color:       common.ColorSuccess,
	}
	if result.Card != nil && result.Card.ImageURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: result.Card.ImageURL}
	}
	return embed
}

// eventChoices filters events by a case-insensitive substring
func eventChoices(list []*entities.Event, query string) []*discordgo.ApplicationCommandOptionChoice {
	query = strings.ToLower(strings.TrimSpace(query))
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(list))
	for _, e := range list {
		if query != "" && !strings.Contains(strings.ToLower(e.Name), query) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: e.Name, Value: e.Name})
	}
	return choices
}
