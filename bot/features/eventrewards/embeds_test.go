package eventrewards

import (
	"fmt"
	"testing"

	"cardbot/bot/common"
	"cardbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCooldownHours(t *testing.T) {
	t.Run("defaults to hours", func(t *testing.T) {
		opts := common.Options{"cooldown": {Name: "cooldown", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(6)}}
		hours, err := cooldownHours(opts)
		require.NoError(t, err)
		assert.Equal(t, 6, hours)
	})

	t.Run("converts days", func(t *testing.T) {
		opts := common.Options{
			"cooldown": {Name: "cooldown", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(2)},
			"unit":     {Name: "unit", Type: discordgo.ApplicationCommandOptionString, Value: "days"},
		}
		hours, err := cooldownHours(opts)
		require.NoError(t, err)
		assert.Equal(t, 48, hours)
	})

	t.Run("rejects unknown unit", func(t *testing.T) {
		opts := common.Options{
			"cooldown": {Name: "cooldown", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(2)},
			"unit":     {Name: "unit", Type: discordgo.ApplicationCommandOptionString, Value: "weeks"},
		}
		_, err := cooldownHours(opts)
		require.Error(t, err)
		assert.Equal(t, "Cooldown unit must be hours, days or months.", common.ClassifyError(err).UserMessage)
	})
}

func TestClaimMenuCapsOptions(t *testing.T) {
	list := make([]*entities.Event, 30)
	for i := range list {
		list[i] = &entities.Event{Name: fmt.Sprintf("event-%d", i), PointReward: 10, CooldownHours: 24}
	}

	components := claimMenu(list)
	require.Len(t, components, 1)
	row := components[0].(discordgo.ActionsRow)
	menu := row.Components[0].(discordgo.SelectMenu)

	assert.Equal(t, common.EventClaimSelect, menu.CustomID)
	assert.Len(t, menu.Options, common.MaxSelectOptions)
	assert.Equal(t, "event-0", menu.Options[0].Value)
}

func TestClaimResultEmbed(t *testing.T) {
	t.Run("points and card", func(t *testing.T) {
		embed := claimResultEmbed(&entities.EventClaimResult{
			EventName:    "Daily",
			PointsEarned: 100,
			NewBalance:   1100,
			Card:         &entities.Card{CardID: "00000002", Name: "Tide", Rarity: "Common", ImageURL: "https://cdn.example/tide.png"},
		})
		assert.Contains(t, embed.Description, "You claimed **Daily**.")
		assert.Contains(t, embed.Description, "+100 points (balance 1,100)")
		assert.Contains(t, embed.Description, "`00000002` **Tide** (Common)")
		require.NotNil(t, embed.Thumbnail)
	})

	t.Run("no card reason", func(t *testing.T) {
		embed := claimResultEmbed(&entities.EventClaimResult{
			EventName:    "Weekly",
			NoCardReason: "No cards are available in this event's sets.",
		})
		assert.Contains(t, embed.Description, "No cards are available")
		assert.Nil(t, embed.Thumbnail)
	})
}

func TestEventChoices(t *testing.T) {
	list := []*entities.Event{{Name: "Daily"}, {Name: "Weekly"}, {Name: "Holiday"}}

	assert.Len(t, eventChoices(list, ""), 3)
	choices := eventChoices(list, "DAY")
	require.Len(t, choices, 2)
	assert.Equal(t, "Daily", choices[0].Value)
	assert.Equal(t, "Holiday", choices[1].Value)
}
