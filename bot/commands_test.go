package bot

import (
	"regexp"
	"testing"

	"cardbot/domain/entities"
	"cardbot/events"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var commandNamePattern = regexp.MustCompile(`^[a-z0-9_-]{1,32}$`)

func TestCommandDefinitionsWithinDiscordLimits(t *testing.T) {
	commands := commandDefinitions()
	require.NotEmpty(t, commands)

	seen := make(map[string]bool)
	for _, cmd := range commands {
		assert.False(t, seen[cmd.Name], "duplicate command %s", cmd.Name)
		seen[cmd.Name] = true
		assertValidName(t, cmd.Name)
		assertValidDescription(t, cmd.Name, cmd.Description)
		assertValidOptions(t, cmd.Name, cmd.Options)
	}

	for _, name := range []string{"points", "inventory", "gift", "card", "rarity", "set", "burn", "market", "trade", "event", "lottery", "settings", "profile"} {
		assert.True(t, seen[name], "missing command %s", name)
	}
}

func assertValidName(t *testing.T, name string) {
	t.Helper()
	assert.Regexp(t, commandNamePattern, name)
}

func assertValidDescription(t *testing.T, name, description string) {
	t.Helper()
	assert.NotEmpty(t, description, "%s has no description", name)
	assert.LessOrEqual(t, len([]rune(description)), 100, "%s description too long", name)
}

func assertValidOptions(t *testing.T, parent string, options []*discordgo.ApplicationCommandOption) {
	t.Helper()
	assert.LessOrEqual(t, len(options), 25, "%s has too many options", parent)

	names := make(map[string]bool)
	requiredDone := false
	for _, opt := range options {
		path := parent + " " + opt.Name
		assert.False(t, names[opt.Name], "duplicate option %s", path)
		names[opt.Name] = true
		assertValidName(t, opt.Name)
		assertValidDescription(t, path, opt.Description)

		if opt.Type != discordgo.ApplicationCommandOptionSubCommand {
			if opt.Required {
				assert.False(t, requiredDone, "required option %s follows an optional one", path)
			} else {
				requiredDone = true
			}
		}
		assert.False(t, opt.Autocomplete && len(opt.Choices) > 0, "%s mixes autocomplete and choices", path)
		assertValidOptions(t, path, opt.Options)
	}
}

func TestAnnouncementEmbeds(t *testing.T) {
	t.Run("points lottery", func(t *testing.T) {
		embed := lotteryWonEmbed(events.LotteryWonEvent{
			LotteryName:   "Weekly",
			WinnerID:      42,
			WinningNumber: 1234,
			PrizeType:     entities.PrizeTypePoints,
			PointsWon:     950,
		})
		assert.Equal(t, "<@42> won the **Weekly** lottery with number **1234** and takes 950 points!", embed.Description)
	})

	t.Run("card lottery", func(t *testing.T) {
		embed := lotteryWonEmbed(events.LotteryWonEvent{
			LotteryName:   "Shiny",
			WinnerID:      7,
			WinningNumber: 9,
			PrizeType:     entities.PrizeTypeCard,
			CardName:      "Comet",
		})
		assert.Contains(t, embed.Description, "takes the card **Comet**!")
	})

	t.Run("trade", func(t *testing.T) {
		embed := tradeSettledEmbed(events.TradeSettledEvent{
			InitiatorID:       1,
			RecipientID:       2,
			InitiatorCardName: "Ember",
			RecipientCardName: "Tide",
		})
		assert.Equal(t, "<@1> traded **Ember** to <@2> for **Tide**.", embed.Description)
	})
}
