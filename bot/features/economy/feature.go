package economy

import (
	"cardbot/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature handles points, inventories and gifting
type Feature struct {
	runner *common.Runner
	images *LeaderboardImageGenerator
}

// NewFeature creates a new economy feature instance
func NewFeature(runner *common.Runner) *Feature {
	return &Feature{
		runner: runner,
		images: NewLeaderboardImageGenerator(),
	}
}

// HandleCommand handles /points subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sub, opts := common.SubCommand(i)

	switch sub {
	case "balance":
		f.handleBalance(s, i, opts)
	case "give":
		f.handleGive(s, i, opts)
	case "add":
		f.handleAdjust(s, i, opts, true)
	case "remove":
		f.handleAdjust(s, i, opts, false)
	case "leaderboard":
		f.handleLeaderboard(s, i)
	default:
		log.Warnf("Unknown points subcommand: %s", sub)
		common.RespondWithError(s, i, "Unknown subcommand")
	}
}

// HandleInventory handles /inventory
func (f *Feature) HandleInventory(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleInventory(s, i, common.OptionsOf(i.ApplicationCommandData().Options))
}

// HandleGift handles /gift
func (f *Feature) HandleGift(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleGift(s, i, common.OptionsOf(i.ApplicationCommandData().Options))
}
