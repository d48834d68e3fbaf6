package market

import (
	"cardbot/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature handles the card marketplace
type Feature struct {
	runner *common.Runner
}

// NewFeature creates a new market feature instance
func NewFeature(runner *common.Runner) *Feature {
	return &Feature{runner: runner}
}

// HandleCommand handles /market subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sub, opts := common.SubCommand(i)

	switch sub {
	case "sell":
		f.handleSell(s, i, opts)
	case "buy":
		f.handleBuy(s, i, opts)
	case "remove":
		f.handleRemove(s, i, opts)
	case "list":
		f.handleList(s, i, opts)
	default:
		log.Warnf("Unknown market subcommand: %s", sub)
		common.RespondWithError(s, i, "Unknown subcommand")
	}
}
