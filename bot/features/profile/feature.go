package profile

import (
	"cardbot/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature handles member profiles
type Feature struct {
	runner *common.Runner
}

// NewFeature creates a new profile feature instance
func NewFeature(runner *common.Runner) *Feature {
	return &Feature{runner: runner}
}

// HandleCommand routes /profile subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sub, opts := common.SubCommand(i)
	switch sub {
	case "view":
		f.handleView(s, i, opts)
	case "update":
		f.handleUpdate(s, i, opts)
	default:
		log.Warnf("Unknown profile subcommand: %s", sub)
		common.RespondWithError(s, i, "Unknown subcommand")
	}
}
