package settings

import (
	"cardbot/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature handles guild settings management
type Feature struct {
	runner *common.Runner
}

// NewFeature creates a new settings feature instance
func NewFeature(runner *common.Runner) *Feature {
	return &Feature{runner: runner}
}

// HandleCommand routes settings commands to appropriate handlers
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.IsUserAdmin(s, i) {
		common.HandleError(s, i, common.ErrNotAdmin, false)
		return
	}

	sub, opts := common.SubCommand(i)
	switch sub {
	case "message-reward":
		f.handleMessageReward(s, i, opts)
	case "voice-points":
		f.handleVoicePoints(s, i, opts)
	case "log-channel":
		f.handleLogChannel(s, i, opts)
	case "show":
		f.handleShow(s, i)
	default:
		log.Warnf("Unknown settings subcommand: %s", sub)
		common.RespondWithError(s, i, "Unknown subcommand")
	}
}
