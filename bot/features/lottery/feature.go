package lottery

import (
	"context"
	"time"

	"cardbot/application"
	"cardbot/bot/common"
	"cardbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature handles numbered-ticket lotteries
type Feature struct {
	runner *common.Runner
}

// NewFeature creates a new lottery feature instance
func NewFeature(runner *common.Runner) *Feature {
	return &Feature{runner: runner}
}

// HandleCommand handles /lottery subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sub, opts := common.SubCommand(i)

	switch sub {
	case "buy":
		f.handleBuy(s, i, opts)
	case "info":
		f.handleInfo(s, i, opts)
	case "list":
		f.handleList(s, i)
	case "create", "end":
		if !common.IsUserAdmin(s, i) {
			common.HandleError(s, i, common.ErrNotAdmin, false)
			return
		}
		if sub == "create" {
			f.handleCreate(s, i, opts)
		} else {
			f.handleEnd(s, i, opts)
		}
	default:
		log.Warnf("Unknown lottery subcommand: %s", sub)
		common.RespondWithError(s, i, "Unknown subcommand")
	}
}

// HandleAutocomplete suggests running lottery names
func (f *Feature) HandleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, query string) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var list []*entities.Lottery
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		list, err = svc.Lottery.ListActive(ctx)
		return err
	})
	if err != nil {
		log.WithError(err).Debug("Lottery autocomplete failed")
		common.RespondAutocomplete(s, i, nil)
		return
	}

	common.RespondAutocomplete(s, i, lotteryChoices(list, query))
}
