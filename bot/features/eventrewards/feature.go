package eventrewards

import (
	"context"
	"time"

	"cardbot/application"
	"cardbot/bot/common"
	"cardbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature handles claimable reward events
type Feature struct {
	runner *common.Runner
}

// NewFeature creates a new event rewards feature instance
func NewFeature(runner *common.Runner) *Feature {
	return &Feature{runner: runner}
}

// HandleCommand handles /event subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sub, opts := common.SubCommand(i)

	switch sub {
	case "list":
		f.handleList(s, i)
		return
	case "claim":
		f.handleClaimMenu(s, i)
		return
	}

	if !common.IsUserAdmin(s, i) {
		common.HandleError(s, i, common.ErrNotAdmin, false)
		return
	}

	switch sub {
	case "create":
		f.handleCreate(s, i, opts)
	case "edit":
		f.handleEdit(s, i, opts)
	case "delete":
		f.handleDelete(s, i, opts)
	default:
		log.Warnf("Unknown event subcommand: %s", sub)
		common.RespondWithError(s, i, "Unknown subcommand")
	}
}

// HandleInteraction handles the claim select menu
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return
	}
	f.handleClaim(s, i, values[0])
}

// HandleAutocomplete suggests event names
func (f *Feature) HandleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, query string) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var list []*entities.Event
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		list, err = svc.Events.List(ctx)
		return err
	})
	if err != nil {
		log.WithError(err).Debug("Event autocomplete failed")
		common.RespondAutocomplete(s, i, nil)
		return
	}

	common.RespondAutocomplete(s, i, eventChoices(list, query))
}
