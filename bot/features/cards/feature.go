package cards

import (
	"context"
	"time"

	"cardbot/application"
	"cardbot/bot/common"
	"cardbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature handles card definitions and admin grants
type Feature struct {
	runner *common.Runner
}

// NewFeature creates a new cards feature instance
func NewFeature(runner *common.Runner) *Feature {
	return &Feature{runner: runner}
}

// HandleCommand handles /card subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sub, opts := common.SubCommand(i)

	switch sub {
	case "info":
		f.handleInfo(s, i, opts)
		return
	case "create", "edit", "delete", "give", "take":
	default:
		log.Warnf("Unknown card subcommand: %s", sub)
		common.RespondWithError(s, i, "Unknown subcommand")
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
	case "give":
		f.handleGrant(s, i, opts, true)
	case "take":
		f.handleGrant(s, i, opts, false)
	}
}

// HandleAutocomplete suggests cards whose name or id matches the typed text
func (f *Feature) HandleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, query string) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var cards []*entities.Card
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		cards, err = svc.Cards.Search(ctx, query, common.MaxAutocomplete)
		return err
	})
	if err != nil {
		log.WithError(err).Debug("Card autocomplete failed")
		common.RespondAutocomplete(s, i, nil)
		return
	}

	common.RespondAutocomplete(s, i, cardChoices(cards))
}
