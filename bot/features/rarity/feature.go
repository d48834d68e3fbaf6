package rarity

import (
	"context"
	"time"

	"cardbot/application"
	"cardbot/bot/common"
	"cardbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature handles the rarity table
type Feature struct {
	runner *common.Runner
}

// NewFeature creates a new rarity feature instance
func NewFeature(runner *common.Runner) *Feature {
	return &Feature{runner: runner}
}

// HandleCommand handles /rarity subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sub, opts := common.SubCommand(i)

	if sub != "list" && !common.IsUserAdmin(s, i) {
		common.HandleError(s, i, common.ErrNotAdmin, false)
		return
	}

	switch sub {
	case "set":
		f.handleSet(s, i, opts)
	case "list":
		f.handleList(s, i)
	case "remove":
		f.handleRemove(s, i, opts)
	case "reset":
		f.handleReset(s, i)
	default:
		log.Warnf("Unknown rarity subcommand: %s", sub)
		common.RespondWithError(s, i, "Unknown subcommand")
	}
}

// HandleAutocomplete suggests existing rarity names
func (f *Feature) HandleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, query string) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var rarities []*entities.Rarity
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		rarities, err = svc.Rarities.List(ctx)
		return err
	})
	if err != nil {
		log.WithError(err).Debug("Rarity autocomplete failed")
		common.RespondAutocomplete(s, i, nil)
		return
	}

	common.RespondAutocomplete(s, i, rarityChoices(rarities, query))
}
