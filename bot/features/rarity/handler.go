package rarity

import (
	"context"
	"fmt"

	"cardbot/application"
	"cardbot/bot/common"
	"cardbot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// handleSet processes /rarity set
func (f *Feature) handleSet(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	var burnValue *int64
	if opts.Has("burn_value") {
		v := opts.Int("burn_value")
		burnValue = &v
	}

	ctx := context.Background()
	var rarity *entities.Rarity
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		rarity, err = svc.Rarities.Set(ctx, opts.String("name"), opts.Float("weight"), burnValue)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("Rarity **%s** now has weight %s and burns for %s.",
		rarity.Name, formatWeight(rarity.Weight), common.FormatBurnValue(rarity)), true)
}

// handleList processes /rarity list
func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	ctx := context.Background()
	var rarities []*entities.Rarity
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		rarities, err = svc.Rarities.List(ctx)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithEmbed(s, i, rarityListEmbed("💎 Rarities", rarities), nil, false)
}

// handleRemove processes /rarity remove
func (f *Feature) handleRemove(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	name := opts.String("name")
	ctx := context.Background()
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		return svc.Rarities.Remove(ctx, name)
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("Removed rarity **%s**.", name), true)
}

// handleReset processes /rarity reset
func (f *Feature) handleReset(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	ctx := context.Background()
	var rarities []*entities.Rarity
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		rarities, err = svc.Rarities.Reset(ctx)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithEmbed(s, i, rarityListEmbed("♻️ Rarities Reset", rarities), nil, true)
}
