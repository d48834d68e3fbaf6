package cards

import (
	"context"
	"fmt"

	"cardbot/application"
	"cardbot/bot/common"
	"cardbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleCreate processes /card create
func (f *Feature) handleCreate(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, adminID, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	image := common.Attachment(i, opts, "image")
	if image == nil {
		common.HandleError(s, i, common.NewUserError("Please attach an image for the card.", "card create without image"), false)
		return
	}

	card := &entities.Card{
		Name:        opts.String("name"),
		Rarity:      opts.String("rarity"),
		Description: opts.String("description"),
		ImageURL:    image.URL,
	}

	ctx := context.Background()
	var created *entities.Card
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		created, err = svc.Cards.Create(ctx, card, opts.String("set"))
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	log.WithFields(log.Fields{
		"guildID": guildID,
		"adminID": adminID,
		"cardID":  created.CardID,
	}).Info("Admin created card")

	common.RespondWithEmbed(s, i, cardEmbed("✨ Card Created", created), nil, false)
}

// handleEdit processes /card edit
func (f *Feature) handleEdit(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	var patch entities.CardPatch
	if opts.Has("name") {
		name := opts.String("name")
		patch.Name = &name
	}
	if opts.Has("rarity") {
		rarity := opts.String("rarity")
		patch.Rarity = &rarity
	}
	if opts.Has("description") {
		description := opts.String("description")
		patch.Description = &description
	}
	if image := common.Attachment(i, opts, "image"); image != nil {
		patch.ImageURL = &image.URL
	}

	ctx := context.Background()
	var card *entities.Card
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		card, err = svc.Cards.Edit(ctx, opts.String("card"), patch)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithEmbed(s, i, cardEmbed("✏️ Card Updated", card), nil, true)
}

// handleDelete processes /card delete
func (f *Feature) handleDelete(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	ctx := context.Background()
	var card *entities.Card
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		card, err = svc.Cards.Delete(ctx, opts.String("card"))
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("Deleted %s from every set, listing and inventory.", common.FormatCardLine(card)), true)
}

// handleInfo processes /card info
func (f *Feature) handleInfo(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	ctx := context.Background()
	var card *entities.Card
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		card, err = svc.Cards.Get(ctx, opts.String("card"))
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithEmbed(s, i, cardEmbed("", card), nil, false)
}

// handleGrant processes the admin /card give and /card take
func (f *Feature) handleGrant(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options, give bool) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	target, err := common.ParseUserOption(opts, "user")
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	amount := opts.Int("amount")
	if amount <= 0 {
		amount = 1
	}

	ctx := context.Background()
	var card *entities.Card
	var quantity int64
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		if give {
			card, quantity, err = svc.Cards.Give(ctx, target, opts.String("card"), amount)
		} else {
			card, quantity, err = svc.Cards.Take(ctx, target, opts.String("card"), amount)
		}
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	verb, preposition := "Took", "from"
	if give {
		verb, preposition = "Gave", "to"
	}
	common.RespondWithSuccess(s, i, fmt.Sprintf("%s %dx %s %s %s. They now hold **%d**.",
		verb, amount, common.FormatCardLine(card), preposition, common.GetUserMention(target), quantity), true)
}
