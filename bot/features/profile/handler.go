package profile

import (
	"context"
	"strings"

	"cardbot/application"
	"cardbot/bot/common"
	"cardbot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// handleView processes /profile view
func (f *Feature) handleView(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, userID, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	target := userID
	if opts.Has("user") {
		target, err = common.ParseUserOption(opts, "user")
		if err != nil {
			common.HandleError(s, i, err, false)
			return
		}
	}

	ctx := context.Background()
	var view *entities.ProfileView
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		view, err = svc.Profiles.Get(ctx, target)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithEmbed(s, i, profileEmbed(view), nil, false)
}

// handleUpdate processes /profile update
func (f *Feature) handleUpdate(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, userID, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	ctx := context.Background()
	var view *entities.ProfileView
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		view, err = svc.Profiles.Update(ctx, userID, profilePatch(opts))
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithEmbed(s, i, profileEmbed(view), nil, true)
}

// clearValue removes the favourite card
const clearValue = "none"

// profilePatch keeps only the options the member supplied
func profilePatch(opts common.Options) entities.ProfilePatch {
	var patch entities.ProfilePatch
	if opts.Has("bio") {
		v := opts.String("bio")
		patch.Bio = &v
	}
	if opts.Has("favourite_card") {
		v := opts.String("favourite_card")
		if strings.EqualFold(strings.TrimSpace(v), clearValue) {
			v = ""
		}
		patch.FavouriteCard = &v
	}
	if opts.Has("searching_for") {
		v := opts.String("searching_for")
		patch.SearchingFor = &v
	}
	return patch
}
