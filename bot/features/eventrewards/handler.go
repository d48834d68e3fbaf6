package eventrewards

import (
	"context"
	"fmt"
	"strings"

	"cardbot/application"
	"cardbot/bot/common"
	"cardbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// cooldownHours converts the cooldown and unit options. A missing unit means hours.
func cooldownHours(opts common.Options) (int, error) {
	unit := entities.CooldownUnitHours
	if opts.Has("unit") {
		unit = entities.CooldownUnit(opts.String("unit"))
	}
	hours, err := unit.ToHours(int(opts.Int("cooldown")))
	if err != nil {
		return 0, common.NewUserError("Cooldown unit must be hours, days or months.", err.Error())
	}
	return hours, nil
}

// handleCreate processes /event create
func (f *Feature) handleCreate(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	hours, err := cooldownHours(opts)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	event := &entities.Event{
		Name:          opts.String("name"),
		PointReward:   opts.Int("points"),
		CooldownHours: hours,
	}

	ctx := context.Background()
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		if event.SetIDs, err = svc.Events.ResolveSets(ctx, common.SplitList(opts.String("sets"))); err != nil {
			return err
		}
		return svc.Events.Create(ctx, event)
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithEmbed(s, i, eventEmbed("🎉 Event Created", event), nil, true)
}

// handleEdit processes /event edit. Only supplied options change.
func (f *Feature) handleEdit(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	if opts.Has("unit") && !opts.Has("cooldown") {
		common.HandleError(s, i, common.NewUserError("Please give a cooldown together with its unit.", "event edit unit without cooldown"), false)
		return
	}

	ctx := context.Background()
	var event *entities.Event
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		event, err = svc.Events.Get(ctx, opts.String("name"))
		if err != nil {
			return err
		}
		current := event.Name

		if opts.Has("new_name") {
			event.Name = opts.String("new_name")
		}
		if opts.Has("points") {
			event.PointReward = opts.Int("points")
		}
		if opts.Has("cooldown") {
			if event.CooldownHours, err = cooldownHours(opts); err != nil {
				return err
			}
		}
		if opts.Has("sets") {
			raw := opts.String("sets")
			if strings.EqualFold(raw, "none") {
				event.SetIDs = nil
			} else if event.SetIDs, err = svc.Events.ResolveSets(ctx, common.SplitList(raw)); err != nil {
				return err
			}
		}

		return svc.Events.Update(ctx, current, event)
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithEmbed(s, i, eventEmbed("✏️ Event Updated", event), nil, true)
}

// handleDelete processes /event delete
func (f *Feature) handleDelete(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	name := opts.String("name")
	ctx := context.Background()
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		return svc.Events.Delete(ctx, name)
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("Deleted event **%s**.", name), true)
}

// handleList processes /event list
func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	ctx := context.Background()
	var list []*entities.Event
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		list, err = svc.Events.List(ctx)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithEmbed(s, i, eventListEmbed(list), nil, false)
}

// handleClaimMenu processes /event claim by offering a select menu of events
func (f *Feature) handleClaimMenu(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	ctx := context.Background()
	var list []*entities.Event
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		list, err = svc.Events.List(ctx)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if len(list) == 0 {
		common.HandleError(s, i, common.NewUserError("There are no events to claim.", "claim with no events"), false)
		return
	}

	common.RespondWithEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "🎁 Claim a Reward",
		Description: "Pick an event to claim.",
		Color:       common.ColorPrimary,
	}, claimMenu(list), true)
}

// handleClaim claims the event chosen from the select menu
func (f *Feature) handleClaim(s *discordgo.Session, i *discordgo.InteractionCreate, name string) {
	guildID, userID, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	ctx := context.Background()
	var result *entities.EventClaimResult
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		result, err = svc.Events.Claim(ctx, userID, name)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	log.WithFields(log.Fields{
		"guildID": guildID,
		"userID":  userID,
		"event":   result.EventName,
		"points":  result.PointsEarned,
	}).Info("Event reward claimed")

	components := common.DisableComponents(i.Message.Components)
	common.UpdateComponentMessage(s, i, "", claimResultEmbed(result), components)
}
