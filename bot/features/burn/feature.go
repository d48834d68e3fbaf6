package burn

import (
	"context"

	"cardbot/application"
	"cardbot/bot/common"
	"cardbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature handles burning cards for points
type Feature struct {
	runner *common.Runner
}

// NewFeature creates a new burn feature instance
func NewFeature(runner *common.Runner) *Feature {
	return &Feature{runner: runner}
}

// HandleCommand processes /burn
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, userID, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	opts := common.OptionsOf(i.ApplicationCommandData().Options)

	ctx := context.Background()
	var result *entities.BurnResult
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		result, err = svc.Burn.Burn(ctx, userID, opts.String("card"))
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	log.WithFields(log.Fields{
		"guildID": guildID,
		"userID":  userID,
		"cardID":  result.Card.CardID,
		"points":  result.PointsEarned,
	}).Info("Card burned")

	common.RespondWithEmbed(s, i, burnEmbed(result), nil, false)
}
