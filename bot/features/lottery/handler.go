package lottery

import (
	"context"
	"fmt"

	"cardbot/application"
	"cardbot/bot/common"
	"cardbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleCreate processes /lottery create
func (f *Feature) handleCreate(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	prizeType, ok := entities.ParsePrizeType(opts.String("prize"))
	if !ok {
		common.HandleError(s, i, common.NewUserError("Prize must be `points` or `card`.", "invalid prize type"), false)
		return
	}
	if prizeType == entities.PrizeTypeCard && !opts.Has("card") {
		common.HandleError(s, i, common.NewUserError("Card lotteries need a prize card.", "card lottery without card"), false)
		return
	}

	ctx := context.Background()
	var created *entities.Lottery
	var prizeCard *entities.Card
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		created, err = svc.Lottery.Create(ctx, opts.String("name"), prizeType, opts.String("card"), opts.Int("price"))
		if err != nil || created.CardID == nil {
			return err
		}
		prizeCard, err = svc.Cards.Get(ctx, *created.CardID)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithEmbed(s, i, createdEmbed(created, prizeCard), nil, false)
}

// handleBuy processes /lottery buy
func (f *Feature) handleBuy(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, userID, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	ctx := context.Background()
	var result *entities.TicketPurchaseResult
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		result, err = svc.Lottery.BuyTicket(ctx, userID, opts.String("name"), int(opts.Int("number")))
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if result.Won {
		log.WithFields(log.Fields{
			"guildID":   guildID,
			"userID":    userID,
			"lotteryID": result.Lottery.ID,
			"pointsWon": result.PointsWon,
		}).Info("Lottery ticket won")
		common.RespondWithEmbed(s, i, wonEmbed(result, userID), nil, false)
		return
	}

	common.RespondWithEmbed(s, i, ticketEmbed(result), nil, true)
}

// handleInfo processes /lottery info
func (f *Feature) handleInfo(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	ctx := context.Background()
	var info *entities.LotteryInfo
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		info, err = svc.Lottery.Info(ctx, opts.String("name"))
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithEmbed(s, i, infoEmbed(info), nil, false)
}

// handleEnd processes /lottery end
func (f *Feature) handleEnd(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	ctx := context.Background()
	var ended *entities.Lottery
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		ended, err = svc.Lottery.End(ctx, opts.String("name"))
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("Ended lottery **%s**. No prize was paid.", ended.Name), false)
}

// handleList processes /lottery list
func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	ctx := context.Background()
	var list []*entities.Lottery
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		list, err = svc.Lottery.ListActive(ctx)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithEmbed(s, i, listEmbed(list), nil, false)
}
