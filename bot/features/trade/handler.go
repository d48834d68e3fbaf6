package trade

import (
	"context"
	"strings"

	"cardbot/application"
	"cardbot/bot/common"
	"cardbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// handleOffer processes /trade offer and posts the offer with accept and deny buttons
func (f *Feature) handleOffer(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, userID, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	recipientID, err := common.ParseUserOption(opts, "user")
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	ctx := context.Background()
	var offer *entities.TradeOffer
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		offer, err = svc.Trade.Propose(ctx, userID, recipientID, opts.String("my_card"), opts.String("their_card"))
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    common.GetUserMention(recipientID),
			Embeds:     []*discordgo.MessageEmbed{offerEmbed(offer)},
			Components: offerButtons(offer.ID),
			AllowedMentions: &discordgo.MessageAllowedMentions{
				Users: []string{opts.UserID("user")},
			},
		},
	})
	if err != nil {
		log.Errorf("Failed to post trade offer: %v", err)
		return
	}

	// Remember where the offer lives so the expiry sweep can update it
	msg, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		log.WithError(err).WithField("offerID", offer.ID).Warn("Failed to fetch trade offer message")
		return
	}
	if offers := f.runner.Deps().Offers; offers != nil {
		offers.SetMessage(offer.ID, msg.ChannelID, msg.ID)
	}
}

// handleButton settles or cancels the offer named in customID
func (f *Feature) handleButton(s *discordgo.Session, i *discordgo.InteractionCreate, customID string) {
	guildID, userID, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	accept := strings.HasPrefix(customID, common.TradeAcceptPrefix)
	rawID := strings.TrimPrefix(strings.TrimPrefix(customID, common.TradeAcceptPrefix), common.TradeDenyPrefix)
	offerID, err := uuid.Parse(rawID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Malformed trade button id"), false)
		return
	}

	ctx := context.Background()
	if accept {
		var record *entities.TradeRecord
		err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
			record, err = svc.Trade.Accept(ctx, offerID, userID)
			return err
		})
		if err != nil {
			common.HandleError(s, i, err, false)
			return
		}
		common.UpdateComponentMessage(s, i, "", acceptedEmbed(record), []discordgo.MessageComponent{})
		return
	}

	var offer *entities.TradeOffer
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		offer, err = svc.Trade.Deny(ctx, offerID, userID)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	reason := "The offer was declined by " + common.GetUserMention(userID) + "."
	common.UpdateComponentMessage(s, i, "", offerClosedEmbed(offer, "❌ Trade Declined", reason, common.ColorDanger), []discordgo.MessageComponent{})
}

// handleHistory processes /trade history
func (f *Feature) handleHistory(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, userID, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	ctx := context.Background()
	var records []*entities.TradeRecord
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		records, err = svc.Trade.History(ctx, userID, common.HistoryPageSize)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithEmbed(s, i, historyEmbed(userID, records), nil, true)
}
