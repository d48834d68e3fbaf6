package market

import (
	"context"
	"fmt"

	"cardbot/application"
	"cardbot/bot/common"
	"cardbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleSell processes /market sell
func (f *Feature) handleSell(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, userID, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	ctx := context.Background()
	var listing *entities.SaleListing
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		listing, err = svc.Market.Sell(ctx, userID, opts.String("card"), opts.Int("price"))
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithEmbed(s, i, listedEmbed(listing), nil, false)
}

// handleBuy processes /market buy
func (f *Feature) handleBuy(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, userID, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	ctx := context.Background()
	var result *entities.PurchaseResult
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		result, err = svc.Market.Buy(ctx, userID, opts.Int("listing"))
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	log.WithFields(log.Fields{
		"guildID":   guildID,
		"buyerID":   userID,
		"listingID": result.Listing.ID,
		"price":     result.Listing.Price,
	}).Info("Listing purchased")

	common.RespondWithEmbed(s, i, purchaseEmbed(userID, result), nil, false)
}

// handleRemove processes /market remove
func (f *Feature) handleRemove(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, userID, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	ctx := context.Background()
	var listing *entities.SaleListing
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		listing, err = svc.Market.RemoveSale(ctx, userID, opts.Int("listing"))
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("Listing #%d withdrawn. The card is back in your inventory.", listing.ID), true)
}

// handleList processes /market list
func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	var sellerID int64
	if opts.Has("user") {
		if sellerID, err = common.ParseUserOption(opts, "user"); err != nil {
			common.HandleError(s, i, err, false)
			return
		}
	}

	ctx := context.Background()
	var listings []*entities.SaleListing
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		if sellerID != 0 {
			listings, err = svc.Market.ListingsBySeller(ctx, sellerID)
		} else {
			listings, err = svc.Market.Listings(ctx, common.MarketPageSize)
		}
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithEmbed(s, i, listingsEmbed(listings, sellerID), nil, false)
}
