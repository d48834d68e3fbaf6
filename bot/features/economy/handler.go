package economy

import (
	"context"
	"fmt"

	"cardbot/application"
	"cardbot/bot/common"
	"cardbot/domain/entities"
	"cardbot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// targetUser returns the user option if present, otherwise the invoker
func targetUser(opts common.Options, invokerID int64) (int64, error) {
	if !opts.Has("user") {
		return invokerID, nil
	}
	return common.ParseUserOption(opts, "user")
}

// handleBalance processes /points balance
func (f *Feature) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, userID, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	target, err := targetUser(opts, userID)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	ctx := context.Background()
	var balance int64
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		balance, err = svc.Ledger.Balance(ctx, target)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithEmbed(s, i, balanceEmbed(target, balance), nil, target == userID)
}

// handleGive processes /points give
func (f *Feature) handleGive(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, userID, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	recipient, err := common.ParseUserOption(opts, "user")
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	amount := opts.Int("amount")

	ctx := context.Background()
	var result *interfaces.TransferResult
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		result, err = svc.Ledger.Transfer(ctx, userID, recipient, amount)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	log.WithFields(log.Fields{
		"guildID": guildID,
		"from":    userID,
		"to":      recipient,
		"amount":  amount,
	}).Info("Points transferred")

	common.RespondWithEmbed(s, i, transferEmbed(userID, recipient, result), nil, false)
}

// handleAdjust processes the admin /points add and /points remove
func (f *Feature) handleAdjust(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options, add bool) {
	if !common.IsUserAdmin(s, i) {
		common.HandleError(s, i, common.ErrNotAdmin, false)
		return
	}
	guildID, adminID, err := common.ParseInteraction(i)
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
	metadata := map[string]any{"admin_id": adminID}

	ctx := context.Background()
	var balance int64
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		if add {
			balance, err = svc.Ledger.Credit(ctx, target, amount, entities.TransactionTypeAdminAdjust, metadata)
		} else {
			balance, err = svc.Ledger.Debit(ctx, target, amount, entities.TransactionTypeAdminAdjust, metadata)
		}
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	verb, preposition := "Removed", "from"
	if add {
		verb, preposition = "Added", "to"
	}
	common.RespondWithSuccess(s, i, fmt.Sprintf("%s %s %s %s. New balance: **%s**.",
		verb, common.FormatPoints(amount), preposition,
		common.GetUserMention(target), common.FormatBalance(balance)), true)
}

// handleLeaderboard renders the top balances as an image
func (f *Feature) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, _, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if err := common.DeferResponse(s, i, false); err != nil {
		log.Errorf("Failed to defer leaderboard response: %v", err)
		return
	}

	ctx := context.Background()
	var entries []*entities.LeaderboardEntry
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		entries, err = svc.Ledger.Leaderboard(ctx, common.LeaderboardSize)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, true)
		return
	}

	if len(entries) == 0 {
		common.FollowUpWithEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "🏆 Leaderboard",
			Description: "Nobody has any points yet.",
			Color:       common.ColorInfo,
		}, nil)
		return
	}

	names := make(map[int64]string, len(entries))
	for _, entry := range entries {
		names[entry.UserID] = common.GetDisplayNameInt64(s, i.GuildID, entry.UserID)
	}

	png, err := f.images.Generate(entries, names)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to render leaderboard"), true)
		return
	}

	common.FollowUpWithFile(s, i, leaderboardFileName, "image/png", png, leaderboardEmbed())
}

// handleInventory processes /inventory
func (f *Feature) handleInventory(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, userID, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	target, err := targetUser(opts, userID)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	ctx := context.Background()
	var items []*entities.InventoryCard
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		items, err = svc.Ledger.Inventory(ctx, target)
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithEmbed(s, i, inventoryEmbed(target, items), nil, target == userID)
}

// handleGift processes /gift
func (f *Feature) handleGift(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	guildID, userID, err := common.ParseInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	recipient, err := common.ParseUserOption(opts, "user")
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	ctx := context.Background()
	var card *entities.Card
	err = f.runner.Run(ctx, guildID, func(svc *application.Services) error {
		card, err = svc.Ledger.GiftCard(ctx, userID, recipient, opts.String("card"))
		return err
	})
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.RespondWithEmbed(s, i, giftEmbed(userID, recipient, card), nil, false)
}
