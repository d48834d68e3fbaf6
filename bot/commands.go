package bot

import (
	"fmt"

	"cardbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

var adminPermission int64 = discordgo.PermissionManageServer

func userOption(description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        "user",
		Description: description,
		Required:    required,
	}
}

func cardOption(name, description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionString,
		Name:         name,
		Description:  description,
		Required:     true,
		Autocomplete: true,
	}
}

func amountOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "amount",
		Description: description,
		Required:    true,
		MinValue:    ptrFloat(1),
	}
}

func ptrFloat(v float64) *float64 {
	return &v
}

// commandDefinitions returns every slash command the bot registers
func commandDefinitions() []*discordgo.ApplicationCommand {
	cooldownUnits := []*discordgo.ApplicationCommandOptionChoice{
		{Name: "hours", Value: string(entities.CooldownUnitHours)},
		{Name: "days", Value: string(entities.CooldownUnitDays)},
		{Name: "months", Value: string(entities.CooldownUnitMonths)},
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        "points",
			Description: "Check and move points",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "balance",
					Description: "Show a point balance",
					Options:     []*discordgo.ApplicationCommandOption{userOption("User to check (defaults to you)", false)},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "give",
					Description: "Give some of your points to another user",
					Options: []*discordgo.ApplicationCommandOption{
						userOption("User to give points to", true),
						amountOption("Points to give"),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Add points to a user (admin)",
					Options: []*discordgo.ApplicationCommandOption{
						userOption("User to credit", true),
						amountOption("Points to add"),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Remove points from a user (admin)",
					Options: []*discordgo.ApplicationCommandOption{
						userOption("User to debit", true),
						amountOption("Points to remove"),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "leaderboard",
					Description: "Show the richest collectors",
				},
			},
		},
		{
			Name:        "inventory",
			Description: "Show a card inventory",
			Options:     []*discordgo.ApplicationCommandOption{userOption("User to check (defaults to you)", false)},
		},
		{
			Name:        "gift",
			Description: "Gift one copy of a card to another user",
			Options: []*discordgo.ApplicationCommandOption{
				userOption("User to gift the card to", true),
				cardOption("card", "Card name or id"),
			},
		},
		{
			Name:        "card",
			Description: "Manage card definitions",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Create a card (admin)",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Card name", Required: true},
						{Type: discordgo.ApplicationCommandOptionString, Name: "rarity", Description: "Card rarity", Required: true, Autocomplete: true},
						{Type: discordgo.ApplicationCommandOptionAttachment, Name: "image", Description: "Card image", Required: true},
						{Type: discordgo.ApplicationCommandOptionString, Name: "description", Description: "Card description", MaxLength: entities.MaxCardDescriptionLength},
						{Type: discordgo.ApplicationCommandOptionString, Name: "set", Description: "Set to add the card to", Autocomplete: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "edit",
					Description: "Edit a card (admin)",
					Options: []*discordgo.ApplicationCommandOption{
						cardOption("card", "Card name or id"),
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "New name"},
						{Type: discordgo.ApplicationCommandOptionString, Name: "rarity", Description: "New rarity", Autocomplete: true},
						{Type: discordgo.ApplicationCommandOptionString, Name: "description", Description: "New description", MaxLength: entities.MaxCardDescriptionLength},
						{Type: discordgo.ApplicationCommandOptionAttachment, Name: "image", Description: "New image"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "delete",
					Description: "Delete a card everywhere (admin)",
					Options:     []*discordgo.ApplicationCommandOption{cardOption("card", "Card name or id")},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "info",
					Description: "Show a card",
					Options:     []*discordgo.ApplicationCommandOption{cardOption("card", "Card name or id")},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "give",
					Description: "Give copies of a card to a user (admin)",
					Options: []*discordgo.ApplicationCommandOption{
						userOption("User to receive the card", true),
						cardOption("card", "Card name or id"),
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "amount", Description: "Copies to give (default 1)", MinValue: ptrFloat(1)},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "take",
					Description: "Take copies of a card from a user (admin)",
					Options: []*discordgo.ApplicationCommandOption{
						userOption("User to take the card from", true),
						cardOption("card", "Card name or id"),
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "amount", Description: "Copies to take (default 1)", MinValue: ptrFloat(1)},
					},
				},
			},
		},
		{
			Name:        "rarity",
			Description: "Manage rarities",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set",
					Description: "Create or update a rarity (admin)",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Rarity name", Required: true, Autocomplete: true},
						{Type: discordgo.ApplicationCommandOptionNumber, Name: "weight", Description: "Relative drop weight (0-1)", Required: true, MinValue: ptrFloat(0), MaxValue: 1},
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "burn_value", Description: "Points paid for burning a card", MinValue: ptrFloat(0)},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List rarities",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Remove a rarity (admin)",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Rarity name", Required: true, Autocomplete: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "reset",
					Description: "Restore the default rarities (admin)",
				},
			},
		},
		{
			Name:        "set",
			Description: "Manage card sets",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Create a set (admin)",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Set name", Required: true},
						{Type: discordgo.ApplicationCommandOptionString, Name: "description", Description: "Set description"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add-card",
					Description: "Add a card to a set (admin)",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "set", Description: "Set name", Required: true, Autocomplete: true},
						cardOption("card", "Card name or id"),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove-card",
					Description: "Remove a card from a set (admin)",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "set", Description: "Set name", Required: true, Autocomplete: true},
						cardOption("card", "Card name or id"),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "delete",
					Description: "Delete a set (admin)",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Set name", Required: true, Autocomplete: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "info",
					Description: "Show a set and its cards",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Set name", Required: true, Autocomplete: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List sets",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "edit",
					Description: "Rename a set or change its description (admin)",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Set name", Required: true, Autocomplete: true},
						{Type: discordgo.ApplicationCommandOptionString, Name: "new_name", Description: "New set name"},
						{Type: discordgo.ApplicationCommandOptionString, Name: "description", Description: "New description"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "import",
					Description: "Import a set from a JSON file (admin)",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionAttachment, Name: "file", Description: "Set definition JSON", Required: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "unload",
					Description: "Remove a preset set, keeping its cards (admin)",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Preset set name", Required: true, Autocomplete: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "export",
					Description: "Export a set as a JSON file (admin)",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Set name", Required: true, Autocomplete: true},
					},
				},
			},
		},
		{
			Name:        "burn",
			Description: "Burn one copy of a card for points",
			Options:     []*discordgo.ApplicationCommandOption{cardOption("card", "Card name or id")},
		},
		{
			Name:        "market",
			Description: "Buy and sell cards",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "sell",
					Description: "List one copy of a card for sale",
					Options: []*discordgo.ApplicationCommandOption{
						cardOption("card", "Card name or id"),
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "price", Description: "Asking price in points", Required: true, MinValue: ptrFloat(1)},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "buy",
					Description: "Buy a listing",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "listing", Description: "Listing id", Required: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Withdraw one of your listings",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "listing", Description: "Listing id", Required: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "Show open listings",
					Options:     []*discordgo.ApplicationCommandOption{userOption("Only show this seller's listings", false)},
				},
			},
		},
		{
			Name:        "trade",
			Description: "Trade cards with other users",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "offer",
					Description: "Offer one of your cards for one of theirs",
					Options: []*discordgo.ApplicationCommandOption{
						userOption("User to trade with", true),
						cardOption("my_card", "Card you give"),
						cardOption("their_card", "Card you want"),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "history",
					Description: "Show your recent trades",
				},
			},
		},
		{
			Name:        "event",
			Description: "Claimable reward events",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Create an event (admin)",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Event name", Required: true},
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "points", Description: "Points per claim", Required: true, MinValue: ptrFloat(0)},
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "cooldown", Description: "Cooldown length", Required: true, MinValue: ptrFloat(1)},
						{Type: discordgo.ApplicationCommandOptionString, Name: "unit", Description: "Cooldown unit", Required: true, Choices: cooldownUnits},
						{Type: discordgo.ApplicationCommandOptionString, Name: "sets", Description: "Comma separated sets to draw a card from"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "edit",
					Description: "Edit an event (admin)",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Event name", Required: true, Autocomplete: true},
						{Type: discordgo.ApplicationCommandOptionString, Name: "new_name", Description: "Rename the event"},
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "points", Description: "Points per claim", MinValue: ptrFloat(0)},
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "cooldown", Description: "Cooldown length", MinValue: ptrFloat(1)},
						{Type: discordgo.ApplicationCommandOptionString, Name: "unit", Description: "Cooldown unit", Choices: cooldownUnits},
						{Type: discordgo.ApplicationCommandOptionString, Name: "sets", Description: "Comma separated sets, or \"none\""},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "delete",
					Description: "Delete an event (admin)",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Event name", Required: true, Autocomplete: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List events",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "claim",
					Description: "Claim an event reward",
				},
			},
		},
		{
			Name:        "lottery",
			Description: "Numbered-ticket lotteries",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Start a lottery (admin)",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Lottery name", Required: true},
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "price", Description: "Ticket price", Required: true, MinValue: ptrFloat(1)},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "prize",
							Description: "Prize type",
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "points pot", Value: string(entities.PrizeTypePoints)},
								{Name: "card", Value: string(entities.PrizeTypeCard)},
							},
						},
						{Type: discordgo.ApplicationCommandOptionString, Name: "card", Description: "Prize card for card lotteries", Autocomplete: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "buy",
					Description: "Buy a ticket",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Lottery name", Required: true, Autocomplete: true},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "number",
							Description: fmt.Sprintf("Ticket number (%d-%d)", entities.MinTicketNumber, entities.MaxTicketNumber),
							Required:    true,
							MinValue:    ptrFloat(entities.MinTicketNumber),
							MaxValue:    entities.MaxTicketNumber,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "info",
					Description: "Show a lottery",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Lottery name", Required: true, Autocomplete: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "end",
					Description: "End a lottery without a winner (admin)",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Lottery name", Required: true, Autocomplete: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List running lotteries",
				},
			},
		},
		{
			Name:        "profile",
			Description: "Show or edit member profiles",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "view",
					Description: "Show a profile",
					Options:     []*discordgo.ApplicationCommandOption{userOption("User to show (defaults to you)", false)},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "update",
					Description: "Edit your profile",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "bio", Description: "About you", MaxLength: entities.MaxProfileBioLength},
						{Type: discordgo.ApplicationCommandOptionString, Name: "favourite_card", Description: "Card name or id (none clears it)", Autocomplete: true},
						{Type: discordgo.ApplicationCommandOptionString, Name: "searching_for", Description: "Cards you are looking for", MaxLength: entities.MaxProfileSearchingLength},
					},
				},
			},
		},
		{
			Name:                     "settings",
			Description:              "Configure the card economy",
			DefaultMemberPermissions: &adminPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "message-reward",
					Description: "Award points every N messages (0 disables)",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "count", Description: "Messages per reward", Required: true, MinValue: ptrFloat(0)},
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "points", Description: "Points per reward", Required: true, MinValue: ptrFloat(0)},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "voice-points",
					Description: "Award points per minute spent in voice chat (0 disables)",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "points", Description: "Points per minute", Required: true, MinValue: ptrFloat(0)},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "log-channel",
					Description: "Set the channel for economy announcements",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:         discordgo.ApplicationCommandOptionChannel,
							Name:         "channel",
							Description:  "Channel to post in (omit to disable)",
							ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "show",
					Description: "Show the current settings",
				},
			},
		},
	}
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	commands := commandDefinitions()

	registered, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, b.config.GuildID, commands)
	if err != nil {
		return fmt.Errorf("cannot register commands: %w", err)
	}
	b.registered = registered

	log.WithFields(log.Fields{
		"count":   len(registered),
		"guildID": b.config.GuildID,
	}).Info("Registered slash commands")
	return nil
}
