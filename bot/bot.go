package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cardbot/application"
	"cardbot/bot/common"
	"cardbot/bot/features/burn"
	"cardbot/bot/features/cards"
	"cardbot/bot/features/economy"
	"cardbot/bot/features/eventrewards"
	"cardbot/bot/features/lottery"
	"cardbot/bot/features/market"
	"cardbot/bot/features/profile"
	"cardbot/bot/features/rarity"
	"cardbot/bot/features/sets"
	"cardbot/bot/features/settings"
	"cardbot/bot/features/trade"
	"cardbot/domain/services"

	"github.com/bwmarrin/discordgo"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string // register commands to this guild only; empty registers globally
}

// Bot manages the Discord bot and all feature modules
type Bot struct {
	// Core components
	config  Config
	session *discordgo.Session
	runner  *common.Runner
	offers  *services.TradeOfferBook
	cron    *cron.Cron
	voice   *voiceTracker

	// Feature modules
	economy  *economy.Feature
	cards    *cards.Feature
	rarity   *rarity.Feature
	sets     *sets.Feature
	burn     *burn.Feature
	market   *market.Feature
	trade    *trade.Feature
	events   *eventrewards.Feature
	lottery  *lottery.Feature
	settings *settings.Feature
	profile  *profile.Feature

	registered []*discordgo.ApplicationCommand
}

// New creates a new bot instance with all features and opens the gateway connection
func New(config Config, uowFactory application.UnitOfWorkFactory, deps application.ServiceDeps) (*Bot, error) {
	// Create Discord session
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsGuildMembers | discordgo.IntentsGuildVoiceStates

	runner := common.NewRunner(uowFactory, deps)

	bot := &Bot{
		config:  config,
		session: dg,
		runner:  runner,
		offers:  deps.Offers,
		voice:   newVoiceTracker(),
	}

	// Create feature modules
	bot.economy = economy.NewFeature(runner)
	bot.cards = cards.NewFeature(runner)
	bot.rarity = rarity.NewFeature(runner)
	bot.sets = sets.NewFeature(runner)
	bot.burn = burn.NewFeature(runner)
	bot.market = market.NewFeature(runner)
	bot.trade = trade.NewFeature(runner)
	bot.events = eventrewards.NewFeature(runner)
	bot.lottery = lottery.NewFeature(runner)
	bot.settings = settings.NewFeature(runner)
	bot.profile = profile.NewFeature(runner)

	// Register handlers
	dg.AddHandler(bot.handleCommands)
	dg.AddHandler(bot.handleInteractions)
	dg.AddHandler(bot.handleAutocomplete)
	dg.AddHandler(bot.handleGuildCreate)
	dg.AddHandler(bot.handleMessageCreate)
	dg.AddHandler(bot.handleVoiceStateUpdate)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	// Start background workers
	bot.cron, err = bot.startWorkers()
	if err != nil {
		dg.Close()
		return nil, fmt.Errorf("error starting workers: %w", err)
	}
	log.Info("Background workers started")

	return bot, nil
}

// Close gracefully shuts down the bot
func (b *Bot) Close() error {
	if b.cron != nil {
		<-b.cron.Stop().Done()
		log.Info("Background workers stopped")
	}

	return b.session.Close()
}

// handleCommands routes slash commands to appropriate handlers
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "points":
		b.economy.HandleCommand(s, i)
	case "inventory":
		b.economy.HandleInventory(s, i)
	case "gift":
		b.economy.HandleGift(s, i)
	case "card":
		b.cards.HandleCommand(s, i)
	case "rarity":
		b.rarity.HandleCommand(s, i)
	case "set":
		b.sets.HandleCommand(s, i)
	case "burn":
		b.burn.HandleCommand(s, i)
	case "market":
		b.market.HandleCommand(s, i)
	case "trade":
		b.trade.HandleCommand(s, i)
	case "event":
		b.events.HandleCommand(s, i)
	case "lottery":
		b.lottery.HandleCommand(s, i)
	case "settings":
		b.settings.HandleCommand(s, i)
	case "profile":
		b.profile.HandleCommand(s, i)
	}
}

// handleInteractions routes component interactions to appropriate features
func (b *Bot) handleInteractions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID
	switch {
	case strings.HasPrefix(customID, common.TradeAcceptPrefix), strings.HasPrefix(customID, common.TradeDenyPrefix):
		b.trade.HandleInteraction(s, i)

	case customID == common.EventClaimSelect:
		b.events.HandleInteraction(s, i)

	default:
		log.WithField("customID", customID).Debug("Unhandled component interaction")
	}
}

// handleAutocomplete routes autocomplete requests by the focused option
func (b *Bot) handleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommandAutocomplete {
		return
	}

	data := i.ApplicationCommandData()
	focused := common.Focused(data.Options)
	if focused == nil {
		return
	}

	switch focused.Name {
	case "card", "my_card", "their_card", "favourite_card":
		b.cards.HandleAutocomplete(s, i, focused.StringValue())
	case "rarity":
		b.rarity.HandleAutocomplete(s, i, focused.StringValue())
	case "set":
		b.sets.HandleAutocomplete(s, i, focused.StringValue())
	case "name":
		switch data.Name {
		case "event":
			b.events.HandleAutocomplete(s, i, focused.StringValue())
		case "lottery":
			b.lottery.HandleAutocomplete(s, i, focused.StringValue())
		case "rarity":
			b.rarity.HandleAutocomplete(s, i, focused.StringValue())
		case "set":
			b.sets.HandleAutocomplete(s, i, focused.StringValue())
		}
	default:
		common.RespondAutocomplete(s, i, nil)
	}
}

// handleGuildCreate seeds settings and default rarities when the bot joins a guild
func (b *Bot) handleGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	guildID, err := strconv.ParseInt(g.ID, 10, 64)
	if err != nil {
		log.Errorf("Failed to parse guild ID %s: %v", g.ID, err)
		return
	}

	var seeded bool
	err = b.runner.Run(ctx, guildID, func(svc *application.Services) error {
		if _, err := svc.Settings.GetOrCreateSettings(ctx); err != nil {
			return err
		}
		seeded, err = svc.Rarities.EnsureDefaults(ctx)
		return err
	})
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"guildID":   g.ID,
			"guildName": g.Name,
		}).Error("Failed to initialize guild")
		return
	}

	log.WithFields(log.Fields{
		"guildID":        g.ID,
		"guildName":      g.Name,
		"seededRarities": seeded,
	}).Info("Bot joined guild")
}

// handleMessageCreate counts chat messages toward the activity reward
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	// Skip if message is not from a guild
	if m.GuildID == "" {
		return
	}

	guildID, err := strconv.ParseInt(m.GuildID, 10, 64)
	if err != nil {
		return
	}
	userID, err := common.ParseUserID(m.Author.ID)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var awarded int64
	err = b.runner.Run(ctx, guildID, func(svc *application.Services) error {
		awarded, err = svc.Settings.RecordMessage(ctx, userID)
		return err
	})
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"guildID": m.GuildID,
			"userID":  m.Author.ID,
		}).Error("Failed to record message")
		return
	}

	if awarded > 0 {
		log.WithFields(log.Fields{
			"guildID": m.GuildID,
			"userID":  m.Author.ID,
			"points":  awarded,
		}).Debug("Awarded activity reward")
	}
}
