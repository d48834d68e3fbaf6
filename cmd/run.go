package cmd

import (
	"context"
	"fmt"
	"time"

	"cardbot/application"
	"cardbot/bot"
	"cardbot/bot/common"
	"cardbot/config"
	"cardbot/dashboard"
	"cardbot/database"
	"cardbot/domain/services"
	"cardbot/events"
	"cardbot/infrastructure"
	"cardbot/infrastructure/observability"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
)

// maxConnectAttempts bounds startup retries for the database and NATS
const maxConnectAttempts = 5

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting cardbot...")

	cfg := config.Get()

	metrics := observability.NewMetricsProvider(cfg)
	if err := metrics.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metrics.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("Error shutting down metrics provider")
		}
	}()

	log.Info("Connecting to database...")
	db, err := ConnectDatabase(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return err
	}
	defer func() {
		log.Info("Closing database connection...")
		db.Close()
	}()
	log.Info("Database connection established successfully")

	if err := database.MigrateUp(cfg.GetDatabaseURL()); err != nil {
		return err
	}

	eventBus := events.NewBus()
	uowFactory := infrastructure.NewUnitOfWorkFactory(db, eventBus)
	deps := NewServiceDeps(cfg)

	if cfg.NATSServers != "" {
		natsClient, err := connectNATS(ctx, cfg.NATSServers)
		if err != nil {
			return err
		}
		defer func() {
			if err := natsClient.Close(); err != nil {
				log.WithError(err).Error("Error closing NATS client")
			}
		}()
		infrastructure.NewEventForwarder(natsClient).Attach(eventBus)
		log.Info("Forwarding ledger events to NATS")
	} else {
		log.Info("NATS_SERVERS not set, event forwarding disabled")
	}

	log.Info("Initializing Discord bot...")
	discordBot, err := bot.New(bot.Config{
		Token:   cfg.DiscordToken,
		GuildID: cfg.GuildID,
	}, uowFactory, deps)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	defer func() {
		if err := discordBot.Close(); err != nil {
			log.WithError(err).Error("Error closing Discord bot")
		}
	}()
	bot.RegisterBotSubscriptions(eventBus, discordBot)
	log.Info("Discord bot initialized successfully")

	dashboardErr := make(chan error, 1)
	if cfg.DashboardToken != "" {
		server := dashboard.New(dashboard.Config{
			Addr:  cfg.DashboardAddr,
			Token: cfg.DashboardToken,
		}, common.NewRunner(uowFactory, deps))
		go func() {
			dashboardErr <- server.ListenAndServe(ctx)
		}()
	} else {
		log.Info("DASHBOARD_TOKEN not set, dashboard API disabled")
	}

	log.WithField("environment", cfg.Environment).Info("Bot is running")
	select {
	case <-ctx.Done():
	case err := <-dashboardErr:
		if err != nil {
			return fmt.Errorf("dashboard stopped: %w", err)
		}
	}

	log.Info("Shutting down bot...")
	return nil
}

// NewServiceDeps builds the process-wide collaborators shared by every unit of work
func NewServiceDeps(cfg *config.Config) application.ServiceDeps {
	return application.ServiceDeps{
		HouseUserID:    cfg.HouseUserID,
		Offers:         services.NewTradeOfferBook(cfg.TradeOfferTTL),
		Picker:         services.NewRewardPicker(nil),
		Now:            time.Now,
		LotteryNumbers: services.CryptoNumberSource,
	}
}

// ConnectDatabase opens the pool, retrying with exponential backoff
func ConnectDatabase(ctx context.Context, databaseURL string) (*database.DB, error) {
	var db *database.DB
	err := backoff.RetryNotify(
		func() (err error) {
			db, err = database.NewConnection(ctx, databaseURL)
			return err
		},
		retryPolicy(ctx),
		func(err error, d time.Duration) {
			log.WithError(err).WithField("retryIn", d).Warn("Database connection failed, retrying")
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func connectNATS(ctx context.Context, servers string) (*infrastructure.NATSClient, error) {
	client := infrastructure.NewNATSClient(servers)
	err := backoff.RetryNotify(
		func() error { return client.Connect(ctx) },
		retryPolicy(ctx),
		func(err error, d time.Duration) {
			log.WithError(err).WithField("retryIn", d).Warn("NATS connection failed, retrying")
		},
	)
	if err != nil {
		return nil, err
	}
	if err := client.EnsureEventStream(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func retryPolicy(ctx context.Context) backoff.BackOff {
	return backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxConnectAttempts-1),
		ctx,
	)
}
