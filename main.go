package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"cardbot/application"
	"cardbot/cmd"
	"cardbot/config"
	"cardbot/database"
	"cardbot/domain/entities"
	"cardbot/events"
	"cardbot/infrastructure"

	log "github.com/sirupsen/logrus"
)

const usage = `usage:
  cardbot                                      run the bot
  cardbot migrate up|down [n]|status           manage the database schema
  cardbot update-balance <guild> <user> <amount>
  cardbot import-set <guild> <file.json>`

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.WithError(err).Warn("Failed to load .env file")
	}
	configureLogging(config.Get())

	if len(os.Args) > 1 {
		if err := runSubcommand(os.Args[1], os.Args[2:]); err != nil {
			log.WithError(err).Fatal("Command failed")
		}
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Run(ctx); err != nil {
		log.WithError(err).Fatal("Application error")
	}
}

func configureLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("level", cfg.LogLevel).Warn("Unknown LOG_LEVEL, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.IsProduction() {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

func runSubcommand(name string, args []string) error {
	switch name {
	case "migrate":
		return handleMigrationCommand(args)
	case "update-balance":
		return handleUpdateBalance(args)
	case "import-set":
		return handleImportSet(args)
	case "help", "-h", "--help":
		fmt.Println(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%s", name, usage)
	}
}

func handleMigrationCommand(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: cardbot migrate [up|down|status] [args...]")
	}

	databaseURL := config.Get().GetDatabaseURL()
	switch args[0] {
	case "up":
		return database.MigrateUp(databaseURL)
	case "down":
		steps := "1"
		if len(args) > 1 {
			steps = args[1]
		}
		return database.MigrateDown(databaseURL, steps)
	case "status":
		return database.MigrateStatus(databaseURL)
	default:
		return fmt.Errorf("unknown migration command: %s", args[0])
	}
}

func handleUpdateBalance(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: cardbot update-balance <guild> <user> <amount>")
	}
	ids, err := parseInts(args)
	if err != nil {
		return err
	}
	guildID, userID, amount := ids[0], ids[1], ids[2]

	return withServices(guildID, func(ctx context.Context, svc *application.Services) error {
		balance, err := svc.Ledger.SetBalance(ctx, userID, amount)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"guildID": guildID,
			"userID":  userID,
			"balance": balance,
		}).Info("Balance updated")
		return nil
	})
}

func handleImportSet(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: cardbot import-set <guild> <file.json>")
	}
	guildID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid guild id %q", args[0])
	}

	f, err := os.Open(args[1])
	if err != nil {
		return fmt.Errorf("failed to open preset: %w", err)
	}
	defer f.Close()

	preset, err := entities.DecodePreset(f)
	if err != nil {
		return err
	}

	return withServices(guildID, func(ctx context.Context, svc *application.Services) error {
		detail, err := svc.Sets.ImportPreset(ctx, preset, true)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"guildID": guildID,
			"set":     detail.Set.Name,
			"cards":   len(detail.Cards),
		}).Info("Preset set imported")
		return nil
	})
}

// withServices runs fn against a single guild unit of work outside the bot
func withServices(guildID int64, fn func(context.Context, *application.Services) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg := config.Get()
	db, err := cmd.ConnectDatabase(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return err
	}
	defer db.Close()

	factory := infrastructure.NewUnitOfWorkFactory(db, events.NewBus())
	return application.WithServices(ctx, factory, guildID, cmd.NewServiceDeps(cfg), func(svc *application.Services) error {
		return fn(ctx, svc)
	})
}

func parseInts(args []string) ([]int64, error) {
	out := make([]int64, len(args))
	for i, a := range args {
		v, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		out[i] = v
	}
	return out, nil
}
