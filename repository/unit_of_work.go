package repository

import (
	"context"
	"errors"
	"fmt"

	"cardbot/application"
	"cardbot/database"
	"cardbot/domain/interfaces"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// UnitsOfWorkTotal counts settled transactions by outcome
const UnitsOfWorkTotal = "cardbot.database.units_of_work_total"

var unitsOfWork, _ = otel.Meter("cardbot/repository").Int64Counter(UnitsOfWorkTotal,
	metric.WithDescription("Total number of committed or rolled back units of work"),
	metric.WithUnit("1"),
)

func recordUnitOfWork(ctx context.Context, outcome string) {
	unitsOfWork.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db                     *database.DB
	tx                     pgx.Tx
	ctx                    context.Context
	guildID                int64
	transactionalPublisher application.TransactionalPublisher
	accountRepo            interfaces.AccountRepository
	balanceHistoryRepo     interfaces.BalanceHistoryRepository
	inventoryRepo          interfaces.InventoryRepository
	cardRepo               interfaces.CardRepository
	rarityRepo             interfaces.RarityRepository
	cardSetRepo            interfaces.CardSetRepository
	eventRepo              interfaces.EventRepository
	lotteryRepo            interfaces.LotteryRepository
	listingRepo            interfaces.ListingRepository
	tradeHistoryRepo       interfaces.TradeHistoryRepository
	guildSettingsRepo      interfaces.GuildSettingsRepository
	profileRepo            interfaces.ProfileRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		db: db,
	}
}

// UnitOfWorkFactory builds units of work over a connection pool
type UnitOfWorkFactory struct {
	db *database.DB
}

// CreateForGuildWithPublisher creates a new UnitOfWork with a specific transactional publisher
func (f *UnitOfWorkFactory) CreateForGuildWithPublisher(guildID int64, transactionalPublisher application.TransactionalPublisher) application.UnitOfWork {
	return &unitOfWork{
		db:                     f.db,
		guildID:                guildID,
		transactionalPublisher: transactionalPublisher,
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create guild-scoped repositories with the transaction
	u.accountRepo = NewAccountRepositoryScoped(tx, u.guildID)
	u.balanceHistoryRepo = NewBalanceHistoryRepositoryScoped(tx, u.guildID)
	u.inventoryRepo = NewInventoryRepositoryScoped(tx, u.guildID)
	u.cardRepo = NewCardRepositoryScoped(tx, u.guildID)
	u.rarityRepo = NewRarityRepositoryScoped(tx, u.guildID)
	u.cardSetRepo = NewCardSetRepositoryScoped(tx, u.guildID)
	u.eventRepo = NewEventRepositoryScoped(tx, u.guildID)
	u.lotteryRepo = NewLotteryRepositoryScoped(tx, u.guildID)
	u.listingRepo = NewListingRepositoryScoped(tx, u.guildID)
	u.tradeHistoryRepo = NewTradeHistoryRepositoryScoped(tx, u.guildID)
	u.guildSettingsRepo = NewGuildSettingsRepositoryScoped(tx, u.guildID)
	u.profileRepo = NewProfileRepositoryScoped(tx, u.guildID)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil
	recordUnitOfWork(u.ctx, "committed")

	// Flush pending events after successful commit
	if u.transactionalPublisher != nil {
		if err := u.transactionalPublisher.Flush(u.ctx); err != nil {
			log.WithError(err).WithField("guildID", u.guildID).Error("Failed to flush events after commit")
		}
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil
	recordUnitOfWork(u.ctx, "rolled_back")

	// Discard pending events on rollback
	if u.transactionalPublisher != nil {
		u.transactionalPublisher.Discard()
	}

	return nil
}

// GuildID returns the guild this unit of work is scoped to
func (u *unitOfWork) GuildID() int64 {
	return u.guildID
}

// AccountRepository returns the account repository for this unit of work
func (u *unitOfWork) AccountRepository() interfaces.AccountRepository {
	if u.accountRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.accountRepo
}

// BalanceHistoryRepository returns the balance history repository for this unit of work
func (u *unitOfWork) BalanceHistoryRepository() interfaces.BalanceHistoryRepository {
	if u.balanceHistoryRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.balanceHistoryRepo
}

// InventoryRepository returns the inventory repository for this unit of work
func (u *unitOfWork) InventoryRepository() interfaces.InventoryRepository {
	if u.inventoryRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.inventoryRepo
}

// CardRepository returns the card repository for this unit of work
func (u *unitOfWork) CardRepository() interfaces.CardRepository {
	if u.cardRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.cardRepo
}

// RarityRepository returns the rarity repository for this unit of work
func (u *unitOfWork) RarityRepository() interfaces.RarityRepository {
	if u.rarityRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.rarityRepo
}

// CardSetRepository returns the card set repository for this unit of work
func (u *unitOfWork) CardSetRepository() interfaces.CardSetRepository {
	if u.cardSetRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.cardSetRepo
}

// EventRepository returns the event repository for this unit of work
func (u *unitOfWork) EventRepository() interfaces.EventRepository {
	if u.eventRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.eventRepo
}

// LotteryRepository returns the lottery repository for this unit of work
func (u *unitOfWork) LotteryRepository() interfaces.LotteryRepository {
	if u.lotteryRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.lotteryRepo
}

// ListingRepository returns the listing repository for this unit of work
func (u *unitOfWork) ListingRepository() interfaces.ListingRepository {
	if u.listingRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.listingRepo
}

// TradeHistoryRepository returns the trade history repository for this unit of work
func (u *unitOfWork) TradeHistoryRepository() interfaces.TradeHistoryRepository {
	if u.tradeHistoryRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.tradeHistoryRepo
}

// GuildSettingsRepository returns the guild settings repository for this unit of work
func (u *unitOfWork) GuildSettingsRepository() interfaces.GuildSettingsRepository {
	if u.guildSettingsRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.guildSettingsRepo
}

// ProfileRepository returns the profile repository for this unit of work
func (u *unitOfWork) ProfileRepository() interfaces.ProfileRepository {
	if u.profileRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.profileRepo
}

// EventBus returns the transactional event publisher for this unit of work
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	if u.transactionalPublisher == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalPublisher
}
