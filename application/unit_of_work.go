package application

import (
	"context"

	"cardbot/domain/interfaces"
)

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes queued events
	Commit() error

	// Rollback rolls back the transaction and discards queued events
	Rollback() error

	// GuildID returns the guild every repository is scoped to
	GuildID() int64

	// Repository getters
	AccountRepository() interfaces.AccountRepository
	BalanceHistoryRepository() interfaces.BalanceHistoryRepository
	InventoryRepository() interfaces.InventoryRepository
	CardRepository() interfaces.CardRepository
	RarityRepository() interfaces.RarityRepository
	CardSetRepository() interfaces.CardSetRepository
	EventRepository() interfaces.EventRepository
	LotteryRepository() interfaces.LotteryRepository
	ListingRepository() interfaces.ListingRepository
	TradeHistoryRepository() interfaces.TradeHistoryRepository
	GuildSettingsRepository() interfaces.GuildSettingsRepository
	ProfileRepository() interfaces.ProfileRepository
	EventBus() interfaces.EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// CreateForGuild creates a new UnitOfWork instance scoped to a specific guild
	CreateForGuild(guildID int64) UnitOfWork
}

// TransactionalPublisher queues events until the unit of work settles
type TransactionalPublisher interface {
	interfaces.EventPublisher
	Flush(ctx context.Context) error
	Discard()
}
