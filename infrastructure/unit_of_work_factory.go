package infrastructure

import (
	"cardbot/application"
	"cardbot/database"
	"cardbot/events"
	"cardbot/repository"
)

// UnitOfWorkFactory implements the application.UnitOfWorkFactory interface.
// Each unit of work gets its own transactional bus that flushes into the shared bus.
type UnitOfWorkFactory struct {
	repoFactory *repository.UnitOfWorkFactory
	bus         *events.Bus
}

// NewUnitOfWorkFactory creates a new UnitOfWorkFactory
func NewUnitOfWorkFactory(db *database.DB, bus *events.Bus) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		repoFactory: repository.NewUnitOfWorkFactory(db),
		bus:         bus,
	}
}

// CreateForGuild creates a new UnitOfWork with a transactional event publisher
func (f *UnitOfWorkFactory) CreateForGuild(guildID int64) application.UnitOfWork {
	return f.repoFactory.CreateForGuildWithPublisher(guildID, events.NewTransactionalBus(f.bus))
}
