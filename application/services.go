package application

import (
	"context"
	"fmt"
	"time"

	"cardbot/domain/interfaces"
	"cardbot/domain/services"
)

// ServiceDeps carries the process-wide collaborators shared by every unit of work
type ServiceDeps struct {
	HouseUserID    int64
	Offers         *services.TradeOfferBook
	Picker         *services.RewardPicker
	Now            func() time.Time
	LotteryNumbers services.NumberSource
}

// Services is the set of domain services bound to one unit of work
type Services struct {
	Ledger   interfaces.LedgerService
	Burn     interfaces.BurnService
	Market   interfaces.MarketService
	Trade    interfaces.TradeService
	Events   interfaces.EventService
	Lottery  interfaces.LotteryService
	Cards    interfaces.CardService
	Rarities interfaces.RarityService
	Sets     interfaces.SetService
	Settings interfaces.GuildSettingsService
	Profiles interfaces.ProfileService
}

// NewServices wires the domain services onto a started unit of work
func NewServices(uow UnitOfWork, deps ServiceDeps) *Services {
	guildID := uow.GuildID()
	bus := uow.EventBus()

	ledger := services.NewLedgerService(
		guildID,
		uow.AccountRepository(),
		uow.InventoryRepository(),
		uow.BalanceHistoryRepository(),
		uow.CardRepository(),
		bus,
	)

	return &Services{
		Ledger: ledger,
		Burn:   services.NewBurnService(ledger, uow.CardRepository(), uow.RarityRepository()),
		Market: services.NewMarketService(guildID, ledger, uow.CardRepository(), uow.ListingRepository(), bus),
		Trade:  services.NewTradeService(guildID, ledger, uow.CardRepository(), uow.TradeHistoryRepository(), deps.Offers, bus),
		Events: services.NewEventService(
			guildID,
			ledger,
			uow.EventRepository(),
			uow.CardSetRepository(),
			uow.RarityRepository(),
			deps.Picker,
			bus,
			deps.Now,
		),
		Lottery: services.NewLotteryService(
			guildID,
			deps.HouseUserID,
			ledger,
			uow.LotteryRepository(),
			uow.CardRepository(),
			bus,
			deps.LotteryNumbers,
		),
		Cards: services.NewCardService(
			guildID,
			ledger,
			uow.CardRepository(),
			uow.RarityRepository(),
			uow.CardSetRepository(),
			uow.InventoryRepository(),
			uow.ListingRepository(),
			uow.ProfileRepository(),
		),
		Rarities: services.NewRarityService(guildID, uow.RarityRepository()),
		Sets: services.NewSetService(
			guildID,
			uow.CardRepository(),
			uow.CardSetRepository(),
			uow.EventRepository(),
			uow.RarityRepository(),
		),
		Settings: services.NewGuildSettingsService(ledger, uow.GuildSettingsRepository(), uow.AccountRepository()),
		Profiles: services.NewProfileService(guildID, ledger, uow.ProfileRepository(), uow.CardRepository()),
	}
}

// WithServices runs fn inside a guild unit of work. The transaction commits when fn
// returns nil and rolls back otherwise, so a failed operation leaves no trace.
func WithServices(ctx context.Context, factory UnitOfWorkFactory, guildID int64, deps ServiceDeps, fn func(*Services) error) error {
	uow := factory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := fn(NewServices(uow, deps)); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
