package interfaces

import (
	"context"

	"cardbot/domain/entities"

	"github.com/google/uuid"
)

// LedgerService owns every balance and inventory mutation
type LedgerService interface {
	// Balance returns the user's current balance, zero if they have no account
	Balance(ctx context.Context, userID int64) (int64, error)

	// Credit adds points and records history. Returns the new balance.
	Credit(ctx context.Context, userID int64, amount int64, txType entities.TransactionType, metadata map[string]any) (int64, error)

	// Debit removes points if the balance covers them and records history. Returns the new balance.
	Debit(ctx context.Context, userID int64, amount int64, txType entities.TransactionType, metadata map[string]any) (int64, error)

	// Transfer moves points between two users
	Transfer(ctx context.Context, fromID, toID int64, amount int64) (*TransferResult, error)

	// SetBalance credits or debits the difference needed to reach target
	SetBalance(ctx context.Context, userID int64, target int64) (int64, error)

	// AddCard gives n copies of a card. Returns the new quantity.
	AddCard(ctx context.Context, userID int64, cardID string, n int64) (int64, error)

	// RemoveCard takes n copies of a card if held. Returns the remaining quantity.
	RemoveCard(ctx context.Context, userID int64, cardID string, n int64) (int64, error)

	// Quantity returns how many copies of a card the user holds
	Quantity(ctx context.Context, userID int64, cardID string) (int64, error)

	// Inventory lists the user's holdings
	Inventory(ctx context.Context, userID int64) ([]*entities.InventoryCard, error)

	// GiftCard moves one copy of a card from one user to another
	GiftCard(ctx context.Context, fromID, toID int64, cardRef string) (*entities.Card, error)

	// Leaderboard returns the top balances
	Leaderboard(ctx context.Context, limit int) ([]*entities.LeaderboardEntry, error)
}

// TransferResult describes a completed point transfer
type TransferResult struct {
	FromBalance int64
	ToBalance   int64
	Amount      int64
}

// BurnService destroys cards for points
type BurnService interface {
	Burn(ctx context.Context, userID int64, cardRef string) (*entities.BurnResult, error)
}

// MarketService runs the card marketplace
type MarketService interface {
	// Sell lists one copy of a card at price
	Sell(ctx context.Context, userID int64, cardRef string, price int64) (*entities.SaleListing, error)

	// Buy purchases a listing
	Buy(ctx context.Context, buyerID int64, listingID int64) (*entities.PurchaseResult, error)

	// RemoveSale withdraws the user's own listing and returns the card to them
	RemoveSale(ctx context.Context, userID int64, listingID int64) (*entities.SaleListing, error)

	// Listings returns open listings
	Listings(ctx context.Context, limit int) ([]*entities.SaleListing, error)

	// ListingsBySeller returns the seller's open listings
	ListingsBySeller(ctx context.Context, userID int64) ([]*entities.SaleListing, error)
}

// TradeService runs two-phase card trades
type TradeService interface {
	// Propose validates and stores a pending offer
	Propose(ctx context.Context, initiatorID, recipientID int64, offeredRef, requestedRef string) (*entities.TradeOffer, error)

	// Accept settles a pending offer on behalf of its recipient
	Accept(ctx context.Context, offerID uuid.UUID, userID int64) (*entities.TradeRecord, error)

	// Deny cancels a pending offer on behalf of either party
	Deny(ctx context.Context, offerID uuid.UUID, userID int64) (*entities.TradeOffer, error)

	// History returns recent trades involving the user
	History(ctx context.Context, userID int64, limit int) ([]*entities.TradeRecord, error)
}

// EventService manages claimable events
type EventService interface {
	Create(ctx context.Context, event *entities.Event) error
	// Update saves event under the current name, renaming it when event.Name differs.
	// Every user's cooldown for the event starts over.
	Update(ctx context.Context, name string, event *entities.Event) error
	Delete(ctx context.Context, name string) error
	Get(ctx context.Context, name string) (*entities.Event, error)
	List(ctx context.Context) ([]*entities.Event, error)

	// ResolveSets maps set names to ids, failing on the first unknown name
	ResolveSets(ctx context.Context, names []string) ([]int64, error)

	// Claim pays out an event reward if the user's cooldown has elapsed
	Claim(ctx context.Context, userID int64, name string) (*entities.EventClaimResult, error)
}

// LotteryService runs numbered-ticket lotteries
type LotteryService interface {
	Create(ctx context.Context, name string, prizeType entities.PrizeType, cardRef string, ticketPrice int64) (*entities.Lottery, error)
	BuyTicket(ctx context.Context, userID int64, name string, number int) (*entities.TicketPurchaseResult, error)
	Info(ctx context.Context, name string) (*entities.LotteryInfo, error)
	End(ctx context.Context, name string) (*entities.Lottery, error)
	ListActive(ctx context.Context) ([]*entities.Lottery, error)
}

// CardService manages card definitions and admin grants
type CardService interface {
	Create(ctx context.Context, card *entities.Card, setName string) (*entities.Card, error)
	Edit(ctx context.Context, cardRef string, patch entities.CardPatch) (*entities.Card, error)
	Delete(ctx context.Context, cardRef string) (*entities.Card, error)
	Get(ctx context.Context, cardRef string) (*entities.Card, error)
	Search(ctx context.Context, query string, limit int) ([]*entities.Card, error)
	Give(ctx context.Context, userID int64, cardRef string, n int64) (*entities.Card, int64, error)
	Take(ctx context.Context, userID int64, cardRef string, n int64) (*entities.Card, int64, error)
}

// RarityService manages rarity weights and burn values
type RarityService interface {
	Set(ctx context.Context, name string, weight float64, burnValue *int64) (*entities.Rarity, error)
	List(ctx context.Context) ([]*entities.Rarity, error)
	Remove(ctx context.Context, name string) error
	Reset(ctx context.Context) ([]*entities.Rarity, error)

	// EnsureDefaults seeds the default table for a guild with no rarities
	EnsureDefaults(ctx context.Context) (bool, error)
}

// SetService manages card sets
type SetService interface {
	Create(ctx context.Context, name, description string) (*entities.CardSet, error)
	AddCard(ctx context.Context, setName, cardRef string) (*entities.Card, error)
	RemoveCard(ctx context.Context, setName, cardRef string) (*entities.Card, error)
	Delete(ctx context.Context, name string) error
	Info(ctx context.Context, name string) (*entities.CardSetDetail, error)
	List(ctx context.Context) ([]*entities.CardSet, error)

	// Edit renames a set or changes its description
	Edit(ctx context.Context, name string, patch entities.CardSetPatch) (*entities.CardSet, error)

	// Unload removes a preset set. Its cards stay and lose their preset protection.
	Unload(ctx context.Context, name string) (*entities.CardSet, error)

	// Export renders a non-preset set in the import format
	Export(ctx context.Context, name string) (*entities.PresetSet, error)

	// ImportPreset creates a set with its rarities and cards. Bundled presets pass
	// isPreset so their cards stay protected from edits and deletion.
	ImportPreset(ctx context.Context, preset *entities.PresetSet, isPreset bool) (*entities.CardSetDetail, error)
}

// GuildSettingsService manages per-guild settings
type GuildSettingsService interface {
	GetOrCreateSettings(ctx context.Context) (*entities.GuildSettings, error)
	SetMessageReward(ctx context.Context, threshold int, points int64) (*entities.GuildSettings, error)
	SetLogChannel(ctx context.Context, channelID *int64) (*entities.GuildSettings, error)

	// SetVoicePoints sets the points paid per minute in voice chat. Zero disables it.
	SetVoicePoints(ctx context.Context, points int64) (*entities.GuildSettings, error)

	// RecordMessage counts a chat message and returns the points awarded, if any
	RecordMessage(ctx context.Context, userID int64) (int64, error)

	// RecordVoice pays for whole minutes spent in voice chat and returns the points awarded
	RecordVoice(ctx context.Context, userID int64, minutes int64) (int64, error)
}

// ProfileService manages user profiles
type ProfileService interface {
	// Get returns a user's profile with card totals. Users without a profile get an empty one.
	Get(ctx context.Context, userID int64) (*entities.ProfileView, error)

	// Update changes the supplied fields of the user's own profile
	Update(ctx context.Context, userID int64, patch entities.ProfilePatch) (*entities.ProfileView, error)
}
