package interfaces

import (
	"context"

	"cardbot/domain/entities"
	"cardbot/events"
)

// All repositories are scoped to a single guild by the unit of work that creates them.

// AccountRepository defines the interface for point balance storage
type AccountRepository interface {
	// Get returns the account or nil if the user has never held points
	Get(ctx context.Context, userID int64) (*entities.Account, error)

	// Credit adds amount to the balance, creating the account if needed, and returns the new balance
	Credit(ctx context.Context, userID int64, amount int64) (int64, error)

	// Debit subtracts amount only if the balance covers it.
	// ok is false and nothing changes when the balance is insufficient.
	Debit(ctx context.Context, userID int64, amount int64) (newBalance int64, ok bool, err error)

	// IncrementMessageCount bumps the user's message counter and resets it when it
	// reaches threshold. reached reports whether the threshold was hit.
	IncrementMessageCount(ctx context.Context, userID int64, threshold int) (reached bool, err error)

	// TopBalances returns the richest accounts, highest first
	TopBalances(ctx context.Context, limit int) ([]*entities.LeaderboardEntry, error)
}

// BalanceHistoryRepository defines the interface for balance history tracking
type BalanceHistoryRepository interface {
	// Record creates a new balance history entry and sets its ID
	Record(ctx context.Context, history *entities.BalanceHistory) error

	// GetByUser returns the most recent balance history for a user
	GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.BalanceHistory, error)
}

// InventoryRepository defines the interface for card holdings
type InventoryRepository interface {
	// Add increments the quantity held, creating the row if needed, and returns the new quantity
	Add(ctx context.Context, userID int64, cardID string, n int64) (int64, error)

	// Remove decrements the quantity only if at least n are held, deleting the row when it reaches zero.
	// ok is false and nothing changes when the user holds fewer than n.
	Remove(ctx context.Context, userID int64, cardID string, n int64) (remaining int64, ok bool, err error)

	// GetQuantity returns how many copies of a card the user holds
	GetQuantity(ctx context.Context, userID int64, cardID string) (int64, error)

	// ListByUser returns the user's holdings joined with card definitions
	ListByUser(ctx context.Context, userID int64) ([]*entities.InventoryCard, error)

	// DeleteByCard removes every holding of a card and returns how many rows went
	DeleteByCard(ctx context.Context, cardID string) (int64, error)
}

// CardRepository defines the interface for card definitions
type CardRepository interface {
	// Create assigns the next card id and inserts the card
	Create(ctx context.Context, card *entities.Card) error

	// GetByID returns the card or nil
	GetByID(ctx context.Context, cardID string) (*entities.Card, error)

	// GetByName returns the card whose name matches case-insensitively, or nil
	GetByName(ctx context.Context, name string) (*entities.Card, error)

	// Find looks a card up by id or case-insensitive name and returns nil when neither matches
	Find(ctx context.Context, ref string) (*entities.Card, error)

	// List returns every card ordered by id
	List(ctx context.Context) ([]*entities.Card, error)

	// Search returns cards whose name contains query, for autocomplete
	Search(ctx context.Context, query string, limit int) ([]*entities.Card, error)

	// Update saves the editable fields of a card
	Update(ctx context.Context, card *entities.Card) error

	// Delete removes the card definition
	Delete(ctx context.Context, cardID string) (bool, error)
}

// RarityRepository defines the interface for rarity configuration
type RarityRepository interface {
	// Upsert creates or replaces a rarity, matching names case-insensitively
	Upsert(ctx context.Context, rarity *entities.Rarity) error

	// Get returns the rarity matching name case-insensitively, or nil
	Get(ctx context.Context, name string) (*entities.Rarity, error)

	// List returns every rarity, heaviest weight first
	List(ctx context.Context) ([]*entities.Rarity, error)

	// Count returns how many rarities the guild has configured
	Count(ctx context.Context) (int, error)

	// Delete removes a rarity
	Delete(ctx context.Context, name string) (bool, error)

	// DeleteAll removes every rarity of the guild
	DeleteAll(ctx context.Context) error
}

// CardSetRepository defines the interface for card sets and their membership
type CardSetRepository interface {
	// Create inserts the set and sets its ID
	Create(ctx context.Context, set *entities.CardSet) error

	// GetByID returns the set or nil
	GetByID(ctx context.Context, id int64) (*entities.CardSet, error)

	// GetByName returns the set matching name case-insensitively, or nil
	GetByName(ctx context.Context, name string) (*entities.CardSet, error)

	// List returns every set ordered by name
	List(ctx context.Context) ([]*entities.CardSet, error)

	// Update saves the name and description of a set
	Update(ctx context.Context, set *entities.CardSet) error

	// Delete removes the set and its memberships
	Delete(ctx context.Context, id int64) (bool, error)

	// AddCard adds a card to a set; added is false if it was already a member
	AddCard(ctx context.Context, setID int64, cardID string) (added bool, err error)

	// RemoveCard removes a card from a set
	RemoveCard(ctx context.Context, setID int64, cardID string) (bool, error)

	// RemoveCardFromAll removes a card from every set of the guild
	RemoveCardFromAll(ctx context.Context, cardID string) error

	// ListCards returns the member cards of a set
	ListCards(ctx context.Context, setID int64) ([]*entities.Card, error)

	// IsCardInPreset reports whether a card belongs to any preset set
	IsCardInPreset(ctx context.Context, cardID string) (bool, error)
}

// EventRepository defines the interface for claimable events and claims
type EventRepository interface {
	// Create inserts a new event
	Create(ctx context.Context, event *entities.Event) error

	// Get returns the event or nil
	Get(ctx context.Context, name string) (*entities.Event, error)

	// List returns every event ordered by name
	List(ctx context.Context) ([]*entities.Event, error)

	// Update saves name, reward, cooldown and sets of the event currently called name
	Update(ctx context.Context, name string, event *entities.Event) error

	// ResetClaims forgets every user's last claim of an event
	ResetClaims(ctx context.Context, name string) (int64, error)

	// Delete removes an event and its claims
	Delete(ctx context.Context, name string) (bool, error)

	// RemoveSetFromAll drops a set id from every event's reward sets
	RemoveSetFromAll(ctx context.Context, setID int64) error

	// GetClaim returns the user's last claim of an event or nil
	GetClaim(ctx context.Context, userID int64, eventName string) (*entities.EventClaim, error)

	// UpsertClaim records a claim time
	UpsertClaim(ctx context.Context, claim *entities.EventClaim) error
}

// LotteryRepository defines the interface for lotteries and tickets
type LotteryRepository interface {
	// Create inserts a lottery and sets its ID
	Create(ctx context.Context, lottery *entities.Lottery) error

	// GetActiveByName returns the active lottery with the name, or nil
	GetActiveByName(ctx context.Context, name string) (*entities.Lottery, error)

	// ListActive returns every active lottery
	ListActive(ctx context.Context) ([]*entities.Lottery, error)

	// Deactivate closes an active lottery and records the winner.
	// It returns false if the lottery was already inactive.
	Deactivate(ctx context.Context, lotteryID int64, winnerID int64) (bool, error)

	// Delete removes a lottery and its tickets
	Delete(ctx context.Context, lotteryID int64) (bool, error)

	// CreateTicket inserts a ticket and sets its ID. inserted is false when the number is taken.
	CreateTicket(ctx context.Context, ticket *entities.LotteryTicket) (inserted bool, err error)

	// CountTickets returns how many tickets were sold for a lottery
	CountTickets(ctx context.Context, lotteryID int64) (int64, error)

	// GetTicketNumbersByUser returns the numbers a user holds in a lottery
	GetTicketNumbersByUser(ctx context.Context, lotteryID int64, userID int64) ([]int, error)
}

// ListingRepository defines the interface for marketplace listings
type ListingRepository interface {
	// Create inserts a listing and sets its ID
	Create(ctx context.Context, listing *entities.SaleListing) error

	// GetByID returns the listing or nil
	GetByID(ctx context.Context, id int64) (*entities.SaleListing, error)

	// Claim deletes a listing and returns it, or nil if it is already gone
	Claim(ctx context.Context, id int64) (*entities.SaleListing, error)

	// ClaimOwned deletes a listing only if userID is its seller, returning nil otherwise
	ClaimOwned(ctx context.Context, id int64, userID int64) (*entities.SaleListing, error)

	// List returns open listings, oldest first
	List(ctx context.Context, limit int) ([]*entities.SaleListing, error)

	// ListBySeller returns the seller's open listings
	ListBySeller(ctx context.Context, userID int64) ([]*entities.SaleListing, error)

	// DeleteByCard removes every listing of a card
	DeleteByCard(ctx context.Context, cardID string) (int64, error)
}

// TradeHistoryRepository defines the interface for settled trades
type TradeHistoryRepository interface {
	// Record appends a settled trade and sets its ID
	Record(ctx context.Context, record *entities.TradeRecord) error

	// ListByUser returns the most recent trades involving the user
	ListByUser(ctx context.Context, userID int64, limit int) ([]*entities.TradeRecord, error)
}

// GuildSettingsRepository defines the interface for guild settings
type GuildSettingsRepository interface {
	// GetOrCreateGuildSettings returns the guild's settings, creating defaults if needed
	GetOrCreateGuildSettings(ctx context.Context) (*entities.GuildSettings, error)

	// UpdateGuildSettings saves the guild's settings
	UpdateGuildSettings(ctx context.Context, settings *entities.GuildSettings) error
}

// ProfileRepository defines the interface for user profiles
type ProfileRepository interface {
	// Get returns the user's profile or nil
	Get(ctx context.Context, userID int64) (*entities.Profile, error)

	// Upsert creates or replaces the user's profile
	Upsert(ctx context.Context, profile *entities.Profile) error

	// ClearFavouriteCard unsets a card as anyone's favourite
	ClearFavouriteCard(ctx context.Context, cardID string) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}
