package entities

import "time"

// SaleListing is one unit of a card held for sale on the marketplace
type SaleListing struct {
	ID        int64     `db:"id"`
	GuildID   int64     `db:"guild_id"`
	UserID    int64     `db:"user_id"`
	CardID    string    `db:"card_id"`
	Price     int64     `db:"price"`
	CreatedAt time.Time `db:"created_at"`

	// Populated by reads that join cards
	CardName   string `db:"-"`
	CardRarity string `db:"-"`
}

// PurchaseResult describes a completed marketplace purchase
type PurchaseResult struct {
	Listing       *SaleListing
	Card          *Card
	BuyerBalance  int64
	SellerBalance int64
}

// BurnResult describes a completed burn
type BurnResult struct {
	Card         *Card
	PointsEarned int64
	NewBalance   int64
	Remaining    int64 // copies of the card the user still holds
}
