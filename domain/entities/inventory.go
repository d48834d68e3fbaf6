package entities

import "time"

// InventoryItem is one row of a user's card holdings. Quantity is always positive
// once committed.
type InventoryItem struct {
	GuildID   int64     `db:"guild_id"`
	UserID    int64     `db:"user_id"`
	CardID    string    `db:"card_id"`
	Quantity  int64     `db:"quantity"`
	UpdatedAt time.Time `db:"updated_at"`
}

// InventoryCard joins a holding with its card definition
type InventoryCard struct {
	Card     *Card
	Quantity int64
}

// TotalCards sums the quantities of an inventory
func TotalCards(items []*InventoryCard) int64 {
	var total int64
	for _, item := range items {
		total += item.Quantity
	}
	return total
}
