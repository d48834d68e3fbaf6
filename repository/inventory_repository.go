package repository

import (
	"context"
	"errors"
	"fmt"

	"cardbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

// InventoryRepository implements the InventoryRepository interface
type InventoryRepository struct {
	q       Queryable
	guildID int64
}

// NewInventoryRepositoryScoped creates a new inventory repository with a transaction and guild scope
func NewInventoryRepositoryScoped(tx Queryable, guildID int64) *InventoryRepository {
	return &InventoryRepository{
		q:       tx,
		guildID: guildID,
	}
}

// Add increments a holding, inserting it if absent
func (r *InventoryRepository) Add(ctx context.Context, userID int64, cardID string, n int64) (int64, error) {
	query := `
		INSERT INTO user_inventory (guild_id, user_id, card_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (guild_id, user_id, card_id) DO UPDATE
		SET quantity = user_inventory.quantity + EXCLUDED.quantity,
		    updated_at = NOW()
		RETURNING quantity
	`

	var quantity int64
	if err := r.q.QueryRow(ctx, query, r.guildID, userID, cardID, n).Scan(&quantity); err != nil {
		return 0, fmt.Errorf("failed to add card %s for user %d: %w", cardID, userID, err)
	}
	return quantity, nil
}

// Remove decrements a holding only when at least n copies are held. Rows never stay at zero.
func (r *InventoryRepository) Remove(ctx context.Context, userID int64, cardID string, n int64) (int64, bool, error) {
	query := `
		UPDATE user_inventory
		SET quantity = quantity - $4,
		    updated_at = NOW()
		WHERE guild_id = $1 AND user_id = $2 AND card_id = $3 AND quantity >= $4
		RETURNING quantity
	`

	var remaining int64
	err := r.q.QueryRow(ctx, query, r.guildID, userID, cardID, n).Scan(&remaining)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to remove card %s for user %d: %w", cardID, userID, err)
	}

	if remaining == 0 {
		_, err := r.q.Exec(ctx, `
			DELETE FROM user_inventory
			WHERE guild_id = $1 AND user_id = $2 AND card_id = $3 AND quantity = 0
		`, r.guildID, userID, cardID)
		if err != nil {
			return 0, false, fmt.Errorf("failed to delete empty holding: %w", err)
		}
	}
	return remaining, true, nil
}

// GetQuantity returns the number of copies held, zero when none
func (r *InventoryRepository) GetQuantity(ctx context.Context, userID int64, cardID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM user_inventory
		WHERE guild_id = $1 AND user_id = $2 AND card_id = $3
	`

	var quantity int64
	if err := r.q.QueryRow(ctx, query, r.guildID, userID, cardID).Scan(&quantity); err != nil {
		return 0, fmt.Errorf("failed to get quantity of %s for user %d: %w", cardID, userID, err)
	}
	return quantity, nil
}

// ListByUser returns the user's holdings with their card definitions
func (r *InventoryRepository) ListByUser(ctx context.Context, userID int64) ([]*entities.InventoryCard, error) {
	query := `
		SELECT ` + cardColumnsPrefixed + `, i.quantity
		FROM user_inventory i
		JOIN cards c ON c.guild_id = i.guild_id AND c.card_id = i.card_id
		WHERE i.guild_id = $1 AND i.user_id = $2 AND i.quantity > 0
		ORDER BY c.card_id
	`

	rows, err := r.q.Query(ctx, query, r.guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory for user %d: %w", userID, err)
	}
	defer rows.Close()

	var items []*entities.InventoryCard
	for rows.Next() {
		var card entities.Card
		item := &entities.InventoryCard{Card: &card}
		dest := append(cardScanDest(&card), &item.Quantity)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// DeleteByCard removes every holding of a card in the guild
func (r *InventoryRepository) DeleteByCard(ctx context.Context, cardID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM user_inventory WHERE guild_id = $1 AND card_id = $2`, r.guildID, cardID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete holdings of card %s: %w", cardID, err)
	}
	return tag.RowsAffected(), nil
}
