package repository

import (
	"context"
	"errors"
	"fmt"

	"cardbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

// RarityRepository implements the RarityRepository interface
type RarityRepository struct {
	q       Queryable
	guildID int64
}

// NewRarityRepositoryScoped creates a new rarity repository with a transaction and guild scope
func NewRarityRepositoryScoped(tx Queryable, guildID int64) *RarityRepository {
	return &RarityRepository{
		q:       tx,
		guildID: guildID,
	}
}

// Upsert creates a rarity or replaces its weight and burn value
func (r *RarityRepository) Upsert(ctx context.Context, rarity *entities.Rarity) error {
	query := `
		INSERT INTO rarities (guild_id, name, weight, burn_value)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (guild_id, name) DO UPDATE
		SET weight = EXCLUDED.weight,
		    burn_value = EXCLUDED.burn_value
	`
	if _, err := r.q.Exec(ctx, query, r.guildID, rarity.Name, rarity.Weight, rarity.BurnValue); err != nil {
		return fmt.Errorf("failed to upsert rarity %q: %w", rarity.Name, err)
	}
	rarity.GuildID = r.guildID
	return nil
}

// Get retrieves a rarity by case-insensitive name
func (r *RarityRepository) Get(ctx context.Context, name string) (*entities.Rarity, error) {
	query := `
		SELECT guild_id, name, weight, burn_value
		FROM rarities
		WHERE guild_id = $1 AND LOWER(name) = LOWER($2)
	`

	var rarity entities.Rarity
	err := r.q.QueryRow(ctx, query, r.guildID, name).Scan(
		&rarity.GuildID,
		&rarity.Name,
		&rarity.Weight,
		&rarity.BurnValue,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rarity %q: %w", name, err)
	}
	return &rarity, nil
}

// List returns every rarity, heaviest first
func (r *RarityRepository) List(ctx context.Context) ([]*entities.Rarity, error) {
	query := `
		SELECT guild_id, name, weight, burn_value
		FROM rarities
		WHERE guild_id = $1
		ORDER BY weight DESC, name
	`

	rows, err := r.q.Query(ctx, query, r.guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rarities: %w", err)
	}
	defer rows.Close()

	var rarities []*entities.Rarity
	for rows.Next() {
		var rarity entities.Rarity
		if err := rows.Scan(&rarity.GuildID, &rarity.Name, &rarity.Weight, &rarity.BurnValue); err != nil {
			return nil, fmt.Errorf("failed to scan rarity: %w", err)
		}
		rarities = append(rarities, &rarity)
	}
	return rarities, rows.Err()
}

// Count returns the number of rarities configured for the guild
func (r *RarityRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM rarities WHERE guild_id = $1`, r.guildID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rarities: %w", err)
	}
	return count, nil
}

// Delete removes a rarity by case-insensitive name
func (r *RarityRepository) Delete(ctx context.Context, name string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM rarities WHERE guild_id = $1 AND LOWER(name) = LOWER($2)`, r.guildID, name)
	if err != nil {
		return false, fmt.Errorf("failed to delete rarity %q: %w", name, err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteAll clears the guild's rarity table
func (r *RarityRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM rarities WHERE guild_id = $1`, r.guildID); err != nil {
		return fmt.Errorf("failed to clear rarities: %w", err)
	}
	return nil
}
