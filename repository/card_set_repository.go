package repository

import (
	"context"
	"errors"
	"fmt"

	"cardbot/domain"
	"cardbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

const cardSetColumns = `id, guild_id, name, description, is_preset, created_at`

// CardSetRepository implements the CardSetRepository interface
type CardSetRepository struct {
	q       Queryable
	guildID int64
}

// NewCardSetRepositoryScoped creates a new card set repository with a transaction and guild scope
func NewCardSetRepositoryScoped(tx Queryable, guildID int64) *CardSetRepository {
	return &CardSetRepository{
		q:       tx,
		guildID: guildID,
	}
}

func scanCardSet(row pgx.Row) (*entities.CardSet, error) {
	var set entities.CardSet
	err := row.Scan(
		&set.ID,
		&set.GuildID,
		&set.Name,
		&set.Description,
		&set.IsPreset,
		&set.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &set, nil
}

// Create inserts a new card set
func (r *CardSetRepository) Create(ctx context.Context, set *entities.CardSet) error {
	query := `
		INSERT INTO card_sets (guild_id, name, description, is_preset)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.q.QueryRow(ctx, query, r.guildID, set.Name, set.Description, set.IsPreset).Scan(&set.ID, &set.CreatedAt)
	if isUniqueViolation(err) {
		return domain.Invalid("Set `%s` already exists.", set.Name)
	}
	if err != nil {
		return fmt.Errorf("failed to create set %q: %w", set.Name, err)
	}
	set.GuildID = r.guildID
	return nil
}

// GetByID retrieves a set by its id
func (r *CardSetRepository) GetByID(ctx context.Context, id int64) (*entities.CardSet, error) {
	row := r.q.QueryRow(ctx, `SELECT `+cardSetColumns+` FROM card_sets WHERE guild_id = $1 AND id = $2`, r.guildID, id)
	set, err := scanCardSet(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get set %d: %w", id, err)
	}
	return set, nil
}

// GetByName retrieves a set by case-insensitive name
func (r *CardSetRepository) GetByName(ctx context.Context, name string) (*entities.CardSet, error) {
	row := r.q.QueryRow(ctx, `SELECT `+cardSetColumns+` FROM card_sets WHERE guild_id = $1 AND LOWER(name) = LOWER($2)`, r.guildID, name)
	set, err := scanCardSet(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get set %q: %w", name, err)
	}
	return set, nil
}

// List returns every set of the guild ordered by name
func (r *CardSetRepository) List(ctx context.Context) ([]*entities.CardSet, error) {
	rows, err := r.q.Query(ctx, `SELECT `+cardSetColumns+` FROM card_sets WHERE guild_id = $1 ORDER BY name`, r.guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sets: %w", err)
	}
	defer rows.Close()

	var sets []*entities.CardSet
	for rows.Next() {
		set, err := scanCardSet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan set: %w", err)
		}
		sets = append(sets, set)
	}
	return sets, rows.Err()
}

// Update saves the name and description of a set
func (r *CardSetRepository) Update(ctx context.Context, set *entities.CardSet) error {
	tag, err := r.q.Exec(ctx, `UPDATE card_sets SET name = $3, description = $4 WHERE guild_id = $1 AND id = $2`,
		r.guildID, set.ID, set.Name, set.Description)
	if isUniqueViolation(err) {
		return domain.Invalid("Set `%s` already exists.", set.Name)
	}
	if err != nil {
		return fmt.Errorf("failed to update set %d: %w", set.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("Set `%s` not found.", set.Name)
	}
	return nil
}

// Delete removes a set; memberships cascade
func (r *CardSetRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM card_sets WHERE guild_id = $1 AND id = $2`, r.guildID, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete set %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

// AddCard adds a card to a set
func (r *CardSetRepository) AddCard(ctx context.Context, setID int64, cardID string) (bool, error) {
	query := `
		INSERT INTO set_cards (set_id, guild_id, card_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (set_id, card_id) DO NOTHING
	`
	tag, err := r.q.Exec(ctx, query, setID, r.guildID, cardID)
	if err != nil {
		return false, fmt.Errorf("failed to add card %s to set %d: %w", cardID, setID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// RemoveCard removes a card from a set
func (r *CardSetRepository) RemoveCard(ctx context.Context, setID int64, cardID string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM set_cards WHERE guild_id = $1 AND set_id = $2 AND card_id = $3`, r.guildID, setID, cardID)
	if err != nil {
		return false, fmt.Errorf("failed to remove card %s from set %d: %w", cardID, setID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// RemoveCardFromAll removes a card from every set
func (r *CardSetRepository) RemoveCardFromAll(ctx context.Context, cardID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM set_cards WHERE guild_id = $1 AND card_id = $2`, r.guildID, cardID); err != nil {
		return fmt.Errorf("failed to remove card %s from sets: %w", cardID, err)
	}
	return nil
}

// ListCards returns the cards belonging to a set
func (r *CardSetRepository) ListCards(ctx context.Context, setID int64) ([]*entities.Card, error) {
	query := `
		SELECT ` + cardColumnsPrefixed + `
		FROM set_cards sc
		JOIN cards c ON c.guild_id = sc.guild_id AND c.card_id = sc.card_id
		WHERE sc.guild_id = $1 AND sc.set_id = $2
		ORDER BY c.card_id
	`
	rows, err := r.q.Query(ctx, query, r.guildID, setID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards of set %d: %w", setID, err)
	}
	return collectCards(rows)
}

// IsCardInPreset reports whether the card belongs to any preset set
func (r *CardSetRepository) IsCardInPreset(ctx context.Context, cardID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM set_cards sc
			JOIN card_sets s ON s.id = sc.set_id
			WHERE sc.guild_id = $1 AND sc.card_id = $2 AND s.is_preset
		)
	`
	var exists bool
	if err := r.q.QueryRow(ctx, query, r.guildID, cardID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check preset membership of card %s: %w", cardID, err)
	}
	return exists, nil
}
