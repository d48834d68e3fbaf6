package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"cardbot/domain"
	"cardbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

const cardColumns = `guild_id, card_id, name, description, rarity, image_url, local_image_path, created_at, updated_at`

const cardColumnsPrefixed = `c.guild_id, c.card_id, c.name, c.description, c.rarity, c.image_url, c.local_image_path, c.created_at, c.updated_at`

func cardScanDest(c *entities.Card) []any {
	return []any{
		&c.GuildID,
		&c.CardID,
		&c.Name,
		&c.Description,
		&c.Rarity,
		&c.ImageURL,
		&c.LocalImagePath,
		&c.CreatedAt,
		&c.UpdatedAt,
	}
}

func collectCards(rows pgx.Rows) ([]*entities.Card, error) {
	defer rows.Close()

	var cards []*entities.Card
	for rows.Next() {
		var card entities.Card
		if err := rows.Scan(cardScanDest(&card)...); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, &card)
	}
	return cards, rows.Err()
}

// CardRepository implements the CardRepository interface
type CardRepository struct {
	q       Queryable
	guildID int64
}

// NewCardRepositoryScoped creates a new card repository with a transaction and guild scope
func NewCardRepositoryScoped(tx Queryable, guildID int64) *CardRepository {
	return &CardRepository{
		q:       tx,
		guildID: guildID,
	}
}

// Create allocates the next zero-padded card id for the guild and inserts the card.
// The advisory lock serializes id allocation per guild until the transaction ends.
func (r *CardRepository) Create(ctx context.Context, card *entities.Card) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, r.guildID); err != nil {
		return fmt.Errorf("failed to lock card ids for guild %d: %w", r.guildID, err)
	}

	var maxID int64
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(MAX(card_id::BIGINT), 0)
		FROM cards
		WHERE guild_id = $1
	`, r.guildID).Scan(&maxID)
	if err != nil {
		return fmt.Errorf("failed to get max card id for guild %d: %w", r.guildID, err)
	}

	card.GuildID = r.guildID
	card.CardID = entities.FormatCardID(maxID + 1)

	query := `
		INSERT INTO cards (guild_id, card_id, name, description, rarity, image_url, local_image_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	err = r.q.QueryRow(ctx, query,
		card.GuildID,
		card.CardID,
		card.Name,
		card.Description,
		card.Rarity,
		card.ImageURL,
		card.LocalImagePath,
	).Scan(&card.CreatedAt, &card.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.Invalid("A card named `%s` already exists.", card.Name)
	}
	if err != nil {
		return fmt.Errorf("failed to create card %q: %w", card.Name, err)
	}
	return nil
}

// GetByID retrieves a card by its id
func (r *CardRepository) GetByID(ctx context.Context, cardID string) (*entities.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE guild_id = $1 AND card_id = $2`

	var card entities.Card
	err := r.q.QueryRow(ctx, query, r.guildID, cardID).Scan(cardScanDest(&card)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card %s: %w", cardID, err)
	}
	return &card, nil
}

// GetByName retrieves a card by case-insensitive name, ignoring ids
func (r *CardRepository) GetByName(ctx context.Context, name string) (*entities.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE guild_id = $1 AND LOWER(name) = LOWER($2)`

	var card entities.Card
	err := r.q.QueryRow(ctx, query, r.guildID, name).Scan(cardScanDest(&card)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card %q: %w", name, err)
	}
	return &card, nil
}

// Find resolves a card by id, unpadded numeric id or case-insensitive name. An id match wins.
func (r *CardRepository) Find(ctx context.Context, ref string) (*entities.Card, error) {
	id := ref
	if n, err := strconv.ParseInt(ref, 10, 64); err == nil && n > 0 {
		id = entities.FormatCardID(n)
	}

	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE guild_id = $1 AND (card_id = $2 OR LOWER(name) = LOWER($3))
		ORDER BY (card_id = $2) DESC
		LIMIT 1
	`

	var card entities.Card
	err := r.q.QueryRow(ctx, query, r.guildID, id, ref).Scan(cardScanDest(&card)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find card %q: %w", ref, err)
	}
	return &card, nil
}

// List returns every card of the guild
func (r *CardRepository) List(ctx context.Context) ([]*entities.Card, error) {
	rows, err := r.q.Query(ctx, `SELECT `+cardColumns+` FROM cards WHERE guild_id = $1 ORDER BY card_id`, r.guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return collectCards(rows)
}

// Search matches names containing query, case-insensitively
func (r *CardRepository) Search(ctx context.Context, query string, limit int) ([]*entities.Card, error) {
	sql := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE guild_id = $1 AND name ILIKE '%' || $2 || '%'
		ORDER BY name
		LIMIT $3
	`
	rows, err := r.q.Query(ctx, sql, r.guildID, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search cards: %w", err)
	}
	return collectCards(rows)
}

// Update saves the editable fields of a card
func (r *CardRepository) Update(ctx context.Context, card *entities.Card) error {
	query := `
		UPDATE cards
		SET name = $3,
		    description = $4,
		    rarity = $5,
		    image_url = $6,
		    local_image_path = $7,
		    updated_at = NOW()
		WHERE guild_id = $1 AND card_id = $2
		RETURNING updated_at
	`
	err := r.q.QueryRow(ctx, query,
		r.guildID,
		card.CardID,
		card.Name,
		card.Description,
		card.Rarity,
		card.ImageURL,
		card.LocalImagePath,
	).Scan(&card.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NotFound("Card `%s` not found.", card.CardID)
	}
	if isUniqueViolation(err) {
		return domain.Invalid("A card named `%s` already exists.", card.Name)
	}
	if err != nil {
		return fmt.Errorf("failed to update card %s: %w", card.CardID, err)
	}
	return nil
}

// Delete removes a card definition
func (r *CardRepository) Delete(ctx context.Context, cardID string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM cards WHERE guild_id = $1 AND card_id = $2`, r.guildID, cardID)
	if err != nil {
		return false, fmt.Errorf("failed to delete card %s: %w", cardID, err)
	}
	return tag.RowsAffected() > 0, nil
}
