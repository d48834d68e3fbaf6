package repository

import (
	"context"
	"errors"
	"fmt"

	"cardbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

// ListingRepository implements the ListingRepository interface
type ListingRepository struct {
	q       Queryable
	guildID int64
}

// NewListingRepositoryScoped creates a new listing repository with a transaction and guild scope
func NewListingRepositoryScoped(tx Queryable, guildID int64) *ListingRepository {
	return &ListingRepository{
		q:       tx,
		guildID: guildID,
	}
}

const listingSelect = `
	SELECT l.id, l.guild_id, l.user_id, l.card_id, l.price, l.created_at,
	       COALESCE(c.name, ''), COALESCE(c.rarity, '')
	FROM sale_listings l
	LEFT JOIN cards c ON c.guild_id = l.guild_id AND c.card_id = l.card_id
`

func scanListing(row pgx.Row) (*entities.SaleListing, error) {
	var listing entities.SaleListing
	err := row.Scan(
		&listing.ID,
		&listing.GuildID,
		&listing.UserID,
		&listing.CardID,
		&listing.Price,
		&listing.CreatedAt,
		&listing.CardName,
		&listing.CardRarity,
	)
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *ListingRepository) queryListings(ctx context.Context, query string, args ...any) ([]*entities.SaleListing, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []*entities.SaleListing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, listing)
	}
	return listings, rows.Err()
}

// Create inserts a new listing
func (r *ListingRepository) Create(ctx context.Context, listing *entities.SaleListing) error {
	query := `
		INSERT INTO sale_listings (guild_id, user_id, card_id, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.q.QueryRow(ctx, query, r.guildID, listing.UserID, listing.CardID, listing.Price).Scan(&listing.ID, &listing.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	listing.GuildID = r.guildID
	return nil
}

// GetByID retrieves a listing
func (r *ListingRepository) GetByID(ctx context.Context, id int64) (*entities.SaleListing, error) {
	listing, err := scanListing(r.q.QueryRow(ctx, listingSelect+` WHERE l.guild_id = $1 AND l.id = $2`, r.guildID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing %d: %w", id, err)
	}
	return listing, nil
}

// Claim deletes the listing and returns it. Of two concurrent claims only one sees the row.
func (r *ListingRepository) Claim(ctx context.Context, id int64) (*entities.SaleListing, error) {
	query := `
		DELETE FROM sale_listings
		WHERE guild_id = $1 AND id = $2
		RETURNING id, guild_id, user_id, card_id, price, created_at
	`
	var listing entities.SaleListing
	err := r.q.QueryRow(ctx, query, r.guildID, id).Scan(
		&listing.ID,
		&listing.GuildID,
		&listing.UserID,
		&listing.CardID,
		&listing.Price,
		&listing.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to claim listing %d: %w", id, err)
	}
	return &listing, nil
}

// ClaimOwned deletes the listing only when userID is the seller
func (r *ListingRepository) ClaimOwned(ctx context.Context, id int64, userID int64) (*entities.SaleListing, error) {
	query := `
		DELETE FROM sale_listings
		WHERE guild_id = $1 AND id = $2 AND user_id = $3
		RETURNING id, guild_id, user_id, card_id, price, created_at
	`
	var listing entities.SaleListing
	err := r.q.QueryRow(ctx, query, r.guildID, id, userID).Scan(
		&listing.ID,
		&listing.GuildID,
		&listing.UserID,
		&listing.CardID,
		&listing.Price,
		&listing.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to remove listing %d: %w", id, err)
	}
	return &listing, nil
}

// List returns open listings, oldest first
func (r *ListingRepository) List(ctx context.Context, limit int) ([]*entities.SaleListing, error) {
	listings, err := r.queryListings(ctx, listingSelect+` WHERE l.guild_id = $1 ORDER BY l.created_at, l.id LIMIT $2`, r.guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	return listings, nil
}

// ListBySeller returns the seller's open listings
func (r *ListingRepository) ListBySeller(ctx context.Context, userID int64) ([]*entities.SaleListing, error) {
	listings, err := r.queryListings(ctx, listingSelect+` WHERE l.guild_id = $1 AND l.user_id = $2 ORDER BY l.created_at, l.id`, r.guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings of user %d: %w", userID, err)
	}
	return listings, nil
}

// DeleteByCard removes every listing of a card
func (r *ListingRepository) DeleteByCard(ctx context.Context, cardID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM sale_listings WHERE guild_id = $1 AND card_id = $2`, r.guildID, cardID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete listings of card %s: %w", cardID, err)
	}
	return tag.RowsAffected(), nil
}
