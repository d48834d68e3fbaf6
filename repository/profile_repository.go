package repository

import (
	"context"
	"errors"
	"fmt"

	"cardbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

// ProfileRepository implements the ProfileRepository interface
type ProfileRepository struct {
	q       Queryable
	guildID int64
}

// NewProfileRepositoryScoped creates a new profile repository with a transaction and guild scope
func NewProfileRepositoryScoped(tx Queryable, guildID int64) *ProfileRepository {
	return &ProfileRepository{
		q:       tx,
		guildID: guildID,
	}
}

// Get returns the user's profile or nil
func (r *ProfileRepository) Get(ctx context.Context, userID int64) (*entities.Profile, error) {
	query := `
		SELECT guild_id, user_id, bio, favourite_card_id, searching_for, updated_at
		FROM user_profiles
		WHERE guild_id = $1 AND user_id = $2
	`
	var profile entities.Profile
	err := r.q.QueryRow(ctx, query, r.guildID, userID).Scan(
		&profile.GuildID,
		&profile.UserID,
		&profile.Bio,
		&profile.FavouriteCardID,
		&profile.SearchingFor,
		&profile.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile of user %d: %w", userID, err)
	}
	return &profile, nil
}

// Upsert creates or replaces the user's profile
func (r *ProfileRepository) Upsert(ctx context.Context, profile *entities.Profile) error {
	query := `
		INSERT INTO user_profiles (guild_id, user_id, bio, favourite_card_id, searching_for)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (guild_id, user_id) DO UPDATE
		SET bio = EXCLUDED.bio,
		    favourite_card_id = EXCLUDED.favourite_card_id,
		    searching_for = EXCLUDED.searching_for,
		    updated_at = NOW()
		RETURNING updated_at
	`
	err := r.q.QueryRow(ctx, query,
		r.guildID,
		profile.UserID,
		profile.Bio,
		profile.FavouriteCardID,
		profile.SearchingFor,
	).Scan(&profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save profile of user %d: %w", profile.UserID, err)
	}
	profile.GuildID = r.guildID
	return nil
}

// ClearFavouriteCard unsets a card as anyone's favourite
func (r *ProfileRepository) ClearFavouriteCard(ctx context.Context, cardID string) error {
	query := `UPDATE user_profiles SET favourite_card_id = NULL WHERE guild_id = $1 AND favourite_card_id = $2`
	if _, err := r.q.Exec(ctx, query, r.guildID, cardID); err != nil {
		return fmt.Errorf("failed to clear favourite card %s: %w", cardID, err)
	}
	return nil
}
