package repository

import (
	"context"
	"errors"
	"fmt"

	"cardbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

// AccountRepository implements the AccountRepository interface
type AccountRepository struct {
	q       Queryable
	guildID int64
}

// NewAccountRepositoryScoped creates a new account repository with a transaction and guild scope
func NewAccountRepositoryScoped(tx Queryable, guildID int64) *AccountRepository {
	return &AccountRepository{
		q:       tx,
		guildID: guildID,
	}
}

// Get retrieves an account in the current guild
func (r *AccountRepository) Get(ctx context.Context, userID int64) (*entities.Account, error) {
	query := `
		SELECT guild_id, user_id, balance, message_count, created_at, updated_at
		FROM accounts
		WHERE guild_id = $1 AND user_id = $2
	`

	var account entities.Account
	err := r.q.QueryRow(ctx, query, r.guildID, userID).Scan(
		&account.GuildID,
		&account.UserID,
		&account.Balance,
		&account.MessageCount,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d in guild %d: %w", userID, r.guildID, err)
	}
	return &account, nil
}

// Credit adds amount to the balance, creating the account on first use
func (r *AccountRepository) Credit(ctx context.Context, userID int64, amount int64) (int64, error) {
	query := `
		INSERT INTO accounts (guild_id, user_id, balance)
		VALUES ($1, $2, $3)
		ON CONFLICT (guild_id, user_id) DO UPDATE
		SET balance = accounts.balance + EXCLUDED.balance,
		    updated_at = NOW()
		RETURNING balance
	`

	var balance int64
	if err := r.q.QueryRow(ctx, query, r.guildID, userID, amount).Scan(&balance); err != nil {
		return 0, fmt.Errorf("failed to credit account %d in guild %d: %w", userID, r.guildID, err)
	}
	return balance, nil
}

// Debit subtracts amount in one conditional update so the balance can never go negative
func (r *AccountRepository) Debit(ctx context.Context, userID int64, amount int64) (int64, bool, error) {
	query := `
		UPDATE accounts
		SET balance = balance - $3,
		    updated_at = NOW()
		WHERE guild_id = $1 AND user_id = $2 AND balance >= $3
		RETURNING balance
	`

	var balance int64
	err := r.q.QueryRow(ctx, query, r.guildID, userID, amount).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to debit account %d in guild %d: %w", userID, r.guildID, err)
	}
	return balance, true, nil
}

// IncrementMessageCount bumps the counter and wraps it to zero at threshold
func (r *AccountRepository) IncrementMessageCount(ctx context.Context, userID int64, threshold int) (bool, error) {
	if threshold <= 0 {
		return false, nil
	}

	query := `
		INSERT INTO accounts (guild_id, user_id, message_count)
		VALUES ($1, $2, CASE WHEN 1 >= $3 THEN 0 ELSE 1 END)
		ON CONFLICT (guild_id, user_id) DO UPDATE
		SET message_count = CASE
		        WHEN accounts.message_count + 1 >= $3 THEN 0
		        ELSE accounts.message_count + 1
		    END,
		    updated_at = NOW()
		RETURNING message_count
	`

	var count int64
	if err := r.q.QueryRow(ctx, query, r.guildID, userID, threshold).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count message for %d in guild %d: %w", userID, r.guildID, err)
	}
	return count == 0, nil
}

// TopBalances returns the guild's richest accounts
func (r *AccountRepository) TopBalances(ctx context.Context, limit int) ([]*entities.LeaderboardEntry, error) {
	query := `
		SELECT user_id, balance
		FROM accounts
		WHERE guild_id = $1 AND balance > 0
		ORDER BY balance DESC, user_id
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, r.guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard for guild %d: %w", r.guildID, err)
	}
	defer rows.Close()

	var entries []*entities.LeaderboardEntry
	for rows.Next() {
		entry := &entities.LeaderboardEntry{Rank: len(entries) + 1}
		if err := rows.Scan(&entry.UserID, &entry.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
