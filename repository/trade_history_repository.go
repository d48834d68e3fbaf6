package repository

import (
	"context"
	"fmt"

	"cardbot/domain/entities"
)

// TradeHistoryRepository implements the TradeHistoryRepository interface
type TradeHistoryRepository struct {
	q       Queryable
	guildID int64
}

// NewTradeHistoryRepositoryScoped creates a new trade history repository with a transaction and guild scope
func NewTradeHistoryRepositoryScoped(tx Queryable, guildID int64) *TradeHistoryRepository {
	return &TradeHistoryRepository{
		q:       tx,
		guildID: guildID,
	}
}

// Record appends a settled trade
func (r *TradeHistoryRepository) Record(ctx context.Context, record *entities.TradeRecord) error {
	query := `
		INSERT INTO trade_history (
			guild_id, initiator_id, recipient_id,
			initiator_card_id, recipient_card_id,
			initiator_card_name, recipient_card_name
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.q.QueryRow(ctx, query,
		r.guildID,
		record.InitiatorID,
		record.RecipientID,
		record.InitiatorCardID,
		record.RecipientCardID,
		record.InitiatorCardName,
		record.RecipientCardName,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record trade: %w", err)
	}
	record.GuildID = r.guildID
	return nil
}

// ListByUser returns the user's most recent trades, newest first
func (r *TradeHistoryRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*entities.TradeRecord, error) {
	query := `
		SELECT id, guild_id, initiator_id, recipient_id,
		       initiator_card_id, recipient_card_id,
		       initiator_card_name, recipient_card_name, created_at
		FROM trade_history
		WHERE guild_id = $1 AND (initiator_id = $2 OR recipient_id = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3
	`
	rows, err := r.q.Query(ctx, query, r.guildID, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades of user %d: %w", userID, err)
	}
	defer rows.Close()

	var records []*entities.TradeRecord
	for rows.Next() {
		var rec entities.TradeRecord
		err := rows.Scan(
			&rec.ID,
			&rec.GuildID,
			&rec.InitiatorID,
			&rec.RecipientID,
			&rec.InitiatorCardID,
			&rec.RecipientCardID,
			&rec.InitiatorCardName,
			&rec.RecipientCardName,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
