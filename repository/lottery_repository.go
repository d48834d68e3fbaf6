package repository

import (
	"context"
	"errors"
	"fmt"

	"cardbot/domain"
	"cardbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

const lotteryColumns = `id, guild_id, name, prize_type, card_id, ticket_price, winning_number, active, winner_id, created_at, won_at`

// LotteryRepository implements the LotteryRepository interface
type LotteryRepository struct {
	q       Queryable
	guildID int64
}

// NewLotteryRepositoryScoped creates a new lottery repository with a transaction and guild scope
func NewLotteryRepositoryScoped(tx Queryable, guildID int64) *LotteryRepository {
	return &LotteryRepository{
		q:       tx,
		guildID: guildID,
	}
}

func scanLottery(row pgx.Row) (*entities.Lottery, error) {
	var lottery entities.Lottery
	var prizeType string
	err := row.Scan(
		&lottery.ID,
		&lottery.GuildID,
		&lottery.Name,
		&prizeType,
		&lottery.CardID,
		&lottery.TicketPrice,
		&lottery.WinningNumber,
		&lottery.Active,
		&lottery.WinnerID,
		&lottery.CreatedAt,
		&lottery.WonAt,
	)
	if err != nil {
		return nil, err
	}
	lottery.PrizeType = entities.PrizeType(prizeType)
	return &lottery, nil
}

// Create inserts a new lottery
func (r *LotteryRepository) Create(ctx context.Context, lottery *entities.Lottery) error {
	query := `
		INSERT INTO lotteries (guild_id, name, prize_type, card_id, ticket_price, winning_number)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, active, created_at
	`
	err := r.q.QueryRow(ctx, query,
		r.guildID,
		lottery.Name,
		string(lottery.PrizeType),
		lottery.CardID,
		lottery.TicketPrice,
		lottery.WinningNumber,
	).Scan(&lottery.ID, &lottery.Active, &lottery.CreatedAt)
	if isUniqueViolation(err) {
		return domain.Invalid("A lottery named `%s` is already running.", lottery.Name)
	}
	if err != nil {
		return fmt.Errorf("failed to create lottery %q: %w", lottery.Name, err)
	}
	lottery.GuildID = r.guildID
	return nil
}

// GetActiveByName retrieves the active lottery with the given name
func (r *LotteryRepository) GetActiveByName(ctx context.Context, name string) (*entities.Lottery, error) {
	query := `
		SELECT ` + lotteryColumns + `
		FROM lotteries
		WHERE guild_id = $1 AND LOWER(name) = LOWER($2) AND active
	`
	lottery, err := scanLottery(r.q.QueryRow(ctx, query, r.guildID, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lottery %q: %w", name, err)
	}
	return lottery, nil
}

// ListActive returns every active lottery of the guild
func (r *LotteryRepository) ListActive(ctx context.Context) ([]*entities.Lottery, error) {
	query := `
		SELECT ` + lotteryColumns + `
		FROM lotteries
		WHERE guild_id = $1 AND active
		ORDER BY created_at
	`
	rows, err := r.q.Query(ctx, query, r.guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lotteries: %w", err)
	}
	defer rows.Close()

	var lotteries []*entities.Lottery
	for rows.Next() {
		lottery, err := scanLottery(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lottery: %w", err)
		}
		lotteries = append(lotteries, lottery)
	}
	return lotteries, rows.Err()
}

// Deactivate closes the lottery if it is still active
func (r *LotteryRepository) Deactivate(ctx context.Context, lotteryID int64, winnerID int64) (bool, error) {
	query := `
		UPDATE lotteries
		SET active = FALSE,
		    winner_id = $3,
		    won_at = NOW()
		WHERE guild_id = $1 AND id = $2 AND active
	`
	tag, err := r.q.Exec(ctx, query, r.guildID, lotteryID, winnerID)
	if err != nil {
		return false, fmt.Errorf("failed to deactivate lottery %d: %w", lotteryID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes a lottery; tickets cascade
func (r *LotteryRepository) Delete(ctx context.Context, lotteryID int64) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM lotteries WHERE guild_id = $1 AND id = $2`, r.guildID, lotteryID)
	if err != nil {
		return false, fmt.Errorf("failed to delete lottery %d: %w", lotteryID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// CreateTicket inserts a ticket unless its number is already taken
func (r *LotteryRepository) CreateTicket(ctx context.Context, ticket *entities.LotteryTicket) (bool, error) {
	query := `
		INSERT INTO lottery_tickets (lottery_id, guild_id, user_id, ticket_number)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (lottery_id, ticket_number) DO NOTHING
		RETURNING id, purchased_at
	`
	err := r.q.QueryRow(ctx, query, ticket.LotteryID, r.guildID, ticket.UserID, ticket.TicketNumber).Scan(&ticket.ID, &ticket.PurchasedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to create ticket %d for lottery %d: %w", ticket.TicketNumber, ticket.LotteryID, err)
	}
	ticket.GuildID = r.guildID
	return true, nil
}

// CountTickets returns the number of tickets sold
func (r *LotteryRepository) CountTickets(ctx context.Context, lotteryID int64) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM lottery_tickets WHERE guild_id = $1 AND lottery_id = $2`, r.guildID, lotteryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count tickets of lottery %d: %w", lotteryID, err)
	}
	return count, nil
}

// GetTicketNumbersByUser returns the user's ticket numbers in ascending order
func (r *LotteryRepository) GetTicketNumbersByUser(ctx context.Context, lotteryID int64, userID int64) ([]int, error) {
	query := `
		SELECT ticket_number
		FROM lottery_tickets
		WHERE guild_id = $1 AND lottery_id = $2 AND user_id = $3
		ORDER BY ticket_number
	`
	rows, err := r.q.Query(ctx, query, r.guildID, lotteryID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tickets of user %d: %w", userID, err)
	}
	defer rows.Close()

	var numbers []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to scan ticket number: %w", err)
		}
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}
