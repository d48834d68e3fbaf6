package repository

import (
	"context"
	"errors"
	"fmt"

	"cardbot/domain"
	"cardbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

const eventColumns = `guild_id, name, point_reward, cooldown_hours, set_ids, created_at`

// EventRepository implements the EventRepository interface
type EventRepository struct {
	q       Queryable
	guildID int64
}

// NewEventRepositoryScoped creates a new event repository with a transaction and guild scope
func NewEventRepositoryScoped(tx Queryable, guildID int64) *EventRepository {
	return &EventRepository{
		q:       tx,
		guildID: guildID,
	}
}

func scanEvent(row pgx.Row) (*entities.Event, error) {
	var event entities.Event
	err := row.Scan(
		&event.GuildID,
		&event.Name,
		&event.PointReward,
		&event.CooldownHours,
		&event.SetIDs,
		&event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func setIDsParam(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

// Create inserts a new event
func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	query := `
		INSERT INTO events (guild_id, name, point_reward, cooldown_hours, set_ids)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.q.QueryRow(ctx, query,
		r.guildID,
		event.Name,
		event.PointReward,
		event.CooldownHours,
		setIDsParam(event.SetIDs),
	).Scan(&event.CreatedAt)
	if isUniqueViolation(err) {
		return domain.Invalid("An event named `%s` already exists.", event.Name)
	}
	if err != nil {
		return fmt.Errorf("failed to create event %q: %w", event.Name, err)
	}
	event.GuildID = r.guildID
	return nil
}

// Get retrieves an event by name
func (r *EventRepository) Get(ctx context.Context, name string) (*entities.Event, error) {
	event, err := scanEvent(r.q.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE guild_id = $1 AND name = $2`, r.guildID, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event %q: %w", name, err)
	}
	return event, nil
}

// List returns every event of the guild
func (r *EventRepository) List(ctx context.Context) ([]*entities.Event, error) {
	rows, err := r.q.Query(ctx, `SELECT `+eventColumns+` FROM events WHERE guild_id = $1 ORDER BY name`, r.guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*entities.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// Update saves name, reward, cooldown and reward sets of the event called name
func (r *EventRepository) Update(ctx context.Context, name string, event *entities.Event) error {
	query := `
		UPDATE events
		SET name = $3,
		    point_reward = $4,
		    cooldown_hours = $5,
		    set_ids = $6
		WHERE guild_id = $1 AND name = $2
	`
	tag, err := r.q.Exec(ctx, query, r.guildID, name, event.Name, event.PointReward, event.CooldownHours, setIDsParam(event.SetIDs))
	if isUniqueViolation(err) {
		return domain.Invalid("An event named `%s` already exists.", event.Name)
	}
	if err != nil {
		return fmt.Errorf("failed to update event %q: %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("Event not found.")
	}
	return nil
}

// ResetClaims deletes every claim of an event
func (r *EventRepository) ResetClaims(ctx context.Context, name string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM event_claims WHERE guild_id = $1 AND event_name = $2`, r.guildID, name)
	if err != nil {
		return 0, fmt.Errorf("failed to reset claims of event %q: %w", name, err)
	}
	return tag.RowsAffected(), nil
}

// Delete removes an event together with its claims
func (r *EventRepository) Delete(ctx context.Context, name string) (bool, error) {
	if _, err := r.ResetClaims(ctx, name); err != nil {
		return false, err
	}

	tag, err := r.q.Exec(ctx, `DELETE FROM events WHERE guild_id = $1 AND name = $2`, r.guildID, name)
	if err != nil {
		return false, fmt.Errorf("failed to delete event %q: %w", name, err)
	}
	return tag.RowsAffected() > 0, nil
}

// RemoveSetFromAll drops a set id from the reward sets of every event
func (r *EventRepository) RemoveSetFromAll(ctx context.Context, setID int64) error {
	query := `
		UPDATE events
		SET set_ids = array_remove(set_ids, $2)
		WHERE guild_id = $1 AND $2 = ANY(set_ids)
	`
	if _, err := r.q.Exec(ctx, query, r.guildID, setID); err != nil {
		return fmt.Errorf("failed to remove set %d from events: %w", setID, err)
	}
	return nil
}

// GetClaim returns the user's last claim of an event
func (r *EventRepository) GetClaim(ctx context.Context, userID int64, eventName string) (*entities.EventClaim, error) {
	query := `
		SELECT guild_id, user_id, event_name, last_claim
		FROM event_claims
		WHERE guild_id = $1 AND user_id = $2 AND event_name = $3
	`
	var claim entities.EventClaim
	err := r.q.QueryRow(ctx, query, r.guildID, userID, eventName).Scan(
		&claim.GuildID,
		&claim.UserID,
		&claim.EventName,
		&claim.LastClaim,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get claim of event %q: %w", eventName, err)
	}
	return &claim, nil
}

// UpsertClaim records the time of a claim
func (r *EventRepository) UpsertClaim(ctx context.Context, claim *entities.EventClaim) error {
	query := `
		INSERT INTO event_claims (guild_id, user_id, event_name, last_claim)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (guild_id, user_id, event_name) DO UPDATE
		SET last_claim = EXCLUDED.last_claim
	`
	if _, err := r.q.Exec(ctx, query, r.guildID, claim.UserID, claim.EventName, claim.LastClaim); err != nil {
		return fmt.Errorf("failed to record claim of event %q: %w", claim.EventName, err)
	}
	claim.GuildID = r.guildID
	return nil
}
