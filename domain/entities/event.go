package entities

import (
	"fmt"
	"strings"
	"time"
)

// Event is a claimable reward with a per-user cooldown
type Event struct {
	GuildID       int64     `db:"guild_id"`
	Name          string    `db:"name"`
	PointReward   int64     `db:"point_reward"`
	CooldownHours int       `db:"cooldown_hours"`
	SetIDs        []int64   `db:"set_ids"`
	CreatedAt     time.Time `db:"created_at"`
}

// Cooldown returns the cooldown as a duration
func (e *Event) Cooldown() time.Duration {
	return time.Duration(e.CooldownHours) * time.Hour
}

// HasCardReward reports whether claiming the event can award a card
func (e *Event) HasCardReward() bool {
	return len(e.SetIDs) > 0
}

// Validate checks reward and cooldown bounds
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("event name cannot be empty")
	}
	if e.PointReward < 0 {
		return fmt.Errorf("point reward cannot be negative")
	}
	if e.CooldownHours <= 0 {
		return fmt.Errorf("cooldown must be positive")
	}
	return nil
}

// EventClaim records when a user last claimed an event
type EventClaim struct {
	GuildID   int64     `db:"guild_id"`
	UserID    int64     `db:"user_id"`
	EventName string    `db:"event_name"`
	LastClaim time.Time `db:"last_claim"`
}

// Remaining returns how long until the claim may be repeated, or zero
func (c *EventClaim) Remaining(cooldown time.Duration, now time.Time) time.Duration {
	left := c.LastClaim.Add(cooldown).Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// CooldownUnit is the unit an administrator enters a cooldown in
type CooldownUnit string

const (
	CooldownUnitHours  CooldownUnit = "hours"
	CooldownUnitDays   CooldownUnit = "days"
	CooldownUnitMonths CooldownUnit = "months"
)

// ToHours converts amount of unit into hours. A month counts as 30 days.
func (u CooldownUnit) ToHours(amount int) (int, error) {
	switch u {
	case CooldownUnitHours:
		return amount, nil
	case CooldownUnitDays:
		return amount * 24, nil
	case CooldownUnitMonths:
		return amount * 24 * 30, nil
	default:
		return 0, fmt.Errorf("unknown cooldown unit %q", string(u))
	}
}

// EventClaimResult describes what a successful claim awarded
type EventClaimResult struct {
	EventName    string
	PointsEarned int64
	NewBalance   int64
	Card         *Card // nil when no card was awarded
	NoCardReason string
}
