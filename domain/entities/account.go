package entities

import "time"

// Account holds a user's point balance within a guild
type Account struct {
	GuildID      int64     `db:"guild_id"`
	UserID       int64     `db:"user_id"`
	Balance      int64     `db:"balance"`
	MessageCount int64     `db:"message_count"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// LeaderboardEntry is one ranked row of the balance leaderboard
type LeaderboardEntry struct {
	Rank    int
	UserID  int64
	Balance int64
}
