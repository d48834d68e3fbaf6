package entities

import (
	"strings"
	"time"
)

const (
	MinTicketNumber = 1
	MaxTicketNumber = 5000

	// WinnerSharePercent is the part of a points pot paid to the winner; the rest goes to the house
	WinnerSharePercent = 95
)

// PrizeType is what a lottery pays out
type PrizeType string

const (
	PrizeTypePoints PrizeType = "points"
	PrizeTypeCard   PrizeType = "card"
)

// ParsePrizeType parses a prize type case-insensitively
func ParsePrizeType(s string) (PrizeType, bool) {
	switch PrizeType(strings.ToLower(strings.TrimSpace(s))) {
	case PrizeTypePoints:
		return PrizeTypePoints, true
	case PrizeTypeCard:
		return PrizeTypeCard, true
	}
	return "", false
}

// Lottery is a numbered-ticket draw whose winning number is fixed at creation
type Lottery struct {
	ID            int64      `db:"id"`
	GuildID       int64      `db:"guild_id"`
	Name          string     `db:"name"`
	PrizeType     PrizeType  `db:"prize_type"`
	CardID        *string    `db:"card_id"`
	TicketPrice   int64      `db:"ticket_price"`
	WinningNumber int        `db:"winning_number"`
	Active        bool       `db:"active"`
	WinnerID      *int64     `db:"winner_id"`
	CreatedAt     time.Time  `db:"created_at"`
	WonAt         *time.Time `db:"won_at"`
}

// IsCardPrize reports whether the lottery awards a card
func (l *Lottery) IsCardPrize() bool {
	return l.PrizeType == PrizeTypeCard
}

// Pot is the total collected from ticketsSold tickets
func (l *Lottery) Pot(ticketsSold int64) int64 {
	return l.TicketPrice * ticketsSold
}

// SplitPot divides a points pot into the winner's and the house's share.
// The winner's share is floored; the house keeps the remainder.
func SplitPot(pot int64) (winner, house int64) {
	winner = pot * WinnerSharePercent / 100
	return winner, pot - winner
}

// IsValidTicketNumber reports whether n may be bought
func IsValidTicketNumber(n int) bool {
	return n >= MinTicketNumber && n <= MaxTicketNumber
}

// LotteryTicket is a purchased number in a lottery
type LotteryTicket struct {
	ID           int64     `db:"id"`
	LotteryID    int64     `db:"lottery_id"`
	GuildID      int64     `db:"guild_id"`
	UserID       int64     `db:"user_id"`
	TicketNumber int       `db:"ticket_number"`
	PurchasedAt  time.Time `db:"purchased_at"`
}

// LotteryInfo summarises a lottery for display
type LotteryInfo struct {
	Lottery     *Lottery
	TicketsSold int64
	Prize       int64 // current points prize; zero for card lotteries
	PrizeCard   *Card
}

// TicketPurchaseResult describes a ticket purchase and whether it won
type TicketPurchaseResult struct {
	Lottery     *Lottery
	Ticket      *LotteryTicket
	NewBalance  int64
	Won         bool
	PointsWon   int64
	HouseShare  int64
	CardWon     *Card
	TicketsSold int64
}
