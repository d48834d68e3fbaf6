package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestSplitPot(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pot, winner, house int64
	}{
		{pot: 0, winner: 0, house: 0},
		{pot: 100, winner: 95, house: 5},
		{pot: 10, winner: 9, house: 1},
		{pot: 1, winner: 0, house: 1},
		{pot: 250, winner: 237, house: 13},
	}
	for _, tt := range tests {
		winner, house := SplitPot(tt.pot)
		assert.Equal(t, tt.winner, winner, "winner share of %d", tt.pot)
		assert.Equal(t, tt.house, house, "house share of %d", tt.pot)
	}
}

func TestSplitPot_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		price := rapid.Int64Range(1, 1_000_000).Draw(rt, "price")
		tickets := rapid.Int64Range(0, MaxTicketNumber).Draw(rt, "tickets")
		pot := (&Lottery{TicketPrice: price}).Pot(tickets)

		winner, house := SplitPot(pot)
		if winner+house != pot {
			rt.Fatalf("shares %d + %d do not add up to pot %d", winner, house, pot)
		}
		if winner < 0 || house < 0 {
			rt.Fatalf("negative share: winner=%d house=%d", winner, house)
		}
		if winner*100 > pot*WinnerSharePercent {
			rt.Fatalf("winner share %d exceeds 95%% of %d", winner, pot)
		}
	})
}

func TestParsePrizeType(t *testing.T) {
	t.Parallel()

	pt, ok := ParsePrizeType(" Points ")
	assert.True(t, ok)
	assert.Equal(t, PrizeTypePoints, pt)

	pt, ok = ParsePrizeType("CARD")
	assert.True(t, ok)
	assert.Equal(t, PrizeTypeCard, pt)

	_, ok = ParsePrizeType("role")
	assert.False(t, ok)
}

func TestIsValidTicketNumber(t *testing.T) {
	t.Parallel()

	assert.False(t, IsValidTicketNumber(0))
	assert.True(t, IsValidTicketNumber(1))
	assert.True(t, IsValidTicketNumber(5000))
	assert.False(t, IsValidTicketNumber(5001))
}
