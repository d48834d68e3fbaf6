package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCooldownUnit_ToHours(t *testing.T) {
	t.Parallel()

	tests := []struct {
		unit   CooldownUnit
		amount int
		want   int
	}{
		{CooldownUnitHours, 5, 5},
		{CooldownUnitDays, 2, 48},
		{CooldownUnitMonths, 1, 720},
	}
	for _, tt := range tests {
		got, err := tt.unit.ToHours(tt.amount)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, string(tt.unit))
	}

	_, err := CooldownUnit("weeks").ToHours(1)
	assert.Error(t, err)
}

func TestEventClaim_Remaining(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	claim := &EventClaim{LastClaim: now.Add(-90 * time.Minute)}

	assert.Equal(t, 30*time.Minute, claim.Remaining(2*time.Hour, now))
	assert.Equal(t, time.Duration(0), claim.Remaining(time.Hour, now))
}

func TestEvent_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, (&Event{Name: "daily", CooldownHours: 24}).Validate())
	assert.Error(t, (&Event{Name: "daily", CooldownHours: 0}).Validate())
	assert.Error(t, (&Event{Name: "daily", CooldownHours: 1, PointReward: -1}).Validate())
	assert.Error(t, (&Event{Name: " ", CooldownHours: 1}).Validate())
}
