package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedgerErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"not found", NotFound("Card %q not found.", "Pikachu"), ErrNotFound},
		{"insufficient", Insufficient("You do not have enough points."), ErrInsufficient},
		{"config missing", ConfigMissing("Burn value not configured for rarity `%s`", "Mythic"), ErrConfigMissing},
		{"unavailable", Unavailable("This card is no longer available."), ErrUnavailable},
		{"invalid", Invalid("Price must be greater than 0."), ErrInvalid},
		{"cooldown", Cooldown("wait 2 hours"), ErrCooldown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.kind)

			// Kinds survive wrapping by repositories and services
			wrapped := fmt.Errorf("failed to settle: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.kind)

			msg, ok := UserMessage(wrapped)
			assert.True(t, ok)
			assert.Equal(t, tt.err.Error(), msg)
		})
	}
}

func TestLedgerErrorMessage(t *testing.T) {
	err := ConfigMissing("Burn value not configured for rarity `%s`", "Mythic")
	assert.Equal(t, "Burn value not configured for rarity `Mythic`", err.Error())
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestUserMessageSystemError(t *testing.T) {
	_, ok := UserMessage(errors.New("connection reset"))
	assert.False(t, ok)
}
