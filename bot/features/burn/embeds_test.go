package burn

import (
	"testing"

	"cardbot/domain/entities"

	"github.com/stretchr/testify/assert"
)

func TestBurnEmbed(t *testing.T) {
	embed := burnEmbed(&entities.BurnResult{
		Card:         &entities.Card{CardID: "00000004", Name: "Ember", Rarity: "Rare"},
		PointsEarned: 50,
		NewBalance:   1050,
		Remaining:    0,
	})

	assert.Equal(t, "Burned `00000004` **Ember** (Rare) for **50 points**.", embed.Description)
	assert.Equal(t, "1,050", embed.Fields[0].Value)
	assert.Equal(t, "0", embed.Fields[1].Value)
}
