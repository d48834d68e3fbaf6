package rarity

import (
	"testing"

	"cardbot/domain/entities"

	"github.com/stretchr/testify/assert"
)

func TestRarityChoices(t *testing.T) {
	rarities := entities.DefaultRarities(1)

	all := rarityChoices(rarities, "")
	assert.Len(t, all, 4)

	filtered := rarityChoices(rarities, "COMM")
	if assert.Len(t, filtered, 2) {
		assert.Equal(t, "Common", filtered[0].Value)
		assert.Equal(t, "Uncommon", filtered[1].Value)
	}
}

func TestRarityListEmbed(t *testing.T) {
	embed := rarityListEmbed("Rarities", entities.DefaultRarities(1)[2:3])
	assert.Equal(t, "**Rare**: weight 0.2, burn 50 points", embed.Description)

	assert.Equal(t, "No rarities are configured.", rarityListEmbed("Rarities", nil).Description)
}
