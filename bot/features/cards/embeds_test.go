package cards

import (
	"strings"
	"testing"

	"cardbot/domain/entities"

	"github.com/stretchr/testify/assert"
)

func TestCardChoices(t *testing.T) {
	cards := []*entities.Card{
		{CardID: "00000001", Name: "Phoenix", Rarity: "Rare"},
		{CardID: "00000002", Name: strings.Repeat("x", 120), Rarity: "Common"},
	}

	choices := cardChoices(cards)
	assert.Len(t, choices, 2)
	assert.Equal(t, "Phoenix (Rare) #00000001", choices[0].Name)
	assert.Equal(t, "00000001", choices[0].Value)
	assert.Len(t, []rune(choices[1].Name), 100)
}

func TestCardEmbed(t *testing.T) {
	card := &entities.Card{CardID: "00000003", Name: "Golem", Rarity: "Uncommon", ImageURL: "https://cdn.example/golem.png"}

	embed := cardEmbed("", card)
	assert.Equal(t, "Golem", embed.Title)
	assert.Equal(t, "https://cdn.example/golem.png", embed.Image.URL)
	assert.Equal(t, "`00000003`", embed.Fields[1].Value)

	assert.Nil(t, cardEmbed("Created", &entities.Card{Name: "Plain"}).Image)
}
