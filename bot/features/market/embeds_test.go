package market

import (
	"testing"

	"cardbot/domain/entities"

	"github.com/stretchr/testify/assert"
)

func TestPurchaseEmbed(t *testing.T) {
	result := &entities.PurchaseResult{
		Listing:      &entities.SaleListing{ID: 3, UserID: 200, CardID: "00000009", Price: 100},
		Card:         &entities.Card{CardID: "00000009", Name: "Kraken", Rarity: "Legendary"},
		BuyerBalance: 0,
	}

	embed := purchaseEmbed(100, result)
	assert.Equal(t, "<@100> bought `00000009` **Kraken** (Legendary) from <@200> for **100 points**.", embed.Description)
	assert.Equal(t, "0", embed.Fields[0].Value)
}

func TestListingsEmbed(t *testing.T) {
	assert.Equal(t, "Nothing is for sale right now.", listingsEmbed(nil, 0).Description)

	embed := listingsEmbed([]*entities.SaleListing{{ID: 1, UserID: 5, Price: 10, CardName: "Imp", CardRarity: "Common"}}, 5)
	assert.Equal(t, "🏪 Listings by <@5>", embed.Title)
	assert.Equal(t, "#1 **Imp** (Common) for 10 points by <@5>", embed.Description)
}
