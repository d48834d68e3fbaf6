package testutil

import (
	"cardbot/domain/entities"
)

// CreateTestCard creates an unsaved card with sensible defaults
func CreateTestCard(name, rarity string) *entities.Card {
	return &entities.Card{
		Name:        name,
		Description: "A card used in tests",
		Rarity:      rarity,
		ImageURL:    "https://example.com/" + name + ".png",
	}
}

// CreateTestEvent creates an event with a points reward and a one day cooldown
func CreateTestEvent(name string, points int64, setIDs ...int64) *entities.Event {
	return &entities.Event{
		Name:          name,
		PointReward:   points,
		CooldownHours: 24,
		SetIDs:        setIDs,
	}
}

// CreateTestLottery creates a points lottery with a fixed winning number
func CreateTestLottery(name string, price int64, winningNumber int) *entities.Lottery {
	return &entities.Lottery{
		Name:          name,
		PrizeType:     entities.PrizeTypePoints,
		TicketPrice:   price,
		WinningNumber: winningNumber,
	}
}
