package entities

import "strings"

// Rarity configures how likely a card is to drop and what burning it pays.
// BurnValue is nil when no burn value has been configured.
type Rarity struct {
	GuildID   int64   `db:"guild_id"`
	Name      string  `db:"name"`
	Weight    float64 `db:"weight"`
	BurnValue *int64  `db:"burn_value"`
}

// HasBurnValue reports whether burning cards of this rarity is configured
func (r *Rarity) HasBurnValue() bool {
	return r.BurnValue != nil
}

// DefaultRarities returns the rarity table every guild starts with
func DefaultRarities(guildID int64) []*Rarity {
	burn := func(v int64) *int64 { return &v }
	return []*Rarity{
		{GuildID: guildID, Name: "Common", Weight: 1.0, BurnValue: burn(10)},
		{GuildID: guildID, Name: "Uncommon", Weight: 0.5, BurnValue: burn(20)},
		{GuildID: guildID, Name: "Rare", Weight: 0.2, BurnValue: burn(50)},
		{GuildID: guildID, Name: "Legendary", Weight: 0.01, BurnValue: burn(100)},
	}
}

// RarityWeights maps lowercased rarity names to weights
type RarityWeights map[string]float64

// NewRarityWeights indexes rarities for case-insensitive lookup
func NewRarityWeights(rarities []*Rarity) RarityWeights {
	weights := make(RarityWeights, len(rarities))
	for _, r := range rarities {
		weights[strings.ToLower(r.Name)] = r.Weight
	}
	return weights
}

// WeightOf returns the configured weight of a rarity, or 1 if it is unknown
func (w RarityWeights) WeightOf(rarity string) float64 {
	if weight, ok := w[strings.ToLower(rarity)]; ok {
		return weight
	}
	return 1
}
