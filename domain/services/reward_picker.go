package services

import (
	"math/rand/v2"

	"cardbot/domain/entities"
)

// RandomSource is the randomness a RewardPicker draws from. *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }
func (globalSource) IntN(n int) int   { return rand.IntN(n) }

// RewardPicker draws event rewards weighted by rarity
type RewardPicker struct {
	rng RandomSource
}

// NewRewardPicker creates a picker. A nil source uses the shared global generator.
func NewRewardPicker(rng RandomSource) *RewardPicker {
	if rng == nil {
		rng = globalSource{}
	}
	return &RewardPicker{rng: rng}
}

// PickIndex returns a uniform index in [0, n)
func (p *RewardPicker) PickIndex(n int) int {
	if n <= 1 {
		return 0
	}
	return p.rng.IntN(n)
}

// Pick draws one card with probability proportional to its rarity weight among the
// candidates. Unknown rarities weigh 1 and an all-zero field falls back to uniform.
func (p *RewardPicker) Pick(cards []*entities.Card, weights entities.RarityWeights) *entities.Card {
	switch len(cards) {
	case 0:
		return nil
	case 1:
		return cards[0]
	}

	cardWeights := make([]float64, len(cards))
	var total float64
	for i, card := range cards {
		w := weights.WeightOf(card.Rarity)
		if w < 0 {
			w = 0
		}
		cardWeights[i] = w
		total += w
	}

	if total <= 0 {
		return cards[p.rng.IntN(len(cards))]
	}

	target := p.rng.Float64() * total
	var cumulative float64
	last := 0
	for i, w := range cardWeights {
		if w == 0 {
			continue
		}
		cumulative += w
		last = i
		if target < cumulative {
			return cards[i]
		}
	}
	// Float rounding can leave target at the very top of the range
	return cards[last]
}
