package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRarities(t *testing.T) {
	t.Parallel()

	rarities := DefaultRarities(7)
	require.Len(t, rarities, 4)

	want := map[string]struct {
		weight float64
		burn   int64
	}{
		"Common":    {1.0, 10},
		"Uncommon":  {0.5, 20},
		"Rare":      {0.2, 50},
		"Legendary": {0.01, 100},
	}
	for _, r := range rarities {
		w, ok := want[r.Name]
		require.True(t, ok, r.Name)
		assert.Equal(t, int64(7), r.GuildID)
		assert.Equal(t, w.weight, r.Weight)
		require.True(t, r.HasBurnValue())
		assert.Equal(t, w.burn, *r.BurnValue)
	}
}

func TestRarityWeights_WeightOf(t *testing.T) {
	t.Parallel()

	weights := NewRarityWeights([]*Rarity{
		{Name: "Rare", Weight: 0.2},
		{Name: "Cursed", Weight: 0},
	})

	assert.Equal(t, 0.2, weights.WeightOf("rare"))
	assert.Equal(t, 0.2, weights.WeightOf("RARE"))
	assert.Equal(t, 0.0, weights.WeightOf("Cursed"))
	assert.Equal(t, 1.0, weights.WeightOf("Mythic"))
	assert.Equal(t, 1.0, weights.WeightOf(""))
}
