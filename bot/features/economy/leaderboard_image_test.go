package economy

import (
	"bytes"
	"image/png"
	"testing"

	"cardbot/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardImageGenerator_Generate(t *testing.T) {
	entries := []*entities.LeaderboardEntry{
		{Rank: 1, UserID: 1, Balance: 1_500_000},
		{Rank: 2, UserID: 2, Balance: 20_000},
		{Rank: 3, UserID: 3, Balance: 900},
		{Rank: 4, UserID: 4, Balance: 10},
	}
	names := map[int64]string{
		1: "alice",
		2: "a name that is far too long to fit in the column",
	}

	data, err := NewLeaderboardImageGenerator().Generate(entries, names)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 340, img.Bounds().Dx())
	assert.Equal(t, 25+30+4*26+15, img.Bounds().Dy())
}

func TestLeaderboardImageGenerator_MinimumHeight(t *testing.T) {
	data, err := NewLeaderboardImageGenerator().Generate([]*entities.LeaderboardEntry{{Rank: 1, UserID: 9, Balance: 5}}, nil)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dy())
}
