package sets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"cardbot/bot/common"
	"cardbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadPreset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/good.json":
			w.Write([]byte(`{"name":"Starter","cards":[{"name":"Sprout","rarity":"Common"}]}`))
		case "/bad.json":
			w.Write([]byte(`{"name":`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	f := NewFeature(nil)
	ctx := context.Background()

	t.Run("valid preset", func(t *testing.T) {
		preset, err := f.downloadPreset(ctx, server.URL+"/good.json")
		require.NoError(t, err)
		assert.Equal(t, "Starter", preset.Name)
		assert.Len(t, preset.Cards, 1)
	})

	t.Run("malformed JSON is a user error", func(t *testing.T) {
		_, err := f.downloadPreset(ctx, server.URL+"/bad.json")
		var botErr *common.BotError
		require.ErrorAs(t, err, &botErr)
		assert.False(t, botErr.IsSystem())
	})

	t.Run("failed download is a system error", func(t *testing.T) {
		_, err := f.downloadPreset(ctx, server.URL+"/missing.json")
		var botErr *common.BotError
		require.ErrorAs(t, err, &botErr)
		assert.True(t, botErr.IsSystem())
	})
}

func TestSetDetailEmbed(t *testing.T) {
	detail := &entities.CardSetDetail{
		Set:   &entities.CardSet{Name: "Starter", Description: "First cards", IsPreset: true},
		Cards: []*entities.Card{{CardID: "00000001", Name: "Sprout", Rarity: "Common"}},
	}

	embed := setDetailEmbed(detail)
	assert.Equal(t, "📚 Starter (preset)", embed.Title)
	assert.Equal(t, "First cards\n\n`00000001` **Sprout** (Common)", embed.Description)
	assert.Equal(t, "1 cards", embed.Footer.Text)
}

func TestSetPatch(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.True(t, setPatch(common.Options{}).IsEmpty())
	})

	t.Run("name and description", func(t *testing.T) {
		opts := common.Options{
			"new_name":    {Name: "new_name", Type: discordgo.ApplicationCommandOptionString, Value: "Core"},
			"description": {Name: "description", Type: discordgo.ApplicationCommandOptionString, Value: ""},
		}
		patch := setPatch(opts)
		require.NotNil(t, patch.Name)
		require.NotNil(t, patch.Description)
		assert.Equal(t, "Core", *patch.Name)
		assert.Empty(t, *patch.Description)
	})
}

func TestExportFileName(t *testing.T) {
	assert.Equal(t, "starter_pack.json", exportFileName("Starter Pack"))
	assert.Equal(t, "v2-cards.json", exportFileName("V2-Cards!"))
	assert.Equal(t, "set.json", exportFileName("✨✨"))
}

func TestExportEmbed(t *testing.T) {
	embed := exportEmbed(&entities.PresetSet{Name: "Base", Cards: make([]entities.PresetCard, 3)})
	assert.Contains(t, embed.Description, "**Base** with 3 cards")
}
