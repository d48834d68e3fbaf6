package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("DISCORD_TOKEN", "token")
		t.Setenv("DATABASE_URL", "postgres://localhost:5432")
		t.Setenv("TRADE_OFFER_TTL", "")
		t.Setenv("DASHBOARD_ADDR", "")
		t.Setenv("HOUSE_USER_ID", "1")
		t.Setenv("OTEL_ENABLED", "")
		t.Setenv("OTEL_EXPORTER_TYPE", "")
		t.Setenv("OTEL_EXPORT_INTERVAL_MS", "")

		cfg, err := load()
		require.NoError(t, err)
		assert.Equal(t, 12*time.Hour, cfg.TradeOfferTTL)
		assert.Equal(t, ":8080", cfg.DashboardAddr)
		assert.Equal(t, int64(1), cfg.HouseUserID)
		assert.True(t, cfg.IsProduction())
		assert.False(t, cfg.OTelEnabled)
		assert.Equal(t, "none", cfg.OTelExporterType)
		assert.Equal(t, 60000, cfg.OTelExportIntervalMillis)
	})

	t.Run("telemetry", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "test")
		t.Setenv("TRADE_OFFER_TTL", "")
		t.Setenv("HOUSE_USER_ID", "")
		t.Setenv("OTEL_ENABLED", "true")
		t.Setenv("OTEL_EXPORTER_TYPE", "otlp")
		t.Setenv("OTEL_EXPORT_INTERVAL_MS", "5000")

		cfg, err := load()
		require.NoError(t, err)
		assert.True(t, cfg.OTelEnabled)
		assert.Equal(t, "otlp", cfg.OTelExporterType)
		assert.Equal(t, 5000, cfg.OTelExportIntervalMillis)
	})

	t.Run("bad telemetry interval", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "test")
		t.Setenv("TRADE_OFFER_TTL", "")
		t.Setenv("HOUSE_USER_ID", "")
		t.Setenv("OTEL_EXPORT_INTERVAL_MS", "soon")

		_, err := load()
		assert.ErrorContains(t, err, "OTEL_EXPORT_INTERVAL_MS")
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "development")
		t.Setenv("DISCORD_TOKEN", "token")
		t.Setenv("DATABASE_URL", "postgres://localhost:5432")
		t.Setenv("DATABASE_NAME", "cards")
		t.Setenv("TRADE_OFFER_TTL", "30m")
		t.Setenv("HOUSE_USER_ID", "123456789")

		cfg, err := load()
		require.NoError(t, err)
		assert.Equal(t, 30*time.Minute, cfg.TradeOfferTTL)
		assert.Equal(t, int64(123456789), cfg.HouseUserID)
		assert.Equal(t, "postgres://localhost:5432/cards?sslmode=disable", cfg.GetDatabaseURL())
	})

	t.Run("missing house account", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("DISCORD_TOKEN", "token")
		t.Setenv("DATABASE_URL", "postgres://localhost:5432")
		t.Setenv("TRADE_OFFER_TTL", "")
		t.Setenv("HOUSE_USER_ID", "")

		_, err := load()
		assert.ErrorContains(t, err, "HOUSE_USER_ID is required")
	})

	t.Run("missing token", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("DISCORD_TOKEN", "")
		t.Setenv("DATABASE_URL", "postgres://localhost:5432")

		_, err := load()
		assert.ErrorContains(t, err, "DISCORD_TOKEN")
	})

	t.Run("bad ttl", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "test")
		t.Setenv("TRADE_OFFER_TTL", "forever")

		_, err := load()
		assert.ErrorContains(t, err, "TRADE_OFFER_TTL")
	})

	t.Run("bad house id", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "test")
		t.Setenv("TRADE_OFFER_TTL", "")
		t.Setenv("HOUSE_USER_ID", "house")

		_, err := load()
		assert.ErrorContains(t, err, "HOUSE_USER_ID")
	})
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("CARDBOT_DOTENV_VALUE=loaded\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("CARDBOT_DOTENV_VALUE") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("CARDBOT_DOTENV_VALUE"))

	// A missing file is not an error
	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}

func TestSetTestConfig(t *testing.T) {
	t.Cleanup(ResetConfig)

	cfg := NewTestConfig()
	cfg.HouseUserID = 42
	SetTestConfig(cfg)

	assert.Equal(t, int64(42), Get().HouseUserID)
}
