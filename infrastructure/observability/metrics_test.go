package observability

import (
	"context"
	"testing"

	"cardbot/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsProvider_Initialize(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		cfg := config.NewTestConfig()
		mp := NewMetricsProvider(cfg)

		require.NoError(t, mp.Initialize(ctx))
		assert.False(t, mp.Enabled())
		assert.NoError(t, mp.Shutdown(ctx))
	})

	t.Run("enabled without exporter", func(t *testing.T) {
		cfg := config.NewTestConfig()
		cfg.OTelEnabled = true
		cfg.OTelExporterType = "none"
		mp := NewMetricsProvider(cfg)

		require.NoError(t, mp.Initialize(ctx))
		assert.False(t, mp.Enabled())
	})

	t.Run("unknown exporter", func(t *testing.T) {
		cfg := config.NewTestConfig()
		cfg.OTelEnabled = true
		cfg.OTelExporterType = "carrier-pigeon"
		mp := NewMetricsProvider(cfg)

		assert.ErrorContains(t, mp.Initialize(ctx), "unknown exporter type")
	})

	t.Run("console exporter", func(t *testing.T) {
		cfg := config.NewTestConfig()
		cfg.OTelEnabled = true
		cfg.OTelExporterType = "console"
		mp := NewMetricsProvider(cfg)

		require.NoError(t, mp.Initialize(ctx))
		assert.True(t, mp.Enabled())
		require.NoError(t, mp.Initialize(ctx))
		assert.NoError(t, mp.Shutdown(ctx))
	})
}
