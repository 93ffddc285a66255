package config

import (
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	os.Clearenv()
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Capacity)
	assert.True(t, decimal.NewFromInt(10).Equal(cfg.RatePerHour))
	assert.Equal(t, "parking_Log.txt", cfg.JournalPath)
	assert.Empty(t, cfg.MetricsFile)
	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.NoColor)
	assert.False(t, cfg.OTelEnabled)
	assert.Equal(t, "parking-inventory", cfg.OTelServiceName)
	assert.Equal(t, "http://localhost:4318", cfg.OTelEndpoint)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PARKING_CAPACITY", "12")
	t.Setenv("PARKING_RATE_PER_HOUR", "2.50")
	t.Setenv("PARKING_JOURNAL_PATH", "")
	t.Setenv("PARKING_METRICS_FILE", "/tmp/parking.prom")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("NO_COLOR", "")
	t.Setenv("OTEL_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Capacity)
	assert.Equal(t, "2.5", cfg.RatePerHour.String())
	assert.Empty(t, cfg.JournalPath)
	assert.Equal(t, "/tmp/parking.prom", cfg.MetricsFile)
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.NoColor)
	assert.True(t, cfg.OTelEnabled)
}

func TestInvalidNumericFallsBackToDefault(t *testing.T) {
	t.Setenv("PARKING_CAPACITY", "many")
	t.Setenv("OTEL_ENABLED", "sometimes")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Capacity)
	assert.False(t, cfg.OTelEnabled)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("rate", func(t *testing.T) {
		t.Setenv("PARKING_RATE_PER_HOUR", "ten")
		_, err := Load()
		assert.ErrorContains(t, err, "PARKING_RATE_PER_HOUR")
	})

	t.Run("negative rate", func(t *testing.T) {
		t.Setenv("PARKING_RATE_PER_HOUR", "-1")
		_, err := Load()
		assert.ErrorContains(t, err, "cannot be negative")
	})

	t.Run("capacity", func(t *testing.T) {
		t.Setenv("PARKING_CAPACITY", "0")
		_, err := Load()
		assert.ErrorContains(t, err, "at least 1")
	})
}
