package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Jobs.AlertMatchIntervalMinutes)
	assert.Equal(t, 5, cfg.Jobs.RankingRefreshIntervalMinutes)
	assert.Equal(t, 60, cfg.Jobs.SessionSweepIntervalMinutes)
	assert.Equal(t, 30, cfg.Jobs.SessionRetentionDays)
	assert.Equal(t, 24, cfg.Jobs.AlertLookbackHours)
	assert.Equal(t, 25, cfg.Storage.MaxDeckSizeMB)
	assert.Equal(t, 15, cfg.Storage.PresignExpiryMinutes)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[jobs]
alert_match_interval_minutes = 10
session_retention_days = 7

[billing]
seat_price_id = "price_seat"
ultra_price_id = "price_ultra"

[storage]
max_deck_size_mb = 50
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Jobs.AlertMatchIntervalMinutes)
	assert.Equal(t, 7, cfg.Jobs.SessionRetentionDays)
	assert.Equal(t, "price_seat", cfg.Billing.SeatPriceID)
	assert.Equal(t, "price_ultra", cfg.Billing.UltraPriceID)
	assert.Equal(t, 50, cfg.Storage.MaxDeckSizeMB)

	// Unset values still get defaults.
	assert.Equal(t, 5, cfg.Jobs.RankingRefreshIntervalMinutes)
	assert.Equal(t, 15, cfg.Storage.PresignExpiryMinutes)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load("/nonexistent/config.toml")
	assert.Error(t, err)
}
