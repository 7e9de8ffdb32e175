package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// AppConfig carries the tunable knobs that are not infrastructure
// endpoints: job cadence, billing product mapping, and storage limits.
// Infrastructure addresses come from the environment in cmd/main.go.
type AppConfig struct {
	Jobs    JobsConfig    `toml:"jobs"`
	Billing BillingConfig `toml:"billing"`
	Storage StorageConfig `toml:"storage"`
}

// JobsConfig contains background job intervals in minutes.
type JobsConfig struct {
	AlertMatchIntervalMinutes      int `toml:"alert_match_interval_minutes"`
	RankingRefreshIntervalMinutes  int `toml:"ranking_refresh_interval_minutes"`
	SessionSweepIntervalMinutes    int `toml:"session_sweep_interval_minutes"`
	SessionRetentionDays           int `toml:"session_retention_days"`
	AlertLookbackHours             int `toml:"alert_lookback_hours"`
}

// BillingConfig maps payment-provider price IDs onto tiers and seats.
type BillingConfig struct {
	SeatPriceID  string `toml:"seat_price_id"`
	PlusPriceID  string `toml:"plus_price_id"`
	UltraPriceID string `toml:"ultra_price_id"`
}

// StorageConfig contains pitch-deck upload limits.
type StorageConfig struct {
	MaxDeckSizeMB        int `toml:"max_deck_size_mb"`
	PresignExpiryMinutes int `toml:"presign_expiry_minutes"`
}

// Load reads configuration from a TOML file and applies defaults for
// unset values.
func Load(filename string) (*AppConfig, error) {
	config := &AppConfig{}
	if filename != "" {
		if _, err := toml.DecodeFile(filename, config); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}
	config.applyDefaults()
	return config, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Jobs.AlertMatchIntervalMinutes <= 0 {
		c.Jobs.AlertMatchIntervalMinutes = 30
	}
	if c.Jobs.RankingRefreshIntervalMinutes <= 0 {
		c.Jobs.RankingRefreshIntervalMinutes = 5
	}
	if c.Jobs.SessionSweepIntervalMinutes <= 0 {
		c.Jobs.SessionSweepIntervalMinutes = 60
	}
	if c.Jobs.SessionRetentionDays <= 0 {
		c.Jobs.SessionRetentionDays = 30
	}
	if c.Jobs.AlertLookbackHours <= 0 {
		c.Jobs.AlertLookbackHours = 24
	}
	if c.Storage.MaxDeckSizeMB <= 0 {
		c.Storage.MaxDeckSizeMB = 25
	}
	if c.Storage.PresignExpiryMinutes <= 0 {
		c.Storage.PresignExpiryMinutes = 15
	}
}
