package config

import (
	"time"

	"stock-quality-engine/internal/scoring/engine"
	"stock-quality-engine/pkg/config"
)

// Scoring holds the batch pipeline configuration.
type Scoring struct {
	// LookbackDays is the calendar length of the price window metrics
	// are computed over.
	LookbackDays int `mapstructure:"lookback_days"`

	// MaxConcurrentAssets bounds the per-asset worker pool.
	MaxConcurrentAssets int `mapstructure:"max_concurrent_assets"`

	// AdjustedMarkets lists the market codes this engine adjusts.
	// Assets outside these markets pass through with their raw score.
	AdjustedMarkets []string `mapstructure:"adjusted_markets"`

	// Cron optionally schedules batch runs in-process. Empty means
	// runs are only triggered externally (stream message or HTTP).
	Cron string `mapstructure:"cron"`

	UpsertMaxRetries   int           `mapstructure:"upsert_max_retries"`
	UpsertRetryBackoff time.Duration `mapstructure:"upsert_retry_backoff"`
	PriceCacheTTL      time.Duration `mapstructure:"price_cache_ttl"`

	RedisStreamTriggerTimeout time.Duration `mapstructure:"redis_stream_trigger_timeout"`

	Engine engine.Config `mapstructure:"engine"`
}

// Config holds the full configuration for the scoring service.
type Config struct {
	App      config.App      `mapstructure:"app"`
	Logger   config.Logger   `mapstructure:"logger"`
	Database config.Database `mapstructure:"database"`
	Redis    config.Redis    `mapstructure:"redis"`
	API      config.API      `mapstructure:"api"`
	Telegram config.Telegram `mapstructure:"telegram"`
	Scoring  Scoring         `mapstructure:"scoring"`
}

// Load loads the scoring service configuration from the given path and
// fills unset values with defaults.
func Load(path string) (*Config, error) {
	cfg := Config{
		Scoring: Scoring{
			LookbackDays:              90,
			MaxConcurrentAssets:       8,
			UpsertMaxRetries:          3,
			UpsertRetryBackoff:        200 * time.Millisecond,
			PriceCacheTTL:             5 * time.Minute,
			RedisStreamTriggerTimeout: 30 * time.Minute,
			Engine:                    engine.DefaultConfig(),
		},
	}
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
