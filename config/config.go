// Package config manages application configuration.
//
// Settings are resolved in priority order: environment variables
// (YTMIX_*), then a ytmix.yaml config file (working directory or
// ~/.config/ytmix/), then defaults. The bootstrap API key is read from
// YOUTUBE_API_KEY.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ytmix/search"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// DataDir is where all persisted JSON files live.
	DataDir string
	// APIKey is the bootstrap API key from the environment.
	APIKey string
	// LogLevel is the logrus level name.
	LogLevel string
	// CacheTTL is the response-cache entry lifetime.
	CacheTTL time.Duration
	// QuotaHorizonDays is how long quota day-buckets are retained.
	QuotaHorizonDays int
	// Search holds the per-run search settings.
	Search search.Config
}

// Load resolves configuration from defaults, config file, and
// environment, then validates it.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("ytmix")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "ytmix"))
	}

	v.SetEnvPrefix("YTMIX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// The config file is optional.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := fromViper(v)

	// The bootstrap credential keeps its historical variable name.
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("YOUTUBE_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	sc := search.DefaultConfig()

	v.SetDefault("data_dir", "data")
	v.SetDefault("log_level", "info")
	v.SetDefault("cache_ttl", "24h")
	v.SetDefault("quota_horizon_days", 30)

	v.SetDefault("search.target_count", sc.TargetCount)
	v.SetDefault("search.min_duration_seconds", sc.MinDurationSeconds)
	v.SetDefault("search.max_duration_seconds", sc.MaxDurationSeconds)
	v.SetDefault("search.min_view_count", sc.MinViewCount)
	v.SetDefault("search.exclude_keywords", sc.ExcludeKeywords)
	v.SetDefault("search.include_keywords", sc.IncludeKeywords)
	v.SetDefault("search.days_back", sc.DaysBack)
	v.SetDefault("search.category_id", sc.CategoryID)
	v.SetDefault("search.region", sc.Region)
	v.SetDefault("search.term_sample", sc.TermSample)
	v.SetDefault("search.min_playlist_size", sc.MinPlaylistSize)
	v.SetDefault("search.min_ad_hoc_results", sc.MinAdHocResults)
	v.SetDefault("search.pace_interval", sc.PaceInterval.String())
	v.SetDefault("search.retry_delay", sc.RetryDelay.String())
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		DataDir:          v.GetString("data_dir"),
		APIKey:           v.GetString("api_key"),
		LogLevel:         v.GetString("log_level"),
		CacheTTL:         v.GetDuration("cache_ttl"),
		QuotaHorizonDays: v.GetInt("quota_horizon_days"),
		Search: search.Config{
			TargetCount:        v.GetInt("search.target_count"),
			MinDurationSeconds: v.GetInt("search.min_duration_seconds"),
			MaxDurationSeconds: v.GetInt("search.max_duration_seconds"),
			MinViewCount:       v.GetUint64("search.min_view_count"),
			ExcludeKeywords:    v.GetStringSlice("search.exclude_keywords"),
			IncludeKeywords:    v.GetStringSlice("search.include_keywords"),
			DaysBack:           v.GetInt("search.days_back"),
			CategoryID:         v.GetString("search.category_id"),
			Region:             v.GetString("search.region"),
			TermSample:         v.GetInt("search.term_sample"),
			MinPlaylistSize:    v.GetInt("search.min_playlist_size"),
			MinAdHocResults:    v.GetInt("search.min_ad_hoc_results"),
			PaceInterval:       v.GetDuration("search.pace_interval"),
			RetryDelay:         v.GetDuration("search.retry_delay"),
		},
	}
}

// Validate checks that configuration values are valid and consistent.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be positive")
	}
	if c.QuotaHorizonDays <= 0 {
		return fmt.Errorf("quota_horizon_days must be positive")
	}
	if c.Search.TargetCount <= 0 {
		return fmt.Errorf("search.target_count must be positive")
	}
	if c.Search.MinDurationSeconds < 0 {
		return fmt.Errorf("search.min_duration_seconds must be non-negative")
	}
	if c.Search.MaxDurationSeconds != 0 && c.Search.MaxDurationSeconds < c.Search.MinDurationSeconds {
		return fmt.Errorf("search.max_duration_seconds must be >= search.min_duration_seconds")
	}
	if c.Search.DaysBack <= 0 {
		return fmt.Errorf("search.days_back must be positive")
	}
	if c.Search.MinPlaylistSize <= 0 {
		return fmt.Errorf("search.min_playlist_size must be positive")
	}
	return nil
}

// UsedVideosPath returns the dedup ledger file path.
func (c *Config) UsedVideosPath() string {
	return filepath.Join(c.DataDir, "used_videos.json")
}

// PlaylistsPath returns the saved-playlists file path.
func (c *Config) PlaylistsPath() string {
	return filepath.Join(c.DataDir, "saved_playlists.json")
}

// CachePath returns the response-cache file path.
func (c *Config) CachePath() string {
	return filepath.Join(c.DataDir, "cache.json")
}

// KeysPath returns the credential-list file path.
func (c *Config) KeysPath() string {
	return filepath.Join(c.DataDir, "api_keys.json")
}

// QuotaPath returns the quota-ledger file path.
func (c *Config) QuotaPath() string {
	return filepath.Join(c.DataDir, "quota_usage.json")
}
