package config

import "github.com/spf13/viper"

// CacheConfig holds settings for the on-disk API response cache.
type CacheConfig struct {
	Path     string `mapstructure:"path"`
	TTLHours int    `mapstructure:"ttl_hours"`
}

// FetchConfig holds settings for talking to the swgoh.gg API.
type FetchConfig struct {
	Workers        int    `mapstructure:"workers"`
	DelayMS        int    `mapstructure:"delay_ms"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
}

// Config holds all runtime configuration for a holotable run.
// Values are populated from .holotable.yaml, HOLOTABLE_* env vars, and CLI flags.
type Config struct {
	MaxGearTier      int         `mapstructure:"max_gear_tier"`
	TrackedSalvage   []string    `mapstructure:"tracked_salvage"`
	RequirementsPath string      `mapstructure:"requirements_path"`
	Verbose          bool        `mapstructure:"verbose"`
	Cache            CacheConfig `mapstructure:"cache"`
	Fetch            FetchConfig `mapstructure:"fetch"`
}

// DefaultTrackedSalvage lists the kyrotech salvage ids tracked when the config
// does not override them.
var DefaultTrackedSalvage = []string{"172Salvage", "173Salvage", "174Salvage"}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() Config {
	viper.SetDefault("max_gear_tier", 13)
	viper.SetDefault("tracked_salvage", DefaultTrackedSalvage)
	viper.SetDefault("requirements_path", "data/platoon_requirements.toml")
	viper.SetDefault("verbose", false)
	viper.SetDefault("cache.path", "data/holotable-cache.db")
	viper.SetDefault("cache.ttl_hours", 1)
	viper.SetDefault("fetch.workers", 4)
	viper.SetDefault("fetch.delay_ms", 1000)
	viper.SetDefault("fetch.timeout_seconds", 30)
	viper.SetDefault("fetch.base_url", "https://swgoh.gg/api")
	viper.SetDefault("fetch.api_key", "")

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
