package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Database — path to the embedded SQLite file. All state is local to the
	// device; there is no remote store.
	DatabasePath string `mapstructure:"DATABASE_PATH"`

	// Business
	// DefaultReorderPoint is the low-stock threshold applied to products that
	// do not set their own.
	DefaultReorderPoint int `mapstructure:"DEFAULT_REORDER_POINT"`

	// Events
	// EventBufferSize is the per-subscriber buffer of the change bus.
	EventBufferSize int `mapstructure:"EVENT_BUFFER_SIZE"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DATABASE_PATH", "data/smartstock.db")
	viper.SetDefault("DEFAULT_REORDER_POINT", 10)
	viper.SetDefault("EVENT_BUFFER_SIZE", 64)

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
