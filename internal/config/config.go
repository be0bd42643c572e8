package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything the server needs, loaded from config.yaml and
// GAMETRACKER_* environment variables.
type Config struct {
	Port         string `mapstructure:"port"`
	DatabasePath string `mapstructure:"database_path"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // "text" or "json"

	// AdminPassword gates every mutating endpoint. Hashed at startup; the
	// plaintext never leaves this struct after that.
	AdminPassword string `mapstructure:"admin_password"`

	SteamAPIKey string `mapstructure:"steam_api_key"`
	SteamUserID string `mapstructure:"steam_user_id"` // 64-bit SteamID

	// CORSOrigins is empty for same-origin deployments; set it when the
	// browser client is served from a different host.
	CORSOrigins []string `mapstructure:"cors_origins"`

	// SnapshotHour is the local hour (0-23) after which the daily playtime
	// snapshot may be recorded.
	SnapshotHour int `mapstructure:"snapshot_hour"`
}

// Load reads config.yaml from the working directory (or ./config), applies
// defaults, and lets GAMETRACKER_* environment variables override file values
// (e.g. GAMETRACKER_STEAM_API_KEY).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("port", "8080")
	v.SetDefault("database_path", "data/gametracker.db")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("admin_password", "changeme")
	v.SetDefault("snapshot_hour", 3)

	v.SetEnvPrefix("GAMETRACKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// No config file is fine; defaults + env cover everything.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.SnapshotHour < 0 || cfg.SnapshotHour > 23 {
		return nil, fmt.Errorf("snapshot_hour must be 0-23, got %d", cfg.SnapshotHour)
	}

	return &cfg, nil
}

// SteamConfigured reports whether the Steam Web API credentials are present.
func (c *Config) SteamConfigured() bool {
	return c.SteamAPIKey != ""
}
