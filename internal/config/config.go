// Package config loads process configuration from the environment
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/logging"
)

// Defaults
const (
	DefaultDatabasePath      = "data/rpg.db"
	DefaultConnectTimeout    = 3 * time.Second
	DefaultHandoffPath       = "temp_player_id.txt"
	DefaultEnemyTurnDelay    = 1200 * time.Millisecond
	DefaultDialogueRuneDelay = 20 * time.Millisecond
	DefaultPreviewTTL        = 15 * time.Minute
)

// Config holds all application configuration
type Config struct {
	Storage StorageConfig
	Redis   RedisConfig
	Game    GameConfig
	Log     LogConfig
	Handoff string
}

// StorageConfig holds the SQLite settings
type StorageConfig struct {
	Path           string
	ConnectTimeout time.Duration
}

// RedisConfig holds Redis settings. An empty Addr disables preview sessions.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	PreviewTTL time.Duration
}

// Enabled reports whether a Redis address was configured
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// GameConfig holds timing for the tabletop loop
type GameConfig struct {
	EnemyTurnDelay    time.Duration
	DialogueRuneDelay time.Duration
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Storage: StorageConfig{
			Path:           getEnvOrDefault("TABLETOP_DB_PATH", DefaultDatabasePath),
			ConnectTimeout: getEnvAsDurationOrDefault("TABLETOP_DB_CONNECT_TIMEOUT", DefaultConnectTimeout),
		},
		Redis: RedisConfig{
			Addr:       os.Getenv("REDIS_ADDR"),
			Password:   os.Getenv("REDIS_PASSWORD"),
			DB:         getEnvAsIntOrDefault("REDIS_DB", 0),
			PreviewTTL: getEnvAsDurationOrDefault("TABLETOP_PREVIEW_TTL", DefaultPreviewTTL),
		},
		Game: GameConfig{
			EnemyTurnDelay:    getEnvAsDurationOrDefault("TABLETOP_ENEMY_TURN_DELAY", DefaultEnemyTurnDelay),
			DialogueRuneDelay: getEnvAsDurationOrDefault("TABLETOP_DIALOGUE_RUNE_DELAY", DefaultDialogueRuneDelay),
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", logging.FormatText),
		},
		Handoff: getEnvOrDefault("TABLETOP_HANDOFF_PATH", DefaultHandoffPath),
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return cfg, nil
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("TABLETOP_DB_PATH", c.Storage.Path, vb)
	errors.ValidateRequired("TABLETOP_HANDOFF_PATH", c.Handoff, vb)
	errors.ValidatePositive("TABLETOP_DB_CONNECT_TIMEOUT", int64(c.Storage.ConnectTimeout), vb)
	errors.ValidatePositive("TABLETOP_DIALOGUE_RUNE_DELAY", int64(c.Game.DialogueRuneDelay), vb)
	if c.Game.EnemyTurnDelay < 0 {
		vb.Field("TABLETOP_ENEMY_TURN_DELAY", "must not be negative")
	}
	if c.Redis.DB < 0 {
		vb.Field("REDIS_DB", "must not be negative")
	}
	if c.Redis.Enabled() {
		errors.ValidatePositive("TABLETOP_PREVIEW_TTL", int64(c.Redis.PreviewTTL), vb)
	}
	errors.ValidateEnum("LOG_FORMAT", c.Log.Format, []string{logging.FormatText, logging.FormatJSON}, vb)

	return vb.Build()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault accepts Go durations ("1.2s") or plain milliseconds
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}
