// Package config loads server configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
	Game     GameConfig     `mapstructure:"game"`
}

// ServerConfig controls the HTTP/websocket listener.
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

// DatabaseConfig points at the optional deck store. An empty URL disables
// persistence and every player gets the default deck.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// GameConfig locates the card library and deck lists and sets the AI.
type GameConfig struct {
	CardLibrary  string `mapstructure:"card_library"`
	DeckFile     string `mapstructure:"deck_file"`
	DefaultDeck  string `mapstructure:"default_deck"`
	AIDifficulty string `mapstructure:"ai_difficulty"`
}

// Load reads configuration from the given path. Missing file is fine; the
// defaults stand, and ARCANA_* environment variables override either way.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("database.url", "")
	v.SetDefault("game.card_library", "config/cards.yaml")
	v.SetDefault("game.deck_file", "config/decks.yaml")
	v.SetDefault("game.default_deck", "default")
	v.SetDefault("game.ai_difficulty", "medium")

	v.SetEnvPrefix("ARCANA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
