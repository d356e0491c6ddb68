package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the application
type Config struct {
	Discord    DiscordConfig
	Redis      RedisConfig
	Characters CharactersConfig
	Dice       DiceConfig
	Log        LogConfig
}

// DiscordConfig holds Discord-specific configuration
type DiscordConfig struct {
	Token   string `env:"DISCORD_TOKEN"`
	AppID   string `env:"DISCORD_APP_ID"`
	GuildID string `env:"DISCORD_GUILD_ID"` // Optional: for guild-specific commands
}

// RedisConfig holds Redis-specific configuration. An empty URL selects the file store.
type RedisConfig struct {
	URL string `env:"REDIS_URL"`
}

// CharactersConfig holds character store configuration
type CharactersConfig struct {
	DataFile string `env:"CHARACTER_DATA_FILE" envDefault:"character_data.json"`
}

// DiceConfig holds roller configuration. Seed 0 seeds from the clock.
type DiceConfig struct {
	Seed int64 `env:"DICE_SEED" envDefault:"0"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	File  string `env:"LOG_FILE"`
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// LoadBot loads configuration and requires the Discord credentials
func LoadBot() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	// Validate required fields
	if cfg.Discord.Token == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is required")
	}
	if cfg.Discord.AppID == "" {
		return nil, fmt.Errorf("DISCORD_APP_ID is required")
	}

	return cfg, nil
}
