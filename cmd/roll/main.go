package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/KirkDiggler/dado-bot/internal/config"
	"github.com/KirkDiggler/dado-bot/internal/dice"
	"github.com/KirkDiggler/dado-bot/internal/handlers/repl"
	"github.com/KirkDiggler/dado-bot/internal/logging"
	"github.com/KirkDiggler/dado-bot/internal/repositories/characters"
	"github.com/KirkDiggler/dado-bot/internal/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// The terminal belongs to the REPL, so only warnings reach stderr
	logger, logCloser, err := logging.New(&logging.Config{
		File:  cfg.Log.File,
		Level: logging.AtLeast(cfg.Log.Level, slog.LevelWarn),
	})
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ctx := context.Background()

	repo, storeCloser, err := characters.Open(ctx, &characters.OpenConfig{
		RedisURL: cfg.Redis.URL,
		DataFile: cfg.Characters.DataFile,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("failed to open character store: %w", err)
	}
	defer storeCloser.Close()

	handler := repl.NewHandler(&repl.HandlerConfig{
		ServiceProvider: services.NewProvider(&services.ProviderConfig{
			CharacterRepository: repo,
			Roller:              dice.NewRandomRoller(&dice.RandomRollerConfig{Seed: cfg.Dice.Seed}),
			Logger:              logger,
		}),
		Logger: logger,
	})

	return handler.Run(ctx, os.Stdin, os.Stdout)
}
