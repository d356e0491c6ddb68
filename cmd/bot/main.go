package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	"github.com/KirkDiggler/dado-bot/internal/config"
	"github.com/KirkDiggler/dado-bot/internal/dice"
	"github.com/KirkDiggler/dado-bot/internal/handlers/discord"
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
	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.LoadBot()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, logCloser, err := logging.New(&logging.Config{
		File:  cfg.Log.File,
		Level: cfg.Log.Level,
	})
	if err != nil {
		return err
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	if envErr != nil {
		logger.Info("no .env file found")
	}
	logger.Info("starting bot", "app_id", cfg.Discord.AppID, "guild_id", cfg.Discord.GuildID)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, storeCloser, err := characters.Open(ctx, &characters.OpenConfig{
		RedisURL: cfg.Redis.URL,
		DataFile: cfg.Characters.DataFile,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("failed to open character store: %w", err)
	}
	defer storeCloser.Close()

	serviceProvider := services.NewProvider(&services.ProviderConfig{
		CharacterRepository: repo,
		Roller:              dice.NewRandomRoller(&dice.RandomRollerConfig{Seed: cfg.Dice.Seed}),
		Logger:              logger,
	})

	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}

	handler := discord.NewHandler(&discord.HandlerConfig{
		ServiceProvider: serviceProvider,
		Logger:          logger.With("handler", "discord"),
	})
	dg.AddHandler(discord.RecoverMiddleware(logger, "interaction", handler.HandleInteraction))

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}
	defer func() {
		if err := dg.Close(); err != nil {
			logger.Error("failed to close Discord connection", "error", err)
		}
	}()

	// Use empty string for global commands, or set a specific guild ID for testing
	if err := handler.RegisterCommands(dg, cfg.Discord.GuildID); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}
	if cfg.Discord.GuildID == "" {
		logger.Info("registered global commands (may take up to 1 hour to propagate)")
	}

	logger.Info("bot is now running, press CTRL-C to exit")
	<-ctx.Done()
	logger.Info("shutting down")

	return nil
}
