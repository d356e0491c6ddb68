package services

import (
	"log/slog"

	"github.com/KirkDiggler/dado-bot/internal/clock"
	"github.com/KirkDiggler/dado-bot/internal/dice"
	"github.com/KirkDiggler/dado-bot/internal/repositories/characters"
	characterService "github.com/KirkDiggler/dado-bot/internal/services/character"
	rollService "github.com/KirkDiggler/dado-bot/internal/services/roll"
	"github.com/KirkDiggler/dado-bot/internal/uuid"
)

// Provider holds all service instances
type Provider struct {
	CharacterService characterService.Service
	RollService      rollService.Service
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	CharacterRepository characters.Repository
	Roller              dice.Roller
	TimeProvider        clock.TimeProvider
	UUIDGenerator       uuid.Generator
	Logger              *slog.Logger
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	// Use in-memory repository if none provided
	charRepo := cfg.CharacterRepository
	if charRepo == nil {
		charRepo = characters.NewInMemoryRepository()
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.NewRandomRoller(nil)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	charService := characterService.NewService(&characterService.ServiceConfig{
		Repository: charRepo,
		Logger:     logger.With("service", "character"),
	})

	rolls := rollService.NewService(&rollService.ServiceConfig{
		Roller:        roller,
		TimeProvider:  cfg.TimeProvider,
		UUIDGenerator: cfg.UUIDGenerator,
		Logger:        logger.With("service", "roll"),
	})

	return &Provider{
		CharacterService: charService,
		RollService:      rolls,
	}
}
