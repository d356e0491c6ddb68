package discord

import (
	"context"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/dado-bot/internal/services"
	"github.com/bwmarrin/discordgo"
)

// Handler handles all Discord interactions
type Handler struct {
	ServiceProvider *services.Provider
	logger          *slog.Logger
}

// HandlerConfig holds configuration for the Discord handler
type HandlerConfig struct {
	ServiceProvider *services.Provider // Required
	Logger          *slog.Logger       // Optional
}

// NewHandler creates a new Discord handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg == nil || cfg.ServiceProvider == nil {
		panic("service provider is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		ServiceProvider: cfg.ServiceProvider,
		logger:          logger,
	}
}

// HandleInteraction handles all Discord interactions
func (h *Handler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	resp := h.Respond(context.Background(), i)
	if resp == nil {
		return
	}

	if err := s.InteractionRespond(i.Interaction, resp); err != nil {
		h.logger.Error("failed to respond to interaction", "interaction", i.ID, "error", err)
	}
}

// Respond builds the response for an interaction without sending it
func (h *Handler) Respond(ctx context.Context, i *discordgo.InteractionCreate) *discordgo.InteractionResponse {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		return h.handleCommand(ctx, i)
	case discordgo.InteractionMessageComponent:
		return h.handleComponent(ctx, i)
	}
	return nil
}

// handleCommand handles slash command interactions
func (h *Handler) handleCommand(ctx context.Context, i *discordgo.InteractionCreate) *discordgo.InteractionResponse {
	switch i.ApplicationCommandData().Name {
	case cmdRoll:
		return h.handleRoll(ctx, i)
	case cmdReroll:
		return h.handleReroll(ctx, i)
	case cmdReset:
		return h.handleReset(ctx, i)
	case cmdHistory:
		return h.handleHistory(ctx, i)
	case cmdClearHistory:
		return h.handleClearHistory(ctx, i)
	case cmdSheet:
		return h.handleSheet(ctx, i)
	}
	return nil
}

// handleComponent handles button presses. Custom IDs have the form "context:action:data".
func (h *Handler) handleComponent(ctx context.Context, i *discordgo.InteractionCreate) *discordgo.InteractionResponse {
	parts := strings.SplitN(i.MessageComponentData().CustomID, ":", 3)
	if len(parts) < 2 {
		return nil
	}

	switch parts[0] {
	case rollComponentPrefix:
		owner := ""
		if len(parts) == 3 {
			owner = parts[2]
		}
		return h.handleRollButton(ctx, i, parts[1], owner)
	}
	return nil
}
