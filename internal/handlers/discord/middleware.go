package discord

import (
	"log/slog"
	"runtime/debug"

	"github.com/bwmarrin/discordgo"
)

// RecoverMiddleware wraps handler functions to recover from panics
func RecoverMiddleware(logger *slog.Logger, handlerName string, handler func(*discordgo.Session, *discordgo.InteractionCreate)) func(*discordgo.Session, *discordgo.InteractionCreate) {
	if logger == nil {
		logger = slog.Default()
	}

	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic in handler",
					"handler", handlerName,
					"panic", r,
					"stack", string(debug.Stack()))

				respondWithError(logger, s, i, msgInternal)
			}
		}()

		handler(s, i)
	}
}

// respondWithError attempts to send an error message to the user
func respondWithError(logger *slog.Logger, s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	// Respond first, then edit in case a response already went out, then follow up
	responses := []func() error{
		func() error {
			return s.InteractionRespond(i.Interaction, errorResponse(message))
		},
		func() error {
			content := "❌ " + message
			_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
				Content: &content,
			})
			return err
		},
		func() error {
			_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
				Content: "❌ " + message,
				Flags:   discordgo.MessageFlagsEphemeral,
			})
			return err
		},
	}

	for _, respond := range responses {
		if err := respond(); err == nil {
			return
		}
	}

	logger.Error("failed to send error response", "message", message)
}
