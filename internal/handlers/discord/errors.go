package discord

import (
	"errors"

	dnderr "github.com/KirkDiggler/dado-bot/internal/errors"
	"github.com/KirkDiggler/dado-bot/internal/rolls"
	"github.com/bwmarrin/discordgo"
)

const (
	msgNoPriorRoll   = "Nenhum lançamento para rerolar. Role um dado primeiro!"
	msgSheetExists   = "Já existe uma ficha com este nome!"
	msgSheetNotFound = "Ficha não encontrada!"
	msgNotYourButton = "Esses botões pertencem a outro jogador."
	msgInternal      = "Algo deu errado. Tente novamente."
)

// userMessage turns a service error into text for the player
func userMessage(err error) string {
	var appErr *dnderr.Error
	switch {
	case errors.Is(err, rolls.ErrNoPriorRoll):
		return msgNoPriorRoll
	case dnderr.IsNotFound(err):
		return msgSheetNotFound
	case errors.As(err, &appErr) && (appErr.Code == dnderr.CodeInvalidArgument || appErr.Code == dnderr.CodeAlreadyExists):
		return "Entrada inválida: " + rootMessage(appErr)
	default:
		return msgInternal
	}
}

// rootMessage is the message of the innermost coded error
func rootMessage(err *dnderr.Error) string {
	for {
		var inner *dnderr.Error
		if err.Cause == nil || !errors.As(err.Cause, &inner) {
			return err.Message
		}
		err = inner
	}
}

func ephemeral(content string) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}
}

func errorResponse(message string) *discordgo.InteractionResponse {
	return ephemeral("❌ " + message)
}
