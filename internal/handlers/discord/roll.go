package discord

import (
	"context"

	"github.com/KirkDiggler/dado-bot/internal/dice"
	"github.com/KirkDiggler/dado-bot/internal/handlers/discord/utils"
	"github.com/KirkDiggler/dado-bot/internal/rolls"
	"github.com/bwmarrin/discordgo"
)

const msgPickDie = "Escolha um dado ou informe uma notação, por exemplo 3d6+2."

// rollRequest reads /roll options. A notation overrides the individual options.
func rollRequest(i *discordgo.InteractionCreate) (rolls.Request, string) {
	if notation := utils.GetStringOption(i, optNotation); notation != "" {
		req, err := rolls.ParseRequest(notation)
		if err != nil {
			return rolls.Request{}, userMessage(err)
		}
		return req, ""
	}

	rawDie := utils.GetStringOption(i, optDie)
	if rawDie == "" {
		return rolls.Request{}, msgPickDie
	}
	die, err := dice.ParseDie(rawDie)
	if err != nil {
		return rolls.Request{}, userMessage(err)
	}
	mode, err := dice.ParseMode(utils.GetStringOption(i, optMode))
	if err != nil {
		return rolls.Request{}, userMessage(err)
	}

	return rolls.Request{
		Die:      die,
		Quantity: int(utils.GetIntOptionOr(i, optQuantity, 1)),
		Mode:     mode,
		Modifier: int(utils.GetIntOption(i, optModifier)),
	}, ""
}

func (h *Handler) rollMessage(ctx context.Context, ownerID string, out *rolls.Outcome) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{BuildRollEmbed(out)},
			Components: BuildRollComponents(ownerID, h.ServiceProvider.RollService.RerollAvailable(ctx, ownerID)),
		},
	}
}

func (h *Handler) handleRoll(ctx context.Context, i *discordgo.InteractionCreate) *discordgo.InteractionResponse {
	ownerID := utils.GetUserID(i)

	req, problem := rollRequest(i)
	if problem != "" {
		return errorResponse(problem)
	}

	out, err := h.ServiceProvider.RollService.Roll(ctx, ownerID, req)
	if err != nil {
		h.logger.WarnContext(ctx, "roll rejected", "owner", ownerID, "error", err)
		return errorResponse(userMessage(err))
	}

	return h.rollMessage(ctx, ownerID, out)
}

func (h *Handler) reroll(ctx context.Context, ownerID string) *discordgo.InteractionResponse {
	out, err := h.ServiceProvider.RollService.Reroll(ctx, ownerID)
	if err != nil {
		return errorResponse(userMessage(err))
	}
	return h.rollMessage(ctx, ownerID, out)
}

func (h *Handler) handleReroll(ctx context.Context, i *discordgo.InteractionCreate) *discordgo.InteractionResponse {
	return h.reroll(ctx, utils.GetUserID(i))
}

func (h *Handler) handleReset(ctx context.Context, i *discordgo.InteractionCreate) *discordgo.InteractionResponse {
	prompt := h.ServiceProvider.RollService.Reset(ctx, utils.GetUserID(i))
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{BuildPromptEmbed(prompt)},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	}
}

func (h *Handler) history(ctx context.Context, ownerID string) *discordgo.InteractionResponse {
	entries := h.ServiceProvider.RollService.History(ctx, ownerID)
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{BuildHistoryEmbed(entries)},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	}
}

func (h *Handler) handleHistory(ctx context.Context, i *discordgo.InteractionCreate) *discordgo.InteractionResponse {
	return h.history(ctx, utils.GetUserID(i))
}

func (h *Handler) handleClearHistory(ctx context.Context, i *discordgo.InteractionCreate) *discordgo.InteractionResponse {
	return ephemeral("🧹 " + h.ServiceProvider.RollService.ClearHistory(ctx, utils.GetUserID(i)))
}

// handleRollButton serves the buttons under a roll message
func (h *Handler) handleRollButton(ctx context.Context, i *discordgo.InteractionCreate, action, ownerID string) *discordgo.InteractionResponse {
	if ownerID != utils.GetUserID(i) {
		return errorResponse(msgNotYourButton)
	}

	switch action {
	case actionReroll:
		return h.reroll(ctx, ownerID)
	case actionReset:
		prompt := h.ServiceProvider.RollService.Reset(ctx, ownerID)
		return &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Embeds:     []*discordgo.MessageEmbed{BuildPromptEmbed(prompt)},
				Components: BuildRollComponents(ownerID, false),
			},
		}
	case actionHistory:
		return h.history(ctx, ownerID)
	}
	return nil
}
