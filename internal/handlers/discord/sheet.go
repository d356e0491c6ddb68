package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/KirkDiggler/dado-bot/internal/entities"
	dnderr "github.com/KirkDiggler/dado-bot/internal/errors"
	"github.com/KirkDiggler/dado-bot/internal/handlers/discord/helpers"
	"github.com/KirkDiggler/dado-bot/internal/handlers/discord/utils"
	"github.com/KirkDiggler/dado-bot/internal/services/character"
	"github.com/bwmarrin/discordgo"
)

// sheetMessage maps sheet errors, reporting name clashes the way players expect
func sheetMessage(err error) string {
	if dnderr.IsAlreadyExists(err) {
		return msgSheetExists
	}
	return userMessage(err)
}

func sheetEmbed(record *entities.CharacterRecord) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{helpers.BuildCharacterSheetEmbed(record)},
		},
	}
}

func (h *Handler) handleSheet(ctx context.Context, i *discordgo.InteractionCreate) *discordgo.InteractionResponse {
	sub := utils.GetSubcommand(i)
	if sub == subSystems {
		return h.handleSheetSystems()
	}

	system, ok := entities.ParseGameSystem(utils.GetStringOption(i, optSystem))
	if !ok {
		return errorResponse("Sistema desconhecido.")
	}
	name := utils.GetStringOption(i, optName)
	svc := h.ServiceProvider.CharacterService

	switch sub {
	case subCreate:
		record, err := svc.Create(ctx, system, name)
		if err != nil {
			return errorResponse(sheetMessage(err))
		}
		resp := sheetEmbed(record)
		resp.Data.Content = fmt.Sprintf("✅ Ficha '%s' criada e salva!", record.Name)
		return resp

	case subShow:
		record, err := svc.Get(ctx, system, name)
		if err != nil {
			return errorResponse(sheetMessage(err))
		}
		return sheetEmbed(record)

	case subList:
		names, err := svc.List(ctx, system)
		if err != nil {
			return errorResponse(sheetMessage(err))
		}
		if len(names) == 0 {
			return ephemeral(fmt.Sprintf("Nenhuma ficha de %s.", system.Title()))
		}
		return ephemeral(fmt.Sprintf("**Fichas de %s:**\n%s", system.Title(), strings.Join(names, "\n")))

	case subRename:
		newName := utils.GetStringOption(i, optNewName)
		if err := svc.Rename(ctx, system, name, newName); err != nil {
			return errorResponse(sheetMessage(err))
		}
		return ephemeral(fmt.Sprintf("✅ Ficha renomeada para '%s'!", strings.TrimSpace(newName)))

	case subDelete:
		if err := svc.Delete(ctx, system, name); err != nil {
			return errorResponse(sheetMessage(err))
		}
		return ephemeral(fmt.Sprintf("🗑️ Ficha '%s' excluída!", strings.TrimSpace(name)))

	case subSetField:
		record, err := svc.SetField(ctx, &character.SetFieldInput{
			System: system,
			Name:   name,
			Path:   utils.GetStringOption(i, optField),
			Value:  character.ParseValue(utils.GetStringOption(i, optValue)),
		})
		if err != nil {
			return errorResponse(sheetMessage(err))
		}
		return sheetEmbed(record)

	case subAddItem:
		record, err := svc.AddItem(ctx, &character.AddItemInput{
			System: system,
			Name:   name,
			List:   utils.GetStringOption(i, optList),
			Item:   utils.GetStringOption(i, optItem),
		})
		if err != nil {
			return errorResponse(userMessage(err))
		}
		return sheetEmbed(record)

	case subRemove:
		record, err := svc.RemoveItem(ctx, &character.RemoveItemInput{
			System: system,
			Name:   name,
			List:   utils.GetStringOption(i, optList),
			Index:  int(utils.GetIntOption(i, optIndex)),
		})
		if err != nil {
			return errorResponse(userMessage(err))
		}
		return sheetEmbed(record)
	}

	return nil
}

func (h *Handler) handleSheetSystems() *discordgo.InteractionResponse {
	lines := make([]string, 0, len(h.ServiceProvider.CharacterService.Systems()))
	for _, system := range h.ServiceProvider.CharacterService.Systems() {
		lines = append(lines, fmt.Sprintf("• **%s** (`%s`)", system.Title(), system))
	}
	return ephemeral("**Sistemas disponíveis:**\n" + strings.Join(lines, "\n"))
}
