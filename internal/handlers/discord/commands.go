package discord

import (
	"fmt"

	"github.com/KirkDiggler/dado-bot/internal/dice"
	"github.com/KirkDiggler/dado-bot/internal/entities"
	"github.com/KirkDiggler/dado-bot/internal/rolls"
	"github.com/bwmarrin/discordgo"
)

const (
	cmdRoll         = "roll"
	cmdReroll       = "reroll"
	cmdReset        = "reset"
	cmdHistory      = "history"
	cmdClearHistory = "clearhistory"
	cmdSheet        = "ficha"

	optDie      = "die"
	optQuantity = "quantity"
	optMode     = "mode"
	optModifier = "modifier"
	optNotation = "notation"
	optSystem   = "sistema"
	optName     = "nome"
	optNewName  = "novo_nome"
	optField    = "campo"
	optValue    = "valor"
	optList     = "lista"
	optItem     = "item"
	optIndex    = "indice"
	subSystems  = "sistemas"
	subCreate   = "criar"
	subShow     = "ver"
	subList     = "listar"
	subRename   = "renomear"
	subDelete   = "excluir"
	subSetField = "definir"
	subAddItem  = "adicionar"
	subRemove   = "remover"
)

func floatPtr(v float64) *float64 { return &v }

func dieChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(dice.All))
	for _, d := range dice.All {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  d.Description(),
			Value: string(d),
		})
	}
	return choices
}

func modeChoices() []*discordgo.ApplicationCommandOptionChoice {
	return []*discordgo.ApplicationCommandOptionChoice{
		{Name: "Normal", Value: string(dice.Normal)},
		{Name: "Vantagem", Value: string(dice.Advantage)},
		{Name: "Desvantagem", Value: string(dice.Disadvantage)},
	}
}

func systemOption() *discordgo.ApplicationCommandOption {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(entities.GameSystems))
	for _, system := range entities.GameSystems {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  system.Title(),
			Value: string(system),
		})
	}
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        optSystem,
		Description: "Sistema de jogo",
		Required:    true,
		Choices:     choices,
	}
}

func stringOption(name, description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    true,
	}
}

func subcommand(name, description string, options ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        name,
		Description: description,
		Options:     options,
	}
}

// Commands returns the slash commands the bot serves
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        cmdRoll,
			Description: "Rola dados",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optDie,
					Description: "Dado a rolar",
					Choices:     dieChoices(),
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        optQuantity,
					Description: fmt.Sprintf("Quantidade de dados (%d-%d)", rolls.MinQuantity, rolls.MaxQuantity),
					MinValue:    floatPtr(rolls.MinQuantity),
					MaxValue:    rolls.MaxQuantity,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optMode,
					Description: "Modo de rolagem",
					Choices:     modeChoices(),
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        optModifier,
					Description: fmt.Sprintf("Modificador (%d a %d)", rolls.MinModifier, rolls.MaxModifier),
					MinValue:    floatPtr(rolls.MinModifier),
					MaxValue:    rolls.MaxModifier,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optNotation,
					Description: "Notação, por exemplo 3d6+2 ou d20 vantagem",
				},
			},
		},
		{
			Name:        cmdReroll,
			Description: "Repete o último lançamento com desvantagem",
		},
		{
			Name:        cmdReset,
			Description: "Limpa o último lançamento",
		},
		{
			Name:        cmdHistory,
			Description: "Mostra o histórico de lançamentos",
		},
		{
			Name:        cmdClearHistory,
			Description: "Apaga o histórico de lançamentos",
		},
		{
			Name:        cmdSheet,
			Description: "Fichas de personagem",
			Options: []*discordgo.ApplicationCommandOption{
				subcommand(subSystems, "Lista os sistemas suportados"),
				subcommand(subCreate, "Cria uma ficha", systemOption(), stringOption(optName, "Nome da ficha")),
				subcommand(subShow, "Mostra uma ficha", systemOption(), stringOption(optName, "Nome da ficha")),
				subcommand(subList, "Lista as fichas de um sistema", systemOption()),
				subcommand(subRename, "Renomeia uma ficha", systemOption(),
					stringOption(optName, "Nome atual"),
					stringOption(optNewName, "Novo nome")),
				subcommand(subDelete, "Exclui uma ficha", systemOption(), stringOption(optName, "Nome da ficha")),
				subcommand(subSetField, "Altera um campo, por exemplo attributes.forca", systemOption(),
					stringOption(optName, "Nome da ficha"),
					stringOption(optField, "Campo (caminho com pontos)"),
					stringOption(optValue, "Novo valor")),
				subcommand(subAddItem, "Adiciona um item a uma lista", systemOption(),
					stringOption(optName, "Nome da ficha"),
					stringOption(optList, "Lista, por exemplo inventory"),
					stringOption(optItem, "Item")),
				subcommand(subRemove, "Remove um item de uma lista pelo índice", systemOption(),
					stringOption(optName, "Nome da ficha"),
					stringOption(optList, "Lista, por exemplo inventory"),
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        optIndex,
						Description: "Índice mostrado na ficha",
						Required:    true,
						MinValue:    floatPtr(0),
					}),
			},
		},
	}
}

// RegisterCommands registers all slash commands with Discord
func (h *Handler) RegisterCommands(s *discordgo.Session, guildID string) error {
	for _, cmd := range Commands() {
		_, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, cmd)
		if err != nil {
			return fmt.Errorf("failed to create command %s: %w", cmd.Name, err)
		}
		h.logger.Info("registered command", "command", cmd.Name)
	}

	return nil
}
