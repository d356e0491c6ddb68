package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/KirkDiggler/dado-bot/internal/entities"
	dnderr "github.com/KirkDiggler/dado-bot/internal/errors"
	"github.com/KirkDiggler/dado-bot/internal/handlers/discord/helpers"
	"github.com/KirkDiggler/dado-bot/internal/rolls"
	"github.com/KirkDiggler/dado-bot/internal/services"
	"github.com/KirkDiggler/dado-bot/internal/services/character"
)

// DefaultOwner is the roll session used when no owner is configured
const DefaultOwner = "local"

const prompt = "> "

const helpText = `Comandos:
  <notação>                      rola dados, por exemplo 3d6+2 ou d20 vantagem
  r | reroll                     repete o último lançamento com desvantagem
  reset                          limpa o último lançamento
  h | history                    mostra o histórico
  clear                          apaga o histórico
  ficha sistemas
  ficha criar <sistema> <nome>
  ficha ver <sistema> <nome>
  ficha listar <sistema>
  ficha renomear <sistema> <nome> <novo_nome>
  ficha excluir <sistema> <nome>
  ficha definir <sistema> <nome> <campo> <valor>
  ficha adicionar <sistema> <nome> <lista> <item>
  ficha remover <sistema> <nome> <lista> <indice>
  ajuda | help
  sair | quit`

var errQuit = errors.New("quit")

// Handler runs a line-oriented session against the services
type Handler struct {
	ServiceProvider *services.Provider
	ownerID         string
	logger          *slog.Logger
}

// HandlerConfig holds configuration for the REPL handler
type HandlerConfig struct {
	ServiceProvider *services.Provider // Required
	OwnerID         string             // Optional, defaults to DefaultOwner
	Logger          *slog.Logger       // Optional
}

// NewHandler creates a new REPL handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg == nil || cfg.ServiceProvider == nil {
		panic("service provider is required")
	}

	h := &Handler{
		ServiceProvider: cfg.ServiceProvider,
		ownerID:         cfg.OwnerID,
		logger:          cfg.Logger,
	}
	if h.ownerID == "" {
		h.ownerID = DefaultOwner
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	return h
}

// Run reads commands from in until EOF, quit, or ctx is done
func (h *Handler) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, rolls.DefaultPrompt)
	fmt.Fprint(out, prompt)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		reply, err := h.Execute(ctx, scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if reply != "" {
			fmt.Fprintln(out, reply)
		}
		fmt.Fprint(out, prompt)
	}
	return scanner.Err()
}

// Execute runs one input line and returns the text to show
func (h *Handler) Execute(ctx context.Context, line string) (string, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return "", nil
	}

	switch strings.ToLower(args[0]) {
	case "sair", "quit", "exit":
		return "", errQuit
	case "ajuda", "help", "?":
		return helpText, nil
	case "r", "reroll":
		return h.render(h.ServiceProvider.RollService.Reroll(ctx, h.ownerID))
	case "reset":
		return h.ServiceProvider.RollService.Reset(ctx, h.ownerID), nil
	case "h", "history":
		return h.history(ctx), nil
	case "clear":
		return h.ServiceProvider.RollService.ClearHistory(ctx, h.ownerID), nil
	case "ficha":
		return h.sheet(ctx, args[1:]), nil
	}

	req, err := rolls.ParseRequest(line)
	if err != nil {
		return describe(err), nil
	}
	return h.render(h.ServiceProvider.RollService.Roll(ctx, h.ownerID, req))
}

func (h *Handler) render(out *rolls.Outcome, err error) (string, error) {
	if err != nil {
		return describe(err), nil
	}
	return out.DisplayText, nil
}

func (h *Handler) history(ctx context.Context) string {
	entries := h.ServiceProvider.RollService.History(ctx, h.ownerID)
	if len(entries) == 0 {
		return rolls.EmptyHistoryMessage
	}

	lines := make([]string, len(entries))
	for i, entry := range entries {
		lines[i] = entry.String()
	}
	return strings.Join(lines, "\n")
}

func (h *Handler) sheet(ctx context.Context, args []string) string {
	if len(args) == 0 {
		return helpText
	}

	sub := strings.ToLower(args[0])
	if sub == "sistemas" {
		systems := h.ServiceProvider.CharacterService.Systems()
		lines := make([]string, len(systems))
		for i, system := range systems {
			lines[i] = fmt.Sprintf("%s (%s)", system.Title(), system)
		}
		return strings.Join(lines, "\n")
	}

	need := map[string]int{
		"criar": 3, "ver": 3, "listar": 2, "renomear": 4, "excluir": 3,
		"definir": 5, "adicionar": 5, "remover": 5,
	}
	n, ok := need[sub]
	if !ok {
		return "Subcomando desconhecido: " + sub
	}
	if len(args) < n {
		return "Argumentos insuficientes. Digite 'ajuda'."
	}

	system, ok := entities.ParseGameSystem(args[1])
	if !ok {
		return "Sistema desconhecido: " + args[1]
	}
	svc := h.ServiceProvider.CharacterService

	if sub == "listar" {
		names, err := svc.List(ctx, system)
		if err != nil {
			return describe(err)
		}
		if len(names) == 0 {
			return fmt.Sprintf("Nenhuma ficha de %s.", system.Title())
		}
		return strings.Join(names, "\n")
	}

	name := args[2]
	var (
		record *entities.CharacterRecord
		err    error
	)
	switch sub {
	case "criar":
		if record, err = svc.Create(ctx, system, name); err == nil {
			return fmt.Sprintf("Ficha '%s' criada e salva!\n%s", name, formatSheet(record))
		}
	case "ver":
		record, err = svc.Get(ctx, system, name)
	case "renomear":
		if err = svc.Rename(ctx, system, name, args[3]); err == nil {
			return fmt.Sprintf("Ficha renomeada para '%s'!", args[3])
		}
	case "excluir":
		if err = svc.Delete(ctx, system, name); err == nil {
			return fmt.Sprintf("Ficha '%s' excluída!", name)
		}
	case "definir":
		record, err = svc.SetField(ctx, &character.SetFieldInput{
			System: system,
			Name:   name,
			Path:   args[3],
			Value:  character.ParseValue(strings.Join(args[4:], " ")),
		})
	case "adicionar":
		record, err = svc.AddItem(ctx, &character.AddItemInput{
			System: system,
			Name:   name,
			List:   args[3],
			Item:   strings.Join(args[4:], " "),
		})
	case "remover":
		index, convErr := strconv.Atoi(args[4])
		if convErr != nil {
			return "Índice inválido: " + args[4]
		}
		record, err = svc.RemoveItem(ctx, &character.RemoveItemInput{
			System: system,
			Name:   name,
			List:   args[3],
			Index:  index,
		})
	}

	if err != nil {
		h.logger.DebugContext(ctx, "sheet command failed", "subcommand", sub, "error", err)
		if dnderr.IsAlreadyExists(err) && (sub == "criar" || sub == "renomear") {
			return "Já existe uma ficha com este nome!"
		}
		return describe(err)
	}
	return formatSheet(record)
}

// formatSheet renders a sheet as plain text, scalars first then collections
func formatSheet(record *entities.CharacterRecord) string {
	embed := helpers.BuildCharacterSheetEmbed(record)

	var b strings.Builder
	b.WriteString(embed.Title)
	if embed.Description != "" {
		b.WriteString("\n")
		b.WriteString(strings.ReplaceAll(embed.Description, "**", ""))
	}
	for _, field := range embed.Fields {
		b.WriteString("\n[")
		b.WriteString(field.Name)
		b.WriteString("]\n")
		b.WriteString(strings.ReplaceAll(field.Value, "`", ""))
	}
	return b.String()
}

func describe(err error) string {
	switch {
	case errors.Is(err, rolls.ErrNoPriorRoll):
		return "Nenhum lançamento para rerolar. Role um dado primeiro!"
	case dnderr.IsNotFound(err):
		return "Ficha não encontrada!"
	}

	var appErr *dnderr.Error
	if errors.As(err, &appErr) && appErr.Code != dnderr.CodeInternal {
		return "Erro: " + err.Error()
	}
	return "Algo deu errado. Tente novamente."
}
