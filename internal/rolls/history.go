package rolls

import (
	"time"

	"github.com/KirkDiggler/dado-bot/internal/dice"
)

// EmptyHistoryMessage is shown when there is nothing to list
const EmptyHistoryMessage = "Nenhum lançamento registrado ainda!"

// HistoryClearedMessage confirms ClearHistory
const HistoryClearedMessage = "Histórico de lançamentos limpo com sucesso!"

// HistoryEntry records one completed roll. It lives only as long as the session.
type HistoryEntry struct {
	ID          string
	Timestamp   time.Time
	DieLabel    string
	Mode        dice.Mode
	Modifier    int
	RawRolls    []string
	DisplayText string
	Critical    Critical
}

// String renders the entry as a history line: "[15:04:05] <display>"
func (e HistoryEntry) String() string {
	return "[" + e.Timestamp.Format(time.TimeOnly) + "] " + e.DisplayText
}
