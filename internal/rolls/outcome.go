package rolls

import (
	"strconv"

	"github.com/KirkDiggler/dado-bot/internal/dice"
)

// Critical classifies a single d20 roll
type Critical int

const (
	CriticalNone Critical = iota
	CriticalSuccess
	CriticalFailure
)

// Highlight colours for the result label
const (
	ColorDefault = 0
	ColorSuccess = 0x0080ff
	ColorFailure = 0xff0000
)

// Color is the highlight the presentation layer should use; ColorDefault means theme default
func (c Critical) Color() int {
	switch c {
	case CriticalSuccess:
		return ColorSuccess
	case CriticalFailure:
		return ColorFailure
	default:
		return ColorDefault
	}
}

func (c Critical) suffix() string {
	switch c {
	case CriticalSuccess:
		return " - 🗿 SUCESSO CRÍTICO!"
	case CriticalFailure:
		return " - 💀 FALHA CRÍTICA!"
	default:
		return ""
	}
}

func (c Critical) String() string {
	switch c {
	case CriticalSuccess:
		return "critical_success"
	case CriticalFailure:
		return "critical_failure"
	default:
		return "none"
	}
}

// DieResult is what a single die produced
type DieResult struct {
	Samples []int // one in normal mode, two with advantage or disadvantage
	Kept    int
	Percent bool
}

func (r DieResult) value(v int) string {
	if r.Percent {
		return strconv.Itoa(v) + "%"
	}
	return strconv.Itoa(v)
}

// String renders "<kept>" or "<s1>/<s2>→<kept>"
func (r DieResult) String() string {
	if len(r.Samples) < 2 {
		return r.value(r.Kept)
	}
	return r.value(r.Samples[0]) + "/" + r.value(r.Samples[1]) + "→" + r.value(r.Kept)
}

// Outcome is the full result of one roll action
type Outcome struct {
	Request     Request
	Mode        dice.Mode // mode actually used; reroll forces disadvantage
	Reroll      bool
	Dice        []DieResult
	Total       int // sum of kept values
	Final       int // Total + modifier
	Critical    Critical
	DisplayText string
}

// RawRolls is the per-die rendering shown before any modifier is applied
func (o *Outcome) RawRolls() []string {
	out := make([]string, len(o.Dice))
	for i, d := range o.Dice {
		out[i] = d.String()
	}
	return out
}

// Modified is each kept value with the modifier applied to it
func (o *Outcome) Modified() []int {
	out := make([]int, len(o.Dice))
	for i, d := range o.Dice {
		out[i] = d.Kept + o.Request.Modifier
	}
	return out
}

func classify(req Request, results []DieResult) Critical {
	if req.Die != dice.D20 || req.Quantity != 1 || len(results) != 1 {
		return CriticalNone
	}
	switch results[0].Kept {
	case 20:
		return CriticalSuccess
	case 1:
		return CriticalFailure
	default:
		return CriticalNone
	}
}
