package rolls

import (
	"strconv"
	"strings"
)

const (
	labelSum    = "Resultado:"
	labelList   = "Resultados:"
	labelReroll = "Rerol (Desvantagem):"
)

// DefaultPrompt is shown before the first roll and after a reset
const DefaultPrompt = "Selecione um dado e clique em Rolar!"

// Format renders the display text for an outcome. It only reads the
// structured per-die results.
func Format(o *Outcome) string {
	req := o.Request
	joined := strings.Join(o.RawRolls(), ", ")

	var body string
	switch {
	case req.sumsPool() && req.Modifier != 0:
		body = joined + " = " + strconv.Itoa(o.Total) + " + " + strconv.Itoa(req.Modifier) + " = " + strconv.Itoa(o.Final)
	case req.Modifier != 0:
		percent := ""
		if req.Die.Percent() {
			percent = "%"
		}
		modified := make([]string, len(o.Dice))
		for i, v := range o.Modified() {
			modified[i] = strconv.Itoa(v) + percent
		}
		body = joined + " " + signed(req.Modifier) + percent + " = " + strings.Join(modified, ", ")
	case req.sumsPool():
		body = joined + " = " + strconv.Itoa(o.Total)
	default:
		body = joined
	}

	return label(o) + " " + body + o.Critical.suffix()
}

func label(o *Outcome) string {
	switch {
	case o.Reroll:
		return labelReroll
	case o.Request.sumsPool():
		return labelSum
	default:
		return labelList
	}
}

func signed(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
