package rolls

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/dado-bot/internal/dice"
	dnderr "github.com/KirkDiggler/dado-bot/internal/errors"
)

// Input ranges the presentation layer is expected to enforce.
// The engine itself accepts anything and degrades instead of failing.
const (
	MinQuantity = 1
	MaxQuantity = 8
	MinModifier = -10
	MaxModifier = 10
)

// Request describes one roll action
type Request struct {
	Die      dice.Die
	Quantity int
	Mode     dice.Mode
	Modifier int
}

// Label is the history label, e.g. "d6 x3"
func (r Request) Label() string {
	return fmt.Sprintf("%s x%d", r.Die, r.Quantity)
}

// sumsPool reports whether kept values are totalled instead of listed.
// Only multi-die d6 pools are summed.
func (r Request) sumsPool() bool {
	return r.Die == dice.D6 && r.Quantity > 1
}

// InRange reports whether quantity and modifier sit inside the documented input ranges
func (r Request) InRange() bool {
	return r.Quantity >= MinQuantity && r.Quantity <= MaxQuantity &&
		r.Modifier >= MinModifier && r.Modifier <= MaxModifier
}

// ParseRequest reads roll notation such as "3d6+2", "d20 adv", "d% vantagem" or "2d100-5".
// Quantity defaults to 1 and mode to normal.
func ParseRequest(notation string) (Request, error) {
	fields := strings.Fields(strings.ToLower(notation))
	if len(fields) == 0 || len(fields) > 2 {
		return Request{}, dnderr.InvalidArgumentf("invalid roll notation %q", notation)
	}

	req := Request{Quantity: 1, Mode: dice.Normal}

	if len(fields) == 2 {
		mode, err := dice.ParseMode(fields[1])
		if err != nil {
			return Request{}, err
		}
		req.Mode = mode
	}

	term := fields[0]
	idx := strings.Index(term, "d")
	if idx < 0 {
		return Request{}, dnderr.InvalidArgumentf("invalid roll notation %q", notation)
	}

	if idx > 0 {
		digits := term[:idx]
		if strings.TrimLeft(digits, "0123456789") != "" {
			return Request{}, dnderr.InvalidArgumentf("invalid dice count in %q", notation)
		}
		count, err := strconv.Atoi(digits)
		if err != nil {
			return Request{}, dnderr.InvalidArgumentf("invalid dice count in %q", notation)
		}
		req.Quantity = count
	}

	dieTerm := term[idx:]
	if sign := strings.IndexAny(dieTerm, "+-"); sign > 0 {
		mod, err := strconv.Atoi(dieTerm[sign:])
		if err != nil {
			return Request{}, dnderr.InvalidArgumentf("invalid modifier in %q", notation)
		}
		req.Modifier = mod
		dieTerm = dieTerm[:sign]
	}

	die, err := dice.ParseDie(dieTerm)
	if err != nil {
		return Request{}, err
	}
	req.Die = die

	return req, nil
}
