package dice

import (
	"strings"

	dnderr "github.com/KirkDiggler/dado-bot/internal/errors"
)

// Die identifies a kind of die the roller knows how to sample
type Die string

const (
	D4       Die = "d4"
	D6       Die = "d6"
	D8       Die = "d8"
	D10      Die = "d10"
	D12      Die = "d12"
	D20      Die = "d20"
	D100     Die = "d100"
	DPercent Die = "dpercent" // 10%, 20%, ... 100%
)

// ErrUnknownDie is returned for any die identifier outside the supported set
var ErrUnknownDie = dnderr.InvalidArgument("unknown die kind")

// All lists the supported dice in display order
var All = []Die{D4, D6, D8, D10, D12, D20, D100, DPercent}

var sides = map[Die]int{
	D4:       4,
	D6:       6,
	D8:       8,
	D10:      10,
	D12:      12,
	D20:      20,
	D100:     100,
	DPercent: 10,
}

var descriptions = map[Die]string{
	D4:       "D4 (4 lados)",
	D6:       "D6 (6 lados)",
	D8:       "D8 (8 lados)",
	D10:      "D10 (10 lados)",
	D12:      "D12 (12 lados)",
	D20:      "D20 (20 lados)",
	D100:     "D100 (1-100)",
	DPercent: "D% (10% a 100%)",
}

// ParseDie resolves a die identifier such as "d20", "D6", "d%" or "dpercent"
func ParseDie(s string) (Die, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	switch key {
	case "d%", "percent", "%":
		return DPercent, nil
	}
	if !strings.HasPrefix(key, "d") {
		key = "d" + key
	}

	d := Die(key)
	if !d.Valid() {
		return "", dnderr.Wrapf(ErrUnknownDie, "die %q", s)
	}
	return d, nil
}

// Valid reports whether d is one of the supported dice
func (d Die) Valid() bool {
	_, ok := sides[d]
	return ok
}

// Sides is the number of distinct faces on the die
func (d Die) Sides() int {
	return sides[d]
}

// Percent reports whether values of this die display with a % suffix
func (d Die) Percent() bool {
	return d == DPercent
}

// Min is the lowest face value
func (d Die) Min() int {
	if d == DPercent {
		return 10
	}
	return 1
}

// Max is the highest face value
func (d Die) Max() int {
	if d == DPercent {
		return 100
	}
	return sides[d]
}

// HasFace reports whether v can come up on the die
func (d Die) HasFace(v int) bool {
	if !d.Valid() || v < d.Min() || v > d.Max() {
		return false
	}
	if d == DPercent {
		return v%10 == 0
	}
	return true
}

// Description is the human label used in pickers
func (d Die) Description() string {
	return descriptions[d]
}

func (d Die) String() string {
	return string(d)
}

// Mode controls how many samples are drawn per die and which one is kept
type Mode string

const (
	Normal       Mode = "normal"
	Advantage    Mode = "vantagem"
	Disadvantage Mode = "desvantagem"
)

// ErrUnknownMode is returned for any roll mode outside the supported set
var ErrUnknownMode = dnderr.InvalidArgument("unknown roll mode")

// ParseMode resolves a roll mode; an empty string means Normal
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal", "n":
		return Normal, nil
	case "vantagem", "advantage", "adv", "v":
		return Advantage, nil
	case "desvantagem", "disadvantage", "dis", "d":
		return Disadvantage, nil
	default:
		return "", dnderr.Wrapf(ErrUnknownMode, "mode %q", s)
	}
}

// Valid reports whether m is one of the supported modes
func (m Mode) Valid() bool {
	switch m {
	case Normal, Advantage, Disadvantage:
		return true
	}
	return false
}

// Samples is how many raw samples a single die draws in this mode
func (m Mode) Samples() int {
	if m == Normal {
		return 1
	}
	return 2
}

// Keep picks the kept value out of two samples
func (m Mode) Keep(a, b int) int {
	switch m {
	case Advantage:
		return max(a, b)
	case Disadvantage:
		return min(a, b)
	default:
		return a
	}
}

func (m Mode) String() string {
	return string(m)
}
