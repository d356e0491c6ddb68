package rolls

import (
	"slices"

	"github.com/KirkDiggler/dado-bot/internal/clock"
	"github.com/KirkDiggler/dado-bot/internal/dice"
	dnderr "github.com/KirkDiggler/dado-bot/internal/errors"
	"github.com/KirkDiggler/dado-bot/internal/uuid"
)

// ErrNoPriorRoll is returned by Reroll while the session has nothing to repeat
var ErrNoPriorRoll = dnderr.FailedPrecondition("no prior roll to reroll")

// SessionConfig holds the collaborators a Session needs
type SessionConfig struct {
	Roller        dice.Roller        // Required
	TimeProvider  clock.TimeProvider // Optional, defaults to the wall clock
	UUIDGenerator uuid.Generator     // Optional, defaults to google uuid
}

// Session is the state of one roll widget: history plus the last request.
// It is not safe for concurrent use.
type Session struct {
	roller        dice.Roller
	timeProvider  clock.TimeProvider
	uuidGenerator uuid.Generator

	last    *Request
	current *Outcome
	history []HistoryEntry
}

// NewSession creates an idle session with an empty history
func NewSession(cfg *SessionConfig) *Session {
	if cfg == nil || cfg.Roller == nil {
		panic("roller is required")
	}

	s := &Session{
		roller:        cfg.Roller,
		timeProvider:  cfg.TimeProvider,
		uuidGenerator: cfg.UUIDGenerator,
	}
	if s.timeProvider == nil {
		s.timeProvider = clock.New()
	}
	if s.uuidGenerator == nil {
		s.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}

	return s
}

// Roll performs a primary roll with the caller's mode and enables reroll
func (s *Session) Roll(req Request) (*Outcome, error) {
	out, err := s.execute(req, false)
	if err != nil {
		return nil, err
	}

	last := req
	s.last = &last
	return out, nil
}

// Reroll repeats the last primary roll's die, quantity and modifier, always at disadvantage
func (s *Session) Reroll() (*Outcome, error) {
	if s.last == nil {
		return nil, ErrNoPriorRoll
	}
	return s.execute(*s.last, true)
}

// Reset forgets the last roll, which disables reroll. History is kept.
func (s *Session) Reset() string {
	s.last = nil
	s.current = nil
	return DefaultPrompt
}

// ClearHistory empties the history without touching the last roll
func (s *Session) ClearHistory() {
	s.history = nil
}

// RerollAvailable reports whether Reroll has something to repeat
func (s *Session) RerollAvailable() bool {
	return s.last != nil
}

// LastRequest returns the request Reroll would repeat, if any
func (s *Session) LastRequest() (Request, bool) {
	if s.last == nil {
		return Request{}, false
	}
	return *s.last, true
}

// Current is the text the result label should show right now
func (s *Session) Current() string {
	if s.current == nil {
		return DefaultPrompt
	}
	return s.current.DisplayText
}

// CurrentCritical is the critical class of the displayed result
func (s *Session) CurrentCritical() Critical {
	if s.current == nil {
		return CriticalNone
	}
	return s.current.Critical
}

// History returns a copy of the history, most recent first
func (s *Session) History() []HistoryEntry {
	out := slices.Clone(s.history)
	slices.Reverse(out)
	return out
}

// execute is shared by Roll and Reroll. Nothing is mutated unless every die rolls.
func (s *Session) execute(req Request, reroll bool) (*Outcome, error) {
	if !req.Die.Valid() {
		return nil, dnderr.Wrapf(dice.ErrUnknownDie, "die %q", req.Die)
	}

	mode := req.Mode
	if reroll {
		mode = dice.Disadvantage
	}
	if !mode.Valid() {
		return nil, dnderr.Wrapf(dice.ErrUnknownMode, "mode %q", mode)
	}

	results := make([]DieResult, 0, min(max(req.Quantity, 0), MaxQuantity))
	for i := 0; i < req.Quantity; i++ {
		result, err := s.rollOne(req.Die, mode)
		if err != nil {
			return nil, dnderr.Wrapf(err, "failed to roll die %d of %d", i+1, req.Quantity)
		}
		results = append(results, result)
	}

	out := &Outcome{
		Request:  req,
		Mode:     mode,
		Reroll:   reroll,
		Dice:     results,
		Critical: classify(req, results),
	}
	for _, r := range results {
		out.Total += r.Kept
	}
	out.Final = out.Total + req.Modifier
	out.DisplayText = Format(out)

	s.history = append(s.history, HistoryEntry{
		ID:          s.uuidGenerator.New(),
		Timestamp:   s.timeProvider.Now(),
		DieLabel:    req.Label(),
		Mode:        mode,
		Modifier:    req.Modifier,
		RawRolls:    out.RawRolls(),
		DisplayText: out.DisplayText,
		Critical:    out.Critical,
	})
	s.current = out

	return out, nil
}

func (s *Session) rollOne(d dice.Die, mode dice.Mode) (DieResult, error) {
	first, err := s.roller.Roll(d)
	if err != nil {
		return DieResult{}, err
	}

	result := DieResult{
		Samples: []int{first},
		Kept:    first,
		Percent: d.Percent(),
	}
	if mode.Samples() == 1 {
		return result, nil
	}

	second, err := s.roller.Roll(d)
	if err != nil {
		return DieResult{}, err
	}
	result.Samples = append(result.Samples, second)
	result.Kept = mode.Keep(first, second)

	return result, nil
}
