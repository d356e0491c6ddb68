package roll

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/KirkDiggler/dado-bot/internal/clock"
	"github.com/KirkDiggler/dado-bot/internal/dice"
	dnderr "github.com/KirkDiggler/dado-bot/internal/errors"
	"github.com/KirkDiggler/dado-bot/internal/rolls"
	"github.com/KirkDiggler/dado-bot/internal/uuid"
)

// Service keeps one roll session per owner, such as a Discord user
type Service interface {
	// Roll performs a primary roll for the owner
	Roll(ctx context.Context, ownerID string, req rolls.Request) (*rolls.Outcome, error)

	// Reroll repeats the owner's last roll at disadvantage
	Reroll(ctx context.Context, ownerID string) (*rolls.Outcome, error)

	// Reset clears the owner's last roll and returns the idle prompt
	Reset(ctx context.Context, ownerID string) string

	// ClearHistory empties the owner's history and returns the confirmation text
	ClearHistory(ctx context.Context, ownerID string) string

	// History returns the owner's rolls, most recent first
	History(ctx context.Context, ownerID string) []rolls.HistoryEntry

	// RerollAvailable reports whether the owner has a roll to repeat
	RerollAvailable(ctx context.Context, ownerID string) bool

	// Current returns the owner's displayed result and its critical class
	Current(ctx context.Context, ownerID string) (string, rolls.Critical)
}

// ServiceConfig holds configuration for the roll service
type ServiceConfig struct {
	Roller        dice.Roller        // Required
	TimeProvider  clock.TimeProvider // Optional
	UUIDGenerator uuid.Generator     // Optional
	Logger        *slog.Logger       // Optional
}

type service struct {
	mu       sync.Mutex
	sessions map[string]*rolls.Session

	roller        dice.Roller
	timeProvider  clock.TimeProvider
	uuidGenerator uuid.Generator
	logger        *slog.Logger
}

// NewService creates a new roll service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil || cfg.Roller == nil {
		panic("roller is required")
	}

	svc := &service{
		sessions:      make(map[string]*rolls.Session),
		roller:        cfg.Roller,
		timeProvider:  cfg.TimeProvider,
		uuidGenerator: cfg.UUIDGenerator,
		logger:        cfg.Logger,
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}

	return svc
}

// session returns the owner's session, creating it on first use. Callers hold mu.
func (s *service) session(ownerID string) *rolls.Session {
	sess, ok := s.sessions[ownerID]
	if !ok {
		sess = rolls.NewSession(&rolls.SessionConfig{
			Roller:        s.roller,
			TimeProvider:  s.timeProvider,
			UUIDGenerator: s.uuidGenerator,
		})
		s.sessions[ownerID] = sess
	}
	return sess
}

func (s *service) Roll(ctx context.Context, ownerID string, req rolls.Request) (*rolls.Outcome, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, dnderr.InvalidArgument("owner is required")
	}
	if req.Mode == "" {
		req.Mode = dice.Normal
	}
	if !req.InRange() {
		return nil, dnderr.InvalidArgumentf("quantity must be %d-%d and modifier %d to %d",
			rolls.MinQuantity, rolls.MaxQuantity, rolls.MinModifier, rolls.MaxModifier).
			WithMeta("quantity", req.Quantity).
			WithMeta("modifier", req.Modifier)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := s.session(ownerID).Roll(req)
	if err != nil {
		return nil, dnderr.Wrap(err, "roll failed").WithMeta("owner", ownerID)
	}

	s.logOutcome(ctx, ownerID, out)
	return out, nil
}

func (s *service) Reroll(ctx context.Context, ownerID string) (*rolls.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := s.session(ownerID).Reroll()
	if err != nil {
		return nil, dnderr.Wrap(err, "reroll failed").WithMeta("owner", ownerID)
	}

	s.logOutcome(ctx, ownerID, out)
	return out, nil
}

func (s *service) Reset(_ context.Context, ownerID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session(ownerID).Reset()
}

func (s *service) ClearHistory(ctx context.Context, ownerID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session(ownerID).ClearHistory()
	s.logger.DebugContext(ctx, "roll history cleared", "owner", ownerID)
	return rolls.HistoryClearedMessage
}

func (s *service) History(_ context.Context, ownerID string) []rolls.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session(ownerID).History()
}

func (s *service) RerollAvailable(_ context.Context, ownerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session(ownerID).RerollAvailable()
}

func (s *service) Current(_ context.Context, ownerID string) (string, rolls.Critical) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(ownerID)
	return sess.Current(), sess.CurrentCritical()
}

func (s *service) logOutcome(ctx context.Context, ownerID string, out *rolls.Outcome) {
	s.logger.InfoContext(ctx, "dice rolled",
		"owner", ownerID,
		"die", out.Request.Label(),
		"mode", out.Mode,
		"modifier", out.Request.Modifier,
		"final", out.Final,
		"reroll", out.Reroll,
		"critical", out.Critical.String(),
	)
}
