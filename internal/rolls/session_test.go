package rolls_test

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/KirkDiggler/dado-bot/internal/clock/mocks"
	"github.com/KirkDiggler/dado-bot/internal/dice"
	mockdice "github.com/KirkDiggler/dado-bot/internal/dice/mock"
	dnderr "github.com/KirkDiggler/dado-bot/internal/errors"
	"github.com/KirkDiggler/dado-bot/internal/rolls"
	"github.com/KirkDiggler/dado-bot/internal/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SessionTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	timeProvider *mocks.MockTimeProvider
	roller       *mockdice.ManualMockRoller
	session      *rolls.Session
	now          time.Time
}

func (s *SessionTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.timeProvider = mocks.NewMockTimeProvider(s.mockCtrl)
	s.roller = mockdice.NewManualMockRoller()
	s.now = time.Date(2026, 10, 17, 14, 3, 9, 0, time.UTC)
	s.timeProvider.EXPECT().Now().Return(s.now).AnyTimes()

	s.session = rolls.NewSession(&rolls.SessionConfig{
		Roller:        s.roller,
		TimeProvider:  s.timeProvider,
		UUIDGenerator: uuid.NewSequenceGenerator("roll"),
	})
}

func (s *SessionTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSessionTestSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}

func (s *SessionTestSuite) TestIdleSession() {
	s.False(s.session.RerollAvailable())
	s.Equal(rolls.DefaultPrompt, s.session.Current())
	s.Empty(s.session.History())

	_, ok := s.session.LastRequest()
	s.False(ok)
}

func (s *SessionTestSuite) TestRollRecordsHistory() {
	s.roller.SetRolls([]int{20})

	out, err := s.session.Roll(rolls.Request{Die: dice.D20, Quantity: 1, Mode: dice.Normal})
	s.Require().NoError(err)

	s.True(s.session.RerollAvailable())
	s.Equal(out.DisplayText, s.session.Current())
	s.Equal(rolls.CriticalSuccess, s.session.CurrentCritical())

	history := s.session.History()
	s.Require().Len(history, 1)
	s.Equal(rolls.HistoryEntry{
		ID:          "roll-1",
		Timestamp:   s.now,
		DieLabel:    "d20 x1",
		Mode:        dice.Normal,
		Modifier:    0,
		RawRolls:    []string{"20"},
		DisplayText: "Resultados: 20 - 🗿 SUCESSO CRÍTICO!",
		Critical:    rolls.CriticalSuccess,
	}, history[0])
	s.Equal("[14:03:09] Resultados: 20 - 🗿 SUCESSO CRÍTICO!", history[0].String())
}

func (s *SessionTestSuite) TestRerollForcesDisadvantage() {
	s.roller.SetRolls([]int{3, 6, 2, 8, 5, 2, 7, 7})

	first, err := s.session.Roll(rolls.Request{Die: dice.D8, Quantity: 2, Mode: dice.Advantage, Modifier: 1})
	s.Require().NoError(err)
	s.Equal("Resultados: 3/6→6, 2/8→8 +1 = 7, 9", first.DisplayText)

	out, err := s.session.Reroll()
	s.Require().NoError(err)

	s.True(out.Reroll)
	s.Equal(dice.Disadvantage, out.Mode)
	s.Equal("Rerol (Desvantagem): 5/2→2, 7/7→7 +1 = 3, 8", out.DisplayText)
	for _, d := range out.Dice {
		s.Len(d.Samples, 2)
		s.Equal(min(d.Samples[0], d.Samples[1]), d.Kept)
	}

	history := s.session.History()
	s.Require().Len(history, 2)
	s.Equal(dice.Disadvantage, history[0].Mode, "most recent first")
	s.Equal(dice.Advantage, history[1].Mode)
	s.Equal("d8 x2", history[0].DieLabel)
	s.Equal([]string{"5/2→2", "7/7→7"}, history[0].RawRolls)
}

func (s *SessionTestSuite) TestRerollFromNormalMode() {
	s.roller.SetRolls([]int{3, 5, 1, 6, 2, 4, 4, 1, 3})

	_, err := s.session.Roll(rolls.Request{Die: dice.D6, Quantity: 3, Mode: dice.Normal, Modifier: 2})
	s.Require().NoError(err)

	out, err := s.session.Reroll()
	s.Require().NoError(err)
	s.Equal("Rerol (Desvantagem): 6/2→2, 4/4→4, 1/3→1 = 7 + 2 = 9", out.DisplayText)
	s.Equal(7, out.Total)
	s.Equal(9, out.Final)
}

func (s *SessionTestSuite) TestRerollKeepsRerollEnabled() {
	s.roller.SetRolls([]int{10, 20, 20, 4, 12})

	_, err := s.session.Roll(rolls.Request{Die: dice.D20, Quantity: 1, Mode: dice.Normal})
	s.Require().NoError(err)

	out, err := s.session.Reroll()
	s.Require().NoError(err)
	s.Equal("Rerol (Desvantagem): 20/20→20 - 🗿 SUCESSO CRÍTICO!", out.DisplayText)
	s.True(s.session.RerollAvailable())

	out, err = s.session.Reroll()
	s.Require().NoError(err)
	s.Equal("Rerol (Desvantagem): 4/12→4", out.DisplayText)

	last, ok := s.session.LastRequest()
	s.True(ok)
	s.Equal(dice.Normal, last.Mode, "reroll does not overwrite the remembered request")
}

func (s *SessionTestSuite) TestResetThenReroll() {
	s.roller.SetRolls([]int{7})

	_, err := s.session.Roll(rolls.Request{Die: dice.D12, Quantity: 1, Mode: dice.Normal})
	s.Require().NoError(err)

	s.Equal(rolls.DefaultPrompt, s.session.Reset())
	s.False(s.session.RerollAvailable())
	s.Equal(rolls.DefaultPrompt, s.session.Current())
	s.Equal(rolls.CriticalNone, s.session.CurrentCritical())

	_, err = s.session.Reroll()
	s.ErrorIs(err, rolls.ErrNoPriorRoll)
	s.True(dnderr.IsFailedPrecondition(err))
	s.Len(s.session.History(), 1, "reset keeps history and a failed reroll adds nothing")
}

func (s *SessionTestSuite) TestRerollWhileIdle() {
	_, err := s.session.Reroll()
	s.ErrorIs(err, rolls.ErrNoPriorRoll)
	s.Empty(s.session.History())
}

func (s *SessionTestSuite) TestClearHistory() {
	s.roller.SetRolls([]int{2, 3, 4})

	for i := 0; i < 2; i++ {
		_, err := s.session.Roll(rolls.Request{Die: dice.D4, Quantity: 1, Mode: dice.Normal})
		s.Require().NoError(err)
	}
	s.Len(s.session.History(), 2)

	s.session.ClearHistory()
	s.Empty(s.session.History())
	s.True(s.session.RerollAvailable(), "clearing history keeps the last roll")

	_, err := s.session.Roll(rolls.Request{Die: dice.D4, Quantity: 1, Mode: dice.Normal})
	s.Require().NoError(err)
	s.Len(s.session.History(), 1)
}

func (s *SessionTestSuite) TestUnknownDie() {
	_, err := s.session.Roll(rolls.Request{Die: dice.Die("d7"), Quantity: 1, Mode: dice.Normal})
	s.ErrorIs(err, dice.ErrUnknownDie)
	s.True(dnderr.IsInvalidArgument(err))
	s.False(s.session.RerollAvailable())
	s.Empty(s.session.History())
}

func (s *SessionTestSuite) TestUnknownMode() {
	_, err := s.session.Roll(rolls.Request{Die: dice.D6, Quantity: 1, Mode: dice.Mode("sideways")})
	s.ErrorIs(err, dice.ErrUnknownMode)
	s.Empty(s.session.History())
}

func (s *SessionTestSuite) TestRollerFailureLeavesStateUnchanged() {
	s.roller.SetRolls([]int{4})

	_, err := s.session.Roll(rolls.Request{Die: dice.D6, Quantity: 3, Mode: dice.Normal})
	s.Error(err)
	s.False(s.session.RerollAvailable())
	s.Empty(s.session.History())
	s.Equal(rolls.DefaultPrompt, s.session.Current())
}

func (s *SessionTestSuite) TestHugeQuantityFailsWithoutPanicking() {
	s.NotPanics(func() {
		_, err := s.session.Roll(rolls.Request{Die: dice.D6, Quantity: math.MaxInt, Mode: dice.Normal})
		s.Error(err, "the roller runs dry long before the pool is full")
	})
	s.False(s.session.RerollAvailable())
	s.Empty(s.session.History())
}

func (s *SessionTestSuite) TestHistoryIsACopy() {
	s.roller.SetRolls([]int{1})

	_, err := s.session.Roll(rolls.Request{Die: dice.D4, Quantity: 1, Mode: dice.Normal})
	s.Require().NoError(err)

	history := s.session.History()
	history[0].DisplayText = "tampered"
	s.NotEqual("tampered", s.session.History()[0].DisplayText)
}

func TestSession_GomockRollerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	roller := mockdice.NewMockRoller(ctrl)
	roller.EXPECT().Roll(dice.D20).Return(0, errors.New("entropy exhausted"))

	session := rolls.NewSession(&rolls.SessionConfig{Roller: roller})
	_, err := session.Roll(rolls.Request{Die: dice.D20, Quantity: 1, Mode: dice.Normal})

	if err == nil || !strings.Contains(err.Error(), "entropy exhausted") {
		t.Fatalf("expected roller error to surface, got %v", err)
	}
}

func TestSession_Properties(t *testing.T) {
	roller := dice.NewRandomRoller(&dice.RandomRollerConfig{Seed: 7})
	session := rolls.NewSession(&rolls.SessionConfig{Roller: roller})

	modes := []dice.Mode{dice.Normal, dice.Advantage, dice.Disadvantage}
	for _, d := range dice.All {
		for quantity := rolls.MinQuantity; quantity <= rolls.MaxQuantity; quantity++ {
			for _, mode := range modes {
				for _, modifier := range []int{rolls.MinModifier, -1, 0, 1, rolls.MaxModifier} {
					req := rolls.Request{Die: d, Quantity: quantity, Mode: mode, Modifier: modifier}
					out, err := session.Roll(req)
					if err != nil {
						t.Fatalf("%+v: %v", req, err)
					}
					checkOutcome(t, req, out)
				}
			}
		}
	}
}

func checkOutcome(t *testing.T, req rolls.Request, out *rolls.Outcome) {
	t.Helper()

	if len(out.Dice) != req.Quantity {
		t.Fatalf("%+v: got %d results", req, len(out.Dice))
	}

	sum := 0
	for _, r := range out.Dice {
		if !req.Die.HasFace(r.Kept) {
			t.Fatalf("%+v: kept %d outside die range", req, r.Kept)
		}
		switch req.Mode {
		case dice.Normal:
			if len(r.Samples) != 1 || r.Samples[0] != r.Kept {
				t.Fatalf("%+v: normal samples %v kept %d", req, r.Samples, r.Kept)
			}
		case dice.Advantage:
			if len(r.Samples) != 2 || r.Kept != max(r.Samples[0], r.Samples[1]) {
				t.Fatalf("%+v: advantage samples %v kept %d", req, r.Samples, r.Kept)
			}
		case dice.Disadvantage:
			if len(r.Samples) != 2 || r.Kept != min(r.Samples[0], r.Samples[1]) {
				t.Fatalf("%+v: disadvantage samples %v kept %d", req, r.Samples, r.Kept)
			}
		}
		sum += r.Kept
	}

	if out.Total != sum || out.Final != sum+req.Modifier {
		t.Fatalf("%+v: total %d final %d for sum %d", req, out.Total, out.Final, sum)
	}

	if req.Die != dice.D20 || req.Quantity != 1 {
		if out.Critical != rolls.CriticalNone {
			t.Fatalf("%+v: unexpected critical %s", req, out.Critical)
		}
	}

	if req.Modifier == 0 {
		return
	}

	if req.Die == dice.D6 && req.Quantity > 1 {
		if n := strings.Count(out.DisplayText, " + "); n != 1 {
			t.Fatalf("%+v: expected one modifier term, got %d in %q", req, n, out.DisplayText)
		}
		return
	}

	modified := out.Modified()
	if len(modified) != req.Quantity {
		t.Fatalf("%+v: %d modified values", req, len(modified))
	}
	for i, v := range modified {
		if v != out.Dice[i].Kept+req.Modifier {
			t.Fatalf("%+v: modified[%d] = %d", req, i, v)
		}
	}
}
