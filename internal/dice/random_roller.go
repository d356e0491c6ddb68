package dice

import (
	"math/rand"
	"time"

	dnderr "github.com/KirkDiggler/dado-bot/internal/errors"
)

// RandomRollerConfig configures the random roller
type RandomRollerConfig struct {
	// Seed makes the sequence reproducible; zero seeds from the clock
	Seed int64
}

// randomRoller implements Roller with a seedable math/rand source.
// It is not safe for concurrent use.
type randomRoller struct {
	random *rand.Rand
}

// NewRandomRoller creates a new random dice roller
func NewRandomRoller(cfg *RandomRollerConfig) Roller {
	seed := time.Now().UnixNano()
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	}

	return &randomRoller{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(d Die) (int, error) {
	if !d.Valid() {
		return 0, dnderr.Wrapf(ErrUnknownDie, "die %q", d)
	}

	face := r.random.Intn(d.Sides()) + 1
	if d == DPercent {
		return face * 10, nil
	}
	return face, nil
}
