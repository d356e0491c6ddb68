package clock

import "time"

//go:generate mockgen -destination=mocks/mock_time_provider.go -package=mocks github.com/KirkDiggler/dado-bot/internal/clock TimeProvider

// TimeProvider supplies the current time so timestamps can be pinned in tests
type TimeProvider interface {
	Now() time.Time
}

type systemClock struct{}

// New returns a TimeProvider backed by the wall clock
func New() TimeProvider {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}
