package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// Roller draws a single face value for a die.
// It is injected so tests can supply predetermined sequences.
type Roller interface {
	// Roll returns one uniformly sampled face of d
	Roll(d Die) (int, error)
}
