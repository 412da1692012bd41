package qwalk

import (
	"math/rand/v2"

	"github.com/pkg/errors"
)

// Source yields uniform values in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSource returns a PCG-backed source. A zero seed draws a fresh seed.
func NewSource(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// StepReport describes what a single step did.
type StepReport struct {
	Draw      float64
	Operator  CoinOperator
	Support   int
	Cancelled int
}

/*
Stepper advances a WalkState by one step. Each step draws exactly one value from
the source and that value picks the coin operator for every entry of the state:
a draw above the bias threshold selects Biased with the draw itself as P, any
other draw selects Unbiased.
*/
type Stepper struct {
	borders   Borders
	threshold float64
	src       Source
}

func NewStepper(borders Borders, threshold float64, src Source) (*Stepper, error) {
	if src == nil {
		return nil, ErrNoSource
	}

	if err := borders.Validate(); err != nil {
		return nil, err
	}

	if threshold < 0 || threshold > 1 {
		return nil, errors.Wrapf(ErrInvalidConfig, "bias threshold %v outside [0, 1]", threshold)
	}

	return &Stepper{borders: borders, threshold: threshold, src: src}, nil
}

// SelectOperator maps a draw to the coin operator for the step.
func SelectOperator(r, threshold float64) CoinOperator {
	if r > threshold {
		return Biased{P: r}
	}
	return Unbiased{}
}

// Step consumes one draw and returns the evolved state. current is left untouched.
func (s *Stepper) Step(current WalkState) (WalkState, StepReport, error) {
	r := s.src.Float64()
	if !(r >= 0 && r < 1) {
		return WalkState{}, StepReport{}, errors.Errorf("random source produced %v outside [0, 1)", r)
	}

	op := SelectOperator(r, s.threshold)
	next, cancelled := evolve(current, op, s.borders)

	return next, StepReport{
		Draw:      r,
		Operator:  op,
		Support:   next.Len(),
		Cancelled: cancelled,
	}, nil
}

// Evolve applies op to every entry of current, shifts both outputs inside
// borders and merges them into a fresh state.
func Evolve(current WalkState, op CoinOperator, borders Borders) WalkState {
	next, _ := evolve(current, op, borders)
	return next
}

func evolve(current WalkState, op CoinOperator, borders Borders) (WalkState, int) {
	next := NewWalkState()
	cancelled := 0

	for _, b := range current.Basis() {
		down, up := op.Apply(b)

		down.Position = borders.Shift(down.Coin, down.Position)
		up.Position = borders.Shift(up.Coin, up.Position)

		if next.Merge(down) {
			cancelled++
		}
		if next.Merge(up) {
			cancelled++
		}
	}

	return next, cancelled
}
