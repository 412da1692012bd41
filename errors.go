package qwalk

import "github.com/pkg/errors"

var (
	// ErrInvalidConfig wraps every configuration problem found before a run starts.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNoSource is returned when a stepper or simulation is built without a random source.
	ErrNoSource = errors.New("random source unavailable")

	// ErrNoRecorder is returned when a simulation is built without an output sink.
	ErrNoRecorder = errors.New("output sink unavailable")

	// ErrInvariant marks a broken walk state invariant, such as a zero or
	// non-finite amplitude reaching the entropy sampler.
	ErrInvariant = errors.New("walk state invariant violated")

	// ErrAlreadyRun is returned by Run on a simulation that left the Idle phase.
	ErrAlreadyRun = errors.New("simulation already run")
)
