package qwalk

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/theapemachine/errnie"
)

// Phase is the lifecycle position of a Simulation.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseDone
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return "?"
	}
}

/*
Simulation drives a walk through its checkpoint schedule and hands one Record
per checkpoint to the recorder. A run is all or nothing: the first error stops
it and leaves the simulation in PhaseFailed.
*/
type Simulation struct {
	id       string
	config   *Config
	stepper  *Stepper
	recorder Recorder
	metrics  *Metrics
	state    WalkState
	phase    Phase
}

// NewSimulation checks everything a run depends on up front, so that a bad
// configuration or a missing source or sink never gets as far as the first step.
func NewSimulation(config *Config, src Source, recorder Recorder) (*Simulation, error) {
	if config == nil {
		config = NewConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	if recorder == nil {
		return nil, ErrNoRecorder
	}

	stepper, err := NewStepper(config.Borders, config.BiasThreshold, src)
	if err != nil {
		return nil, err
	}

	return &Simulation{
		id:       uuid.New().String(),
		config:   config,
		stepper:  stepper,
		recorder: recorder,
		metrics:  NewMetrics(),
		state:    InitialWalkState(config.Start),
		phase:    PhaseIdle,
	}, nil
}

// Run walks the whole schedule. ctx is checked between steps; a nil ctx runs
// without cancellation.
func (s *Simulation) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if s.phase != PhaseIdle {
		return errors.Wrapf(ErrAlreadyRun, "simulation %s is %s", s.id, s.phase)
	}

	s.phase = PhaseRunning
	s.metrics.start()

	errnie.Info(
		"simulation %s started - borders %s, schedule %v, threshold %v, mode %s",
		s.id, s.config.Borders, s.config.Schedule, s.config.BiasThreshold, s.config.Mode,
	)

	if err := s.run(ctx); err != nil {
		s.phase = PhaseFailed
		s.metrics.finish()
		errnie.Info("simulation %s failed: %v", s.id, err)
		return err
	}

	s.phase = PhaseDone
	s.metrics.finish()
	errnie.Info("simulation %s done - %v", s.id, s.metrics.ExportMetrics())

	return nil
}

func (s *Simulation) run(ctx context.Context) error {
	cumulative := s.config.Schedule.Cumulative()
	debug := s.config.Logging.Level == "debug"

	for i, n := range s.config.Schedule {
		total := cumulative[i]

		if s.config.Mode == ModeIndependent {
			s.state = InitialWalkState(s.config.Start)
			total = n
		}

		for step := 0; step < n; step++ {
			if err := ctx.Err(); err != nil {
				return errors.Wrapf(err, "checkpoint %d interrupted after %d steps", n, step)
			}

			next, report, err := s.stepper.Step(s.state)
			if err != nil {
				return errors.Wrapf(err, "checkpoint %d step %d", n, step+1)
			}

			s.state = next
			s.metrics.recordStep(report)

			if debug {
				errnie.Debug(
					"step %d/%d draw=%v operator=%s support=%d cancelled=%d",
					step+1, n, report.Draw, report.Operator, report.Support, report.Cancelled,
				)
			}
		}

		if err := s.state.Validate(s.config.Borders); err != nil {
			return errors.Wrapf(err, "checkpoint %d", n)
		}

		entropy, err := Entropy(s.state)
		if err != nil {
			return errors.Wrapf(err, "checkpoint %d", n)
		}

		rec := Record{
			RunID:      s.id,
			Checkpoint: n,
			TotalSteps: total,
			Entropy:    entropy,
			Support:    s.state.Len(),
			Norm:       s.state.Norm(),
		}

		if err := s.recorder.Record(rec); err != nil {
			return errors.Wrapf(err, "checkpoint %d", n)
		}

		s.metrics.recordCheckpoint(entropy)
		errnie.Info("checkpoint n=%d total=%d entropy=%v support=%d", n, total, entropy, rec.Support)
	}

	return nil
}

func (s *Simulation) ID() string {
	return s.id
}

func (s *Simulation) Phase() Phase {
	return s.phase
}

// State returns a copy of the current walk state.
func (s *Simulation) State() WalkState {
	return s.state.Clone()
}

func (s *Simulation) Metrics() *Metrics {
	return s.metrics
}
