package qwalk

import "github.com/pkg/errors"

/*
Schedule lists checkpoint lengths. In cumulative mode entry n means "evolve the
current state by n more steps, then sample", so the walk never restarts between
checkpoints and checkpoint k sits at the sum of the first k entries.
*/
type Schedule []int

// ScheduleRange builds from, from+step, ... up to and including to.
func ScheduleRange(from, to, step int) Schedule {
	if step <= 0 {
		return nil
	}

	out := Schedule{}
	for n := from; n <= to; n += step {
		out = append(out, n)
	}
	return out
}

// DefaultSchedule is 10, 20, ..., 100.
func DefaultSchedule() Schedule {
	return ScheduleRange(10, 100, 10)
}

func (s Schedule) Validate() error {
	if len(s) == 0 {
		return errors.Wrap(ErrInvalidConfig, "schedule is empty")
	}

	for i, n := range s {
		if n <= 0 {
			return errors.Wrapf(ErrInvalidConfig, "schedule entry %d is %d, must be positive", i, n)
		}
	}

	return nil
}

// Cumulative returns the running totals of the schedule.
func (s Schedule) Cumulative() []int {
	out := make([]int, len(s))
	total := 0

	for i, n := range s {
		total += n
		out[i] = total
	}

	return out
}

// Steps is the total number of steps a cumulative run performs.
func (s Schedule) Steps() int {
	total := 0
	for _, n := range s {
		total += n
	}
	return total
}
