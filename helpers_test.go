package qwalk

import "github.com/pkg/errors"

const tolerance = 1e-9

// scriptedSource replays draws in a loop and counts how often it was asked.
type scriptedSource struct {
	draws []float64
	calls int
}

func newScriptedSource(draws ...float64) *scriptedSource {
	return &scriptedSource{draws: draws}
}

func (s *scriptedSource) Float64() float64 {
	r := s.draws[s.calls%len(s.draws)]
	s.calls++
	return r
}

type memoryRecorder struct {
	records []Record
	closed  bool
}

func (m *memoryRecorder) Record(rec Record) error {
	m.records = append(m.records, rec)
	return nil
}

func (m *memoryRecorder) Close() error {
	m.closed = true
	return nil
}

type failingRecorder struct{}

func (failingRecorder) Record(Record) error {
	return errors.New("disk full")
}

func (failingRecorder) Close() error {
	return nil
}
