package qwalk

import (
	"sync"
	"time"
)

// Metrics accumulates counters over one simulation run.
type Metrics struct {
	mu sync.RWMutex

	Steps         int
	BiasedSteps   int
	UnbiasedSteps int
	Cancelled     int
	PeakSupport   int
	Checkpoints   int
	LastEntropy   float64

	StartedAt time.Time
	Elapsed   time.Duration
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StartedAt = time.Now()
}

func (m *Metrics) recordStep(report StepReport) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Steps++
	m.Cancelled += report.Cancelled

	if _, ok := report.Operator.(Biased); ok {
		m.BiasedSteps++
	} else {
		m.UnbiasedSteps++
	}

	if report.Support > m.PeakSupport {
		m.PeakSupport = report.Support
	}
}

func (m *Metrics) recordCheckpoint(entropy float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Checkpoints++
	m.LastEntropy = entropy
}

func (m *Metrics) finish() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.StartedAt.IsZero() {
		m.Elapsed = time.Since(m.StartedAt)
	}
}

func (m *Metrics) ExportMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"steps":          m.Steps,
		"biased_steps":   m.BiasedSteps,
		"unbiased_steps": m.UnbiasedSteps,
		"cancelled_keys": m.Cancelled,
		"peak_support":   m.PeakSupport,
		"checkpoints":    m.Checkpoints,
		"last_entropy":   m.LastEntropy,
		"elapsed_ms":     m.Elapsed.Milliseconds(),
	}
}
