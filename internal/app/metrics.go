package app

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks how many runs the application performed and how much text
// flowed through them. It is safe for concurrent use; a watch session
// updates it from its event loop.
type Metrics struct {
	runs     atomic.Int64
	failures atomic.Int64
	bytesIn  atomic.Int64
	bytesOut atomic.Int64

	mu           sync.Mutex
	lastDuration time.Duration
	maxDuration  time.Duration
}

// NewMetrics creates an empty metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordRun records one completed run.
func (m *Metrics) RecordRun(duration time.Duration, in, out int, err error) {
	m.runs.Add(1)
	if err != nil {
		m.failures.Add(1)
	}
	m.bytesIn.Add(int64(in))
	m.bytesOut.Add(int64(out))

	m.mu.Lock()
	m.lastDuration = duration
	m.maxDuration = max(m.maxDuration, duration)
	m.mu.Unlock()
}

// Snapshot returns a copy of the current values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MetricsSnapshot{
		Runs:         m.runs.Load(),
		Failures:     m.failures.Load(),
		BytesIn:      m.bytesIn.Load(),
		BytesOut:     m.bytesOut.Load(),
		LastDuration: m.lastDuration,
		MaxDuration:  m.maxDuration,
	}
}

// Reset zeroes every counter.
func (m *Metrics) Reset() {
	m.runs.Store(0)
	m.failures.Store(0)
	m.bytesIn.Store(0)
	m.bytesOut.Store(0)
	m.mu.Lock()
	m.lastDuration = 0
	m.maxDuration = 0
	m.mu.Unlock()
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	Runs         int64
	Failures     int64
	BytesIn      int64
	BytesOut     int64
	LastDuration time.Duration
	MaxDuration  time.Duration
}

// Timer measures the duration of one run.
type Timer struct {
	start time.Time
}

// StartTimer starts a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
