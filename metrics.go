package i3ipc

import (
	"sync/atomic"
	"time"
)

// LatencyBuckets defines the round-trip latency histogram buckets in
// nanoseconds, covering from 10us (a local socket round-trip) to 10s (a
// wedged peer), logarithmically spaced.
var LatencyBuckets = []uint64{
	10_000,         // 10us
	100_000,        // 100us
	1_000_000,      // 1ms
	10_000_000,     // 10ms
	100_000_000,    // 100ms
	1_000_000_000,  // 1s
	10_000_000_000, // 10s
}

const numLatencyBuckets = 7

// Metrics tracks per-connection operation counts, event throughput, and
// round-trip latency for a Connection.
type Metrics struct {
	CommandsSent    atomic.Uint64
	QueriesSent     atomic.Uint64
	EventsReceived  atomic.Uint64
	ErrorsObserved  atomic.Uint64

	TotalLatencyNs atomic.Uint64
	OpCount        atomic.Uint64

	// LatencyHistogram[i] is the cumulative count of operations whose
	// round-trip latency was <= LatencyBuckets[i].
	LatencyHistogram [numLatencyBuckets]atomic.Uint64

	StartTime atomic.Int64
}

// NewMetrics creates a Metrics instance with its start time set to now.
func NewMetrics() *Metrics {
	m := &Metrics{}
	m.StartTime.Store(time.Now().UnixNano())
	return m
}

// RecordCommand records a RunCommand round-trip.
func (m *Metrics) RecordCommand(latencyNs uint64, success bool) {
	m.CommandsSent.Add(1)
	if !success {
		m.ErrorsObserved.Add(1)
	}
	m.recordLatency(latencyNs)
}

// RecordQuery records any non-RunCommand, non-Subscribe request/reply
// round-trip (GetTree, GetWorkspaces, GetVersion, Sync, ...).
func (m *Metrics) RecordQuery(latencyNs uint64, success bool) {
	m.QueriesSent.Add(1)
	if !success {
		m.ErrorsObserved.Add(1)
	}
	m.recordLatency(latencyNs)
}

// RecordEvent records one event delivered by EventNext.
func (m *Metrics) RecordEvent() {
	m.EventsReceived.Add(1)
}

func (m *Metrics) recordLatency(latencyNs uint64) {
	m.TotalLatencyNs.Add(latencyNs)
	m.OpCount.Add(1)
	for i, bucket := range LatencyBuckets {
		if latencyNs <= bucket {
			m.LatencyHistogram[i].Add(1)
		}
	}
}

// MetricsSnapshot is a point-in-time copy of Metrics, with derived
// statistics computed.
type MetricsSnapshot struct {
	CommandsSent   uint64
	QueriesSent    uint64
	EventsReceived uint64
	ErrorsObserved uint64

	AvgLatencyNs uint64
	UptimeNs     uint64

	LatencyHistogram [numLatencyBuckets]uint64
}

// Snapshot returns a point-in-time snapshot of m.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		CommandsSent:   m.CommandsSent.Load(),
		QueriesSent:    m.QueriesSent.Load(),
		EventsReceived: m.EventsReceived.Load(),
		ErrorsObserved: m.ErrorsObserved.Load(),
		UptimeNs:       uint64(time.Now().UnixNano() - m.StartTime.Load()),
	}

	totalLatencyNs := m.TotalLatencyNs.Load()
	opCount := m.OpCount.Load()
	if opCount > 0 {
		snap.AvgLatencyNs = totalLatencyNs / opCount
	}

	for i := 0; i < numLatencyBuckets; i++ {
		snap.LatencyHistogram[i] = m.LatencyHistogram[i].Load()
	}

	return snap
}

// Reset zeroes all counters and restarts the uptime clock. Useful in
// tests that assert on a clean metrics baseline.
func (m *Metrics) Reset() {
	m.CommandsSent.Store(0)
	m.QueriesSent.Store(0)
	m.EventsReceived.Store(0)
	m.ErrorsObserved.Store(0)
	m.TotalLatencyNs.Store(0)
	m.OpCount.Store(0)
	for i := 0; i < numLatencyBuckets; i++ {
		m.LatencyHistogram[i].Store(0)
	}
	m.StartTime.Store(time.Now().UnixNano())
}

// Observer is a pluggable sink for operation-level metrics events, for
// consumers that want to feed a different metrics system (Prometheus,
// StatsD, ...) instead of or alongside the built-in Metrics.
type Observer interface {
	ObserveCommand(latencyNs uint64, success bool)
	ObserveQuery(latencyNs uint64, success bool)
	ObserveEvent()
}

// NoOpObserver discards every observation.
type NoOpObserver struct{}

func (NoOpObserver) ObserveCommand(uint64, bool) {}
func (NoOpObserver) ObserveQuery(uint64, bool)   {}
func (NoOpObserver) ObserveEvent()               {}

// MetricsObserver implements Observer by recording into a Metrics.
type MetricsObserver struct {
	metrics *Metrics
}

// NewMetricsObserver creates an observer that records into m.
func NewMetricsObserver(m *Metrics) *MetricsObserver {
	return &MetricsObserver{metrics: m}
}

func (o *MetricsObserver) ObserveCommand(latencyNs uint64, success bool) {
	o.metrics.RecordCommand(latencyNs, success)
}

func (o *MetricsObserver) ObserveQuery(latencyNs uint64, success bool) {
	o.metrics.RecordQuery(latencyNs, success)
}

func (o *MetricsObserver) ObserveEvent() {
	o.metrics.RecordEvent()
}

var _ Observer = (*MetricsObserver)(nil)
var _ Observer = (*NoOpObserver)(nil)
