package i3ipc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsRecordCommandAndQuery(t *testing.T) {
	m := NewMetrics()
	m.RecordCommand(1_500_000, true)
	m.RecordQuery(500_000, false)

	snap := m.Snapshot()
	assert.Equal(t, uint64(1), snap.CommandsSent)
	assert.Equal(t, uint64(1), snap.QueriesSent)
	assert.Equal(t, uint64(1), snap.ErrorsObserved)
}

func TestMetricsRecordEvent(t *testing.T) {
	m := NewMetrics()
	m.RecordEvent()
	m.RecordEvent()

	snap := m.Snapshot()
	assert.Equal(t, uint64(2), snap.EventsReceived)
}

func TestMetricsLatencyHistogramCumulative(t *testing.T) {
	m := NewMetrics()
	m.RecordQuery(50_000, true) // falls in every bucket >= 100us

	snap := m.Snapshot()
	assert.Equal(t, uint64(0), snap.LatencyHistogram[0], "the 10us bucket should not count the 50us sample")
	for i := 1; i < len(snap.LatencyHistogram); i++ {
		assert.Equal(t, uint64(1), snap.LatencyHistogram[i], "bucket %d should count the 50us sample", i)
	}
}

func TestMetricsAverageLatency(t *testing.T) {
	m := NewMetrics()
	m.RecordQuery(1_000_000, true)
	m.RecordQuery(3_000_000, true)

	snap := m.Snapshot()
	assert.Equal(t, uint64(2_000_000), snap.AvgLatencyNs)
}

func TestMetricsReset(t *testing.T) {
	m := NewMetrics()
	m.RecordCommand(1000, true)
	m.RecordEvent()
	m.Reset()

	snap := m.Snapshot()
	assert.Zero(t, snap.CommandsSent)
	assert.Zero(t, snap.EventsReceived)
}

func TestMetricsObserver(t *testing.T) {
	m := NewMetrics()
	obs := NewMetricsObserver(m)

	obs.ObserveCommand(100, true)
	obs.ObserveQuery(200, false)
	obs.ObserveEvent()

	snap := m.Snapshot()
	assert.Equal(t, uint64(1), snap.CommandsSent)
	assert.Equal(t, uint64(1), snap.QueriesSent)
	assert.Equal(t, uint64(1), snap.EventsReceived)
	assert.Equal(t, uint64(1), snap.ErrorsObserved)
}

func TestNoOpObserverDoesNothing(t *testing.T) {
	var obs Observer = NoOpObserver{}
	assert.NotPanics(t, func() {
		obs.ObserveCommand(1, true)
		obs.ObserveQuery(1, false)
		obs.ObserveEvent()
	})
}
