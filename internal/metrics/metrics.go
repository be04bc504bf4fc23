package metrics

import "sync/atomic"

// MetricID identifies one counter slot.
type MetricID int

const (
	MetricLoginSuccess MetricID = iota
	MetricLoginFailure
	MetricOAuthLoginSuccess
	MetricOAuthLoginFailure
	MetricRegisterSuccess
	MetricRegisterFailure
	MetricPasswordResetRequest
	MetricLogout
	MetricLoginSuperseded
	MetricStatePublished
	MetricStorageTrigger
	MetricLocalTrigger
	MetricFocusTrigger
	MetricProfileDecodeFailure

	MetricIDCount
)

// Config controls metric collection. When Enabled is false every operation
// is a no-op and Snapshot returns an empty value.
type Config struct {
	Enabled bool
}

// paddedCounter occupies a full cache line so adjacent counters do not
// false-share under concurrent increments.
type paddedCounter struct {
	value uint64
	_     [56]byte
}

// Metrics holds lock-free counters. The write path is a single atomic add
// with no allocation.
type Metrics struct {
	enabled  bool
	counters [MetricIDCount]paddedCounter
}

// Snapshot is a point-in-time deep copy of all counters.
type Snapshot struct {
	Counters map[MetricID]uint64
}

// New creates a [Metrics] instance configured by cfg.
func New(cfg Config) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Inc atomically increments the counter identified by id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id < 0 || id >= MetricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Value returns the current value of one counter.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || !m.enabled || id < 0 || id >= MetricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies every counter into a fresh map.
func (m *Metrics) Snapshot() Snapshot {
	snap := Snapshot{Counters: make(map[MetricID]uint64, MetricIDCount)}
	if m == nil || !m.enabled {
		return snap
	}
	for id := MetricID(0); id < MetricIDCount; id++ {
		snap.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}
	return snap
}
