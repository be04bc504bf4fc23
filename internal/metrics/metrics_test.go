package metrics

import (
	"sync"
	"testing"
)

func TestMetricsIncAndValue(t *testing.T) {
	m := New(Config{Enabled: true})

	m.Inc(MetricLoginSuccess)
	m.Inc(MetricLoginSuccess)
	m.Inc(MetricLogout)

	if got := m.Value(MetricLoginSuccess); got != 2 {
		t.Fatalf("login success = %d, want 2", got)
	}
	if got := m.Value(MetricLogout); got != 1 {
		t.Fatalf("logout = %d, want 1", got)
	}
	if got := m.Value(MetricLoginFailure); got != 0 {
		t.Fatalf("login failure = %d, want 0", got)
	}
}

func TestMetricsDisabledIsNoOp(t *testing.T) {
	m := New(Config{Enabled: false})
	m.Inc(MetricLoginSuccess)

	if got := m.Value(MetricLoginSuccess); got != 0 {
		t.Fatalf("disabled counter = %d, want 0", got)
	}
	if snap := m.Snapshot(); len(snap.Counters) != 0 {
		t.Fatalf("disabled snapshot = %v", snap.Counters)
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.Inc(MetricLoginSuccess)
	if m.Value(MetricLoginSuccess) != 0 {
		t.Fatal("nil metrics must read zero")
	}
	if snap := m.Snapshot(); snap.Counters == nil {
		t.Fatal("nil metrics snapshot must still carry a map")
	}
}

func TestMetricsOutOfRangeIgnored(t *testing.T) {
	m := New(Config{Enabled: true})
	m.Inc(MetricID(-1))
	m.Inc(MetricIDCount)
	m.Inc(MetricIDCount + 100)

	snap := m.Snapshot()
	for id, v := range snap.Counters {
		if v != 0 {
			t.Fatalf("counter %d = %d, want 0", id, v)
		}
	}
}

func TestMetricsSnapshotIsCopy(t *testing.T) {
	m := New(Config{Enabled: true})
	m.Inc(MetricFocusTrigger)

	snap := m.Snapshot()
	m.Inc(MetricFocusTrigger)

	if snap.Counters[MetricFocusTrigger] != 1 {
		t.Fatalf("snapshot mutated: %d", snap.Counters[MetricFocusTrigger])
	}
	if m.Value(MetricFocusTrigger) != 2 {
		t.Fatalf("live value = %d, want 2", m.Value(MetricFocusTrigger))
	}
}

func TestMetricsConcurrentInc(t *testing.T) {
	m := New(Config{Enabled: true})

	const workers = 8
	const perWorker = 1000

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				m.Inc(MetricStatePublished)
			}
		}()
	}
	wg.Wait()

	if got := m.Value(MetricStatePublished); got != workers*perWorker {
		t.Fatalf("counter = %d, want %d", got, workers*perWorker)
	}
}
