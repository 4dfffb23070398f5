package fastbump

import (
	"sync/atomic"
)

// MetricsCollector defines an interface for collecting arena lifecycle metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Allocation and lookup are not reported: they are the hot path. Only the
// exclusive operations and capacity pressure are.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    grows    prometheus.Counter
//	    dropped  prometheus.Counter
//	}
//
//	func (p *PrometheusCollector) RecordRollback(dropped int) {
//	    p.dropped.Add(float64(dropped))
//	}
type MetricsCollector interface {
	// RecordGrow is called after each Grow or GrowTo that needed new storage.
	// err is non-nil if the memory acquirer refused it.
	RecordGrow(oldCap, newCap int, err error)

	// RecordRollback is called after each Rollback with the number of values dropped.
	RecordRollback(dropped int)

	// RecordReset is called after each Reset with the number of values dropped.
	RecordReset(dropped int)

	// RecordDrain is called after each Drain with the number of values moved out.
	RecordDrain(count int)

	// RecordFree is called once per arena when it is freed.
	RecordFree(dropped int)

	// RecordPressure is called when claims cross the pressure threshold.
	RecordPressure(claimed, capacity int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordGrow(int, int, error) {}
func (NoopMetricsCollector) RecordRollback(int)         {}
func (NoopMetricsCollector) RecordReset(int)            {}
func (NoopMetricsCollector) RecordDrain(int)            {}
func (NoopMetricsCollector) RecordFree(int)             {}
func (NoopMetricsCollector) RecordPressure(int, int)    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	GrowCount      atomic.Int64
	GrowErrors     atomic.Int64
	RollbackCount  atomic.Int64
	ResetCount     atomic.Int64
	DrainCount     atomic.Int64
	DrainedValues  atomic.Int64
	FreeCount      atomic.Int64
	DroppedValues  atomic.Int64
	PressureEvents atomic.Int64
	MaxCapacity    atomic.Int64
}

// RecordGrow implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGrow(oldCap, newCap int, err error) {
	b.GrowCount.Add(1)
	if err != nil {
		b.GrowErrors.Add(1)
		return
	}
	for {
		cur := b.MaxCapacity.Load()
		if int64(newCap) <= cur || b.MaxCapacity.CompareAndSwap(cur, int64(newCap)) {
			return
		}
	}
}

// RecordRollback implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRollback(dropped int) {
	b.RollbackCount.Add(1)
	b.DroppedValues.Add(int64(dropped))
}

// RecordReset implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReset(dropped int) {
	b.ResetCount.Add(1)
	b.DroppedValues.Add(int64(dropped))
}

// RecordDrain implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDrain(count int) {
	b.DrainCount.Add(1)
	b.DrainedValues.Add(int64(count))
}

// RecordFree implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFree(dropped int) {
	b.FreeCount.Add(1)
	b.DroppedValues.Add(int64(dropped))
}

// RecordPressure implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPressure(claimed, capacity int) {
	b.PressureEvents.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		GrowCount:      b.GrowCount.Load(),
		GrowErrors:     b.GrowErrors.Load(),
		RollbackCount:  b.RollbackCount.Load(),
		ResetCount:     b.ResetCount.Load(),
		DrainCount:     b.DrainCount.Load(),
		DrainedValues:  b.DrainedValues.Load(),
		FreeCount:      b.FreeCount.Load(),
		DroppedValues:  b.DroppedValues.Load(),
		PressureEvents: b.PressureEvents.Load(),
		MaxCapacity:    b.MaxCapacity.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	GrowCount      int64
	GrowErrors     int64
	RollbackCount  int64
	ResetCount     int64
	DrainCount     int64
	DrainedValues  int64
	FreeCount      int64
	DroppedValues  int64
	PressureEvents int64
	MaxCapacity    int64
}
