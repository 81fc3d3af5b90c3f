package polyvec

import (
	"sync/atomic"
)

// MetricsCollector defines an interface for collecting container metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    relocations prometheus.Counter
//	    capacity    prometheus.Gauge
//	}
//
//	func (p *PrometheusCollector) RecordResize(oldCap, newCap int) {
//	    p.relocations.Inc()
//	    p.capacity.Set(float64(newCap))
//	}
type MetricsCollector interface {
	// RecordResize is called after the arena capacity changed.
	// newCap is zero when the arena was released.
	RecordResize(oldCap, newCap int)

	// RecordShift is called after insert or remove moved bytes inside the arena.
	RecordShift(bytes int)

	// RecordAllocFailure is called when a capacity request failed.
	RecordAllocFailure(requested int, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordResize(int, int)         {}
func (NoopMetricsCollector) RecordShift(int)               {}
func (NoopMetricsCollector) RecordAllocFailure(int, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
// A single collector may be shared by several containers.
type BasicMetricsCollector struct {
	GrowCount     atomic.Int64
	ShrinkCount   atomic.Int64
	ReleaseCount  atomic.Int64
	PeakCapacity  atomic.Int64
	ShiftCount    atomic.Int64
	ShiftedBytes  atomic.Int64
	AllocFailures atomic.Int64
}

// RecordResize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordResize(oldCap, newCap int) {
	switch {
	case newCap == 0:
		b.ReleaseCount.Add(1)
	case newCap > oldCap:
		b.GrowCount.Add(1)
	default:
		b.ShrinkCount.Add(1)
	}

	for {
		peak := b.PeakCapacity.Load()
		if int64(newCap) <= peak || b.PeakCapacity.CompareAndSwap(peak, int64(newCap)) {
			return
		}
	}
}

// RecordShift implements MetricsCollector.
func (b *BasicMetricsCollector) RecordShift(bytes int) {
	b.ShiftCount.Add(1)
	b.ShiftedBytes.Add(int64(bytes))
}

// RecordAllocFailure implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAllocFailure(int, error) {
	b.AllocFailures.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		GrowCount:     b.GrowCount.Load(),
		ShrinkCount:   b.ShrinkCount.Load(),
		ReleaseCount:  b.ReleaseCount.Load(),
		PeakCapacity:  b.PeakCapacity.Load(),
		ShiftCount:    b.ShiftCount.Load(),
		ShiftedBytes:  b.ShiftedBytes.Load(),
		AvgShiftBytes: b.getAvgShiftBytes(),
		AllocFailures: b.AllocFailures.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgShiftBytes() int64 {
	count := b.ShiftCount.Load()
	if count == 0 {
		return 0
	}
	return b.ShiftedBytes.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	GrowCount     int64
	ShrinkCount   int64
	ReleaseCount  int64
	PeakCapacity  int64
	ShiftCount    int64
	ShiftedBytes  int64
	AvgShiftBytes int64
	AllocFailures int64
}
