package slicemap

import (
	"sync/atomic"
)

// CompactionStats describes the work done by one slice removal.
type CompactionStats struct {
	// Removed is the range that was drained from the item buffer.
	Removed Range
	// ItemsShifted is the number of items moved down to close the hole.
	ItemsShifted int
	// SlicesRebased is the number of surviving ranges whose bounds were lowered.
	SlicesRebased int
}

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Collectors are called synchronously from the mutating call, so they should
// be cheap. One collector may be shared by several containers.
type MetricsCollector interface {
	// RecordAdd is called after each add. items is the length of the new
	// slice, err is nil if successful.
	RecordAdd(items int, err error)

	// RecordRemove is called after each remove. found is false for unknown
	// or stale keys, in which case stats is zero.
	RecordRemove(stats CompactionStats, found bool)

	// RecordClear is called after each clear with the counts that were dropped.
	RecordClear(items, slices int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAdd(int, error)               {}
func (NoopMetricsCollector) RecordRemove(CompactionStats, bool) {}
func (NoopMetricsCollector) RecordClear(int, int)               {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AddCount      atomic.Int64
	AddErrors     atomic.Int64
	ItemsAdded    atomic.Int64
	RemoveCount   atomic.Int64
	RemoveMisses  atomic.Int64
	ItemsRemoved  atomic.Int64
	ItemsShifted  atomic.Int64
	SlicesRebased atomic.Int64
	ClearCount    atomic.Int64
}

// RecordAdd implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAdd(items int, err error) {
	b.AddCount.Add(1)
	if err != nil {
		b.AddErrors.Add(1)
		return
	}
	b.ItemsAdded.Add(int64(items))
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(stats CompactionStats, found bool) {
	if !found {
		b.RemoveMisses.Add(1)
		return
	}
	b.RemoveCount.Add(1)
	b.ItemsRemoved.Add(int64(stats.Removed.Len()))
	b.ItemsShifted.Add(int64(stats.ItemsShifted))
	b.SlicesRebased.Add(int64(stats.SlicesRebased))
}

// RecordClear implements MetricsCollector.
func (b *BasicMetricsCollector) RecordClear(int, int) {
	b.ClearCount.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AddCount:          b.AddCount.Load(),
		AddErrors:         b.AddErrors.Load(),
		ItemsAdded:        b.ItemsAdded.Load(),
		RemoveCount:       b.RemoveCount.Load(),
		RemoveMisses:      b.RemoveMisses.Load(),
		ItemsRemoved:      b.ItemsRemoved.Load(),
		ItemsShifted:      b.ItemsShifted.Load(),
		SlicesRebased:     b.SlicesRebased.Load(),
		ClearCount:        b.ClearCount.Load(),
		AvgShiftPerRemove: b.avgShiftPerRemove(),
	}
}

func (b *BasicMetricsCollector) avgShiftPerRemove() int64 {
	count := b.RemoveCount.Load()
	if count == 0 {
		return 0
	}
	return b.ItemsShifted.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AddCount          int64
	AddErrors         int64
	ItemsAdded        int64
	RemoveCount       int64
	RemoveMisses      int64
	ItemsRemoved      int64
	ItemsShifted      int64
	SlicesRebased     int64
	ClearCount        int64
	AvgShiftPerRemove int64
}
