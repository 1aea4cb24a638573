package particlestore

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordBulkWrite is called after each Step.
	// particles is the number of particles handed to the callback.
	RecordBulkWrite(particles int, duration time.Duration, err error)

	// RecordBlockAlloc is called when Add allocates new blocks.
	// bytes is the column memory of the new blocks.
	RecordBlockAlloc(blocks int, bytes int64)

	// RecordSnapshot is called after each Snapshot.
	RecordSnapshot(bytes int64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBulkWrite(int, time.Duration, error)  {}
func (NoopMetricsCollector) RecordBlockAlloc(int, int64)                {}
func (NoopMetricsCollector) RecordSnapshot(int64, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BulkWriteCount      atomic.Int64
	BulkWriteErrors     atomic.Int64
	BulkWriteParticles  atomic.Int64
	BulkWriteTotalNanos atomic.Int64
	BlocksAllocated     atomic.Int64
	BytesAllocated      atomic.Int64
	SnapshotCount       atomic.Int64
	SnapshotErrors      atomic.Int64
	SnapshotBytes       atomic.Int64
}

// RecordBulkWrite implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBulkWrite(particles int, duration time.Duration, err error) {
	b.BulkWriteCount.Add(1)
	b.BulkWriteTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BulkWriteErrors.Add(1)
		return
	}
	b.BulkWriteParticles.Add(int64(particles))
}

// RecordBlockAlloc implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBlockAlloc(blocks int, bytes int64) {
	b.BlocksAllocated.Add(int64(blocks))
	b.BytesAllocated.Add(bytes)
}

// RecordSnapshot implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshot(bytes int64, duration time.Duration, err error) {
	b.SnapshotCount.Add(1)
	if err != nil {
		b.SnapshotErrors.Add(1)
		return
	}
	b.SnapshotBytes.Add(bytes)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BulkWriteCount:     b.BulkWriteCount.Load(),
		BulkWriteErrors:    b.BulkWriteErrors.Load(),
		BulkWriteParticles: b.BulkWriteParticles.Load(),
		BulkWriteAvgNanos:  b.getAvgBulkWriteNanos(),
		BlocksAllocated:    b.BlocksAllocated.Load(),
		BytesAllocated:     b.BytesAllocated.Load(),
		SnapshotCount:      b.SnapshotCount.Load(),
		SnapshotErrors:     b.SnapshotErrors.Load(),
		SnapshotBytes:      b.SnapshotBytes.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgBulkWriteNanos() int64 {
	count := b.BulkWriteCount.Load()
	if count == 0 {
		return 0
	}
	return b.BulkWriteTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BulkWriteCount     int64
	BulkWriteErrors    int64
	BulkWriteParticles int64
	BulkWriteAvgNanos  int64
	BlocksAllocated    int64
	BytesAllocated     int64
	SnapshotCount      int64
	SnapshotErrors     int64
	SnapshotBytes      int64
}
