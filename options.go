package particlestore

import (
	"log/slog"
	"runtime"

	"github.com/hupe1980/particlestore/snapshot"
)

// DefaultBlockCapacity is the number of particle slots per block.
const DefaultBlockCapacity = 1000

type options struct {
	blockCapacity    int
	memoryLimit      int64
	offHeap          bool
	maxWorkers       int
	ioLimit          int64
	compression      snapshot.Compression
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a Store.
type Option func(*options)

// WithBlockCapacity sets the number of particle slots per block for every
// type registered afterwards. Values <= 0 are ignored.
func WithBlockCapacity(capacity int) Option {
	return func(o *options) {
		if capacity > 0 {
			o.blockCapacity = capacity
		}
	}
}

// WithMemoryLimit caps the column memory of all blocks of the store.
// Add fails with ErrMemoryLimitExceeded once the budget is exhausted.
// If 0, memory is tracked but not limited.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithOffHeap places block columns in anonymous memory mappings outside the
// Go heap.
func WithOffHeap() Option {
	return func(o *options) {
		o.offHeap = true
	}
}

// WithMaxWorkers limits how many blocks Step processes concurrently.
// Defaults to GOMAXPROCS.
func WithMaxWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxWorkers = n
		}
	}
}

// WithIOLimit throttles snapshot streaming to bytesPerSec.
// If 0, unlimited.
func WithIOLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.ioLimit = bytesPerSec
	}
}

// WithCompression sets the chunk compression used by Snapshot.
func WithCompression(c snapshot.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &particlestore.BasicMetricsCollector{}
//	store := particlestore.New(particlestore.WithMetricsCollector(metrics))
//	// ... use store ...
//	stats := metrics.GetStats()
//	fmt.Printf("Steps: %d, Avg latency: %dns\n", stats.BulkWriteCount, stats.BulkWriteAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := particlestore.NewJSONLogger(slog.LevelInfo)
//	store := particlestore.New(particlestore.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		blockCapacity:    DefaultBlockCapacity,
		maxWorkers:       runtime.GOMAXPROCS(0),
		compression:      snapshot.CompressionLZ4,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
