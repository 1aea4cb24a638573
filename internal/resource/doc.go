// Package resource implements the Controller for memory, worker and IO budgets.
//
// The Controller provides centralized management of three resource types:
//
//   - Memory: Track and limit block column memory (non-blocking, fail-fast)
//   - Concurrency: Limit concurrent per-block step workers
//   - IO: Rate-limit snapshot streaming
//
// # Architecture
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                        Controller                           │
//	├─────────────────┬─────────────────┬─────────────────────────┤
//	│  Memory Limit   │  Step Workers   │  IO Rate Limiter        │
//	│  (fail-fast)    │  (sem)          │  (token bucket)         │
//	├─────────────────┼─────────────────┼─────────────────────────┤
//	│  AcquireMemory  │  AcquireWorker  │  AcquireIO              │
//	│  ReleaseMemory  │  ReleaseWorker  │  RateLimitedWriter      │
//	│  MemoryUsage    │  MaxWorkers     │  RateLimitedReader      │
//	└─────────────────┴─────────────────┴─────────────────────────┘
//
// # Memory Management
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 30, // 1GB limit
//	})
//
//	if err := rc.AcquireMemory(blockBytes); err != nil {
//	    // ErrMemoryLimitExceeded - no block is allocated
//	}
//	defer rc.ReleaseMemory(blockBytes)
//
// # Nil Safety
//
// All methods handle nil Controller gracefully - they become no-ops.
// This allows optional resource limiting without nil checks everywhere.
package resource
