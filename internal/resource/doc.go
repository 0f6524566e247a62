// Package resource implements the Controller for process-wide mapping limits.
//
// The Controller governs two resource types:
//
//   - Memory: Track and limit the total bytes of live mapped spans
//     (non-blocking, fail-fast)
//   - Wipe throughput: Rate-limit bulk re-zeroing so it cannot starve
//     foreground work
//
// # Memory Management
//
// Memory tracking uses a weighted semaphore for hard limits and atomic
// counters for usage tracking. AcquireMemory is non-blocking and returns
// immediately with ErrMemoryLimitExceeded if the limit would be exceeded:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 30, // 1GB limit
//	})
//
//	// Non-blocking acquire (returns error immediately if limit exceeded)
//	if err := rc.AcquireMemory(2 * size); err != nil {
//	    // ErrMemoryLimitExceeded - caller decides retry/backoff
//	}
//	defer rc.ReleaseMemory(2 * size)
//
// # Wipe Rate Limiting
//
// Token bucket rate limiter for bulk zeroing:
//
//	rc := resource.NewController(resource.Config{
//	    WipeBytesPerSec: 100 * 1024 * 1024, // 100MB/s
//	})
//
//	if err := rc.AcquireWipe(ctx, len(chunk)); err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// All Controller methods are safe for concurrent use. The underlying
// implementations use atomic operations and sync primitives.
//
// # Nil Safety
//
// All methods handle nil Controller gracefully - they become no-ops.
// This allows optional resource limiting without nil checks everywhere.
package resource
