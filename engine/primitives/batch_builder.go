package primitives

import "time"

// BatchBuilderOption is a functional option for configuring a Batch during construction.
type BatchBuilderOption func(*batch)

// WithWorkers sets the maximum number of concurrent jobs. Values below 1 use one worker.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - BatchBuilderOption: functional option to set the worker count
func WithWorkers(n int) BatchBuilderOption {
	return func(b *batch) {
		b.workers = max(n, 1)
	}
}

// WithQueueSize sets how many submitted jobs may wait for a free worker.
func WithQueueSize(n int) BatchBuilderOption {
	return func(b *batch) {
		if n > 0 {
			b.queueSize = n
		}
	}
}

// WithIdleTimeout sets the idle timeout handed to the worker pool.
func WithIdleTimeout(d time.Duration) BatchBuilderOption {
	return func(b *batch) {
		if d > 0 {
			b.idle = d
		}
	}
}
