// Package parwork provides two small coordination primitives: a closable FIFO
// queue shared between a producer and a consumer, and a partitioned parallel
// reduction over a slice.
//
// Queue
// Queue is a mutex-guarded FIFO with a closed flag. Push never blocks and
// fails with ErrQueueClosed once the queue is closed; TryPop never blocks;
// Pop waits on a condition variable until an item arrives or the queue is
// closed and drained. Producer and Consumer run the two ends of a queue, and
// Pipeline owns a complete one-producer/one-consumer round trip.
//
// Reduction
// Reduce splits the input into one contiguous span per worker via Split,
// folds every span in its own goroutine, joins them all, and combines the
// partial results in ascending span order, which keeps the result
// deterministic even for non-commutative combine functions. MapReduce adds a
// fallible per-element map with fail-fast semantics; Sum is the ready-made
// numeric instance.
//
// Defaults
// Unless overridden, the following defaults apply:
//   - Workers: 0 (runtime.NumCPU() at call time)
//   - JoinTimeout: 0 (join waits indefinitely)
//   - EmitDelay: 0 (no pause between pushes)
//   - PollInterval: 0 (consumer blocks instead of polling)
//   - QueueCapacity: 0
//   - Metrics: nil (measurements are discarded)
//
// Metrics
// Pass WithMetrics with a metrics.Provider to meter queue traffic and
// reductions. metrics.NewBasic is an in-process provider with snapshot
// accessors for tests and demos; metrics.NewNoop discards everything.
package parwork
