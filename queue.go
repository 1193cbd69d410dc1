package parwork

import (
	"context"
	"sync"

	"github.com/nvoskov/parwork/metrics"
)

// Instrument names registered by Queue when a metrics provider is configured.
const (
	MetricQueuePushed = "parwork_queue_pushed_total"
	MetricQueuePopped = "parwork_queue_popped_total"
	MetricQueueDepth  = "parwork_queue_depth"
)

// Queue is a FIFO handoff between producers and consumers with explicit
// end-of-stream signaling. A single mutex guards both the buffer and the
// closed flag, so items are observed in exact push order.
//
// Semantics:
//   - Push never blocks and fails with ErrQueueClosed once the queue is closed.
//   - TryPop never blocks; Pop waits with condition-variable wakeups on push
//     and close, and honors context cancellation.
//   - Close is idempotent; once closed the queue never reopens, and items
//     pushed before close remain consumable (close does not discard).
//
// The zero value is not usable; construct with NewQueue.
type Queue[T any] struct {
	mu     sync.Mutex
	wake   sync.Cond // signaled on push and close
	buf    []T
	head   int
	closed bool

	pushed metrics.Counter
	popped metrics.Counter
	depth  metrics.Gauge
}

// NewQueue creates an empty, open queue. It honors WithQueueCapacity and
// WithMetrics; other options are ignored.
func NewQueue[T any](opts ...Option) (*Queue[T], error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	p := cfg.provider()
	q := &Queue[T]{
		buf:    make([]T, 0, cfg.QueueCapacity),
		pushed: p.Counter(MetricQueuePushed),
		popped: p.Counter(MetricQueuePopped),
		depth:  p.Gauge(MetricQueueDepth),
	}
	q.wake.L = &q.mu
	return q, nil
}

// Push appends v at the tail. It never blocks; after Close it fails with
// ErrQueueClosed. Safe for concurrent use.
func (q *Queue[T]) Push(v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	q.buf = append(q.buf, v)
	q.pushed.Add(1)
	q.depth.Add(1)
	// Broadcast, not Signal: a waiter that gets canceled between wakeup and
	// lock re-acquisition must not swallow the only wakeup.
	q.wake.Broadcast()
	return nil
}

// TryPop removes and returns the head item. It never blocks; ok is false when
// the queue is empty, whether or not it is closed.
func (q *Queue[T]) TryPop() (item T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.popLocked()
}

// Pop removes and returns the head item, waiting until an item arrives, the
// queue is closed and fully drained, or ctx ends the wait.
//
// Semantics:
//   - (item, true, nil): an item was dequeued.
//   - (zero, false, nil): the queue is closed and everything pushed before
//     close has been consumed; no further item can ever arrive.
//   - (zero, false, ctx.Err()): ctx was canceled or timed out while waiting.
func (q *Queue[T]) Pop(ctx context.Context) (item T, ok bool, err error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}

	// Bridge context cancellation to the condition variable. Taking the lock
	// before broadcasting closes the race with a waiter that has checked ctx
	// and is about to call Wait.
	stop := context.AfterFunc(ctx, func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		q.wake.Broadcast()
	})
	defer stop()

	q.mu.Lock()
	defer q.mu.Unlock()
	for {
		if v, ok := q.popLocked(); ok {
			return v, true, nil
		}
		if q.closed {
			return zero, false, nil
		}
		if err := ctx.Err(); err != nil {
			return zero, false, err
		}
		q.wake.Wait()
	}
}

// popLocked removes the head item if present. Callers must hold q.mu.
func (q *Queue[T]) popLocked() (T, bool) {
	var zero T
	if q.head == len(q.buf) {
		return zero, false
	}
	v := q.buf[q.head]
	q.buf[q.head] = zero // release the reference for GC
	q.head++
	if q.head == len(q.buf) {
		q.buf = q.buf[:0]
		q.head = 0
	}
	q.popped.Add(1)
	q.depth.Add(-1)
	return v, true
}

// Close marks the queue as closed and wakes all waiters. Items already queued
// remain consumable; further pushes fail with ErrQueueClosed. Close is
// idempotent and safe for concurrent use.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.wake.Broadcast()
}

// IsClosed reports whether Close has been called.
func (q *Queue[T]) IsClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Len returns the number of items currently queued.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buf) - q.head
}
