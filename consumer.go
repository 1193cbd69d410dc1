package parwork

import (
	"context"
	"math"
	"time"

	"github.com/valyala/fastrand"
	"github.com/ygrebnov/errorc"
)

// Consumer drains a queue in arrival order until the queue is closed and
// everything pushed before the close has been consumed.
type Consumer[T any] struct {
	// Queue is the queue to drain. Required.
	Queue *Queue[T]

	// Sink receives every item in arrival order. A sink error stops the run
	// immediately. Required.
	Sink func(T) error

	// PollInterval switches Run from blocking waits to polling: after an
	// empty pop the consumer sleeps a jittered interval and retries. Zero
	// means blocking waits on the queue's condition variable.
	PollInterval time.Duration
}

// Run consumes until the queue reports end of stream or ctx is canceled. The
// observable contract is identical in both modes: every item pushed before
// close is delivered to Sink in push order, then Run returns nil.
func (c *Consumer[T]) Run(ctx context.Context) error {
	if c.Queue == nil {
		return errorc.With(ErrInvalidConfig, errorc.String("", "Consumer requires a queue"))
	}
	if c.Sink == nil {
		return errorc.With(ErrInvalidConfig, errorc.String("", "Consumer requires a sink function"))
	}
	if c.PollInterval > 0 {
		return c.poll(ctx)
	}

	for {
		v, ok, err := c.Queue.Pop(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil // closed and drained
		}
		if err := c.Sink(v); err != nil {
			return err
		}
	}
}

// poll is the polling rendition of Run. Termination reads the closed flag
// first and pops afterwards: an empty pop that FOLLOWS an observed close
// proves the queue is drained for good, while the reverse order races with a
// producer pushing a final item right before closing.
func (c *Consumer[T]) poll(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		closed := c.Queue.IsClosed()
		v, ok := c.Queue.TryPop()
		if ok {
			if err := c.Sink(v); err != nil {
				return err
			}
			continue
		}
		if closed {
			return nil
		}
		if err := sleep(ctx, jittered(c.PollInterval)); err != nil {
			return err
		}
	}
}

// jittered spreads an idle wait uniformly over [d, d+d/2) so that concurrent
// pollers do not wake in lockstep.
func jittered(d time.Duration) time.Duration {
	half := d / 2
	if half <= 0 {
		return d
	}
	if half > math.MaxUint32 {
		half = math.MaxUint32
	}
	return d + time.Duration(fastrand.Uint32n(uint32(half)))
}
