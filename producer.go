package parwork

import (
	"context"
	"time"

	"github.com/ygrebnov/errorc"
)

// Producer emits a finite sequence into a queue and closes it when done.
type Producer[T any] struct {
	// Queue receives the emitted items. Required.
	Queue *Queue[T]

	// Count is how many items to emit.
	Count int

	// Emit maps the zero-based emission index to an item. Required.
	Emit func(int) T

	// Delay pauses between consecutive pushes, simulating upstream latency.
	// Zero means no pause.
	Delay time.Duration
}

// Run pushes Emit(0) .. Emit(Count-1) in order, pausing Delay between
// consecutive pushes, and closes the queue before returning. The close happens
// on every exit path, including push failure and cancellation, so a downstream
// consumer always observes end of stream. A failed push stops the run
// immediately; there is no retry.
func (p *Producer[T]) Run(ctx context.Context) error {
	if p.Queue == nil {
		return errorc.With(ErrInvalidConfig, errorc.String("", "Producer requires a queue"))
	}
	if p.Emit == nil {
		return errorc.With(ErrInvalidConfig, errorc.String("", "Producer requires an emit function"))
	}
	defer p.Queue.Close()

	for i := 0; i < p.Count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i > 0 && p.Delay > 0 {
			if err := sleep(ctx, p.Delay); err != nil {
				return err
			}
		}
		if err := p.Queue.Push(p.Emit(i)); err != nil {
			return err
		}
	}
	return nil
}

// sleep waits d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
