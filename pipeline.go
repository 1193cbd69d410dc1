package parwork

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/ygrebnov/errorc"
)

// Pipeline owns a queue with one producer feeding it and one consumer
// draining it, and runs both ends to completion.
type Pipeline[T any] struct {
	queue    *Queue[T]
	producer *Producer[T]
	consumer *Consumer[T]
	started  atomic.Bool
}

// NewPipeline assembles a pipeline emitting count items through emit and
// delivering them to sink in push order. It honors WithEmitDelay,
// WithPollInterval, WithQueueCapacity and WithMetrics.
func NewPipeline[T any](count int, emit func(int) T, sink func(T) error, opts ...Option) (*Pipeline[T], error) {
	if count < 0 {
		return nil, errorc.With(ErrInvalidLength, errorc.String("", "NewPipeline requires count >= 0"))
	}
	if emit == nil {
		return nil, errorc.With(ErrInvalidConfig, errorc.String("", "NewPipeline requires an emit function"))
	}
	if sink == nil {
		return nil, errorc.With(ErrInvalidConfig, errorc.String("", "NewPipeline requires a sink function"))
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	q, err := NewQueue[T](opts...)
	if err != nil {
		return nil, err
	}
	return &Pipeline[T]{
		queue:    q,
		producer: &Producer[T]{Queue: q, Count: count, Emit: emit, Delay: cfg.EmitDelay},
		consumer: &Consumer[T]{Queue: q, Sink: sink, PollInterval: cfg.PollInterval},
	}, nil
}

// Run starts the producer and the consumer, waits for both, and returns their
// errors joined. A producer abort reaches the consumer through the queue
// close, so the consumer still drains whatever was pushed; a consumer abort
// cancels the producer, which would otherwise keep emitting into a queue
// nobody reads.
//
// Run is one-shot: a second call fails with ErrInvalidState.
func (p *Pipeline[T]) Run(ctx context.Context) error {
	if !p.started.CompareAndSwap(false, true) {
		return ErrInvalidState
	}

	rctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg         sync.WaitGroup
		produceErr error
		consumeErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		produceErr = p.producer.Run(rctx)
	}()
	go func() {
		defer wg.Done()
		consumeErr = p.consumer.Run(rctx)
		if consumeErr != nil {
			cancel()
		}
	}()
	wg.Wait()

	return errors.Join(produceErr, consumeErr)
}
