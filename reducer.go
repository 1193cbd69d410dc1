package parwork

import (
	"context"
	"sync"
	"time"

	"github.com/ygrebnov/errorc"
)

// Instrument names registered by the reducer when a metrics provider is
// configured.
const (
	MetricReduceRuns     = "parwork_reduce_runs_total"
	MetricReduceDuration = "parwork_reduce_duration_seconds"
)

// cancelCheckStride is how many elements a worker folds between context
// checks. Coarse so that the check does not dominate cheap combine functions.
const cancelCheckStride = 1024

// Reduce folds input in parallel. The index range is split with Split into one
// contiguous span per worker; each worker folds its span seeded with identity
// and writes the partial result into a dedicated slot. After all workers have
// joined, the partials are folded in ascending span order, so the result is
// deterministic even when combine is not commutative.
//
// Semantics:
//   - combine must be associative and treat identity as neutral; it is called
//     concurrently from worker goroutines.
//   - Empty input returns identity without spawning workers.
//   - Cancellation is checked between elements at a coarse stride; a canceled
//     ctx surfaces as its ctx.Err().
//   - Honors WithWorkers (default runtime.NumCPU), WithJoinTimeout and
//     WithMetrics.
func Reduce[T any](ctx context.Context, input []T, identity T, combine func(T, T) T, opts ...Option) (T, error) {
	if combine == nil {
		return identity, errorc.With(ErrInvalidConfig, errorc.String("", "Reduce requires a combine function"))
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return identity, err
	}
	fold := func(ctx context.Context, s Span, in []T) (T, error) {
		acc := identity
		for i := s.Start; i < s.End; i++ {
			if (i-s.Start)%cancelCheckStride == 0 {
				if err := ctx.Err(); err != nil {
					return identity, err
				}
			}
			acc = combine(acc, in[i])
		}
		return acc, nil
	}
	return runSpans(ctx, &cfg, input, identity, fold, combine)
}

// MapReduce maps every element with mapFn and folds the results in parallel,
// partitioned exactly like Reduce. The first mapFn error cancels the remaining
// workers and is returned; no partial result is exposed.
//
// Honors WithWorkers, WithJoinTimeout and WithMetrics.
func MapReduce[T, R any](ctx context.Context, input []T, identity R, mapFn func(context.Context, T) (R, error), combine func(R, R) R, opts ...Option) (R, error) {
	if mapFn == nil {
		return identity, errorc.With(ErrInvalidConfig, errorc.String("", "MapReduce requires a map function"))
	}
	if combine == nil {
		return identity, errorc.With(ErrInvalidConfig, errorc.String("", "MapReduce requires a combine function"))
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return identity, err
	}
	fold := func(ctx context.Context, s Span, in []T) (R, error) {
		acc := identity
		for i := s.Start; i < s.End; i++ {
			if (i-s.Start)%cancelCheckStride == 0 {
				if err := ctx.Err(); err != nil {
					return identity, err
				}
			}
			r, err := mapFn(ctx, in[i])
			if err != nil {
				return identity, err
			}
			acc = combine(acc, r)
		}
		return acc, nil
	}
	return runSpans(ctx, &cfg, input, identity, fold, combine)
}

// Number is the constraint accepted by Sum: any type whose underlying type is
// a built-in integer or float.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Sum adds input in parallel. It is Reduce with identity 0 and addition.
func Sum[T Number](ctx context.Context, input []T, opts ...Option) (T, error) {
	var zero T
	return Reduce(ctx, input, zero, func(a, b T) T { return a + b }, opts...)
}

// runSpans dispatches one goroutine per span, joins them all, and folds the
// partial results in ascending span order. Every worker owns exactly one slot
// of the partials slice, so no synchronization beyond the join is needed.
func runSpans[T, R any](ctx context.Context, cfg *config, input []T, identity R, fold func(context.Context, Span, []T) (R, error), combine func(R, R) R) (R, error) {
	p := cfg.provider()
	runs := p.Counter(MetricReduceRuns)
	duration := p.Histogram(MetricReduceDuration)
	start := time.Now()
	defer func() {
		runs.Add(1)
		duration.Observe(time.Since(start).Seconds())
	}()

	if len(input) == 0 {
		return identity, nil
	}
	if err := ctx.Err(); err != nil {
		return identity, err
	}

	spans, err := Split(len(input), cfg.workerCount())
	if err != nil {
		return identity, err
	}

	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// The first failure is the cause; errors the cancellation then provokes in
	// the remaining workers are collateral and must not mask it.
	var (
		once  sync.Once
		cause error
	)
	fail := func(err error) {
		once.Do(func() {
			cause = err
			cancel() // fail fast: release the remaining workers
		})
	}

	partials := make([]R, len(spans))
	var wg sync.WaitGroup
	for i, s := range spans {
		wg.Add(1)
		go func(i int, s Span) {
			defer wg.Done()
			r, err := fold(wctx, s, input)
			if err != nil {
				fail(err)
				return
			}
			partials[i] = r
		}(i, s)
	}

	if err := waitJoin(&wg, cancel, cfg.JoinTimeout); err != nil {
		return identity, err
	}
	if cause != nil {
		return identity, cause
	}

	out := identity
	for _, part := range partials {
		out = combine(out, part)
	}
	return out, nil
}

// waitJoin blocks until the group has joined. With a positive timeout the wait
// is bounded: on expiry the workers are canceled and ErrJoinTimeout is
// returned without waiting for stragglers to drain.
func waitJoin(wg *sync.WaitGroup, cancel context.CancelFunc, timeout time.Duration) error {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	if timeout <= 0 {
		<-done
		return nil
	}

	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-done:
		return nil
	case <-t.C:
		cancel()
		return ErrJoinTimeout
	}
}
