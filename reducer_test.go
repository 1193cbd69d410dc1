package parwork

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nvoskov/parwork/metrics"
)

func TestReduce_MatchesSequentialFold(t *testing.T) {
	add := func(a, b int) int { return a + b }
	tests := []struct {
		name    string
		size    int
		workers uint
	}{
		{"single_worker", 100, 1},
		{"even_split", 1000, 4},
		{"remainder_to_last", 1003, 4},
		{"more_workers_than_items", 3, 16},
		{"single_item", 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := make([]int, tt.size)
			want := 0
			for i := range input {
				input[i] = i * i
				want += input[i]
			}
			got, err := Reduce(context.Background(), input, 0, add, WithWorkers(tt.workers))
			if err != nil {
				t.Fatalf("Reduce: %v", err)
			}
			if got != want {
				t.Fatalf("Reduce: expected %d, got %d", want, got)
			}
		})
	}
}

func TestReduce_EmptyInput_ReturnsIdentity(t *testing.T) {
	var calls atomic.Int64
	combine := func(a, b int) int {
		calls.Add(1)
		return a + b
	}
	got, err := Reduce(context.Background(), nil, 42, combine, WithWorkers(4))
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if got != 42 {
		t.Fatalf("Reduce on empty input: expected identity 42, got %d", got)
	}
	if n := calls.Load(); n != 0 {
		t.Fatalf("combine called %d times on empty input, expected 0", n)
	}
}

func TestReduce_DeterministicCombineOrder(t *testing.T) {
	// Concatenation is associative but not commutative, so any deviation from
	// ascending span order changes the result.
	concat := func(a, b string) string { return a + b }
	letters := strings.Split("abcdefghijklmnopqrstuvwxyz", "")
	want := "abcdefghijklmnopqrstuvwxyz"
	for i := 0; i < 20; i++ {
		got, err := Reduce(context.Background(), letters, "", concat, WithWorkers(5))
		if err != nil {
			t.Fatalf("Reduce: %v", err)
		}
		if got != want {
			t.Fatalf("combine order not deterministic: expected %q, got %q", want, got)
		}
	}
}

func TestReduce_NilCombine(t *testing.T) {
	if _, err := Reduce[int](context.Background(), []int{1}, 0, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Reduce with nil combine: expected ErrInvalidConfig, got %v", err)
	}
}

func TestReduce_InvalidWorkerCount(t *testing.T) {
	add := func(a, b int) int { return a + b }
	if _, err := Reduce(context.Background(), []int{1, 2}, 0, add, WithWorkers(0)); !errors.Is(err, ErrInvalidWorkerCount) {
		t.Fatalf("Reduce: expected ErrInvalidWorkerCount, got %v", err)
	}
}

func TestReduce_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	add := func(a, b int) int { return a + b }
	if _, err := Reduce(ctx, []int{1, 2, 3}, 0, add, WithWorkers(2)); !errors.Is(err, context.Canceled) {
		t.Fatalf("Reduce: expected context.Canceled, got %v", err)
	}
}

func TestReduce_JoinTimeout(t *testing.T) {
	release := make(chan struct{})
	blocked := func(a, b int) int {
		<-release
		return a + b
	}
	_, err := Reduce(
		context.Background(),
		[]int{1, 2, 3, 4},
		0,
		blocked,
		WithWorkers(2),
		WithJoinTimeout(50*time.Millisecond),
	)
	close(release) // unstick the workers before asserting
	if !errors.Is(err, ErrJoinTimeout) {
		t.Fatalf("Reduce: expected ErrJoinTimeout, got %v", err)
	}
}

func TestReduce_Metrics(t *testing.T) {
	m := metrics.NewBasic()
	add := func(a, b int) int { return a + b }
	if _, err := Reduce(context.Background(), []int{1, 2, 3}, 0, add, WithWorkers(2), WithMetrics(m)); err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if v := m.CounterValue(MetricReduceRuns); v != 1 {
		t.Errorf("%s: expected 1, got %d", MetricReduceRuns, v)
	}
	s, ok := m.HistogramSummary(MetricReduceDuration)
	if !ok || s.Count != 1 {
		t.Errorf("%s: expected one observation, got %+v", MetricReduceDuration, s)
	}
}

func TestMapReduce_SquaresThenSums(t *testing.T) {
	input := make([]int, 500)
	want := 0
	for i := range input {
		input[i] = i
		want += i * i
	}
	square := func(_ context.Context, v int) (int, error) { return v * v, nil }
	add := func(a, b int) int { return a + b }
	got, err := MapReduce(context.Background(), input, 0, square, add, WithWorkers(4))
	if err != nil {
		t.Fatalf("MapReduce: %v", err)
	}
	if got != want {
		t.Fatalf("MapReduce: expected %d, got %d", want, got)
	}
}

func TestMapReduce_FailFast(t *testing.T) {
	errBoom := errors.New("boom")
	input := make([]int, 10_000)
	for i := range input {
		input[i] = i
	}
	mapFn := func(_ context.Context, v int) (int, error) {
		if v == 7777 {
			return 0, errBoom
		}
		return v, nil
	}
	add := func(a, b int) int { return a + b }
	_, err := MapReduce(context.Background(), input, 0, mapFn, add, WithWorkers(4))
	if !errors.Is(err, errBoom) {
		t.Fatalf("MapReduce: expected the map error, got %v", err)
	}
}

func TestMapReduce_ErrorCancelsOtherWorkers(t *testing.T) {
	errBoom := errors.New("boom")
	failed := make(chan struct{})
	var canceled atomic.Bool
	mapFn := func(ctx context.Context, v int) (int, error) {
		switch {
		case v == 0:
			close(failed)
			return 0, errBoom
		case v == 1:
			// Second span: wait until the failure happened, then observe the
			// fail-fast cancellation.
			<-failed
			select {
			case <-ctx.Done():
				canceled.Store(true)
			case <-time.After(time.Second):
			}
			return 0, ctx.Err()
		default:
			return v, nil
		}
	}
	add := func(a, b int) int { return a + b }
	_, err := MapReduce(context.Background(), []int{0, 1}, 0, mapFn, add, WithWorkers(2))
	if !errors.Is(err, errBoom) {
		t.Fatalf("MapReduce: expected the map error, got %v", err)
	}
	if !canceled.Load() {
		t.Fatal("failure did not cancel the remaining workers")
	}
}

func TestSum_MillionByFourWorkers(t *testing.T) {
	input := make([]int64, 1_000_000)
	for i := range input {
		input[i] = int64(i)
	}
	got, err := Sum(context.Background(), input, WithWorkers(4))
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	if want := int64(499_999_500_000); got != want {
		t.Fatalf("Sum: expected %d, got %d", want, got)
	}
}

func TestSum_Floats(t *testing.T) {
	input := []float64{0.5, 1.5, 2.0, 4.0}
	got, err := Sum(context.Background(), input, WithWorkers(2))
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	if got != 8.0 {
		t.Fatalf("Sum: expected 8.0, got %v", got)
	}
}
