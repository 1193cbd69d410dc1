package parwork

import (
	"errors"
	"reflect"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		n    int
		k    int
		want []Span
	}{
		{"even", 8, 4, []Span{{0, 2}, {2, 4}, {4, 6}, {6, 8}}},
		{"remainder_to_last", 10, 3, []Span{{0, 3}, {3, 6}, {6, 10}}},
		{"single_worker", 7, 1, []Span{{0, 7}}},
		{"empty_range", 0, 3, []Span{{0, 0}, {0, 0}, {0, 0}}},
		{"more_workers_than_items", 2, 4, []Span{{0, 0}, {0, 0}, {0, 0}, {0, 2}}},
		{
			"million_by_four",
			1_000_000,
			4,
			[]Span{{0, 250_000}, {250_000, 500_000}, {500_000, 750_000}, {750_000, 1_000_000}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.n, tt.k)
			if err != nil {
				t.Fatalf("Split(%d, %d): %v", tt.n, tt.k, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Split(%d, %d): expected %v, got %v", tt.n, tt.k, tt.want, got)
			}
		})
	}
}

func TestSplit_CoversRangeExactly(t *testing.T) {
	for _, n := range []int{0, 1, 2, 7, 100, 101, 999, 1024} {
		for _, k := range []int{1, 2, 3, 4, 7, 16, 200} {
			spans, err := Split(n, k)
			if err != nil {
				t.Fatalf("Split(%d, %d): %v", n, k, err)
			}
			if len(spans) != k {
				t.Fatalf("Split(%d, %d): expected %d spans, got %d", n, k, k, len(spans))
			}
			chunk := n / k
			prev := 0
			for i, s := range spans {
				if s.Start != prev {
					t.Fatalf("Split(%d, %d): span %d starts at %d, expected %d", n, k, i, s.Start, prev)
				}
				if s.End < s.Start {
					t.Fatalf("Split(%d, %d): span %d is inverted: %v", n, k, i, s)
				}
				if i < k-1 && s.Len() != chunk {
					t.Fatalf("Split(%d, %d): span %d holds %d indices, expected %d", n, k, i, s.Len(), chunk)
				}
				prev = s.End
			}
			if prev != n {
				t.Fatalf("Split(%d, %d): spans end at %d, expected %d", n, k, prev, n)
			}
		}
	}
}

func TestSplit_InvalidArguments(t *testing.T) {
	if _, err := Split(10, 0); !errors.Is(err, ErrInvalidWorkerCount) {
		t.Fatalf("Split(10, 0): expected ErrInvalidWorkerCount, got %v", err)
	}
	if _, err := Split(10, -3); !errors.Is(err, ErrInvalidWorkerCount) {
		t.Fatalf("Split(10, -3): expected ErrInvalidWorkerCount, got %v", err)
	}
	if _, err := Split(-1, 2); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("Split(-1, 2): expected ErrInvalidLength, got %v", err)
	}
}
