package parwork

import "github.com/ygrebnov/errorc"

// Span is a half-open index interval [Start, End) assigned to a single worker.
type Span struct {
	Start int
	End   int
}

// Len returns the number of indices covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Split divides the index range [0, n) into k contiguous, non-overlapping
// spans covering every index exactly once. Each of the first k-1 spans holds
// floor(n/k) indices; the last span absorbs the remainder, so span lengths
// differ only at the tail. When k > n the leading spans are empty and the
// last span carries the whole range.
//
// Split fails with ErrInvalidWorkerCount when k < 1 and with ErrInvalidLength
// when n < 0.
func Split(n, k int) ([]Span, error) {
	if k < 1 {
		return nil, errorc.With(ErrInvalidWorkerCount, errorc.String("", "Split requires k >= 1"))
	}
	if n < 0 {
		return nil, errorc.With(ErrInvalidLength, errorc.String("", "Split requires n >= 0"))
	}
	chunk := n / k
	spans := make([]Span, k)
	for i := 0; i < k-1; i++ {
		spans[i] = Span{Start: i * chunk, End: (i + 1) * chunk}
	}
	spans[k-1] = Span{Start: (k - 1) * chunk, End: n}
	return spans, nil
}
