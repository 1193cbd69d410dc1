package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nvoskov/parwork"
)

// testCase describes one pipeline round trip: items produced through a shared
// queue into a collecting consumer.
type testCase struct {
	name  string
	items int
	opts  []parwork.Option
}

// runPipelineCase runs a full pipeline for tc and returns the delivered items
// in arrival order.
func runPipelineCase(t *testing.T, tc testCase) []int {
	t.Helper()

	var delivered []int
	p, err := parwork.NewPipeline(
		tc.items,
		func(i int) int { return i + 1 },
		func(v int) error {
			delivered = append(delivered, v)
			return nil
		},
		tc.opts...,
	)
	require.NoError(t, err, "failed to assemble pipeline")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, p.Run(ctx), "pipeline run failed")

	return delivered
}

// requireSequence asserts that got is exactly 1..n in order.
func requireSequence(t *testing.T, got []int, n int) {
	t.Helper()
	require.Len(t, got, n)
	for i, v := range got {
		require.Equal(t, i+1, v, "delivery order broken at index %d", i)
	}
}
