package queens

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveBatchOrderMatchesInput(t *testing.T) {
	results, err := SolveBatch(context.Background(), []int{3, 4, 5})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, 3, results[0].N)
	assert.False(t, results[0].Solution.Satisfiable)

	assert.Equal(t, 4, results[1].N)
	assert.True(t, results[1].Solution.Satisfiable)

	assert.Equal(t, 5, results[2].N)
	assert.True(t, results[2].Solution.Satisfiable)
}

// TestSolveBatchSatisfiableRange covers spec.md §8's named testable
// property (satisfiable for n=4 through n=12 at minimum) via the
// concurrent batch front end, not just the single-board path.
func TestSolveBatchSatisfiableRange(t *testing.T) {
	ns := make([]int, 0, 9)
	for n := 4; n <= 12; n++ {
		ns = append(ns, n)
	}

	results, err := SolveBatch(context.Background(), ns)
	require.NoError(t, err)
	require.Len(t, results, len(ns))

	for i, n := range ns {
		require.NoError(t, results[i].Err, "n=%d", n)
		assert.Equal(t, n, results[i].N)
		assertValidSolution(t, n, results[i].Solution)
	}
}

func TestSolveBatchPropagatesInvalidSize(t *testing.T) {
	results, err := SolveBatch(context.Background(), []int{1})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, ErrInvalidSize)
}
