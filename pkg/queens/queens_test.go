package queens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsSmallBoards(t *testing.T) {
	_, err := New(1)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestColumnLetters(t *testing.T) {
	cases := map[int]string{0: "a", 1: "b", 25: "z", 26: "aa", 27: "ab"}
	for n, want := range cases {
		assert.Equal(t, want, columnLetters(n))
	}
}

func TestSolveSmallUnsatisfiable(t *testing.T) {
	for _, n := range []int{2, 3} {
		board, err := New(n)
		require.NoError(t, err)
		sol, err := board.Solve()
		require.NoError(t, err)
		assert.Falsef(t, sol.Satisfiable, "n=%d should be unsatisfiable", n)
	}
}

// assertValidSolution checks sol places exactly one queen per row, one per
// column, and no two queens sharing a diagonal — the full N-queens
// constraint set, independent of how the solver arrived at the assignment.
func assertValidSolution(t *testing.T, n int, sol Solution) {
	t.Helper()
	require.True(t, sol.Satisfiable)
	require.Len(t, sol.Positions, n)

	byRow := make(map[int]int)
	byCol := make(map[int]int)
	for _, p := range sol.Positions {
		byRow[p.Row]++
		byCol[p.Col]++
	}
	for r := 0; r < n; r++ {
		assert.Equal(t, 1, byRow[r], "row %d", r)
	}
	for c := 0; c < n; c++ {
		assert.Equal(t, 1, byCol[c], "col %d", c)
	}

	for i := 0; i < len(sol.Positions); i++ {
		for j := i + 1; j < len(sol.Positions); j++ {
			a, b := sol.Positions[i], sol.Positions[j]
			dr, dc := a.Row-b.Row, a.Col-b.Col
			if dr < 0 {
				dr = -dr
			}
			if dc < 0 {
				dc = -dc
			}
			assert.NotEqual(t, dr, dc, "queens %v and %v share a diagonal", a, b)
		}
	}
}

func TestSolveValidBoard(t *testing.T) {
	board, err := New(4)
	require.NoError(t, err)
	sol, err := board.Solve()
	require.NoError(t, err)
	assertValidSolution(t, 4, sol)
}

// TestSolveSatisfiableRange covers spec.md §8's named testable property:
// satisfiable for n=4 through n=12 at minimum.
func TestSolveSatisfiableRange(t *testing.T) {
	for n := 4; n <= 12; n++ {
		board, err := New(n)
		require.NoError(t, err)
		sol, err := board.Solve()
		require.NoError(t, err)
		assertValidSolution(t, n, sol)
	}
}

func TestRenderUnsatisfiable(t *testing.T) {
	board, err := New(3)
	require.NoError(t, err)
	sol, err := board.Solve()
	require.NoError(t, err)
	assert.Equal(t, "unsatisfiable\n", board.Render(sol))
}
