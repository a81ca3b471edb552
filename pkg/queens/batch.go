package queens

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Result pairs a requested board size with its solution.
type Result struct {
	N        int
	Solution Solution
	Err      error
}

// SolveBatch solves every size in ns concurrently, one independent Board
// and dpll.Solver per goroutine (each owns its own clause index and
// assignment stack, so nothing is shared across goroutines — per spec.md
// §5, concurrency lives entirely outside the solver core). Results are
// returned in the same order as ns regardless of completion order.
//
// This demonstrates that the solver's lack of shared state makes
// independent problems embarrassingly parallel; it does not add
// concurrency inside any single solve.
func SolveBatch(ctx context.Context, ns []int) ([]Result, error) {
	results := make([]Result, len(ns))
	g, ctx := errgroup.WithContext(ctx)
	for i, n := range ns {
		i, n := i, n
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result{N: n, Err: err}
				return nil
			}
			board, err := New(n)
			if err != nil {
				results[i] = Result{N: n, Err: err}
				return nil
			}
			sol, err := board.Solve()
			results[i] = Result{N: n, Solution: sol, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
