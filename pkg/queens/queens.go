// Package queens encodes the N-queens problem as a propositional formula
// and solves it through the same Tseitin + dpll pipeline every other
// formula in this module goes through. It is the worked example spec.md
// names for the external interface, not a general-purpose component: only
// the cmd/queens CLI imports it.
package queens

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/go-satellite/satellite/pkg/cnf"
	"github.com/go-satellite/satellite/pkg/dpll"
	"github.com/go-satellite/satellite/pkg/expr"
	"github.com/go-satellite/satellite/pkg/tseitin"
)

// ErrInvalidSize is returned by New for n < 2.
var ErrInvalidSize = errors.New("queens: n must be at least 2")

// Board holds the n² variables for an n-queens encoding: board[r][c] is
// true iff a queen sits on row r, column c (both zero-indexed).
type Board struct {
	n     int
	vars  [][]*expr.Expr
	names map[string][2]int // var name -> (row, col), for extracting a solution
}

// New returns the variable grid for an n-by-n board. Column names follow
// original_source's spreadsheet-style letters (a, b, ..., z, aa, ...) so
// that a printed variable name like "c3" reads as "column c, row 3".
func New(n int) (*Board, error) {
	if n < 2 {
		return nil, errors.Wrapf(ErrInvalidSize, "got %d", n)
	}
	b := &Board{
		n:     n,
		vars:  make([][]*expr.Expr, n),
		names: make(map[string][2]int, n*n),
	}
	for r := 0; r < n; r++ {
		b.vars[r] = make([]*expr.Expr, n)
		for c := 0; c < n; c++ {
			name := fmt.Sprintf("%s%d", columnLetters(c), r+1)
			b.vars[r][c] = expr.Var(name)
			b.names[name] = [2]int{r, c}
		}
	}
	return b, nil
}

// N returns the board's size.
func (b *Board) N() int { return b.n }

func (b *Board) row(i int) []*expr.Expr {
	return append([]*expr.Expr{}, b.vars[i]...)
}

func (b *Board) col(i int) []*expr.Expr {
	out := make([]*expr.Expr, b.n)
	for r := 0; r < b.n; r++ {
		out[r] = b.vars[r][i]
	}
	return out
}

// d is the number of diagonals running in each direction, matching
// original_source's `2n - 1`.
func (b *Board) d() int { return 2*b.n - 1 }

func (b *Board) ldiag(i int) []*expr.Expr {
	var out []*expr.Expr
	for j := 0; j < b.d(); j++ {
		c, r := j+i, j
		if c >= 0 && c < b.n && r >= 0 && r < b.n {
			out = append(out, b.vars[r][c])
		}
	}
	return out
}

func (b *Board) rdiag(i int) []*expr.Expr {
	var out []*expr.Expr
	for j := 0; j < b.d(); j++ {
		c, r := j+i, b.n-1-j
		if c >= 0 && c < b.n && r >= 0 && r < b.n {
			out = append(out, b.vars[r][c])
		}
	}
	return out
}

// exactlyOne returns a formula true iff exactly one of vars is true,
// grounded in original_source's satellite/examples/queens.py exactly_one:
// for each candidate, it must hold and every other must not.
func exactlyOne(vars []*expr.Expr) *expr.Expr {
	clauses := make([]*expr.Expr, len(vars))
	for i, v := range vars {
		others := make([]*expr.Expr, 0, len(vars)-1)
		others = append(others, vars[:i]...)
		others = append(others, vars[i+1:]...)

		switch len(others) {
		case 0:
			clauses[i] = v
		case 1:
			clauses[i] = expr.And(v, expr.Not(others[0]))
		default:
			clauses[i] = expr.And(v, expr.Not(expr.Or(others...)))
		}
	}
	return expr.Or(clauses...)
}

// atMostOne returns a formula true iff at most one of vars is true: either
// exactly one is, or none are. Callers only invoke it on diagonals of
// length >= 2; a shorter diagonal can never contain two queens and is
// skipped before reaching here.
func atMostOne(vars []*expr.Expr) *expr.Expr {
	return expr.Or(exactlyOne(vars), expr.Not(expr.Or(vars...)))
}

// Formula builds the full N-queens constraint set: exactly one queen per
// row, exactly one per column, at most one per diagonal in each direction.
func (b *Board) Formula() *expr.Expr {
	rows := make([]*expr.Expr, b.n)
	for i := 0; i < b.n; i++ {
		rows[i] = exactlyOne(b.row(i))
	}
	cols := make([]*expr.Expr, b.n)
	for i := 0; i < b.n; i++ {
		cols[i] = exactlyOne(b.col(i))
	}

	var ldiags, rdiags []*expr.Expr
	for i := 1 - b.n; i < b.n; i++ {
		if diag := b.ldiag(i); len(diag) >= 2 {
			ldiags = append(ldiags, atMostOne(diag))
		}
		if diag := b.rdiag(i); len(diag) >= 2 {
			rdiags = append(rdiags, atMostOne(diag))
		}
	}

	return expr.And(expr.And(rows...), expr.And(cols...), expr.And(ldiags...), expr.And(rdiags...))
}

// Position is a zero-indexed queen placement.
type Position struct {
	Row, Col int
}

// Solution is the result of solving a Board.
type Solution struct {
	Satisfiable bool
	Positions   []Position // only meaningful if Satisfiable
}

// Solve runs Board's formula through Tseitin and the indexed DPLL solver
// and, if satisfiable, extracts the queen placements from the model.
func (b *Board) Solve() (Solution, error) {
	// Board variables keep their names (rename_vars off) so the model can be
	// read back through b.names; lexicographic auxiliaries never contain a
	// digit, so they cannot collide with a board name such as "a1".
	cnfExpr, err := tseitin.New(false, nil).Transform(b.Formula(), false)
	if err != nil {
		return Solution{}, errors.Wrap(err, "queens: tseitin")
	}
	formula, err := cnf.FromExpr(cnfExpr)
	if err != nil {
		return Solution{}, errors.Wrap(err, "queens: cnf")
	}

	solver, err := dpll.New(formula)
	if err != nil {
		return Solution{}, errors.Wrap(err, "queens: dpll")
	}
	sat, err := solver.Check()
	if err != nil {
		return Solution{}, errors.Wrap(err, "queens: check")
	}
	if !sat {
		return Solution{Satisfiable: false}, nil
	}

	model := solver.Assignments()
	var positions []Position
	for name, coord := range b.names {
		if model[name] {
			positions = append(positions, Position{Row: coord[0], Col: coord[1]})
		}
	}
	return Solution{Satisfiable: true, Positions: positions}, nil
}

// Render draws an ASCII board for a satisfiable Solution: "Q" for an
// occupied square, "." otherwise.
func (b *Board) Render(sol Solution) string {
	if !sol.Satisfiable {
		return "unsatisfiable\n"
	}
	occupied := make(map[Position]bool, len(sol.Positions))
	for _, p := range sol.Positions {
		occupied[p] = true
	}
	var sb strings.Builder
	for r := 0; r < b.n; r++ {
		for c := 0; c < b.n; c++ {
			if occupied[Position{Row: r, Col: c}] {
				sb.WriteString("Q")
			} else {
				sb.WriteString(".")
			}
			if c < b.n-1 {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// columnLetters returns the spreadsheet-style column name for a
// zero-indexed column: 0->"a", 1->"b", ..., 25->"z", 26->"aa", ...
func columnLetters(n int) string {
	var buf []byte
	for {
		buf = append([]byte{byte('a' + n%26)}, buf...)
		n = n/26 - 1
		if n < 0 {
			break
		}
	}
	return string(buf)
}
