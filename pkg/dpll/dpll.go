// Package dpll implements the indexed DPLL search: unit propagation plus
// branch-and-backtrack over a clauseindex.Index and an assign.Assignments,
// undone in lockstep via their matching push/pop layers rather than by
// copying the formula at each branch. A formula-copying variant with pure
// literal elimination, closer to a textbook description, lives alongside it
// in NaiveSolver for comparison and for inputs too small to care about the
// indexing overhead.
package dpll

import (
	"context"

	"github.com/pkg/errors"

	"github.com/go-satellite/satellite/pkg/assign"
	"github.com/go-satellite/satellite/pkg/clauseindex"
	"github.com/go-satellite/satellite/pkg/cnf"
)

// Incomplete is returned by Check when ctx is cancelled before the search
// completes. Per spec, the solver instance must not be reused afterward;
// its clause index and assignment stack are left mid-search.
var Incomplete = errors.New("dpll: cancelled before a solution could be found")

// Solver is an indexed DPLL search over a fixed CNF formula.
type Solver struct {
	idx     *clauseindex.Index
	assign  *assign.Assignments
	chooser Chooser
	tracer  Tracer
	ctx     context.Context
}

// Option configures a Solver at construction time.
type Option func(*Solver) error

// WithChooser sets the literal-choice strategy used at each branch point.
// The default is FirstLit.
func WithChooser(c Chooser) Option {
	return func(s *Solver) error {
		s.chooser = c
		return nil
	}
}

// WithTracer sets the Tracer notified at each branch point. The default is
// DefaultTracer, which discards every notification.
func WithTracer(t Tracer) Option {
	return func(s *Solver) error {
		s.tracer = t
		return nil
	}
}

// WithContext sets the context checked for cancellation at each branch
// point. The default is context.Background (never cancelled).
func WithContext(ctx context.Context) Option {
	return func(s *Solver) error {
		s.ctx = ctx
		return nil
	}
}

var defaults = []Option{
	func(s *Solver) error {
		if s.chooser == nil {
			s.chooser = FirstLit
		}
		return nil
	},
	func(s *Solver) error {
		if s.tracer == nil {
			s.tracer = DefaultTracer{}
		}
		return nil
	},
	func(s *Solver) error {
		if s.ctx == nil {
			s.ctx = context.Background()
		}
		return nil
	},
}

// New builds a Solver over f.
func New(f cnf.CNF, options ...Option) (*Solver, error) {
	s := &Solver{
		idx:    clauseindex.New(f),
		assign: assign.New(),
	}
	for _, o := range append(options, defaults...) {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Check runs the search to completion (or to cancellation) and reports
// whether the formula is satisfiable.
func (s *Solver) Check() (bool, error) {
	return s.search()
}

// Assignments returns the partial model accumulated so far. After a
// satisfiable Check, every clause of the formula has a literal made true by
// it; variables that were never assigned during the search are absent. It
// is only meaningful once Check has returned.
func (s *Solver) Assignments() map[string]bool {
	return s.assign.Model()
}

// search implements spec.md §4.5's main recursion: propagate to a
// fixpoint, check the two termination conditions, and otherwise branch on
// the chosen literal.
func (s *Solver) search() (bool, error) {
	if err := s.ctx.Err(); err != nil {
		return false, errors.Wrap(Incomplete, err.Error())
	}

	conflict, err := s.propagateUnits()
	if err != nil {
		return false, err
	}
	if conflict {
		return false, nil
	}

	if s.idx.ActiveCount() == 0 {
		return true, nil
	}
	for _, id := range s.idx.ActiveClauses() {
		if s.idx.Count(id) == 0 {
			return false, nil
		}
	}

	lit := s.chooser(s.idx)
	s.tracer.Trace(s.position(lit))

	for _, candidate := range [2]cnf.Literal{lit, lit.Negate()} {
		s.idx.PushLayer()
		s.assign.Push()

		conflict, err := s.assignLiteral(candidate)
		if err == nil && !conflict {
			var ok bool
			ok, err = s.search()
			if err == nil && ok {
				return true, nil
			}
		}

		if popErr := s.idx.PopLayer(); popErr != nil {
			return false, errors.Wrap(popErr, "dpll: index layer")
		}
		if popErr := s.assign.Pop(); popErr != nil {
			return false, errors.Wrap(popErr, "dpll: assignment layer")
		}
		if err != nil {
			return false, err
		}
	}
	return false, nil
}

// propagateUnits repeatedly collects unit clauses and assigns their
// literals until none remain or a conflicting assignment is discovered. A
// discovered conflict is not an error: it means the current branch is
// unsatisfiable, which is exactly what propagateUnits reports via its
// return value.
func (s *Solver) propagateUnits() (conflict bool, err error) {
	for {
		units := s.collectUnits()
		if len(units) == 0 {
			return false, nil
		}
		for _, lit := range units {
			conflict, err := s.assignLiteral(lit)
			if err != nil {
				return false, err
			}
			if conflict {
				return true, nil
			}
		}
	}
}

// collectUnits gathers at most one literal per atom among the currently
// active size-1 clauses, per spec.md §4.5's unit-literal collection rule.
func (s *Solver) collectUnits() []cnf.Literal {
	seen := make(map[string]cnf.Literal)
	for _, id := range s.idx.WithCount(1) {
		lits := s.idx.LiveLiteralsOrdered(id)
		if len(lits) != 1 {
			continue
		}
		lit := lits[0]
		if _, ok := seen[lit.Var]; !ok {
			seen[lit.Var] = lit
		}
	}
	out := make([]cnf.Literal, 0, len(seen))
	for _, lit := range seen {
		out = append(out, lit)
	}
	sortLiterals(out)
	return out
}

// assignLiteral forces lit true: it records the assignment, then
// deactivates every active clause containing lit and shrinks every active
// clause containing ¬lit. A pre-existing assignment incompatible with lit
// is reported as conflict=true rather than as an error, since it is a
// legitimate discovered contradiction in the current branch, not a caller
// bug.
func (s *Solver) assignLiteral(lit cnf.Literal) (conflict bool, err error) {
	if err := s.assign.Assign(lit, true); err != nil {
		if _, ok := err.(*assign.ConflictError); ok {
			return true, nil
		}
		return false, err
	}
	for _, id := range s.idx.WithLit(lit) {
		s.idx.Satisfy(id)
	}
	for _, id := range s.idx.WithLit(lit.Negate()) {
		s.idx.RemoveLiteral(id, lit.Negate())
	}
	return false, nil
}
