package dpll

import "github.com/go-satellite/satellite/pkg/cnf"

// NaiveSolver is the "legacy variant" described in spec.md §4.5: a
// textbook DPLL that copies the clause set at every step instead of
// maintaining an incremental index, and additionally performs pure-literal
// elimination (sound but expensive to maintain incrementally, which is why
// the indexed Solver omits it and relies on unit propagation plus branching
// alone). It exists for small inputs and for cross-checking Solver during
// testing, not as the primary solving path.
type NaiveSolver struct {
	f cnf.CNF
}

// NewNaive returns a NaiveSolver over f.
func NewNaive(f cnf.CNF) *NaiveSolver {
	return &NaiveSolver{f: f}
}

// Check runs the naive search and, if satisfiable, returns a model under
// which every clause has a true literal. Variables that only appeared in
// clauses already satisfied by other literals are absent from it.
func (s *NaiveSolver) Check() (model map[string]bool, sat bool) {
	return naiveSearch(s.f.Clauses, map[string]bool{})
}

func naiveSearch(clauses []cnf.Clause, assignment map[string]bool) (map[string]bool, bool) {
	clauses, assignment, ok := naivePropagateUnits(clauses, assignment)
	if !ok {
		return nil, false
	}
	clauses, assignment = naiveEliminatePure(clauses, assignment)

	if len(clauses) == 0 {
		return assignment, true
	}
	for _, c := range clauses {
		if len(c.Literals) == 0 {
			return nil, false
		}
	}

	lit := clauses[0].Literals[0]
	for _, truth := range [2]bool{true, false} {
		want := lit
		if !truth {
			want = lit.Negate()
		}
		a2 := copyAssignment(assignment)
		a2[want.Var] = !want.Negated
		if model, ok := naiveSearch(naiveReduce(clauses, want), a2); ok {
			return model, true
		}
	}
	return nil, false
}

// naivePropagateUnits repeatedly finds unit clauses (one literal per atom,
// per the same collection rule the indexed solver uses) and reduces the
// clause set by them, until none remain or an empty clause appears.
func naivePropagateUnits(clauses []cnf.Clause, assignment map[string]bool) ([]cnf.Clause, map[string]bool, bool) {
	assignment = copyAssignment(assignment)
	for {
		seen := make(map[string]cnf.Literal)
		for _, c := range clauses {
			if len(c.Literals) == 1 {
				lit := c.Literals[0]
				if _, ok := seen[lit.Var]; !ok {
					seen[lit.Var] = lit
				}
			}
		}
		if len(seen) == 0 {
			return clauses, assignment, true
		}
		for _, lit := range seen {
			assignment[lit.Var] = !lit.Negated
			clauses = naiveReduce(clauses, lit)
		}
		for _, c := range clauses {
			if len(c.Literals) == 0 {
				return nil, nil, false
			}
		}
	}
}

// naiveEliminatePure assigns every pure literal (one whose atom appears
// with only one polarity across clauses) true and drops every clause it
// satisfies, repeating until a fixpoint.
func naiveEliminatePure(clauses []cnf.Clause, assignment map[string]bool) ([]cnf.Clause, map[string]bool) {
	assignment = copyAssignment(assignment)
	for {
		polarity := make(map[string]map[bool]bool)
		for _, c := range clauses {
			for _, lit := range c.Literals {
				if polarity[lit.Var] == nil {
					polarity[lit.Var] = make(map[bool]bool)
				}
				polarity[lit.Var][lit.Negated] = true
			}
		}
		var pure []cnf.Literal
		for v, seen := range polarity {
			if len(seen) == 1 {
				var negated bool
				for n := range seen {
					negated = n
				}
				pure = append(pure, cnf.Literal{Var: v, Negated: negated})
			}
		}
		if len(pure) == 0 {
			return clauses, assignment
		}
		for _, lit := range pure {
			assignment[lit.Var] = !lit.Negated
			clauses = naiveReduce(clauses, lit)
		}
	}
}

// naiveReduce returns a new clause set reflecting lit having been forced
// true: clauses containing lit are dropped (satisfied), and lit's negation
// is removed from every other clause. The input is never mutated.
func naiveReduce(clauses []cnf.Clause, lit cnf.Literal) []cnf.Clause {
	notLit := lit.Negate()
	out := make([]cnf.Clause, 0, len(clauses))
	for _, c := range clauses {
		if containsLiteral(c, lit) {
			continue
		}
		if !containsLiteral(c, notLit) {
			out = append(out, c)
			continue
		}
		lits := make([]cnf.Literal, 0, len(c.Literals))
		for _, l := range c.Literals {
			if l != notLit {
				lits = append(lits, l)
			}
		}
		out = append(out, cnf.Clause{Literals: lits})
	}
	return out
}

func containsLiteral(c cnf.Clause, lit cnf.Literal) bool {
	for _, l := range c.Literals {
		if l == lit {
			return true
		}
	}
	return false
}

func copyAssignment(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
