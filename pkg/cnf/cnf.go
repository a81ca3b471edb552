// Package cnf holds the data model the solver core operates on: literals,
// clauses and conjunctive-normal-form formulae, plus a conversion from a
// CNF-shaped expr.Expr (typically the output of tseitin.Transform) into
// this flatter, comparable representation that clauseindex and dpll build
// their indices over.
package cnf

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/go-satellite/satellite/pkg/expr"
)

// Literal is either a variable or its negation. Literal is comparable so it
// can be used directly as a map key and as the element type of a
// layered.Set.
type Literal struct {
	Var     string
	Negated bool
}

// Lit returns the positive literal for the named variable.
func Lit(v string) Literal {
	return Literal{Var: v}
}

// Negate returns ~L for a literal L. ~~L == L.
func (l Literal) Negate() Literal {
	return Literal{Var: l.Var, Negated: !l.Negated}
}

func (l Literal) String() string {
	if l.Negated {
		return "~" + l.Var
	}
	return l.Var
}

// Clause is a disjunction of literals. The empty clause is unsatisfiable;
// a clause with exactly one literal is a unit clause.
type Clause struct {
	Literals []Literal
}

func (c Clause) String() string {
	s := make([]string, len(c.Literals))
	for i, l := range c.Literals {
		s[i] = l.String()
	}
	return "(" + strings.Join(s, " | ") + ")"
}

// CNF is a conjunction of clauses. The empty conjunction is satisfiable.
type CNF struct {
	Clauses []Clause
}

func (f CNF) String() string {
	s := make([]string, len(f.Clauses))
	for i, c := range f.Clauses {
		s[i] = c.String()
	}
	return strings.Join(s, " & ")
}

// ErrNotCNF is returned by FromExpr when given an expression that is not
// CNF-shaped.
var ErrNotCNF = errors.New("cnf: expression is not in conjunctive normal form")

// FromExpr converts a CNF-shaped expr.Expr (an And of Ors of literals, per
// expr.IsCNF) into a CNF value. It returns ErrNotCNF if e is not
// CNF-shaped; this mirrors spec.md's "CNF-shaped operation invoked on a
// non-CNF expression" structural invariant error.
func FromExpr(e *expr.Expr) (CNF, error) {
	if !expr.IsCNF(e) {
		return CNF{}, ErrNotCNF
	}
	clauses := make([]Clause, len(e.Args()))
	for i, disj := range e.Args() {
		// Or() of a single operand simplifies away the Or node on
		// construction, so a unit clause appears here as a bare literal
		// rather than as an Or with one child.
		leaves := disj.Args()
		if expr.IsLiteral(disj) {
			leaves = []*expr.Expr{disj}
		}
		lits := make([]Literal, len(leaves))
		for j, leaf := range leaves {
			atom, ok := expr.Atom(leaf)
			if !ok {
				// Unreachable given expr.IsCNF(e) == true above.
				return CNF{}, errors.Wrapf(ErrNotCNF, "clause %d leaf %d is not a literal", i, j)
			}
			lits[j] = Literal{Var: atom.Name(), Negated: leaf.Kind() == expr.KindNot}
		}
		clauses[i] = Clause{Literals: lits}
	}
	return CNF{Clauses: clauses}, nil
}

// ToExpr converts a CNF back into an And(Or(Lit...)...) expr.Expr, mainly
// for tests and diagnostics that want to print a formula or feed it back
// through format.Print.
func ToExpr(f CNF) *expr.Expr {
	clauses := make([]*expr.Expr, len(f.Clauses))
	for i, c := range f.Clauses {
		lits := make([]*expr.Expr, len(c.Literals))
		for j, l := range c.Literals {
			v := expr.Var(l.Var)
			if l.Negated {
				v = expr.Not(v)
			}
			lits[j] = v
		}
		clauses[i] = expr.Or(lits...)
	}
	return expr.And(clauses...)
}

// Variables returns the distinct variable names referenced anywhere in f,
// in first-encountered order.
func Variables(f CNF) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range f.Clauses {
		for _, l := range c.Literals {
			if !seen[l.Var] {
				seen[l.Var] = true
				out = append(out, l.Var)
			}
		}
	}
	return out
}

// Satisfied reports whether assignment satisfies f in full (every clause
// has at least one literal consistent with assignment). Used by brute-force
// oracle tests rather than by the solver itself.
func Satisfied(f CNF, assignment map[string]bool) bool {
	for _, c := range f.Clauses {
		ok := false
		for _, l := range c.Literals {
			v, known := assignment[l.Var]
			if known && v != l.Negated {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// GoString implements fmt.GoStringer for readable test failure output.
func (l Literal) GoString() string {
	return fmt.Sprintf("%q", l.String())
}
