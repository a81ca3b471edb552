// Package tseitin rewrites an arbitrary expr.Expr into an equisatisfiable
// CNF expr.Expr in linear size, introducing one fresh variable per
// non-literal subexpression (Tseitin's transformation). The result is not
// logically equivalent to the input — it is only equisatisfiable — but it
// is exactly the shape dpll.Solver consumes.
package tseitin

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/go-satellite/satellite/pkg/cnf"
	"github.com/go-satellite/satellite/pkg/expr"
)

// equivalence records one emitted xᵢ ↔ op(lhs[, rhs]) from the rewrite
// pass, in literal form, ready to be expanded into clauses.
type equivalence struct {
	aux    string
	op     expr.Kind
	lhs    cnf.Literal
	rhs    cnf.Literal
	hasRHS bool
}

// Transformer holds the state of a single transform() call: the name
// generator, the rename_vars memo table, and the accumulated equivalences.
// Construct one per call to Transform (or reuse across calls to New's
// result — each Transform call resets the equivalence list but keeps the
// rename memo and generator position, per spec.md's "reused if the caller
// wants a sorted/unsorted CNF").
type Transformer struct {
	renameVars bool
	gen        NameGenerator
	renamed    map[string]string
	equivs     []equivalence
}

// New returns a Transformer. If renameVars is true, every original
// variable is also renamed via the fresh-name generator (memoized so every
// reference to a given variable rewrites to the same fresh name); if
// false, original variables are preserved verbatim in the output. If gen
// is nil, the default lexicographic generator is used.
func New(renameVars bool, gen NameGenerator) *Transformer {
	if gen == nil {
		gen = NewLexNameGenerator()
	}
	return &Transformer{
		renameVars: renameVars,
		gen:        gen,
		renamed:    make(map[string]string),
	}
}

// Transform rewrites e into an equisatisfiable CNF. If sort is true, the
// emitted equivalences are ordered by their auxiliary variable's name
// before being assembled into clauses, so that identical inputs (with
// rename_vars=false and a fixed, deterministic name generator) produce
// byte-identical output.
func (t *Transformer) Transform(e *expr.Expr, sort_ bool) (*expr.Expr, error) {
	t.equivs = nil

	root, err := t.rewrite(e)
	if err != nil {
		return nil, err
	}
	rootLit, err := literalOf(root)
	if err != nil {
		return nil, err
	}

	type named struct {
		aux     string
		clauses []cnf.Clause
	}
	all := make([]named, 0, len(t.equivs))
	for _, eq := range t.equivs {
		cs, err := clausesFor(eq)
		if err != nil {
			return nil, err
		}
		all = append(all, named{aux: eq.aux, clauses: cs})
	}
	if sort_ {
		sort.Slice(all, func(i, j int) bool { return all[i].aux < all[j].aux })
	}

	clauses := make([]cnf.Clause, 0, 1+len(all)*3)
	clauses = append(clauses, cnf.Clause{Literals: []cnf.Literal{rootLit}})
	for _, nc := range all {
		clauses = append(clauses, nc.clauses...)
	}
	return cnf.ToExpr(cnf.CNF{Clauses: clauses}), nil
}

// Transform is a convenience entry point using the defaults (rename_vars
// enabled, lexicographic name generator, unsorted output).
func Transform(e *expr.Expr) (*expr.Expr, error) {
	return New(true, nil).Transform(e, false)
}

func literalOf(e *expr.Expr) (cnf.Literal, error) {
	atom, ok := expr.Atom(e)
	if !ok {
		return cnf.Literal{}, errors.Errorf("tseitin: internal invariant violated: rewrite produced a non-literal of kind %v", e.Kind())
	}
	return cnf.Literal{Var: atom.Name(), Negated: e.Kind() == expr.KindNot}, nil
}

func (t *Transformer) renameVar(name string) string {
	if !t.renameVars {
		return name
	}
	if r, ok := t.renamed[name]; ok {
		return r
	}
	r := t.gen.Next()
	t.renamed[name] = r
	return r
}

func (t *Transformer) emit(aux string, op expr.Kind, lhs, rhs *expr.Expr) error {
	l, err := literalOf(lhs)
	if err != nil {
		return err
	}
	eq := equivalence{aux: aux, op: op, lhs: l}
	if rhs != nil {
		r, err := literalOf(rhs)
		if err != nil {
			return err
		}
		eq.rhs = r
		eq.hasRHS = true
	}
	t.equivs = append(t.equivs, eq)
	return nil
}

// rewrite implements spec.md §4.2's bottom-up rewrite table, returning a
// literal (Var or Not(Var)) standing in for e.
func (t *Transformer) rewrite(e *expr.Expr) (*expr.Expr, error) {
	switch e.Kind() {
	case expr.KindVar:
		return expr.Var(t.renameVar(e.Name())), nil

	case expr.KindNot:
		child := e.Args()[0]
		if child.Kind() == expr.KindVar {
			return expr.Not(expr.Var(t.renameVar(child.Name()))), nil
		}
		// The fresh name for this node is allocated before descending into
		// its child, so that names are assigned in the order nodes are
		// first visited (pre-order), not the order their equivalences are
		// emitted (post-order). This is what makes the worked example in
		// spec.md §8 (fresh names x1..x5 in outer-to-inner order) come out
		// byte-for-byte.
		x := t.gen.Next()
		lp, err := t.rewrite(child)
		if err != nil {
			return nil, err
		}
		if err := t.emit(x, expr.KindNot, lp, nil); err != nil {
			return nil, err
		}
		return expr.NewGeneratedVar(x), nil

	case expr.KindAnd, expr.KindOr:
		return t.rewriteNary(e)

	case expr.KindImplies, expr.KindEquivalent:
		args := e.Args()
		x := t.gen.Next()
		la, err := t.rewrite(args[0])
		if err != nil {
			return nil, err
		}
		lb, err := t.rewrite(args[1])
		if err != nil {
			return nil, err
		}
		if err := t.emit(x, e.Kind(), la, lb); err != nil {
			return nil, err
		}
		return expr.NewGeneratedVar(x), nil

	default:
		return nil, errors.Errorf("tseitin: unknown connective %v", e.Kind())
	}
}

// rewriteNary implements the "And(p1…pn, q) with n≥2" rule (and its Or
// symmetric counterpart): peel the last operand off and recurse on the
// rest, folding a flattened n-ary node into a chain of binary
// equivalences.
func (t *Transformer) rewriteNary(e *expr.Expr) (*expr.Expr, error) {
	args := e.Args()
	if len(args) == 1 {
		return t.rewrite(args[0])
	}

	rest, last := args[:len(args)-1], args[len(args)-1]
	x := t.gen.Next()

	var restLit *expr.Expr
	var err error
	if len(rest) == 1 {
		restLit, err = t.rewrite(rest[0])
	} else if e.Kind() == expr.KindAnd {
		restLit, err = t.rewriteNary(expr.And(rest...))
	} else {
		restLit, err = t.rewriteNary(expr.Or(rest...))
	}
	if err != nil {
		return nil, err
	}

	lastLit, err := t.rewrite(last)
	if err != nil {
		return nil, err
	}

	if err := t.emit(x, e.Kind(), restLit, lastLit); err != nil {
		return nil, err
	}
	return expr.NewGeneratedVar(x), nil
}

// clausesFor expands one emitted equivalence into clauses via spec.md
// §4.2's schemata. The fifth case (Equivalent) fills a gap in spec.md's
// table: the recursion rule allows Equivalent as an emitted RHS connective,
// but the four given schemata omit it. See DESIGN.md for the reasoning; the
// encoding used here is the standard XNOR clause set.
func clausesFor(eq equivalence) ([]cnf.Clause, error) {
	a := cnf.Lit(eq.aux)
	notA := a.Negate()

	switch eq.op {
	case expr.KindNot:
		b, notB := eq.lhs, eq.lhs.Negate()
		return []cnf.Clause{
			{Literals: []cnf.Literal{notA, notB}},
			{Literals: []cnf.Literal{b, a}},
		}, nil

	case expr.KindAnd:
		b, c := eq.lhs, eq.rhs
		return []cnf.Clause{
			{Literals: []cnf.Literal{notA, b}},
			{Literals: []cnf.Literal{notA, c}},
			{Literals: []cnf.Literal{b.Negate(), c.Negate(), a}},
		}, nil

	case expr.KindOr:
		b, c := eq.lhs, eq.rhs
		return []cnf.Clause{
			{Literals: []cnf.Literal{notA, b, c}},
			{Literals: []cnf.Literal{b.Negate(), a}},
			{Literals: []cnf.Literal{c.Negate(), a}},
		}, nil

	case expr.KindImplies:
		b, c := eq.lhs, eq.rhs
		return []cnf.Clause{
			{Literals: []cnf.Literal{notA, b.Negate(), c}},
			{Literals: []cnf.Literal{b, a}},
			{Literals: []cnf.Literal{c.Negate(), a}},
		}, nil

	case expr.KindEquivalent:
		b, c := eq.lhs, eq.rhs
		return []cnf.Clause{
			{Literals: []cnf.Literal{a, b, c}},
			{Literals: []cnf.Literal{a, b.Negate(), c.Negate()}},
			{Literals: []cnf.Literal{notA, b, c.Negate()}},
			{Literals: []cnf.Literal{notA, b.Negate(), c}},
		}, nil

	default:
		return nil, errors.Errorf("tseitin: internal invariant violated: equivalence for %q has malformed RHS connective %v", eq.aux, eq.op)
	}
}
