// Package expr implements the propositional expression AST: Var, Not, And,
// Or, Implies and Equivalent nodes with negation normalization and
// associative flattening applied at construction time, structural equality
// and hashing, and a CNF-shape predicate.
//
// The variant set is closed and encoded as a tagged sum (Kind plus a slice
// of children) rather than as an open interface hierarchy, so that Tseitin
// rewriting and printing can switch on Kind without virtual dispatch.
package expr

import (
	"fmt"

	"github.com/mitchellh/hashstructure"
	"github.com/pkg/errors"
)

// Kind identifies an Expr's variant.
type Kind uint8

const (
	KindVar Kind = iota
	KindNot
	KindAnd
	KindOr
	KindImplies
	KindEquivalent
)

func (k Kind) String() string {
	switch k {
	case KindVar:
		return "Var"
	case KindNot:
		return "Not"
	case KindAnd:
		return "And"
	case KindOr:
		return "Or"
	case KindImplies:
		return "Implies"
	case KindEquivalent:
		return "Equivalent"
	default:
		return "Unknown"
	}
}

// Expr is an immutable node in a propositional expression tree. The zero
// value is not a valid Expr; values are produced by the constructor
// functions in this package.
type Expr struct {
	kind      Kind
	name      string // only meaningful for KindVar
	generated bool   // only meaningful for KindVar
	args      []*Expr
	hash      uint64
	hashed    bool
}

// ErrNotExpr is returned when a connective is asked to combine a value that
// is not an *Expr. It exists for the reflective builder helpers (Combine);
// the typed constructors (And, Or, Not, ...) can't be called with the wrong
// type in the first place, since Go's compiler rejects that statically.
var ErrNotExpr = errors.New("expr: operand is not an expression")

// Var returns a user-originated Boolean atom with the given name.
func Var(name string) *Expr {
	return &Expr{kind: KindVar, name: name}
}

// generatedVar returns a Var flagged as Tseitin-introduced. Used only by the
// tseitin package (via NewGeneratedVar) so that callers can later project
// auxiliaries out of a solution.
func generatedVar(name string) *Expr {
	return &Expr{kind: KindVar, name: name, generated: true}
}

// NewGeneratedVar is the constructor the tseitin package uses to mint fresh
// auxiliary variables; it is exported so other packages implementing
// alternative transformations can mark their own auxiliaries consistently.
func NewGeneratedVar(name string) *Expr {
	return generatedVar(name)
}

// Name returns the variable's name. It is only meaningful when Kind() ==
// KindVar.
func (e *Expr) Name() string {
	return e.name
}

// Generated reports whether this Var was introduced by a transformation
// (e.g. Tseitin) rather than supplied by the caller.
func (e *Expr) Generated() bool {
	return e.generated
}

// Kind returns the receiver's variant tag.
func (e *Expr) Kind() Kind {
	return e.kind
}

// Args returns the receiver's children in order. Callers must not mutate
// the returned slice.
func (e *Expr) Args() []*Expr {
	return e.args
}

// Not returns the logical negation of e. Double negation collapses on
// construction: Not(Not(e)) == e (same pointer is not guaranteed, but the
// two are Equal).
func Not(e *Expr) *Expr {
	if e.kind == KindNot {
		return e.args[0]
	}
	return &Expr{kind: KindNot, args: []*Expr{e}}
}

// And returns the conjunction of es. And is associative and flattens on
// construction: combining two Ands produces a single And with concatenated
// children, so And(And(a, b), c) and And(a, And(b, c)) both produce a
// three-child And node.
func And(es ...*Expr) *Expr {
	return nary(KindAnd, es)
}

// Or returns the disjunction of es, with the same flattening behavior as
// And.
func Or(es ...*Expr) *Expr {
	return nary(KindOr, es)
}

func nary(kind Kind, es []*Expr) *Expr {
	var flat []*Expr
	for _, e := range es {
		if e.kind == kind {
			flat = append(flat, e.args...)
		} else {
			flat = append(flat, e)
		}
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return &Expr{kind: kind, args: flat}
}

// Implies returns a implies b.
func Implies(a, b *Expr) *Expr {
	return &Expr{kind: KindImplies, args: []*Expr{a, b}}
}

// Equivalent returns a iff b.
func Equivalent(a, b *Expr) *Expr {
	return &Expr{kind: KindEquivalent, args: []*Expr{a, b}}
}

// Combine builds a binary or unary connective from untyped operands,
// returning ErrNotExpr if an operand is not an *Expr. This mirrors the
// dynamically-typed builder's runtime type errors for callers assembling
// expressions from reflective or generic call sites; statically-typed
// callers should prefer And, Or, Not, Implies and Equivalent directly,
// which cannot be misused this way.
func Combine(op Kind, operands ...interface{}) (*Expr, error) {
	es := make([]*Expr, len(operands))
	for i, o := range operands {
		e, ok := o.(*Expr)
		if !ok {
			return nil, errors.Wrapf(ErrNotExpr, "operand %d (%T) to %s", i, o, op)
		}
		es[i] = e
	}
	switch op {
	case KindVar:
		return nil, errors.Wrap(ErrNotExpr, "Var is not a connective")
	case KindNot:
		if len(es) != 1 {
			return nil, errors.Errorf("expr: Not takes exactly one operand, got %d", len(es))
		}
		return Not(es[0]), nil
	case KindAnd:
		return And(es...), nil
	case KindOr:
		return Or(es...), nil
	case KindImplies:
		if len(es) != 2 {
			return nil, errors.Errorf("expr: Implies takes exactly two operands, got %d", len(es))
		}
		return Implies(es[0], es[1]), nil
	case KindEquivalent:
		if len(es) != 2 {
			return nil, errors.Errorf("expr: Equivalent takes exactly two operands, got %d", len(es))
		}
		return Equivalent(es[0], es[1]), nil
	default:
		return nil, errors.Errorf("expr: unknown connective %v", op)
	}
}

// Equal reports whether two nodes are structurally equal: same variant and
// equal children in order (and, for Var, the same name; the generated flag
// does not affect equality).
func (e *Expr) Equal(other *Expr) bool {
	if e == other {
		return true
	}
	if e == nil || other == nil {
		return false
	}
	if e.kind != other.kind {
		return false
	}
	if e.kind == KindVar {
		return e.name == other.name
	}
	if len(e.args) != len(other.args) {
		return false
	}
	for i := range e.args {
		if !e.args[i].Equal(other.args[i]) {
			return false
		}
	}
	return true
}

// hashable is the canonical, order-sensitive shape hashstructure.Hash walks
// to compute a node's structural hash.
type hashable struct {
	Kind Kind
	Name string
	Args []uint64
}

// Hash returns a hash consistent with Equal: Equal nodes always hash to the
// same value. Computed once per node and cached.
func (e *Expr) Hash() uint64 {
	if e.hashed {
		return e.hash
	}
	h := hashable{Kind: e.kind, Name: e.name}
	if len(e.args) > 0 {
		h.Args = make([]uint64, len(e.args))
		for i, a := range e.args {
			h.Args[i] = a.Hash()
		}
	}
	sum, err := hashstructure.Hash(h, nil)
	if err != nil {
		// hashstructure only fails on unsupported types; hashable contains
		// none, so this would indicate a bug in this package.
		panic(fmt.Sprintf("expr: hashstructure failed on well-formed input: %v", err))
	}
	e.hash = sum
	e.hashed = true
	return sum
}

// Atom returns the underlying variable of a literal node: atom(Var v) = v,
// atom(Not(Var v)) = v, and atom of anything else is (nil, false).
func Atom(e *Expr) (*Expr, bool) {
	switch {
	case e.kind == KindVar:
		return e, true
	case e.kind == KindNot && e.args[0].kind == KindVar:
		return e.args[0], true
	default:
		return nil, false
	}
}

// IsLiteral reports whether e is a variable or the negation of a variable.
func IsLiteral(e *Expr) bool {
	_, ok := Atom(e)
	return ok
}

// IsCNF reports whether e is exactly a two-level And(Or(Lit...)...) tree:
// an And whose every child is either an Or whose every child is a literal,
// or (since Or of a single operand simplifies away the Or node on
// construction) a bare literal standing in for a unit clause. A bare
// literal at the root, or a single Or of literals, is not itself in this
// shape (the Tseitin transformer always wraps its output so that the root
// is an And, even of a single clause).
func IsCNF(e *Expr) bool {
	if e.kind != KindAnd {
		return false
	}
	for _, clause := range e.args {
		if clause.kind == KindOr {
			for _, lit := range clause.args {
				if !IsLiteral(lit) {
					return false
				}
			}
			continue
		}
		if !IsLiteral(clause) {
			return false
		}
	}
	return true
}

// Variables returns the set of distinct Var leaves reachable from e, in
// first-encountered order. This supplements spec.md with the
// original_source's satellite/expr.py `variables()` helper. No other
// package in this module calls it; the brute-force oracle test in
// pkg/dpll uses cnf.Variables instead.
func Variables(e *Expr) []*Expr {
	seen := make(map[string]bool)
	var out []*Expr
	var walk func(*Expr)
	walk = func(n *Expr) {
		if n.kind == KindVar {
			if !seen[n.name] {
				seen[n.name] = true
				out = append(out, n)
			}
			return
		}
		for _, a := range n.args {
			walk(a)
		}
	}
	walk(e)
	return out
}

// Substitute returns a copy of e with every Var named old's name replaced by
// replacement. Supplements spec.md with satellite/expr.py's substitute().
// No other package in this module calls it (the N-queens encoding builds
// its formula directly).
func Substitute(e *Expr, old string, replacement *Expr) *Expr {
	switch e.kind {
	case KindVar:
		if e.name == old {
			return replacement
		}
		return e
	case KindNot:
		return Not(Substitute(e.args[0], old, replacement))
	case KindAnd, KindOr:
		args := make([]*Expr, len(e.args))
		for i, a := range e.args {
			args[i] = Substitute(a, old, replacement)
		}
		return nary(e.kind, args)
	case KindImplies:
		return Implies(Substitute(e.args[0], old, replacement), Substitute(e.args[1], old, replacement))
	case KindEquivalent:
		return Equivalent(Substitute(e.args[0], old, replacement), Substitute(e.args[1], old, replacement))
	default:
		return e
	}
}
