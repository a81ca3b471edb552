// Package assign implements the partial model DPLL accumulates during unit
// propagation: a layered log of variable-to-truth assignments, flattened
// into a single cache for O(1) lookup, with push/pop mirroring the clause
// index's layering so that backtracking evicts exactly the assignments
// made since the matching push.
package assign

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/go-satellite/satellite/pkg/cnf"
)

// ErrUnderflow is returned by Pop when called at the base layer.
var ErrUnderflow = errors.New("assign: pop of base layer")

// ConflictError is returned by Set when a variable already has a value
// incompatible with the one being assigned.
type ConflictError struct {
	Var      string
	Existing bool
	Attempt  bool
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("assign: %q is already assigned %t, cannot assign %t", e.Var, e.Existing, e.Attempt)
}

// UnassignedError is returned by Get for a variable with no recorded value.
type UnassignedError struct {
	Var string
}

func (e *UnassignedError) Error() string {
	return fmt.Sprintf("assign: %q is not assigned", e.Var)
}

// Assignments is a stack of per-layer variable->bool dictionaries, plus a
// flattened cache. The zero value is not usable; construct with New.
type Assignments struct {
	cache     map[string]bool
	layerKeys [][]string // layerKeys[d] = keys first set while at depth d
}

// New returns an empty Assignments at the base layer.
func New() *Assignments {
	return &Assignments{
		cache:     make(map[string]bool),
		layerKeys: [][]string{nil},
	}
}

// Push opens a new layer.
func (a *Assignments) Push() {
	a.layerKeys = append(a.layerKeys, nil)
}

// Pop closes the current layer, evicting from the cache every assignment
// made since the matching Push. It returns ErrUnderflow if called at the
// base layer.
func (a *Assignments) Pop() error {
	if len(a.layerKeys) <= 1 {
		return ErrUnderflow
	}
	top := a.layerKeys[len(a.layerKeys)-1]
	a.layerKeys = a.layerKeys[:len(a.layerKeys)-1]
	for _, v := range top {
		delete(a.cache, v)
	}
	return nil
}

// Depth returns the number of layers currently pushed above the base.
func (a *Assignments) Depth() int {
	return len(a.layerKeys) - 1
}

// Set assigns v the value b. If v is already assigned b, Set is a no-op.
// If v is already assigned ¬b, Set returns a *ConflictError. Otherwise the
// assignment is recorded in the current layer.
func (a *Assignments) Set(v string, b bool) error {
	if existing, ok := a.cache[v]; ok {
		if existing != b {
			return &ConflictError{Var: v, Existing: existing, Attempt: b}
		}
		return nil
	}
	a.cache[v] = b
	top := len(a.layerKeys) - 1
	a.layerKeys[top] = append(a.layerKeys[top], v)
	return nil
}

// Assign sets the underlying variable of literal lit consistent with its
// polarity and the truth value b: for a positive literal, Var(v)->Set(v,b);
// for a negated literal, Not(v)->Set(v,¬b).
func (a *Assignments) Assign(lit cnf.Literal, b bool) error {
	if lit.Negated {
		b = !b
	}
	return a.Set(lit.Var, b)
}

// Get returns v's assigned value, or an *UnassignedError if v has no
// recorded value.
func (a *Assignments) Get(v string) (bool, error) {
	b, ok := a.cache[v]
	if !ok {
		return false, &UnassignedError{Var: v}
	}
	return b, nil
}

// Satisfies reports whether lit is currently forced true by the partial
// model (assigned, and consistent with lit's polarity).
func (a *Assignments) Satisfies(lit cnf.Literal) bool {
	b, ok := a.cache[lit.Var]
	return ok && b != lit.Negated
}

// Falsifies reports whether lit's negation is currently forced true by the
// partial model.
func (a *Assignments) Falsifies(lit cnf.Literal) bool {
	return a.Satisfies(lit.Negate())
}

// Model returns a snapshot of every currently-assigned variable. This is
// the witness returned to callers on a satisfiable result.
func (a *Assignments) Model() map[string]bool {
	out := make(map[string]bool, len(a.cache))
	for k, v := range a.cache {
		out[k] = v
	}
	return out
}
