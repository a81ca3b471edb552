// Package format prints expr.Expr trees with precedence-aware
// parenthesization, using one of two symbol tables (ASCII or
// mathematical). The active style is an explicit argument to Print and
// String; a process-wide default exists only for callers (chiefly the CLI)
// that don't want to thread a Style through every call, and is held behind
// an atomic pointer rather than ambient mutable package state, per the
// REDESIGN guidance against a process-global formatter living inside the
// solver itself.
package format

import (
	"strings"
	"sync/atomic"

	"github.com/go-satellite/satellite/pkg/expr"
)

// Style names the symbols used to render each connective.
type Style struct {
	Not        string
	And        string
	Or         string
	Implies    string
	Equivalent string
}

// ASCII uses ~, &, |, ->, <->.
var ASCII = Style{
	Not:        "~",
	And:        "&",
	Or:         "|",
	Implies:    "->",
	Equivalent: "<->",
}

// Math uses ¬, ∧, ∨, ⇒, ⇔.
var Math = Style{
	Not:        "¬",
	And:        "∧",
	Or:         "∨",
	Implies:    "⇒",
	Equivalent: "⇔",
}

var defaultStyle atomic.Pointer[Style]

func init() {
	s := ASCII
	defaultStyle.Store(&s)
}

// SetDefault swaps the process-wide default style. Intended to be called
// once at startup (e.g. from a CLI's PreRunE), not from within solving or
// transformation code.
func SetDefault(s Style) {
	defaultStyle.Store(&s)
}

// Default returns the current process-wide default style.
func Default() Style {
	return *defaultStyle.Load()
}

// precedence returns the binding strength of a Kind. Lower binds looser.
// Equivalent < Implies < Or < And < Not < Var.
func precedence(k expr.Kind) int {
	switch k {
	case expr.KindEquivalent:
		return 0
	case expr.KindImplies:
		return 1
	case expr.KindOr:
		return 2
	case expr.KindAnd:
		return 3
	case expr.KindNot:
		return 4
	case expr.KindVar:
		return 5
	default:
		return 5
	}
}

// String renders e using the process-wide default style.
func String(e *expr.Expr) string {
	return Print(e, Default())
}

// Print renders e using the given style. A child is parenthesized iff its
// precedence is not strictly greater than its parent's.
func Print(e *expr.Expr, s Style) string {
	return print(e, s, -1)
}

func print(e *expr.Expr, s Style, parentPrec int) string {
	prec := precedence(e.Kind())
	var inner string
	switch e.Kind() {
	case expr.KindVar:
		inner = e.Name()
	case expr.KindNot:
		inner = s.Not + print(e.Args()[0], s, prec)
	case expr.KindAnd:
		inner = joinChildren(e.Args(), s, s.And, prec)
	case expr.KindOr:
		inner = joinChildren(e.Args(), s, s.Or, prec)
	case expr.KindImplies:
		args := e.Args()
		inner = print(args[0], s, prec) + " " + s.Implies + " " + print(args[1], s, prec)
	case expr.KindEquivalent:
		args := e.Args()
		inner = print(args[0], s, prec) + " " + s.Equivalent + " " + print(args[1], s, prec)
	default:
		inner = "?"
	}
	if prec <= parentPrec {
		return "(" + inner + ")"
	}
	return inner
}

func joinChildren(args []*expr.Expr, s Style, sep string, prec int) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = print(a, s, prec)
	}
	return strings.Join(parts, " "+sep+" ")
}
