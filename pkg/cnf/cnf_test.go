package cnf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-satellite/satellite/pkg/expr"
)

func TestFromExprRoundTrip(t *testing.T) {
	e := expr.And(
		expr.Or(expr.Var("a"), expr.Not(expr.Var("b"))),
		expr.Var("c"), // unit clause, collapsed from Or(c) at construction
	)

	f, err := FromExpr(e)
	require.NoError(t, err)
	require.Len(t, f.Clauses, 2)
	assert.Equal(t, []Literal{{Var: "a"}, {Var: "b", Negated: true}}, f.Clauses[0].Literals)
	assert.Equal(t, []Literal{{Var: "c"}}, f.Clauses[1].Literals)

	back := ToExpr(f)
	assert.True(t, back.Equal(e))
}

func TestFromExprRejectsNonCNF(t *testing.T) {
	_, err := FromExpr(expr.Or(expr.Var("a"), expr.Var("b")))
	assert.ErrorIs(t, err, ErrNotCNF)
}

func TestNegate(t *testing.T) {
	l := Lit("x")
	assert.Equal(t, Literal{Var: "x", Negated: true}, l.Negate())
	assert.Equal(t, l, l.Negate().Negate())
}

func TestVariables(t *testing.T) {
	f := CNF{Clauses: []Clause{
		{Literals: []Literal{{Var: "a"}, {Var: "b", Negated: true}}},
		{Literals: []Literal{{Var: "a", Negated: true}, {Var: "c"}}},
	}}
	assert.Equal(t, []string{"a", "b", "c"}, Variables(f))
}

func TestSatisfied(t *testing.T) {
	f := CNF{Clauses: []Clause{
		{Literals: []Literal{{Var: "a"}, {Var: "b", Negated: true}}},
	}}
	assert.True(t, Satisfied(f, map[string]bool{"a": true, "b": true}))
	assert.True(t, Satisfied(f, map[string]bool{"a": false, "b": false}))
	assert.False(t, Satisfied(f, map[string]bool{"a": false, "b": true}))
}
