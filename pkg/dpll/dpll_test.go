package dpll

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-satellite/satellite/pkg/cnf"
)

func unitCNF(v string, negated bool) cnf.CNF {
	return cnf.CNF{Clauses: []cnf.Clause{{Literals: []cnf.Literal{{Var: v, Negated: negated}}}}}
}

func TestCheckUnitClauseSatisfiable(t *testing.T) {
	f := unitCNF("x", false)
	s, err := New(f)
	require.NoError(t, err)

	ok, err := s.Check()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, map[string]bool{"x": true}, s.Assignments())
}

func TestCheckContradictionUnsatisfiable(t *testing.T) {
	f := cnf.CNF{Clauses: []cnf.Clause{
		{Literals: []cnf.Literal{{Var: "x"}}},
		{Literals: []cnf.Literal{{Var: "x", Negated: true}}},
	}}
	s, err := New(f)
	require.NoError(t, err)

	ok, err := s.Check()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckRequiresBranching(t *testing.T) {
	// (a | b) & (~a | b) & (a | ~b) is satisfiable only by a=b=true.
	f := cnf.CNF{Clauses: []cnf.Clause{
		{Literals: []cnf.Literal{{Var: "a"}, {Var: "b"}}},
		{Literals: []cnf.Literal{{Var: "a", Negated: true}, {Var: "b"}}},
		{Literals: []cnf.Literal{{Var: "a"}, {Var: "b", Negated: true}}},
	}}
	s, err := New(f)
	require.NoError(t, err)

	ok, err := s.Check()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[string]bool{"a": true, "b": true}, s.Assignments())
}

func TestCheckEmptyFormulaSatisfiable(t *testing.T) {
	s, err := New(cnf.CNF{})
	require.NoError(t, err)

	ok, err := s.Check()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckRespectsChooser(t *testing.T) {
	f := cnf.CNF{Clauses: []cnf.Clause{
		{Literals: []cnf.Literal{{Var: "a"}, {Var: "b"}}},
	}}
	for _, chooser := range []Chooser{FirstLit, LastLit, CommonLit} {
		s, err := New(f, WithChooser(chooser))
		require.NoError(t, err)
		ok, err := s.Check()
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestCheckCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := cnf.CNF{Clauses: []cnf.Clause{
		{Literals: []cnf.Literal{{Var: "a"}, {Var: "b"}}},
	}}
	s, err := New(f, WithContext(ctx))
	require.NoError(t, err)

	_, err = s.Check()
	assert.ErrorIs(t, err, Incomplete)
}

func TestNaiveSolverAgreesWithIndexed(t *testing.T) {
	cases := []cnf.CNF{
		unitCNF("x", false),
		{Clauses: []cnf.Clause{
			{Literals: []cnf.Literal{{Var: "x"}}},
			{Literals: []cnf.Literal{{Var: "x", Negated: true}}},
		}},
		{Clauses: []cnf.Clause{
			{Literals: []cnf.Literal{{Var: "a"}, {Var: "b"}}},
			{Literals: []cnf.Literal{{Var: "a", Negated: true}, {Var: "b"}}},
			{Literals: []cnf.Literal{{Var: "a"}, {Var: "b", Negated: true}}},
		}},
	}
	for _, f := range cases {
		indexed, err := New(f)
		require.NoError(t, err)
		indexedOK, err := indexed.Check()
		require.NoError(t, err)

		_, naiveOK := NewNaive(f).Check()
		assert.Equal(t, indexedOK, naiveOK)
	}
}

// randomCNF3 generates a random 3-CNF over variables "v0".."v{numVars-1}":
// numClauses clauses, each three distinct variables chosen uniformly at
// random with a random polarity per literal.
func randomCNF3(rng *rand.Rand, numVars, numClauses int) cnf.CNF {
	names := make([]string, numVars)
	for i := range names {
		names[i] = fmt.Sprintf("v%d", i)
	}

	clauses := make([]cnf.Clause, numClauses)
	for i := range clauses {
		idx := rng.Perm(numVars)[:3]
		lits := make([]cnf.Literal, 3)
		for j, vi := range idx {
			lits[j] = cnf.Literal{Var: names[vi], Negated: rng.Intn(2) == 0}
		}
		clauses[i] = cnf.Clause{Literals: lits}
	}
	return cnf.CNF{Clauses: clauses}
}

// bruteForceSAT enumerates every one of the 2ⁿ assignments over f's
// variables and reports whether any satisfies f, per spec.md §8's "agreement
// with a brute-force truth-table oracle on all 2ⁿ assignments" property.
func bruteForceSAT(f cnf.CNF) bool {
	vars := cnf.Variables(f)
	n := len(vars)
	for bits := 0; bits < (1 << n); bits++ {
		assignment := make(map[string]bool, n)
		for i, v := range vars {
			assignment[v] = bits&(1<<i) != 0
		}
		if cnf.Satisfied(f, assignment) {
			return true
		}
	}
	return false
}

func TestCheckAgreesWithBruteForceOracleOnRandom3CNFs(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 30; trial++ {
		numVars := 3 + rng.Intn(4)      // 3..6 variables
		numClauses := 4 + rng.Intn(10) // 4..13 clauses
		f := randomCNF3(rng, numVars, numClauses)

		want := bruteForceSAT(f)

		s, err := New(f)
		require.NoError(t, err)
		got, err := s.Check()
		require.NoError(t, err)

		assert.Equalf(t, want, got, "trial %d: formula %v", trial, f)
	}
}
