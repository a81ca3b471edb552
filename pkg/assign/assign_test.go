package assign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-satellite/satellite/pkg/cnf"
)

func TestSetNoOpOnSameValue(t *testing.T) {
	a := New()
	require.NoError(t, a.Set("x", true))
	require.NoError(t, a.Set("x", true))
	v, err := a.Get("x")
	require.NoError(t, err)
	assert.True(t, v)
}

func TestSetConflict(t *testing.T) {
	a := New()
	require.NoError(t, a.Set("x", true))
	err := a.Set("x", false)
	require.Error(t, err)
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "x", conflictErr.Var)
}

func TestGetUnassigned(t *testing.T) {
	a := New()
	_, err := a.Get("x")
	var unassignedErr *UnassignedError
	require.ErrorAs(t, err, &unassignedErr)
}

func TestAssignRespectsPolarity(t *testing.T) {
	a := New()
	require.NoError(t, a.Assign(cnf.Literal{Var: "x", Negated: true}, true))
	v, err := a.Get("x")
	require.NoError(t, err)
	assert.False(t, v) // Not(x) = true means x = false
}

func TestPushPopRestoresCache(t *testing.T) {
	a := New()
	require.NoError(t, a.Set("x", true))

	a.Push()
	require.NoError(t, a.Set("y", false))
	_, err := a.Get("y")
	require.NoError(t, err)

	require.NoError(t, a.Pop())
	_, err = a.Get("y")
	var unassignedErr *UnassignedError
	require.ErrorAs(t, err, &unassignedErr)

	v, err := a.Get("x")
	require.NoError(t, err)
	assert.True(t, v)
}

func TestPopUnderflow(t *testing.T) {
	a := New()
	assert.ErrorIs(t, a.Pop(), ErrUnderflow)
}

func TestSatisfiesAndFalsifies(t *testing.T) {
	a := New()
	require.NoError(t, a.Set("x", true))

	assert.True(t, a.Satisfies(cnf.Literal{Var: "x"}))
	assert.False(t, a.Satisfies(cnf.Literal{Var: "x", Negated: true}))
	assert.True(t, a.Falsifies(cnf.Literal{Var: "x", Negated: true}))
}

func TestModelSnapshotIsCopy(t *testing.T) {
	a := New()
	require.NoError(t, a.Set("x", true))

	m := a.Model()
	m["x"] = false

	v, err := a.Get("x")
	require.NoError(t, err)
	assert.True(t, v)
}
