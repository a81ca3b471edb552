package layered

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveModeModifyAndRestore(t *testing.T) {
	s := NewRemoveSet([]int{1, 2, 3, 4})

	s.PushLayer()
	changed := s.Modify([]int{2, 3})
	assert.ElementsMatch(t, []int{2, 3}, changed)
	assert.False(t, s.Contains(2))
	assert.Equal(t, 2, s.Len())

	require.NoError(t, s.PopLayer())
	assert.True(t, s.Contains(2))
	assert.True(t, s.Contains(3))
	assert.Equal(t, 4, s.Len())
}

func TestAddModeModifyAndRestore(t *testing.T) {
	s := NewAddSet[string]()

	s.PushLayer()
	changed := s.Modify([]string{"a", "b"})
	assert.ElementsMatch(t, []string{"a", "b"}, changed)
	assert.Equal(t, 2, s.Len())

	require.NoError(t, s.PopLayer())
	assert.Equal(t, 0, s.Len())
}

func TestModifyIsIdempotent(t *testing.T) {
	s := NewRemoveSet([]int{1, 2})

	first := s.Modify([]int{1, 5})
	assert.Equal(t, []int{1}, first) // 5 was never a member

	second := s.Modify([]int{1})
	assert.Nil(t, second) // already removed, no-op
}

func TestNoEmptyLayerRecorded(t *testing.T) {
	s := NewRemoveSet([]int{1})

	s.PushLayer()
	s.Modify([]int{99}) // not a member; no change
	assert.Empty(t, s.log)
}

func TestPopUnderflow(t *testing.T) {
	s := NewRemoveSet([]int{1})
	assert.ErrorIs(t, s.PopLayer(), ErrUnderflow)
}

func TestBalancedPushPopRestoresState(t *testing.T) {
	s := NewRemoveSet([]int{1, 2, 3})

	s.PushLayer()
	s.Modify([]int{1})
	s.PushLayer()
	s.Modify([]int{2})
	require.NoError(t, s.PopLayer())
	require.NoError(t, s.PopLayer())

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 0, s.Depth())
}
