// Package layered implements the single backtracking primitive the rest of
// the solver is built on: a set with a stack-structured undo log. A Set
// supports push_layer/pop_layer, and either remove-with-undo semantics
// (RemoveMode, the clause index's "still live" sets) or add-with-undo
// semantics (AddMode), so that after push; modify(delta); pop the set is
// restored exactly, in O(changes actually made) rather than O(branching
// depth).
package layered

import "github.com/pkg/errors"

// Mode selects what Modify's delta means: removal of existing members, or
// addition of new ones.
type Mode int

const (
	// RemoveMode interprets Modify's delta as "remove these elements".
	RemoveMode Mode = iota
	// AddMode interprets Modify's delta as "add these elements".
	AddMode
)

// ErrUnderflow is returned by PopLayer when called at the base layer
// (depth 0), where there is nothing left to pop.
var ErrUnderflow = errors.New("layered: pop of base layer")

type change[T comparable] struct {
	depth int
	items []T
}

// Set is a set over a comparable element type T with a layered undo log.
// The zero value is not usable; construct with NewRemoveSet or NewAddSet.
type Set[T comparable] struct {
	mode    Mode
	members map[T]struct{}
	depth   int
	log     []change[T]
}

// NewRemoveSet returns a Set in RemoveMode, initially containing every
// element of initial.
func NewRemoveSet[T comparable](initial []T) *Set[T] {
	members := make(map[T]struct{}, len(initial))
	for _, v := range initial {
		members[v] = struct{}{}
	}
	return &Set[T]{mode: RemoveMode, members: members}
}

// NewAddSet returns a Set in AddMode, initially empty.
func NewAddSet[T comparable]() *Set[T] {
	return &Set[T]{mode: AddMode, members: make(map[T]struct{})}
}

// PushLayer opens a new, currently-empty change layer at depth+1.
func (s *Set[T]) PushLayer() {
	s.depth++
}

// PopLayer closes the current layer, reverting every change recorded in it.
// It returns ErrUnderflow if the receiver is already at its base layer.
func (s *Set[T]) PopLayer() error {
	if s.depth == 0 {
		return ErrUnderflow
	}
	for len(s.log) > 0 && s.log[len(s.log)-1].depth == s.depth {
		rec := s.log[len(s.log)-1]
		s.log = s.log[:len(s.log)-1]
		for _, v := range rec.items {
			switch s.mode {
			case RemoveMode:
				s.members[v] = struct{}{}
			case AddMode:
				delete(s.members, v)
			}
		}
	}
	s.depth--
	return nil
}

// Depth returns the number of layers currently pushed.
func (s *Set[T]) Depth() int {
	return s.depth
}

// Modify applies delta to the set: in RemoveMode, delta is interpreted as
// "remove these"; in AddMode, as "add these". It is idempotent against the
// current state — only the elements that actually change membership
// (delta ∩ members for RemoveMode, delta \ members for AddMode) are applied
// and recorded — and returns exactly those changed elements. No layer
// record is appended (and no layer is ever observable as empty) if nothing
// changed.
func (s *Set[T]) Modify(delta []T) []T {
	var changed []T
	switch s.mode {
	case RemoveMode:
		for _, v := range delta {
			if _, ok := s.members[v]; ok {
				delete(s.members, v)
				changed = append(changed, v)
			}
		}
	case AddMode:
		for _, v := range delta {
			if _, ok := s.members[v]; !ok {
				s.members[v] = struct{}{}
				changed = append(changed, v)
			}
		}
	}
	if len(changed) > 0 {
		s.log = append(s.log, change[T]{depth: s.depth, items: changed})
	}
	return changed
}

// Contains reports whether v is currently a member.
func (s *Set[T]) Contains(v T) bool {
	_, ok := s.members[v]
	return ok
}

// Len returns the number of current members.
func (s *Set[T]) Len() int {
	return len(s.members)
}

// Items returns the current members in unspecified order. Per spec.md §5,
// iteration order over layered sets is not part of the contract.
func (s *Set[T]) Items() []T {
	out := make([]T, 0, len(s.members))
	for v := range s.members {
		out = append(out, v)
	}
	return out
}
