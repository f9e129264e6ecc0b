package automaton

import (
	"fmt"
	"iter"
	"strings"
)

// StateSet is a frozen set of states. Two state sets built from the same
// members compare equal and hash the same whatever order the members were
// added in.
type StateSet[S any] struct {
	values   []S
	members  *HashSet[S]
	hashCode uint64
}

// NewStateSet freezes the given states, dropping duplicates.
func NewStateSet[S any](hasher Hasher[S], states ...S) StateSet[S] {
	b := NewStateSetBuilder(hasher)
	for _, s := range states {
		b.Add(s)
	}
	return b.Freeze()
}

func (f StateSet[S]) Hash() uint64 {
	return f.hashCode
}

// Equal reports whether both sets have exactly the same members.
func (f StateSet[S]) Equal(other StateSet[S]) bool {
	if f.hashCode != other.hashCode || len(f.values) != len(other.values) {
		return false
	}
	for _, v := range f.values {
		if !other.Contains(v) {
			return false
		}
	}
	return true
}

func (f StateSet[S]) Contains(state S) bool {
	return f.members != nil && f.members.Contains(state)
}

func (f StateSet[S]) Size() int {
	return len(f.values)
}

// GetArray returns the members in the order they were first added.
func (f StateSet[S]) GetArray() []S {
	return f.values
}

func (f StateSet[S]) All() iter.Seq[S] {
	return func(yield func(S) bool) {
		for _, v := range f.values {
			if !yield(v) {
				return
			}
		}
	}
}

// Union returns a new set holding the members of both sets.
func (f StateSet[S]) Union(other StateSet[S]) StateSet[S] {
	if other.Size() == 0 {
		return f
	}
	if f.Size() == 0 {
		return other
	}
	b := NewStateSetBuilder(f.members.Hasher())
	for _, v := range f.values {
		b.Add(v)
	}
	for _, v := range other.values {
		b.Add(v)
	}
	return b.Freeze()
}

// Without returns a new set lacking state.
func (f StateSet[S]) Without(state S) StateSet[S] {
	if !f.Contains(state) {
		return f
	}
	b := NewStateSetBuilder(f.members.Hasher())
	for _, v := range f.values {
		if !f.members.Hasher().Equal(v, state) {
			b.Add(v)
		}
	}
	return b.Freeze()
}

func (f StateSet[S]) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, v := range f.values {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, v)
	}
	sb.WriteByte('}')
	return sb.String()
}

// StateSetHasher compares state sets by membership.
func StateSetHasher[S any]() Hasher[StateSet[S]] {
	return HasherFuncs[StateSet[S]]{
		EqualFunc: StateSet[S].Equal,
		HashFunc:  StateSet[S].Hash,
	}
}

// StateSetBuilder accumulates states and freezes them into a StateSet.
type StateSetBuilder[S any] struct {
	hasher   Hasher[S]
	inner    *HashSet[S]
	values   []S
	hashCode uint64
}

func NewStateSetBuilder[S any](hasher Hasher[S]) *StateSetBuilder[S] {
	return &StateSetBuilder[S]{
		hasher: hasher,
		inner:  NewHashSet[S](hasher),
	}
}

// Add reports whether state was new to the builder.
func (s *StateSetBuilder[S]) Add(state S) bool {
	if !s.inner.Add(state) {
		return false
	}
	s.values = append(s.values, state)
	s.hashCode += mix64(s.hasher.Hash(state))
	return true
}

func (s *StateSetBuilder[S]) Size() int {
	return len(s.values)
}

// Freeze hands the accumulated states to a StateSet. The builder must not be
// used afterwards.
func (s *StateSetBuilder[S]) Freeze() StateSet[S] {
	set := StateSet[S]{
		values:   s.values,
		members:  s.inner,
		hashCode: uint64(len(s.values)) + s.hashCode,
	}
	s.values, s.inner = nil, nil
	return set
}
