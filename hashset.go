package automaton

import "iter"

// HashSet is a mutable set on top of HashMap, enumerated in insertion order.
type HashSet[K any] struct {
	m *HashMap[K, struct{}]
}

func NewHashSet[K any](hasher Hasher[K], options ...OptionsHashMap) *HashSet[K] {
	return &HashSet[K]{m: NewHashMap[K, struct{}](hasher, options...)}
}

// Add reports whether k was not yet a member.
func (s *HashSet[K]) Add(k K) bool {
	return s.m.Set(k, struct{}{})
}

// Remove reports whether k was a member.
func (s *HashSet[K]) Remove(k K) bool {
	return s.m.Delete(k)
}

func (s *HashSet[K]) Contains(k K) bool {
	return s.m.Has(k)
}

func (s *HashSet[K]) Size() int {
	return s.m.Size()
}

func (s *HashSet[K]) Clear() {
	s.m.Clear()
}

func (s *HashSet[K]) Hasher() Hasher[K] {
	return s.m.Hasher()
}

func (s *HashSet[K]) All() iter.Seq[K] {
	return s.m.Keys()
}

func (s *HashSet[K]) Clone() *HashSet[K] {
	c := NewHashSet[K](s.m.hasher, WithCapacity(s.Size()))
	for k := range s.All() {
		c.Add(k)
	}
	return c
}
