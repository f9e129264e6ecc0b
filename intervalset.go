package automaton

import (
	"iter"
	"strings"
)

// IntervalSet is a set of values stored as disjoint intervals. Touching
// intervals are always fused, so the stored intervals are also canonical.
type IntervalSet[T any] struct {
	m *IntervalMap[T, struct{}]
}

func NewIntervalSet[T any](values Comparer[T], intervals ...Interval[T]) *IntervalSet[T] {
	s := &IntervalSet[T]{
		m: NewIntervalMap[T, struct{}](values, func(_, _ struct{}) bool { return true }),
	}
	for _, iv := range intervals {
		s.Add(iv)
	}
	return s
}

func keepMember(existing, _ struct{}) struct{} {
	return existing
}

func (s *IntervalSet[T]) Add(iv Interval[T]) {
	s.m.AddAndUpdate(iv, struct{}{}, keepMember)
	s.m.MergeTouching()
}

func (s *IntervalSet[T]) Remove(iv Interval[T]) {
	s.m.UpdateRange(iv, func(struct{}) (struct{}, bool) {
		return struct{}{}, false
	})
}

func (s *IntervalSet[T]) Contains(v T) bool {
	_, ok := s.m.Get(v)
	return ok
}

// Len returns the number of stored intervals.
func (s *IntervalSet[T]) Len() int {
	return s.m.Len()
}

func (s *IntervalSet[T]) IsEmpty() bool {
	return s.m.Len() == 0
}

func (s *IntervalSet[T]) Intervals() iter.Seq[Interval[T]] {
	return func(yield func(Interval[T]) bool) {
		for iv := range s.m.All() {
			if !yield(iv) {
				return
			}
		}
	}
}

func (s *IntervalSet[T]) Clone() *IntervalSet[T] {
	return &IntervalSet[T]{m: s.m.Clone()}
}

func (s *IntervalSet[T]) Clear() {
	s.m.Clear()
}

// Complement returns the set of every value not in s.
func (s *IntervalSet[T]) Complement() *IntervalSet[T] {
	out := &IntervalSet[T]{m: NewIntervalMap[T, struct{}](s.m.cmp.Values, s.m.equal)}
	lower := LowerUnbounded[T]()
	for iv := range s.m.All() {
		if iv.Lower.Kind != Unbounded {
			out.m.entries = append(out.m.entries, IntervalEntry[T, struct{}]{Interval: Interval[T]{lower, iv.Lower.flip()}})
		}
		if iv.Upper.Kind == Unbounded {
			return out
		}
		lower = iv.Upper.flip()
	}
	out.m.entries = append(out.m.entries, IntervalEntry[T, struct{}]{Interval: Interval[T]{Lower: lower}})
	return out
}

func (s *IntervalSet[T]) String() string {
	var sb strings.Builder
	for iv := range s.Intervals() {
		if sb.Len() > 0 {
			sb.WriteString(" ∪ ")
		}
		sb.WriteString(iv.String())
	}
	if sb.Len() == 0 {
		return "∅"
	}
	return sb.String()
}
