package automaton

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newSparseNFA() *SparseNFA[int, rune] {
	return NewSparseNFA[int, rune](DefaultHasher[int](), DefaultHasher[rune]())
}

func newDenseNFA() *DenseNFA[int, rune] {
	return NewDenseNFA[int, rune](DefaultHasher[int](), OrderedComparer[rune]())
}

func TestEpsilonClosure(t *testing.T) {
	a := newSparseNFA()
	a.AddEpsilonTransition(0, 1)
	a.AddEpsilonTransition(1, 2)
	a.AddEpsilonTransition(2, 0)
	a.AddEpsilonTransition(1, 3)
	a.AddTransition(3, 'x', 4)

	assert.Equal(t, []int{0, 1, 2, 3}, slices.Collect(a.EpsilonClosure(0)))
	assert.Equal(t, []int{4}, slices.Collect(a.EpsilonClosure(4)))
	assert.False(t, a.AddEpsilonTransition(0, 1))
	assert.Len(t, slices.Collect(a.EpsilonTransitions()), 4)

	assert.True(t, a.RemoveEpsilonTransition(1, 3))
	assert.Equal(t, []int{0, 1, 2}, slices.Collect(a.EpsilonClosure(0)))
}

func TestSparseNFA(t *testing.T) {
	a := newSparseNFA()
	a.AddInitial(0)
	assert.True(t, a.AddTransition(0, 'a', 1))
	assert.True(t, a.AddTransition(0, 'a', 2))
	assert.False(t, a.AddTransition(0, 'a', 2))
	a.AddTransition(1, 'b', 3)
	a.AddTransition(2, 'c', 3)
	a.AddEpsilonTransition(3, 4)
	a.AddAccepting(4)

	t.Run("Accepts", func(t *testing.T) {
		assert.True(t, a.Accepts([]rune("ab")))
		assert.True(t, a.Accepts([]rune("ac")))
		assert.False(t, a.Accepts([]rune("a")))
		assert.False(t, a.Accepts([]rune("abc")))
		assert.False(t, a.Accepts(nil))
	})

	t.Run("Counts", func(t *testing.T) {
		assert.Equal(t, 5, a.StateCount())
		assert.Equal(t, 4, a.TransitionCount())
		assert.ElementsMatch(t, []rune{'a', 'b', 'c'}, slices.Collect(a.Alphabet()))
	})

	t.Run("RemoveTransition", func(t *testing.T) {
		assert.True(t, a.RemoveTransition(0, 'a', 2))
		assert.False(t, a.RemoveTransition(0, 'a', 2))
		assert.False(t, a.Accepts([]rune("ac")))
		assert.True(t, a.Accepts([]rune("ab")))
	})

	t.Run("RemoveState", func(t *testing.T) {
		a.AddInitial(5)
		a.AddEpsilonTransition(5, 3)
		assert.True(t, a.Accepts(nil))

		assert.True(t, a.RemoveState(3))
		assert.False(t, a.Accepts([]rune("ab")))
		assert.False(t, a.Accepts(nil))
		assert.Empty(t, slices.Collect(a.EpsilonTransitions()))
		assert.Equal(t, 1, a.TransitionCount())

		assert.True(t, a.RemoveState(5))
		assert.Equal(t, []int{0}, slices.Collect(a.InitialStates()))
	})

	t.Run("RemoveUnreachable", func(t *testing.T) {
		assert.Equal(t, 2, a.RemoveUnreachable())
		assert.ElementsMatch(t, []int{0, 1}, slices.Collect(a.States()))

		a.Clear()
		assert.Equal(t, 0, a.StateCount())
		assert.Empty(t, slices.Collect(a.InitialStates()))
	})
}

func TestDenseNFA(t *testing.T) {
	a := newDenseNFA()
	a.AddInitial(0)
	assert.True(t, a.AddTransition(0, Closed('a', 'm'), 1))
	assert.True(t, a.AddTransition(0, Closed('h', 'z'), 2))
	assert.False(t, a.AddTransition(0, Closed('i', 'k'), 2), "already present")
	a.AddAccepting(1)
	a.AddTransition(2, Point('!'), 1)

	t.Run("Refined", func(t *testing.T) {
		assert.Equal(t, []Transition[int, Interval[rune]]{
			{0, ClosedOpen('a', 'h'), 1},
			{0, Closed('h', 'm'), 1},
			{0, Closed('h', 'm'), 2},
			{0, OpenClosed('m', 'z'), 2},
			{2, Point('!'), 1},
		}, slices.Collect(a.Transitions()))
		assert.Equal(t, 5, a.TransitionCount())
	})

	t.Run("Accepts", func(t *testing.T) {
		assert.True(t, a.Accepts([]rune("b")))
		assert.True(t, a.Accepts([]rune("k")))
		assert.True(t, a.Accepts([]rune("k!")))
		assert.True(t, a.Accepts([]rune("q!")))
		assert.False(t, a.Accepts([]rune("q")))
		assert.False(t, a.Accepts([]rune("b!")))
	})

	t.Run("RemoveTransition", func(t *testing.T) {
		assert.False(t, a.RemoveTransition(0, Closed('a', 'z'), 3))
		assert.True(t, a.RemoveTransition(0, Closed('a', 'z'), 2))
		assert.Equal(t, []Transition[int, Interval[rune]]{
			{0, Closed('a', 'm'), 1},
			{2, Point('!'), 1},
		}, slices.Collect(a.Transitions()))
		assert.False(t, a.Accepts([]rune("q!")))
	})

	t.Run("RemoveState", func(t *testing.T) {
		a.AddEpsilonTransition(0, 2)
		assert.True(t, a.Accepts([]rune("!")))
		assert.True(t, a.RemoveState(2))
		assert.False(t, a.Accepts([]rune("!")))
		assert.Equal(t, 1, a.TransitionCount())
		assert.Equal(t, []Interval[rune]{Point('!'), Closed('a', 'z')}, slices.Collect(a.Alphabet().Intervals()))
	})
}
