package automaton

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSparseDFA() *SparseDFA[string, rune] {
	return NewSparseDFA[string, rune](DefaultHasher[string](), DefaultHasher[rune]())
}

func TestSparseDFATransitions(t *testing.T) {
	a := newSparseDFA()
	assert.True(t, a.AddTransition("s", 'a', "t"))
	assert.False(t, a.AddTransition("s", 'a', "t"), "duplicate")
	assert.True(t, a.AddTransition("s", 'a', "u"), "overrides destination")
	assert.True(t, a.AddTransition("t", 'b', "s"))

	to, ok := a.Next("s", 'a')
	assert.True(t, ok)
	assert.Equal(t, "u", to)
	_, ok = a.Next("s", 'b')
	assert.False(t, ok)

	assert.Equal(t, 3, a.StateCount())
	assert.Equal(t, 2, a.TransitionCount())
	assert.ElementsMatch(t, []rune{'a', 'b'}, slices.Collect(a.Alphabet()))

	assert.False(t, a.RemoveTransition("s", 'a', "t"))
	assert.True(t, a.RemoveTransition("s", 'a', "u"))
	assert.False(t, a.RemoveTransition("s", 'a', "u"))
	assert.Equal(t, 1, a.TransitionCount())
	assert.ElementsMatch(t, []rune{'a', 'b'}, slices.Collect(a.Alphabet()), "alphabet only grows")
}

func TestSparseDFARemoveState(t *testing.T) {
	a := newSparseDFA()
	a.SetInitialState("s")
	a.AddTransition("s", 'a', "t")
	a.AddTransition("t", 'b', "s")
	a.AddTransition("t", 'c', "t")
	a.AddAccepting("t")

	assert.True(t, a.RemoveState("t"))
	assert.False(t, a.RemoveState("t"))
	assert.False(t, a.IsAccepting("t"))
	assert.Equal(t, 0, a.TransitionCount())

	initial, ok := a.InitialState()
	assert.True(t, ok)
	assert.Equal(t, "s", initial)

	a.RemoveState("s")
	_, ok = a.InitialState()
	assert.False(t, ok)
}

func TestSparseDFAAccepts(t *testing.T) {
	a := newSparseDFA()
	assert.False(t, a.Accepts(nil), "no initial state")

	a.SetInitialState("s")
	a.AddTransition("s", 'a', "t")
	a.AddTransition("t", 'b', "s")
	a.AddAccepting("t")

	assert.True(t, a.Accepts([]rune("a")))
	assert.True(t, a.Accepts([]rune("aba")))
	assert.False(t, a.Accepts([]rune("ab")))
	assert.False(t, a.Accepts([]rune("aa")))
	assert.False(t, a.Accepts(nil))
}

func TestSparseDFAComplete(t *testing.T) {
	t.Run("EmptyAlphabet", func(t *testing.T) {
		a := newSparseDFA()
		a.SetInitialState("s")
		_, err := a.Complete("trap")
		require.ErrorIs(t, err, ErrEmptyAlphabet)
		assert.False(t, a.HasState("trap"))
	})

	t.Run("AddsTrap", func(t *testing.T) {
		a := newSparseDFA()
		a.SetInitialState("s")
		a.AddTransition("s", 'a', "t")
		a.AddTransition("t", 'b', "s")
		a.AddAccepting("t")

		changed, err := a.Complete("trap")
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, 3, a.StateCount())
		assert.Equal(t, 6, a.TransitionCount())
		for state := range a.States() {
			for _, sym := range []rune{'a', 'b'} {
				_, ok := a.Next(state, sym)
				assert.True(t, ok, "%s on %c", state, sym)
			}
		}
		assert.True(t, a.Accepts([]rune("aba")))
		assert.False(t, a.Accepts([]rune("bba")))

		changed, err = a.Complete("trap")
		require.NoError(t, err)
		assert.False(t, changed)
	})
}

func TestSparseDFARemoveUnreachable(t *testing.T) {
	a := newSparseDFA()
	a.SetInitialState("s")
	a.AddTransition("s", 'a', "t")
	a.AddTransition("x", 'a', "s")
	a.AddTransition("x", 'b', "y")

	assert.Equal(t, 2, a.RemoveUnreachable())
	assert.ElementsMatch(t, []string{"s", "t"}, slices.Collect(a.States()))
	assert.Equal(t, 1, a.TransitionCount())

	a.Clear()
	assert.Equal(t, 0, a.StateCount())
	assert.Empty(t, slices.Collect(a.Alphabet()))
}
