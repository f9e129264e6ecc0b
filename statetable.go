package automaton

import "iter"

// stateTable holds the bookkeeping every automaton flavor shares: the state
// set and its accepting subset.
type stateTable[S any] struct {
	hasher    Hasher[S]
	states    *HashSet[S]
	accepting *HashSet[S]
}

func newStateTable[S any](hasher Hasher[S]) stateTable[S] {
	return stateTable[S]{
		hasher:    hasher,
		states:    NewHashSet[S](hasher),
		accepting: NewHashSet[S](hasher),
	}
}

// StateHasher returns the equality the automaton uses for its states.
func (t *stateTable[S]) StateHasher() Hasher[S] {
	return t.hasher
}

// AddState reports whether state was not yet part of the automaton.
func (t *stateTable[S]) AddState(state S) bool {
	return t.states.Add(state)
}

func (t *stateTable[S]) HasState(state S) bool {
	return t.states.Contains(state)
}

func (t *stateTable[S]) States() iter.Seq[S] {
	return t.states.All()
}

func (t *stateTable[S]) StateCount() int {
	return t.states.Size()
}

func (t *stateTable[S]) AcceptingStates() iter.Seq[S] {
	return t.accepting.All()
}

func (t *stateTable[S]) IsAccepting(state S) bool {
	return t.accepting.Contains(state)
}

// AddAccepting marks state as accepting, adding it to the automaton when
// needed. It reports whether the mark is new.
func (t *stateTable[S]) AddAccepting(state S) bool {
	t.states.Add(state)
	return t.accepting.Add(state)
}

// RemoveAccepting reports whether state was accepting.
func (t *stateTable[S]) RemoveAccepting(state S) bool {
	return t.accepting.Remove(state)
}

func (t *stateTable[S]) removeState(state S) bool {
	if !t.states.Remove(state) {
		return false
	}
	t.accepting.Remove(state)
	return true
}

func (t *stateTable[S]) clear() {
	t.states.Clear()
	t.accepting.Clear()
}

// states returned as a slice with a dense index, for the bitset based
// algorithms.
func (t *stateTable[S]) indexStates() ([]S, *HashMap[S, int]) {
	list := make([]S, 0, t.states.Size())
	index := NewHashMap[S, int](t.hasher, WithCapacity(t.states.Size()*2))
	for s := range t.states.All() {
		index.Set(s, len(list))
		list = append(list, s)
	}
	return list, index
}
