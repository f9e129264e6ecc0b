package automaton

import (
	"iter"
	"slices"
)

// SparseNFA is a nondeterministic automaton storing a destination set per
// symbol, with epsilon transitions and any number of initial states.
type SparseNFA[S, T any] struct {
	stateTable[S]
	epsilon     epsilonTable[S]
	symbols     Hasher[T]
	initial     *HashSet[S]
	transitions *HashMap[S, *HashMap[T, *HashSet[S]]]
	alphabet    *HashSet[T]
}

func NewSparseNFA[S, T any](states Hasher[S], symbols Hasher[T]) *SparseNFA[S, T] {
	return &SparseNFA[S, T]{
		stateTable:  newStateTable(states),
		epsilon:     newEpsilonTable(states),
		symbols:     symbols,
		initial:     NewHashSet[S](states),
		transitions: NewHashMap[S, *HashMap[T, *HashSet[S]]](states),
		alphabet:    NewHashSet[T](symbols),
	}
}

func (a *SparseNFA[S, T]) SymbolHasher() Hasher[T] {
	return a.symbols
}

func (a *SparseNFA[S, T]) InitialStates() iter.Seq[S] {
	return a.initial.All()
}

// AddInitial marks state as initial, adding it when needed. It reports
// whether the mark is new.
func (a *SparseNFA[S, T]) AddInitial(state S) bool {
	a.AddState(state)
	return a.initial.Add(state)
}

func (a *SparseNFA[S, T]) RemoveInitial(state S) bool {
	return a.initial.Remove(state)
}

func (a *SparseNFA[S, T]) Alphabet() iter.Seq[T] {
	return a.alphabet.All()
}

// AddTransition reports whether from -on-> to is new.
func (a *SparseNFA[S, T]) AddTransition(from S, on T, to S) bool {
	a.AddState(from)
	a.AddState(to)
	a.alphabet.Add(on)

	row, ok := a.transitions.Get(from)
	if !ok {
		row = NewHashMap[T, *HashSet[S]](a.symbols)
		a.transitions.Set(from, row)
	}
	dests, ok := row.Get(on)
	if !ok {
		dests = NewHashSet[S](a.hasher)
		row.Set(on, dests)
	}
	return dests.Add(to)
}

// RemoveTransition reports whether from -on-> to existed.
func (a *SparseNFA[S, T]) RemoveTransition(from S, on T, to S) bool {
	row, ok := a.transitions.Get(from)
	if !ok {
		return false
	}
	dests, ok := row.Get(on)
	if !ok || !dests.Remove(to) {
		return false
	}
	if dests.Size() == 0 {
		row.Delete(on)
	}
	return true
}

// AddEpsilonTransition reports whether from -ε-> to is new.
func (a *SparseNFA[S, T]) AddEpsilonTransition(from, to S) bool {
	a.AddState(from)
	a.AddState(to)
	return a.epsilon.add(from, to)
}

func (a *SparseNFA[S, T]) RemoveEpsilonTransition(from, to S) bool {
	return a.epsilon.remove(from, to)
}

func (a *SparseNFA[S, T]) EpsilonTransitions() iter.Seq[EpsilonTransition[S]] {
	return a.epsilon.all()
}

// EpsilonClosure enumerates the states reachable from state through epsilon
// transitions only, state itself included.
func (a *SparseNFA[S, T]) EpsilonClosure(state S) iter.Seq[S] {
	return a.epsilon.closure(state)
}

func (a *SparseNFA[S, T]) Transitions() iter.Seq[Transition[S, T]] {
	return func(yield func(Transition[S, T]) bool) {
		for from, row := range a.transitions.Iterator() {
			for on, dests := range row.Iterator() {
				for to := range dests.All() {
					if !yield(Transition[S, T]{From: from, On: on, To: to}) {
						return
					}
				}
			}
		}
	}
}

func (a *SparseNFA[S, T]) TransitionCount() int {
	n := 0
	for row := range a.transitions.Values() {
		for dests := range row.Values() {
			n += dests.Size()
		}
	}
	return n
}

// RemoveState removes state with every transition and epsilon transition
// touching it. It reports whether state existed.
func (a *SparseNFA[S, T]) RemoveState(state S) bool {
	if !a.removeState(state) {
		return false
	}
	a.initial.Remove(state)
	a.epsilon.removeState(state)
	a.transitions.Delete(state)
	for _, row := range a.transitions.Iterator() {
		for on, dests := range row.Iterator() {
			if dests.Remove(state) && dests.Size() == 0 {
				row.Delete(on)
			}
		}
	}
	return true
}

// Clear removes every state, transition and alphabet symbol.
func (a *SparseNFA[S, T]) Clear() {
	a.stateTable.clear()
	a.initial.Clear()
	a.epsilon.edges.Clear()
	a.transitions.Clear()
	a.alphabet.Clear()
}

// Accepts runs the automaton over input, following every alternative.
func (a *SparseNFA[S, T]) Accepts(input []T) bool {
	return runNFA(&a.epsilon, &a.stateTable, a.InitialStates(), input, func(s S, sym T, visit func(S)) {
		row, ok := a.transitions.Get(s)
		if !ok {
			return
		}
		if dests, ok := row.Get(sym); ok {
			for d := range dests.All() {
				visit(d)
			}
		}
	})
}

// RemoveUnreachable drops every state no initial state can reach and returns
// how many were removed.
func (a *SparseNFA[S, T]) RemoveUnreachable() int {
	dead := unreachableStates(&a.stateTable, slices.Collect(a.InitialStates()), func(s S, visit func(S)) {
		if dests, ok := a.epsilon.edges.Get(s); ok {
			for d := range dests.All() {
				visit(d)
			}
		}
		if row, ok := a.transitions.Get(s); ok {
			for dests := range row.Values() {
				for d := range dests.All() {
					visit(d)
				}
			}
		}
	})
	for _, s := range dead {
		a.RemoveState(s)
	}
	return len(dead)
}

// moves groups the transitions leaving the members of from by symbol.
func (a *SparseNFA[S, T]) moves(from StateSet[S], yield func(T, iter.Seq[S]) bool) {
	grouped := NewHashMap[T, *StateSetBuilder[S]](a.symbols)
	for s := range from.All() {
		row, ok := a.transitions.Get(s)
		if !ok {
			continue
		}
		for on, dests := range row.Iterator() {
			b, ok := grouped.Get(on)
			if !ok {
				b = NewStateSetBuilder(a.hasher)
				grouped.Set(on, b)
			}
			for d := range dests.All() {
				b.Add(d)
			}
		}
	}
	for on, b := range grouped.Iterator() {
		if !yield(on, b.Freeze().All()) {
			return
		}
	}
}

func (a *SparseNFA[S, T]) closeOver(b *StateSetBuilder[S], states iter.Seq[S]) {
	a.epsilon.closeOver(b, states)
}
