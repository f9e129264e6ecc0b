package automaton

import (
	"iter"
	"slices"
)

// DenseNFA is a nondeterministic automaton over an ordered alphabet. Every
// state maps disjoint intervals of symbols to destination sets; adding a
// transition on an interval overlapping existing ones unions the
// destinations on the common part.
type DenseNFA[S, T any] struct {
	stateTable[S]
	epsilon     epsilonTable[S]
	symbols     Comparer[T]
	initial     *HashSet[S]
	transitions *HashMap[S, *IntervalMap[T, StateSet[S]]]
	alphabet    *IntervalSet[T]
}

func NewDenseNFA[S, T any](states Hasher[S], symbols Comparer[T]) *DenseNFA[S, T] {
	return &DenseNFA[S, T]{
		stateTable:  newStateTable(states),
		epsilon:     newEpsilonTable(states),
		symbols:     symbols,
		initial:     NewHashSet[S](states),
		transitions: NewHashMap[S, *IntervalMap[T, StateSet[S]]](states),
		alphabet:    NewIntervalSet(symbols),
	}
}

func unionStates[S any](existing, added StateSet[S]) StateSet[S] {
	return existing.Union(added)
}

func (a *DenseNFA[S, T]) SymbolComparer() Comparer[T] {
	return a.symbols
}

func (a *DenseNFA[S, T]) InitialStates() iter.Seq[S] {
	return a.initial.All()
}

// AddInitial marks state as initial, adding it when needed. It reports
// whether the mark is new.
func (a *DenseNFA[S, T]) AddInitial(state S) bool {
	a.AddState(state)
	return a.initial.Add(state)
}

func (a *DenseNFA[S, T]) RemoveInitial(state S) bool {
	return a.initial.Remove(state)
}

// Alphabet returns a copy of the set of symbols transitions were ever added
// for.
func (a *DenseNFA[S, T]) Alphabet() *IntervalSet[T] {
	return a.alphabet.Clone()
}

// AddTransition adds to to the destinations of every symbol of on. It
// reports whether the automaton changed; empty intervals are ignored.
func (a *DenseNFA[S, T]) AddTransition(from S, on Interval[T], to S) bool {
	if NewIntervalComparer(a.symbols).IsEmpty(on) {
		return false
	}
	a.AddState(from)
	a.AddState(to)
	a.alphabet.Add(on)

	row, ok := a.transitions.Get(from)
	if !ok {
		row = NewIntervalMap[T, StateSet[S]](a.symbols, StateSet[S].Equal)
		a.transitions.Set(from, row)
	}
	if row.Covers(on, func(d StateSet[S]) bool { return d.Contains(to) }) {
		return false
	}
	row.AddAndUpdate(on, NewStateSet(a.hasher, to), unionStates[S])
	row.MergeTouching()
	return true
}

// RemoveTransition drops to from the destinations of every symbol of on. It
// reports whether any destination was dropped.
func (a *DenseNFA[S, T]) RemoveTransition(from S, on Interval[T], to S) bool {
	row, ok := a.transitions.Get(from)
	if !ok {
		return false
	}
	found := false
	for _, d := range row.Overlapping(on) {
		if d.Contains(to) {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	row.UpdateRange(on, func(d StateSet[S]) (StateSet[S], bool) {
		d = d.Without(to)
		return d, d.Size() > 0
	})
	row.MergeTouching()
	return true
}

// AddEpsilonTransition reports whether from -ε-> to is new.
func (a *DenseNFA[S, T]) AddEpsilonTransition(from, to S) bool {
	a.AddState(from)
	a.AddState(to)
	return a.epsilon.add(from, to)
}

func (a *DenseNFA[S, T]) RemoveEpsilonTransition(from, to S) bool {
	return a.epsilon.remove(from, to)
}

func (a *DenseNFA[S, T]) EpsilonTransitions() iter.Seq[EpsilonTransition[S]] {
	return a.epsilon.all()
}

// EpsilonClosure enumerates the states reachable from state through epsilon
// transitions only, state itself included.
func (a *DenseNFA[S, T]) EpsilonClosure(state S) iter.Seq[S] {
	return a.epsilon.closure(state)
}

// Transitions enumerates one transition per interval and destination.
func (a *DenseNFA[S, T]) Transitions() iter.Seq[Transition[S, Interval[T]]] {
	return func(yield func(Transition[S, Interval[T]]) bool) {
		for from, row := range a.transitions.Iterator() {
			for on, dests := range row.All() {
				for to := range dests.All() {
					if !yield(Transition[S, Interval[T]]{From: from, On: on, To: to}) {
						return
					}
				}
			}
		}
	}
}

func (a *DenseNFA[S, T]) TransitionCount() int {
	n := 0
	for row := range a.transitions.Values() {
		for _, dests := range row.All() {
			n += dests.Size()
		}
	}
	return n
}

// RemoveState removes state with every transition and epsilon transition
// touching it. It reports whether state existed.
func (a *DenseNFA[S, T]) RemoveState(state S) bool {
	if !a.removeState(state) {
		return false
	}
	a.initial.Remove(state)
	a.epsilon.removeState(state)
	a.transitions.Delete(state)
	for _, row := range a.transitions.Iterator() {
		row.UpdateAll(func(d StateSet[S]) (StateSet[S], bool) {
			d = d.Without(state)
			return d, d.Size() > 0
		})
		row.MergeTouching()
	}
	return true
}

// Clear removes every state, transition and alphabet symbol.
func (a *DenseNFA[S, T]) Clear() {
	a.stateTable.clear()
	a.initial.Clear()
	a.epsilon.edges.Clear()
	a.transitions.Clear()
	a.alphabet.Clear()
}

// Accepts runs the automaton over input, following every alternative.
func (a *DenseNFA[S, T]) Accepts(input []T) bool {
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
func (a *DenseNFA[S, T]) RemoveUnreachable() int {
	dead := unreachableStates(&a.stateTable, slices.Collect(a.InitialStates()), func(s S, visit func(S)) {
		if dests, ok := a.epsilon.edges.Get(s); ok {
			for d := range dests.All() {
				visit(d)
			}
		}
		if row, ok := a.transitions.Get(s); ok {
			for _, dests := range row.All() {
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

// moves refines the intervals leaving the members of from into disjoint
// pieces, each with the union of the destinations.
func (a *DenseNFA[S, T]) moves(from StateSet[S], yield func(Interval[T], iter.Seq[S]) bool) {
	grouped := NewIntervalMap[T, StateSet[S]](a.symbols, StateSet[S].Equal)
	for s := range from.All() {
		row, ok := a.transitions.Get(s)
		if !ok {
			continue
		}
		for on, dests := range row.All() {
			grouped.AddAndUpdate(on, dests, unionStates[S])
		}
	}
	for on, dests := range grouped.All() {
		if !yield(on, dests.All()) {
			return
		}
	}
}

func (a *DenseNFA[S, T]) closeOver(b *StateSetBuilder[S], states iter.Seq[S]) {
	a.epsilon.closeOver(b, states)
}
