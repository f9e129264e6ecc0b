package automaton

import "iter"

// epsilonTable stores the epsilon transitions of an NFA.
type epsilonTable[S any] struct {
	hasher Hasher[S]
	edges  *HashMap[S, *HashSet[S]]
}

func newEpsilonTable[S any](hasher Hasher[S]) epsilonTable[S] {
	return epsilonTable[S]{
		hasher: hasher,
		edges:  NewHashMap[S, *HashSet[S]](hasher),
	}
}

func (e *epsilonTable[S]) add(from, to S) bool {
	dests, ok := e.edges.Get(from)
	if !ok {
		dests = NewHashSet[S](e.hasher)
		e.edges.Set(from, dests)
	}
	return dests.Add(to)
}

func (e *epsilonTable[S]) remove(from, to S) bool {
	dests, ok := e.edges.Get(from)
	if !ok {
		return false
	}
	return dests.Remove(to)
}

func (e *epsilonTable[S]) removeState(state S) {
	e.edges.Delete(state)
	for dests := range e.edges.Values() {
		dests.Remove(state)
	}
}

func (e *epsilonTable[S]) all() iter.Seq[EpsilonTransition[S]] {
	return func(yield func(EpsilonTransition[S]) bool) {
		for from, dests := range e.edges.Iterator() {
			for to := range dests.All() {
				if !yield(EpsilonTransition[S]{From: from, To: to}) {
					return
				}
			}
		}
	}
}

func (e *epsilonTable[S]) count() int {
	n := 0
	for dests := range e.edges.Values() {
		n += dests.Size()
	}
	return n
}

// closure walks the epsilon edges breadth first, starting with state itself.
// Every state is produced once, so cycles terminate.
func (e *epsilonTable[S]) closure(state S) iter.Seq[S] {
	return func(yield func(S) bool) {
		visited := NewHashSet[S](e.hasher)
		visited.Add(state)
		queue := []S{state}
		for len(queue) > 0 {
			s := queue[0]
			queue = queue[1:]
			if !yield(s) {
				return
			}
			dests, ok := e.edges.Get(s)
			if !ok {
				continue
			}
			for d := range dests.All() {
				if visited.Add(d) {
					queue = append(queue, d)
				}
			}
		}
	}
}

// closeOver adds the epsilon closure of every state in states to b.
func (e *epsilonTable[S]) closeOver(b *StateSetBuilder[S], states iter.Seq[S]) {
	for s := range states {
		if b.inner.Contains(s) {
			continue
		}
		for c := range e.closure(s) {
			b.Add(c)
		}
	}
}
