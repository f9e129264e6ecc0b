package automaton

import "iter"

// runNFA tracks the epsilon closed set of current states over input and
// reports whether it ends up containing an accepting state. step feeds visit
// with the destinations of one state on one symbol.
func runNFA[S, T any](eps *epsilonTable[S], table *stateTable[S], initial iter.Seq[S], input []T,
	step func(s S, sym T, visit func(S))) bool {
	current := NewStateSetBuilder(table.hasher)
	eps.closeOver(current, initial)
	for _, sym := range input {
		if current.Size() == 0 {
			return false
		}
		next := NewStateSetBuilder(table.hasher)
		for _, s := range current.values {
			step(s, sym, func(d S) {
				if !next.inner.Contains(d) {
					for c := range eps.closure(d) {
						next.Add(c)
					}
				}
			})
		}
		current = next
	}
	for _, s := range current.values {
		if table.IsAccepting(s) {
			return true
		}
	}
	return false
}

// Run reports whether the automaton accepts the runes of s.
func Run[S any](a *DenseDFA[S, rune], s string) bool {
	return a.Accepts([]rune(s))
}
