package automaton

// Small ready-made dense automata over integer states, starting at state 0.

// MakeEmpty returns an automaton accepting nothing.
func MakeEmpty[T any](symbols Comparer[T]) *DenseDFA[int, T] {
	a := NewDenseDFA[int, T](DefaultHasher[int](), symbols)
	a.SetInitialState(0)
	return a
}

// MakeEmptyString returns an automaton accepting only the empty input.
func MakeEmptyString[T any](symbols Comparer[T]) *DenseDFA[int, T] {
	a := MakeEmpty(symbols)
	a.AddAccepting(0)
	return a
}

// MakeAnyString returns an automaton accepting every input.
func MakeAnyString[T any](symbols Comparer[T]) *DenseDFA[int, T] {
	a := MakeEmptyString(symbols)
	a.AddTransition(0, Full[T](), 0)
	return a
}

// MakeInterval returns an automaton accepting any single symbol of iv.
func MakeInterval[T any](symbols Comparer[T], iv Interval[T]) *DenseDFA[int, T] {
	a := MakeEmpty(symbols)
	a.AddAccepting(1)
	a.AddTransition(0, iv, 1)
	return a
}

// MakeString returns an automaton accepting exactly s.
func MakeString(s string) *DenseDFA[int, rune] {
	a := MakeEmpty(OrderedComparer[rune]())
	state := 0
	for _, r := range s {
		a.AddTransition(state, Point(r), state+1)
		state++
	}
	a.AddAccepting(state)
	return a
}
