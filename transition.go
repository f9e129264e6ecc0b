package automaton

import "fmt"

// Transition is an edge of an automaton. On is a symbol for sparse automata
// and an Interval of symbols for dense ones.
type Transition[S, L any] struct {
	From S
	On   L
	To   S
}

func (t Transition[S, L]) String() string {
	return fmt.Sprintf("%v -%v-> %v", t.From, t.On, t.To)
}

// EpsilonTransition is an edge an NFA can take without consuming input.
type EpsilonTransition[S any] struct {
	From S
	To   S
}

func (t EpsilonTransition[S]) String() string {
	return fmt.Sprintf("%v -ε-> %v", t.From, t.To)
}

// Pair is an unordered pair of states.
type Pair[S any] struct {
	A, B S
}
