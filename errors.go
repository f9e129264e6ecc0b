package automaton

import "errors"

var (
	// ErrNoInitialState is returned when an operation needs an initial state
	// and the automaton has none.
	ErrNoInitialState = errors.New("automaton: no initial state")

	// ErrEmptyAlphabet is returned by Complete when no symbol was ever added
	// to the automaton.
	ErrEmptyAlphabet = errors.New("automaton: empty alphabet")
)
