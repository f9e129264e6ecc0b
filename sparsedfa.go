package automaton

import "iter"

// SparseDFA is a deterministic automaton storing one transition per symbol.
// It suits alphabets without an order or with few symbols in use.
type SparseDFA[S, T any] struct {
	stateTable[S]
	symbols     Hasher[T]
	initial     S
	hasInitial  bool
	transitions *HashMap[S, *HashMap[T, S]]
	alphabet    *HashSet[T]
}

func NewSparseDFA[S, T any](states Hasher[S], symbols Hasher[T]) *SparseDFA[S, T] {
	return &SparseDFA[S, T]{
		stateTable:  newStateTable(states),
		symbols:     symbols,
		transitions: NewHashMap[S, *HashMap[T, S]](states),
		alphabet:    NewHashSet[T](symbols),
	}
}

func (a *SparseDFA[S, T]) SymbolHasher() Hasher[T] {
	return a.symbols
}

func (a *SparseDFA[S, T]) InitialState() (S, bool) {
	return a.initial, a.hasInitial
}

// SetInitialState makes state the initial state, adding it when needed.
func (a *SparseDFA[S, T]) SetInitialState(state S) {
	a.AddState(state)
	a.initial, a.hasInitial = state, true
}

// Alphabet enumerates every symbol a transition was ever added for.
func (a *SparseDFA[S, T]) Alphabet() iter.Seq[T] {
	return a.alphabet.All()
}

// AddTransition adds from -on-> to, replacing any other destination on the
// same symbol. It reports whether the automaton changed.
func (a *SparseDFA[S, T]) AddTransition(from S, on T, to S) bool {
	a.AddState(from)
	a.AddState(to)
	a.alphabet.Add(on)

	row, ok := a.transitions.Get(from)
	if !ok {
		row = NewHashMap[T, S](a.symbols)
		a.transitions.Set(from, row)
	}
	if old, ok := row.Get(on); ok && a.hasher.Equal(old, to) {
		return false
	}
	row.Set(on, to)
	return true
}

// RemoveTransition reports whether from -on-> to existed.
func (a *SparseDFA[S, T]) RemoveTransition(from S, on T, to S) bool {
	row, ok := a.transitions.Get(from)
	if !ok {
		return false
	}
	if old, ok := row.Get(on); !ok || !a.hasher.Equal(old, to) {
		return false
	}
	return row.Delete(on)
}

// Next returns the destination of from on symbol on.
func (a *SparseDFA[S, T]) Next(from S, on T) (S, bool) {
	if row, ok := a.transitions.Get(from); ok {
		return row.Get(on)
	}
	var zero S
	return zero, false
}

func (a *SparseDFA[S, T]) Transitions() iter.Seq[Transition[S, T]] {
	return func(yield func(Transition[S, T]) bool) {
		for from, row := range a.transitions.Iterator() {
			for on, to := range row.Iterator() {
				if !yield(Transition[S, T]{From: from, On: on, To: to}) {
					return
				}
			}
		}
	}
}

func (a *SparseDFA[S, T]) TransitionCount() int {
	n := 0
	for row := range a.transitions.Values() {
		n += row.Size()
	}
	return n
}

// RemoveState removes state with every transition touching it. It reports
// whether state existed.
func (a *SparseDFA[S, T]) RemoveState(state S) bool {
	if !a.removeState(state) {
		return false
	}
	a.transitions.Delete(state)
	for _, row := range a.transitions.Iterator() {
		for on, to := range row.Iterator() {
			if a.hasher.Equal(to, state) {
				row.Delete(on)
			}
		}
	}
	if a.hasInitial && a.hasher.Equal(a.initial, state) {
		var zero S
		a.initial, a.hasInitial = zero, false
	}
	return true
}

// Clear removes every state, transition and alphabet symbol.
func (a *SparseDFA[S, T]) Clear() {
	a.stateTable.clear()
	a.transitions.Clear()
	a.alphabet.Clear()
	var zero S
	a.initial, a.hasInitial = zero, false
}

// Accepts runs the automaton over input.
func (a *SparseDFA[S, T]) Accepts(input []T) bool {
	state, ok := a.InitialState()
	if !ok {
		return false
	}
	for _, sym := range input {
		if state, ok = a.Next(state, sym); !ok {
			return false
		}
	}
	return a.IsAccepting(state)
}

// Complete routes every symbol of the alphabet a state has no transition on
// to trap, so that the automaton becomes total. The trap state loops onto
// itself. It reports whether any transition was added.
func (a *SparseDFA[S, T]) Complete(trap S) (bool, error) {
	if a.alphabet.Size() == 0 {
		return false, ErrEmptyAlphabet
	}
	var missing []Transition[S, T]
	for state := range a.States() {
		row, _ := a.transitions.Get(state)
		for sym := range a.alphabet.All() {
			if row != nil && row.Has(sym) {
				continue
			}
			missing = append(missing, Transition[S, T]{From: state, On: sym, To: trap})
		}
	}
	if len(missing) == 0 {
		return false, nil
	}
	trapExisted := a.HasState(trap)
	for _, t := range missing {
		a.AddTransition(t.From, t.On, t.To)
	}
	if !trapExisted {
		for sym := range a.alphabet.All() {
			a.AddTransition(trap, sym, trap)
		}
	}
	return true, nil
}

// RemoveUnreachable drops every state the initial state cannot reach and
// returns how many were removed.
func (a *SparseDFA[S, T]) RemoveUnreachable() int {
	var initial []S
	if a.hasInitial {
		initial = append(initial, a.initial)
	}
	dead := unreachableStates(&a.stateTable, initial, func(s S, visit func(S)) {
		if row, ok := a.transitions.Get(s); ok {
			for to := range row.Values() {
				visit(to)
			}
		}
	})
	for _, s := range dead {
		a.RemoveState(s)
	}
	return len(dead)
}

// pairMoves walks the union of the symbols leaving p and q, with the
// destination of each on that symbol.
func (a *SparseDFA[S, T]) pairMoves(p, q S, yield func(pTo S, pOk bool, qTo S, qOk bool) bool) {
	pr, _ := a.transitions.Get(p)
	qr, _ := a.transitions.Get(q)
	var zero S
	if pr != nil {
		for on, pTo := range pr.Iterator() {
			qTo, qOk := zero, false
			if qr != nil {
				qTo, qOk = qr.Get(on)
			}
			if !yield(pTo, true, qTo, qOk) {
				return
			}
		}
	}
	if qr != nil {
		for on, qTo := range qr.Iterator() {
			if pr != nil && pr.Has(on) {
				continue
			}
			if !yield(zero, false, qTo, true) {
				return
			}
		}
	}
}
