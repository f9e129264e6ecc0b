package automaton

import "iter"

// DenseDFA is a deterministic automaton over an ordered alphabet. Every state
// maps disjoint intervals of symbols to destinations, so large character
// classes cost one entry.
type DenseDFA[S, T any] struct {
	stateTable[S]
	symbols     Comparer[T]
	initial     S
	hasInitial  bool
	transitions *HashMap[S, *IntervalMap[T, S]]
	alphabet    *IntervalSet[T]
}

func NewDenseDFA[S, T any](states Hasher[S], symbols Comparer[T]) *DenseDFA[S, T] {
	return &DenseDFA[S, T]{
		stateTable:  newStateTable(states),
		symbols:     symbols,
		transitions: NewHashMap[S, *IntervalMap[T, S]](states),
		alphabet:    NewIntervalSet(symbols),
	}
}

func (a *DenseDFA[S, T]) SymbolComparer() Comparer[T] {
	return a.symbols
}

func (a *DenseDFA[S, T]) InitialState() (S, bool) {
	return a.initial, a.hasInitial
}

// SetInitialState makes state the initial state, adding it when needed.
func (a *DenseDFA[S, T]) SetInitialState(state S) {
	a.AddState(state)
	a.initial, a.hasInitial = state, true
}

// Alphabet returns a copy of the set of symbols transitions were ever added
// for.
func (a *DenseDFA[S, T]) Alphabet() *IntervalSet[T] {
	return a.alphabet.Clone()
}

func (a *DenseDFA[S, T]) row(from S) *IntervalMap[T, S] {
	row, ok := a.transitions.Get(from)
	if !ok {
		row = NewIntervalMap[T, S](a.symbols, a.hasher.Equal)
		a.transitions.Set(from, row)
	}
	return row
}

// AddTransition routes every symbol of on from from to to, overriding what
// those symbols led to before. It reports whether the automaton changed;
// empty intervals are ignored.
func (a *DenseDFA[S, T]) AddTransition(from S, on Interval[T], to S) bool {
	cmp := NewIntervalComparer(a.symbols)
	if cmp.IsEmpty(on) {
		return false
	}
	a.AddState(from)
	a.AddState(to)
	a.alphabet.Add(on)

	row := a.row(from)
	if row.Covers(on, func(d S) bool { return a.hasher.Equal(d, to) }) {
		return false
	}
	row.AddAndUpdate(on, to, func(_, added S) S { return added })
	row.MergeTouching()
	return true
}

// RemoveTransition drops the symbols of on leading from from to to. It
// reports whether any symbol was dropped.
func (a *DenseDFA[S, T]) RemoveTransition(from S, on Interval[T], to S) bool {
	row, ok := a.transitions.Get(from)
	if !ok {
		return false
	}
	found := false
	for _, d := range row.Overlapping(on) {
		if a.hasher.Equal(d, to) {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	row.UpdateRange(on, func(d S) (S, bool) {
		return d, !a.hasher.Equal(d, to)
	})
	return true
}

// Next returns the destination of from on symbol on.
func (a *DenseDFA[S, T]) Next(from S, on T) (S, bool) {
	if row, ok := a.transitions.Get(from); ok {
		return row.Get(on)
	}
	var zero S
	return zero, false
}

func (a *DenseDFA[S, T]) Transitions() iter.Seq[Transition[S, Interval[T]]] {
	return func(yield func(Transition[S, Interval[T]]) bool) {
		for from, row := range a.transitions.Iterator() {
			for on, to := range row.All() {
				if !yield(Transition[S, Interval[T]]{From: from, On: on, To: to}) {
					return
				}
			}
		}
	}
}

func (a *DenseDFA[S, T]) TransitionCount() int {
	n := 0
	for row := range a.transitions.Values() {
		n += row.Len()
	}
	return n
}

// RemoveState removes state with every transition touching it. It reports
// whether state existed.
func (a *DenseDFA[S, T]) RemoveState(state S) bool {
	if !a.removeState(state) {
		return false
	}
	a.transitions.Delete(state)
	for _, row := range a.transitions.Iterator() {
		row.UpdateAll(func(d S) (S, bool) {
			return d, !a.hasher.Equal(d, state)
		})
	}
	if a.hasInitial && a.hasher.Equal(a.initial, state) {
		var zero S
		a.initial, a.hasInitial = zero, false
	}
	return true
}

// Clear removes every state, transition and alphabet symbol.
func (a *DenseDFA[S, T]) Clear() {
	a.stateTable.clear()
	a.transitions.Clear()
	a.alphabet.Clear()
	var zero S
	a.initial, a.hasInitial = zero, false
}

// Accepts runs the automaton over input.
func (a *DenseDFA[S, T]) Accepts(input []T) bool {
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
// to trap, so that the automaton becomes total over its alphabet. The trap
// state loops onto itself. It reports whether any transition was added.
func (a *DenseDFA[S, T]) Complete(trap S) (bool, error) {
	if a.alphabet.IsEmpty() {
		return false, ErrEmptyAlphabet
	}
	var missing []Transition[S, Interval[T]]
	for state := range a.States() {
		gaps := a.alphabet.Clone()
		if row, ok := a.transitions.Get(state); ok {
			for on := range row.All() {
				gaps.Remove(on)
			}
		}
		for on := range gaps.Intervals() {
			missing = append(missing, Transition[S, Interval[T]]{From: state, On: on, To: trap})
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
		for on := range a.alphabet.Clone().Intervals() {
			a.AddTransition(trap, on, trap)
		}
	}
	return true, nil
}

// RemoveUnreachable drops every state the initial state cannot reach and
// returns how many were removed.
func (a *DenseDFA[S, T]) RemoveUnreachable() int {
	var initial []S
	if a.hasInitial {
		initial = append(initial, a.initial)
	}
	dead := unreachableStates(&a.stateTable, initial, func(s S, visit func(S)) {
		if row, ok := a.transitions.Get(s); ok {
			for _, to := range row.All() {
				visit(to)
			}
		}
	})
	for _, s := range dead {
		a.RemoveState(s)
	}
	return len(dead)
}

// Ranges returns the transitions of state as closed symbol ranges, for code
// generators working on discrete alphabets. Open ends are moved inwards with
// succ and pred, unbounded ends become min and max. Ranges left empty are
// skipped.
func (a *DenseDFA[S, T]) Ranges(state S, succ, pred func(T) T, min, max T) []Transition[S, [2]T] {
	row, ok := a.transitions.Get(state)
	if !ok {
		return nil
	}
	var out []Transition[S, [2]T]
	for on, to := range row.All() {
		lo, hi := min, max
		switch on.Lower.Kind {
		case Inclusive:
			lo = on.Lower.Value
		case Exclusive:
			lo = succ(on.Lower.Value)
		}
		switch on.Upper.Kind {
		case Inclusive:
			hi = on.Upper.Value
		case Exclusive:
			hi = pred(on.Upper.Value)
		}
		if a.symbols.Compare(lo, hi) > 0 {
			continue
		}
		out = append(out, Transition[S, [2]T]{From: state, On: [2]T{lo, hi}, To: to})
	}
	return out
}

type pairMove[S any] struct {
	p, q       S
	hasP, hasQ bool
}

func mergePairMove[S any](existing, added pairMove[S]) pairMove[S] {
	if added.hasP {
		existing.p, existing.hasP = added.p, true
	}
	if added.hasQ {
		existing.q, existing.hasQ = added.q, true
	}
	return existing
}

// pairMoves walks the common refinement of the intervals leaving p and q,
// with the destination of each on that piece.
func (a *DenseDFA[S, T]) pairMoves(p, q S, yield func(pTo S, pOk bool, qTo S, qOk bool) bool) {
	moves := NewIntervalMap[T, pairMove[S]](a.symbols, nil)
	if row, ok := a.transitions.Get(p); ok {
		for on, to := range row.All() {
			moves.AddAndUpdate(on, pairMove[S]{p: to, hasP: true}, mergePairMove[S])
		}
	}
	if row, ok := a.transitions.Get(q); ok {
		for on, to := range row.All() {
			moves.AddAndUpdate(on, pairMove[S]{q: to, hasQ: true}, mergePairMove[S])
		}
	}
	for _, m := range moves.All() {
		if !yield(m.p, m.hasP, m.q, m.hasQ) {
			return
		}
	}
}
