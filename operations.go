package automaton

import (
	"context"
	"iter"
	"log/slog"
	"time"

	"github.com/bits-and-blooms/bitset"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// subsetSource is what the subset construction needs from an NFA. L is the
// transition label: a symbol for sparse automata, an interval for dense ones.
type subsetSource[S, L any] interface {
	StateHasher() Hasher[S]
	StateCount() int
	InitialStates() iter.Seq[S]
	IsAccepting(state S) bool
	moves(from StateSet[S], yield func(on L, dests iter.Seq[S]) bool)
	closeOver(b *StateSetBuilder[S], states iter.Seq[S])
}

// dfaBuilder is the write side of a DFA the algorithms build into.
type dfaBuilder[S, L any] interface {
	AddState(state S) bool
	SetInitialState(state S)
	AddAccepting(state S) bool
	AddTransition(from S, on L, to S) bool
	StateCount() int
}

var (
	_ subsetSource[int, rune]           = (*SparseNFA[int, rune])(nil)
	_ subsetSource[int, Interval[rune]] = (*DenseNFA[int, rune])(nil)
	_ dfaBuilder[int, rune]             = (*SparseDFA[int, rune])(nil)
	_ dfaBuilder[int, Interval[rune]]   = (*DenseDFA[int, rune])(nil)
)

// DeterminizeSparse converts nfa into an equivalent DFA with the subset
// construction. Every reachable set of NFA states becomes one DFA state,
// named by combiner. nfa is not modified.
func DeterminizeSparse[S, R, T any](ctx context.Context, nfa *SparseNFA[S, T], combiner StateCombiner[S, R]) (*SparseDFA[R, T], error) {
	dfa := NewSparseDFA[R, T](combiner.ResultHasher(), nfa.SymbolHasher())
	if err := determinize[S, R, T](ctx, "sparse", nfa, dfa, combiner); err != nil {
		return nil, err
	}
	return dfa, nil
}

// DeterminizeDense converts nfa into an equivalent DFA with the subset
// construction. Overlapping intervals leaving a subset are first refined into
// disjoint pieces. nfa is not modified.
func DeterminizeDense[S, R, T any](ctx context.Context, nfa *DenseNFA[S, T], combiner StateCombiner[S, R]) (*DenseDFA[R, T], error) {
	dfa := NewDenseDFA[R, T](combiner.ResultHasher(), nfa.SymbolComparer())
	if err := determinize[S, R, Interval[T]](ctx, "dense", nfa, dfa, combiner); err != nil {
		return nil, err
	}
	return dfa, nil
}

func determinize[S, R, L any](ctx context.Context, kind string, src subsetSource[S, L], dst dfaBuilder[R, L],
	combiner StateCombiner[S, R]) (err error) {
	ctx, span := tracer.Start(ctx, "automaton.Determinize", trace.WithAttributes(
		attribute.String("automaton.kind", kind),
		attribute.Int("nfa.states", src.StateCount()),
	))
	started := time.Now()
	defer func() {
		recordOperationMetrics(ctx, "determinize", time.Since(started), dst.StateCount(), err)
		endSpan(span, err)
	}()

	if err = ctx.Err(); err != nil {
		return err
	}

	hasher := src.StateHasher()
	b := NewStateSetBuilder(hasher)
	src.closeOver(b, src.InitialStates())
	if b.Size() == 0 {
		return ErrNoInitialState
	}

	register := func(set StateSet[S]) R {
		r := combiner.Combine(set)
		dst.AddState(r)
		for s := range set.All() {
			if src.IsAccepting(s) {
				dst.AddAccepting(r)
				break
			}
		}
		return r
	}

	initial := b.Freeze()
	visited := NewHashSet[StateSet[S]](StateSetHasher[S]())
	visited.Add(initial)
	queue := []StateSet[S]{initial}
	dst.SetInitialState(register(initial))

	for popped := 1; len(queue) > 0; popped++ {
		if err = ctx.Err(); err != nil {
			return err
		}
		current := queue[0]
		queue = queue[1:]
		from := combiner.Combine(current)

		src.moves(current, func(on L, dests iter.Seq[S]) bool {
			nb := NewStateSetBuilder(hasher)
			src.closeOver(nb, dests)
			next := nb.Freeze()

			var to R
			if visited.Add(next) {
				queue = append(queue, next)
				to = register(next)
			} else {
				to = combiner.Combine(next)
			}
			dst.AddTransition(from, on, to)
			return true
		})

		if popped%1024 == 0 {
			span.AddEvent("worklist_progress", trace.WithAttributes(
				attribute.Int("subsets_processed", popped),
				attribute.Int("worklist_size", len(queue)),
			))
		}
	}

	span.SetAttributes(attribute.Int("dfa.states", dst.StateCount()))
	loggerWithTrace(ctx).Debug("determinized automaton",
		slog.String("kind", kind),
		slog.Int("nfa_states", src.StateCount()),
		slog.Int("dfa_states", dst.StateCount()),
	)
	return nil
}

// unreachableStates lists the states of table no state of initial reaches
// through successors.
func unreachableStates[S any](table *stateTable[S], initial []S, successors func(s S, visit func(S))) []S {
	states, index := table.indexStates()
	live := bitset.New(uint(len(states)))
	workList := make([]int, 0, len(initial))

	mark := func(s S) {
		if i, ok := index.Get(s); ok && !live.Test(uint(i)) {
			live.Set(uint(i))
			workList = append(workList, i)
		}
	}
	for _, s := range initial {
		mark(s)
	}
	for len(workList) > 0 {
		i := workList[len(workList)-1]
		workList = workList[:len(workList)-1]
		successors(states[i], mark)
	}

	var dead []S
	for i, s := range states {
		if !live.Test(uint(i)) {
			dead = append(dead, s)
		}
	}
	return dead
}
