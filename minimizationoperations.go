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

// minimizeSource is what the table filling algorithm needs from a DFA.
type minimizeSource[S, L any] interface {
	StateHasher() Hasher[S]
	StateCount() int
	InitialState() (S, bool)
	IsAccepting(state S) bool
	Transitions() iter.Seq[Transition[S, L]]
	indexStates() ([]S, *HashMap[S, int])
	pairMoves(p, q S, yield func(pTo S, pOk bool, qTo S, qOk bool) bool)
}

var (
	_ minimizeSource[int, rune]           = (*SparseDFA[int, rune])(nil)
	_ minimizeSource[int, Interval[rune]] = (*DenseDFA[int, rune])(nil)
)

type minimizeOptions[S any] struct {
	pairs  []Pair[S]
	groups [][]S
}

type MinimizeOption[S any] func(*minimizeOptions[S])

// WithDistinctPairs keeps the states of every pair apart, whatever their
// behaviour. States unknown to the automaton are ignored.
func WithDistinctPairs[S any](pairs ...Pair[S]) MinimizeOption[S] {
	return func(o *minimizeOptions[S]) {
		o.pairs = append(o.pairs, pairs...)
	}
}

// WithDistinctStates keeps every two of states apart. Lexers pass the
// accepting states of different tokens.
func WithDistinctStates[S any](states ...S) MinimizeOption[S] {
	return func(o *minimizeOptions[S]) {
		o.groups = append(o.groups, states)
	}
}

// MinimizeSparse merges the states of dfa no input can tell apart. Each class
// of merged states becomes one state named by combiner. dfa is not modified.
func MinimizeSparse[S, R, T any](ctx context.Context, dfa *SparseDFA[S, T], combiner StateCombiner[S, R],
	opts ...MinimizeOption[S]) (*SparseDFA[R, T], error) {
	out := NewSparseDFA[R, T](combiner.ResultHasher(), dfa.SymbolHasher())
	if err := minimize[S, R, T](ctx, "sparse", dfa, out, combiner, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// MinimizeDense merges the states of dfa no input can tell apart. Each class
// of merged states becomes one state named by combiner. dfa is not modified.
func MinimizeDense[S, R, T any](ctx context.Context, dfa *DenseDFA[S, T], combiner StateCombiner[S, R],
	opts ...MinimizeOption[S]) (*DenseDFA[R, T], error) {
	out := NewDenseDFA[R, T](combiner.ResultHasher(), dfa.SymbolComparer())
	if err := minimize[S, R, Interval[T]](ctx, "dense", dfa, out, combiner, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// pairTable records which pairs of states are known to be distinguishable.
type pairTable struct {
	n    uint
	bits *bitset.BitSet
}

func newPairTable(n int) *pairTable {
	return &pairTable{n: uint(n), bits: bitset.New(uint(n * n))}
}

func (t *pairTable) mark(i, j int) {
	t.bits.Set(uint(i)*t.n + uint(j))
	t.bits.Set(uint(j)*t.n + uint(i))
}

func (t *pairTable) marked(i, j int) bool {
	return t.bits.Test(uint(i)*t.n + uint(j))
}

func (t *pairTable) count() uint {
	return t.bits.Count() / 2
}

func minimize[S, R, L any](ctx context.Context, kind string, src minimizeSource[S, L], dst dfaBuilder[R, L],
	combiner StateCombiner[S, R], opts []MinimizeOption[S]) (err error) {
	ctx, span := tracer.Start(ctx, "automaton.Minimize", trace.WithAttributes(
		attribute.String("automaton.kind", kind),
		attribute.Int("dfa.states", src.StateCount()),
	))
	started := time.Now()
	defer func() {
		recordOperationMetrics(ctx, "minimize", time.Since(started), dst.StateCount(), err)
		endSpan(span, err)
	}()

	if err = ctx.Err(); err != nil {
		return err
	}
	initial, ok := src.InitialState()
	if !ok {
		return ErrNoInitialState
	}

	options := &minimizeOptions[S]{}
	for _, opt := range opts {
		opt(options)
	}

	states, index := src.indexStates()
	n := len(states)
	accepting := bitset.New(uint(n))
	for i, s := range states {
		if src.IsAccepting(s) {
			accepting.Set(uint(i))
		}
	}

	table := newPairTable(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if accepting.Test(uint(i)) != accepting.Test(uint(j)) {
				table.mark(i, j)
			}
		}
	}
	markDistinct := func(a, b S) {
		i, okA := index.Get(a)
		j, okB := index.Get(b)
		if okA && okB && i != j {
			table.mark(i, j)
		}
	}
	for _, p := range options.pairs {
		markDistinct(p.A, p.B)
	}
	for _, group := range options.groups {
		for x := range group {
			for y := x + 1; y < len(group); y++ {
				markDistinct(group[x], group[y])
			}
		}
	}

	live := liveStates(src, states, index, accepting)
	distinguishable := func(i, j int) bool {
		dist := false
		src.pairMoves(states[i], states[j], func(pTo S, pOk bool, qTo S, qOk bool) bool {
			switch {
			case pOk && qOk:
				a, _ := index.Get(pTo)
				b, _ := index.Get(qTo)
				dist = a != b && table.marked(a, b)
			case pOk:
				a, _ := index.Get(pTo)
				dist = live.Test(uint(a))
			case qOk:
				b, _ := index.Get(qTo)
				dist = live.Test(uint(b))
			}
			return !dist
		})
		return dist
	}

	passes := 0
	refine := func() error {
		for changed := true; changed; {
			if err := ctx.Err(); err != nil {
				return err
			}
			changed = false
			passes++
			for i := 0; i < n; i++ {
				for j := i + 1; j < n; j++ {
					if !table.marked(i, j) && distinguishable(i, j) {
						table.mark(i, j)
						changed = true
					}
				}
			}
			span.AddEvent("pass_complete", trace.WithAttributes(
				attribute.Int("pass", passes),
				attribute.Int("marked_pairs", int(table.count())),
			))
		}
		return nil
	}

	// unmarked is not transitive once distinct pairs are seeded: states put
	// in different classes are marked and the fixpoint rerun, so that their
	// predecessors split as well
	var classOf []int
	var classCount int
	for {
		if err = refine(); err != nil {
			return err
		}
		classOf, classCount = partitionStates(table, n)
		split := false
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if classOf[i] != classOf[j] && !table.marked(i, j) {
					table.mark(i, j)
					split = true
				}
			}
		}
		if !split {
			break
		}
	}
	recordRefinementPasses(ctx, passes)

	members := make([]*StateSetBuilder[S], classCount)
	for c := range members {
		members[c] = NewStateSetBuilder(src.StateHasher())
	}
	for i, s := range states {
		members[classOf[i]].Add(s)
	}

	results := make([]R, len(members))
	for c, b := range members {
		set := b.Freeze()
		results[c] = combiner.Combine(set)
		dst.AddState(results[c])
		for s := range set.All() {
			if src.IsAccepting(s) {
				dst.AddAccepting(results[c])
				break
			}
		}
	}

	stateClass := func(s S) R {
		i, _ := index.Get(s)
		return results[classOf[i]]
	}
	dst.SetInitialState(stateClass(initial))
	for t := range src.Transitions() {
		dst.AddTransition(stateClass(t.From), t.On, stateClass(t.To))
	}

	span.SetAttributes(
		attribute.Int("minimized.states", dst.StateCount()),
		attribute.Int("passes", passes),
	)
	loggerWithTrace(ctx).Debug("minimized automaton",
		slog.String("kind", kind),
		slog.Int("dfa_states", n),
		slog.Int("minimized_states", dst.StateCount()),
		slog.Int("passes", passes),
	)
	return nil
}

// partitionStates puts every state into the first class it is unmarked
// against entirely, so that no class holds a marked pair.
func partitionStates(table *pairTable, n int) ([]int, int) {
	classOf := make([]int, n)
	var classes [][]int
	for i := 0; i < n; i++ {
		c := -1
	search:
		for k, members := range classes {
			for _, m := range members {
				if table.marked(i, m) {
					continue search
				}
			}
			c = k
			break
		}
		if c < 0 {
			c = len(classes)
			classes = append(classes, nil)
		}
		classes[c] = append(classes[c], i)
		classOf[i] = c
	}
	return classOf, len(classes)
}

// liveStates marks the states distinguishable from the implicit trap state:
// the accepting states and every state with a path into one of them.
func liveStates[S, L any](src minimizeSource[S, L], states []S, index *HashMap[S, int], accepting *bitset.BitSet) *bitset.BitSet {
	reverse := make([][]int, len(states))
	for t := range src.Transitions() {
		from, _ := index.Get(t.From)
		to, _ := index.Get(t.To)
		reverse[to] = append(reverse[to], from)
	}

	live := accepting.Clone()
	workList := make([]int, 0, live.Count())
	for i, ok := live.NextSet(0); ok; i, ok = live.NextSet(i + 1) {
		workList = append(workList, int(i))
	}
	for len(workList) > 0 {
		s := workList[len(workList)-1]
		workList = workList[:len(workList)-1]
		for _, from := range reverse[s] {
			if !live.Test(uint(from)) {
				live.Set(uint(from))
				workList = append(workList, from)
			}
		}
	}
	return live
}
