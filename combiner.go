package automaton

// StateCombiner decides which state of a result automaton stands for a set of
// source states. Determinize uses it for every subset it discovers and
// Minimize for every equivalence class. Equal sets must combine into equal
// states, as decided by ResultHasher.
type StateCombiner[S, R any] interface {
	Combine(states StateSet[S]) R
	ResultHasher() Hasher[R]
}

type setCombiner[S any] struct{}

func (setCombiner[S]) Combine(states StateSet[S]) StateSet[S] {
	return states
}

func (setCombiner[S]) ResultHasher() Hasher[StateSet[S]] {
	return StateSetHasher[S]()
}

// SetCombiner keeps the set itself as the result state.
func SetCombiner[S any]() StateCombiner[S, StateSet[S]] {
	return setCombiner[S]{}
}

// IndexCombiner numbers distinct sets 0, 1, 2... in the order they are first
// combined.
type IndexCombiner[S any] struct {
	seen *HashMap[StateSet[S], int]
}

func NewIndexCombiner[S any]() *IndexCombiner[S] {
	return &IndexCombiner[S]{seen: NewHashMap[StateSet[S], int](StateSetHasher[S]())}
}

func (c *IndexCombiner[S]) Combine(states StateSet[S]) int {
	if id, ok := c.seen.Get(states); ok {
		return id
	}
	id := c.seen.Size()
	c.seen.Set(states, id)
	return id
}

func (c *IndexCombiner[S]) ResultHasher() Hasher[int] {
	return DefaultHasher[int]()
}

// Sets returns the set each index was assigned to, indexed by result state.
func (c *IndexCombiner[S]) Sets() []StateSet[S] {
	out := make([]StateSet[S], 0, c.seen.Size())
	for set := range c.seen.Keys() {
		out = append(out, set)
	}
	return out
}

// CombinerFunc turns a function into a StateCombiner.
type CombinerFunc[S, R any] struct {
	Fn     func(StateSet[S]) R
	Hasher Hasher[R]
}

func (c CombinerFunc[S, R]) Combine(states StateSet[S]) R {
	return c.Fn(states)
}

func (c CombinerFunc[S, R]) ResultHasher() Hasher[R] {
	return c.Hasher
}
