package automaton

// IntervalRelation describes how two intervals relate. It is one of Disjoint,
// Touching, Overlapping, Containing, Starting, Finishing or Equal; consumers
// are expected to switch on the concrete type. Apart from Equal, every
// variant splits the union of the two intervals into consecutive non-empty
// pieces ordered from low to high.
type IntervalRelation[T any] interface {
	isIntervalRelation()
}

// Disjoint intervals have a gap between them. First lies below Second.
type Disjoint[T any] struct {
	First, Second Interval[T]
}

// Touching intervals have neither a gap nor a common value between them.
// First lies below Second.
type Touching[T any] struct {
	First, Second Interval[T]
}

// Overlapping intervals each stick out on one side of their common part:
// one starts first and the other finishes last.
type Overlapping[T any] struct {
	FirstDisjoint  Interval[T]
	Overlap        Interval[T]
	SecondDisjoint Interval[T]
}

// Containing means one interval strictly contains the other, sticking out on
// both sides of it.
type Containing[T any] struct {
	FirstDisjoint  Interval[T]
	Contained      Interval[T]
	SecondDisjoint Interval[T]
}

// Starting intervals start together, the longer one continues past the
// shorter one with Disjoint.
type Starting[T any] struct {
	Overlap  Interval[T]
	Disjoint Interval[T]
}

// Finishing intervals finish together, the longer one starts before the
// shorter one with Disjoint.
type Finishing[T any] struct {
	Disjoint Interval[T]
	Overlap  Interval[T]
}

// Equal intervals share both bounds.
type Equal[T any] struct {
	Interval Interval[T]
}

func (Disjoint[T]) isIntervalRelation()    {}
func (Touching[T]) isIntervalRelation()    {}
func (Overlapping[T]) isIntervalRelation() {}
func (Containing[T]) isIntervalRelation()  {}
func (Starting[T]) isIntervalRelation()    {}
func (Finishing[T]) isIntervalRelation()   {}
func (Equal[T]) isIntervalRelation()       {}

// Relation classifies a and b. The result does not depend on the argument
// order.
func (c IntervalComparer[T]) Relation(a, b Interval[T]) IntervalRelation[T] {
	lc := c.CompareLower(a.Lower, b.Lower)
	if lc > 0 || (lc == 0 && c.CompareUpper(a.Upper, b.Upper) > 0) {
		a, b = b, a
		lc = -lc
	}

	if !c.Intersects(a, b) {
		if c.Touches(a.Upper, b.Lower) {
			return Touching[T]{First: a, Second: b}
		}
		return Disjoint[T]{First: a, Second: b}
	}

	uc := c.CompareUpper(a.Upper, b.Upper)
	if lc == 0 {
		if uc == 0 {
			return Equal[T]{Interval: a}
		}
		// a is the shorter one here
		return Starting[T]{
			Overlap:  a,
			Disjoint: Interval[T]{a.Upper.flip(), b.Upper},
		}
	}

	head := Interval[T]{a.Lower, b.Lower.flip()}
	switch {
	case uc == 0:
		return Finishing[T]{Disjoint: head, Overlap: b}
	case uc > 0:
		return Containing[T]{
			FirstDisjoint:  head,
			Contained:      b,
			SecondDisjoint: Interval[T]{b.Upper.flip(), a.Upper},
		}
	default:
		return Overlapping[T]{
			FirstDisjoint:  head,
			Overlap:        Interval[T]{b.Lower, a.Upper},
			SecondDisjoint: Interval[T]{a.Upper.flip(), b.Upper},
		}
	}
}
