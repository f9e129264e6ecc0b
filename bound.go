package automaton

import "fmt"

// BoundKind tells whether an interval end is open ended, closed or open.
type BoundKind uint8

const (
	Unbounded BoundKind = iota
	Inclusive
	Exclusive
)

func (k BoundKind) String() string {
	switch k {
	case Unbounded:
		return "unbounded"
	case Inclusive:
		return "inclusive"
	case Exclusive:
		return "exclusive"
	default:
		return fmt.Sprintf("BoundKind(%d)", uint8(k))
	}
}

// LowerBound is the starting end of an interval. The zero value is unbounded.
type LowerBound[T any] struct {
	Kind  BoundKind
	Value T
}

// UpperBound is the finishing end of an interval. The zero value is unbounded.
type UpperBound[T any] struct {
	Kind  BoundKind
	Value T
}

func LowerUnbounded[T any]() LowerBound[T] {
	return LowerBound[T]{}
}

func LowerInclusive[T any](v T) LowerBound[T] {
	return LowerBound[T]{Kind: Inclusive, Value: v}
}

func LowerExclusive[T any](v T) LowerBound[T] {
	return LowerBound[T]{Kind: Exclusive, Value: v}
}

func UpperUnbounded[T any]() UpperBound[T] {
	return UpperBound[T]{}
}

func UpperInclusive[T any](v T) UpperBound[T] {
	return UpperBound[T]{Kind: Inclusive, Value: v}
}

func UpperExclusive[T any](v T) UpperBound[T] {
	return UpperBound[T]{Kind: Exclusive, Value: v}
}

func (b LowerBound[T]) IsUnbounded() bool {
	return b.Kind == Unbounded
}

func (b UpperBound[T]) IsUnbounded() bool {
	return b.Kind == Unbounded
}

// flip returns the upper bound ending right where b starts, so that the two
// touch. b must be bounded.
func (b LowerBound[T]) flip() UpperBound[T] {
	if b.Kind == Inclusive {
		return UpperExclusive(b.Value)
	}
	return UpperInclusive(b.Value)
}

// flip returns the lower bound starting right where b ends, so that the two
// touch. b must be bounded.
func (b UpperBound[T]) flip() LowerBound[T] {
	if b.Kind == Inclusive {
		return LowerExclusive(b.Value)
	}
	return LowerInclusive(b.Value)
}

func (b LowerBound[T]) String() string {
	switch b.Kind {
	case Inclusive:
		return fmt.Sprintf("[%v", b.Value)
	case Exclusive:
		return fmt.Sprintf("(%v", b.Value)
	default:
		return "(-∞"
	}
}

func (b UpperBound[T]) String() string {
	switch b.Kind {
	case Inclusive:
		return fmt.Sprintf("%v]", b.Value)
	case Exclusive:
		return fmt.Sprintf("%v)", b.Value)
	default:
		return "+∞)"
	}
}
