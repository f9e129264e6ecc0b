package automaton

// Interval is a range of values between two bounds. Nothing about the value
// type is assumed besides a total order, in particular no successor function.
type Interval[T any] struct {
	Lower LowerBound[T]
	Upper UpperBound[T]
}

func (iv Interval[T]) String() string {
	return iv.Lower.String() + "; " + iv.Upper.String()
}

// Closed returns [lo; hi].
func Closed[T any](lo, hi T) Interval[T] {
	return Interval[T]{LowerInclusive(lo), UpperInclusive(hi)}
}

// Open returns (lo; hi).
func Open[T any](lo, hi T) Interval[T] {
	return Interval[T]{LowerExclusive(lo), UpperExclusive(hi)}
}

// ClosedOpen returns [lo; hi).
func ClosedOpen[T any](lo, hi T) Interval[T] {
	return Interval[T]{LowerInclusive(lo), UpperExclusive(hi)}
}

// OpenClosed returns (lo; hi].
func OpenClosed[T any](lo, hi T) Interval[T] {
	return Interval[T]{LowerExclusive(lo), UpperInclusive(hi)}
}

// Point returns [v; v].
func Point[T any](v T) Interval[T] {
	return Closed(v, v)
}

// Full returns the interval holding every value.
func Full[T any]() Interval[T] {
	return Interval[T]{}
}

func AtMost[T any](v T) Interval[T] {
	return Interval[T]{Upper: UpperInclusive(v)}
}

func LessThan[T any](v T) Interval[T] {
	return Interval[T]{Upper: UpperExclusive(v)}
}

func AtLeast[T any](v T) Interval[T] {
	return Interval[T]{Lower: LowerInclusive(v)}
}

func GreaterThan[T any](v T) Interval[T] {
	return Interval[T]{Lower: LowerExclusive(v)}
}

// IntervalComparer implements the bound and interval algebra on top of a
// value ordering.
type IntervalComparer[T any] struct {
	Values Comparer[T]
}

func NewIntervalComparer[T any](values Comparer[T]) IntervalComparer[T] {
	return IntervalComparer[T]{Values: values}
}

// CompareLower orders lower bounds: unbounded first, then by value, an
// inclusive bound before an exclusive one at the same value.
func (c IntervalComparer[T]) CompareLower(a, b LowerBound[T]) int {
	switch {
	case a.Kind == Unbounded && b.Kind == Unbounded:
		return 0
	case a.Kind == Unbounded:
		return -1
	case b.Kind == Unbounded:
		return 1
	}
	if r := c.Values.Compare(a.Value, b.Value); r != 0 {
		return r
	}
	switch {
	case a.Kind == b.Kind:
		return 0
	case a.Kind == Inclusive:
		return -1
	default:
		return 1
	}
}

// CompareUpper orders upper bounds: by value, an exclusive bound before an
// inclusive one at the same value, unbounded last.
func (c IntervalComparer[T]) CompareUpper(a, b UpperBound[T]) int {
	switch {
	case a.Kind == Unbounded && b.Kind == Unbounded:
		return 0
	case a.Kind == Unbounded:
		return 1
	case b.Kind == Unbounded:
		return -1
	}
	if r := c.Values.Compare(a.Value, b.Value); r != 0 {
		return r
	}
	switch {
	case a.Kind == b.Kind:
		return 0
	case a.Kind == Exclusive:
		return -1
	default:
		return 1
	}
}

func (c IntervalComparer[T]) maxLower(a, b LowerBound[T]) LowerBound[T] {
	if c.CompareLower(a, b) < 0 {
		return b
	}
	return a
}

func (c IntervalComparer[T]) minUpper(a, b UpperBound[T]) UpperBound[T] {
	if c.CompareUpper(a, b) > 0 {
		return b
	}
	return a
}

// IsEmpty reports whether no value can lie between the bounds of iv.
func (c IntervalComparer[T]) IsEmpty(iv Interval[T]) bool {
	if iv.Lower.Kind == Unbounded || iv.Upper.Kind == Unbounded {
		return false
	}
	r := c.Values.Compare(iv.Lower.Value, iv.Upper.Value)
	switch {
	case r < 0:
		return false
	case r > 0:
		return true
	default:
		return iv.Lower.Kind != Inclusive || iv.Upper.Kind != Inclusive
	}
}

func (c IntervalComparer[T]) admitsLower(b LowerBound[T], v T) bool {
	switch b.Kind {
	case Inclusive:
		return c.Values.Compare(b.Value, v) <= 0
	case Exclusive:
		return c.Values.Compare(b.Value, v) < 0
	default:
		return true
	}
}

func (c IntervalComparer[T]) admitsUpper(b UpperBound[T], v T) bool {
	switch b.Kind {
	case Inclusive:
		return c.Values.Compare(v, b.Value) <= 0
	case Exclusive:
		return c.Values.Compare(v, b.Value) < 0
	default:
		return true
	}
}

// Contains reports whether v lies inside iv.
func (c IntervalComparer[T]) Contains(iv Interval[T], v T) bool {
	return c.admitsLower(iv.Lower, v) && c.admitsUpper(iv.Upper, v)
}

// Touches reports whether lower starts exactly where upper ends, leaving
// neither a gap nor an overlap between them.
func (c IntervalComparer[T]) Touches(upper UpperBound[T], lower LowerBound[T]) bool {
	if upper.Kind == Unbounded || lower.Kind == Unbounded || upper.Kind == lower.Kind {
		return false
	}
	return c.Values.Compare(upper.Value, lower.Value) == 0
}

// Intersection returns the common part of a and b, or false when they share
// no value.
func (c IntervalComparer[T]) Intersection(a, b Interval[T]) (Interval[T], bool) {
	iv := Interval[T]{c.maxLower(a.Lower, b.Lower), c.minUpper(a.Upper, b.Upper)}
	if c.IsEmpty(iv) {
		return Interval[T]{}, false
	}
	return iv, true
}

func (c IntervalComparer[T]) Intersects(a, b Interval[T]) bool {
	_, ok := c.Intersection(a, b)
	return ok
}

func (c IntervalComparer[T]) Equal(a, b Interval[T]) bool {
	return c.CompareLower(a.Lower, b.Lower) == 0 && c.CompareUpper(a.Upper, b.Upper) == 0
}

// Compare orders intervals by lower bound, then by upper bound.
func (c IntervalComparer[T]) Compare(a, b Interval[T]) int {
	if r := c.CompareLower(a.Lower, b.Lower); r != 0 {
		return r
	}
	return c.CompareUpper(a.Upper, b.Upper)
}
