package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var intCmp = NewIntervalComparer(OrderedComparer[int]())

func TestBoundOrder(t *testing.T) {
	t.Run("Lower", func(t *testing.T) {
		assert.Equal(t, -1, intCmp.CompareLower(LowerUnbounded[int](), LowerInclusive(-100)))
		assert.Equal(t, -1, intCmp.CompareLower(LowerInclusive(3), LowerExclusive(3)))
		assert.Equal(t, 1, intCmp.CompareLower(LowerInclusive(4), LowerExclusive(3)))
		assert.Equal(t, 0, intCmp.CompareLower(LowerExclusive(3), LowerExclusive(3)))
		assert.Equal(t, 0, intCmp.CompareLower(LowerUnbounded[int](), LowerUnbounded[int]()))
	})

	t.Run("Upper", func(t *testing.T) {
		assert.Equal(t, 1, intCmp.CompareUpper(UpperUnbounded[int](), UpperInclusive(100)))
		assert.Equal(t, -1, intCmp.CompareUpper(UpperExclusive(3), UpperInclusive(3)))
		assert.Equal(t, 1, intCmp.CompareUpper(UpperExclusive(4), UpperInclusive(3)))
		assert.Equal(t, 0, intCmp.CompareUpper(UpperInclusive(3), UpperInclusive(3)))
	})

	t.Run("Flip", func(t *testing.T) {
		assert.Equal(t, UpperExclusive(3), LowerInclusive(3).flip())
		assert.Equal(t, UpperInclusive(3), LowerExclusive(3).flip())
		assert.Equal(t, LowerExclusive(3), UpperInclusive(3).flip())
		assert.Equal(t, LowerInclusive(3), UpperExclusive(3).flip())
		assert.True(t, intCmp.Touches(LowerInclusive(3).flip(), LowerInclusive(3)))
	})

	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "[1; 3]", Closed(1, 3).String())
		assert.Equal(t, "(1; 3)", Open(1, 3).String())
		assert.Equal(t, "(-∞; +∞)", Full[int]().String())
		assert.Equal(t, "exclusive", Exclusive.String())
	})
}

func TestIntervalEmptiness(t *testing.T) {
	tests := []struct {
		name  string
		iv    Interval[int]
		empty bool
	}{
		{"point", Point(3), false},
		{"closed", Closed(1, 3), false},
		{"reversed", Closed(4, 3), true},
		{"open point", Open(3, 3), true},
		{"half open point", ClosedOpen(3, 3), true},
		{"open neighbours", Open(3, 4), false},
		{"full", Full[int](), false},
		{"at most", AtMost(3), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.empty, intCmp.IsEmpty(tt.iv))
		})
	}
}

func TestIntervalContains(t *testing.T) {
	assert.True(t, intCmp.Contains(Closed(1, 3), 1))
	assert.True(t, intCmp.Contains(Closed(1, 3), 3))
	assert.False(t, intCmp.Contains(ClosedOpen(1, 3), 3))
	assert.False(t, intCmp.Contains(OpenClosed(1, 3), 1))
	assert.True(t, intCmp.Contains(LessThan(0), -1000))
	assert.False(t, intCmp.Contains(GreaterThan(0), 0))
	assert.True(t, intCmp.Contains(AtLeast(0), 0))
}

func TestIntervalIntersection(t *testing.T) {
	iv, ok := intCmp.Intersection(Closed(1, 5), OpenClosed(3, 9))
	assert.True(t, ok)
	assert.Equal(t, OpenClosed(3, 5), iv)

	_, ok = intCmp.Intersection(ClosedOpen(1, 3), Closed(3, 5))
	assert.False(t, ok)
	assert.True(t, intCmp.Intersects(Closed(1, 3), Closed(3, 5)))
	assert.True(t, intCmp.Equal(Point(2), Closed(2, 2)))
	assert.Equal(t, -1, intCmp.Compare(Closed(1, 3), Closed(1, 4)))
}

func TestIntervalRelation(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval[int]
		want IntervalRelation[int]
	}{
		{
			name: "disjoint",
			a:    Closed(1, 3), b: Closed(5, 7),
			want: Disjoint[int]{First: Closed(1, 3), Second: Closed(5, 7)},
		},
		{
			name: "disjoint at an excluded point",
			a:    LessThan(3), b: GreaterThan(3),
			want: Disjoint[int]{First: LessThan(3), Second: GreaterThan(3)},
		},
		{
			name: "touching",
			a:    ClosedOpen(1, 3), b: Closed(3, 5),
			want: Touching[int]{First: ClosedOpen(1, 3), Second: Closed(3, 5)},
		},
		{
			name: "touching unbounded",
			a:    AtMost(3), b: GreaterThan(3),
			want: Touching[int]{First: AtMost(3), Second: GreaterThan(3)},
		},
		{
			name: "overlapping",
			a:    Closed(1, 3), b: Closed(3, 5),
			want: Overlapping[int]{
				FirstDisjoint:  ClosedOpen(1, 3),
				Overlap:        Point(3),
				SecondDisjoint: OpenClosed(3, 5),
			},
		},
		{
			name: "containing",
			a:    Closed(1, 9), b: Closed(3, 5),
			want: Containing[int]{
				FirstDisjoint:  ClosedOpen(1, 3),
				Contained:      Closed(3, 5),
				SecondDisjoint: OpenClosed(5, 9),
			},
		},
		{
			name: "starting",
			a:    Closed(1, 3), b: Closed(1, 5),
			want: Starting[int]{Overlap: Closed(1, 3), Disjoint: OpenClosed(3, 5)},
		},
		{
			name: "finishing",
			a:    Closed(1, 5), b: Closed(3, 5),
			want: Finishing[int]{Disjoint: ClosedOpen(1, 3), Overlap: Closed(3, 5)},
		},
		{
			name: "equal",
			a:    Closed(1, 3), b: Closed(1, 3),
			want: Equal[int]{Interval: Closed(1, 3)},
		},
		{
			name: "containing unbounded",
			a:    Full[int](), b: Point(0),
			want: Containing[int]{
				FirstDisjoint:  LessThan(0),
				Contained:      Point(0),
				SecondDisjoint: GreaterThan(0),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, intCmp.Relation(tt.a, tt.b))
			assert.Equal(t, tt.want, intCmp.Relation(tt.b, tt.a), "argument order")
		})
	}
}
