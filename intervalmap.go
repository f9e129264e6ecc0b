package automaton

import (
	"iter"
	"slices"
	"sort"
)

// IntervalEntry is one interval of an IntervalMap with its value.
type IntervalEntry[T, V any] struct {
	Interval Interval[T]
	Value    V
}

// IntervalMap associates values with pairwise disjoint intervals kept in
// increasing order. Lookups and updates locate the affected entries with
// binary search.
type IntervalMap[T, V any] struct {
	cmp     IntervalComparer[T]
	equal   func(a, b V) bool
	entries []IntervalEntry[T, V]
}

// NewIntervalMap creates an empty map. equal decides which touching
// neighbours MergeTouching may fuse.
func NewIntervalMap[T, V any](values Comparer[T], equal func(a, b V) bool) *IntervalMap[T, V] {
	return &IntervalMap[T, V]{
		cmp:   NewIntervalComparer(values),
		equal: equal,
	}
}

func (m *IntervalMap[T, V]) Comparer() IntervalComparer[T] {
	return m.cmp
}

func (m *IntervalMap[T, V]) Len() int {
	return len(m.entries)
}

// Entries returns a copy of the entries in increasing order.
func (m *IntervalMap[T, V]) Entries() []IntervalEntry[T, V] {
	return slices.Clone(m.entries)
}

func (m *IntervalMap[T, V]) All() iter.Seq2[Interval[T], V] {
	return func(yield func(Interval[T], V) bool) {
		for _, e := range m.entries {
			if !yield(e.Interval, e.Value) {
				return
			}
		}
	}
}

func (m *IntervalMap[T, V]) Clear() {
	clear(m.entries)
	m.entries = m.entries[:0]
}

func (m *IntervalMap[T, V]) Clone() *IntervalMap[T, V] {
	return &IntervalMap[T, V]{
		cmp:     m.cmp,
		equal:   m.equal,
		entries: slices.Clone(m.entries),
	}
}

// Get returns the value of the entry containing key.
func (m *IntervalMap[T, V]) Get(key T) (V, bool) {
	i := sort.Search(len(m.entries), func(i int) bool {
		return m.cmp.admitsUpper(m.entries[i].Interval.Upper, key)
	})
	if i < len(m.entries) && m.cmp.admitsLower(m.entries[i].Interval.Lower, key) {
		return m.entries[i].Value, true
	}
	var zero V
	return zero, false
}

// span returns the range [from, to) of entries sharing a value with iv.
func (m *IntervalMap[T, V]) span(iv Interval[T]) (int, int) {
	from := sort.Search(len(m.entries), func(i int) bool {
		return !m.cmp.IsEmpty(Interval[T]{iv.Lower, m.entries[i].Interval.Upper})
	})
	to := sort.Search(len(m.entries), func(i int) bool {
		return m.cmp.IsEmpty(Interval[T]{m.entries[i].Interval.Lower, iv.Upper})
	})
	return from, max(from, to)
}

// Overlapping enumerates the entries sharing a value with iv, unclipped.
func (m *IntervalMap[T, V]) Overlapping(iv Interval[T]) iter.Seq2[Interval[T], V] {
	return func(yield func(Interval[T], V) bool) {
		if m.cmp.IsEmpty(iv) {
			return
		}
		from, to := m.span(iv)
		for _, e := range m.entries[from:to] {
			if !yield(e.Interval, e.Value) {
				return
			}
		}
	}
}

// Covers reports whether every value of iv lies in some entry whose value
// satisfies pred.
func (m *IntervalMap[T, V]) Covers(iv Interval[T], pred func(V) bool) bool {
	if m.cmp.IsEmpty(iv) {
		return true
	}
	from, to := m.span(iv)
	if from == to {
		return false
	}
	if m.cmp.CompareLower(m.entries[from].Interval.Lower, iv.Lower) > 0 ||
		m.cmp.CompareUpper(m.entries[to-1].Interval.Upper, iv.Upper) < 0 {
		return false
	}
	for i := from; i < to; i++ {
		if i > from && !m.cmp.Touches(m.entries[i-1].Interval.Upper, m.entries[i].Interval.Lower) {
			return false
		}
		if !pred(m.entries[i].Value) {
			return false
		}
	}
	return true
}

// AddAndUpdate maps iv to value. Where iv overlaps existing entries the
// overlapping part gets merge(existing, value); the parts of existing entries
// outside iv keep their value and the parts of iv not covered by any entry get
// value itself. Empty intervals are ignored.
func (m *IntervalMap[T, V]) AddAndUpdate(iv Interval[T], value V, merge func(existing, added V) V) {
	if m.cmp.IsEmpty(iv) {
		return
	}
	from, to := m.span(iv)
	switch to - from {
	case 0:
		m.entries = slices.Insert(m.entries, from, IntervalEntry[T, V]{iv, value})
	case 1:
		m.addSingle(from, iv, value, merge)
	default:
		m.addSpanning(from, to, iv, value, merge)
	}
}

func (m *IntervalMap[T, V]) addSingle(at int, iv Interval[T], value V, merge func(existing, added V) V) {
	e := m.entries[at]
	c := m.cmp
	var out []IntervalEntry[T, V]
	own := func(existingSide bool) V {
		if existingSide {
			return e.Value
		}
		return value
	}

	switch r := c.Relation(e.Interval, iv).(type) {
	case Equal[T]:
		out = []IntervalEntry[T, V]{{r.Interval, merge(e.Value, value)}}
	case Overlapping[T]:
		existingFirst := c.CompareLower(e.Interval.Lower, iv.Lower) < 0
		out = []IntervalEntry[T, V]{
			{r.FirstDisjoint, own(existingFirst)},
			{r.Overlap, merge(e.Value, value)},
			{r.SecondDisjoint, own(!existingFirst)},
		}
	case Containing[T]:
		existingOuter := c.CompareLower(e.Interval.Lower, iv.Lower) < 0
		out = []IntervalEntry[T, V]{
			{r.FirstDisjoint, own(existingOuter)},
			{r.Contained, merge(e.Value, value)},
			{r.SecondDisjoint, own(existingOuter)},
		}
	case Starting[T]:
		existingLonger := c.CompareUpper(e.Interval.Upper, iv.Upper) > 0
		out = []IntervalEntry[T, V]{
			{r.Overlap, merge(e.Value, value)},
			{r.Disjoint, own(existingLonger)},
		}
	case Finishing[T]:
		existingLonger := c.CompareLower(e.Interval.Lower, iv.Lower) < 0
		out = []IntervalEntry[T, V]{
			{r.Disjoint, own(existingLonger)},
			{r.Overlap, merge(e.Value, value)},
		}
	case Disjoint[T], Touching[T]:
		// span only hands over intersecting entries
		panic("automaton: interval map entry does not intersect the inserted interval")
	}
	m.entries = slices.Replace(m.entries, at, at+1, out...)
}

func (m *IntervalMap[T, V]) addSpanning(from, to int, iv Interval[T], value V, merge func(existing, added V) V) {
	c := m.cmp
	first, last := m.entries[from], m.entries[to-1]
	out := make([]IntervalEntry[T, V], 0, 2*(to-from)+1)

	switch r := c.CompareLower(first.Interval.Lower, iv.Lower); {
	case r < 0:
		out = append(out, IntervalEntry[T, V]{Interval[T]{first.Interval.Lower, iv.Lower.flip()}, first.Value})
	case r > 0:
		out = append(out, IntervalEntry[T, V]{Interval[T]{iv.Lower, first.Interval.Lower.flip()}, value})
	}

	for i := from; i < to; i++ {
		e := m.entries[i]
		if i > from {
			gap := Interval[T]{m.entries[i-1].Interval.Upper.flip(), e.Interval.Lower.flip()}
			if !c.IsEmpty(gap) {
				out = append(out, IntervalEntry[T, V]{gap, value})
			}
		}
		overlap := Interval[T]{c.maxLower(e.Interval.Lower, iv.Lower), c.minUpper(e.Interval.Upper, iv.Upper)}
		out = append(out, IntervalEntry[T, V]{overlap, merge(e.Value, value)})
	}

	switch r := c.CompareUpper(iv.Upper, last.Interval.Upper); {
	case r < 0:
		out = append(out, IntervalEntry[T, V]{Interval[T]{iv.Upper.flip(), last.Interval.Upper}, last.Value})
	case r > 0:
		out = append(out, IntervalEntry[T, V]{Interval[T]{last.Interval.Upper.flip(), iv.Upper}, value})
	}

	m.entries = slices.Replace(m.entries, from, to, out...)
}

// UpdateRange rewrites the part of every entry lying inside iv with
// fn(value); entries are split at the bounds of iv first. Pieces for which
// fn returns false are removed. It reports whether any entry was touched.
func (m *IntervalMap[T, V]) UpdateRange(iv Interval[T], fn func(V) (V, bool)) bool {
	if m.cmp.IsEmpty(iv) {
		return false
	}
	from, to := m.span(iv)
	if from == to {
		return false
	}
	c := m.cmp
	out := make([]IntervalEntry[T, V], 0, to-from+2)
	for _, e := range m.entries[from:to] {
		if c.CompareLower(e.Interval.Lower, iv.Lower) < 0 {
			out = append(out, IntervalEntry[T, V]{Interval[T]{e.Interval.Lower, iv.Lower.flip()}, e.Value})
		}
		inner := Interval[T]{c.maxLower(e.Interval.Lower, iv.Lower), c.minUpper(e.Interval.Upper, iv.Upper)}
		if v, keep := fn(e.Value); keep {
			out = append(out, IntervalEntry[T, V]{inner, v})
		}
		if c.CompareUpper(iv.Upper, e.Interval.Upper) < 0 {
			out = append(out, IntervalEntry[T, V]{Interval[T]{iv.Upper.flip(), e.Interval.Upper}, e.Value})
		}
	}
	m.entries = slices.Replace(m.entries, from, to, out...)
	return true
}

// UpdateAll rewrites every value with fn, dropping entries for which fn
// returns false.
func (m *IntervalMap[T, V]) UpdateAll(fn func(V) (V, bool)) {
	out := m.entries[:0]
	for _, e := range m.entries {
		if v, keep := fn(e.Value); keep {
			out = append(out, IntervalEntry[T, V]{e.Interval, v})
		}
	}
	clear(m.entries[len(out):])
	m.entries = out
}

// MergeTouching fuses neighbouring entries that touch and hold equal values.
func (m *IntervalMap[T, V]) MergeTouching() {
	if len(m.entries) < 2 {
		return
	}
	out := m.entries[:1]
	for _, e := range m.entries[1:] {
		prev := &out[len(out)-1]
		if m.cmp.Touches(prev.Interval.Upper, e.Interval.Lower) && m.equal(prev.Value, e.Value) {
			prev.Interval.Upper = e.Interval.Upper
			continue
		}
		out = append(out, e)
	}
	clear(m.entries[len(out):])
	m.entries = out
}
