package lexer

import (
	"fmt"
	"unicode"

	"github.com/geange/automaton/v2"
)

// Pattern describes the text a token matches. Patterns are plain values and
// can be reused in several rules.
type Pattern interface {
	// build wires the pattern between two NFA states.
	build(b *builder, from, to int)
	check() error
}

type builder struct {
	nfa  *automaton.DenseNFA[int, rune]
	next int
}

func newBuilder() *builder {
	return &builder{
		nfa: automaton.NewDenseNFA[int, rune](automaton.DefaultHasher[int](), automaton.OrderedComparer[rune]()),
	}
}

func (b *builder) newState() int {
	s := b.next
	b.next++
	b.nfa.AddState(s)
	return s
}

type literal []rune

func (l literal) build(b *builder, from, to int) {
	if len(l) == 0 {
		b.nfa.AddEpsilonTransition(from, to)
		return
	}
	cur := from
	for i, r := range l {
		next := to
		if i < len(l)-1 {
			next = b.newState()
		}
		b.nfa.AddTransition(cur, automaton.Point(r), next)
		cur = next
	}
}

func (l literal) check() error { return nil }

// Literal matches s exactly.
func Literal(s string) Pattern {
	return literal(s)
}

type class []automaton.Interval[rune]

func (c class) build(b *builder, from, to int) {
	for _, iv := range c {
		b.nfa.AddTransition(from, iv, to)
	}
}

func (c class) check() error { return nil }

// Range matches one rune between lo and hi, both included.
func Range(lo, hi rune) Pattern {
	return class{automaton.Closed(lo, hi)}
}

// Class matches one rune of any of the ranges.
func Class(ranges ...automaton.Interval[rune]) Pattern {
	return class(ranges)
}

// NotClass matches one rune outside every range.
func NotClass(ranges ...automaton.Interval[rune]) Pattern {
	set := automaton.NewIntervalSet(automaton.OrderedComparer[rune](), ranges...)
	out := set.Complement()
	out.Remove(automaton.LessThan[rune](0))
	out.Remove(automaton.GreaterThan[rune](unicode.MaxRune))
	var c class
	for iv := range out.Intervals() {
		c = append(c, iv)
	}
	return c
}

// Any matches one rune other than a line feed.
func Any() Pattern {
	return NotClass(automaton.Point('\n'))
}

type sequence []Pattern

func (s sequence) build(b *builder, from, to int) {
	if len(s) == 0 {
		b.nfa.AddEpsilonTransition(from, to)
		return
	}
	cur := from
	for i, p := range s {
		next := to
		if i < len(s)-1 {
			next = b.newState()
		}
		p.build(b, cur, next)
		cur = next
	}
}

func (s sequence) check() error {
	for _, p := range s {
		if err := p.check(); err != nil {
			return err
		}
	}
	return nil
}

// Seq matches the patterns one after the other.
func Seq(patterns ...Pattern) Pattern {
	if len(patterns) == 1 {
		return patterns[0]
	}
	return sequence(patterns)
}

type alternation []Pattern

func (a alternation) build(b *builder, from, to int) {
	for _, p := range a {
		p.build(b, from, to)
	}
}

func (a alternation) check() error {
	for _, p := range a {
		if err := p.check(); err != nil {
			return err
		}
	}
	return nil
}

// Alt matches any one of the patterns.
func Alt(patterns ...Pattern) Pattern {
	if len(patterns) == 1 {
		return patterns[0]
	}
	return alternation(patterns)
}

type star struct {
	p Pattern
}

func (s star) build(b *builder, from, to int) {
	loop := b.newState()
	b.nfa.AddEpsilonTransition(from, loop)
	b.nfa.AddEpsilonTransition(loop, to)
	s.p.build(b, loop, loop)
}

func (s star) check() error { return s.p.check() }

// Star matches p any number of times, zero included.
func Star(p Pattern) Pattern {
	return star{p}
}

// Plus matches p at least once.
func Plus(p Pattern) Pattern {
	return Seq(p, Star(p))
}

// Opt matches p or nothing.
func Opt(p Pattern) Pattern {
	return Alt(p, Literal(""))
}

// invalid stands for a pattern that cannot be built; Compile reports it.
type invalid struct {
	err error
}

func (invalid) build(*builder, int, int) {}

func (i invalid) check() error { return i.err }

// Repeat matches p between min and max times; a negative max means no upper
// limit. Counts above MaxRepeat make Compile fail with ErrInvalidPattern.
func Repeat(p Pattern, min, max int) Pattern {
	if min < 0 || min > MaxRepeat || max > MaxRepeat || (max >= 0 && max < min) {
		return invalid{fmt.Errorf("%w: repeat {%d,%d} out of range", ErrInvalidPattern, min, max)}
	}
	var parts sequence
	for range min {
		parts = append(parts, p)
	}
	switch {
	case max < 0:
		parts = append(parts, Star(p))
	default:
		for range max - min {
			parts = append(parts, Opt(p))
		}
	}
	return Seq(parts...)
}
