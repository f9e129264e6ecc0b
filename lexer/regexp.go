package lexer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/geange/automaton/v2"
)

// ErrInvalidPattern is returned for regular expressions that do not parse.
var ErrInvalidPattern = errors.New("lexer: invalid pattern")

// MaxRepeat bounds the counts of {n,m} repeats.
const MaxRepeat = 1000

// RegExp parses the regular expression syntax of lexer rules:
//
//	union     = concat ( '|' union )?
//	concat    = repeat concat?
//	repeat    = simple ( '?' | '*' | '+' | '{' n ( ',' m? )? '}' )*
//	simple    = '.' | '"' chars '"' | '(' union? ')' | '[' '^'? classes ']' | char
//	classes   = ( char ( '-' char )? )+
//
// A backslash escapes the next rune; \n, \r, \t, \d, \w and \s have their
// usual meaning.
type RegExp struct {
	originalString []rune
	pos            int
}

// ParseRegExp turns s into a Pattern.
func ParseRegExp(s string) (Pattern, error) {
	r := &RegExp{originalString: []rune(s)}
	if len(r.originalString) == 0 {
		return Literal(""), nil
	}
	e, err := r.parseUnionExp()
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidPattern, s, err)
	}
	if r.more() {
		return nil, fmt.Errorf("%w %q: end-of-string expected at position %d", ErrInvalidPattern, s, r.pos)
	}
	return e, nil
}

func (r *RegExp) more() bool {
	return r.pos < len(r.originalString)
}

func (r *RegExp) peek(s string) bool {
	return r.more() && strings.ContainsRune(s, r.originalString[r.pos])
}

func (r *RegExp) match(c rune) bool {
	if r.pos >= len(r.originalString) {
		return false
	}
	if r.originalString[r.pos] == c {
		r.pos++
		return true
	}
	return false
}

func (r *RegExp) next() (rune, error) {
	if !r.more() {
		return 0, io.ErrUnexpectedEOF
	}
	ch := r.originalString[r.pos]
	r.pos++
	return ch, nil
}

func (r *RegExp) parseUnionExp() (Pattern, error) {
	e, err := r.parseConcatExp()
	if err != nil {
		return nil, err
	}
	if r.match('|') {
		e2, err := r.parseUnionExp()
		if err != nil {
			return nil, err
		}
		if alt, ok := e2.(alternation); ok {
			return append(alternation{e}, alt...), nil
		}
		e = Alt(e, e2)
	}
	return e, nil
}

func (r *RegExp) parseConcatExp() (Pattern, error) {
	var parts sequence
	for r.more() && !r.peek(")|") {
		e, err := r.parseRepeatExp()
		if err != nil {
			return nil, err
		}
		parts = append(parts, e)
	}
	if len(parts) == 0 {
		return Literal(""), nil
	}
	return Seq(parts...), nil
}

func (r *RegExp) parseInt() (int, error) {
	start := r.pos
	for r.peek("0123456789") {
		r.pos++
	}
	if start == r.pos {
		return 0, fmt.Errorf("integer expected at position %d", r.pos)
	}
	n, err := strconv.Atoi(string(r.originalString[start:r.pos]))
	if err != nil || n > MaxRepeat {
		return 0, fmt.Errorf("repeat count at position %d exceeds %d", start, MaxRepeat)
	}
	return n, nil
}

func (r *RegExp) parseRepeatExp() (Pattern, error) {
	e, err := r.parseSimpleExp()
	if err != nil {
		return nil, err
	}

	for r.peek("?*+{") {
		if r.match('?') {
			e = Opt(e)
		} else if r.match('*') {
			e = Star(e)
		} else if r.match('+') {
			e = Plus(e)
		} else if r.match('{') {
			n, err := r.parseInt()
			if err != nil {
				return nil, err
			}
			m := n
			if r.match(',') {
				m = -1
				if r.peek("0123456789") {
					if m, err = r.parseInt(); err != nil {
						return nil, err
					}
					if m < n {
						return nil, fmt.Errorf("invalid repeat range {%d,%d} at position %d", n, m, r.pos)
					}
				}
			}
			if !r.match('}') {
				return nil, fmt.Errorf("expected '}' at position %d", r.pos)
			}
			e = Repeat(e, n, m)
		}
	}

	return e, nil
}

func (r *RegExp) parseCharClassExp() (Pattern, error) {
	negate := r.match('^')
	var ranges []automaton.Interval[rune]
	for r.more() && !r.peek("]") {
		cls, err := r.parseCharClass()
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, cls...)
	}
	if !r.match(']') {
		return nil, fmt.Errorf("expected ']' at position %d", r.pos)
	}
	if len(ranges) == 0 {
		return nil, fmt.Errorf("empty character class at position %d", r.pos)
	}
	if negate {
		return NotClass(ranges...), nil
	}
	return Class(ranges...), nil
}

func (r *RegExp) parseCharClass() ([]automaton.Interval[rune], error) {
	if r.peek("\\") {
		if cls, ok, err := r.parseEscapeClass(); err != nil || ok {
			return cls, err
		}
	}
	c, err := r.parseCharExp()
	if err != nil {
		return nil, err
	}
	if r.match('-') {
		if r.peek("]") {
			// trailing dash is a literal
			return []automaton.Interval[rune]{automaton.Point(c), automaton.Point('-')}, nil
		}
		e2, err := r.parseCharExp()
		if err != nil {
			return nil, err
		}
		if e2 < c {
			return nil, fmt.Errorf("invalid character range %q-%q at position %d", c, e2, r.pos)
		}
		return []automaton.Interval[rune]{automaton.Closed(c, e2)}, nil
	}
	return []automaton.Interval[rune]{automaton.Point(c)}, nil
}

var (
	digitClass = []automaton.Interval[rune]{automaton.Closed('0', '9')}
	wordClass  = []automaton.Interval[rune]{
		automaton.Closed('0', '9'),
		automaton.Closed('A', 'Z'),
		automaton.Point('_'),
		automaton.Closed('a', 'z'),
	}
	spaceClass = []automaton.Interval[rune]{
		automaton.Closed('\t', '\r'),
		automaton.Point(' '),
	}
)

// parseEscapeClass handles \d, \w and \s; ok is false for any other escape,
// which is then left unconsumed.
func (r *RegExp) parseEscapeClass() ([]automaton.Interval[rune], bool, error) {
	if r.pos+1 >= len(r.originalString) {
		return nil, false, nil
	}
	var cls []automaton.Interval[rune]
	switch r.originalString[r.pos+1] {
	case 'd':
		cls = digitClass
	case 'w':
		cls = wordClass
	case 's':
		cls = spaceClass
	default:
		return nil, false, nil
	}
	r.pos += 2
	return cls, true, nil
}

func (r *RegExp) parseSimpleExp() (Pattern, error) {
	if r.match('.') {
		return Any(), nil
	} else if r.match('"') {
		start := r.pos
		for r.more() && !r.peek("\"") {
			r.pos++
		}
		if !r.match('"') {
			return nil, fmt.Errorf("expected '\"' at position %d", r.pos)
		}
		return Literal(string(r.originalString[start : r.pos-1])), nil
	} else if r.match('(') {
		if r.match(')') {
			return Literal(""), nil
		}
		e, err := r.parseUnionExp()
		if err != nil {
			return nil, err
		}
		if !r.match(')') {
			return nil, fmt.Errorf("expected ')' at position %d", r.pos)
		}
		return e, nil
	} else if r.match('[') {
		return r.parseCharClassExp()
	} else if r.peek("*+?{") {
		return nil, fmt.Errorf("missing expression before %q at position %d", r.originalString[r.pos], r.pos)
	}

	if r.peek("\\") {
		if cls, ok, err := r.parseEscapeClass(); err != nil || ok {
			return Class(cls...), err
		}
	}
	c, err := r.parseCharExp()
	if err != nil {
		return nil, err
	}
	return Literal(string(c)), nil
}

func (r *RegExp) parseCharExp() (rune, error) {
	if !r.match('\\') {
		return r.next()
	}
	c, err := r.next()
	if err != nil {
		return 0, err
	}
	switch c {
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'u':
		start := r.pos
		for range 4 {
			if _, err := r.next(); err != nil {
				return 0, err
			}
		}
		v, err := strconv.ParseUint(string(r.originalString[start:r.pos]), 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid unicode escape at position %d: %w", start, err)
		}
		return rune(v), nil
	default:
		return c, nil
	}
}
