// Package lexer builds longest-match token tables on top of the automaton
// package: rules are wired into one NFA, determinized, and minimized with the
// accepting states of different tokens kept apart.
package lexer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode"
	"unicode/utf8"

	"github.com/geange/automaton/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/geange/automaton/v2/lexer")

var (
	// ErrNoRules is returned by Compile when no rule is given.
	ErrNoRules = errors.New("lexer: no rules")

	// ErrNoMatch is returned by Tokenize when no rule matches at some offset.
	ErrNoMatch = errors.New("lexer: no rule matches")
)

// Rule names a token and the pattern it matches. When several rules match the
// same longest text, the one declared first wins. Tokens of skipped rules are
// matched but left out of Tokenize results.
type Rule struct {
	Name    string
	Pattern Pattern
	Skip    bool
}

// Token is one piece of tokenized input.
type Token struct {
	Kind   string
	Text   string
	Offset int
}

// Table is a compiled lexer: a minimal DFA over runes whose accepting states
// carry the token they recognize.
type Table struct {
	rules  []Rule
	dfa    *automaton.DenseDFA[int, rune]
	tokens []int
}

// tokenCombiner numbers the classes of the minimizer and records for each the
// rule whose accepting NFA state it contains, lowest declaration index first.
type tokenCombiner struct {
	ids     *automaton.IndexCombiner[automaton.StateSet[int]]
	accepts map[int]int
	tokens  []int
}

func (c *tokenCombiner) Combine(states automaton.StateSet[automaton.StateSet[int]]) int {
	id := c.ids.Combine(states)
	if id < len(c.tokens) {
		return id
	}
	best := -1
	for dfaState := range states.All() {
		if rule := c.ruleOf(dfaState); rule >= 0 && (best < 0 || rule < best) {
			best = rule
		}
	}
	c.tokens = append(c.tokens, best)
	return id
}

func (c *tokenCombiner) ResultHasher() automaton.Hasher[int] {
	return automaton.DefaultHasher[int]()
}

func (c *tokenCombiner) ruleOf(nfaStates automaton.StateSet[int]) int {
	best := -1
	for s := range nfaStates.All() {
		if rule, ok := c.accepts[s]; ok && (best < 0 || rule < best) {
			best = rule
		}
	}
	return best
}

// Compile builds the table for rules.
func Compile(ctx context.Context, rules []Rule) (_ *Table, err error) {
	ctx, span := tracer.Start(ctx, "lexer.Compile", trace.WithAttributes(
		attribute.Int("lexer.rules", len(rules)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if len(rules) == 0 {
		return nil, ErrNoRules
	}

	b := newBuilder()
	accepts := make(map[int]int, len(rules))
	for i, rule := range rules {
		if rule.Pattern == nil {
			return nil, fmt.Errorf("%w: rule %q has no pattern", ErrInvalidPattern, rule.Name)
		}
		if err := rule.Pattern.check(); err != nil {
			return nil, fmt.Errorf("rule %q: %w", rule.Name, err)
		}
		start, end := b.newState(), b.newState()
		b.nfa.AddInitial(start)
		b.nfa.AddAccepting(end)
		rule.Pattern.build(b, start, end)
		accepts[end] = i
	}
	span.SetAttributes(attribute.Int("lexer.nfa_states", b.nfa.StateCount()))

	dfa, err := automaton.DeterminizeDense(ctx, b.nfa, automaton.SetCombiner[int]())
	if err != nil {
		return nil, fmt.Errorf("determinize: %w", err)
	}

	combiner := &tokenCombiner{
		ids:     automaton.NewIndexCombiner[automaton.StateSet[int]](),
		accepts: accepts,
	}
	var accepting []automaton.StateSet[int]
	for s := range dfa.AcceptingStates() {
		accepting = append(accepting, s)
	}
	var distinct []automaton.Pair[automaton.StateSet[int]]
	for i := range accepting {
		for j := i + 1; j < len(accepting); j++ {
			if combiner.ruleOf(accepting[i]) != combiner.ruleOf(accepting[j]) {
				distinct = append(distinct, automaton.Pair[automaton.StateSet[int]]{A: accepting[i], B: accepting[j]})
			}
		}
	}

	minimal, err := automaton.MinimizeDense[automaton.StateSet[int], int, rune](ctx, dfa, combiner, automaton.WithDistinctPairs(distinct...))
	if err != nil {
		return nil, fmt.Errorf("minimize: %w", err)
	}

	span.SetAttributes(
		attribute.Int("lexer.dfa_states", dfa.StateCount()),
		attribute.Int("lexer.table_states", minimal.StateCount()),
	)
	slog.Default().Debug("compiled lexer table",
		slog.Int("rules", len(rules)),
		slog.Int("nfa_states", b.nfa.StateCount()),
		slog.Int("dfa_states", dfa.StateCount()),
		slog.Int("table_states", minimal.StateCount()),
	)

	return &Table{
		rules:  rules,
		dfa:    minimal,
		tokens: combiner.tokens,
	}, nil
}

// DFA returns the underlying automaton. States are numbered from 0.
func (t *Table) DFA() *automaton.DenseDFA[int, rune] {
	return t.dfa
}

// Token returns the name of the token recognized in state.
func (t *Table) Token(state int) (string, bool) {
	if state < 0 || state >= len(t.tokens) || t.tokens[state] < 0 {
		return "", false
	}
	return t.rules[t.tokens[state]].Name, true
}

// Match returns the token matching the longest prefix of input and the byte
// length of that prefix.
func (t *Table) Match(input string) (string, int, bool) {
	rule, n := t.match(input)
	if rule < 0 {
		return "", 0, false
	}
	return t.rules[rule].Name, n, true
}

func (t *Table) match(input string) (int, int) {
	state, ok := t.dfa.InitialState()
	if !ok {
		return -1, 0
	}
	rule, size := t.tokens[state], 0
	for i := 0; i < len(input); {
		r, w := utf8.DecodeRuneInString(input[i:])
		if state, ok = t.dfa.Next(state, r); !ok {
			break
		}
		i += w
		if t.tokens[state] >= 0 {
			rule, size = t.tokens[state], i
		}
	}
	if size == 0 {
		// an empty match never makes progress
		return -1, 0
	}
	return rule, size
}

// Tokenize splits input into tokens, leaving out the ones of skipped rules.
func (t *Table) Tokenize(input string) ([]Token, error) {
	var out []Token
	for offset := 0; offset < len(input); {
		rule, n := t.match(input[offset:])
		if rule < 0 {
			return out, fmt.Errorf("%w at offset %d", ErrNoMatch, offset)
		}
		if !t.rules[rule].Skip {
			out = append(out, Token{Kind: t.rules[rule].Name, Text: input[offset : offset+n], Offset: offset})
		}
		offset += n
	}
	return out, nil
}

// StateRange is a transition of the table on a closed range of runes.
type StateRange struct {
	From, To int
	Lo, Hi   rune
}

// Ranges lists the transitions leaving state as closed rune ranges, ready for
// code generation.
func (t *Table) Ranges(state int) []StateRange {
	succ := func(r rune) rune { return r + 1 }
	pred := func(r rune) rune { return r - 1 }
	var out []StateRange
	for _, tr := range t.dfa.Ranges(state, succ, pred, 0, unicode.MaxRune) {
		out = append(out, StateRange{From: tr.From, To: tr.To, Lo: tr.On[0], Hi: tr.On[1]})
	}
	return out
}
