package lexer

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullMatch reports whether the pattern matches the whole input.
func fullMatch(t *testing.T, p Pattern, input string) bool {
	t.Helper()
	table, err := Compile(context.Background(), []Rule{{Name: "p", Pattern: p}})
	require.NoError(t, err)
	if input == "" {
		initial, _ := table.DFA().InitialState()
		_, ok := table.Token(initial)
		return ok
	}
	_, n, ok := table.Match(input)
	return ok && n == len(input)
}

func TestParseRegExp(t *testing.T) {
	tests := []struct {
		expr    string
		match   []string
		noMatch []string
	}{
		{`a|b`, []string{"a", "b"}, []string{"c", "ab"}},
		{`ab*`, []string{"a", "abbb"}, []string{"b", "aba"}},
		{`(ab)+`, []string{"ab", "abab"}, []string{"aba", "a"}},
		{`a?b`, []string{"b", "ab"}, []string{"aab"}},
		{`a{2}`, []string{"aa"}, []string{"a", "aaa"}},
		{`a{2,}`, []string{"aa", "aaaaa"}, []string{"a"}},
		{`a{1,2}`, []string{"a", "aa"}, []string{"aaa"}},
		{`.`, []string{"x", "é"}, []string{"\n", "xy"}},
		{`"a+b"`, []string{"a+b"}, []string{"aab"}},
		{`[^0-9]`, []string{"x", "-"}, []string{"5"}},
		{`[a-c]x`, []string{"ax", "cx"}, []string{"dx"}},
		{`\d+`, []string{"0", "123"}, []string{"a"}},
		{`\w+`, []string{"ab_9"}, []string{"a-b"}},
		{`\s`, []string{" ", "\t"}, []string{"x"}},
		{`[\d.]+`, []string{"3.14"}, []string{"3,14"}},
		{`[a-]`, []string{"a", "-"}, []string{"b"}},
		{`\u0041`, []string{"A"}, []string{"a"}},
		{`\.`, []string{"."}, []string{"x"}},
		{`日本`, []string{"日本"}, []string{"日"}},
		{`a()b`, []string{"ab"}, []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			p, err := ParseRegExp(tt.expr)
			require.NoError(t, err)
			for _, s := range tt.match {
				assert.True(t, fullMatch(t, p, s), "%q should match %q", tt.expr, s)
			}
			for _, s := range tt.noMatch {
				assert.False(t, fullMatch(t, p, s), "%q should not match %q", tt.expr, s)
			}
		})
	}
}

func TestParseRegExpErrors(t *testing.T) {
	for _, expr := range []string{
		`(a`,
		`[a`,
		`[]`,
		`a)`,
		`*a`,
		`a{`,
		`a{2,1}`,
		`a{2`,
		`a{100000000}`,
		`a{1,1001}`,
		`a{99999999999999999999}`,
		`[z-a]`,
		`\u00G1`,
		`"abc`,
	} {
		t.Run(expr, func(t *testing.T) {
			_, err := ParseRegExp(expr)
			assert.ErrorIs(t, err, ErrInvalidPattern)
		})
	}
}

func TestPatternCombinators(t *testing.T) {
	digits := Plus(Range('0', '9'))
	number := Seq(digits, Opt(Seq(Literal("."), digits)))
	assert.True(t, fullMatch(t, number, "42"))
	assert.True(t, fullMatch(t, number, "4.2"))
	assert.False(t, fullMatch(t, number, "4."))

	assert.True(t, fullMatch(t, Repeat(Literal("ab"), 0, 0), ""))
	assert.True(t, fullMatch(t, Repeat(Literal("ab"), 1, -1), "ababab"))
	assert.True(t, fullMatch(t, Alt(Literal("x"), Star(Literal("y"))), "yyy"))
	assert.False(t, fullMatch(t, Any(), "\n"))

	_, err := ParseRegExp(fmt.Sprintf("a{%d}", MaxRepeat))
	assert.NoError(t, err)
	for _, p := range []Pattern{
		Repeat(Literal("a"), MaxRepeat+1, -1),
		Seq(Literal("x"), Repeat(Literal("a"), 0, MaxRepeat+1)),
		Star(Repeat(Literal("a"), 3, 2)),
	} {
		_, err = Compile(context.Background(), []Rule{{Name: "big", Pattern: p}})
		assert.ErrorIs(t, err, ErrInvalidPattern)
	}
}
