package lexer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, expr string) Pattern {
	t.Helper()
	p, err := ParseRegExp(expr)
	require.NoError(t, err)
	return p
}

func calcRules(t *testing.T) []Rule {
	return []Rule{
		{Name: "if", Pattern: Literal("if")},
		{Name: "ident", Pattern: mustParse(t, `[a-zA-Z_][a-zA-Z0-9_]*`)},
		{Name: "number", Pattern: mustParse(t, `\d+`)},
		{Name: "space", Pattern: mustParse(t, `[ \t\n]+`), Skip: true},
		{Name: "plus", Pattern: Literal("+")},
	}
}

func TestCompile(t *testing.T) {
	ctx := context.Background()

	t.Run("NoRules", func(t *testing.T) {
		_, err := Compile(ctx, nil)
		assert.ErrorIs(t, err, ErrNoRules)
	})

	t.Run("MissingPattern", func(t *testing.T) {
		_, err := Compile(ctx, []Rule{{Name: "x"}})
		assert.ErrorIs(t, err, ErrInvalidPattern)
	})

	t.Run("Cancelled", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := Compile(cancelled, calcRules(t))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("SingleLiteral", func(t *testing.T) {
		table, err := Compile(ctx, []Rule{{Name: "ab", Pattern: Literal("ab")}})
		require.NoError(t, err)
		dfa := table.DFA()
		assert.Equal(t, 3, dfa.StateCount())

		initial, ok := dfa.InitialState()
		require.True(t, ok)
		_, ok = table.Token(initial)
		assert.False(t, ok)

		ranges := table.Ranges(initial)
		require.Len(t, ranges, 1)
		assert.Equal(t, 'a', ranges[0].Lo)
		assert.Equal(t, 'a', ranges[0].Hi)

		last := table.Ranges(ranges[0].To)
		require.Len(t, last, 1)
		name, ok := table.Token(last[0].To)
		assert.True(t, ok)
		assert.Equal(t, "ab", name)
		_, ok = table.Token(99)
		assert.False(t, ok)
	})
}

func TestMatch(t *testing.T) {
	table, err := Compile(context.Background(), calcRules(t))
	require.NoError(t, err)

	tests := []struct {
		input string
		kind  string
		n     int
		ok    bool
	}{
		{"if", "if", 2, true},
		{"if(", "if", 2, true},
		{"iffy+", "ident", 4, true},
		{"i", "ident", 1, true},
		{"42abc", "number", 2, true},
		{" \t\nx", "space", 3, true},
		{"++", "plus", 1, true},
		{"$", "", 0, false},
		{"", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			kind, n, ok := table.Match(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.n, n)
		})
	}
}

func TestTokenize(t *testing.T) {
	table, err := Compile(context.Background(), calcRules(t))
	require.NoError(t, err)

	tokens, err := table.Tokenize("if iffy 42+x")
	require.NoError(t, err)
	assert.Equal(t, []Token{
		{Kind: "if", Text: "if", Offset: 0},
		{Kind: "ident", Text: "iffy", Offset: 3},
		{Kind: "number", Text: "42", Offset: 8},
		{Kind: "plus", Text: "+", Offset: 10},
		{Kind: "ident", Text: "x", Offset: 11},
	}, tokens)

	tokens, err = table.Tokenize("if $")
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.ErrorContains(t, err, "offset 3")
	assert.Equal(t, []Token{{Kind: "if", Text: "if", Offset: 0}}, tokens)
}

func TestRulePriority(t *testing.T) {
	ctx := context.Background()
	ident := mustParse(t, `[a-z]+`)

	table, err := Compile(ctx, []Rule{
		{Name: "ident", Pattern: ident},
		{Name: "if", Pattern: Literal("if")},
	})
	require.NoError(t, err)
	kind, _, _ := table.Match("if")
	assert.Equal(t, "ident", kind)

	table, err = Compile(ctx, []Rule{
		{Name: "if", Pattern: Literal("if")},
		{Name: "ident", Pattern: ident},
	})
	require.NoError(t, err)
	kind, _, _ = table.Match("if")
	assert.Equal(t, "if", kind)
	kind, _, _ = table.Match("ifs")
	assert.Equal(t, "ident", kind)
}

func TestTokensKeptApart(t *testing.T) {
	// both rules accept exactly one rune with nothing after it, so only the
	// token tells their accepting states apart
	table, err := Compile(context.Background(), []Rule{
		{Name: "lower", Pattern: Range('a', 'z')},
		{Name: "upper", Pattern: Range('A', 'Z')},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, table.DFA().StateCount())

	kind, _, _ := table.Match("q")
	assert.Equal(t, "lower", kind)
	kind, _, _ = table.Match("Q")
	assert.Equal(t, "upper", kind)
}
