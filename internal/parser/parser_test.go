package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.llgram.org/llpc/internal/exc"
	"gopkg.llgram.org/llpc/internal/grammar"
	"gopkg.llgram.org/llpc/internal/lexer"
	"gopkg.llgram.org/llpc/internal/ll"
)

const exprGrammar = "S → T | (S+T)\nT → a"

func mustGrammar(t *testing.T, text string) *ll.Grammar {
	t.Helper()
	g, err := grammar.Parse("/test.g", text)
	require.NoError(t, err)
	return g
}

func lex(ctx context.Context, input string) ll.Iterator[*ll.Token] {
	return lexer.New(exc.NewReporter(nil)).Lex(ctx, "/input", input)
}

func TestParseTraces(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input string
		trace []int
	}{
		{input: "a", trace: []int{1, 3}},
		{input: "(a+a)", trace: []int{2, 1, 3, 3}},
		{input: "((a+a)+a)", trace: []int{2, 2, 1, 3, 3, 3}},
		{input: "(((a+a)+a)+a)", trace: []int{2, 2, 2, 1, 3, 3, 3, 3}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			p, err := New(mustGrammar(t, exprGrammar))
			require.NoError(t, err)
			res, err := p.Parse(ctx, "/input", lex(ctx, tc.input))
			require.NoError(t, err)
			require.Equal(t, tc.trace, res.Trace)
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	p, err := New(mustGrammar(t, exprGrammar))
	require.NoError(t, err)

	res, err := p.Parse(ctx, "/input", lex(ctx, "((a+)+a)"))
	require.Error(t, err)

	var syntax *exc.SyntaxError
	require.ErrorAs(t, err, &syntax)
	require.Equal(t, exc.CodeUnexpectedToken, syntax.Code())
	require.Equal(t, "a", syntax.Expected)
	require.Equal(t, ll.TokenTypeParenClose, syntax.Actual.Type)
	require.Equal(t, int32(5), syntax.Location().Column)

	// The trace emitted before the failure stays observable.
	require.Equal(t, []int{2, 2, 1, 3}, res.Trace)
}

func TestParseUnexpectedEOF(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	p, err := New(mustGrammar(t, exprGrammar))
	require.NoError(t, err)

	_, err = p.Parse(ctx, "/input", lex(ctx, "(a+a"))
	require.Error(t, err)

	var syntax *exc.SyntaxError
	require.ErrorAs(t, err, &syntax)
	require.Equal(t, exc.CodeUnexpectedEOF, syntax.Code())
	require.Equal(t, ")", syntax.Expected)
	require.Equal(t, ll.TokenTypeEOF, syntax.Actual.Type)
}

func TestRequireEOFPolicy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g := mustGrammar(t, exprGrammar)

	t.Run("full consumption (default)", func(t *testing.T) {
		t.Parallel()

		p, err := New(g)
		require.NoError(t, err)
		res, err := p.Parse(ctx, "/input", lex(ctx, "a)a"))
		require.Error(t, err)

		var syntax *exc.SyntaxError
		require.ErrorAs(t, err, &syntax)
		require.Equal(t, exc.CodeTrailingInput, syntax.Code())
		require.Equal(t, []int{1, 3}, res.Trace)
	})

	t.Run("prefix acceptance", func(t *testing.T) {
		t.Parallel()

		p, err := New(g, OptionWithRequireEOF(false))
		require.NoError(t, err)
		res, err := p.Parse(ctx, "/input", lex(ctx, "a)a"))
		require.NoError(t, err)
		require.Equal(t, []int{1, 3}, res.Trace)
	})
}

func TestParseDeterminism(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	p, err := New(mustGrammar(t, exprGrammar))
	require.NoError(t, err)

	for i := 0; i < 10; i = i + 1 {
		res, err := p.Parse(ctx, "/input", lex(ctx, "((a+a)+a)"))
		require.NoError(t, err)
		require.Equal(t, []int{2, 2, 1, 3, 3, 3}, res.Trace)

		res, err = p.Parse(ctx, "/input", lex(ctx, "((a+)+a)"))
		require.Error(t, err)
		require.Equal(t, []int{2, 2, 1, 3}, res.Trace)
	}
}

func TestSingleAlternativeSkipsLookahead(t *testing.T) {
	t.Parallel()

	// S has exactly one production, so dispatch selects it without looking
	// at the token; an unrelated token must fail in the matcher, not with a
	// no-alternative dispatch error.
	ctx := context.Background()
	p, err := New(mustGrammar(t, "S → ab"))
	require.NoError(t, err)

	_, err = p.Parse(ctx, "/input", lex(ctx, "b"))
	require.Error(t, err)

	var syntax *exc.SyntaxError
	require.ErrorAs(t, err, &syntax)
	require.Equal(t, exc.CodeUnexpectedToken, syntax.Code())
	require.Equal(t, "a", syntax.Expected)
}

func TestNoAlternativeMatches(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	p, err := New(mustGrammar(t, exprGrammar))
	require.NoError(t, err)

	res, err := p.Parse(ctx, "/input", lex(ctx, "+"))
	require.Error(t, err)

	var syntax *exc.SyntaxError
	require.ErrorAs(t, err, &syntax)
	require.Equal(t, exc.CodeNoAlternative, syntax.Code())
	require.Equal(t, "S", syntax.Expected)
	require.Equal(t, ll.TokenTypePlus, syntax.Actual.Type)
	require.Empty(t, res.Trace)
}

func TestUnknownNonterminal(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	p, err := New(mustGrammar(t, "S → X"))
	require.NoError(t, err)

	_, err = p.Parse(ctx, "/input", lex(ctx, "a"))
	require.Error(t, err)

	var syntax *exc.SyntaxError
	require.ErrorAs(t, err, &syntax)
	require.Equal(t, exc.CodeUnknownSymbol, syntax.Code())
	require.Equal(t, "X", syntax.Expected)
}

func TestDeclarationOrderTieBreak(t *testing.T) {
	t.Parallel()

	// Both alternatives of S start with "a", violating the disjointness
	// precondition. The observed behavior is that the first declared
	// alternative wins; this pins iteration order as an assumption, it is
	// not a documented guarantee.
	ctx := context.Background()
	p, err := New(mustGrammar(t, "S → aX | aY\nX → b\nY → c"))
	require.NoError(t, err)

	res, err := p.Parse(ctx, "/input", lex(ctx, "ac"))
	require.Error(t, err)

	var syntax *exc.SyntaxError
	require.ErrorAs(t, err, &syntax)
	require.Equal(t, "b", syntax.Expected)
	require.Equal(t, []int{1}, res.Trace)

	res, err = p.Parse(ctx, "/input", lex(ctx, "ab"))
	require.NoError(t, err)
	require.Equal(t, []int{1, 3}, res.Trace)
}

type eventSink struct {
	rules  []int
	enters []string
	exits  []string
	tokens []*ll.Token
}

func (s *eventSink) Rule(n int) {
	s.rules = append(s.rules, n)
}

func (s *eventSink) Enter(proc string, tok *ll.Token) {
	s.enters = append(s.enters, proc)
	s.tokens = append(s.tokens, tok)
}

func (s *eventSink) Exit(proc string, tok *ll.Token) {
	s.exits = append(s.exits, proc)
}

func TestTraceAndObservabilityEvents(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	sink := &eventSink{}
	p, err := New(mustGrammar(t, exprGrammar), OptionWithTraceSink(sink))
	require.NoError(t, err)

	res, err := p.Parse(ctx, "/input", lex(ctx, "((a+a)+a)"))
	require.NoError(t, err)
	require.Equal(t, []int{2, 2, 1, 3, 3, 3}, res.Trace)
	require.Equal(t, res.Trace, sink.rules)

	dispatches := 0
	for _, proc := range sink.enters {
		if proc == "S" || proc == "T" {
			dispatches = dispatches + 1
		}
	}
	// Every dispatch emits exactly one rule on success.
	require.Equal(t, len(res.Trace), dispatches)
	require.Equal(t, len(sink.enters), len(sink.exits))

	require.Equal(t, "S", sink.enters[0])
	require.Equal(t, ll.TokenTypeParenOpen, sink.tokens[0].Type)
}
