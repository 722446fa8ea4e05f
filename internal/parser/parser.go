// © 2025 Llgram Labs
//
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"context"
	"log/slog"

	"gopkg.llgram.org/llpc/internal/exc"
	"gopkg.llgram.org/llpc/internal/ll"
)

type Option func(p *Parser) error

func OptionWithReporter(reporter exc.Reporter) Option {
	return func(p *Parser) error {
		p.reporter = reporter
		return nil
	}
}

func OptionWithTraceSink(sink ll.TraceSink) Option {
	return func(p *Parser) error {
		p.sink = sink
		return nil
	}
}

// OptionWithRequireEOF controls whether a parse accepts only when the whole
// input is consumed (the default) or any derivable prefix.
func OptionWithRequireEOF(require bool) Option {
	return func(p *Parser) error {
		p.requireEOF = require
		return nil
	}
}

// OptionWithVerbose attaches a logger that receives an enter and exit event
// for every dispatch and match invocation. Pure observability: it never
// changes control flow or results.
func OptionWithVerbose(log *slog.Logger) Option {
	return func(p *Parser) error {
		p.verbose = log
		return nil
	}
}

// Parser is a predictive parser over one grammar. It holds no per-parse
// state: the grammar and its first sets are read-only after New, so a single
// Parser may serve concurrent parse attempts over distinct token streams.
type Parser struct {
	grammar    *ll.Grammar
	reporter   exc.Reporter
	sink       ll.TraceSink
	verbose    *slog.Logger
	requireEOF bool
	firsts     map[int][]ll.Symbol
}

func New(g *ll.Grammar, opts ...Option) (*Parser, error) {
	p := &Parser{
		grammar:    g,
		requireEOF: true,
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	if p.reporter == nil {
		p.reporter = exc.NewReporter(nil)
	}
	if p.sink == nil {
		p.sink = NopSink()
	}
	p.firsts = leadingTerminals(g)
	return p, nil
}

// Result carries the primary observable artifact of a parse: the 1-based
// rule numbers in application order. On failure it holds whatever the parse
// emitted before the error; nothing is rolled back.
type Result struct {
	Trace []int
}

// Parse reads tokens until the start symbol's derivation completes. It
// primes the stream with one advance, dispatches the start symbol, and then
// requires the current token to be EOF unless configured for prefix
// acceptance. The first mismatch ends the parse with a *exc.SyntaxError.
func (p *Parser) Parse(ctx context.Context, uri string, tokens ll.Iterator[*ll.Token]) (*Result, error) {
	rec := &Recorder{}
	sinks := multiSink{rec, p.sink}
	if p.verbose != nil {
		sinks = append(sinks, NewSlogSink(p.verbose))
	}
	run := &parse{
		parser: p,
		uri:    uri,
		stream: NewTokenStream(ctx, tokens),
		sink:   sinks,
	}
	run.stream.Advance()
	if err := run.dispatch(p.grammar.Start()); err != nil {
		return &Result{Trace: rec.Rules()}, err
	}
	if p.requireEOF {
		if cur := run.stream.Current(); cur.Type != ll.TokenTypeEOF {
			return &Result{Trace: rec.Rules()}, run.fail(exc.CodeTrailingInput, "end of input", cur)
		}
	}
	return &Result{Trace: rec.Rules()}, nil
}

// parse is the state of one parse attempt.
type parse struct {
	parser *Parser
	uri    string
	stream *TokenStream
	sink   ll.TraceSink
}

// dispatch is the dispatch procedure shared by every nonterminal: a single
// procedure taking the nonterminal identity instead of one mutually
// recursive function per nonterminal, with the same call structure.
func (r *parse) dispatch(name string) error {
	r.sink.Enter(name, r.stream.Current())
	defer func() { r.sink.Exit(name, r.stream.Current()) }()

	prods := r.parser.grammar.ByHead(name)
	if len(prods) == 0 {
		return r.fail(exc.CodeUnknownSymbol, name, r.stream.Current())
	}
	selected, ok := r.selectAlternative(prods)
	if !ok {
		return r.fail(exc.CodeNoAlternative, name, r.stream.Current())
	}
	// Lookahead-resolved selections report their rule number before the
	// body, keeping the trace in top-down derivation order. A
	// single-alternative rule reports after its body derives, so a failure
	// inside the body leaves no entry for it.
	if len(prods) > 1 {
		r.sink.Rule(selected.Index)
	}
	for _, sym := range selected.Body {
		if sym.IsTerminal() {
			if err := r.match(sym); err != nil {
				return err
			}
			continue
		}
		if err := r.dispatch(sym.Name); err != nil {
			return err
		}
	}
	if len(prods) == 1 {
		r.sink.Rule(selected.Index)
	}
	return nil
}

// selectAlternative picks the production to expand. A single alternative is
// taken as-is without consulting the lookahead. Otherwise the first
// alternative in declaration order whose first set contains the current
// token wins; for grammars that violate the disjointness precondition this
// is iteration-order behavior, not a guarantee.
func (r *parse) selectAlternative(prods []ll.Production) (ll.Production, bool) {
	if len(prods) == 1 {
		return prods[0], true
	}
	cur := r.stream.Current()
	for _, prod := range prods {
		for _, terminal := range r.parser.firsts[prod.Index] {
			if terminal.Matches(cur) {
				return prod, true
			}
		}
	}
	return ll.Production{}, false
}

// match consumes exactly one token when it is an occurrence of the expected
// terminal and fails without advancing otherwise.
func (r *parse) match(expected ll.Symbol) error {
	proc := "match:" + expected.Name
	cur := r.stream.Current()
	r.sink.Enter(proc, cur)
	defer func() { r.sink.Exit(proc, r.stream.Current()) }()

	if !expected.Matches(cur) {
		code := exc.CodeUnexpectedToken
		if cur.Type == ll.TokenTypeEOF {
			code = exc.CodeUnexpectedEOF
		}
		return r.fail(code, expected.Name, cur)
	}
	r.stream.Advance()
	return nil
}

// fail records the syntax error with the reporter and returns it. Engine
// failures are always fatal: the error unwinds the full dispatch chain
// unmodified, regardless of the reporter's non-fatal set.
func (r *parse) fail(code string, expected string, actual *ll.Token) error {
	e := exc.NewSyntax(exc.Location{Location: actual.Span.Start, URI: r.uri}, code, expected, actual)
	_ = r.parser.reporter.Report(e)
	return e
}

// leadingTerminals computes, per production, the terminals that can begin
// its derivation: the literal leading terminal, resolved transitively
// through leading nonterminals. Computed once at construction since the
// grammar is immutable. The visiting set keeps this computation finite on
// left-recursive grammars; actually parsing one still recurses without
// bound.
func leadingTerminals(g *ll.Grammar) map[int][]ll.Symbol {
	memo := make(map[string][]ll.Symbol, g.Len())
	var ofHead func(name string, visiting map[string]bool) []ll.Symbol
	ofBody := func(body []ll.Symbol, visiting map[string]bool) []ll.Symbol {
		if len(body) == 0 {
			return nil
		}
		if lead := body[0]; lead.IsTerminal() {
			return []ll.Symbol{lead}
		}
		return ofHead(body[0].Name, visiting)
	}
	ofHead = func(name string, visiting map[string]bool) []ll.Symbol {
		if firsts, ok := memo[name]; ok {
			return firsts
		}
		if visiting[name] {
			return nil
		}
		visiting[name] = true
		var firsts []ll.Symbol
		for _, prod := range g.ByHead(name) {
			firsts = append(firsts, ofBody(prod.Body, visiting)...)
		}
		memo[name] = firsts
		return firsts
	}
	firsts := make(map[int][]ll.Symbol, g.Len())
	for _, prod := range g.Productions() {
		firsts[prod.Index] = ofBody(prod.Body, map[string]bool{})
	}
	return firsts
}
