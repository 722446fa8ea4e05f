// © 2025 Llgram Labs
//
// SPDX-License-Identifier: Apache-2.0

package grammar

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.llgram.org/llpc/internal/exc"
	"gopkg.llgram.org/llpc/internal/ll"
)

// Parse parses an arrow-notation grammar description into a Grammar:
//
//	S → T | (S+T)
//	T → a
//
// One rule per line (or semicolon-separated), "→" or "->" between head and
// body, "|" between alternatives. Heads are single uppercase letters. Inside
// a body every uppercase letter is a nonterminal and every other non-space
// rune is a terminal; alternatives become consecutively numbered productions
// in declaration order. The start symbol is the head of the first rule.
func Parse(uri string, text string) (*ll.Grammar, error) {
	var productions []ll.Production
	var start string

	for lineNo, line := range strings.Split(text, "\n") {
		for _, rule := range strings.Split(line, ";") {
			rule = strings.TrimSpace(rule)
			if rule == "" {
				continue
			}
			prods, err := parseRule(uri, int32(lineNo+1), rule)
			if err != nil {
				return nil, err
			}
			if start == "" {
				start = prods[0].Head
			}
			productions = append(productions, prods...)
		}
	}

	g, err := ll.NewGrammar(start, productions)
	if err != nil {
		return nil, exc.Wrap(loc(uri, 1), exc.CodeGrammarParseError, err)
	}
	return g, nil
}

// WithStart rebuilds a grammar around a different start symbol. Rule
// numbering is unchanged since declaration order is unchanged.
func WithStart(g *ll.Grammar, start string) (*ll.Grammar, error) {
	return ll.NewGrammar(start, g.Productions())
}

func parseRule(uri string, line int32, rule string) ([]ll.Production, error) {
	head, body, ok := splitArrow(rule)
	if !ok {
		return nil, exc.New(loc(uri, line), exc.CodeGrammarParseError, fmt.Sprintf("missing arrow in rule %q", rule))
	}
	head = strings.TrimSpace(head)
	r, size := utf8.DecodeRuneInString(head)
	if size != len(head) || !unicode.IsUpper(r) {
		return nil, exc.New(loc(uri, line), exc.CodeGrammarParseError, fmt.Sprintf("rule head %q is not a single uppercase letter", head))
	}

	var productions []ll.Production
	for _, alternative := range strings.Split(body, "|") {
		symbols, err := parseAlternative(uri, line, alternative)
		if err != nil {
			return nil, err
		}
		productions = append(productions, ll.Production{Head: head, Body: symbols})
	}
	return productions, nil
}

func parseAlternative(uri string, line int32, alternative string) ([]ll.Symbol, error) {
	var symbols []ll.Symbol
	for _, r := range alternative {
		if r == ' ' || r == '\t' {
			continue
		}
		sym, ok := symbolOf(string(r))
		if !ok {
			return nil, exc.New(loc(uri, line), exc.CodeGrammarParseError, fmt.Sprintf("symbol %q is outside the token alphabet", r))
		}
		symbols = append(symbols, sym)
	}
	if len(symbols) == 0 {
		return nil, exc.New(loc(uri, line), exc.CodeGrammarParseError, "empty alternative (the engine does not support nullable productions)")
	}
	return symbols, nil
}

func splitArrow(rule string) (string, string, bool) {
	if head, body, ok := strings.Cut(rule, "→"); ok {
		return head, body, true
	}
	return strings.Cut(rule, "->")
}

// symbolOf classifies a symbol name: an uppercase first letter means
// nonterminal, anything else is a terminal and must be a single rune the
// lexer can produce.
func symbolOf(name string) (ll.Symbol, bool) {
	r, size := utf8.DecodeRuneInString(name)
	if unicode.IsUpper(r) {
		return ll.NonTerminal(name), true
	}
	if size != len(name) {
		return ll.Symbol{}, false
	}
	if r == '+' || r == '(' || r == ')' || unicode.IsLower(r) {
		return ll.Terminal(name), true
	}
	return ll.Symbol{}, false
}

func loc(uri string, line int32) exc.Location {
	return exc.Location{
		Location: ll.Location{Line: line, Column: 1},
		URI:      uri,
	}
}
