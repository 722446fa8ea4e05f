package grammar

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"gopkg.llgram.org/llpc/internal/exc"
	"gopkg.llgram.org/llpc/internal/ll"
)

type grammarFile struct {
	Start string `yaml:"start"`
	Rules []struct {
		Head         string     `yaml:"head"`
		Alternatives [][]string `yaml:"alternatives"`
	} `yaml:"rules"`
}

// ParseYAML loads a grammar from its YAML file form:
//
//	start: S
//	rules:
//	  - head: S
//	    alternatives:
//	      - [T]
//	      - ["(", S, "+", T]
//	  - head: T
//	    alternatives:
//	      - [a]
//
// Unlike the arrow notation, symbol names may be longer than one rune; a
// name starting with an uppercase letter is a nonterminal. Start defaults to
// the head of the first rule.
func ParseYAML(uri string, data []byte) (*ll.Grammar, error) {
	var gf grammarFile
	if err := yaml.Unmarshal(data, &gf); err != nil {
		return nil, exc.Wrap(loc(uri, 1), exc.CodeGrammarParseError, err)
	}

	var productions []ll.Production
	for _, rule := range gf.Rules {
		head, ok := symbolOf(rule.Head)
		if !ok || head.IsTerminal() {
			return nil, exc.New(loc(uri, 1), exc.CodeGrammarParseError, fmt.Sprintf("rule head %q is not a nonterminal name", rule.Head))
		}
		for _, alternative := range rule.Alternatives {
			if len(alternative) == 0 {
				return nil, exc.New(loc(uri, 1), exc.CodeGrammarParseError, "empty alternative (the engine does not support nullable productions)")
			}
			symbols := make([]ll.Symbol, 0, len(alternative))
			for _, name := range alternative {
				sym, ok := symbolOf(name)
				if !ok {
					return nil, exc.New(loc(uri, 1), exc.CodeGrammarParseError, fmt.Sprintf("symbol %q is outside the token alphabet", name))
				}
				symbols = append(symbols, sym)
			}
			productions = append(productions, ll.Production{Head: rule.Head, Body: symbols})
		}
	}

	start := gf.Start
	if start == "" && len(productions) > 0 {
		start = productions[0].Head
	}
	g, err := ll.NewGrammar(start, productions)
	if err != nil {
		return nil, exc.Wrap(loc(uri, 1), exc.CodeGrammarParseError, err)
	}
	return g, nil
}
