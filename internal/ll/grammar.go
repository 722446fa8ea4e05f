package ll

import (
	"fmt"
	"strings"
)

type SymbolKind uint8

const (
	SymbolKindTerminal SymbolKind = iota + 1
	SymbolKindNonTerminal
)

// Symbol is one element of a production body: either a terminal matched
// directly against input tokens, or a nonterminal that expands through its
// own productions. Symbols are immutable values; identity is the name and
// equality is structural.
type Symbol struct {
	Kind SymbolKind
	Name string
}

func Terminal(name string) Symbol {
	return Symbol{Kind: SymbolKindTerminal, Name: name}
}

func NonTerminal(name string) Symbol {
	return Symbol{Kind: SymbolKindNonTerminal, Name: name}
}

func (s Symbol) IsTerminal() bool {
	return s.Kind == SymbolKindTerminal
}

func (s Symbol) String() string {
	return s.Name
}

// punctTokenTypes maps punctuation terminal names to their token
// discriminant. Letter terminals are not listed: every lowercase letter
// lexes to TokenTypeLetter and carries its lexeme, so those compare on the
// lexeme as well.
var punctTokenTypes = map[string]TokenType{
	"+": TokenTypePlus,
	"(": TokenTypeParenOpen,
	")": TokenTypeParenClose,
}

// Matches reports whether the given token is an occurrence of this terminal.
// Always false for nonterminals.
func (s Symbol) Matches(tok *Token) bool {
	if s.Kind != SymbolKindTerminal || tok == nil {
		return false
	}
	if tt, ok := punctTokenTypes[s.Name]; ok {
		return tok.Type == tt
	}
	return tok.Type == TokenTypeLetter && tok.Value == s.Name
}

// Production is a single grammar rule. Index is the 1-based position of the
// rule in overall declaration order; it is used only for trace reporting,
// never for parsing decisions.
type Production struct {
	Index int
	Head  string
	Body  []Symbol
}

func (p Production) String() string {
	parts := make([]string, 0, len(p.Body))
	for _, sym := range p.Body {
		parts = append(parts, sym.Name)
	}
	return fmt.Sprintf("%s → %s", p.Head, strings.Join(parts, " "))
}

// Grammar is an ordered, immutable collection of productions. It is never
// mutated after construction and may be shared across concurrent parse
// attempts without synchronization.
type Grammar struct {
	start       string
	productions []Production
	byHead      map[string][]Production
}

// NewGrammar numbers the given productions 1..N in declaration order and
// groups them by head. The disjointness of alternative first sets is a
// precondition of predictive parsing, not checked here; violating it gives
// declaration-order selection, not an error.
func NewGrammar(start string, productions []Production) (*Grammar, error) {
	if len(productions) == 0 {
		return nil, fmt.Errorf("grammar has no productions")
	}
	if start == "" {
		return nil, fmt.Errorf("grammar has no start symbol")
	}
	g := &Grammar{
		start:       start,
		productions: make([]Production, len(productions)),
		byHead:      make(map[string][]Production, len(productions)),
	}
	for i, p := range productions {
		p.Index = i + 1
		g.productions[i] = p
		g.byHead[p.Head] = append(g.byHead[p.Head], p)
	}
	if len(g.byHead[start]) == 0 {
		return nil, fmt.Errorf("start symbol %s has no productions", start)
	}
	return g, nil
}

func (g *Grammar) Start() string {
	return g.start
}

func (g *Grammar) Productions() []Production {
	return g.productions
}

// ByHead returns all productions with the given head, preserving declaration
// order.
func (g *Grammar) ByHead(name string) []Production {
	return g.byHead[name]
}

// Rule returns the kth production overall, 1-based.
func (g *Grammar) Rule(k int) (Production, bool) {
	if k < 1 || k > len(g.productions) {
		return Production{}, false
	}
	return g.productions[k-1], true
}

func (g *Grammar) Len() int {
	return len(g.productions)
}
