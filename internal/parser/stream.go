package parser

import (
	"context"

	"gopkg.llgram.org/llpc/internal/iter"
	"gopkg.llgram.org/llpc/internal/ll"
)

// TokenStream owns the cursor of one parse attempt: the current lookahead
// token plus the not-yet-lexed remainder behind the iterator. It advances
// monotonically, is never rewound, and is never shared between parses.
type TokenStream struct {
	ctx    context.Context
	tokens ll.Iterator[*ll.Token]
	cur    *ll.Token
}

// NewTokenStream wraps a lexed token iterator. Newline tokens are filtered
// out here; the grammars this engine targets never reference them.
func NewTokenStream(ctx context.Context, tokens ll.Iterator[*ll.Token]) *TokenStream {
	filtered := iter.NewIteratorFilter(tokens, ll.Filter[*ll.Token](iter.FilterFunc[*ll.Token](func(ctx context.Context, t *ll.Token) bool {
		return t.Type != ll.TokenTypeNewline
	})))
	return &TokenStream{
		ctx:    ctx,
		tokens: filtered,
		cur:    &ll.Token{Type: ll.TokenTypeInvalid},
	}
}

// Current returns the current token without consuming it. Before the first
// Advance this is the Invalid sentinel.
func (s *TokenStream) Current() *ll.Token {
	return s.cur
}

// Advance consumes the next token and makes it current. Once the end of
// input is reached it keeps returning the EOF token.
func (s *TokenStream) Advance() *ll.Token {
	if s.cur.Type == ll.TokenTypeEOF {
		return s.cur
	}
	s.cur = s.tokens.Next(s.ctx).OrElse(s.endToken())
	return s.cur
}

// endToken covers iterators that end without an EOF token, which happens
// when the lexer aborts on a character outside the alphabet.
func (s *TokenStream) endToken() *ll.Token {
	end := s.cur.Span.End
	return &ll.Token{Span: ll.Span{Start: end, End: end}, Type: ll.TokenTypeEOF}
}
