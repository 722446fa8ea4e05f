// © 2025 Llgram Labs
//
// SPDX-License-Identifier: Apache-2.0

package lexer

import (
	"context"
	"fmt"
	"unicode"

	"gopkg.llgram.org/llpc/internal/exc"
	"gopkg.llgram.org/llpc/internal/iter"
	"gopkg.llgram.org/llpc/internal/ll"
	"gopkg.llgram.org/llpc/internal/optional"
)

const (
	lexerLookahead = 1
)

// Lexer tokenizes the expression alphabet: parentheses, plus, and single
// lowercase letters. Space and tab are skipped, newlines become tokens so
// the parser can decide whether they matter.
type Lexer struct {
	reporter exc.Reporter
}

func New(reporter exc.Reporter) *Lexer {
	return &Lexer{reporter: reporter}
}

// Lex returns an incremental token iterator over the input. The iterator
// ends with a single EOF token; anything outside the alphabet is reported
// through the reporter and ends the stream early without an EOF token.
func (self *Lexer) Lex(ctx context.Context, uri string, input string) ll.Iterator[*ll.Token] {
	points := iter.NewLookahead(iter.NewRunes(input), lexerLookahead)
	return &tokens{
		uri:      uri,
		body:     points,
		reporter: self.reporter,
		line:     1,
		col:      0,
		offset:   -1,
	}
}

type tokens struct {
	uri      string
	body     ll.Lookahead[ll.CodePoint]
	reporter exc.Reporter
	line     int32
	col      int32
	offset   int64
	eof      bool
}

func (self *tokens) Next(ctx context.Context) optional.Optional[*ll.Token] {
	if self.eof {
		return optional.None[*ll.Token]()
	}
	for point := self.next(ctx); point.IsPresent(); point = self.next(ctx) {
		r := rune(point.Value())
		switch {
		case r == 0x0009 || r == 0x0020:
			continue
		case r == '\n':
			return self.newLineToken("\n")
		case r == '\r':
			if n := self.body.Lookahead(ctx, 1); n.IsPresent() && rune(n.Value()) == '\n' {
				_ = self.next(ctx)
				return self.newLineToken("\r\n")
			}
			return self.newLineToken("\r")
		case r == '+':
			return self.newToken(ll.TokenTypePlus, "+")
		case r == '(':
			return self.newToken(ll.TokenTypeParenOpen, "(")
		case r == ')':
			return self.newToken(ll.TokenTypeParenClose, ")")
		case unicode.IsLower(r):
			return self.newToken(ll.TokenTypeLetter, string(r))
		default:
			e := exc.New(self.loc(), exc.CodeUnexpectedCharacter, fmt.Sprintf("unexpected character %q", r))
			_ = self.reporter.Report(e)
			self.eof = true // the stream ends here, without an EOF token
			return optional.None[*ll.Token]()
		}
	}
	self.eof = true
	end := ll.Location{Line: self.line, Column: self.col + 1, Offset: self.offset + 1}
	return optional.Some(&ll.Token{
		Span: ll.Span{Start: end, End: end},
		Type: ll.TokenTypeEOF,
	})
}

func (self *tokens) Close(ctx context.Context) error {
	return self.body.Close(ctx)
}

func (self *tokens) next(ctx context.Context) optional.Optional[ll.CodePoint] {
	p := self.body.Next(ctx)
	if p.IsPresent() {
		self.offset = self.offset + 1
		self.col = self.col + 1
	}
	return p
}

func (self *tokens) newToken(t ll.TokenType, value string) optional.Optional[*ll.Token] {
	width := int64(len(value))
	start := ll.Location{Line: self.line, Column: self.col - int32(width) + 1, Offset: self.offset - width + 1}
	end := ll.Location{Line: self.line, Column: self.col + 1, Offset: self.offset + 1}
	return optional.Some(&ll.Token{
		Span:  ll.Span{Start: start, End: end},
		Type:  t,
		Value: value,
	})
}

func (self *tokens) newLineToken(value string) optional.Optional[*ll.Token] {
	tok := self.newToken(ll.TokenTypeNewline, value)
	self.line = self.line + 1
	self.col = 0
	return tok
}

func (self *tokens) loc() exc.Location {
	return exc.Location{
		Location: ll.Location{Line: self.line, Column: self.col, Offset: self.offset},
		URI:      self.uri,
	}
}
