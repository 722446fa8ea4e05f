package ll

import (
	"context"
	"fmt"

	"gopkg.llgram.org/llpc/internal/optional"
)

type Closer interface {
	Close(ctx context.Context) error
}

type CodePoint uint32

type Iterator[T any] interface {
	Next(ctx context.Context) optional.Optional[T]
	Closer
}

type Lookahead[T any] interface {
	Iterator[T]
	Lookahead(ctx context.Context, n uint8) optional.Optional[T]
}

type Filter[T any] interface {
	Keep(ctx context.Context, v T) bool
}

// Location is a position within an input, one-based line and column.
type Location struct {
	Line   int32
	Column int32
	Offset int64
}

type Span struct {
	Start Location
	End   Location
}

type Token struct {
	Span  Span
	Type  TokenType
	Value string
}

func (t *Token) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.Value == "" {
		return t.Type.String()
	}
	return fmt.Sprintf("%s %q", t.Type, t.Value)
}

type TokenType uint16

const (
	// TokenTypeInvalid is the pre-read sentinel: the current token of a
	// stream that has not been advanced yet.
	TokenTypeInvalid    TokenType = 0
	TokenTypeLetter     TokenType = 1
	TokenTypePlus       TokenType = 2
	TokenTypeParenOpen  TokenType = 3
	TokenTypeParenClose TokenType = 4
	TokenTypeNewline    TokenType = 5
	TokenTypeEOF        TokenType = 6
)

func (t TokenType) String() string {
	switch t {
	case TokenTypeLetter:
		return "Letter"
	case TokenTypePlus:
		return "Plus"
	case TokenTypeParenOpen:
		return "ParenOpen"
	case TokenTypeParenClose:
		return "ParenClose"
	case TokenTypeNewline:
		return "Newline"
	case TokenTypeEOF:
		return "EOF"
	case TokenTypeInvalid:
		return "Invalid"
	default:
		return fmt.Sprintf("unknown-%d", uint16(t))
	}
}

// TraceSink receives the observable events of a parse. Rule carries the
// 1-based number of each production as it is applied and is the conformance
// artifact of the engine. Enter and Exit are pure observability: they fire
// around every dispatch and match invocation with the procedure identity and
// the current token, and implementations are free to ignore them.
type TraceSink interface {
	Rule(n int)
	Enter(proc string, tok *Token)
	Exit(proc string, tok *Token)
}
