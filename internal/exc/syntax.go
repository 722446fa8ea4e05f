// © 2025 Llgram Labs
//
// SPDX-License-Identifier: Apache-2.0

package exc

import (
	"fmt"

	"gopkg.llgram.org/llpc/internal/ll"
)

// SyntaxError is the single failure kind the parsing engine produces. It is
// raised at the first point of divergence: a terminal mismatch in the
// matcher, a lookahead no alternative starts with, or trailing input after a
// completed derivation. Expected and Actual carry the full context so the
// error renders without re-deriving any parse state.
type SyntaxError struct {
	// Expected is the terminal the matcher required, or the nonterminal
	// whose alternatives were exhausted.
	Expected string
	// Actual is the offending lookahead token.
	Actual *ll.Token

	code     string
	location Location
}

func NewSyntax(location Location, code string, expected string, actual *ll.Token) *SyntaxError {
	return &SyntaxError{
		Expected: expected,
		Actual:   actual,
		code:     code,
		location: location,
	}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d -- %s: %s", e.location.URI, e.location.Line, e.location.Column, e.code, e.Message())
}

func (e *SyntaxError) Code() string {
	return e.code
}

func (e *SyntaxError) Message() string {
	switch e.code {
	case CodeNoAlternative:
		return fmt.Sprintf("no production of %s starts with %s", e.Expected, e.Actual)
	case CodeUnknownSymbol:
		return fmt.Sprintf("nonterminal %s has no productions", e.Expected)
	case CodeTrailingInput:
		return fmt.Sprintf("expected end of input, found %s", e.Actual)
	default:
		return fmt.Sprintf("expected %s, found %s", e.Expected, e.Actual)
	}
}

func (e *SyntaxError) Location() Location {
	return e.location
}
