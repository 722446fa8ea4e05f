// © 2025 Llgram Labs
//
// SPDX-License-Identifier: Apache-2.0

package iter

import (
	"context"
	"unicode/utf8"

	"gopkg.llgram.org/llpc/internal/ll"
	"gopkg.llgram.org/llpc/internal/optional"
)

// NewRunes converts an input string into an iterator of code points.
func NewRunes(input string) ll.Iterator[ll.CodePoint] {
	return &runes{input: input}
}

type runes struct {
	input  string
	offset int
}

func (r *runes) Next(ctx context.Context) optional.Optional[ll.CodePoint] {
	if r.offset >= len(r.input) {
		return optional.None[ll.CodePoint]()
	}
	point, size := utf8.DecodeRuneInString(r.input[r.offset:])
	r.offset = r.offset + size
	return optional.Some(ll.CodePoint(point))
}

func (r *runes) Close(ctx context.Context) error {
	return nil
}
