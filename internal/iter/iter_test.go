package iter

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.llgram.org/llpc/internal/ll"
	"gopkg.llgram.org/llpc/internal/optional"
)

type elem struct {
	value int
}

func TestLookahead(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	numValues := 10

	for x := 0; x < numValues; x = x + 1 {
		t.Run(fmt.Sprintf("LA(%d)", x), func(t *testing.T) {
			elems := make([]*elem, 0, numValues)
			for y := 0; y < numValues; y = y + 1 {
				elems = append(elems, &elem{value: y})
			}
			iter := NewSlice(elems)
			look := NewLookahead(iter, uint8(x))
			for y := 0; y < numValues; y = y + 1 {
				val := look.Next(ctx)
				require.NotNil(t, val)
				require.True(t, val.IsPresent())
				expected := y
				require.Equal(t, expected, val.Value().value)

				expectedPeek := y + x
				expectedPeekOK := expectedPeek < numValues
				peek := look.Lookahead(ctx, uint8(x))
				if expectedPeekOK {
					require.True(t, peek.IsPresent())
					require.Equal(t, expectedPeek, peek.Value().value)
				} else {
					require.False(t, peek.IsPresent())
				}
			}
			require.Nil(t, look.Close(ctx))
		})
	}
}

func TestLookaheadFilter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	numValues := 10
	filter := ll.Filter[*elem](FilterFunc[*elem](func(ctx context.Context, val *elem) bool {
		return val.value%2 == 0
	}))
	for x := 0; x < numValues/2; x = x + 1 {
		t.Run(fmt.Sprintf("LA(%d)", x), func(t *testing.T) {
			elems := make([]*elem, 0, numValues)
			for y := 0; y < numValues; y = y + 1 {
				elems = append(elems, &elem{value: y})
			}
			iter := NewSlice(elems)
			iter = NewIteratorFilter(iter, filter)
			look := NewLookahead(iter, uint8(x))
			for y := 0; y < numValues/2; y = y + 2 {
				val := look.Next(ctx)
				require.NotNil(t, val)
				require.True(t, val.IsPresent())
				expected := y
				require.Equal(t, expected, val.Value().value)

				expectedPeek := y + (x * 2)
				expectedPeekOK := expectedPeek < numValues
				peek := look.Lookahead(ctx, uint8(x))
				if expectedPeekOK {
					require.True(t, peek.IsPresent())
					require.Equal(t, expectedPeek, peek.Value().value)
				} else {
					require.False(t, peek.IsPresent())
				}
			}
			require.Nil(t, look.Close(ctx))
		})
	}
}

func TestFunc(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	remaining := 3
	it := NewFunc(func(ctx context.Context) optional.Optional[int] {
		if remaining == 0 {
			return optional.None[int]()
		}
		remaining = remaining - 1
		return optional.Some(remaining)
	})
	require.Equal(t, 2, it.Next(ctx).Value())
	require.Equal(t, 1, it.Next(ctx).Value())
	require.Equal(t, 0, it.Next(ctx).Value())
	require.False(t, it.Next(ctx).IsPresent())
	// Exhausted iterators stay exhausted even if the source would yield again.
	remaining = 3
	require.False(t, it.Next(ctx).IsPresent())
	require.Nil(t, it.Close(ctx))
}

func TestRunes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	it := NewRunes("(aΩ)")
	expected := []rune{'(', 'a', 'Ω', ')'}
	for _, r := range expected {
		val := it.Next(ctx)
		require.True(t, val.IsPresent())
		require.Equal(t, r, rune(val.Value()))
	}
	require.False(t, it.Next(ctx).IsPresent())
	require.False(t, it.Next(ctx).IsPresent())
	require.Nil(t, it.Close(ctx))
}
