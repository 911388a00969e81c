package filetype

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizerPeekDoesNotAdvance(t *testing.T) {
	tok := NewByteTokenizer(context.Background(), []byte("hello world"))
	b, err := tok.Peek(5, nil)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
	assert.Equal(t, int64(0), tok.Position())

	b, err = tok.Peek(5, nil) // idempotent
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
}

func TestTokenizerReadAdvances(t *testing.T) {
	tok := NewByteTokenizer(context.Background(), []byte("hello world"))
	b, err := tok.Read(5, nil)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
	assert.Equal(t, int64(5), tok.Position())

	b, err = tok.Read(6, nil)
	require.NoError(t, err)
	assert.Equal(t, " world", string(b))
	assert.Equal(t, int64(11), tok.Position())
}

func TestTokenizerPeekWithOffsetLeavesPositionAlone(t *testing.T) {
	tok := NewByteTokenizer(context.Background(), []byte("abcdef"))
	b, err := tok.Peek(2, &IOOpts{Offset: 3})
	require.NoError(t, err)
	assert.Equal(t, "de", string(b))
	assert.Equal(t, int64(0), tok.Position())
}

func TestTokenizerShortReadAtEndOfSource(t *testing.T) {
	tok := NewByteTokenizer(context.Background(), []byte("ab"))
	b, err := tok.Read(10, nil) // MayBeLess defaults true
	require.NoError(t, err)
	assert.Equal(t, "ab", string(b))

	tok2 := NewByteTokenizer(context.Background(), []byte("ab"))
	_, err = tok2.Read(10, &IOOpts{MayBeLess: false})
	assert.ErrorIs(t, err, ErrEndOfSource)
}

func TestTokenizerSkipAdvancesAndFailsPastEnd(t *testing.T) {
	tok := NewByteTokenizer(context.Background(), []byte("abcdef"))
	require.NoError(t, tok.Skip(3))
	assert.Equal(t, int64(3), tok.Position())

	err := tok.Skip(10)
	assert.ErrorIs(t, err, ErrEndOfSource)
	assert.Equal(t, int64(6), tok.Position()) // advanced to whatever was actually available
}

func TestTokenizerResetCursor(t *testing.T) {
	tok := NewByteTokenizer(context.Background(), []byte("abcdef"))
	_, err := tok.Read(4, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), tok.Position())

	tok.ResetCursor()
	assert.Equal(t, int64(0), tok.Position())

	b, err := tok.Read(2, nil)
	require.NoError(t, err)
	assert.Equal(t, "ab", string(b))
}

func TestTokenizerSizeKnownVsUnknown(t *testing.T) {
	known := NewByteTokenizer(context.Background(), []byte("abcdef"))
	size, ok := known.Size()
	assert.True(t, ok)
	assert.Equal(t, int64(6), size)

	unknown := NewTokenizer(context.Background(), bytes.NewReader([]byte("abcdef")), unknownSize)
	_, ok = unknown.Size()
	assert.False(t, ok)
}

func TestTokenizerRemainingReaderPreservesPeekedBytes(t *testing.T) {
	tok := NewByteTokenizer(context.Background(), []byte("abcdefgh"))
	_, err := tok.Peek(3, nil) // populates the buffer without advancing the cursor
	require.NoError(t, err)
	_, err = tok.Read(2, nil) // advance past "ab"
	require.NoError(t, err)

	rest, err := io.ReadAll(tok.RemainingReader())
	require.NoError(t, err)
	assert.Equal(t, "cdefgh", string(rest))
}

func TestTokenizerHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tok := NewTokenizer(ctx, bytes.NewReader([]byte("abcdef")), unknownSize)
	_, err := tok.Read(4, nil)
	assert.ErrorIs(t, err, ErrAborted)
}
