package filetype

import (
	"bytes"
	"context"
	"io"

	"github.com/pkg/errors"
)

// unknownSize marks a Tokenizer whose backing source has no declared length;
// per the tokenizer contract it is treated as the maximum representable
// position by anything that needs a bound.
const unknownSize int64 = -1

// readAhead controls how many extra bytes the tokenizer pulls from the
// underlying reader on a buffer miss, to amortize small, adjacent peeks —
// the confident battery reads 2, 3, 4, ... byte windows back to back.
const readAhead = 12

// IOOpts configures a single Peek/Read call.
type IOOpts struct {
	// Offset shifts the start of the read forward from the current cursor,
	// without itself advancing the cursor.
	Offset int
	// MayBeLess allows the call to return fewer bytes than requested when
	// the source is exhausted. When false, a short read fails with
	// ErrEndOfSource.
	MayBeLess bool
}

var defaultIOOpts = &IOOpts{MayBeLess: true}

// Tokenizer is a positioned byte cursor over a bounded or unbounded source,
// per spec §4.1: peek, read, skip, current position, known size. peek never
// moves the cursor; read and skip always advance it by exactly what they
// consumed. Cancellation is observed at every underlying I/O operation.
type Tokenizer struct {
	ctx  context.Context
	r    io.Reader
	buf  *bytes.Buffer
	eof  bool
	cur  int64
	size int64
}

// NewTokenizer wraps r. size may be unknownSize when the source's length
// isn't known ahead of time (e.g. a plain streaming io.Reader).
func NewTokenizer(ctx context.Context, r io.Reader, size int64) *Tokenizer {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Tokenizer{
		ctx:  ctx,
		r:    r,
		buf:  &bytes.Buffer{},
		size: size,
	}
}

// NewByteTokenizer wraps an in-memory byte slice, whose size is always known.
func NewByteTokenizer(ctx context.Context, b []byte) *Tokenizer {
	t := NewTokenizer(ctx, bytes.NewReader(b), int64(len(b)))
	return t
}

// Position returns the current cursor, non-decreasing across Read calls and
// forward Skip calls (a negative Skip or ResetCursor moves it back); Peek
// never changes it.
func (t *Tokenizer) Position() int64 {
	return t.cur
}

// Size returns the source's declared length and whether it is known at all.
func (t *Tokenizer) Size() (int64, bool) {
	if t.size == unknownSize {
		return 0, false
	}
	return t.size, true
}

// ResetCursor rewinds the cursor to the start of the source, for callers
// that want to retry an interpretation of a prefix from scratch. None of the
// built-in probes calls it.
func (t *Tokenizer) ResetCursor() {
	t.cur = 0
}

// fill ensures the internal buffer holds at least end bytes (or EOF), honoring
// cancellation on every underlying Read.
func (t *Tokenizer) fill(end int) error {
	missing := end - t.buf.Len()
	if missing <= 0 || t.eof {
		return nil
	}

	if err := t.ctx.Err(); err != nil {
		return errors.Wrap(ErrAborted, err.Error())
	}

	read := make([]byte, missing+readAhead)
	nr, err := io.ReadFull(t.r, read)
	if nr > 0 {
		if _, werr := t.buf.Write(read[:nr]); werr != nil {
			return errors.Wrap(werr, "buffering tokenizer source")
		}
	}

	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		t.eof = true
		return nil
	case t.ctx.Err() != nil:
		return errors.Wrap(ErrAborted, err.Error())
	default:
		return errors.Wrap(err, "reading tokenizer source")
	}
}

// Peek returns up to n bytes starting at the cursor (plus opts.Offset)
// without advancing the cursor. The returned slice aliases the tokenizer's
// internal buffer and is only valid until the next Peek/Read call.
func (t *Tokenizer) Peek(n int, opts *IOOpts) ([]byte, error) {
	if opts == nil {
		opts = defaultIOOpts
	}
	start := int(t.cur) + opts.Offset
	end := start + n

	if err := t.fill(end); err != nil {
		return nil, err
	}

	if end > t.buf.Len() {
		end = t.buf.Len()
	}
	if start > end {
		start = end
	}

	out := t.buf.Bytes()[start:end]
	if !opts.MayBeLess && len(out) < n {
		return out, ErrEndOfSource
	}
	return out, nil
}

// Read is like Peek but advances the cursor by the number of bytes returned.
func (t *Tokenizer) Read(n int, opts *IOOpts) ([]byte, error) {
	if opts == nil {
		opts = defaultIOOpts
	}
	out, err := t.Peek(n, opts)
	t.cur += int64(len(out)) + int64(opts.Offset)
	return out, err
}

// Skip advances the cursor by exactly n bytes, failing with ErrEndOfSource
// if the source does not have that many bytes remaining (the cursor then
// stops at the end of the source). A negative n rewinds the cursor by -n.
func (t *Tokenizer) Skip(n int) error {
	if n <= 0 {
		if n < 0 {
			t.cur += int64(n)
		}
		return nil
	}
	out, err := t.Peek(n, &IOOpts{MayBeLess: true})
	if err != nil {
		return err
	}
	t.cur += int64(len(out))
	if len(out) < n {
		return ErrEndOfSource
	}
	return nil
}

// eofReached reports whether the source is exhausted and the cursor has
// reached the end of everything buffered from it.
func (t *Tokenizer) eofReached() bool {
	return t.eof && int(t.cur) >= t.buf.Len()
}

// RemainingReader returns an io.Reader that first yields whatever is already
// buffered from the cursor onward, then continues reading the underlying
// source. Used by probes that hand the rest of the stream to a pluggable
// decompressor (gzip) and must not lose already-peeked bytes.
func (t *Tokenizer) RemainingReader() io.Reader {
	buffered := append([]byte(nil), t.buf.Bytes()[t.cur:]...)
	return io.MultiReader(bytes.NewReader(buffered), t.r)
}
