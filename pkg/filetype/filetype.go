package filetype

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ParseBuffer returns the asset type and MIME type of an in-memory byte
// buffer by inspecting its magic numbers. A nil or empty buffer is a valid
// "unknown" input, never an error.
func ParseBuffer(b []byte, opts ParseOpts) (ext string, mime string, err error) {
	if b == nil {
		b = []byte{}
	}
	tok := NewByteTokenizer(opts.ctx(), b)
	return parseTokenizer(tok, opts)
}

// ParseStream returns the asset type and MIME type of a sequential, cursor-
// less byte source by buffering and inspecting its leading bytes. r is read
// as far as detection needs (the sample size does not bound it) and the bytes
// read are not handed back; callers that need the full stream afterwards
// should use NewDetectedStream instead.
func ParseStream(r io.Reader, opts ParseOpts) (ext string, mime string, err error) {
	if r == nil {
		return "", "", errors.Wrap(ErrInvalidArgument, "nil reader")
	}
	tok := NewTokenizer(opts.ctx(), r, unknownSize)
	return parseTokenizer(tok, opts)
}

// ParseFile returns the asset type and MIME type of the file at path.
func ParseFile(path string, opts ParseOpts) (ext string, mime string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	size := unknownSize
	if info, statErr := f.Stat(); statErr == nil {
		size = info.Size()
	}
	tok := NewTokenizer(opts.ctx(), f, size)
	return parseTokenizer(tok, opts)
}

// ReaderAtSource is a blob-like, BYOB-capable source: a bounded region with
// random access, the shape returned by e.g. an object-storage SDK's range
// reader. ParseReaderAt only ever reads within [0, size).
type ReaderAtSource struct {
	ReaderAt io.ReaderAt
	Size     int64
}

// ParseReaderAt returns the asset type and MIME type of a blob-like source
// addressed by io.ReaderAt, without requiring it to expose io.Reader.
func ParseReaderAt(src ReaderAtSource, opts ParseOpts) (ext string, mime string, err error) {
	if src.ReaderAt == nil {
		return "", "", errors.Wrap(ErrInvalidArgument, "nil ReaderAt")
	}
	tok := NewTokenizer(opts.ctx(), io.NewSectionReader(src.ReaderAt, 0, src.Size), src.Size)
	return parseTokenizer(tok, opts)
}

func parseTokenizer(tok *Tokenizer, opts ParseOpts) (ext string, mime string, err error) {
	res, err := Detect(opts.ctx(), tok, opts.config())
	if err != nil {
		return "", "", err
	}
	if res == nil {
		return "", "", nil
	}
	return res.Ext, res.MIME, nil
}

// GetFileType mirrors the teacher's own entry point: same shape, backed by
// the full detection pipeline rather than the single-pass cascade it
// originally wrapped.
func GetFileType(r io.Reader) (ext string, mime string, err error) {
	return ParseStream(r, ParseOpts{})
}

// DetectedStream is the transparent detection stream from spec §4.9: a
// pass-through io.Reader carrying the detection result as an out-of-band
// attribute, so a caller can decide what to do with a stream without
// consuming it twice.
type DetectedStream struct {
	io.Reader
	Result *Result
}

// NewDetectedStream buffers the first sample-size bytes of r, runs detection
// against that prefix, and returns a stream that replays the buffered prefix
// followed by the remainder of r. End-of-source during the prefix read, or a
// probe running past the end of the buffered prefix, produces a nil Result,
// not an error.
func NewDetectedStream(r io.Reader, opts ParseOpts) (*DetectedStream, error) {
	if r == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "nil reader")
	}
	cfg := opts.config()
	prefix := make([]byte, cfg.sampleSize())
	n, readErr := io.ReadFull(r, prefix)
	if readErr != nil && !errors.Is(readErr, io.EOF) && !errors.Is(readErr, io.ErrUnexpectedEOF) {
		return nil, errors.Wrap(readErr, "buffering detection stream prefix")
	}
	prefix = prefix[:n]

	res, err := Detect(opts.ctx(), NewByteTokenizer(opts.ctx(), prefix), cfg)
	if err != nil {
		if !errors.Is(err, ErrEndOfSource) {
			return nil, err
		}
		res = nil
	}

	logrus.WithFields(logrus.Fields{
		"result":  logResult(res),
		"preview": n,
	}).Debug("filetype: detected stream")

	return &DetectedStream{
		Reader: io.MultiReader(bytes.NewReader(prefix), r),
		Result: res,
	}, nil
}

func logResult(res *Result) string {
	if res == nil {
		return "unknown"
	}
	return res.Ext
}
