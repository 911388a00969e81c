package filetype

import (
	"context"

	"github.com/klauspost/compress/gzip"
)

// detectGzipFamily spawns a gzip inflater over the remainder of the stream
// and runs a nested full detection on the decompressed bytes: if that
// resolves to "tar", the whole thing is a gzipped tarball, otherwise it's
// just "gz", per spec §4.4's 3-byte arm. The caller has matched the 3-byte
// magic but not advanced the tokenizer, so the inflater sees the gzip
// header too.
func detectGzipFamily(ctx context.Context, tok *Tokenizer) (*Result, error) {
	gz, err := gzip.NewReader(tok.RemainingReader())
	if err != nil {
		// Not actually a valid gzip stream despite the magic bytes lining up.
		return &Result{"gz", "application/gzip"}, nil
	}
	defer gz.Close()

	nested := NewTokenizer(ctx, gz, unknownSize)
	res, err := Detect(ctx, nested, configFrom(ctx))
	if err != nil {
		return nil, err
	}
	if res != nil && res.Ext == "tar" {
		return &Result{"tar.gz", "application/gzip"}, nil
	}
	return &Result{"gz", "application/gzip"}, nil
}
