package filetype

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ebmlVarLen(id uint32, idWidth int, length uint64, lenWidth int) []byte {
	out := make([]byte, 0, idWidth+lenWidth)
	idBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(idBytes, uint64(id))
	out = append(out, idBytes[8-idWidth:]...)

	lenBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(lenBytes, length)
	lenField := append([]byte{}, lenBytes[8-lenWidth:]...)
	lenField[0] |= 0x80 >> (lenWidth - 1)
	out = append(out, lenField...)
	return out
}

func TestEBMLMatroskaDocType(t *testing.T) {
	docType := []byte("matroska")
	docTypeElement := append(ebmlVarLen(0x4282, 2, uint64(len(docType)), 1), docType...)

	root := append(ebmlVarLen(0x1A45DFA3, 4, uint64(len(docTypeElement)), 1), docTypeElement...)

	res := detect(t, root, Config{})
	require.NotNil(t, res)
	require.Equal(t, Result{"mkv", "video/x-matroska"}, *res)
}

func TestEBMLTruncatedLengthFieldNeverRaises(t *testing.T) {
	// EBML magic plus a single length-field byte claiming a 26-byte body
	// that was never actually written: an EOF mid-child-scan, not a panic
	// or a propagated error.
	input := []byte{0x1A, 0x45, 0xDF, 0xA3, 0x9A}
	res := detect(t, input, Config{})
	assert.Nil(t, res)
}

func TestOGGCodecDispatch(t *testing.T) {
	page := append([]byte("OggS"), make([]byte, 24)...) // 27-byte page header (capture pattern included) plus a one-byte segment table
	page = append(page, []byte("OpusHead")...)
	res := detect(t, page, Config{})
	require.NotNil(t, res)
	require.Equal(t, Result{"opus", "audio/opus"}, *res)
}

func TestGzipDescendsIntoTar(t *testing.T) {
	header := make([]byte, 512)
	copy(header[0:8], "file.txt")
	fillTarChecksum(header)

	var buf bytes.Buffer
	gz, err := gzip.NewWriterLevel(&buf, gzip.BestSpeed)
	require.NoError(t, err)
	_, err = gz.Write(header)
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	tok := NewTokenizer(context.Background(), bytes.NewReader(buf.Bytes()), unknownSize)
	res, err := Detect(context.Background(), tok, Config{})
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Equal(t, Result{"tar.gz", "application/gzip"}, *res)
}

func TestGzipWithoutTarPayload(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte("just some plain text, not a tar header at all"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	res := detect(t, buf.Bytes(), Config{})
	require.NotNil(t, res)
	require.Equal(t, Result{"gz", "application/gzip"}, *res)
}

func fillTarChecksum(header []byte) {
	for i := 148; i < 156; i++ {
		header[i] = ' '
	}
	sum := 8 * 0x20
	for i := 0; i < 148; i++ {
		sum += int(header[i])
	}
	for i := 156; i < 512; i++ {
		sum += int(header[i])
	}
	copy(header[148:], []byte(padOctal(sum)))
}
