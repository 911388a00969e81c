package filetype

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// uintSizes bounds ReadUint/PeekUint to the fixed-width integers the battery
// and the container probes read off the wire.
type uintSizes interface {
	uint8 | uint16 | uint32 | uint64
}

func uintByteWidth[T uintSizes]() int {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	case uint32:
		return 4
	default:
		return 8
	}
}

func decodeUint[T uintSizes](read []byte, bo binary.ByteOrder) T {
	switch uintByteWidth[T]() {
	case 1:
		return T(read[0])
	case 2:
		return T(bo.Uint16(read))
	case 4:
		return T(bo.Uint32(read))
	default:
		return T(bo.Uint64(read))
	}
}

// ReadUint reads and advances past a fixed-width unsigned integer, defaulting
// to little-endian (most of the formats in the battery are LE; TIFF/ASF/PNG
// probes pass their own byte order explicitly).
func ReadUint[T uintSizes](tok *Tokenizer, bo binary.ByteOrder, opts *IOOpts) (T, error) {
	if bo == nil {
		bo = binary.LittleEndian
	}
	size := uintByteWidth[T]()
	read, err := tok.Read(size, opts)
	if err != nil {
		return 0, err
	}
	if len(read) != size {
		return 0, errors.Wrapf(ErrEndOfSource, "need %d bytes for fixed token, got %d", size, len(read))
	}
	return decodeUint[T](read, bo), nil
}

// PeekUint is ReadUint without advancing the cursor.
func PeekUint[T uintSizes](tok *Tokenizer, bo binary.ByteOrder, opts *IOOpts) (T, error) {
	if bo == nil {
		bo = binary.LittleEndian
	}
	size := uintByteWidth[T]()
	read, err := tok.Peek(size, opts)
	if err != nil {
		return 0, err
	}
	if len(read) != size {
		return 0, errors.Wrapf(ErrEndOfSource, "need %d bytes for fixed token, got %d", size, len(read))
	}
	return decodeUint[T](read, bo), nil
}

// ReadFixedString reads n bytes and decodes them under enc, advancing the
// cursor.
func ReadFixedString(tok *Tokenizer, n int, enc Encoding, opts *IOOpts) (string, error) {
	read, err := tok.Read(n, opts)
	if err != nil {
		return "", err
	}
	return decodeString(read, enc)
}

// id3SyncSafeUint32 decodes the ID3v2 sync-safe 28-bit length: four bytes,
// the top bit of each cleared, per spec §4.3.
func id3SyncSafeUint32(b []byte) uint32 {
	return uint32(b[3]&0x7F) | uint32(b[2]&0x7F)<<7 | uint32(b[1]&0x7F)<<14 | uint32(b[0]&0x7F)<<21
}

// bytesToUintBE decodes up to 8 big-endian bytes into a uint64, used by the
// EBML variable-length integer reader whose field width isn't fixed at
// compile time.
func bytesToUintBE(b []byte) uint64 {
	var buf [8]byte
	copy(buf[8-len(b):], b)
	return binary.BigEndian.Uint64(buf[:])
}
