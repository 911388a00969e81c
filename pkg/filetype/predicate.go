package filetype

import (
	"bytes"

	"golang.org/x/text/encoding/unicode"
)

// Encoding names the text encodings pattern predicates can check strings
// under, per spec §4.2.
type Encoding int

const (
	ASCII Encoding = iota
	Latin1
	UTF16LE
	UTF16BE
)

// encodeString renders s as bytes under enc. ASCII and Latin-1 are the
// byte-identity encodings; UTF-16LE/BE go through golang.org/x/text so that
// surrogate pairs for non-BMP code points are encoded as two 16-bit units,
// same as the rest of this pack's UTF-16 handling (rclone, sahib/brig).
func encodeString(s string, enc Encoding) []byte {
	switch enc {
	case UTF16LE:
		b, _ := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(s))
		return b
	case UTF16BE:
		b, _ := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(s))
		return b
	default:
		// ASCII/Latin-1 are byte-identity for the printable ranges this
		// package's signatures live in.
		return []byte(s)
	}
}

// decodeString is the inverse of encodeString, used by round-trip tests and
// by ReadFixedString.
func decodeString(b []byte, enc Encoding) (string, error) {
	switch enc {
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().String(string(b))
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder().String(string(b))
	default:
		return string(b), nil
	}
}

// check compares header against sample starting at offset, applying mask
// byte-by-byte when given: header[i] must equal mask[i]&sample[offset+i] (or
// plain sample[offset+i] with no mask). Indices past the end of sample read
// as zero, so a too-short sample simply fails to match rather than panicking.
func check(sample, header []byte, offset int, mask []byte) bool {
	for i, want := range header {
		idx := offset + i
		var got byte
		if idx >= 0 && idx < len(sample) {
			got = sample[idx]
		}
		if mask != nil && i < len(mask) {
			got &= mask[i]
		}
		if got != want {
			return false
		}
	}
	return true
}

// checkString encodes text under enc and delegates to check.
func checkString(sample []byte, text string, offset int, enc Encoding) bool {
	return check(sample, encodeString(text, enc), offset, nil)
}

// indexOf is a thin wrapper kept next to check/checkString for the ZIP
// corrupted-header recovery, which needs "find this magic inside a window"
// rather than "match at an offset".
func indexOf(sample, needle []byte) int {
	return bytes.Index(sample, needle)
}
