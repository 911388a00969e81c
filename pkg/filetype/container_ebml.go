package filetype

import (
	"bytes"
	"math"

	"github.com/pkg/errors"
)

// readEBMLVarField reads one EBML variable-length field: the position of the
// leading 1 bit in the first byte determines the field's total width (up to
// 8 bytes), per spec §4.5.
func readEBMLVarField(tok *Tokenizer) ([]byte, error) {
	msb, err := PeekUint[uint8](tok, nil, nil)
	if err != nil {
		return nil, err
	}

	var mask uint8 = 0x80
	width := 0
	for (msb&mask) == 0 && mask != 0 {
		width++
		mask >>= 1
	}
	if mask == 0 {
		return nil, errors.Wrap(ErrMalformedInput, "ebml field has no leading marker bit")
	}

	return tok.Read(width+1, nil)
}

type ebmlElement struct {
	id  uint64
	len uint64
}

func readEBMLElement(tok *Tokenizer) (ebmlElement, error) {
	idBytes, err := readEBMLVarField(tok)
	if err != nil {
		return ebmlElement{}, err
	}
	if len(idBytes) > 8 {
		return ebmlElement{}, errors.Wrap(ErrMalformedInput, "ebml element id wider than 8 bytes")
	}

	lengthField, err := readEBMLVarField(tok)
	if err != nil {
		return ebmlElement{}, err
	}
	if len(lengthField) == 0 || len(lengthField) > 8 {
		return ebmlElement{}, errors.Wrap(ErrMalformedInput, "ebml element length wider than 8 bytes")
	}
	// Clear the leading marker bit before decoding the length's magnitude.
	lengthField = append([]byte(nil), lengthField...)
	lengthField[0] ^= 0x80 >> (len(lengthField) - 1)

	return ebmlElement{
		id:  bytesToUintBE(idBytes),
		len: bytesToUintBE(lengthField),
	}, nil
}

const ebmlDocTypeID = 0x4282

// readEBMLDocType scans a root element's body, bounded to its declared byte
// length (not a child count — the root element's len field is a size in
// bytes, per the EBML/Matroska format), for the DocType element (id 0x4282),
// skipping payloads of everything else. Trailing NUL in the DocType string
// is trimmed, per spec §4.5.
func readEBMLDocType(tok *Tokenizer, remaining int64) (string, error) {
	for remaining > 0 {
		before := tok.Position()
		el, err := readEBMLElement(tok)
		if err != nil {
			return "", err
		}
		if el.len > math.MaxInt32 {
			return "", errors.Wrap(ErrMalformedInput, "ebml element length beyond int32")
		}
		if el.id == ebmlDocTypeID {
			raw, err := tok.Read(int(el.len), nil)
			if err != nil {
				return "", err
			}
			if len(raw) < int(el.len) {
				return "", errors.Wrap(ErrMalformedInput, "ebml docType element truncated")
			}
			if idx := bytes.IndexByte(raw, 0x00); idx >= 0 {
				raw = raw[:idx]
			}
			return string(raw), nil
		}
		if err := tok.Skip(int(el.len)); err != nil {
			return "", err
		}

		consumed := tok.Position() - before
		if consumed <= 0 {
			break
		}
		remaining -= consumed
	}
	return "", nil
}

// ebmlErrorIsBenign reports whether err reflects a structurally impossible
// or truncated EBML element rather than an underlying I/O failure — both
// cases this package resolves to "unknown", per spec §7's malformed-input
// policy and §8's "short inputs never raise" property.
func ebmlErrorIsBenign(err error) bool {
	return errors.Is(err, ErrMalformedInput) || errors.Is(err, ErrEndOfSource)
}

// detectEBML reads the EBML root element (the caller has already matched its
// magic) and its DocType child, dispatching Matroska/WebM accordingly. Any
// other or missing DocType yields "unknown" rather than an error, per spec
// §4.4's recursive-descent note and §7's malformed-input policy.
func detectEBML(tok *Tokenizer) (*Result, error) {
	root, err := readEBMLElement(tok)
	if err != nil {
		if ebmlErrorIsBenign(err) {
			return nil, nil
		}
		return nil, err
	}

	if root.len > math.MaxInt32 {
		return nil, nil
	}
	docType, err := readEBMLDocType(tok, int64(root.len))
	if err != nil {
		if ebmlErrorIsBenign(err) {
			return nil, nil
		}
		return nil, err
	}

	switch docType {
	case "webm":
		return &Result{"webm", "video/webm"}, nil
	case "matroska":
		return &Result{"mkv", "video/x-matroska"}, nil
	default:
		return nil, nil
	}
}
