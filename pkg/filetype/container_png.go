package filetype

import (
	"encoding/binary"
	"math"
)

// detectPNG walks PNG chunks looking for acTL (animated PNG) before the
// first IDAT, per spec §4.5 / scenario 3. The caller has already matched
// the 8-byte PNG signature.
func detectPNG(tok *Tokenizer) (*Result, error) {
	for {
		read, err := tok.Read(8, nil)
		if err != nil {
			return nil, err
		}
		if len(read) < 8 {
			break
		}

		length := binary.BigEndian.Uint32(read[0:4])
		if length > math.MaxInt32 {
			// A chunk claiming a negative/overflowing length is structurally
			// impossible; report "unknown" rather than guessing.
			return nil, nil
		}

		switch string(read[4:8]) {
		case "IDAT":
			return &Result{"png", "image/png"}, nil
		case "acTL":
			return &Result{"apng", "image/apng"}, nil
		}

		if err := tok.Skip(int(length) + 4); err != nil { // chunk data + CRC
			return nil, err
		}
	}

	return &Result{"png", "image/png"}, nil
}
