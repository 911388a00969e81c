package filetype

import (
	"bytes"
	"encoding/binary"
	"math"
)

var (
	asfStreamPropertiesGUID = []byte{0x91, 0x07, 0xDC, 0xB7, 0xB7, 0xA9, 0xCF, 0x11, 0x8E, 0xE6, 0x00, 0xC0, 0x0C, 0x20, 0x53, 0x65}
	asfAudioMediaGUID       = []byte{0x40, 0x9E, 0x69, 0xF8, 0x4D, 0x5B, 0xCF, 0x11, 0xA8, 0xFD, 0x00, 0x80, 0x5F, 0x5C, 0x44, 0x2B}
	asfVideoMediaGUID       = []byte{0xC0, 0xEF, 0x19, 0xBC, 0x4D, 0x5B, 0xCF, 0x11, 0xA8, 0xFD, 0x00, 0x80, 0x5F, 0x5C, 0x44, 0x2B}
)

// detectASF walks the ASF header object's child objects looking for the
// Stream-Properties-Object, which carries an audio/video type GUID, per spec
// §4.5. The caller has already matched the 16-byte ASF header GUID; the
// first 30 bytes of the header object (size + reserved fields) are skipped
// before objects are iterated.
func detectASF(tok *Tokenizer) (*Result, error) {
	if err := tok.Skip(30); err != nil {
		return nil, err
	}

	for pos := 0; pos < 1024; {
		read, err := tok.Read(24, nil)
		if err != nil {
			return nil, err
		}
		if len(read) < 24 {
			break
		}
		pos += 24

		size := binary.LittleEndian.Uint64(read[16:24])
		if size == 0 || size > math.MaxInt32 {
			break
		}

		if bytes.Equal(read[0:16], asfStreamPropertiesGUID) {
			typeGUID, err := tok.Read(16, nil)
			if err != nil {
				return nil, err
			}
			if bytes.Equal(typeGUID, asfAudioMediaGUID) {
				return &Result{"asf", "audio/x-ms-asf"}, nil
			}
			if bytes.Equal(typeGUID, asfVideoMediaGUID) {
				return &Result{"asf", "video/x-ms-asf"}, nil
			}
			break
		}

		if err := tok.Skip(int(size) - 24); err != nil {
			return nil, err
		}
		pos += int(size) - 24
	}

	return &Result{"asf", "application/vnd.ms-asf"}, nil
}
