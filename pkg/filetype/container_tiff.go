package filetype

import "encoding/binary"

// detectTIFF reads the TIFF header (version + IFD offset) under the given
// byte order, dispatching classic-TIFF-derived raw formats (CR2, NEF) ahead
// of a full IFD tag scan for ARW/DNG, per spec §4.5. The caller has already
// matched the two-byte endianness marker.
func detectTIFF(tok *Tokenizer, bo binary.ByteOrder) (*Result, error) {
	read, err := tok.Read(10, &IOOpts{Offset: 2, MayBeLess: true})
	if err != nil || len(read) < 10 {
		return nil, err
	}

	version := bo.Uint16(read[0:2])
	ifdOffset := bo.Uint32(read[2:6])

	switch version {
	case 43:
		return &Result{"tif", "image/tiff"}, nil
	case 42:
		// fallthrough below
	default:
		return nil, nil
	}

	if ifdOffset >= 6 && string(read[6:8]) == "CR" {
		return &Result{"cr2", "image/x-canon-cr2"}, nil
	}
	if ifdOffset >= 8 &&
		(equalBytes(read[6:10], []byte{0x1C, 0x00, 0xFE, 0x00}) ||
			equalBytes(read[6:10], []byte{0x1F, 0x00, 0x0B, 0x00})) {
		return &Result{"nef", "image/x-nikon-nef"}, nil
	}

	// The header read above left the cursor at offset 12; ifdOffset counts
	// from the start of the file (a negative Skip rewinds).
	if err := tok.Skip(int(ifdOffset) - 12); err != nil {
		return nil, err
	}
	numberOfTags, err := ReadUint[uint16](tok, bo, nil)
	if err != nil {
		return nil, err
	}
	for n := uint16(0); n < numberOfTags; n++ {
		tagID, err := ReadUint[uint16](tok, bo, nil)
		if err != nil {
			return nil, err
		}
		switch tagID {
		case 50_341:
			return &Result{"arw", "image/x-sony-arw"}, nil
		case 50_706:
			return &Result{"dng", "image/x-adobe-dng"}, nil
		}
		if err := tok.Skip(10); err != nil {
			return nil, err
		}
	}

	return &Result{"tif", "image/tiff"}, nil
}

func equalBytes(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
