package filetype

import (
	"bytes"
	"strings"
)

// detectISOBMFF dispatches an ISO-BMFF `ftyp` box's brand major to a
// catalogue entry, per spec §4.4 (9-byte arm). The caller has already
// matched "ftyp" at offset 4; this reads the brand major at offset 8.
func detectISOBMFF(tok *Tokenizer) (*Result, error) {
	read, err := tok.Read(4, &IOOpts{Offset: 8, MayBeLess: true})
	if err != nil {
		return nil, err
	}
	if len(read) != 4 {
		return nil, nil
	}
	// Only the brand major's first byte must be ISO 8859-1 printable; 0x60
	// is a simplified mask for "printable enough", per spec §4.4. The
	// remaining three bytes are free to be space or NUL padding (e.g. the
	// 3-letter brand "M4A" padded as "M4A\x00").
	if read[0]&0x60 == 0 {
		return nil, nil
	}

	brandMajor := string(bytes.TrimSpace(bytes.ReplaceAll(read, []byte{0x00}, []byte{0x20})))

	switch brandMajor {
	case "avif", "avis":
		return &Result{"avif", "image/avif"}, nil
	case "mif1":
		return &Result{"heic", "image/heif"}, nil
	case "msf1":
		return &Result{"heic", "image/heif-sequence"}, nil
	case "heic", "heix":
		return &Result{"heic", "image/heic"}, nil
	case "hevc", "hevx":
		return &Result{"heic", "image/heic-sequence"}, nil
	case "qt":
		return &Result{"mov", "video/quicktime"}, nil
	case "M4V", "M4VH", "M4VP":
		return &Result{"m4v", "video/x-m4v"}, nil
	case "M4P":
		return &Result{"m4p", "video/mp4"}, nil
	case "M4B":
		return &Result{"m4b", "audio/mp4"}, nil
	case "M4A":
		return &Result{"m4a", "audio/x-m4a"}, nil
	case "F4V":
		return &Result{"f4v", "video/mp4"}, nil
	case "F4P":
		return &Result{"f4p", "video/mp4"}, nil
	case "F4A":
		return &Result{"f4a", "audio/mp4"}, nil
	case "F4B":
		return &Result{"f4b", "audio/mp4"}, nil
	case "crx":
		return &Result{"cr3", "image/x-canon-cr3"}, nil
	}

	if strings.HasPrefix(brandMajor, "3g2") {
		return &Result{"3g2", "video/3gpp2"}, nil
	}
	if strings.HasPrefix(brandMajor, "3g") {
		return &Result{"3gp", "video/3gpp"}, nil
	}

	return &Result{"mp4", "video/mp4"}, nil
}
