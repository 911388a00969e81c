package filetype

// detectOGG dispatches an OGG stream's first codec header to a catalogue
// entry, per spec §4.5. The caller has already matched "OggS" and left the
// cursor right after it; the remaining 23 bytes of the 27-byte page header
// and a one-byte segment table are skipped, so the 8-byte codec identifier
// is read from offset 28 of the page.
func detectOGG(tok *Tokenizer) (*Result, error) {
	if err := tok.Skip(24); err != nil {
		return nil, err
	}
	read, err := tok.Read(8, nil)
	if err != nil {
		return nil, err
	}

	switch {
	case check(read, []byte("OpusHead"), 0, nil):
		return &Result{"opus", "audio/opus"}, nil
	case check(read, []byte{0x80, 't', 'h', 'e', 'o', 'r', 'a'}, 0, nil):
		return &Result{"ogv", "video/ogg"}, nil
	case check(read, []byte{0x01, 'v', 'i', 'd', 'e', 'o', 0x00}, 0, nil):
		return &Result{"ogm", "video/ogg"}, nil
	case check(read, []byte{0x7F, 'F', 'L', 'A', 'C'}, 0, nil):
		return &Result{"oga", "audio/ogg"}, nil
	case check(read, []byte("Speex  "), 0, nil):
		return &Result{"spx", "audio/ogg"}, nil
	case check(read, []byte{0x01, 'v', 'o', 'r', 'b', 'i', 's'}, 0, nil):
		return &Result{"ogg", "audio/ogg"}, nil
	default:
		return &Result{"ogx", "application/ogg"}, nil
	}
}
