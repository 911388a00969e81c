package filetype

// detectJP2Family reads the JPEG-2000 signature box's brand and dispatches
// the jp2/jpx/jpm/mj2 family, per spec §4.4 (12-byte arm). The caller has
// already matched the 12-byte signature box.
func detectJP2Family(tok *Tokenizer) (*Result, error) {
	read, err := tok.Read(4, &IOOpts{Offset: 20})
	if err != nil {
		return nil, err
	}

	switch string(read) {
	case "jp2 ":
		return &Result{"jp2", "image/jp2"}, nil
	case "jpx ":
		return &Result{"jpx", "image/jpx"}, nil
	case "jpm ":
		return &Result{"jpm", "image/jpm"}, nil
	case "mjp2":
		return &Result{"mj2", "image/mj2"}, nil
	default:
		return nil, nil
	}
}
