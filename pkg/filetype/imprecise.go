package filetype

import "context"

// impreciseDetector is the "core.imprecise" built-in descriptor, per spec
// §4.7: it only gets a turn when the confident battery returned "unknown"
// without consuming any bytes, and it trades precision for coverage on
// short, easily-collided signatures.
type impreciseDetector struct{}

func (impreciseDetector) ID() string { return "core.imprecise" }

func (impreciseDetector) Detect(ctx context.Context, tok *Tokenizer, _ *Result) (*Result, error) {
	cfg := configFrom(ctx)

	if ok, err := m(tok, []byte{0x00, 0x00, 0x01, 0xBA}, 0); err != nil {
		return nil, err
	} else if ok {
		return &Result{"mpg", "video/mpeg"}, nil
	}
	if ok, err := m(tok, []byte{0x00, 0x00, 0x01, 0xB3}, 0); err != nil {
		return nil, err
	} else if ok {
		return &Result{"mpg", "video/mpeg"}, nil
	}
	if ok, err := m(tok, []byte{0x00, 0x01, 0x00, 0x00, 0x00}, 0); err != nil {
		return nil, err
	} else if ok {
		return &Result{"ttf", "font/ttf"}, nil
	}
	if ok, err := m(tok, []byte{0x00, 0x00, 0x01, 0x00}, 0); err != nil {
		return nil, err
	} else if ok {
		return &Result{"ico", "image/x-icon"}, nil
	}
	if ok, err := m(tok, []byte{0x00, 0x00, 0x02, 0x00}, 0); err != nil {
		return nil, err
	} else if ok {
		return &Result{"cur", "image/x-icon"}, nil
	}

	if res, err := scanMPEGAudioSync(tok, cfg.MPEGOffsetTolerance); err != nil {
		return nil, err
	} else if res != nil {
		return res, nil
	}

	return nil, nil
}

// scanMPEGAudioSync looks for an 11-bit MPEG audio frame sync word at offsets
// 0..=tolerance, classifying the frame by its version/layer sub-bits, per
// spec §4.7. depth 0 is the nominal, zero-offset case.
func scanMPEGAudioSync(tok *Tokenizer, tolerance uint) (*Result, error) {
	for depth := uint(0); depth <= tolerance; depth++ {
		read, err := tok.Peek(2, &IOOpts{Offset: int(depth), MayBeLess: true})
		if err != nil {
			return nil, err
		}
		if len(read) < 2 {
			return nil, nil
		}
		if read[0] != 0xFF || (read[1]&0xE0) != 0xE0 {
			continue
		}

		switch {
		case read[1]&0x16 == 0x10:
			return &Result{"aac", "audio/aac"}, nil
		case read[1]&0x06 == 0x02:
			return &Result{"mp3", "audio/mpeg"}, nil
		case read[1]&0x06 == 0x04:
			return &Result{"mp2", "audio/mpeg"}, nil
		case read[1]&0x06 == 0x06:
			return &Result{"mp1", "audio/mpeg"}, nil
		}
	}
	return nil, nil
}
