package filetype

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// confidentDetector is the "core" built-in descriptor: the ordered battery
// of signature tests from 2-byte through 512-byte prefixes, escalating the
// sample size in steps and dispatching into the container probes, per spec
// §2 item 5 / §4.4. Ordering is significant — some signatures are subsets of
// others — so this is deliberately one long straight-line cascade rather
// than a generic table, per spec §9's design note.
type confidentDetector struct{}

func (confidentDetector) ID() string { return "core" }

func (d confidentDetector) Detect(ctx context.Context, tok *Tokenizer, _ *Result) (*Result, error) {
	return battery(ctx, tok)
}

// m is a small local alias so the 4000-odd-byte cascade below reads closer
// to the teacher's own dense style: "does the sample equal this pattern at
// this offset".
func m(tok *Tokenizer, pattern []byte, offset int) (bool, error) {
	read, err := tok.Peek(len(pattern), &IOOpts{Offset: offset, MayBeLess: true})
	if err != nil {
		return false, err
	}
	return check(read, pattern, 0, nil), nil
}

func mStr(tok *Tokenizer, s string, offset int) (bool, error) {
	return m(tok, []byte(s), offset)
}

func mMask(tok *Tokenizer, pattern, mask []byte, offset int) (bool, error) {
	read, err := tok.Peek(len(pattern), &IOOpts{Offset: offset, MayBeLess: true})
	if err != nil {
		return false, err
	}
	return check(read, pattern, 0, mask), nil
}

func battery(ctx context.Context, tok *Tokenizer) (*Result, error) {
	// Warm the buffer; mirrors the teacher's own "read the first N bytes to
	// start populating the buffer" before the cascade begins.
	if _, err := tok.Peek(32, nil); err != nil {
		return nil, err
	}

	// -- 2-byte arms --

	if ok, err := m(tok, []byte{0x42, 0x4D}, 0); err != nil {
		return nil, err
	} else if ok {
		return &Result{"bmp", "image/bmp"}, nil
	}
	if ok, _ := m(tok, []byte{0x0B, 0x77}, 0); ok {
		return &Result{"ac3", "audio/vnd.dolby.dd-raw"}, nil
	}
	if ok, _ := m(tok, []byte{0x78, 0x01}, 0); ok {
		return &Result{"dmg", "application/x-apple-diskimage"}, nil
	}
	if ok, _ := m(tok, []byte{0x4D, 0x5A}, 0); ok {
		return &Result{"exe", "application/x-msdownload"}, nil
	}
	if ok, _ := m(tok, []byte{0x25, 0x21}, 0); ok {
		epsf, err := mStr(tok, " EPSF-", 14)
		if err != nil {
			return nil, err
		}
		adobe, err := mStr(tok, "PS-Adobe-", 2)
		if err != nil {
			return nil, err
		}
		if epsf && adobe {
			return &Result{"eps", "application/eps"}, nil
		}
		return &Result{"ps", "application/postscript"}, nil
	}
	if ok, _ := m(tok, []byte{0x1F, 0xA0}, 0); ok {
		return &Result{"Z", "application/x-compress"}, nil
	}
	if ok, _ := m(tok, []byte{0x1F, 0x9D}, 0); ok {
		return &Result{"Z", "application/x-compress"}, nil
	}
	if ok, _ := m(tok, []byte{0xC7, 0x71}, 0); ok {
		return &Result{"cpio", "application/x-cpio"}, nil
	}
	if ok, _ := m(tok, []byte{0x60, 0xEA}, 0); ok {
		return &Result{"arj", "application/x-arj"}, nil
	}

	// -- 3-byte arms --

	if ok, _ := m(tok, []byte{0xEF, 0xBB, 0xBF}, 0); ok {
		// UTF-8 BOM: strip it and recurse into the confident detector only
		// (custom detectors already saw this layer; they don't get a
		// second look at the de-BOM'd stream).
		if err := tok.Skip(3); err != nil {
			return nil, err
		}
		return battery(ctx, tok)
	}
	if ok, _ := m(tok, []byte{0x47, 0x49, 0x46}, 0); ok {
		return &Result{"gif", "image/gif"}, nil
	}
	if ok, _ := m(tok, []byte{0x49, 0x49, 0xBC}, 0); ok {
		return &Result{"jxr", "image/vnd.ms-photo"}, nil
	}
	if ok, _ := m(tok, []byte{0x1F, 0x8B, 0x08}, 0); ok {
		return detectGzipFamily(ctx, tok)
	}
	if ok, _ := m(tok, []byte{0x42, 0x5A, 0x68}, 0); ok {
		return &Result{"bz2", "application/x-bzip2"}, nil
	}
	if ok, _ := mStr(tok, "ID3", 0); ok {
		return detectID3(ctx, tok)
	}
	if ok, _ := mStr(tok, "MP+", 0); ok {
		return &Result{"mpc", "audio/x-musepack"}, nil
	}
	if ok, _ := m(tok, []byte{0x43, 0x57, 0x53}, 0); ok {
		return &Result{"swf", "application/x-shockwave-flash"}, nil
	}
	if ok, _ := m(tok, []byte{0x46, 0x57, 0x53}, 0); ok {
		return &Result{"swf", "application/x-shockwave-flash"}, nil
	}

	// -- 4-byte arms --

	if ok, _ := m(tok, []byte{0xFF, 0xD8, 0xFF}, 0); ok {
		b3, err := tok.Peek(1, &IOOpts{Offset: 3, MayBeLess: true})
		if err != nil {
			return nil, err
		}
		if len(b3) == 1 && b3[0] == 0xF7 {
			return &Result{"jls", "image/jls"}, nil
		}
		return &Result{"jpg", "image/jpeg"}, nil
	}
	if ok, _ := mStr(tok, "OTTO", 0); ok {
		return &Result{"otf", "font/otf"}, nil
	}
	if ok, _ := mStr(tok, "FLIF", 0); ok {
		return &Result{"flif", "image/flif"}, nil
	}
	if ok, _ := mStr(tok, "8BPS", 0); ok {
		return &Result{"psd", "image/vnd.adobe.photoshop"}, nil
	}
	if ok, _ := mStr(tok, "MPCK", 0); ok {
		return &Result{"mpc", "audio/x-musepack"}, nil
	}
	if ok, _ := mStr(tok, "FORM", 0); ok {
		return &Result{"aif", "audio/aiff"}, nil
	}
	if ok, _ := mStr(tok, "icns", 0); ok {
		return &Result{"icns", "image/icns"}, nil
	}
	if ok, _ := m(tok, []byte{0x50, 0x4B, 0x03, 0x04}, 0); ok {
		return detectZip(ctx, tok)
	}
	if ok, _ := mStr(tok, "OggS", 0); ok {
		if err := tok.Skip(4); err != nil {
			return nil, err
		}
		return detectOGG(tok)
	}
	if ok, _ := mStr(tok, "MThd", 0); ok {
		return &Result{"mid", "audio/midi"}, nil
	}
	if ok, _ := mStr(tok, "wOFF", 0); ok {
		ttf, err := m(tok, []byte{0x00, 0x01, 0x00, 0x00}, 4)
		if err != nil {
			return nil, err
		}
		otto, err := mStr(tok, "OTTO", 4)
		if err != nil {
			return nil, err
		}
		if ttf || otto {
			return &Result{"woff", "font/woff"}, nil
		}
	}
	if ok, _ := mStr(tok, "wOF2", 0); ok {
		ttf, err := m(tok, []byte{0x00, 0x01, 0x00, 0x00}, 4)
		if err != nil {
			return nil, err
		}
		otto, err := mStr(tok, "OTTO", 4)
		if err != nil {
			return nil, err
		}
		if ttf || otto {
			return &Result{"woff2", "font/woff2"}, nil
		}
	}
	if ok, _ := m(tok, []byte{0xD4, 0xC3, 0xB2, 0xA1}, 0); ok {
		return &Result{"pcap", "application/vnd.tcpdump.pcap"}, nil
	}
	if ok, _ := m(tok, []byte{0xA1, 0xB2, 0xC3, 0xD4}, 0); ok {
		return &Result{"pcap", "application/vnd.tcpdump.pcap"}, nil
	}
	if ok, _ := mStr(tok, "DSD ", 0); ok {
		return &Result{"dsf", "audio/x-dsf"}, nil
	}
	if ok, _ := mStr(tok, "LZIP", 0); ok {
		return &Result{"lz", "application/x-lzip"}, nil
	}
	if ok, _ := mStr(tok, "fLaC", 0); ok {
		return &Result{"flac", "audio/x-flac"}, nil
	}
	if ok, _ := m(tok, []byte{0x42, 0x50, 0x47, 0xFB}, 0); ok {
		return &Result{"bpg", "image/bpg"}, nil
	}
	if ok, _ := mStr(tok, "wvpk", 0); ok {
		return &Result{"wv", "audio/wavpack"}, nil
	}
	if ok, _ := mStr(tok, "%PDF", 0); ok {
		return detectPDF(tok)
	}
	if ok, _ := m(tok, []byte{0x00, 0x61, 0x73, 0x6D}, 0); ok {
		return &Result{"wasm", "application/wasm"}, nil
	}
	if ok, _ := m(tok, []byte{0x49, 0x49, 0x2A, 0x00}, 0); ok {
		res, err := detectTIFF(tok, binary.LittleEndian)
		if err != nil || res != nil {
			return res, err
		}
	}
	if ok, _ := m(tok, []byte{0x4D, 0x4D, 0x00, 0x2A}, 0); ok {
		res, err := detectTIFF(tok, binary.BigEndian)
		if err != nil || res != nil {
			return res, err
		}
	}
	if ok, _ := mStr(tok, "MAC ", 0); ok {
		return &Result{"ape", "audio/ape"}, nil
	}
	if ok, _ := m(tok, []byte{0x1A, 0x45, 0xDF, 0xA3}, 0); ok {
		return detectEBML(tok)
	}
	if ok, _ := mStr(tok, "SQLi", 0); ok {
		return &Result{"sqlite", "application/x-sqlite3"}, nil
	}
	if ok, _ := m(tok, []byte{0x4E, 0x45, 0x53, 0x1A}, 0); ok {
		return &Result{"nes", "application/x-nintendo-nes-rom"}, nil
	}
	if ok, _ := mStr(tok, "Cr24", 0); ok {
		return &Result{"crx", "application/x-google-chrome-extension"}, nil
	}
	if ok, _ := mStr(tok, "MSCF", 0); ok {
		return &Result{"cab", "application/vnd.ms-cab-compressed"}, nil
	}
	if ok, _ := mStr(tok, "ISc(", 0); ok {
		return &Result{"cab", "application/vnd.ms-cab-compressed"}, nil
	}
	if ok, _ := m(tok, []byte{0xED, 0xAB, 0xEE, 0xDB}, 0); ok {
		return &Result{"rpm", "application/x-rpm"}, nil
	}
	if ok, _ := m(tok, []byte{0xC5, 0xD0, 0xD3, 0xC6}, 0); ok {
		return &Result{"eps", "application/eps"}, nil
	}
	if ok, _ := m(tok, []byte{0x28, 0xB5, 0x2F, 0xFD}, 0); ok {
		return &Result{"zst", "application/zstd"}, nil
	}
	if ok, _ := m(tok, []byte{0x7F, 0x45, 0x4C, 0x46}, 0); ok {
		return &Result{"elf", "application/x-elf"}, nil
	}
	if ok, _ := m(tok, []byte{0x21, 0x42, 0x44, 0x4E}, 0); ok { // little-endian PST signature "!BDN"
		return &Result{"pst", "application/vnd.ms-outlook"}, nil
	}
	if ok, _ := mStr(tok, "PAR1", 0); ok {
		return &Result{"par2", "application/x-par2"}, nil
	}
	if ok, _ := mStr(tok, "PARE", 0); ok {
		return &Result{"par2", "application/x-par2"}, nil
	}
	if ok, _ := mStr(tok, "ttcf", 0); ok {
		return &Result{"ttc", "font/collection"}, nil
	}
	if ok, _ := m(tok, []byte{0xCF, 0xFA, 0xED, 0xFE}, 0); ok {
		return &Result{"macho", "application/x-mach-binary"}, nil
	}
	if ok, _ := m(tok, []byte{0x04, 0x22, 0x4D, 0x18}, 0); ok {
		return &Result{"lz4", "application/x-lz4"}, nil
	}
	if ok, _ := mStr(tok, "regf", 0); ok {
		return &Result{"regf", "application/x-ms-regf"}, nil
	}

	// -- 5-byte arms --

	if ok, _ := m(tok, []byte{0x4F, 0x54, 0x54, 0x4F, 0x00}, 0); ok {
		return &Result{"otf", "font/otf"}, nil
	}
	if ok, _ := mStr(tok, "#!AMR", 0); ok {
		return &Result{"amr", "audio/amr"}, nil
	}
	if ok, _ := mStr(tok, "{\\rtf", 0); ok {
		return &Result{"rtf", "application/rtf"}, nil
	}
	if ok, _ := m(tok, []byte{0x46, 0x4C, 0x56, 0x01}, 0); ok {
		return &Result{"flv", "video/x-flv"}, nil
	}
	if ok, _ := mStr(tok, "IMPM", 0); ok {
		return &Result{"it", "audio/x-it"}, nil
	}
	if ok, err := matchesLZH(tok); err != nil {
		return nil, err
	} else if ok {
		return &Result{"lzh", "application/x-lzh-compressed"}, nil
	}
	if ok, _ := m(tok, []byte{0x00, 0x00, 0x01, 0xBA}, 0); ok {
		if ok, _ := mMask(tok, []byte{0x21}, []byte{0xF1}, 4); ok {
			return &Result{"mpg", "video/MP1S"}, nil
		}
		if ok, _ := mMask(tok, []byte{0x44}, []byte{0xC4}, 4); ok {
			return &Result{"mpg", "video/MP2P"}, nil
		}
	}
	if ok, _ := mStr(tok, "ITSF", 0); ok {
		return &Result{"chm", "application/vnd.ms-htmlhelp"}, nil
	}
	if ok, _ := m(tok, []byte{0xCA, 0xFE, 0xBA, 0xBE}, 0); ok {
		return &Result{"class", "application/java-vm"}, nil
	}
	if ok, _ := mStr(tok, ".RMF", 0); ok {
		return &Result{"rm", "application/vnd.rn-realmedia"}, nil
	}
	if ok, _ := mStr(tok, "DRACO", 0); ok {
		return &Result{"drc", "application/vnd.google.draco"}, nil
	}

	// -- 6-byte arms --

	if ok, _ := m(tok, []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00}, 0); ok {
		return &Result{"xz", "application/x-xz"}, nil
	}
	if ok, _ := mStr(tok, "<?xml ", 0); ok {
		return &Result{"xml", "application/xml"}, nil
	}
	if ok, _ := m(tok, []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}, 0); ok {
		return &Result{"7z", "application/x-7z-compressed"}, nil
	}
	if ok, err := matchesRAR(tok); err != nil {
		return nil, err
	} else if ok {
		return &Result{"rar", "application/x-rar-compressed"}, nil
	}
	if ok, _ := mStr(tok, "solid ", 0); ok {
		return &Result{"stl", "model/stl"}, nil
	}
	if res, err := matchesDWG(tok); err != nil {
		return nil, err
	} else if res != nil {
		return res, nil
	}
	if ok, _ := m(tok, []byte{0x30, 0x37, 0x30, 0x37, 0x30, 0x37}, 0); ok { // "070707"
		return &Result{"cpio", "application/x-cpio"}, nil
	}

	// -- 7-byte arms --

	if ok, _ := mStr(tok, "BLENDER", 0); ok {
		return &Result{"blend", "application/x-blender"}, nil
	}
	if ok, _ := mStr(tok, "!<arch>", 0); ok {
		return detectArArchive(tok)
	}
	if ok, err := matchesWebVTT(tok); err != nil {
		return nil, err
	} else if ok {
		return &Result{"webvtt", "text/vtt"}, nil
	}

	// -- 8-byte arms --

	if ok, _ := m(tok, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, 0); ok {
		if err := tok.Skip(8); err != nil {
			return nil, err
		}
		return detectPNG(tok)
	}
	if ok, _ := m(tok, []byte{0x41, 0x52, 0x52, 0x4F, 0x57, 0x31, 0x00, 0x00}, 0); ok {
		return &Result{"arrow", "application/x-apache-arrow"}, nil
	}
	if ok, _ := m(tok, []byte{0x67, 0x6C, 0x54, 0x46, 0x02, 0x00, 0x00, 0x00}, 0); ok {
		return &Result{"glb", "model/gltf-binary"}, nil
	}
	if ok, err := matchesMOV(tok); err != nil {
		return nil, err
	} else if ok {
		return &Result{"mov", "video/quicktime"}, nil
	}

	// -- 9-byte arms --

	if ok, _ := m(tok, []byte{0x49, 0x49, 0x52, 0x4F, 0x08, 0x00, 0x00, 0x00, 0x18}, 0); ok {
		return &Result{"orf", "image/x-olympus-orf"}, nil
	}
	if ok, _ := mStr(tok, "gimp xcf ", 0); ok {
		return &Result{"xcf", "image/x-xcf"}, nil
	}
	if ok, err := mStr(tok, "ftyp", 4); err != nil {
		return nil, err
	} else if ok {
		if res, err := detectISOBMFF(tok); err != nil {
			return nil, err
		} else if res != nil {
			return res, nil
		}
	}

	// -- 10-byte arms --

	if ok, _ := mStr(tok, "REGEDIT4\r\n", 0); ok {
		return &Result{"reg", "text/plain"}, nil
	}

	// -- 12-byte arms --

	if ok, err := mStr(tok, "RIFF", 0); err != nil {
		return nil, err
	} else if ok {
		if res, err := matchesRIFF(tok); err != nil {
			return nil, err
		} else if res != nil {
			return res, nil
		}
	}
	if ok, _ := m(tok, []byte{0x49, 0x49, 0x55, 0x00, 0x18, 0x00, 0x00, 0x00, 0x88, 0xE7, 0x74, 0xD8}, 0); ok {
		return &Result{"rw2", "image/x-panasonic-rw2"}, nil
	}
	if ok, _ := m(tok, []byte{0x30, 0x26, 0xB2, 0x75, 0x8E, 0x66, 0xCF, 0x11, 0xA6, 0xD9}, 0); ok {
		return detectASF(tok)
	}
	if ok, _ := m(tok, []byte{0xAB, 0x4B, 0x54, 0x58, 0x20, 0x31, 0x31, 0xBB, 0x0D, 0x0A, 0x1A, 0x0A}, 0); ok {
		return &Result{"ktx", "image/ktx"}, nil
	}
	if ok, err := matchesMIE(tok); err != nil {
		return nil, err
	} else if ok {
		return &Result{"mie", "application/x-mie"}, nil
	}
	if ok, _ := m(tok, []byte{0x27, 0x0A, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 2); ok {
		return &Result{"shp", "application/x-esri-shape"}, nil
	}
	if ok, _ := m(tok, []byte{0xFF, 0x4F, 0xFF, 0x51}, 0); ok {
		return &Result{"jp2", "image/jp2"}, nil // raw J2C codestream, catalogued under jp2
	}
	if ok, _ := m(tok, []byte{0x00, 0x00, 0x00, 0x0C, 0x6A, 0x50, 0x20, 0x20, 0x0D, 0x0A, 0x87, 0x0A}, 0); ok {
		if res, err := detectJP2Family(tok); err != nil {
			return nil, err
		} else if res != nil {
			return res, nil
		}
		return nil, nil
	}
	if ok, _ := m(tok, []byte{0xFF, 0x0A}, 0); ok {
		return &Result{"jxl", "image/jxl"}, nil
	}
	if ok, _ := m(tok, []byte{0x00, 0x00, 0x00, 0x0C, 0x4A, 0x58, 0x4C, 0x20, 0x0D, 0x0A, 0x87, 0x0A}, 0); ok {
		return &Result{"jxl", "image/jxl"}, nil
	}
	if ok, _ := m(tok, []byte{0xFE, 0xFF, 0x00, 0x3C, 0x00, 0x3F, 0x00, 0x78, 0x00, 0x6D, 0x00, 0x6C}, 0); ok {
		return &Result{"xml", "application/xml"}, nil
	}
	if ok, _ := m(tok, []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, 0); ok {
		return &Result{"cfb", "application/x-cfb"}, nil
	}

	// -- Expand sample to 256 bytes --

	if _, err := tok.Peek(256, nil); err != nil {
		return nil, err
	}

	if ok, _ := m(tok, []byte("acsp"), 36); ok {
		return &Result{"icc", "application/vnd.iccprofile"}, nil
	}
	if ok, err := matchesACE(tok); err != nil {
		return nil, err
	} else if ok {
		return &Result{"ace", "application/x-ace-compressed"}, nil
	}
	if ok, _ := mStr(tok, "BEGIN:VCARD", 0); ok {
		return &Result{"vcf", "text/vcard"}, nil
	}
	if ok, _ := mStr(tok, "BEGIN:VCALENDAR", 0); ok {
		return &Result{"ics", "text/calendar"}, nil
	}
	if ok, _ := mStr(tok, "FUJIFILMCCD-RAW", 0); ok {
		return &Result{"raf", "image/x-fujifilm-raf"}, nil
	}
	if ok, _ := mStr(tok, "Extended Module:", 0); ok {
		return &Result{"xm", "audio/x-xm"}, nil
	}
	if ok, _ := mStr(tok, "Creative Voice File", 0); ok {
		return &Result{"voc", "audio/x-voc"}, nil
	}
	if res, err := matchesAsar(tok); err != nil {
		return nil, err
	} else if res != nil {
		return res, nil
	}
	if ok, _ := m(tok, []byte{0x06, 0x0E, 0x2B, 0x34, 0x02, 0x05, 0x01, 0x01, 0x0D, 0x01, 0x02, 0x01, 0x01, 0x02}, 0); ok {
		return &Result{"mxf", "application/mxf"}, nil
	}
	if ok, _ := mStr(tok, "SCRM", 44); ok {
		return &Result{"s3m", "audio/x-s3m"}, nil
	}
	if ok, err := matchesRawMPEGTS(tok); err != nil {
		return nil, err
	} else if ok {
		return &Result{"mts", "video/mp2t"}, nil
	}
	if ok, err := matchesBDAVMPEGTS(tok); err != nil {
		return nil, err
	} else if ok {
		return &Result{"mts", "video/mp2t"}, nil
	}
	if ok, _ := mStr(tok, "BOOKMOBI", 60); ok {
		return &Result{"mobi", "application/x-mobipocket-ebook"}, nil
	}
	if ok, _ := mStr(tok, "DICM", 128); ok {
		return &Result{"dcm", "application/dicom"}, nil
	}
	if ok, _ := m(tok, []byte{0x4C, 0x00, 0x00, 0x00, 0x01, 0x14, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46}, 0); ok {
		return &Result{"lnk", "application/x.ms.shortcut"}, nil
	}
	if ok, _ := m(tok, []byte{0x62, 0x6F, 0x6F, 0x6B, 0x00, 0x00, 0x00, 0x00, 0x6D, 0x61, 0x72, 0x6B, 0x00, 0x00, 0x00, 0x00}, 0); ok {
		return &Result{"alias", "application/x.apple.alias"}, nil
	}
	if ok, err := matchesFBX(tok); err != nil {
		return nil, err
	} else if ok {
		return &Result{"fbx", "application/fbx"}, nil
	}
	if ok, err := matchesEOT(tok); err != nil {
		return nil, err
	} else if ok {
		return &Result{"eot", "application/vnd.ms-fontobject"}, nil
	}
	if ok, _ := m(tok, []byte{0x06, 0x06, 0xED, 0xF5, 0xD8, 0x1D, 0x46, 0xE5, 0xBD, 0x31, 0xEF, 0xE7, 0xFE, 0x74, 0xB7, 0x1D}, 0); ok {
		return &Result{"indd", "application/x-indesign"}, nil
	}

	// -- Expand sample to 512 bytes --

	if _, err := tok.Peek(512, nil); err != nil {
		return nil, err
	}

	if tarHeaderChecksumMatches(tok, 0) {
		return &Result{"tar", "application/x-tar"}, nil
	}
	if ok, _ := m(tok, []byte{0xFF, 0xFE, 0xFF, 0x0E, 0x53, 0x00, 0x6B, 0x00, 0x65, 0x00, 0x74, 0x00, 0x63, 0x00, 0x68, 0x00, 0x55, 0x00, 0x70, 0x00, 0x20, 0x00, 0x4D, 0x00, 0x6F, 0x00, 0x64, 0x00, 0x65, 0x00, 0x6C, 0x00}, 0); ok {
		return &Result{"skp", "application/vnd.sketchup.skp"}, nil
	}
	if ok, _ := mStr(tok, "-----BEGIN PGP MESSAGE-----", 0); ok {
		return &Result{"pgp", "application/pgp-encrypted"}, nil
	}
	if ok, _ := mStr(tok, "Windows Registry Editor Version 5.00", 0); ok {
		return &Result{"reg", "text/plain"}, nil
	}

	return nil, nil
}

func detectID3(ctx context.Context, tok *Tokenizer) (*Result, error) {
	// Skip "ID3" + the rest of the fixed header, up to the sync-safe length.
	read, err := tok.Read(4, &IOOpts{Offset: 6, MayBeLess: true})
	if err != nil {
		return nil, err
	}
	if len(read) != 4 {
		return nil, nil
	}
	headerLen := id3SyncSafeUint32(read)
	if headerLen > math.MaxInt32 {
		return nil, nil
	}

	read, err = tok.Read(int(headerLen), nil)
	if err != nil {
		return nil, err
	}
	if len(read) < int(headerLen) {
		// EOF before the whole header arrived: lenient fallback, per spec
		// scenario 5.
		return &Result{"mp3", "audio/mpeg"}, nil
	}

	// Recurse into the full pipeline so custom detectors see the stream
	// beneath the ID3v2 wrapper too.
	return Detect(ctx, tok, configFrom(ctx))
}

func detectPDF(tok *Tokenizer) (*Result, error) {
	read, err := tok.Read(10*1024*1024, &IOOpts{Offset: 1350, MayBeLess: true})
	if err != nil {
		return nil, err
	}
	if bytes.Contains(read, []byte("AIPrivateData")) {
		return &Result{"ai", "application/postscript"}, nil
	}
	return &Result{"pdf", "application/pdf"}, nil
}

var lzhVariants = []string{"-lh0-", "-lh1-", "-lh2-", "-lh3-", "-lh4-", "-lh5-", "-lh6-", "-lh7-", "-lzs-", "-lz4-", "-lz5-", "-lhd-"}

func matchesLZH(tok *Tokenizer) (bool, error) {
	for _, v := range lzhVariants {
		ok, err := mStr(tok, v, 2)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func matchesRAR(tok *Tokenizer) (bool, error) {
	sig, err := tok.Peek(6, nil)
	if err != nil {
		return false, err
	}
	if !check(sig, []byte{0x52, 0x61, 0x72, 0x21, 0x1A, 0x07}, 0, nil) {
		return false, nil
	}
	b6, err := tok.Peek(1, &IOOpts{Offset: 6, MayBeLess: true})
	if err != nil {
		return false, err
	}
	return len(b6) == 1 && (b6[0] == 0x00 || b6[0] == 0x01), nil
}

// matchesDWG resolves the Open Question in spec §9: the four ASCII bytes
// after "AC" parse as a base-10 integer in [1000, 1050].
func matchesDWG(tok *Tokenizer) (*Result, error) {
	ok, err := mStr(tok, "AC", 0)
	if err != nil || !ok {
		return nil, err
	}
	read, err := tok.Peek(4, &IOOpts{Offset: 2, MayBeLess: true})
	if err != nil {
		return nil, err
	}
	if len(read) != 4 {
		return nil, nil
	}
	n, err := strconv.Atoi(string(read))
	if err != nil || n < 1000 || n > 1050 {
		return nil, nil
	}
	return &Result{"dwg", "image/vnd.dwg"}, nil
}

func detectArArchive(tok *Tokenizer) (*Result, error) {
	read, err := tok.Read(13, &IOOpts{Offset: 8})
	if err != nil {
		return nil, err
	}
	if string(read) == "debian-binary" {
		return &Result{"deb", "application/x-deb"}, nil
	}
	return &Result{"ar", "application/x-unix-archive"}, nil
}

func matchesWebVTT(tok *Tokenizer) (bool, error) {
	ok, err := mStr(tok, "WEBVTT", 0)
	if err != nil || !ok {
		return false, err
	}
	trailer, err := tok.Peek(1, &IOOpts{Offset: 6, MayBeLess: true})
	if err != nil {
		return false, err
	}
	if len(trailer) == 0 {
		return true, nil // EOF right after the magic also counts
	}
	switch trailer[0] {
	case '\n', '\r', '\t', ' ':
		return true, nil
	default:
		return false, nil
	}
}

func matchesMOV(tok *Tokenizer) (bool, error) {
	for _, tag := range [][]byte{[]byte("free"), []byte("mdat"), []byte("moov"), []byte("wide")} {
		ok, err := m(tok, tag, 4)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func matchesRIFF(tok *Tokenizer) (*Result, error) {
	if ok, err := m(tok, []byte("WEBP"), 8); err != nil || ok {
		if ok {
			return &Result{"webp", "image/webp"}, nil
		}
		return nil, err
	}
	if ok, err := m(tok, []byte("AVI "), 8); err != nil || ok {
		if ok {
			return &Result{"avi", "video/vnd.avi"}, nil
		}
		return nil, err
	}
	if ok, err := m(tok, []byte("WAVE"), 8); err != nil || ok {
		if ok {
			return &Result{"wav", "audio/vnd.wave"}, nil
		}
		return nil, err
	}
	if ok, err := m(tok, []byte("QLCM"), 8); err != nil || ok {
		if ok {
			return &Result{"qcp", "audio/qcelp"}, nil
		}
		return nil, err
	}
	return nil, nil
}

func matchesMIE(tok *Tokenizer) (bool, error) {
	var leOK, beOK bool
	var err error
	if leOK, err = m(tok, []byte{0x7E, 0x10, 0x04}, 0); err != nil {
		return false, err
	}
	if !leOK {
		if beOK, err = m(tok, []byte{0x7E, 0x18, 0x04}, 0); err != nil {
			return false, err
		}
	}
	if !leOK && !beOK {
		return false, nil
	}
	return mStr(tok, "0MIE", 4)
}

func matchesACE(tok *Tokenizer) (bool, error) {
	if ok, err := mStr(tok, "**ACE**", 7); err != nil || ok {
		return ok, err
	}
	return mStr(tok, "**ACE**", 12)
}

func matchesFBX(tok *Tokenizer) (bool, error) {
	return mStr(tok, "Kaydara FBX Binary", 0)
}

func matchesEOT(tok *Tokenizer) (bool, error) {
	ok, err := m(tok, []byte{0x4C, 0x50}, 34)
	if err != nil || !ok {
		return false, err
	}
	for _, sig := range [][]byte{
		{0x00, 0x00, 0x01},
		{0x01, 0x00, 0x02},
		{0x02, 0x00, 0x02},
	} {
		ok, err := m(tok, sig, 8)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func matchesRawMPEGTS(tok *Tokenizer) (bool, error) {
	a, err := m(tok, []byte{0x47}, 0)
	if err != nil || !a {
		return false, err
	}
	return m(tok, []byte{0x47}, 188)
}

func matchesBDAVMPEGTS(tok *Tokenizer) (bool, error) {
	a, err := m(tok, []byte{0x47}, 4)
	if err != nil || !a {
		return false, err
	}
	return m(tok, []byte{0x47}, 196)
}

// matchesAsar implements the Pickle/ASAR rough check: a 4-byte little-endian
// length, then (skipping 8 bytes of Pickle framing) a 4-byte little-endian
// JSON header length, whose decoded JSON carries a top-level "files" key.
func matchesAsar(tok *Tokenizer) (*Result, error) {
	ok, err := m(tok, []byte{0x04, 0x00, 0x00, 0x00}, 0)
	if err != nil || !ok {
		return nil, err
	}
	jsonSize, err := PeekUint[uint32](tok, binary.LittleEndian, &IOOpts{Offset: 12})
	if err != nil {
		return nil, nil
	}
	if jsonSize <= 12 || jsonSize > math.MaxInt32 {
		return nil, nil
	}
	read, err := tok.Peek(int(jsonSize), &IOOpts{Offset: 16})
	if err != nil {
		return nil, nil
	}
	if len(read) != int(jsonSize) {
		return nil, nil
	}
	var doc map[string]any
	if err := json.Unmarshal(read, &doc); err != nil {
		return nil, nil
	}
	if _, ok := doc["files"]; !ok {
		return nil, nil
	}
	return &Result{"asar", "application/x-asar"}, nil
}

func tarHeaderChecksumMatches(tok *Tokenizer, offset int) bool {
	read, err := tok.Peek(512, &IOOpts{Offset: offset})
	if err != nil || len(read) < 512 {
		return false
	}

	start, end := 148, 154
	if idx := bytes.IndexByte(read[start:end], 0x00); idx >= 0 {
		end = start + idx
	}
	declared, err := strconv.ParseUint(strings.TrimSpace(string(read[start:end])), 8, 64)
	if err != nil {
		return false
	}

	var sum uint64 = 8 * 0x20
	for i := 0; i < 148; i++ {
		sum += uint64(read[i])
	}
	for i := 156; i < 512; i++ {
		sum += uint64(read[i])
	}

	return declared == sum
}
