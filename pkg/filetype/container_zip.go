package filetype

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"math"
	"regexp"
	"strings"

	"github.com/klauspost/compress/flate"
)

// mimeToResult is the closed mapping from archive-embedded media-type
// strings (OpenDocument's "mimetype" entry, OOXML's [Content_Types].xml
// declarations) to catalogue entries, per spec §4.9/§9. The macro-enabled
// documents (docm, pptm, xlsm) carry a ".12" suffix in their canonical MIME,
// matching how Office itself labels them.
var mimeToResult = map[string]Result{
	"application/epub+zip":                                  {"epub", "application/epub+zip"},
	"application/vnd.oasis.opendocument.text":                {"odt", "application/vnd.oasis.opendocument.text"},
	"application/vnd.oasis.opendocument.spreadsheet":         {"ods", "application/vnd.oasis.opendocument.spreadsheet"},
	"application/vnd.oasis.opendocument.presentation":        {"odp", "application/vnd.oasis.opendocument.presentation"},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml":     {"docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
	"application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml":    {"pptx", "application/vnd.openxmlformats-officedocument.presentationml.presentation"},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml":            {"xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	"application/vnd.ms-word.document.macroEnabled.main+xml":      {"docm", "application/vnd.ms-word.document.macroEnabled.12"},
	"application/vnd.ms-powerpoint.presentation.macroEnabled.main+xml": {"pptm", "application/vnd.ms-powerpoint.presentation.macroEnabled.12"},
	"application/vnd.ms-excel.sheet.macroEnabled.main+xml":         {"xlsm", "application/vnd.ms-excel.sheet.macroEnabled.12"},
}

var classesDexPattern = regexp.MustCompile(`^classes\d*\.dex$`)

// detectZip walks a ZIP local-file-header stream entry by entry, per spec
// §4.5. Detection never reads the central directory: the source may be
// unbounded, so the walk has to work from the front the way the teacher's
// own port does.
func detectZip(ctx context.Context, tok *Tokenizer) (*Result, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, wrapf(ErrAborted, "zip walk: %v", err)
		}

		read, err := tok.Read(30, &IOOpts{Offset: 4, MayBeLess: true})
		if err != nil {
			return nil, err
		}
		if len(read) < 30 {
			break
		}

		compressionMethod := binary.LittleEndian.Uint16(read[4:6])
		compressedSize := binary.LittleEndian.Uint32(read[18:22])
		uncompressedSize := binary.LittleEndian.Uint32(read[22:26])
		filenameLength := binary.LittleEndian.Uint16(read[26:28])
		extraFieldLength := binary.LittleEndian.Uint16(read[28:30])

		read, err = tok.Read(int(filenameLength), nil)
		if err != nil {
			return nil, err
		}
		if int(filenameLength) > len(read) {
			break
		}
		filename := string(read)
		if err := tok.Skip(int(extraFieldLength)); err != nil {
			return nil, err
		}

		if filename == "META-INF/mozilla.rsa" {
			return &Result{"xpi", "application/x-xpinstall"}, nil
		}
		if filename == "META-INF/MANIFEST.MF" {
			return &Result{"jar", "application/java-archive"}, nil
		}
		if classesDexPattern.MatchString(baseName(filename)) {
			return &Result{"apk", "application/vnd.android.package-archive"}, nil
		}
		if strings.HasPrefix(filename, "3D/") || strings.HasPrefix(filename, ".model") {
			return &Result{"3mf", "model/3mf"}, nil
		}

		if filename == "mimetype" && compressedSize == uncompressedSize {
			read, err = tok.Read(int(compressedSize), nil)
			if err != nil {
				return nil, err
			}
			if res, ok := mimeToResult[strings.TrimSpace(string(read))]; ok {
				return &res, nil
			}
		}

		if filename == "[Content_Types].xml" {
			body, err := readZipEntryBody(tok, compressionMethod, compressedSize)
			if err != nil {
				return nil, err
			}
			if body != nil {
				if res := resultFromContentTypes(body); res != nil {
					return res, nil
				}
			}
			continue
		}

		// Try to find the next local file header manually when the current
		// one is corrupted (compressedSize == 0 but the entry wasn't empty).
		if compressedSize == 0 {
			if err := scanForNextLocalHeader(tok); err != nil {
				return nil, err
			}
			continue
		}

		if compressedSize > math.MaxInt32 {
			return nil, nil
		}
		if err := tok.Skip(int(compressedSize)); err != nil {
			return nil, err
		}
	}

	return &Result{"zip", "application/zip"}, nil
}

// readZipEntryBody returns the entry's bytes already consumed from the
// tokenizer, inflating them first when the entry was DEFLATEd. compression
// method 0 is "stored" (no compression); 8 is "deflate", the only other
// method archives relevant to this catalogue use.
func readZipEntryBody(tok *Tokenizer, method uint16, compressedSize uint32) ([]byte, error) {
	if compressedSize > math.MaxInt32 {
		return nil, nil
	}
	raw, err := tok.Read(int(compressedSize), nil)
	if err != nil {
		return nil, err
	}
	if len(raw) < int(compressedSize) {
		return nil, nil
	}
	if method == 0 {
		return raw, nil
	}
	if method != 8 {
		return nil, nil
	}
	fr := flate.NewReader(bytes.NewReader(raw))
	defer fr.Close()
	out, err := io.ReadAll(fr)
	if err != nil {
		// A truncated/garbled deflate stream just means this entry can't
		// help us decide the format; fall through to "unknown" for this arm.
		return nil, nil
	}
	return out, nil
}

// contentTypeOverridePattern captures the quoted media-type string preceding
// ".main+xml\"" inside [Content_Types].xml's per the spec §4.5 recipe.
var contentTypeOverridePattern = regexp.MustCompile(`"([^"]+)\.main\+xml"`)

func resultFromContentTypes(body []byte) *Result {
	matches := contentTypeOverridePattern.FindAllSubmatch(body, -1)
	if len(matches) > 0 {
		last := matches[len(matches)-1]
		if res, ok := mimeToResult[string(last[1])+".main+xml"]; ok {
			return &res
		}
	}
	if bytes.Contains(body, []byte("model/3mf")) {
		return &Result{"3mf", "model/3mf"}
	}
	return nil
}

func baseName(filename string) string {
	if idx := strings.LastIndexByte(filename, '/'); idx >= 0 {
		return filename[idx+1:]
	}
	return filename
}

// scanForNextLocalHeader advances the tokenizer to the next ZIP local file
// header signature, used when an entry's declared compressedSize is zero but
// the walk hasn't reached EOF — a sign the header itself was corrupted.
func scanForNextLocalHeader(tok *Tokenizer) error {
	sig := []byte{0x50, 0x4B, 0x03, 0x04}
	for {
		read, err := tok.Read(4000, nil)
		if err != nil {
			return err
		}
		if len(read) == 0 {
			return nil
		}
		idx := indexOf(read, sig)
		if idx >= 0 {
			// rewind to the signature so the outer loop re-reads it as a
			// fresh entry header.
			return tok.Skip(-(len(read) - idx))
		}
	}
}
