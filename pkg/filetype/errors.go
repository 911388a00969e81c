package filetype

import "github.com/pkg/errors"

// Sentinel errors surfaced by the tokenizer and the detectors that consume it.
var (
	// ErrEndOfSource is returned when a read required more bytes than the
	// source could provide and the caller did not opt into a short read.
	ErrEndOfSource = errors.New("end of source")

	// ErrAborted is returned when the cancellation signal observed by the
	// tokenizer fired during an I/O operation.
	ErrAborted = errors.New("aborted")

	// ErrMalformedInput is raised by the EBML readers on a structurally
	// impossible value (a field with no length marker, an element length
	// beyond int32, a truncated DocType) when the tokenizer itself did not
	// already signal a structural error; detectEBML reports it as "unknown".
	// The PNG probe reports an impossible chunk length as "unknown" directly.
	ErrMalformedInput = errors.New("malformed input")

	// ErrInvalidArgument is returned synchronously by buffer-input
	// functions when the supplied input is not a contiguous byte region.
	ErrInvalidArgument = errors.New("invalid argument")
)

// wrapf attaches context to a sentinel error without losing errors.Is/As
// compatibility, mirroring how the daemon-side code in sahib/brig annotates
// its own sentinel errors before they cross a package boundary.
func wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, format, args...)
}
