package filetype

import "context"

// ParseOpts configures a single façade call, per spec §6's documented
// configuration surface.
type ParseOpts struct {
	// MPEGOffsetTolerance bounds the imprecise detector's MPEG audio sync
	// scan; meaningful range [0, 255], default 0.
	MPEGOffsetTolerance uint
	// CustomDetectors run ahead of the built-in confident/imprecise pair.
	CustomDetectors []Detector
	// MaxReadBytes is the prefix length buffered for the transparent
	// passthrough stream (NewDetectedStream); default 4100. Named MaxReadBytes to
	// match the teacher's own gin-file-upload example call site.
	MaxReadBytes int
	// Context is observed by the tokenizer's I/O; defaults to
	// context.Background when nil.
	Context context.Context
}

func (o ParseOpts) config() Config {
	return Config{
		MPEGOffsetTolerance: o.MPEGOffsetTolerance,
		CustomDetectors:     o.CustomDetectors,
		SampleSize:          o.MaxReadBytes,
	}
}

func (o ParseOpts) ctx() context.Context {
	if o.Context != nil {
		return o.Context
	}
	return context.Background()
}
