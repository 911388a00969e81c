package filetype

import "context"

// Result is the {extension, media-type} pair a detector produces. It is
// immutable once returned.
type Result struct {
	Ext  string
	MIME string
}

// Detector is the duck-typed hook custom detectors implement, per spec §4.8
// / §9: identity is the ID string, Detect is given the tokenizer and
// whatever the previous detector in the pipeline produced (always nil today,
// reserved for forward compatibility).
type Detector interface {
	ID() string
	Detect(ctx context.Context, tok *Tokenizer, prior *Result) (*Result, error)
}

// Config carries the knobs spec §3 defines. The zero value is the documented
// default: no offset tolerance, no custom detectors, a 4100-byte sample.
type Config struct {
	// MPEGOffsetTolerance bounds how many bytes past nominal offset 0 the
	// imprecise MPEG audio sync scan will search.
	MPEGOffsetTolerance uint
	// CustomDetectors run ahead of the two built-ins, in order.
	CustomDetectors []Detector
	// SampleSize is the prefix length buffered for the transparent
	// passthrough stream (see NewDetectedStream). Detection itself always grows
	// the tokenizer's buffer on demand regardless of this value.
	SampleSize int
}

const defaultSampleSize = 4100

func (c Config) sampleSize() int {
	if c.SampleSize > 0 {
		return c.SampleSize
	}
	return defaultSampleSize
}

type configKey struct{}

// withConfig attaches cfg to ctx so nested recursions (ID3v2 skip, gzip→tar
// descent, the imprecise detector's offset tolerance) can see the knobs the
// top-level Detect call was given without threading Config through every
// Detector.Detect signature.
func withConfig(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

func configFrom(ctx context.Context) Config {
	if cfg, ok := ctx.Value(configKey{}).(Config); ok {
		return cfg
	}
	return Config{}
}

// builtinDetectors returns the two always-present detectors, "core" then
// "core.imprecise", in pipeline order.
func builtinDetectors() []Detector {
	return []Detector{confidentDetector{}, impreciseDetector{}}
}

// Detect runs the detection pipeline per spec §4.8: user-supplied detectors
// first, then the confident battery, then the imprecise fallback. The first
// non-nil result wins. If a detector consumes bytes from tok without
// producing a result, the pipeline halts there and reports "unknown" rather
// than letting a later detector reinterpret a partially-consumed source.
func Detect(ctx context.Context, tok *Tokenizer, cfg Config) (*Result, error) {
	ctx = withConfig(ctx, cfg)
	p0 := tok.Position()

	detectors := make([]Detector, 0, len(cfg.CustomDetectors)+2)
	detectors = append(detectors, cfg.CustomDetectors...)
	detectors = append(detectors, builtinDetectors()...)

	for _, d := range detectors {
		res, err := d.Detect(ctx, tok, nil)
		if err != nil {
			return nil, err
		}
		if res != nil {
			return res, nil
		}
		if tok.Position() != p0 {
			return nil, nil
		}
	}

	return nil, nil
}
