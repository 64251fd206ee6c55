package renderer

// Options carries every numeric knob of a render. The zero value is not
// usable; call Validate to apply defaults and reject nonsense.
type Options struct {
	// Frame geometry overrides. Zero keeps the camera's own values.
	Width       int
	AspectRatio float32

	// Samples per pixel used for anti-aliasing. A perfect square enables
	// stratified sampling.
	AASamples int

	// Path tracer knobs: rays per bounce, maximum recursion depth and the
	// depth where Russian roulette starts.
	NumRays              int
	MaxDepth             int
	RussianRouletteLimit int

	// PCG initialization.
	Seed     uint64
	Sequence uint64

	// Number of row blocks rendered concurrently. 1 reproduces the
	// sequential pixel order and random stream exactly.
	Workers int
}

// DefaultOptions returns the knob values used when the CLI does not override
// them.
func DefaultOptions() Options {
	return Options{
		AASamples:            4,
		NumRays:              3,
		MaxDepth:             5,
		RussianRouletteLimit: 3,
		Seed:                 42,
		Sequence:             54,
		Workers:              1,
	}
}

// Validate checks the options, filling defaults for unset fields.
func (o *Options) Validate() error {
	if o.AASamples == 0 {
		o.AASamples = 1
	}
	if o.AASamples < 0 {
		return ErrInvalidSampleCount
	}
	if o.Workers == 0 {
		o.Workers = 1
	}
	if o.Workers < 0 {
		return ErrInvalidWorkerCount
	}
	if o.NumRays <= 0 || o.MaxDepth <= 0 {
		return ErrInvalidPathOptions
	}
	if o.RussianRouletteLimit <= 0 || o.RussianRouletteLimit >= o.MaxDepth {
		// a non-positive limit or one at or past MaxDepth disables the roulette
		o.RussianRouletteLimit = o.MaxDepth + 1
	}
	return nil
}
