package renderer

import "errors"

var (
	// ErrInvalidSampleCount means the anti-aliasing sample count is negative.
	ErrInvalidSampleCount = errors.New("renderer: anti-aliasing samples must be positive")

	// ErrInvalidWorkerCount means the worker count is negative.
	ErrInvalidWorkerCount = errors.New("renderer: worker count must be positive")

	// ErrInvalidPathOptions means the path tracer knobs are out of range.
	ErrInvalidPathOptions = errors.New("renderer: rays per bounce and max depth must be positive")

	// ErrMissingCamera means the scene defines no camera and no default was
	// installed.
	ErrMissingCamera = errors.New("renderer: no camera defined")
)
