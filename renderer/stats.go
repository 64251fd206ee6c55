package renderer

import "time"

// BlockStats describes one rendered row block.
type BlockStats struct {
	// First row and number of rows of the block.
	Y      int
	Height int

	// Wall-clock time spent rendering the block.
	RenderTime time.Duration
}

// FrameStats aggregates the per-block statistics of a frame.
type FrameStats struct {
	Blocks     []BlockStats
	RenderTime time.Duration
}
