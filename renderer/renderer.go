// Package renderer drives the pixel loop: it samples every pixel of the
// camera's image with a tracing strategy, optionally splitting the frame into
// row blocks rendered concurrently.
package renderer

import (
	"math"
	"sync"
	"time"

	"github.com/Enrico-Carissimi/RayTracer/log"
	"github.com/Enrico-Carissimi/RayTracer/sampler"
	"github.com/Enrico-Carissimi/RayTracer/scene"
	"github.com/Enrico-Carissimi/RayTracer/tracer"
	"github.com/Enrico-Carissimi/RayTracer/types"
)

var logger = log.New("renderer")

// TraceFactory builds a tracing strategy bound to a random stream. Each row
// block gets its own stream, so factories must not share mutable state
// between the traces they return.
type TraceFactory func(pcg *sampler.PCG) tracer.Trace

// Renderer owns a camera and fills its image buffer.
type Renderer struct {
	camera *scene.Camera
	opts   Options
}

// Create a renderer. The options are validated and frame overrides applied to
// the camera.
func New(camera *scene.Camera, opts Options) (*Renderer, error) {
	if camera == nil {
		return nil, ErrMissingCamera
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Width > 0 || opts.AspectRatio > 0 {
		camera.Resize(opts.Width, opts.AspectRatio)
	}
	return &Renderer{camera: camera, opts: opts}, nil
}

// block is the unit of work assigned to one worker: a run of full rows and
// the random stream consumed while rendering them.
type block struct {
	y, height int
	pcg       *sampler.PCG
}

// Split the frame into one block per worker. Block seeds derive from the
// first row, so a frame renders identically for a fixed worker count.
func (r *Renderer) scheduleBlocks() []block {
	workers := r.opts.Workers
	if workers > r.camera.Height {
		workers = r.camera.Height
	}

	blocks := make([]block, 0, workers)
	rowsPerBlock := r.camera.Height / workers

	y := 0
	for i := 0; i < workers; i++ {
		height := rowsPerBlock
		if i == workers-1 {
			height = r.camera.Height - y // the last block takes the remainder
		}
		blocks = append(blocks, block{
			y:      y,
			height: height,
			pcg:    sampler.NewPCG(r.opts.Seed, r.opts.Sequence+uint64(y)),
		})
		y += height
	}
	return blocks
}

// Render fills the camera's image. With a single worker the pixel order and
// random stream are exactly the sequential ones; more workers trade that
// reproducibility for speed, each block owning a stream seeded from its first
// row.
func (r *Renderer) Render(makeTrace TraceFactory) (*FrameStats, error) {
	start := time.Now()

	blocks := r.scheduleBlocks()
	stats := &FrameStats{Blocks: make([]BlockStats, len(blocks))}

	if len(blocks) == 1 {
		r.camera.Pcg = blocks[0].pcg // the camera owns the sequential stream
		if err := r.renderBlock(blocks[0], makeTrace(blocks[0].pcg), &stats.Blocks[0]); err != nil {
			return nil, err
		}
	} else {
		var wg sync.WaitGroup
		errs := make(chan error, len(blocks))

		for i, b := range blocks {
			wg.Add(1)
			go func(i int, b block) {
				defer wg.Done()
				if err := r.renderBlock(b, makeTrace(b.pcg), &stats.Blocks[i]); err != nil {
					errs <- err
				}
			}(i, b)
		}

		wg.Wait()
		close(errs)
		if err := <-errs; err != nil {
			return nil, err
		}
	}

	stats.RenderTime = time.Since(start)
	logger.Noticef("rendered %d x %d frame in %s", r.camera.Width, r.camera.Height, stats.RenderTime)
	return stats, nil
}

func (r *Renderer) renderBlock(b block, trace tracer.Trace, stats *BlockStats) error {
	start := time.Now()
	lastFlush := start

	aaSamplesRoot := int(math.Round(math.Sqrt(float64(r.opts.AASamples))))
	stratified := aaSamplesRoot*aaSamplesRoot == r.opts.AASamples

	for j := b.y; j < b.y+b.height; j++ {
		if time.Since(lastFlush) > 500*time.Millisecond {
			logger.Infof("drawing row %d/%d", j+1, r.camera.Height)
			lastFlush = time.Now()
		}

		for i := 0; i < r.camera.Width; i++ {
			var color types.Color
			switch {
			case r.opts.AASamples == 1:
				color = trace(r.camera.FireRay(i, j, 0.5, 0.5))
			case stratified:
				color = r.stratifiedSampling(i, j, aaSamplesRoot, trace, b.pcg)
			default:
				color = r.uniformSampling(i, j, trace, b.pcg)
			}
			if err := r.camera.Image.SetPixel(i, j, color); err != nil {
				return err
			}
		}
	}

	stats.Y = b.y
	stats.Height = b.height
	stats.RenderTime = time.Since(start)
	return nil
}

// uniformSampling averages AASamples rays jittered anywhere in the pixel.
func (r *Renderer) uniformSampling(i, j int, trace tracer.Trace, pcg *sampler.PCG) types.Color {
	var sum types.Color
	for s := 0; s < r.opts.AASamples; s++ {
		sum = sum.Add(trace(r.camera.FireRay(i, j, pcg.Random(), pcg.Random())))
	}
	return sum.Mul(1 / float32(r.opts.AASamples))
}

// stratifiedSampling splits the pixel into a side x side grid and jitters one
// ray per cell, which reduces variance over plain uniform jitter.
func (r *Renderer) stratifiedSampling(i, j, side int, trace tracer.Trace, pcg *sampler.PCG) types.Color {
	var sum types.Color
	for jPixel := 0; jPixel < side; jPixel++ {
		for iPixel := 0; iPixel < side; iPixel++ {
			uPixel := (float32(iPixel) + pcg.Random()) / float32(side)
			vPixel := (float32(jPixel) + pcg.Random()) / float32(side)
			sum = sum.Add(trace(r.camera.FireRay(i, j, uPixel, vPixel)))
		}
	}
	return sum.Mul(1 / float32(side*side))
}
