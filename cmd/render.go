package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Enrico-Carissimi/RayTracer/renderer"
	"github.com/Enrico-Carissimi/RayTracer/sampler"
	"github.com/Enrico-Carissimi/RayTracer/scene"
	"github.com/Enrico-Carissimi/RayTracer/scene/reader"
	"github.com/Enrico-Carissimi/RayTracer/tracer"
	"github.com/Enrico-Carissimi/RayTracer/types"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Render parses a scene description and renders it with the selected
// algorithm, writing both the raw PFM frame and the tone-mapped LDR image.
func Render(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	variables, err := parseFloatOverrides(ctx.StringSlice("float"))
	if err != nil {
		return err
	}

	parsed, err := reader.ReadSceneFile(ctx.Args().First(), variables)
	if err != nil {
		return err
	}

	camera := parsed.Camera
	if camera == nil {
		logger.Notice("no camera in the scene, using the default one")
		camera = scene.NewCamera(scene.Perspective, 1, 100, 1, types.Translation(types.Vec3{-1, 0, 0}))
	}

	opts := renderer.Options{
		Width:                ctx.Int("width"),
		AspectRatio:          float32(ctx.Float64("aspect-ratio")),
		AASamples:            ctx.Int("aa-samples"),
		NumRays:              ctx.Int("ray-number"),
		MaxDepth:             ctx.Int("max-depth"),
		RussianRouletteLimit: ctx.Int("rr-limit"),
		Seed:                 ctx.Uint64("seed"),
		Sequence:             ctx.Uint64("sequence"),
		Workers:              ctx.Int("workers"),
	}

	// validate first so the strategy sees the normalized knobs
	if err := opts.Validate(); err != nil {
		return err
	}

	makeTrace, err := traceFactory(ctx.String("algo"), &parsed.World, opts)
	if err != nil {
		return err
	}

	r, err := renderer.New(camera, opts)
	if err != nil {
		return err
	}

	stats, err := r.Render(makeTrace)
	if err != nil {
		return err
	}
	displayFrameStats(stats)

	output := ctx.String("out")

	// the raw frame is always kept next to the tone-mapped one
	pfmOutput := strings.TrimSuffix(output, filepath.Ext(output)) + ".pfm"
	if err := camera.Image.Save(pfmOutput, 1); err != nil {
		return err
	}
	logger.Noticef("wrote %s", pfmOutput)

	camera.Image.Normalize(float32(ctx.Float64("norm")), float32(ctx.Float64("luminosity")))
	camera.Image.Clamp()
	if err := camera.Image.Save(output, float32(ctx.Float64("gamma"))); err != nil {
		return err
	}
	logger.Noticef("wrote %s", output)

	return nil
}

// traceFactory selects the rendering strategy by name.
func traceFactory(algorithm string, world *scene.World, opts renderer.Options) (renderer.TraceFactory, error) {
	switch algorithm {
	case "path":
		return func(pcg *sampler.PCG) tracer.Trace {
			return tracer.PathTracer(world, pcg, opts.NumRays, opts.MaxDepth, opts.RussianRouletteLimit)
		}, nil
	case "onoff":
		return func(pcg *sampler.PCG) tracer.Trace {
			return tracer.OnOff(world)
		}, nil
	case "flat":
		return func(pcg *sampler.PCG) tracer.Trace {
			return tracer.Flat(world)
		}, nil
	case "light":
		return func(pcg *sampler.PCG) tracer.Trace {
			return tracer.PointLights(world, types.RGB(0.1, 0.1, 0.1))
		}, nil
	}
	return nil, fmt.Errorf("%q is not a supported rendering algorithm; use \"path\", \"onoff\", \"flat\" or \"light\"", algorithm)
}

// parseFloatOverrides turns "name:value" declarations into a variable map.
func parseFloatOverrides(declarations []string) (map[string]float32, error) {
	variables := make(map[string]float32, len(declarations))
	for _, declaration := range declarations {
		name, value, found := strings.Cut(declaration, ":")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid float declaration %q; the syntax is name:value", declaration)
		}
		number, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid value for float variable %q: %q", name, value)
		}
		variables[name] = float32(number)
	}
	return variables, nil
}

func displayFrameStats(stats *renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Block start", "Rows", "% of frame", "Render time"})

	totalRows := 0
	for _, block := range stats.Blocks {
		totalRows += block.Height
	}
	for _, block := range stats.Blocks {
		table.Append([]string{
			fmt.Sprintf("%d", block.Y),
			fmt.Sprintf("%d", block.Height),
			fmt.Sprintf("%02.1f %%", 100*float64(block.Height)/float64(totalRows)),
			fmt.Sprintf("%s", block.RenderTime),
		})
	}
	table.SetFooter([]string{"", "", "TOTAL", fmt.Sprintf("%s", stats.RenderTime)})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
