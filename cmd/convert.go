package cmd

import (
	"errors"
	"os"

	"github.com/Enrico-Carissimi/RayTracer/hdr"
	"github.com/urfave/cli"
)

// Convert reads a PFM file, tone-maps it and saves it in the format selected
// by the output extension.
func Convert(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing input .pfm file argument")
	}
	input := ctx.Args().First()

	f, err := os.Open(input)
	if err != nil {
		return err
	}
	image, err := hdr.ReadPFM(f)
	f.Close()
	if err != nil {
		return err
	}
	logger.Infof("read %d x %d image from %s", image.Width, image.Height, input)

	image.Normalize(float32(ctx.Float64("norm")), float32(ctx.Float64("luminosity")))
	image.Clamp()

	output := ctx.String("out")
	if err := image.Save(output, float32(ctx.Float64("gamma"))); err != nil {
		return err
	}
	logger.Noticef("wrote %s", output)

	return nil
}
