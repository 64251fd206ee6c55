package main

import (
	"fmt"
	"os"

	"github.com/Enrico-Carissimi/RayTracer/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "raytracer"
	app.Usage = "render scene descriptions with path tracing"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene description file",
			Description: `
Parse a scene description, render it with the selected algorithm and write
the image. The raw HDR frame is always saved as a .pfm file next to the
tone-mapped output.`,
			ArgsUsage: "scene_file.txt",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Value: "image.png",
					Usage: "output image file (.pfm, .png, .jpg or .webp)",
				},
				cli.IntFlag{
					Name:  "width, w",
					Usage: "width of the output image in pixels, overwrites the one defined for the camera",
				},
				cli.Float64Flag{
					Name:  "aspect-ratio, r",
					Usage: "aspect ratio of the output image, overwrites the one defined for the camera",
				},
				cli.Float64Flag{
					Name:  "norm, a",
					Value: 1.0,
					Usage: "output image normalization factor",
				},
				cli.Float64Flag{
					Name:  "luminosity, l",
					Usage: "manually set the luminosity of the image, useful if it's dark",
				},
				cli.Float64Flag{
					Name:  "gamma, g",
					Value: 1.0,
					Usage: "output image gamma correction",
				},
				cli.IntFlag{
					Name:  "aa-samples, A",
					Value: 4,
					Usage: "number of samples per pixel used for anti-aliasing",
				},
				cli.IntFlag{
					Name:  "ray-number, n",
					Value: 3,
					Usage: "path tracer only, number of rays sent from every hit point",
				},
				cli.IntFlag{
					Name:  "max-depth, d",
					Value: 5,
					Usage: "path tracer only, maximum ray depth",
				},
				cli.IntFlag{
					Name:  "rr-limit, L",
					Value: 3,
					Usage: "path tracer only, ray depth where russian roulette starts; if bigger than max-depth, russian roulette never starts",
				},
				cli.StringFlag{
					Name:  "algo, R",
					Value: "path",
					Usage: `rendering algorithm: "path", "onoff", "flat" or "light"`,
				},
				cli.StringSliceFlag{
					Name:  "float, f",
					Value: &cli.StringSlice{},
					Usage: "declare named float variables, overwriting the ones with the same name in the input file; syntax: name:value",
				},
				cli.Uint64Flag{
					Name:  "seed",
					Value: 42,
					Usage: "seed of the random number generator",
				},
				cli.Uint64Flag{
					Name:  "sequence",
					Value: 54,
					Usage: "sequence identifier of the random number generator",
				},
				cli.IntFlag{
					Name:  "workers, j",
					Value: 1,
					Usage: "number of row blocks rendered concurrently; 1 keeps the output bit-exact reproducible",
				},
			},
			Action: cmd.Render,
		},
		{
			Name:        "convert",
			Usage:       "convert a .pfm file to another format",
			Description: `Read a PFM image, tone-map it and save it in the format selected by the output extension.`,
			ArgsUsage:   "input.pfm",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Value: "image.png",
					Usage: "output image file (.pfm, .png, .jpg or .webp)",
				},
				cli.Float64Flag{
					Name:  "norm, a",
					Value: 1.0,
					Usage: "normalization factor",
				},
				cli.Float64Flag{
					Name:  "luminosity, l",
					Usage: "manually set the luminosity of the image, useful if it's dark",
				},
				cli.Float64Flag{
					Name:  "gamma, g",
					Value: 1.0,
					Usage: "gamma correction",
				},
			},
			Action: cmd.Convert,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
