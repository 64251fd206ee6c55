// Package hdr implements the floating-point image buffer shared by the
// renderer and the texture loader, with tone mapping and PFM/LDR output.
package hdr

import (
	"fmt"
	"math"

	"github.com/Enrico-Carissimi/RayTracer/types"
)

// Image is a width x height grid of linear RGB radiances, row-major with
// row 0 at the top.
type Image struct {
	Width  int
	Height int
	pixels []types.Color
}

// Create a black image of the given size.
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		pixels: make([]types.Color, width*height),
	}
}

// PixelIndex maps image coordinates to the flat buffer offset.
func (img *Image) PixelIndex(i, j int) int {
	return i + img.Width*j
}

// ValidCoordinates reports whether (i, j) lies inside the image.
func (img *Image) ValidCoordinates(i, j int) bool {
	return i >= 0 && i < img.Width && j >= 0 && j < img.Height
}

func (img *Image) checkCoordinates(i, j int) error {
	if !img.ValidCoordinates(i, j) {
		return fmt.Errorf("hdr: invalid image coordinates (%d, %d), image size is %d x %d", i, j, img.Width, img.Height)
	}
	return nil
}

// GetPixel returns the color at (i, j); coordinates outside the image are an
// error.
func (img *Image) GetPixel(i, j int) (types.Color, error) {
	if err := img.checkCoordinates(i, j); err != nil {
		return types.Color{}, err
	}
	return img.pixels[img.PixelIndex(i, j)], nil
}

// SetPixel stores the color at (i, j); coordinates outside the image are an
// error.
func (img *Image) SetPixel(i, j int, color types.Color) error {
	if err := img.checkCoordinates(i, j); err != nil {
		return err
	}
	img.pixels[img.PixelIndex(i, j)] = color
	return nil
}

// AverageLuminosity computes the logarithmic average of the pixel
// luminosities; delta guards against log(0) on black pixels.
func (img *Image) AverageLuminosity(delta float32) float32 {
	sum := 0.0
	for _, pixel := range img.pixels {
		sum += math.Log10(float64(pixel.Luminosity() + delta))
	}
	sum /= float64(len(img.pixels))
	return float32(math.Pow(10, sum))
}

// Normalize scales every pixel by a/luminosity. Passing luminosity 0 computes
// the image's own log-average first.
func (img *Image) Normalize(a, luminosity float32) {
	if luminosity == 0 {
		luminosity = img.AverageLuminosity(1e-10)
	}
	scale := a / luminosity
	for i := range img.pixels {
		img.pixels[i] = img.pixels[i].Mul(scale)
	}
}

// Clamp compresses every channel into [0, 1) with x / (1 + x).
func (img *Image) Clamp() {
	clamp := func(x float32) float32 { return x / (1 + x) }
	for i, pixel := range img.pixels {
		img.pixels[i] = types.Color{R: clamp(pixel.R), G: clamp(pixel.G), B: clamp(pixel.B)}
	}
}
