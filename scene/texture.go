// Package scene models everything the renderer can hit: textures, materials,
// shapes, point lights, the world container and the camera observing it.
package scene

import (
	"math"

	"github.com/Enrico-Carissimi/RayTracer/hdr"
	"github.com/Enrico-Carissimi/RayTracer/types"
)

// Texture maps surface (u, v) coordinates to a color. Shapes keep uv within
// [0, 1] after parametrization, so textures never wrap.
type Texture interface {
	Color(uv types.Vec2) types.Color
}

// UniformTexture returns the same color everywhere.
type UniformTexture struct {
	C types.Color
}

func NewUniformTexture(c types.Color) UniformTexture {
	return UniformTexture{C: c}
}

func (t UniformTexture) Color(uv types.Vec2) types.Color {
	return t.C
}

// CheckeredTexture alternates two colors on an n x n grid.
type CheckeredTexture struct {
	C1, C2 types.Color
	Steps  int
}

func NewCheckeredTexture(c1, c2 types.Color, steps int) CheckeredTexture {
	return CheckeredTexture{C1: c1, C2: c2, Steps: steps}
}

func (t CheckeredTexture) Color(uv types.Vec2) types.Color {
	u := int(math.Floor(float64(uv[0]) * float64(t.Steps)))
	v := int(math.Floor(float64(uv[1]) * float64(t.Steps)))
	if (u+v)%2 == 0 {
		return t.C1
	}
	return t.C2
}

// ImageTexture samples an HDR image with nearest-pixel lookup. Loaders are
// expected to normalize the image to average luminosity 1 and clamp it
// before building the texture.
type ImageTexture struct {
	image *hdr.Image
}

func NewImageTexture(image *hdr.Image) ImageTexture {
	return ImageTexture{image: image}
}

func (t ImageTexture) Color(uv types.Vec2) types.Color {
	i := int(uv[0] * float32(t.image.Width))
	j := int(uv[1] * float32(t.image.Height))

	// clamp onto the last row/column when uv touches 1
	if i >= t.image.Width {
		i = t.image.Width - 1
	}
	if j >= t.image.Height {
		j = t.image.Height - 1
	}

	pixel, _ := t.image.GetPixel(i, j) // in range by construction
	return pixel
}
