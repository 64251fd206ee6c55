package scene

import (
	"fmt"

	"github.com/Enrico-Carissimi/RayTracer/hdr"
	"github.com/Enrico-Carissimi/RayTracer/sampler"
	"github.com/Enrico-Carissimi/RayTracer/types"
)

// Projection selects how screen coordinates become primary rays.
type Projection uint8

const (
	// Orthogonal casts parallel rays along +x.
	Orthogonal Projection = iota
	// Perspective casts rays diverging from an observer at distance d.
	Perspective
)

// ParseProjection maps the names used by scene files and CLI flags.
func ParseProjection(name string) (Projection, error) {
	switch name {
	case "orthogonal":
		return Orthogonal, nil
	case "perspective":
		return Perspective, nil
	}
	return Orthogonal, fmt.Errorf(`scene: invalid camera type %q, use "orthogonal" or "perspective"`, name)
}

// Camera turns pixel coordinates into world-space rays and owns the image
// buffer and the random stream used while rendering it.
type Camera struct {
	Projection  Projection
	AspectRatio float32
	Width       int
	Height      int
	Distance    float32
	Transform   types.Transformation
	Image       *hdr.Image
	Pcg         *sampler.PCG
}

// Create a camera. The image height derives from the width and aspect ratio;
// distance only matters for the perspective projection.
func NewCamera(projection Projection, aspectRatio float32, width int, distance float32, transform types.Transformation) *Camera {
	if projection == Orthogonal {
		distance = 1
	}
	height := int(float32(width) / aspectRatio)
	return &Camera{
		Projection:  projection,
		AspectRatio: aspectRatio,
		Width:       width,
		Height:      height,
		Distance:    distance,
		Transform:   transform,
		Image:       hdr.NewImage(width, height),
		Pcg:         sampler.NewPCG(42, 54),
	}
}

// Resize the camera to a new width and aspect ratio, rebuilding the buffer.
func (c *Camera) Resize(width int, aspectRatio float32) {
	if width > 0 {
		c.Width = width
	}
	if aspectRatio > 0 {
		c.AspectRatio = aspectRatio
	}
	c.Height = int(float32(c.Width) / c.AspectRatio)
	c.Image = hdr.NewImage(c.Width, c.Height)
}

// FireRay casts the ray through pixel (i, j) at sub-pixel offsets
// (uPixel, vPixel) in [0, 1]^2; (0.5, 0.5) is the pixel center. Pixel (0, 0)
// is the top-left corner of the image.
func (c *Camera) FireRay(i, j int, uPixel, vPixel float32) types.Ray {
	u := (float32(i) + uPixel) / float32(c.Width)
	v := 1 - (float32(j)+vPixel)/float32(c.Height)

	var ray types.Ray
	switch c.Projection {
	case Orthogonal:
		ray = types.NewRay(
			types.Point3{-1, (1 - 2*u) * c.AspectRatio, 2*v - 1},
			types.Vec3{1, 0, 0},
		)
	case Perspective:
		ray = types.NewRay(
			types.Point3{-c.Distance, 0, 0},
			types.Vec3{c.Distance, (1 - 2*u) * c.AspectRatio, 2*v - 1},
		)
	}

	return ray.Transform(c.Transform)
}
