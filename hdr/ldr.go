package hdr

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
)

// ToLDR converts the buffer to an 8-bit image applying gamma correction.
// Pixels must already be normalized and clamped into [0, 1).
func (img *Image) ToLDR(gamma float32) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	invGamma := float64(1 / gamma)

	for idx, pixel := range img.pixels {
		out.Pix[4*idx] = uint8(255 * math.Pow(float64(pixel.R), invGamma))
		out.Pix[4*idx+1] = uint8(255 * math.Pow(float64(pixel.G), invGamma))
		out.Pix[4*idx+2] = uint8(255 * math.Pow(float64(pixel.B), invGamma))
		out.Pix[4*idx+3] = 255
	}

	return out
}

// Save writes the image to the path, choosing the format from the extension:
// .pfm keeps full dynamic range, .png/.jpg/.jpeg/.webp export LDR with the
// given gamma. LDR formats expect a normalized and clamped image.
func (img *Image) Save(name string, gamma float32) error {
	ext := strings.ToLower(filepath.Ext(name))

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()

	switch ext {
	case ".pfm":
		err = img.WritePFM(f)
	case ".png":
		err = png.Encode(f, img.ToLDR(gamma))
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img.ToLDR(gamma), &jpeg.Options{Quality: 100})
	case ".webp":
		err = nativewebp.Encode(f, img.ToLDR(gamma), nil)
	default:
		err = fmt.Errorf("hdr: file extension %q is not supported, use .pfm, .png, .jpg or .webp", ext)
	}
	if err != nil {
		return err
	}

	return f.Close()
}
