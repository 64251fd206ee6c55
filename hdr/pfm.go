package hdr

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Enrico-Carissimi/RayTracer/types"
)

// Endianness selects the byte order of the binary pixel payload.
type Endianness uint8

const (
	LittleEndian Endianness = iota
	BigEndian
)

func (e Endianness) byteOrder() binary.ByteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func readFloat(r io.Reader, endianness Endianness) (float32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("pfm: truncated pixel data: %w", err)
	}
	return math.Float32frombits(endianness.byteOrder().Uint32(buf[:])), nil
}

func writeFloat(w io.Writer, value float32, endianness Endianness) error {
	var buf [4]byte
	endianness.byteOrder().PutUint32(buf[:], math.Float32bits(value))
	_, err := w.Write(buf[:])
	return err
}

// readLine reads bytes up to (and excluding) the next '\n'.
func readLine(r io.Reader) (string, error) {
	var sb strings.Builder
	var buf [1]byte
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return "", fmt.Errorf("pfm: truncated header: %w", err)
		}
		if buf[0] == '\n' {
			return sb.String(), nil
		}
		sb.WriteByte(buf[0])
	}
}

func parseImageSize(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("pfm: invalid image size line %q, expected \"width height\"", line)
	}
	width, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("pfm: invalid image width %q", fields[0])
	}
	height, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("pfm: invalid image height %q", fields[1])
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("pfm: image size must be positive, got %d x %d", width, height)
	}
	return width, height, nil
}

func parseEndianness(line string) (Endianness, error) {
	scale, err := strconv.ParseFloat(strings.TrimSpace(line), 32)
	if err != nil {
		return LittleEndian, fmt.Errorf("pfm: invalid scale line %q", line)
	}
	switch {
	case scale < 0:
		return LittleEndian, nil
	case scale > 0:
		return BigEndian, nil
	default:
		return LittleEndian, fmt.Errorf("pfm: the scale factor cannot be zero")
	}
}

// ReadPFM decodes a PFM stream into an image. The payload stores rows
// bottom-to-top, so the first row read fills the bottom of the buffer.
func ReadPFM(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)

	magic, err := readLine(br)
	if err != nil {
		return nil, err
	}
	if magic != "PF" {
		return nil, fmt.Errorf("pfm: invalid magic %q, must be \"PF\"", magic)
	}

	sizeLine, err := readLine(br)
	if err != nil {
		return nil, err
	}
	width, height, err := parseImageSize(sizeLine)
	if err != nil {
		return nil, err
	}

	scaleLine, err := readLine(br)
	if err != nil {
		return nil, err
	}
	endianness, err := parseEndianness(scaleLine)
	if err != nil {
		return nil, err
	}

	img := NewImage(width, height)
	for j := height - 1; j >= 0; j-- {
		for i := 0; i < width; i++ {
			r, err := readFloat(br, endianness)
			if err != nil {
				return nil, err
			}
			g, err := readFloat(br, endianness)
			if err != nil {
				return nil, err
			}
			b, err := readFloat(br, endianness)
			if err != nil {
				return nil, err
			}
			img.pixels[img.PixelIndex(i, j)] = types.Color{R: r, G: g, B: b}
		}
	}

	return img, nil
}

// WritePFM encodes the image as little-endian PFM.
func (img *Image) WritePFM(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "PF\n%d %d\n-1.0\n", img.Width, img.Height); err != nil {
		return err
	}

	for j := img.Height - 1; j >= 0; j-- {
		for i := 0; i < img.Width; i++ {
			pixel := img.pixels[img.PixelIndex(i, j)]
			if err := writeFloat(bw, pixel.R, LittleEndian); err != nil {
				return err
			}
			if err := writeFloat(bw, pixel.G, LittleEndian); err != nil {
				return err
			}
			if err := writeFloat(bw, pixel.B, LittleEndian); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}
