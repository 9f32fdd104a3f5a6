package tracer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"

	seMath "scene-editor/math"
)

// Image is a linear RGB float image with components in [0, 1].
type Image struct {
	Width, Height int
	Pix           []seMath.Vec3
}

func NewImage(width, height int) *Image {
	return &Image{Width: width, Height: height, Pix: make([]seMath.Vec3, width*height)}
}

func (img *Image) At(x, y int) seMath.Vec3     { return img.Pix[y*img.Width+x] }
func (img *Image) Set(x, y int, c seMath.Vec3) { img.Pix[y*img.Width+x] = c }

func to8(v float64) uint8 {
	return uint8(max(0, min(255, v*255)))
}

// WritePPM writes the image as binary PPM (P6), clamping each component.
func (img *Image) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return fmt.Errorf("write ppm header: %w", err)
	}
	for _, c := range img.Pix {
		if _, err := bw.Write([]byte{to8(c.X), to8(c.Y), to8(c.Z)}); err != nil {
			return fmt.Errorf("write ppm pixels: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write ppm: %w", err)
	}
	return nil
}

// RGBA converts the image to 8-bit RGBA for encoders in the image package.
func (img *Image) RGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := range img.Height {
		for x := range img.Width {
			c := img.At(x, y)
			out.SetRGBA(x, y, color.RGBA{R: to8(c.X), G: to8(c.Y), B: to8(c.Z), A: 255})
		}
	}
	return out
}
