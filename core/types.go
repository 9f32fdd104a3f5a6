package core

import (
	"image/color"
	"math"
)

// Color is a straight-alpha RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

var (
	ColorWhite  = Color{1, 1, 1, 1}
	ColorBlack  = Color{0, 0, 0, 1}
	ColorRed    = Color{1, 0, 0, 1}
	ColorGreen  = Color{0, 1, 0, 1}
	ColorBlue   = Color{0, 0, 1, 1}
	ColorYellow = Color{1, 1, 0, 1}
	ColorOrange = Color{1, 165.0 / 255, 0, 1}
	ColorGrid   = Color{50.0 / 255, 50.0 / 255, 50.0 / 255, 1}

	// ColorNone marks an absent fill or border.
	ColorNone = Color{}
)

// Gray returns an opaque gray for an 8-bit level.
func Gray(level int) Color {
	v := float64(level) / 255
	return Color{v, v, v, 1}
}

// IsNone reports whether c is fully transparent.
func (c Color) IsNone() bool {
	return c.A == 0
}

func (c Color) Scale(s float64) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A}
}

// NRGBA converts c to an 8-bit color, multiplying its alpha by opacity.
func (c Color) NRGBA(opacity float64) color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A * opacity),
	}
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
