package core

import (
	seMath "scene-editor/math"
)

// Op names a recorded drawing call.
type Op int

const (
	OpPolygon Op = iota
	OpLine
	OpCircle
	OpLabel
)

// DrawCall is one call captured by a Recorder.
type DrawCall struct {
	Op     Op
	Points []seMath.Vec2
	Style  PolygonStyle
	Fill   Color
	Width  float64
	Radius float64
	Text   string
	Bold   bool
}

// Recorder is a Surface that keeps every call in submission order.
// It backs headless runs and tests.
type Recorder struct {
	Calls []DrawCall
}

func (r *Recorder) DrawPolygon(points []seMath.Vec2, style PolygonStyle) {
	r.Calls = append(r.Calls, DrawCall{
		Op:     OpPolygon,
		Points: append([]seMath.Vec2(nil), points...),
		Style:  style,
		Fill:   style.Fill,
	})
}

func (r *Recorder) DrawLine(x1, y1, x2, y2 float64, fill Color, width float64) {
	r.Calls = append(r.Calls, DrawCall{
		Op:     OpLine,
		Points: []seMath.Vec2{{X: x1, Y: y1}, {X: x2, Y: y2}},
		Fill:   fill,
		Width:  width,
	})
}

func (r *Recorder) DrawCircle(cx, cy, radius float64, fill Color, opacity float64) {
	r.Calls = append(r.Calls, DrawCall{
		Op:     OpCircle,
		Points: []seMath.Vec2{{X: cx, Y: cy}},
		Fill:   fill,
		Radius: radius,
		Style:  PolygonStyle{Fill: fill, Opacity: opacity},
	})
}

func (r *Recorder) DrawLabel(text string, x, y float64, fill Color, bold bool) {
	r.Calls = append(r.Calls, DrawCall{
		Op:     OpLabel,
		Points: []seMath.Vec2{{X: x, Y: y}},
		Fill:   fill,
		Text:   text,
		Bold:   bold,
	})
}

// Count returns how many calls of kind op were recorded.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}
