// Package canvas is a software drawing surface backed by an image.RGBA.
// Shapes are filled with the x/image vector rasterizer and composited
// with draw.Over, so later calls paint over earlier ones.
package canvas

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/imgio"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"scene-editor/core"
	seMath "scene-editor/math"
)

// circleSegments is the polygon resolution used for circles.
const circleSegments = 24

// DefaultBackground is the viewport clear color.
var DefaultBackground = core.Gray(30)

type Canvas struct {
	Background core.Color

	image *image.RGBA
	ras   *vector.Rasterizer
	face  font.Face
}

func New(width, height int) *Canvas {
	c := &Canvas{
		Background: DefaultBackground,
		ras:        &vector.Rasterizer{},
		face:       basicfont.Face7x13,
	}
	c.Resize(width, height)
	return c
}

func (c *Canvas) Image() *image.RGBA { return c.image }
func (c *Canvas) Size() (int, int)   { return c.image.Rect.Dx(), c.image.Rect.Dy() }

// Resize reallocates the backing image when the size changes.
func (c *Canvas) Resize(width, height int) {
	width, height = max(1, width), max(1, height)
	if c.image != nil && c.image.Rect.Dx() == width && c.image.Rect.Dy() == height {
		return
	}
	c.image = image.NewRGBA(image.Rect(0, 0, width, height))
	c.Clear()
}

// Clear fills the image with the background color.
func (c *Canvas) Clear() {
	draw.Draw(c.image, c.image.Rect, image.NewUniform(c.Background.NRGBA(1)), image.Point{}, draw.Src)
}

// Snapshot returns a copy of the current frame.
func (c *Canvas) Snapshot() *image.RGBA {
	return clone.AsRGBA(c.image)
}

// SavePNG writes the current frame to path.
func (c *Canvas) SavePNG(path string) error {
	if err := imgio.Save(path, c.Snapshot(), imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// fill rasterizes a closed path through points.
func (c *Canvas) fill(points []seMath.Vec2, col core.Color, opacity float64) {
	if len(points) < 3 || col.IsNone() || opacity <= 0 {
		return
	}
	w, h := c.Size()
	c.ras.Reset(w, h)
	c.ras.DrawOp = draw.Over
	c.ras.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		c.ras.LineTo(float32(p.X), float32(p.Y))
	}
	c.ras.ClosePath()
	c.ras.Draw(c.image, c.image.Rect, image.NewUniform(col.NRGBA(opacity)), image.Point{})
}

// segment returns the quad covering a line of the given width.
func segment(a, b seMath.Vec2, width float64) []seMath.Vec2 {
	d := b.Sub(a)
	l := d.Length()
	if l == 0 {
		return nil
	}
	n := seMath.Vec2{X: -d.Y / l, Y: d.X / l}.Mul(max(width, 1) / 2)
	return []seMath.Vec2{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}
}

func (c *Canvas) DrawPolygon(points []seMath.Vec2, style core.PolygonStyle) {
	c.fill(points, style.Fill, style.Opacity)
	if style.BorderWidth <= 0 || style.Border.IsNone() {
		return
	}
	for i, p := range points {
		q := points[(i+1)%len(points)]
		c.fill(segment(p, q, style.BorderWidth), style.Border, style.Opacity)
	}
}

func (c *Canvas) DrawLine(x1, y1, x2, y2 float64, fill core.Color, width float64) {
	c.fill(segment(seMath.NewVec2(x1, y1), seMath.NewVec2(x2, y2), width), fill, 1)
}

func (c *Canvas) DrawCircle(cx, cy, r float64, fill core.Color, opacity float64) {
	points := make([]seMath.Vec2, circleSegments)
	for i := range points {
		a := 2 * math.Pi * float64(i) / circleSegments
		points[i] = seMath.NewVec2(cx+r*math.Cos(a), cy+r*math.Sin(a))
	}
	c.fill(points, fill, opacity)
}

// DrawLabel centers text on (x, y). Bold text is drawn twice, one pixel
// apart.
func (c *Canvas) DrawLabel(text string, x, y float64, fill core.Color, bold bool) {
	d := &font.Drawer{
		Dst:  c.image,
		Src:  image.NewUniform(fill.NRGBA(1)),
		Face: c.face,
	}
	m := c.face.Metrics()
	width := d.MeasureString(text)
	dot := fixed.Point26_6{
		X: fixed.Int26_6(x*64) - width/2,
		Y: fixed.Int26_6(y*64) + (m.Ascent-m.Descent)/2,
	}
	d.Dot = dot
	d.DrawString(text)
	if bold {
		d.Dot = dot.Add(fixed.P(1, 0))
		d.DrawString(text)
	}
}
