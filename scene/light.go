package scene

import (
	"math"

	"scene-editor/core"
	seMath "scene-editor/math"
)

const (
	lightMarkerRadius = 10.0
	lightPickHalfSize = 10.0
)

// DefaultLightPosition places the light so its direction is normalize(1, -1, 1).
var DefaultLightPosition = seMath.Vec3{X: 1, Y: -1, Z: 1}

// Light is a directional light described by a position; its direction is
// the normalized position vector. It renders as a screen-space octagon.
type Light struct {
	Intensity float64
	Position  seMath.Vec3

	screen   seMath.Vec3
	rendered bool
}

func NewLight(intensity float64, position seMath.Vec3) *Light {
	return &Light{Intensity: intensity, Position: position}
}

func (l *Light) Kind() Kind              { return KindLight }
func (l *Light) Name() string            { return "Light" }
func (l *Light) Selectable() bool        { return true }
func (l *Light) Editable() bool          { return false }
func (l *Light) AsMesh() (*Mesh, bool)   { return nil, false }
func (l *Light) AsLight() (*Light, bool) { return l, true }
func (l *Light) ClearSelection()         {}

func (l *Light) ViewDirection() seMath.Vec3 {
	return l.Position.Normalize()
}

func (l *Light) Render(ctx *RenderContext, _ core.Surface) []Triangle {
	l.screen = ctx.Project(l.Position.ToVec4(1))
	l.rendered = true

	points := make([]seMath.Vec2, 8)
	for i := range points {
		angle := float64(i) * math.Pi / 4
		points[i] = seMath.Vec2{
			X: l.screen.X + lightMarkerRadius*math.Cos(angle),
			Y: l.screen.Y + lightMarkerRadius*math.Sin(angle),
		}
	}

	tri := Triangle{
		Depth:   l.screen.Z,
		Points:  points,
		Color:   core.ColorYellow,
		Opacity: 0.9,
	}
	if ctx.IsSelected(l) {
		tri.Border = core.ColorOrange
		tri.BorderWidth = 2
	}
	return []Triangle{tri}
}

func (l *Light) DrawOverlay(*RenderContext, core.Surface) {}

func (l *Light) CheckSelection(x, y float64) bool {
	if !l.rendered {
		return false
	}
	return math.Abs(x-l.screen.X) <= lightPickHalfSize && math.Abs(y-l.screen.Y) <= lightPickHalfSize
}

func (l *Light) Translate(v seMath.Vec3) {
	l.Position = l.Position.Add(v)
}

// Rotate and Scale have no meaning for a light.
func (l *Light) Rotate(float64, seMath.Vec3) {}
func (l *Light) Scale(seMath.Vec3)           {}
