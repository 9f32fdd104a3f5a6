package scene

import (
	"math"

	"scene-editor/core"
	seMath "scene-editor/math"
)

// Grid is a ground-plane line grid at y=0. It is drawn straight to the
// surface before the sorted triangles, so it always sits underneath them.
//
// The line along Z at x=0 is blue, the line along X at z=0 is red and all
// other lines are dark gray.
type Grid struct {
	Size      float64
	Divisions int

	Vertices []seMath.Vec4
	Indices  []int // two per line segment
	Colors   []core.Color
}

func NewGrid(size float64, divisions int) *Grid {
	if divisions < 1 {
		divisions = 1
	}

	half := size / 2
	step := size / float64(divisions)
	g := &Grid{Size: size, Divisions: divisions}

	addLine := func(a, b seMath.Vec4, c core.Color) {
		base := len(g.Vertices)
		g.Vertices = append(g.Vertices, a, b)
		g.Indices = append(g.Indices, base, base+1)
		g.Colors = append(g.Colors, c)
	}

	for i := 0; i <= divisions; i++ {
		pos := -half + float64(i)*step
		onAxis := math.Abs(pos) < 1e-9

		c := core.ColorGrid
		if onAxis {
			c = core.ColorBlue
		}
		addLine(seMath.Point(pos, 0, -half), seMath.Point(pos, 0, half), c)

		c = core.ColorGrid
		if onAxis {
			c = core.ColorRed
		}
		addLine(seMath.Point(-half, 0, pos), seMath.Point(half, 0, pos), c)
	}
	return g
}

func (g *Grid) Kind() Kind                       { return KindGrid }
func (g *Grid) Name() string                     { return "Grid" }
func (g *Grid) Selectable() bool                 { return false }
func (g *Grid) Editable() bool                   { return false }
func (g *Grid) AsMesh() (*Mesh, bool)            { return nil, false }
func (g *Grid) AsLight() (*Light, bool)          { return nil, false }
func (g *Grid) CheckSelection(_, _ float64) bool { return false }
func (g *Grid) Translate(seMath.Vec3)            {}
func (g *Grid) Rotate(float64, seMath.Vec3)      {}
func (g *Grid) Scale(seMath.Vec3)                {}
func (g *Grid) ClearSelection()                  {}

func (g *Grid) DrawOverlay(*RenderContext, core.Surface) {}

// Render draws every line segment that survives near-plane clipping and
// contributes no triangles.
func (g *Grid) Render(ctx *RenderContext, s core.Surface) []Triangle {
	if s == nil {
		return nil
	}
	pv := ctx.Camera.ProjectionView()
	for line := 0; line*2+1 < len(g.Indices); line++ {
		a := pv.MulVec(g.Vertices[g.Indices[line*2]])
		b := pv.MulVec(g.Vertices[g.Indices[line*2+1]])

		a, b, ok := clipNear(a, b)
		if !ok {
			continue
		}
		p0 := ctx.ToScreen(ctx.Camera.ToNDC(a))
		p1 := ctx.ToScreen(ctx.Camera.ToNDC(b))
		s.DrawLine(p0.X, p0.Y, p1.X, p1.Y, g.Colors[line], 1)
	}
	return nil
}

// clipNear clips a clip-space segment against the near plane z = -w.
func clipNear(a, b seMath.Vec4) (seMath.Vec4, seMath.Vec4, bool) {
	da := a.Z + a.W
	db := b.Z + b.W
	switch {
	case da < 0 && db < 0:
		return a, b, false
	case da < 0:
		a = a.Add(b.Sub(a).Mul(da / (da - db)))
	case db < 0:
		b = b.Add(a.Sub(b).Mul(db / (db - da)))
	}
	return a, b, true
}
