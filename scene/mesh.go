package scene

import (
	"scene-editor/core"
	seMath "scene-editor/math"
)

// SelectMode chooses what an edit-mode click picks on a mesh.
type SelectMode int

const (
	SelectVertex SelectMode = iota
	SelectFace
)

func (m SelectMode) String() string {
	if m == SelectFace {
		return "face"
	}
	return "vertex"
}

// insetFactor shrinks each projected triangle slightly about its centroid
// so coplanar neighbours do not overdraw each other's edges.
const insetFactor = 0.99

// Mesh is an indexed triangle mesh with homogeneous vertices and an
// object-to-world transform. Edits left-multiply onto Transform.
type Mesh struct {
	name string

	Vertices  []seMath.Vec4
	Indices   []int // three per triangle
	Transform seMath.Mat4

	IsEditable   bool
	IsSelectable bool

	Mode           SelectMode
	SelectedVertex int
	SelectedFace   int // offset of the face's first index

	Shading Shader

	// screen-space x, y and NDC depth per vertex from the last render
	screenCoords []seMath.Vec3

	extrusion *extrusion
}

// NewMesh wraps vertex and index data. Imported and primitive meshes are
// created editable; pass editable=false for fixed scenery.
func NewMesh(name string, vertices []seMath.Vec4, indices []int, editable bool) *Mesh {
	return &Mesh{
		name:           name,
		Vertices:       vertices,
		Indices:        indices,
		Transform:      seMath.Mat4Identity(),
		IsEditable:     editable,
		IsSelectable:   true,
		SelectedVertex: NoSelection,
		SelectedFace:   NoSelection,
		Shading:        NewLambertian(),
	}
}

func (m *Mesh) Kind() Kind                  { return KindMesh }
func (m *Mesh) Name() string                { return m.name }
func (m *Mesh) Selectable() bool            { return m.IsSelectable }
func (m *Mesh) Editable() bool              { return m.IsEditable }
func (m *Mesh) AsMesh() (*Mesh, bool)       { return m, true }
func (m *Mesh) AsLight() (*Light, bool)     { return nil, false }
func (m *Mesh) TriangleCount() int          { return len(m.Indices) / 3 }
func (m *Mesh) ScreenCoords() []seMath.Vec3 { return m.screenCoords }

// Face returns the vertex indices of the face starting at offset,
// or false when the offset or any of its references is out of range.
func (m *Mesh) Face(offset int) (i0, i1, i2 int, ok bool) {
	if offset < 0 || offset+2 >= len(m.Indices) {
		return 0, 0, 0, false
	}
	i0, i1, i2 = m.Indices[offset], m.Indices[offset+1], m.Indices[offset+2]
	n := len(m.Vertices)
	if i0 < 0 || i1 < 0 || i2 < 0 || i0 >= n || i1 >= n || i2 >= n {
		return 0, 0, 0, false
	}
	return i0, i1, i2, true
}

// WorldVertices returns every vertex with the transform applied.
func (m *Mesh) WorldVertices() []seMath.Vec3 {
	world := make([]seMath.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		world[i] = m.Transform.MulVec(v).ToVec3()
	}
	return world
}

func (m *Mesh) Render(ctx *RenderContext, _ core.Surface) []Triangle {
	pv := ctx.Camera.ProjectionView()
	world := make([]seMath.Vec3, len(m.Vertices))
	screen := make([]seMath.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		w := m.Transform.MulVec(v)
		world[i] = w.ToVec3()
		screen[i] = ctx.ToScreen(ctx.Camera.ToNDC(pv.MulVec(w)))
	}
	m.screenCoords = screen

	viewDir := ctx.Camera.ViewDirection()
	selected := ctx.IsSelected(m)

	triangles := make([]Triangle, 0, len(m.Indices)/3)
	for f := 0; f+2 < len(m.Indices); f += 3 {
		i0, i1, i2, ok := m.Face(f)
		if !ok {
			continue
		}

		a, b, c := world[i0], world[i1], world[i2]
		normal := b.Sub(a).Cross(c.Sub(a))
		if !ctx.EditMode && normal.Dot(viewDir) <= 0 {
			continue
		}

		fill := core.ColorWhite
		if m.Shading != nil {
			fill = m.Shading.Shade(normal, ctx.LightDir)
		}

		p0, p1, p2 := screen[i0], screen[i1], screen[i2]
		tri := Triangle{
			Depth:    (p0.Z + p1.Z + p2.Z) / 3,
			Points:   inset(p0, p1, p2),
			Color:    fill,
			Editable: m.IsEditable,
			Opacity:  1,
		}
		switch {
		case selected && !ctx.EditMode:
			tri.Border = core.ColorOrange
			tri.BorderWidth = 0.5
		case selected && ctx.EditMode:
			tri.Opacity = 0.5
		}
		triangles = append(triangles, tri)
	}
	return triangles
}

func inset(p0, p1, p2 seMath.Vec3) []seMath.Vec2 {
	cx := (p0.X + p1.X + p2.X) / 3
	cy := (p0.Y + p1.Y + p2.Y) / 3
	points := make([]seMath.Vec2, 3)
	for i, p := range [3]seMath.Vec3{p0, p1, p2} {
		points[i] = seMath.Vec2{
			X: cx + (p.X-cx)*insetFactor,
			Y: cy + (p.Y-cy)*insetFactor,
		}
	}
	return points
}

func (m *Mesh) DrawOverlay(ctx *RenderContext, s core.Surface) {
	if !ctx.EditMode || m.screenCoords == nil {
		return
	}

	if m.Mode == SelectVertex && ctx.IsSelected(m) {
		for _, p := range m.screenCoords {
			s.DrawCircle(p.X, p.Y, 2, core.ColorWhite, 1)
		}
	}

	if m.SelectedVertex >= 0 && m.SelectedVertex < len(m.screenCoords) {
		p := m.screenCoords[m.SelectedVertex]
		s.DrawCircle(p.X, p.Y, 3, core.ColorOrange, 1)
	}

	if m.Mode == SelectFace && m.SelectedFace != NoSelection {
		i0, i1, i2, ok := m.Face(m.SelectedFace)
		if !ok {
			return
		}
		a, b, c := m.screenCoords[i0], m.screenCoords[i1], m.screenCoords[i2]
		s.DrawPolygon([]seMath.Vec2{{X: a.X, Y: a.Y}, {X: b.X, Y: b.Y}, {X: c.X, Y: c.Y}}, core.PolygonStyle{
			Fill:        core.ColorNone,
			Border:      core.ColorOrange,
			BorderWidth: 2,
			Opacity:     1,
		})
	}
}

// ClearSelection drops vertex and face selections and abandons any
// extrusion in progress, keeping the geometry it already added.
func (m *Mesh) ClearSelection() {
	m.SelectedVertex = NoSelection
	m.SelectedFace = NoSelection
	m.extrusion = nil
}

// Clone returns a deep copy of the mesh geometry and state, without the
// cached screen coordinates.
func (m *Mesh) Clone() *Mesh {
	c := *m
	c.Vertices = append([]seMath.Vec4(nil), m.Vertices...)
	c.Indices = append([]int(nil), m.Indices...)
	c.screenCoords = nil
	c.extrusion = nil
	return &c
}
