package scene

import (
	"scene-editor/core"
	seMath "scene-editor/math"
)

// Kind discriminates the variants behind the Object interface.
type Kind int

const (
	KindMesh Kind = iota
	KindGrid
	KindLight
)

func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindGrid:
		return "grid"
	case KindLight:
		return "light"
	}
	return "unknown"
}

// NoSelection marks an empty vertex or face selection.
const NoSelection = -1

// Object is anything the World can render and pick.
type Object interface {
	Kind() Kind
	Name() string
	Selectable() bool
	Editable() bool

	// Render projects the object for the current frame, caching its screen
	// coordinates, and returns its triangles for the global depth sort.
	// Objects that draw directly (the grid) may submit to s and return nil.
	Render(ctx *RenderContext, s core.Surface) []Triangle
	// DrawOverlay draws edit-mode markers after all triangles are submitted.
	DrawOverlay(ctx *RenderContext, s core.Surface)
	// CheckSelection is a coarse screen-space hit test against the last render.
	CheckSelection(x, y float64) bool

	Translate(v seMath.Vec3)
	Rotate(angle float64, axis seMath.Vec3)
	Scale(v seMath.Vec3)
	ClearSelection()

	AsMesh() (*Mesh, bool)
	AsLight() (*Light, bool)
}

// RenderContext carries the per-frame state every object needs to render.
type RenderContext struct {
	Camera   *Camera
	Width    float64
	Height   float64
	EditMode bool
	Selected Object
	LightDir seMath.Vec3
}

// IsSelected reports whether o is the context's selected object.
func (ctx *RenderContext) IsSelected(o Object) bool {
	return ctx.Selected != nil && ctx.Selected == o
}

// ToScreen maps NDC to pixels with y pointing down. Z is kept as depth.
func (ctx *RenderContext) ToScreen(ndc seMath.Vec3) seMath.Vec3 {
	return seMath.Vec3{
		X: (ndc.X + 1) * (ctx.Width / 2),
		Y: (1 - ndc.Y) * (ctx.Height / 2),
		Z: ndc.Z,
	}
}

// Project takes a world-space point through the camera to screen space.
func (ctx *RenderContext) Project(p seMath.Vec4) seMath.Vec3 {
	return ctx.ToScreen(ctx.Camera.ToNDC(ctx.Camera.ProjectionView().MulVec(p)))
}

// Triangle is one entry of the global draw list.
type Triangle struct {
	Depth       float64
	Points      []seMath.Vec2
	Color       core.Color
	Editable    bool
	Border      core.Color
	BorderWidth float64
	Opacity     float64
}

// Style converts t into the surface's polygon style.
func (t Triangle) Style() core.PolygonStyle {
	return core.PolygonStyle{
		Fill:        t.Color,
		Border:      t.Border,
		BorderWidth: t.BorderWidth,
		Opacity:     t.Opacity,
	}
}
