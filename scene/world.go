package scene

import (
	"cmp"
	"slices"

	"scene-editor/core"
	seMath "scene-editor/math"
)

// nonEditableFade scales the opacity of fixed scenery while editing.
const nonEditableFade = 0.3

// World owns the camera and the ordered object list and turns them into a
// single back-to-front draw list each frame.
type World struct {
	Camera    *Camera
	ShowGizmo bool

	objects []Object
	width   float64
	height  float64
}

func NewWorld(camera *Camera, width, height float64) *World {
	camera.Resize(width, height)
	return &World{
		Camera:    camera,
		ShowGizmo: true,
		width:     width,
		height:    height,
	}
}

func (w *World) AddObject(o Object) {
	w.objects = append(w.objects, o)
}

// InsertObject places o at position i of the draw order.
func (w *World) InsertObject(i int, o Object) {
	i = max(0, min(i, len(w.objects)))
	w.objects = slices.Insert(w.objects, i, o)
}

// RemoveObject removes o and clears its selection state. It reports
// whether o was present.
func (w *World) RemoveObject(o Object) bool {
	i := w.IndexOf(o)
	if i < 0 {
		return false
	}
	w.objects = slices.Delete(w.objects, i, i+1)
	o.ClearSelection()
	return true
}

func (w *World) IndexOf(o Object) int {
	return slices.Index(w.objects, o)
}

func (w *World) Objects() []Object {
	return w.objects
}

// Light returns the last light in draw order, which is the most recently
// added one unless an undo restored an older light to its old place.
func (w *World) Light() *Light {
	for i := len(w.objects) - 1; i >= 0; i-- {
		if l, ok := w.objects[i].AsLight(); ok {
			return l
		}
	}
	return nil
}

// LightDirection is the active light's direction, or normalize(1, -1, 1)
// when the world has no light.
func (w *World) LightDirection() seMath.Vec3 {
	if l := w.Light(); l != nil {
		return l.ViewDirection()
	}
	return DefaultLightPosition.Normalize()
}

// Meshes returns every triangle mesh in draw order.
func (w *World) Meshes() []*Mesh {
	var meshes []*Mesh
	for _, o := range w.objects {
		if m, ok := o.AsMesh(); ok {
			meshes = append(meshes, m)
		}
	}
	return meshes
}

// Context builds the render context for one frame.
func (w *World) Context(width, height float64, editMode bool, selected Object) *RenderContext {
	return &RenderContext{
		Camera:   w.Camera,
		Width:    width,
		Height:   height,
		EditMode: editMode,
		Selected: selected,
		LightDir: w.LightDirection(),
	}
}

// Collect renders every object and returns all triangles sorted by depth,
// farthest first. Triangles of equal depth keep their submission order.
// Objects that draw directly, like the grid, draw to s during the call.
func (w *World) Collect(ctx *RenderContext, s core.Surface) []Triangle {
	if ctx.Width != w.width || ctx.Height != w.height {
		w.Camera.Resize(ctx.Width, ctx.Height)
		w.width, w.height = ctx.Width, ctx.Height
	}

	var triangles []Triangle
	for _, o := range w.objects {
		triangles = append(triangles, o.Render(ctx, s)...)
	}
	SortByDepth(triangles)
	return triangles
}

// SortByDepth orders triangles back to front, stable for equal depths.
func SortByDepth(triangles []Triangle) {
	slices.SortStableFunc(triangles, func(a, b Triangle) int {
		return cmp.Compare(b.Depth, a.Depth)
	})
}

// Render draws one full frame: the sorted triangles, the edit overlays
// and the orientation gizmo.
func (w *World) Render(ctx *RenderContext, s core.Surface) {
	for _, t := range w.Collect(ctx, s) {
		style := t.Style()
		if ctx.EditMode && !t.Editable {
			style.Opacity *= nonEditableFade
		}
		s.DrawPolygon(t.Points, style)
	}

	for _, o := range w.objects {
		o.DrawOverlay(ctx, s)
	}

	if w.ShowGizmo {
		DrawGizmo(ctx, s)
	}
}

// PickObject returns the topmost selectable object whose screen bounds
// contain (x, y). Later objects are on top.
func (w *World) PickObject(x, y float64) Object {
	for i := len(w.objects) - 1; i >= 0; i-- {
		o := w.objects[i]
		if o.Selectable() && o.CheckSelection(x, y) {
			return o
		}
	}
	return nil
}
