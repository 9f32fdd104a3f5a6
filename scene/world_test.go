package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-editor/core"
	seMath "scene-editor/math"
)

// newTestWorld returns a 100x100 world whose camera sits at (0, 0, -5)
// looking at the origin with a 60 degree vertical field of view.
func newTestWorld() *World {
	cam := NewCamera(60, 1, 0.1, 1000)
	cam.LookAt(seMath.NewVec3(0, 0, -5), seMath.Vec3Zero, seMath.Vec3Up)
	return NewWorld(cam, 100, 100)
}

func TestPainterSortIsDescendingAndStable(t *testing.T) {
	tris := []Triangle{
		{Depth: 5, Color: core.ColorRed},
		{Depth: 1},
		{Depth: 3, Color: core.ColorRed},
		{Depth: 3, Color: core.ColorBlue},
	}
	SortByDepth(tris)

	depths := make([]float64, len(tris))
	for i, tri := range tris {
		depths[i] = tri.Depth
	}
	assert.Equal(t, []float64{5, 3, 3, 1}, depths)
	assert.Equal(t, core.ColorRed, tris[1].Color)
	assert.Equal(t, core.ColorBlue, tris[2].Color)
}

func TestCubeFacesEditModeAndCulling(t *testing.T) {
	w := newTestWorld()
	cube := NewCube(1)
	w.AddObject(cube)

	edit := w.Collect(w.Context(100, 100, true, nil), nil)
	assert.Len(t, edit, 12, "culling is off in edit mode")

	culled := w.Collect(w.Context(100, 100, false, nil), nil)
	assert.LessOrEqual(t, len(culled), 6)
	assert.Len(t, culled, 2, "only the back face looks at a camera on -Z")

	for i := 1; i < len(edit); i++ {
		assert.GreaterOrEqual(t, edit[i-1].Depth, edit[i].Depth)
	}
}

func TestCollectResizesCamera(t *testing.T) {
	w := newTestWorld()
	w.AddObject(NewCube(1))

	w.Collect(w.Context(200, 100, false, nil), nil)
	assert.Equal(t, 2.0, w.Camera.AspectRatio)
}

func TestSelectedMeshHighlight(t *testing.T) {
	w := newTestWorld()
	cube := NewCube(1)
	w.AddObject(cube)

	tris := w.Collect(w.Context(100, 100, false, cube), nil)
	require.NotEmpty(t, tris)
	for _, tri := range tris {
		assert.Equal(t, core.ColorOrange, tri.Border)
		assert.Equal(t, 0.5, tri.BorderWidth)
		assert.Equal(t, 1.0, tri.Opacity)
	}

	tris = w.Collect(w.Context(100, 100, true, cube), nil)
	for _, tri := range tris {
		assert.Equal(t, 0.5, tri.Opacity)
		assert.True(t, tri.Border.IsNone())
	}
}

func TestRenderFadesNonEditableInEditMode(t *testing.T) {
	w := newTestWorld()
	w.ShowGizmo = false
	fixed := NewCube(1)
	fixed.IsEditable = false
	w.AddObject(fixed)

	var rec core.Recorder
	w.Render(w.Context(100, 100, true, nil), &rec)

	require.Equal(t, 12, rec.Count(core.OpPolygon))
	for _, c := range rec.Calls {
		assert.InDelta(t, 0.3, c.Style.Opacity, 1e-12)
	}
}

func TestRenderDrawsGridFirstAndGizmoLast(t *testing.T) {
	w := newTestWorld()
	w.AddObject(NewGrid(10, 10))
	w.AddObject(NewCube(1))

	var rec core.Recorder
	w.Render(w.Context(100, 100, false, nil), &rec)

	require.NotEmpty(t, rec.Calls)
	assert.Equal(t, core.OpLine, rec.Calls[0].Op)
	assert.Equal(t, 3, rec.Count(core.OpLabel))
	last := rec.Calls[len(rec.Calls)-1]
	assert.Equal(t, core.OpLabel, last.Op)
	assert.Equal(t, "Z", last.Text)
	assert.True(t, last.Bold)
}

func TestVertexOverlay(t *testing.T) {
	w := newTestWorld()
	w.ShowGizmo = false
	cube := NewCube(1)
	w.AddObject(cube)

	var rec core.Recorder
	w.Render(w.Context(100, 100, true, cube), &rec)
	assert.Equal(t, 8, rec.Count(core.OpCircle))

	rec.Reset()
	cube.SelectedVertex = 3
	w.Render(w.Context(100, 100, true, cube), &rec)
	assert.Equal(t, 9, rec.Count(core.OpCircle))
	last := rec.Calls[len(rec.Calls)-1]
	assert.Equal(t, core.ColorOrange, last.Fill)
	assert.Equal(t, 3.0, last.Radius)

	rec.Reset()
	cube.ClearSelection()
	cube.Mode = SelectFace
	cube.SelectedFace = 6
	w.Render(w.Context(100, 100, true, cube), &rec)
	assert.Equal(t, 0, rec.Count(core.OpCircle))
	outline := rec.Calls[len(rec.Calls)-1]
	assert.Equal(t, core.OpPolygon, outline.Op)
	assert.Equal(t, core.ColorOrange, outline.Style.Border)
	assert.Equal(t, 2.0, outline.Style.BorderWidth)
}

func TestLightSelection(t *testing.T) {
	w := newTestWorld()
	first := NewLight(1, seMath.NewVec3(0, 1, 0))
	second := NewLight(1, DefaultLightPosition)

	assert.True(t, w.LightDirection().ApproxEqual(seMath.NewVec3(1, -1, 1).Normalize(), eps))

	w.AddObject(first)
	w.AddObject(NewCube(1))
	w.AddObject(second)
	assert.Same(t, second, w.Light())

	require.True(t, w.RemoveObject(second))
	assert.Same(t, first, w.Light())
	assert.True(t, w.LightDirection().ApproxEqual(seMath.Vec3Up, eps))

	assert.False(t, w.RemoveObject(second))
}

func TestPickObjectPrefersTopmost(t *testing.T) {
	w := newTestWorld()
	back := NewCube(1)
	front := NewCube(1)
	grid := NewGrid(10, 10)
	w.AddObject(back)
	w.AddObject(front)
	w.AddObject(grid)

	// nothing has been rendered yet
	assert.Nil(t, w.PickObject(50, 50))

	w.Collect(w.Context(100, 100, false, nil), nil)
	assert.Same(t, front, w.PickObject(50, 50))
	assert.Nil(t, w.PickObject(1, 1))

	light := NewLight(1, seMath.Vec3Zero)
	w.AddObject(light)
	w.Collect(w.Context(100, 100, false, nil), nil)
	assert.Equal(t, Object(light), w.PickObject(55, 45))
}

func TestGridClipsBehindCamera(t *testing.T) {
	cam := NewCamera(60, 1, 0.1, 1000)
	cam.LookAt(seMath.NewVec3(0, 1, 0), seMath.NewVec3(0, 0.5, -3), seMath.Vec3Up)
	w := NewWorld(cam, 100, 100)
	w.AddObject(NewGrid(10, 10))

	var rec core.Recorder
	w.Collect(w.Context(100, 100, false, nil), &rec)

	require.NotZero(t, rec.Count(core.OpLine))
	for _, c := range rec.Calls {
		for _, p := range c.Points {
			// the ground is below the eye, so nothing may flip above the horizon
			assert.Greater(t, p.Y, 50.0)
		}
	}
}
