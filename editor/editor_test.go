package editor

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-editor/core"
	seMath "scene-editor/math"
	"scene-editor/scene"
)

// newTestEditor returns a 100x100 editor with a 2x2 plane facing the
// default camera. The plane spans roughly (33, 33) to (67, 67) on screen.
func newTestEditor(t *testing.T) (*Editor, *scene.Mesh) {
	t.Helper()
	world := scene.NewWorld(scene.NewCamera(60, 1, 0.1, 1000), 100, 100)
	e := NewEditor(world, Options{
		Width:  100,
		Height: 100,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	plane := scene.NewPlane(2)
	e.Add(plane)
	e.Frame(&core.Recorder{})
	require.Len(t, plane.ScreenCoords(), 4)
	return e, plane
}

func click(e *Editor, x, y float64) {
	e.PointerDown(x, y)
	e.PointerUp(x, y)
}

func TestClickSelectsAndDeselects(t *testing.T) {
	e, plane := newTestEditor(t)

	click(e, 50, 50)
	assert.Equal(t, scene.Object(plane), e.Selected)
	assert.Equal(t, "Selected: Plane", e.StatusText)

	click(e, 5, 5)
	assert.Nil(t, e.Selected)
}

func TestEditModeNeedsEditableSelection(t *testing.T) {
	e, plane := newTestEditor(t)

	e.KeyDown(KeyTab, 0)
	assert.False(t, e.EditMode, "nothing selected")

	click(e, 50, 50)
	e.KeyDown(KeyTab, 0)
	assert.True(t, e.EditMode)

	plane.SelectedVertex = 2
	e.KeyDown(KeyTab, 0)
	assert.False(t, e.EditMode)
	assert.Equal(t, scene.NoSelection, plane.SelectedVertex)

	plane.IsEditable = false
	e.KeyDown(KeyTab, 0)
	assert.False(t, e.EditMode)
}

func TestVertexAndFacePickingInEditMode(t *testing.T) {
	e, plane := newTestEditor(t)
	click(e, 50, 50)
	e.KeyDown(KeyTab, 0)
	e.Frame(&core.Recorder{})

	click(e, 33, 67)
	assert.Equal(t, 0, plane.SelectedVertex)
	assert.Equal(t, scene.Object(plane), e.Selected, "edit mode clicks never change the object")

	e.KeyDown(Key2, 0)
	assert.Equal(t, scene.SelectFace, plane.Mode)
	assert.Equal(t, scene.NoSelection, plane.SelectedVertex)

	click(e, 60, 55)
	assert.Equal(t, 0, plane.SelectedFace)
	click(e, 60, 55)
	assert.Equal(t, scene.NoSelection, plane.SelectedFace)
}

func TestMoveCommitUndoRedo(t *testing.T) {
	e, plane := newTestEditor(t)
	click(e, 50, 50)

	e.KeyDown(KeyG, 0)
	assert.Equal(t, scene.TransformMove, e.TransformMode)
	e.PointerMove(60, 50)
	assert.InDelta(t, 0.1, plane.Transform[0][3], 1e-9)

	e.PointerDown(60, 50)
	assert.Equal(t, scene.TransformNone, e.TransformMode)
	assert.Equal(t, scene.Object(plane), e.Selected, "confirming does not repick")

	e.KeyDown(KeyZ, ModCtrl)
	assert.True(t, plane.Transform.ApproxEqual(seMath.Mat4Identity(), 1e-12))
	assert.Equal(t, "Undo move Plane", e.StatusText)

	e.KeyDown(KeyZ, ModCtrl|ModShift)
	assert.InDelta(t, 0.1, plane.Transform[0][3], 1e-9)
}

func TestEscapeRestoresTransform(t *testing.T) {
	e, plane := newTestEditor(t)
	click(e, 50, 50)

	e.KeyDown(KeyR, 0)
	e.PointerMove(80, 70)
	require.False(t, plane.Transform.ApproxEqual(seMath.Mat4Identity(), 1e-12))

	e.KeyDown(KeyEscape, 0)
	assert.True(t, plane.Transform.ApproxEqual(seMath.Mat4Identity(), 1e-12))
	assert.Equal(t, scene.TransformNone, e.TransformMode)
	assert.False(t, e.History.CanRedo())
}

func TestAxisKeysConstrainOrSnap(t *testing.T) {
	e, plane := newTestEditor(t)

	e.KeyDown(KeyX, 0)
	assert.InDelta(t, math.Pi/2, e.World.Camera.Azimuth, 1e-12)
	e.KeyDown(KeyZ, 0)
	assert.InDelta(t, 0, e.World.Camera.Azimuth, 1e-12)

	click(e, 50, 50)
	e.KeyDown(KeyG, 0)
	e.KeyDown(KeyY, 0)
	assert.Equal(t, scene.AxisY, e.Axis)
	e.PointerMove(70, 40)
	assert.InDelta(t, 0, plane.Transform[0][3], 1e-12)
	assert.InDelta(t, 0.1, plane.Transform[1][3], 1e-9)

	e.KeyDown(KeyY, 0)
	assert.Equal(t, scene.AxisNone, e.Axis)
}

func TestExtrudeFlow(t *testing.T) {
	e, plane := newTestEditor(t)
	click(e, 50, 50)
	e.KeyDown(KeyTab, 0)
	e.KeyDown(Key2, 0)
	e.Frame(&core.Recorder{})
	click(e, 60, 55)
	require.Equal(t, 0, plane.SelectedFace)

	e.KeyDown(KeyE, 0)
	require.True(t, e.Extruding())
	assert.Len(t, plane.Vertices, 7)
	assert.Len(t, plane.Indices, 27)

	e.PointerDown(60, 55)
	e.PointerMove(60, 45)
	assert.InDelta(t, 0.1, plane.ExtrudeOffset(), 1e-9)
	assert.InDelta(t, 0.1, plane.Vertices[4].Z, 1e-9)

	e.PointerUp(60, 45)
	assert.False(t, e.Extruding())
	assert.Equal(t, scene.NoSelection, plane.SelectedFace)
	assert.Len(t, plane.Indices, 27, "geometry persists")

	e.KeyDown(KeyZ, ModCtrl)
	assert.Len(t, plane.Vertices, 4)
	assert.Len(t, plane.Indices, 6)
}

func TestExtrudeRequiresFaceMode(t *testing.T) {
	e, plane := newTestEditor(t)
	click(e, 50, 50)
	e.KeyDown(KeyTab, 0)
	plane.SelectedFace = 0

	e.KeyDown(KeyE, 0)
	assert.False(t, e.Extruding(), "vertex mode")
	assert.Len(t, plane.Vertices, 4)
}

func TestEscapeAbandonsExtrusion(t *testing.T) {
	e, plane := newTestEditor(t)
	click(e, 50, 50)
	e.KeyDown(KeyTab, 0)
	e.KeyDown(Key2, 0)
	plane.SelectedFace = 3

	e.KeyDown(KeyE, 0)
	require.True(t, e.Extruding())
	e.KeyDown(KeyEscape, 0)
	assert.False(t, e.Extruding())
	assert.Len(t, plane.Vertices, 4)
	assert.Len(t, plane.Indices, 6)
}

func TestDeleteAndUndo(t *testing.T) {
	e, plane := newTestEditor(t)
	light := scene.NewLight(1, scene.DefaultLightPosition)
	e.Add(light)

	click(e, 50, 50)
	e.KeyDown(KeyBackspace, 0)
	assert.Nil(t, e.Selected)
	assert.Equal(t, -1, e.World.IndexOf(plane))

	e.KeyDown(KeyZ, ModCtrl)
	assert.Equal(t, 0, e.World.IndexOf(plane), "restored under the light")
	assert.Equal(t, 1, e.World.IndexOf(light))

	e.KeyDown(KeyDelete, 0)
	assert.Equal(t, 0, e.World.IndexOf(plane), "nothing selected")
}

func TestUndoAddDropsSelection(t *testing.T) {
	e, plane := newTestEditor(t)
	click(e, 50, 50)

	e.KeyDown(KeyZ, ModCtrl)
	assert.Equal(t, -1, e.World.IndexOf(plane))
	assert.Nil(t, e.Selected)
}

func TestCameraKeysWhileMoving(t *testing.T) {
	e, _ := newTestEditor(t)
	cam := e.World.Camera
	e.PointerMove(50, 50)

	e.KeyDown(KeySpace, 0)
	e.PointerMove(60, 50)
	assert.InDelta(t, 0.1, cam.Azimuth, 1e-12)
	e.KeyUp(KeySpace)

	e.KeyDown(KeyQ, 0)
	e.PointerMove(60, 150)
	assert.InDelta(t, 5.5, cam.Radius, 1e-9)
	e.KeyUp(KeyQ)

	target := cam.Target
	e.KeyDown(KeyW, 0)
	e.PointerMove(70, 150)
	assert.False(t, cam.Target.ApproxEqual(target, 1e-9))
	e.KeyUp(KeyW)

	e.KeyDown(Key5, 0)
	assert.True(t, cam.IsOrtho)
	assert.Equal(t, "Orthographic", e.StatusText)
}

func TestDragLight(t *testing.T) {
	e, _ := newTestEditor(t)
	light := scene.NewLight(1, seMath.Vec3Zero)
	e.Add(light)
	e.Select(light)

	e.KeyDown(KeyTab, 0)
	assert.False(t, e.EditMode, "lights are not editable")

	e.KeyDown(KeyG, 0)
	e.PointerMove(50, 50)
	e.PointerMove(60, 50)
	e.PointerDown(60, 50)
	assert.InDelta(t, 0.1, light.Position.X, 1e-9)

	e.KeyDown(KeyZ, ModCtrl)
	assert.InDelta(t, 0, light.Position.X, 1e-12)
}

func TestReplaceKeepsSelection(t *testing.T) {
	e, plane := newTestEditor(t)
	click(e, 50, 50)

	cube := scene.NewCube(1)
	e.Replace(plane, cube)
	assert.Equal(t, scene.Object(cube), e.Selected)
	assert.Equal(t, 0, e.World.IndexOf(cube))
	assert.False(t, e.History.CanUndo())
}

func TestScreenshotHook(t *testing.T) {
	e, _ := newTestEditor(t)
	calls := 0
	e.OnScreenshot = func() { calls++ }
	e.KeyDown(KeyP, 0)
	assert.Equal(t, 1, calls)
}

func TestSaveHookGetsSelectedMesh(t *testing.T) {
	e, plane := newTestEditor(t)
	var saved []*scene.Mesh
	e.OnSave = func(m *scene.Mesh) { saved = append(saved, m) }

	e.KeyDown(KeyS, ModCtrl)
	assert.Empty(t, saved, "nothing selected")

	click(e, 50, 50)
	e.KeyDown(KeyG, 0)
	e.PointerMove(60, 50)
	e.KeyDown(KeyS, ModCtrl)
	require.Len(t, saved, 1)
	assert.Same(t, plane, saved[0])
	assert.True(t, plane.Transform.ApproxEqual(seMath.Mat4Identity(), 1e-12), "running move is cancelled")
	assert.Equal(t, scene.TransformNone, e.TransformMode, "ctrl+s does not start a scale")
}

func TestStats(t *testing.T) {
	e, _ := newTestEditor(t)
	e.Add(scene.NewCube(1))
	objects, vertices, faces := e.Stats()
	assert.Equal(t, 2, objects)
	assert.Equal(t, 12, vertices)
	assert.Equal(t, 14, faces)
}

func TestAddPrimitiveAtTarget(t *testing.T) {
	e, _ := newTestEditor(t)
	e.World.Camera.Target = seMath.NewVec3(1, 2, 3)

	e.KeyDown(KeyA, ModShift)
	m, ok := e.SelectedMesh()
	require.True(t, ok)
	assert.Equal(t, "Plane", m.Name())
	assert.InDelta(t, 2, m.Transform[1][3], 1e-12)
	assert.Equal(t, 1, e.World.IndexOf(m))

	e.KeyDown(KeyZ, ModCtrl)
	assert.Equal(t, -1, e.World.IndexOf(m))
	assert.Nil(t, e.Selected)
}
