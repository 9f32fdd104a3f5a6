package editor

import (
	"fmt"
	"log/slog"

	"scene-editor/core"
	"scene-editor/scene"
)

// Options configures a new Editor. Zero values select the defaults.
type Options struct {
	Width, Height float64
	PickRadius    float64
	HistoryDepth  int
	ShowGizmo     bool
	Logger        *slog.Logger
}

// Editor is the interaction context of the scene editor. The host feeds it
// decoded input events and calls Frame once per tick; handlers mutate the
// world and camera directly and take effect on the next frame.
type Editor struct {
	World    *scene.World
	Selected scene.Object

	EditMode      bool
	TransformMode scene.TransformMode
	Axis          scene.Axis

	StatusText string

	Input   *InputState
	History *History

	// OnScreenshot is called when the screenshot key is pressed.
	OnScreenshot func()
	// OnSave is called with the selected mesh on ctrl+s.
	OnSave func(*scene.Mesh)

	width, height float64
	pickRadius    float64

	// state of the object before the running transform or extrusion
	pending *snapshot

	log *slog.Logger
}

// NewEditor wraps a world. The world's camera is resized to the viewport.
func NewEditor(world *scene.World, opts Options) *Editor {
	if opts.PickRadius <= 0 {
		opts.PickRadius = scene.VertexPickRadius
	}
	if opts.HistoryDepth <= 0 {
		opts.HistoryDepth = 100
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	world.ShowGizmo = opts.ShowGizmo

	e := &Editor{
		World:      world,
		Input:      NewInputState(),
		History:    NewHistory(opts.HistoryDepth),
		StatusText: "Ready",
		pickRadius: opts.PickRadius,
		log:        opts.Logger,
	}
	e.Resize(opts.Width, opts.Height)
	return e
}

// Size returns the current viewport size.
func (e *Editor) Size() (width, height float64) { return e.width, e.height }

// Extruding reports whether an extrusion is in progress.
func (e *Editor) Extruding() bool {
	m, ok := e.SelectedMesh()
	return ok && m.Extruding()
}

// Add adds o to the world as an undoable action.
func (e *Editor) Add(o scene.Object) {
	e.History.Do(NewAddObjectCommand(e.World, o))
	e.log.Debug("add object", "object", o.Name(), "kind", o.Kind())
}

// Replace swaps old for o at the same place in the draw order, keeping
// the selection on the replacement. History is cleared because recorded
// commands refer to the old object.
func (e *Editor) Replace(old, o scene.Object) {
	i := e.World.IndexOf(old)
	if i < 0 {
		e.World.AddObject(o)
	} else {
		e.World.RemoveObject(old)
		e.World.InsertObject(i, o)
	}
	if e.Selected == old {
		e.cancel()
		e.Selected = nil
		e.Select(o)
	}
	e.History.Clear()
}

// Frame renders one pass of the world to s.
func (e *Editor) Frame(s core.Surface) {
	ctx := e.World.Context(e.width, e.height, e.EditMode, e.Selected)
	e.World.Render(ctx, s)
}

func (e *Editor) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	e.width, e.height = width, height
	e.World.Camera.Resize(width, height)
}

// KeyDown handles a key press.
func (e *Editor) KeyDown(k Key, mods Modifiers) {
	e.Input.Press(k)

	if mods.Has(ModCtrl) {
		switch {
		case k == KeyZ && mods.Has(ModShift):
			e.redo()
		case k == KeyZ:
			e.undo()
		case k == KeyS:
			e.save()
		}
		return
	}

	switch k {
	case KeyX, KeyY, KeyZ:
		e.axisKey(k)
	case Key5:
		e.World.Camera.ToggleOrtho()
		e.StatusText = "Orthographic"
		if !e.World.Camera.IsOrtho {
			e.StatusText = "Perspective"
		}
	case KeyTab:
		e.toggleEditMode()
	case Key1:
		e.setSelectMode(scene.SelectVertex)
	case Key2:
		e.setSelectMode(scene.SelectFace)
	case KeyG:
		e.beginTransform(scene.TransformMove)
	case KeyR:
		e.beginTransform(scene.TransformRotate)
	case KeyS:
		e.beginTransform(scene.TransformScale)
	case KeyE:
		e.beginExtrude()
	case KeyA:
		e.addPrimitive(mods.Has(ModShift))
	case KeyBackspace, KeyDelete:
		e.deleteSelected()
	case KeyEscape:
		e.cancel()
	case KeyP:
		if e.OnScreenshot != nil {
			e.OnScreenshot()
		}
	}
}

func (e *Editor) KeyUp(k Key) {
	e.Input.Release(k)
}

// PointerMove handles an absolute pointer position. Camera keys held
// during the move take priority over extrusion and transforms.
func (e *Editor) PointerMove(x, y float64) {
	dx, dy := e.Input.Move(x, y)
	if dx == 0 && dy == 0 {
		return
	}
	cam := e.World.Camera

	switch {
	case e.Input.IsDown(KeySpace):
		cam.Orbit(dx, dy)
	case e.Input.IsDown(KeyQ):
		cam.Zoom(dy)
	case e.Input.IsDown(KeyW):
		cam.Pan(dx, dy)
	case e.Extruding():
		m, _ := e.SelectedMesh()
		m.UpdateExtrude(dy, cam.ViewDirection())
	case e.TransformMode != scene.TransformNone && e.Selected != nil:
		scene.Drag(e.Selected, scene.DragParams{
			Mode:     e.TransformMode,
			Axis:     e.Axis,
			DX:       dx,
			DY:       dy,
			ViewDir:  cam.ViewDirection(),
			EditMode: e.EditMode,
		})
	}
}

// PointerDown confirms a running transform or selects under the pointer.
func (e *Editor) PointerDown(x, y float64) {
	e.Input.Move(x, y)
	e.Input.PointerDown = true

	switch {
	case e.Extruding():
	case e.TransformMode != scene.TransformNone:
		e.commit(fmt.Sprintf("%s %s", e.TransformMode, e.Selected.Name()))
		e.TransformMode = scene.TransformNone
		e.Axis = scene.AxisNone
	default:
		e.pick(x, y)
	}
}

// PointerUp finishes an extrusion. The new geometry stays in the mesh.
func (e *Editor) PointerUp(x, y float64) {
	e.Input.Move(x, y)
	e.Input.PointerDown = false

	if m, ok := e.SelectedMesh(); ok && m.Extruding() {
		offset := m.ExtrudeOffset()
		m.FinishExtrude()
		e.commit("Extrude " + m.Name())
		e.StatusText = "Extruded"
		e.log.Info("extrude finished", "object", m.Name(), "offset", offset, "vertices", len(m.Vertices))
	}
}

func (e *Editor) axisKey(k Key) {
	if e.TransformMode == scene.TransformNone {
		if err := e.World.Camera.SnapToAxis(string(k)); err != nil {
			e.log.Warn("snap view", "error", err)
			return
		}
		e.StatusText = "View " + string(k)
		return
	}
	axis, err := scene.ParseAxis(string(k))
	if err != nil {
		e.log.Warn("axis constraint", "error", err)
		return
	}
	if e.Axis == axis {
		e.Axis = scene.AxisNone
	} else {
		e.Axis = axis
	}
	e.StatusText = fmt.Sprintf("%s along %s", e.TransformMode, e.Axis)
}

func (e *Editor) toggleEditMode() {
	if e.EditMode {
		e.setEditMode(false)
		e.StatusText = "Object Mode"
		return
	}
	m, ok := e.SelectedMesh()
	if !ok || !m.Editable() {
		return
	}
	e.setEditMode(true)
	e.StatusText = fmt.Sprintf("Edit Mode (%s)", m.Mode)
}

func (e *Editor) setEditMode(on bool) {
	if e.EditMode == on {
		return
	}
	e.cancel()
	e.EditMode = on
	if e.Selected != nil {
		e.Selected.ClearSelection()
	}
	e.log.Debug("edit mode", "on", on)
}

func (e *Editor) setSelectMode(mode scene.SelectMode) {
	m, ok := e.SelectedMesh()
	if !ok || !e.EditMode || e.Extruding() {
		return
	}
	m.Mode = mode
	m.SelectedVertex = scene.NoSelection
	m.SelectedFace = scene.NoSelection
	e.StatusText = fmt.Sprintf("Select: %s", mode)
	e.log.Debug("select mode", "mode", mode)
}

func (e *Editor) beginTransform(mode scene.TransformMode) {
	if e.Selected == nil || e.Extruding() {
		return
	}
	if e.pending == nil {
		s := takeSnapshot(e.Selected)
		e.pending = &s
	}
	e.TransformMode = mode
	e.Axis = scene.AxisNone
	e.StatusText = fmt.Sprintf("Tool: %s", mode)
}

func (e *Editor) beginExtrude() {
	m, ok := e.SelectedMesh()
	if !ok || !e.EditMode || m.Mode != scene.SelectFace || e.TransformMode != scene.TransformNone {
		return
	}
	before := takeSnapshot(m)
	if !m.StartExtrude() {
		return
	}
	e.pending = &before
	e.StatusText = "Extrude"
	e.log.Info("extrude started", "object", m.Name(), "face", m.SelectedFace/3)
}

// commit pushes the pending edit onto the history.
func (e *Editor) commit(desc string) {
	if e.pending == nil {
		return
	}
	e.History.Do(newEditCommand(*e.pending, desc))
	e.pending = nil
	e.StatusText = desc
}

// cancel abandons a running transform or extrusion and restores the
// object to its state before it began.
func (e *Editor) cancel() {
	if e.pending != nil {
		e.pending.restore()
		e.pending = nil
		e.StatusText = "Cancelled"
	}
	e.TransformMode = scene.TransformNone
	e.Axis = scene.AxisNone
}

// addPrimitive adds a unit cube, or a plane with shift, at the camera
// target and selects it.
func (e *Editor) addPrimitive(plane bool) {
	if e.EditMode || e.TransformMode != scene.TransformNone {
		return
	}
	m := scene.NewCube(1)
	if plane {
		m = scene.NewPlane(2)
	}
	m.Translate(e.World.Camera.Target)
	e.Add(m)
	e.Select(m)
}

func (e *Editor) deleteSelected() {
	o := e.Selected
	if o == nil {
		return
	}
	e.cancel()
	e.Select(nil)
	e.History.Do(NewRemoveObjectCommand(e.World, o))
	e.StatusText = "Deleted " + o.Name()
	e.log.Debug("delete object", "object", o.Name())
}

func (e *Editor) save() {
	m, ok := e.SelectedMesh()
	if !ok || e.OnSave == nil {
		return
	}
	e.cancel()
	e.OnSave(m)
}

func (e *Editor) undo() {
	e.cancel()
	cmd := e.History.Undo()
	if cmd == nil {
		return
	}
	e.dropStaleSelection()
	e.StatusText = "Undo " + cmd.Description()
	e.log.Info("undo", "action", cmd.Description())
}

func (e *Editor) redo() {
	e.cancel()
	cmd := e.History.Redo()
	if cmd == nil {
		return
	}
	e.dropStaleSelection()
	e.StatusText = "Redo " + cmd.Description()
	e.log.Info("redo", "action", cmd.Description())
}
