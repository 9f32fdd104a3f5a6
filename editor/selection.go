package editor

import (
	"fmt"

	"scene-editor/scene"
)

// Select makes o the selected object. The previously selected object loses
// its vertex and face selections. Passing nil deselects.
func (e *Editor) Select(o scene.Object) {
	if o == e.Selected {
		return
	}
	if e.Selected != nil {
		e.Selected.ClearSelection()
	}
	e.Selected = o
	if o == nil {
		e.setEditMode(false)
		e.StatusText = "Selection cleared"
		return
	}
	if m, ok := o.AsMesh(); !ok || !m.Editable() {
		e.setEditMode(false)
	}
	e.StatusText = fmt.Sprintf("Selected: %s", o.Name())
	e.log.Debug("select", "object", o.Name(), "kind", o.Kind())
}

// SelectedMesh returns the selected object as a mesh.
func (e *Editor) SelectedMesh() (*scene.Mesh, bool) {
	if e.Selected == nil {
		return nil, false
	}
	return e.Selected.AsMesh()
}

// pick handles a click outside any transform: component picking on the
// selected mesh in edit mode, object picking otherwise.
func (e *Editor) pick(x, y float64) {
	if m, ok := e.SelectedMesh(); ok && e.EditMode {
		switch m.Mode {
		case scene.SelectVertex:
			if m.SelectVertexAt(x, y, e.pickRadius) {
				e.StatusText = fmt.Sprintf("Vertex %d", m.SelectedVertex)
			}
		case scene.SelectFace:
			if m.SelectFaceAt(x, y) && m.SelectedFace != scene.NoSelection {
				e.StatusText = fmt.Sprintf("Face %d", m.SelectedFace/3)
			}
		}
		e.log.Debug("component pick", "mode", m.Mode, "vertex", m.SelectedVertex, "face", m.SelectedFace)
		return
	}
	e.Select(e.World.PickObject(x, y))
}

// dropStaleSelection deselects an object that undo or redo took out of
// the world.
func (e *Editor) dropStaleSelection() {
	if e.Selected != nil && e.World.IndexOf(e.Selected) < 0 {
		e.Select(nil)
	}
}

// Stats returns scene statistics for the status line.
func (e *Editor) Stats() (objectCount, vertexCount, faceCount int) {
	for _, m := range e.World.Meshes() {
		objectCount++
		vertexCount += len(m.Vertices)
		faceCount += m.TriangleCount()
	}
	return
}
