package editor

import (
	"slices"

	seMath "scene-editor/math"
	"scene-editor/scene"
)

// Command represents an undoable editor action
type Command interface {
	Execute()
	Undo()
	Description() string
}

// History manages undo/redo stacks
type History struct {
	undoStack []Command
	redoStack []Command
	maxDepth  int
}

// NewHistory creates a new history with the given max undo depth
func NewHistory(maxDepth int) *History {
	maxDepth = max(1, maxDepth)
	return &History{
		undoStack: make([]Command, 0, maxDepth),
		redoStack: make([]Command, 0, maxDepth),
		maxDepth:  maxDepth,
	}
}

// Do executes a command and pushes it to the undo stack
func (h *History) Do(cmd Command) {
	cmd.Execute()
	h.undoStack = append(h.undoStack, cmd)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = slices.Delete(h.undoStack, 0, 1)
	}
	h.redoStack = h.redoStack[:0]
}

// Undo reverts the last action and returns it, or nil when there is none.
func (h *History) Undo() Command {
	if len(h.undoStack) == 0 {
		return nil
	}
	cmd := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	cmd.Undo()
	h.redoStack = append(h.redoStack, cmd)
	return cmd
}

// Redo reapplies the last undone action and returns it, or nil.
func (h *History) Redo() Command {
	if len(h.redoStack) == 0 {
		return nil
	}
	cmd := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	cmd.Execute()
	h.undoStack = append(h.undoStack, cmd)
	return cmd
}

func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// Clear wipes all undo/redo history
func (h *History) Clear() {
	h.undoStack = h.undoStack[:0]
	h.redoStack = h.redoStack[:0]
}

// snapshot captures the editable state of one object: geometry and
// transform for meshes, position for lights.
type snapshot struct {
	object    scene.Object
	vertices  []seMath.Vec4
	indices   []int
	transform seMath.Mat4
	position  seMath.Vec3
}

func takeSnapshot(o scene.Object) snapshot {
	s := snapshot{object: o}
	if m, ok := o.AsMesh(); ok {
		s.vertices = slices.Clone(m.Vertices)
		s.indices = slices.Clone(m.Indices)
		s.transform = m.Transform
	}
	if l, ok := o.AsLight(); ok {
		s.position = l.Position
	}
	return s
}

func (s snapshot) restore() {
	if m, ok := s.object.AsMesh(); ok {
		if len(m.Indices) != len(s.indices) {
			m.ClearSelection()
		}
		m.Vertices = slices.Clone(s.vertices)
		m.Indices = slices.Clone(s.indices)
		m.Transform = s.transform
	}
	if l, ok := s.object.AsLight(); ok {
		l.Position = s.position
	}
}

// EditCommand records an interactive edit as before/after snapshots of
// the edited object. The edit has already been applied when it is pushed.
type EditCommand struct {
	before, after snapshot
	desc          string
}

func newEditCommand(before snapshot, desc string) *EditCommand {
	return &EditCommand{before: before, after: takeSnapshot(before.object), desc: desc}
}

func (c *EditCommand) Execute()            { c.after.restore() }
func (c *EditCommand) Undo()               { c.before.restore() }
func (c *EditCommand) Description() string { return c.desc }

// AddObjectCommand records adding an object to the world
type AddObjectCommand struct {
	World  *scene.World
	Object scene.Object
}

func NewAddObjectCommand(w *scene.World, o scene.Object) *AddObjectCommand {
	return &AddObjectCommand{World: w, Object: o}
}

func (c *AddObjectCommand) Execute()            { c.World.AddObject(c.Object) }
func (c *AddObjectCommand) Undo()               { c.World.RemoveObject(c.Object) }
func (c *AddObjectCommand) Description() string { return "Add " + c.Object.Name() }

// RemoveObjectCommand records deleting an object. Undo puts it back at its
// old place in the draw order.
type RemoveObjectCommand struct {
	World  *scene.World
	Object scene.Object
	index  int
}

func NewRemoveObjectCommand(w *scene.World, o scene.Object) *RemoveObjectCommand {
	return &RemoveObjectCommand{World: w, Object: o, index: w.IndexOf(o)}
}

func (c *RemoveObjectCommand) Execute() {
	c.index = c.World.IndexOf(c.Object)
	c.World.RemoveObject(c.Object)
}
func (c *RemoveObjectCommand) Undo()               { c.World.InsertObject(c.index, c.Object) }
func (c *RemoveObjectCommand) Description() string { return "Delete " + c.Object.Name() }
