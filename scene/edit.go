package scene

import (
	"fmt"

	seMath "scene-editor/math"
)

// MovementFactor converts pointer pixels into world units and radians.
const MovementFactor = 0.01

type TransformMode int

const (
	TransformNone TransformMode = iota
	TransformMove
	TransformRotate
	TransformScale
)

func (t TransformMode) String() string {
	switch t {
	case TransformMove:
		return "move"
	case TransformRotate:
		return "rotate"
	case TransformScale:
		return "scale"
	}
	return "none"
}

// Axis is an optional world-axis constraint.
type Axis int

const (
	AxisNone Axis = iota
	AxisX
	AxisY
	AxisZ
)

func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return AxisNone, fmt.Errorf("parse axis %q: %w", s, ErrInvalidAxis)
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return ""
}

// Vector returns the unit world axis, or zero for AxisNone.
func (a Axis) Vector() seMath.Vec3 {
	switch a {
	case AxisX:
		return seMath.Vec3Right
	case AxisY:
		return seMath.Vec3Up
	case AxisZ:
		return seMath.Vec3Front
	}
	return seMath.Vec3Zero
}

// Constrain keeps only the component of v along a.
func (a Axis) Constrain(v seMath.Vec3) seMath.Vec3 {
	switch a {
	case AxisX:
		return seMath.Vec3{X: v.X}
	case AxisY:
		return seMath.Vec3{Y: v.Y}
	case AxisZ:
		return seMath.Vec3{Z: v.Z}
	}
	return v
}

// DragParams describes one pointer-drag step of an interactive transform.
type DragParams struct {
	Mode     TransformMode
	Axis     Axis
	DX, DY   float64
	ViewDir  seMath.Vec3
	EditMode bool
}

// ScreenBasis returns the world-space directions of screen right and screen
// up for a camera looking back along viewDir.
func ScreenBasis(viewDir seMath.Vec3) (right, up seMath.Vec3) {
	_, right, up = seMath.LookAtBasis(viewDir, seMath.Vec3Zero, seMath.Vec3Up)
	return right, up
}

// MoveVector maps a pointer delta onto the view plane, then applies the
// axis constraint.
func (p DragParams) MoveVector() seMath.Vec3 {
	right, up := ScreenBasis(p.ViewDir)
	move := right.Mul(p.DX * MovementFactor).Add(up.Mul(-p.DY * MovementFactor))
	return p.Axis.Constrain(move)
}

func (p DragParams) rotation() (float64, seMath.Vec3) {
	axis := p.Axis.Vector()
	if p.Axis == AxisNone {
		axis = p.ViewDir
	}
	return p.DX * MovementFactor, axis
}

func (p DragParams) scale() seMath.Vec3 {
	f := 1 + p.DY*MovementFactor
	switch p.Axis {
	case AxisX:
		return seMath.Vec3{X: f, Y: 1, Z: 1}
	case AxisY:
		return seMath.Vec3{X: 1, Y: f, Z: 1}
	case AxisZ:
		return seMath.Vec3{X: 1, Y: 1, Z: f}
	}
	return seMath.Vec3{X: f, Y: f, Z: f}
}

// Drag applies one drag step to o. Meshes honour their vertex and face
// selections; every other kind transforms as a whole.
func Drag(o Object, p DragParams) {
	if m, ok := o.AsMesh(); ok {
		m.Drag(p)
		return
	}
	switch p.Mode {
	case TransformMove:
		o.Translate(p.MoveVector())
	case TransformRotate:
		o.Rotate(p.rotation())
	case TransformScale:
		o.Scale(p.scale())
	}
}

func (m *Mesh) Drag(p DragParams) {
	if !p.EditMode || m.Mode == SelectFace {
		m.SelectedVertex = NoSelection
	}
	if !p.EditMode || m.Mode == SelectVertex {
		m.SelectedFace = NoSelection
	}

	switch p.Mode {
	case TransformMove:
		move := p.MoveVector()
		switch {
		case m.Mode == SelectVertex && m.SelectedVertex != NoSelection:
			m.displace([]int{m.SelectedVertex}, move)
		case m.Mode == SelectFace && m.SelectedFace != NoSelection:
			if i0, i1, i2, ok := m.Face(m.SelectedFace); ok {
				m.displace(uniq(i0, i1, i2), move)
			}
		default:
			m.Translate(move)
		}
	case TransformRotate:
		m.Rotate(p.rotation())
	case TransformScale:
		m.Scale(p.scale())
	}
}

func (m *Mesh) displace(vertices []int, move seMath.Vec3) {
	for _, i := range vertices {
		if i >= 0 && i < len(m.Vertices) {
			m.Vertices[i] = m.Vertices[i].Add(move.ToVec4(0))
		}
	}
}

func uniq(ids ...int) []int {
	out := ids[:0:0]
	for _, id := range ids {
		seen := false
		for _, o := range out {
			if o == id {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, id)
		}
	}
	return out
}

func (m *Mesh) Translate(v seMath.Vec3) {
	m.Transform = seMath.Mat4Translation(v).Mul(m.Transform)
}

func (m *Mesh) Rotate(angle float64, axis seMath.Vec3) {
	m.Transform = seMath.Mat4RotationAxis(axis, angle).Mul(m.Transform)
}

func (m *Mesh) Scale(v seMath.Vec3) {
	m.Transform = seMath.Mat4Scale(v).Mul(m.Transform)
}

type extrusion struct {
	face     [3]int
	added    [3]int
	original [3]seMath.Vec3
	normal   seMath.Vec3
	offset   float64
}

func (m *Mesh) Extruding() bool {
	return m.extrusion != nil
}

// StartExtrude duplicates the selected face's vertices, stitches three side
// quads between the old and new rings and caps the new face. The new face
// starts coincident with the original. It reports false without a face.
func (m *Mesh) StartExtrude() bool {
	if m.SelectedFace == NoSelection || m.extrusion != nil {
		return false
	}
	i0, i1, i2, ok := m.Face(m.SelectedFace)
	if !ok {
		return false
	}

	e := &extrusion{face: [3]int{i0, i1, i2}}
	for k, idx := range e.face {
		e.original[k] = m.Vertices[idx].ToVec3()
	}
	e.normal = e.original[1].Sub(e.original[0]).Cross(e.original[2].Sub(e.original[0])).Normalize()

	for k, p := range e.original {
		m.Vertices = append(m.Vertices, p.ToVec4(1))
		e.added[k] = len(m.Vertices) - 1
	}

	n0, n1, n2 := e.added[0], e.added[1], e.added[2]
	m.Indices = append(m.Indices,
		i0, i1, n1, i0, n1, n0,
		i1, i2, n2, i1, n2, n1,
		i2, i0, n0, i2, n0, n2,
		n0, n1, n2,
	)
	m.extrusion = e
	return true
}

// UpdateExtrude pushes the new face along its normal by the vertical
// pointer motion projected onto world Y through the screen basis.
func (m *Mesh) UpdateExtrude(dy float64, viewDir seMath.Vec3) {
	e := m.extrusion
	if e == nil {
		return
	}
	_, up := ScreenBasis(viewDir)
	e.offset += up.Mul(-dy * MovementFactor).Y

	shift := e.normal.Mul(e.offset)
	for k, idx := range e.added {
		m.Vertices[idx] = e.original[k].Add(shift).ToVec4(1)
	}
}

// ExtrudeOffset is the current distance of the new face along its normal.
func (m *Mesh) ExtrudeOffset() float64 {
	if m.extrusion == nil {
		return 0
	}
	return m.extrusion.offset
}

// FinishExtrude commits the extrusion and drops the face selection.
func (m *Mesh) FinishExtrude() {
	m.extrusion = nil
	m.SelectedFace = NoSelection
}
