package scene

import (
	seMath "scene-editor/math"
)

// NewCube returns an editable axis-aligned cube centred on the origin with
// outward-facing counter-clockwise triangles.
func NewCube(size float64) *Mesh {
	s := size / 2

	vertices := []seMath.Vec4{
		// Front face
		seMath.Point(-s, -s, s), // 0
		seMath.Point(s, -s, s),  // 1
		seMath.Point(s, s, s),   // 2
		seMath.Point(-s, s, s),  // 3
		// Back face
		seMath.Point(-s, -s, -s), // 4
		seMath.Point(s, -s, -s),  // 5
		seMath.Point(s, s, -s),   // 6
		seMath.Point(-s, s, -s),  // 7
	}

	indices := []int{
		0, 1, 2, 0, 2, 3, // front
		1, 5, 6, 1, 6, 2, // right
		5, 4, 7, 5, 7, 6, // back
		4, 0, 3, 4, 3, 7, // left
		3, 2, 6, 3, 6, 7, // top
		4, 5, 1, 4, 1, 0, // bottom
	}

	return NewMesh("Cube", vertices, indices, true)
}

// NewPlane returns an editable square in the XY plane facing +Z.
func NewPlane(width float64) *Mesh {
	s := width / 2

	vertices := []seMath.Vec4{
		seMath.Point(-s, -s, 0),
		seMath.Point(s, -s, 0),
		seMath.Point(s, s, 0),
		seMath.Point(-s, s, 0),
	}
	indices := []int{0, 1, 2, 0, 2, 3}

	return NewMesh("Plane", vertices, indices, true)
}
