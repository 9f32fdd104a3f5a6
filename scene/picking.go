package scene

import (
	"math"

	seMath "scene-editor/math"
)

const (
	// VertexPickRadius is the default pixel radius for vertex picking.
	VertexPickRadius = 5.0

	pointInTriangleTolerance = 1e-4
)

// CheckSelection tests the point against the screen-space bounding box of
// the last render. A mesh that has never been rendered is never hit.
func (m *Mesh) CheckSelection(x, y float64) bool {
	if len(m.screenCoords) == 0 {
		return false
	}
	minX, maxX := m.screenCoords[0].X, m.screenCoords[0].X
	minY, maxY := m.screenCoords[0].Y, m.screenCoords[0].Y
	for _, p := range m.screenCoords[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return minX <= x && x <= maxX && minY <= y && y <= maxY
}

// SelectVertexAt selects the first vertex within radius pixels of (x, y).
// It only acts in vertex mode. The face selection is always cleared and a
// miss clears the vertex selection.
func (m *Mesh) SelectVertexAt(x, y, radius float64) bool {
	if len(m.screenCoords) == 0 || m.Mode != SelectVertex {
		return false
	}
	m.SelectedFace = NoSelection

	for i, p := range m.screenCoords {
		dx := p.X - x
		dy := p.Y - y
		if dx*dx+dy*dy < radius*radius {
			m.SelectedVertex = i
			return true
		}
	}
	m.SelectedVertex = NoSelection
	return false
}

// SelectFaceAt selects the nearest face under (x, y) in face mode.
// Picking the already selected face deselects it.
func (m *Mesh) SelectFaceAt(x, y float64) bool {
	if len(m.screenCoords) == 0 || m.Mode != SelectFace {
		return false
	}
	m.SelectedVertex = NoSelection

	p := seMath.Vec2{X: x, Y: y}
	best := NoSelection
	bestDepth := math.Inf(1)
	for f := 0; f+2 < len(m.Indices); f += 3 {
		i0, i1, i2, ok := m.Face(f)
		if !ok || i0 >= len(m.screenCoords) || i1 >= len(m.screenCoords) || i2 >= len(m.screenCoords) {
			continue
		}
		a, b, c := m.screenCoords[i0], m.screenCoords[i1], m.screenCoords[i2]
		if !PointInTriangle(p, xy(a), xy(b), xy(c)) {
			continue
		}
		depth := (a.Z + b.Z + c.Z) / 3
		if depth < bestDepth {
			best, bestDepth = f, depth
		}
	}

	if best == NoSelection {
		m.SelectedFace = NoSelection
		return false
	}
	if best == m.SelectedFace {
		m.SelectedFace = NoSelection
	} else {
		m.SelectedFace = best
	}
	return true
}

// PointInTriangle compares the triangle's area with the summed areas of
// the three sub-triangles formed with p.
func PointInTriangle(p, a, b, c seMath.Vec2) bool {
	area := triangleArea(a, b, c)
	sum := triangleArea(p, b, c) + triangleArea(a, p, c) + triangleArea(a, b, p)
	return math.Abs(area-sum) < pointInTriangleTolerance
}

func triangleArea(a, b, c seMath.Vec2) float64 {
	return math.Abs(b.Sub(a).Cross(c.Sub(a))) / 2
}

func xy(v seMath.Vec3) seMath.Vec2 {
	return seMath.Vec2{X: v.X, Y: v.Y}
}
