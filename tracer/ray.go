package tracer

import (
	"math"

	seMath "scene-editor/math"
	"scene-editor/scene"
)

// Epsilon rejects near-parallel rays and self hits.
const Epsilon = 1e-8

// Ray represents a ray in 3D space
type Ray struct {
	Origin    seMath.Vec3
	Direction seMath.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) seMath.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Hit stores the result of a ray intersection test
type Hit struct {
	Hit      bool
	Distance float64
	Point    seMath.Vec3
	Normal   seMath.Vec3
	Mesh     *scene.Mesh
	Face     int // offset of the face's first index
}

// Intersect implements the Möller–Trumbore ray-triangle test. It returns
// the distance along the ray to the hit, if any.
func Intersect(ray Ray, v0, v1, v2 seMath.Vec3) (float64, bool) {
	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	if math.Abs(a) < Epsilon {
		return 0, false // parallel
	}

	f := 1.0 / a
	s := ray.Origin.Sub(v0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return 0, false
	}

	t := f * edge2.Dot(q)
	if t > Epsilon {
		return t, true
	}
	return 0, false
}

// IntersectMesh finds the nearest face of m hit by ray, with the mesh
// transform applied.
func IntersectMesh(ray Ray, m *scene.Mesh) Hit {
	return intersectMesh(ray, target{mesh: m, world: m.WorldVertices()})
}

// target is a mesh with its world-space vertices resolved once per render.
type target struct {
	mesh  *scene.Mesh
	world []seMath.Vec3
}

func targets(w *scene.World) []target {
	meshes := w.Meshes()
	out := make([]target, len(meshes))
	for i, m := range meshes {
		out[i] = target{mesh: m, world: m.WorldVertices()}
	}
	return out
}

func intersectMesh(ray Ray, tg target) Hit {
	closest := Hit{Distance: math.Inf(1)}
	m := tg.mesh
	for f := 0; f+2 < len(m.Indices); f += 3 {
		i0, i1, i2, ok := m.Face(f)
		if !ok {
			continue
		}
		v0, v1, v2 := tg.world[i0], tg.world[i1], tg.world[i2]

		t, hit := Intersect(ray, v0, v1, v2)
		if hit && t < closest.Distance {
			closest.Hit = true
			closest.Distance = t
			closest.Point = ray.At(t)
			closest.Normal = v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
			closest.Mesh = m
			closest.Face = f
		}
	}
	return closest
}

func intersectAll(ray Ray, tgs []target) Hit {
	closest := Hit{Distance: math.Inf(1)}
	for _, tg := range tgs {
		if h := intersectMesh(ray, tg); h.Hit && h.Distance < closest.Distance {
			closest = h
		}
	}
	return closest
}

// IntersectWorld tests ray against every mesh in w and returns the
// closest hit. Grids and lights are skipped.
func IntersectWorld(ray Ray, w *scene.World) Hit {
	return intersectAll(ray, targets(w))
}
