package tracer

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	seMath "scene-editor/math"
	"scene-editor/scene"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestIntersectHitAndMiss(t *testing.T) {
	v0 := seMath.NewVec3(-1, -1, 0)
	v1 := seMath.NewVec3(1, -1, 0)
	v2 := seMath.NewVec3(0, 1, 0)

	ray := Ray{Origin: seMath.NewVec3(0, 0, -5), Direction: seMath.NewVec3(0, 0, 1)}
	dist, ok := Intersect(ray, v0, v1, v2)
	require.True(t, ok)
	assert.InDelta(t, 5, dist, 1e-12)
	assert.True(t, ray.At(dist).ApproxEqual(seMath.Vec3Zero, 1e-12), "got %v", ray.At(dist))

	_, ok = Intersect(Ray{Origin: ray.Origin, Direction: seMath.NewVec3(1, 0, 0)}, v0, v1, v2)
	assert.False(t, ok, "parallel")

	_, ok = Intersect(Ray{Origin: seMath.NewVec3(0, 0, 5), Direction: seMath.NewVec3(0, 0, 1)}, v0, v1, v2)
	assert.False(t, ok, "behind the origin")

	_, ok = Intersect(Ray{Origin: seMath.NewVec3(3, 0, -5), Direction: seMath.NewVec3(0, 0, 1)}, v0, v1, v2)
	assert.False(t, ok, "outside")
}

func TestIntersectMeshUsesTransform(t *testing.T) {
	plane := scene.NewPlane(2)
	plane.Translate(seMath.NewVec3(0, 0, 2))

	h := IntersectMesh(Ray{Origin: seMath.NewVec3(0.5, -0.5, -5), Direction: seMath.NewVec3(0, 0, 1)}, plane)
	require.True(t, h.Hit)
	assert.InDelta(t, 7, h.Distance, 1e-12)
	assert.Equal(t, 0, h.Face)
	assert.True(t, h.Normal.ApproxEqual(seMath.NewVec3(0, 0, 1), 1e-12))
	assert.True(t, h.Point.ApproxEqual(seMath.NewVec3(0.5, -0.5, 2), 1e-12))
}

func TestIntersectWorldSkipsNonMeshes(t *testing.T) {
	w := scene.NewWorld(scene.NewCamera(60, 1, 0.1, 1000), 10, 10)
	w.AddObject(scene.NewGrid(10, 10))
	w.AddObject(scene.NewLight(1, seMath.Vec3Zero))
	ray := Ray{Origin: seMath.NewVec3(0, 5, 0), Direction: seMath.NewVec3(0, -1, 0)}
	assert.False(t, IntersectWorld(ray, w).Hit)

	near := scene.NewCube(1)
	far := scene.NewCube(1)
	far.Translate(seMath.NewVec3(0, -3, 0))
	w.AddObject(far)
	w.AddObject(near)
	h := IntersectWorld(ray, w)
	require.True(t, h.Hit)
	assert.Same(t, near, h.Mesh)
}

func TestCameraRayCenter(t *testing.T) {
	cam := scene.NewCamera(60, 1, 0.1, 1000)
	tr := New(Options{Width: 10, Height: 10, Logger: quietLogger})

	ray := tr.CameraRay(cam, 5, 5)
	assert.True(t, ray.Origin.ApproxEqual(seMath.NewVec3(0, 0, 5), 1e-12))
	assert.True(t, ray.Direction.ApproxEqual(seMath.NewVec3(0, 0, -1), 1e-12))

	right := tr.CameraRay(cam, 10, 5)
	assert.Greater(t, right.Direction.X, 0.0)
	top := tr.CameraRay(cam, 5, 0)
	assert.Greater(t, top.Direction.Y, 0.0)
}

func TestTraceShadesFacingTriangle(t *testing.T) {
	w := scene.NewWorld(scene.NewCamera(60, 1, 0.1, 1000), 10, 10)
	w.AddObject(scene.NewPlane(2))
	w.AddObject(scene.NewLight(1, seMath.NewVec3(0, 0, -1)))
	tr := New(Options{Width: 10, Height: 10, Logger: quietLogger})

	c := tr.Trace(Ray{Origin: seMath.NewVec3(0.5, -0.5, 5), Direction: seMath.NewVec3(0, 0, -1)}, w)
	assert.True(t, c.ApproxEqual(seMath.Vec3One, 1e-12), "normal faces against the light")

	c = tr.Trace(Ray{Origin: seMath.NewVec3(5, 5, 5), Direction: seMath.NewVec3(0, 0, -1)}, w)
	assert.Equal(t, seMath.Vec3Zero, c)
}

func TestRenderIsDeterministicPerSeed(t *testing.T) {
	w := scene.NewWorld(scene.NewCamera(60, 1, 0.1, 1000), 16, 16)
	w.AddObject(scene.NewPlane(2))
	w.AddObject(scene.NewLight(1, seMath.NewVec3(0, 0, -1)))

	render := func(seed uint64) *Image {
		return New(Options{Width: 16, Height: 16, Samples: 4, Seed: seed, Logger: quietLogger}).Render(w)
	}
	a, b := render(7), render(7)
	assert.Equal(t, a.Pix, b.Pix)

	lit := 0
	for _, p := range a.Pix {
		if p.X > 0 {
			lit++
		}
	}
	assert.Positive(t, lit)
	assert.Equal(t, seMath.Vec3Zero, a.At(0, 0), "corner misses the plane")
}

func TestWritePPM(t *testing.T) {
	img := NewImage(2, 1)
	img.Set(0, 0, seMath.NewVec3(1, 0.5, -1))
	img.Set(1, 0, seMath.NewVec3(2, 0, 1))

	var buf bytes.Buffer
	require.NoError(t, img.WritePPM(&buf))
	assert.Equal(t, "P6\n2 1\n255\n"+string([]byte{255, 127, 0, 255, 0, 255}), buf.String())

	rgba := img.RGBA()
	assert.Equal(t, uint8(127), rgba.RGBAAt(0, 0).G)
	assert.Equal(t, uint8(255), rgba.RGBAAt(1, 0).A)
}
