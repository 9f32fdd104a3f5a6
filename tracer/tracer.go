// Package tracer renders a world offline by casting primary rays through
// each pixel and shading the nearest triangle with direct diffuse light.
package tracer

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	seMath "scene-editor/math"
	"scene-editor/scene"
)

type Options struct {
	Width, Height int
	// Samples per pixel, each jittered by up to half a pixel.
	Samples int
	// Seed for the jitter sequence. Equal seeds give equal images.
	Seed   uint64
	Logger *slog.Logger
}

type Tracer struct {
	width, height int
	samples       int
	aspect        float64
	rng           *rand.Rand
	log           *slog.Logger
}

func New(opts Options) *Tracer {
	opts.Width = max(1, opts.Width)
	opts.Height = max(1, opts.Height)
	opts.Samples = max(1, opts.Samples)
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Tracer{
		width:   opts.Width,
		height:  opts.Height,
		samples: opts.Samples,
		aspect:  float64(opts.Width) / float64(opts.Height),
		rng:     rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		log:     opts.Logger,
	}
}

// CameraRay returns the primary ray through pixel (x, y). The horizontal
// NDC coordinate is scaled by the image aspect ratio and the image plane
// sits 1/tan(fov/2) in front of the eye.
func (t *Tracer) CameraRay(cam *scene.Camera, x, y float64) Ray {
	ndcX := (2*x/float64(t.width) - 1) * t.aspect
	ndcY := 1 - 2*y/float64(t.height)

	back, right, up := seMath.LookAtBasis(cam.Position, cam.Target, seMath.Vec3Up)
	forward := back.Negate()

	focal := 1 / math.Tan(cam.FOV*math.Pi/180/2)
	dir := right.Mul(ndcX).Add(up.Mul(ndcY)).Add(forward.Mul(focal))
	return Ray{Origin: cam.Position, Direction: dir.Normalize()}
}

// Trace shades the nearest hit of ray in w. Background is black.
func (t *Tracer) Trace(ray Ray, w *scene.World) seMath.Vec3 {
	return shade(intersectAll(ray, targets(w)), w.LightDirection())
}

func shade(h Hit, lightDir seMath.Vec3) seMath.Vec3 {
	if !h.Hit {
		return seMath.Vec3Zero
	}
	intensity := max(0, h.Normal.Dot(lightDir.Negate()))
	return seMath.Vec3One.Mul(intensity)
}

// Render traces the whole image. Geometry, light and camera are read once
// when the render starts.
func (t *Tracer) Render(w *scene.World) *Image {
	start := time.Now()
	img := NewImage(t.width, t.height)
	tgs := targets(w)
	lightDir := w.LightDirection()
	cam := *w.Camera

	total := t.width * t.height
	step := max(1, total/10)
	done := 0

	for y := range t.height {
		for x := range t.width {
			var sum seMath.Vec3
			for range t.samples {
				rx := float64(x) + t.rng.Float64() - 0.5
				ry := float64(y) + t.rng.Float64() - 0.5
				sum = sum.Add(shade(intersectAll(t.CameraRay(&cam, rx, ry), tgs), lightDir))
			}
			img.Set(x, y, sum.Mul(1/float64(t.samples)))

			done++
			if done%step == 0 {
				t.log.Info("trace progress", "percent", 100*done/total)
			}
		}
	}

	t.log.Info("trace finished",
		"width", t.width, "height", t.height, "samples", t.samples,
		"meshes", len(tgs), "elapsed", time.Since(start).Round(time.Millisecond))
	return img
}
