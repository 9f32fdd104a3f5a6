package scene

import (
	"math"

	"scene-editor/core"
	seMath "scene-editor/math"
)

// Shader turns a face normal and the light direction into a fill color.
type Shader interface {
	Shade(normal, lightDir seMath.Vec3) core.Color
}

// Lambertian is diffuse gray shading with an ambient floor. The 8-bit
// level is clamped to [50, 170] so faces stay distinguishable from the
// background and from the white vertex markers.
type Lambertian struct {
	Diffuse float64
}

func NewLambertian() Lambertian {
	return Lambertian{Diffuse: 1}
}

func (l Lambertian) Shade(normal, lightDir seMath.Vec3) core.Color {
	intensity := l.Diffuse * math.Max(0.2, normal.Normalize().Dot(lightDir.Normalize()))
	level := int(math.Min(math.Max(intensity*255, 50), 170))
	return core.Gray(level)
}
