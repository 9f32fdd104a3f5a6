package scene

import (
	"fmt"
	"math"

	seMath "scene-editor/math"
)

const (
	OrbitSensitivity = 0.01
	ZoomSensitivity  = 0.001
	PanSpeed         = 0.01
	OrthoZoomSpeed   = 0.05

	MinRadius = 0.1
	MinFOV    = 2.0
	MaxFOV    = 180.0

	// orthoScale converts the FOV (degrees) into an ortho half-height in world units.
	orthoScale = 20.0
)

// Camera is an orbit camera around Target. Position is derived from
// Radius, Azimuth and Elevation whenever the camera orbits or zooms.
// Every mutation rebuilds the cached matrices immediately.
type Camera struct {
	Target    seMath.Vec3
	Position  seMath.Vec3
	Radius    float64
	Azimuth   float64
	Elevation float64

	FOV         float64 // vertical, in degrees
	AspectRatio float64
	Near        float64
	Far         float64
	IsOrtho     bool

	viewMatrix       seMath.Mat4
	projectionMatrix seMath.Mat4
	viewProjMatrix   seMath.Mat4
}

// NewCamera returns a camera orbiting the origin at radius 5. The FOV is
// clamped to [MinFOV, MaxFOV].
func NewCamera(fov, aspectRatio, near, far float64) *Camera {
	c := &Camera{
		Target:      seMath.Vec3Zero,
		Radius:      5,
		FOV:         clampFOV(fov),
		AspectRatio: aspectRatio,
		Near:        near,
		Far:         far,
	}
	c.rebuildProjection()
	c.Orbit(0, 0)
	return c
}

func (c *Camera) View() seMath.Mat4           { return c.viewMatrix }
func (c *Camera) Projection() seMath.Mat4     { return c.projectionMatrix }
func (c *Camera) ProjectionView() seMath.Mat4 { return c.viewProjMatrix }

// Orbit accumulates pixel deltas into azimuth and elevation, clamps the
// elevation to the poles and re-aims the camera at its target.
func (c *Camera) Orbit(dx, dy float64) {
	c.OrbitTo(c.Azimuth+OrbitSensitivity*dx, c.Elevation+OrbitSensitivity*dy)
}

// OrbitTo places the camera at absolute spherical angles around the target.
func (c *Camera) OrbitTo(azimuth, elevation float64) {
	c.Azimuth = azimuth
	c.Elevation = math.Max(-math.Pi/2, math.Min(math.Pi/2, elevation))

	cosEl := math.Cos(c.Elevation)
	offset := seMath.Vec3{
		X: c.Radius * cosEl * math.Sin(c.Azimuth),
		Y: c.Radius * math.Sin(c.Elevation),
		Z: c.Radius * cosEl * math.Cos(c.Azimuth),
	}
	c.aim(c.Target.Add(offset), c.Target, seMath.Vec3Up)
}

// LookAt places the eye and target directly and re-derives radius,
// azimuth and elevation from eye - target so later orbits and zooms
// continue from the new position.
func (c *Camera) LookAt(eye, target, up seMath.Vec3) {
	offset := eye.Sub(target)
	c.Radius = math.Max(MinRadius, offset.Length())
	c.Azimuth = math.Atan2(offset.X, offset.Z)
	c.Elevation = math.Asin(math.Max(-1, math.Min(1, offset.Y/math.Max(offset.Length(), 1e-12))))
	c.aim(eye, target, up)
}

// SetRadius sets the orbit distance, clamped to MinRadius, and moves the eye.
func (c *Camera) SetRadius(r float64) {
	c.Radius = math.Max(MinRadius, r)
	c.Orbit(0, 0)
}

func (c *Camera) aim(eye, target, up seMath.Vec3) {
	c.Position = eye
	c.Target = target
	c.viewMatrix = seMath.Mat4LookAt(eye, target, up)
	c.viewProjMatrix = c.projectionMatrix.Mul(c.viewMatrix)
}

// Pan slides eye and target together in the view plane.
func (c *Camera) Pan(dx, dy float64) {
	offset := c.Right().Mul(-dx * PanSpeed).Add(c.Up().Mul(dy * PanSpeed))
	c.aim(c.Position.Add(offset), c.Target.Add(offset), seMath.Vec3Up)
}

// Zoom dollies the camera in perspective mode and widens or narrows the
// view volume in orthographic mode.
func (c *Camera) Zoom(amount float64) {
	if c.IsOrtho {
		c.FOV = clampFOV(c.FOV + amount*OrthoZoomSpeed)
		c.rebuildProjection()
		c.viewProjMatrix = c.projectionMatrix.Mul(c.viewMatrix)
		return
	}
	c.Radius = math.Max(MinRadius, c.Radius+amount*ZoomSensitivity*c.Radius)
	c.Orbit(0, 0)
}

// SnapToAxis looks down the given world axis ("x", "y" or "z").
func (c *Camera) SnapToAxis(axis string) error {
	switch axis {
	case "x":
		c.OrbitTo(math.Pi/2, 0)
	case "y":
		c.OrbitTo(0, math.Pi/2)
	case "z":
		c.OrbitTo(0, 0)
	default:
		return fmt.Errorf("snap to axis %q: %w", axis, ErrInvalidAxis)
	}
	return nil
}

func clampFOV(fov float64) float64 {
	return math.Max(MinFOV, math.Min(MaxFOV, fov))
}

// Resize updates the aspect ratio and projection. The view is unchanged.
func (c *Camera) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	c.AspectRatio = width / height
	c.rebuildProjection()
	c.viewProjMatrix = c.projectionMatrix.Mul(c.viewMatrix)
}

func (c *Camera) SetOrtho(ortho bool) {
	c.IsOrtho = ortho
	c.rebuildProjection()
	c.viewProjMatrix = c.projectionMatrix.Mul(c.viewMatrix)
}

func (c *Camera) ToggleOrtho() {
	c.SetOrtho(!c.IsOrtho)
}

// ToNDC converts a clip-space point to normalized device coordinates.
// Orthographic clip space already is NDC.
func (c *Camera) ToNDC(clip seMath.Vec4) seMath.Vec3 {
	if c.IsOrtho {
		return clip.ToVec3()
	}
	return clip.PerspectiveDivide()
}

// ViewDirection is the unit vector from the target toward the eye.
func (c *Camera) ViewDirection() seMath.Vec3 {
	return c.Position.Sub(c.Target).Normalize()
}

func (c *Camera) Forward() seMath.Vec3 {
	return c.ViewDirection().Negate()
}

func (c *Camera) Right() seMath.Vec3 {
	m := c.viewMatrix
	return seMath.Vec3{X: m[0][0], Y: m[0][1], Z: m[0][2]}
}

func (c *Camera) Up() seMath.Vec3 {
	m := c.viewMatrix
	return seMath.Vec3{X: m[1][0], Y: m[1][1], Z: m[1][2]}
}

func (c *Camera) rebuildProjection() {
	if c.IsOrtho {
		c.projectionMatrix = seMath.Mat4Orthographic(c.FOV/orthoScale, c.AspectRatio, c.Near, c.Far)
		return
	}
	c.projectionMatrix = seMath.Mat4Perspective(c.FOV*math.Pi/180, c.AspectRatio, c.Near, c.Far)
}
