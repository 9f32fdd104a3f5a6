package math

import "math"

// Mat4 is a row-major 4x4 matrix. Points are column vectors, so a
// transform is applied as M.MulVec(p) and translation lives in column 3.
type Mat4 [4][4]float64

func Mat4Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func Mat4Zero() Mat4 {
	return Mat4{}
}

// Mul returns m·other.
func (m Mat4) Mul(other Mat4) Mat4 {
	result := Mat4Zero()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				result[i][j] += m[i][k] * other[k][j]
			}
		}
	}
	return result
}

// MulVec returns m·v.
func (m Mat4) MulVec(v Vec4) Vec4 {
	return Vec4{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z + m[0][3]*v.W,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z + m[1][3]*v.W,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z + m[2][3]*v.W,
		W: m[3][0]*v.X + m[3][1]*v.Y + m[3][2]*v.Z + m[3][3]*v.W,
	}
}

// MulPoint transforms p as a point (w=1) and drops the resulting w.
func (m Mat4) MulPoint(p Vec3) Vec3 {
	return m.MulVec(p.ToVec4(1)).ToVec3()
}

// MulDir transforms d as a direction (w=0), ignoring translation.
func (m Mat4) MulDir(d Vec3) Vec3 {
	return m.MulVec(d.ToVec4(0)).ToVec3()
}

func (m Mat4) Transpose() Mat4 {
	return Mat4{
		{m[0][0], m[1][0], m[2][0], m[3][0]},
		{m[0][1], m[1][1], m[2][1], m[3][1]},
		{m[0][2], m[1][2], m[2][2], m[3][2]},
		{m[0][3], m[1][3], m[2][3], m[3][3]},
	}
}

// ApproxEqual reports whether every element of m is within eps of other.
func (m Mat4) ApproxEqual(other Mat4, eps float64) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math.Abs(m[i][j]-other[i][j]) > eps {
				return false
			}
		}
	}
	return true
}

func Mat4Translation(translation Vec3) Mat4 {
	m := Mat4Identity()
	m[0][3] = translation.X
	m[1][3] = translation.Y
	m[2][3] = translation.Z
	return m
}

func Mat4Scale(scale Vec3) Mat4 {
	m := Mat4Identity()
	m[0][0] = scale.X
	m[1][1] = scale.Y
	m[2][2] = scale.Z
	return m
}

func Mat4RotationX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		{1, 0, 0, 0},
		{0, c, -s, 0},
		{0, s, c, 0},
		{0, 0, 0, 1},
	}
}

func Mat4RotationY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		{c, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

func Mat4RotationZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		{c, -s, 0, 0},
		{s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Mat4RotationAxis builds a rotation of angle radians about axis using the
// Rodrigues formula t·outer(a) + c·I + s·skew(a). This is the rotation used
// for every interactive edit; the per-axis builders above do not compose to
// the same result for off-axis inputs.
func Mat4RotationAxis(axis Vec3, angle float64) Mat4 {
	axis = axis.Normalize()
	c := math.Cos(angle)
	s := math.Sin(angle)
	t := 1 - c

	x, y, z := axis.X, axis.Y, axis.Z

	return Mat4{
		{t*x*x + c, t*x*y - s*z, t*x*z + s*y, 0},
		{t*x*y + s*z, t*y*y + c, t*y*z - s*x, 0},
		{t*x*z - s*y, t*y*z + s*x, t*z*z + c, 0},
		{0, 0, 0, 1},
	}
}

// Mat4Perspective builds an OpenGL-style projection; fovY is in radians.
func Mat4Perspective(fovY, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovY/2)

	m := Mat4Zero()
	m[0][0] = f / aspect
	m[1][1] = f
	m[2][2] = -(far + near) / (far - near)
	m[2][3] = -(2 * far * near) / (far - near)
	m[3][2] = -1
	return m
}

// Mat4Orthographic builds a symmetric orthographic projection whose visible
// half-height is halfHeight world units. The resulting clip w is always 1.
func Mat4Orthographic(halfHeight, aspect, near, far float64) Mat4 {
	m := Mat4Identity()
	m[0][0] = 1 / (aspect * halfHeight)
	m[1][1] = 1 / halfHeight
	m[2][2] = -2 / (far - near)
	m[2][3] = -(far + near) / (far - near)
	return m
}

// Mat4LookAt builds a right-handed view matrix whose rows are the camera
// basis and whose translation is the negated projection of eye on each axis.
func Mat4LookAt(eye, target, up Vec3) Mat4 {
	zAxis, xAxis, yAxis := LookAtBasis(eye, target, up)

	return Mat4{
		{xAxis.X, xAxis.Y, xAxis.Z, -xAxis.Dot(eye)},
		{yAxis.X, yAxis.Y, yAxis.Z, -yAxis.Dot(eye)},
		{zAxis.X, zAxis.Y, zAxis.Z, -zAxis.Dot(eye)},
		{0, 0, 0, 1},
	}
}

// LookAtBasis returns the (back, right, up) axes of a camera at eye looking
// at target. When the view direction is parallel to up, the right axis is
// taken from the Z axis instead so the basis stays orthonormal.
func LookAtBasis(eye, target, up Vec3) (back, right, camUp Vec3) {
	back = eye.Sub(target).Normalize()
	right = up.Cross(back)
	if right.LengthSqr() < 1e-18 {
		alt := Vec3Back
		if back.Dot(up) < 0 {
			alt = Vec3Front
		}
		right = alt.Cross(back)
	}
	right = right.Normalize()
	camUp = back.Cross(right)
	return back, right, camUp
}
