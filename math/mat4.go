package math

import "github.com/chewxy/math32"

// Mat4 is a 4x4 matrix in the row-vector convention: a point p is transformed
// as p·M, the translation lives in row 3, and A.Mul(B) applies A first.
type Mat4 [4][4]float32

func Mat4Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math32.Pi / 180
}

func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				result[i][j] += m[i][k] * other[k][j]
			}
		}
	}
	return result
}

// Then is an alias for Mul that reads in application order.
func (m Mat4) Then(other Mat4) Mat4 {
	return m.Mul(other)
}

func Mat4Translation(translation Vec3) Mat4 {
	m := Mat4Identity()
	m[3][0] = translation.X
	m[3][1] = translation.Y
	m[3][2] = translation.Z
	return m
}

// Mat4UniformScale scales all three axes by s.
func Mat4UniformScale(s float32) Mat4 {
	m := Mat4Identity()
	m[0][0] = s
	m[1][1] = s
	m[2][2] = s
	return m
}

// Mat4RotationX rotates counter-clockwise about X by deg degrees.
func Mat4RotationX(deg float32) Mat4 {
	s, c := math32.Sincos(Radians(deg))
	return Mat4{
		{1, 0, 0, 0},
		{0, c, s, 0},
		{0, -s, c, 0},
		{0, 0, 0, 1},
	}
}

// Mat4RotationY rotates counter-clockwise about Y by deg degrees.
func Mat4RotationY(deg float32) Mat4 {
	s, c := math32.Sincos(Radians(deg))
	return Mat4{
		{c, 0, -s, 0},
		{0, 1, 0, 0},
		{s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

// Mat4RotationZ rotates counter-clockwise about Z by deg degrees.
func Mat4RotationZ(deg float32) Mat4 {
	s, c := math32.Sincos(Radians(deg))
	return Mat4{
		{c, s, 0, 0},
		{-s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Mat4Perspective builds a projection from a vertical field of view in degrees.
func Mat4Perspective(fovYDeg, aspect, near, far float32) Mat4 {
	tanHalfFovy := math32.Tan(Radians(fovYDeg) / 2)

	var m Mat4
	m[0][0] = 1 / (aspect * tanHalfFovy)
	m[1][1] = 1 / tanHalfFovy
	m[2][2] = -(far + near) / (far - near)
	m[2][3] = -1
	m[3][2] = -(2 * far * near) / (far - near)
	return m
}

// Mat4EulerZYX composes rotations about Z, then Y, then X (all degrees), the
// way scene objects are oriented: X is applied to the mesh first.
func Mat4EulerZYX(angles Vec3) Mat4 {
	return Mat4RotationX(angles.X).Mul(Mat4RotationY(angles.Y)).Mul(Mat4RotationZ(angles.Z))
}
