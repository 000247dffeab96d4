package math

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func nearVec3(a, b Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func TestMat4Identity(t *testing.T) {
	m := Mat4Identity()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want := float32(0)
			if i == j {
				want = 1
			}
			if m[i][j] != want {
				t.Errorf("Identity[%d][%d]: expected %v, got %v", i, j, want, m[i][j])
			}
		}
	}
}

func TestMat4Translation(t *testing.T) {
	translation := NewVec3(1, 2, 3)
	result := Point(0, 0, 0).MulMat(Mat4Translation(translation))
	if result.ToVec3() != translation {
		t.Errorf("Translation: expected %v, got %v", translation, result.ToVec3())
	}
}

func TestRotationsAreCounterClockwise(t *testing.T) {
	// +90 about Z takes X to Y
	got := Point(1, 0, 0).MulMat(Mat4RotationZ(90)).ToVec3()
	if !nearVec3(got, NewVec3(0, 1, 0)) {
		t.Errorf("RotationZ: expected (0,1,0), got %v", got)
	}
	// +90 about X takes Y to Z
	got = Point(0, 1, 0).MulMat(Mat4RotationX(90)).ToVec3()
	if !nearVec3(got, NewVec3(0, 0, 1)) {
		t.Errorf("RotationX: expected (0,0,1), got %v", got)
	}
	// +90 about Y takes Z to X
	got = Point(0, 0, 1).MulMat(Mat4RotationY(90)).ToVec3()
	if !nearVec3(got, NewVec3(1, 0, 0)) {
		t.Errorf("RotationY: expected (1,0,0), got %v", got)
	}
}

func TestMulAppliesLeftFirst(t *testing.T) {
	// rotate then translate: the translation is not rotated
	m := Mat4RotationZ(90).Then(Mat4Translation(NewVec3(5, 0, 0)))
	got := Point(1, 0, 0).MulMat(m).ToVec3()
	if !nearVec3(got, NewVec3(5, 1, 0)) {
		t.Errorf("expected (5,1,0), got %v", got)
	}
}

func TestEulerZYXOrder(t *testing.T) {
	angles := NewVec3(90, 90, 0)
	// X first: Y axis goes to Z, then Y rotation takes Z to X
	got := Point(0, 1, 0).MulMat(Mat4EulerZYX(angles)).ToVec3()
	if !nearVec3(got, NewVec3(1, 0, 0)) {
		t.Errorf("EulerZYX: expected (1,0,0), got %v", got)
	}
}

func TestMat4Perspective(t *testing.T) {
	m := Mat4Perspective(90, 2, 0.1, 10)
	if !near(m[1][1], 1) {
		t.Errorf("Perspective: expected Y scale 1 for 90 degrees, got %v", m[1][1])
	}
	if !near(m[0][0], 0.5) {
		t.Errorf("Perspective: expected X scale 0.5 for aspect 2, got %v", m[0][0])
	}
	if m[2][3] != -1 {
		t.Errorf("Perspective: expected -1 in [2][3], got %v", m[2][3])
	}
}

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Mat4RotationX(30)
	m2 := Mat4RotationY(60)
	for i := 0; i < b.N; i++ {
		_ = m1.Mul(m2)
	}
}
