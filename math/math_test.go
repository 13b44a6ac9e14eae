package math

import (
	"math"
	"testing"
)

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	if got, want := v1.Add(v2), NewVec3(5, 7, 9); got != want {
		t.Errorf("Add: expected %v, got %v", want, got)
	}
	if got, want := v2.Sub(v1), NewVec3(3, 3, 3); got != want {
		t.Errorf("Sub: expected %v, got %v", want, got)
	}
	if got, want := v1.Mul(2), NewVec3(2, 4, 6); got != want {
		t.Errorf("Mul: expected %v, got %v", want, got)
	}
	if dot := v1.Dot(v2); dot != 32 {
		t.Errorf("Dot: expected 32, got %v", dot)
	}

	// Right x Up = Front in a right-handed system
	if cross := Vec3Right.Cross(Vec3Up); cross != Vec3Front {
		t.Errorf("Cross: expected %v, got %v", Vec3Front, cross)
	}
}

func TestVec3Normalize(t *testing.T) {
	normalized := NewVec3(3, 0, 0).Normalize()
	if normalized != Vec3Right {
		t.Errorf("Normalize: expected %v, got %v", Vec3Right, normalized)
	}
	if zero := Vec3Zero.Normalize(); zero != Vec3Zero {
		t.Errorf("Normalize: expected zero vector to stay zero, got %v", zero)
	}
}

func TestVec3IsFinite(t *testing.T) {
	if !NewVec3(1, -2, 3).IsFinite() {
		t.Error("IsFinite: expected finite vector")
	}
	if NewVec3(math.NaN(), 0, 0).IsFinite() {
		t.Error("IsFinite: NaN reported as finite")
	}
	if NewVec3(0, math.Inf(1), math.Inf(-1)).IsFinite() {
		t.Error("IsFinite: Inf reported as finite")
	}
	if !NewVec3(1e308, 1e308, 1e308).IsFinite() {
		t.Error("IsFinite: large finite components reported as non-finite")
	}
}

func TestMat4Multiplication(t *testing.T) {
	result := Mat4Identity().Mul(Mat4Identity())
	if result != Mat4Identity() {
		t.Errorf("Mul: identity*identity = %v", result)
	}

	m := Mat4Translation(NewVec3(1, 0, 0)).Mul(Mat4Translation(NewVec3(0, 2, 0)))
	if got, want := m.MulVec3(Vec3Zero), NewVec3(1, 2, 0); got != want {
		t.Errorf("Mul: expected %v, got %v", want, got)
	}
}

func TestMat4Translation(t *testing.T) {
	translation := NewVec3(1, 2, 3)
	m := Mat4Translation(translation)

	if m[3][0] != 1 || m[3][1] != 2 || m[3][2] != 3 {
		t.Errorf("Translation: expected (1,2,3), got (%v,%v,%v)", m[3][0], m[3][1], m[3][2])
	}
	if got := m.MulVec3(Vec3Zero); got != translation {
		t.Errorf("Translation: expected %v, got %v", translation, got)
	}
}

func TestMat4Perspective(t *testing.T) {
	m := Mat4Perspective(DegToRad(90), 1, 0.1, 100)

	if math.Abs(m[0][0]-1) > 1e-9 || math.Abs(m[1][1]-1) > 1e-9 {
		t.Errorf("Perspective: expected unit scale at 90 degrees, got %v %v", m[0][0], m[1][1])
	}

	// A point on the near plane maps to depth -1.
	near := m.MulVec3(NewVec3(0, 0, -0.1))
	if math.Abs(near.Z+1) > 1e-9 {
		t.Errorf("Perspective: near plane depth %v", near.Z)
	}
}

func TestMat4LookAt(t *testing.T) {
	eye := NewVec3(0, 0, 5)
	m := Mat4LookAt(eye, Vec3Zero, Vec3Up)

	result := m.MulVec3(eye)
	if result.Length() > 1e-9 {
		t.Errorf("LookAt: expected eye to transform to origin, got %v", result)
	}

	// The target lies straight down the -Z axis of view space.
	target := m.MulVec3(Vec3Zero)
	if math.Abs(target.X) > 1e-9 || math.Abs(target.Y) > 1e-9 || math.Abs(target.Z+5) > 1e-9 {
		t.Errorf("LookAt: expected target at (0,0,-5), got %v", target)
	}
}

func TestMat4Float32Layout(t *testing.T) {
	flat := Mat4Translation(NewVec3(1, 2, 3)).Float32()
	if flat[12] != 1 || flat[13] != 2 || flat[14] != 3 || flat[15] != 1 {
		t.Errorf("Float32: translation not in elements 12-14: %v", flat)
	}
}

func BenchmarkVec3Add(b *testing.B) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	for i := 0; i < b.N; i++ {
		_ = v1.Add(v2)
	}
}

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Mat4Identity()
	m2 := Mat4Identity()

	for i := 0; i < b.N; i++ {
		_ = m1.Mul(m2)
	}
}
