package math3d

import (
	"math"
	"testing"
)

const eps = 1e-9

func vecNear(a, b Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func TestNormalizeZero(t *testing.T) {
	if got := Zero3().Normalize(); got != Zero3() {
		t.Errorf("Normalize(0) = %v, want zero vector", got)
	}
	if got := V3(0, 3, 4).Normalize(); !vecNear(got, V3(0, 0.6, 0.8), eps) {
		t.Errorf("Normalize(0,3,4) = %v", got)
	}
}

func TestFractAndClamp(t *testing.T) {
	got := V3(1.25, -0.25, 3).Fract()
	if !vecNear(got, V3(0.25, 0.75, 0), eps) {
		t.Errorf("Fract = %v", got)
	}
	c := V3(-1, 0.5, 2).Clamp(0, 1)
	if c != V3(0, 0.5, 1) {
		t.Errorf("Clamp = %v", c)
	}
}

func TestPerspectiveDivideZeroW(t *testing.T) {
	v := V4(2, 4, 6, 0).PerspectiveDivide()
	if v != V3(2, 4, 6) {
		t.Errorf("zero-w divide = %v, want components unchanged", v)
	}
	v = V4(2, 4, 6, 2).PerspectiveDivide()
	if v != V3(1, 2, 3) {
		t.Errorf("divide = %v, want (1,2,3)", v)
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.7))
	if got := Identity().Mul(m); got != m {
		t.Errorf("I*m != m")
	}
	if got := m.Mul(Identity()); got != m {
		t.Errorf("m*I != m")
	}
}

func TestTranslateMulVec3(t *testing.T) {
	p := Translate(V3(1, 2, 3)).MulVec3(V3(1, 1, 1))
	if !vecNear(p, V3(2, 3, 4), eps) {
		t.Errorf("translated point = %v", p)
	}
	d := Translate(V3(1, 2, 3)).MulVec3Dir(V3(1, 1, 1))
	if !vecNear(d, V3(1, 1, 1), eps) {
		t.Errorf("direction should ignore translation, got %v", d)
	}
}

func TestMat4GetColumnMajor(t *testing.T) {
	m := Translate(V3(1, 2, 3))
	for row, want := range []float64{1, 2, 3, 1} {
		if got := m.Get(row, 3); got != want {
			t.Errorf("Get(%d, 3) = %v, want %v", row, got, want)
		}
	}
	if got := m.Get(3, 0); got != 0 {
		t.Errorf("Get(3, 0) = %v, want 0", got)
	}
}

func TestModelMatrix(t *testing.T) {
	if m := Model(Zero3(), 1, Zero3()); m != Identity() {
		t.Errorf("Model(0, 1, 0) = %v, want identity", m)
	}

	m := Model(V3(0, 0, -2), 2, V3(0, math.Pi/2, 0))
	// Scale first, then rotate +X onto -Z, then translate
	got := m.MulVec3(V3(1, 0, 0))
	if !vecNear(got, V3(0, 0, -4), 1e-9) {
		t.Errorf("Model transform = %v, want (0,0,-4)", got)
	}
}

func TestLookAtOrigin(t *testing.T) {
	view := LookAt(V3(0, 0, 8), Zero3(), Up())
	got := view.MulVec3(Zero3())
	if !vecNear(got, V3(0, 0, -8), eps) {
		t.Errorf("origin in view space = %v, want (0,0,-8)", got)
	}
}

func TestViewportCorners(t *testing.T) {
	vp := Viewport(0, 0, 200, 100)

	tests := []struct {
		name string
		ndc  Vec3
		want Vec3
	}{
		{"center", V3(0, 0, 0.5), V3(100, 50, 0.5)},
		{"top left", V3(-1, 1, 0), V3(0, 0, 0)},
		{"bottom right", V3(1, -1, -1), V3(200, 100, -1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := vp.MulVec4(V4FromV3(tc.ndc, 1)).Vec3()
			if !vecNear(got, tc.want, eps) {
				t.Errorf("Viewport(%v) = %v, want %v", tc.ndc, got, tc.want)
			}
		})
	}
}

func TestPerspectiveDepthOrder(t *testing.T) {
	proj := Perspective(math.Pi/3, 1, 0.1, 100)
	near := proj.MulVec4(V4(0, 0, -1, 1)).PerspectiveDivide()
	far := proj.MulVec4(V4(0, 0, -10, 1)).PerspectiveDivide()
	if near.Z >= far.Z {
		t.Errorf("nearer point should have smaller NDC depth: near=%v far=%v", near.Z, far.Z)
	}
}
