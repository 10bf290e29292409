package shade

import (
	"math"
	"testing"

	"github.com/taigrr/planetoid/pkg/math3d"
)

func TestHashRange(t *testing.T) {
	for i := -500; i < 500; i++ {
		n := float64(i) * 0.37
		h := Hash(n)
		if h < 0 || h >= 1 {
			t.Fatalf("Hash(%v) = %v, want [0, 1)", n, h)
		}
		if again := Hash(n); again != h {
			t.Fatalf("Hash(%v) not deterministic: %v vs %v", n, h, again)
		}
	}
}

func TestNoiseLatticePoints(t *testing.T) {
	// At integer coordinates all weights collapse onto the lower corner.
	p := math3d.V3(3, -2, 5)
	want := Hash(3 + -2*latticeY + 5*latticeZ)
	if got := Noise(p); math.Abs(got-want) > 1e-12 {
		t.Errorf("Noise(%v) = %v, want %v", p, got, want)
	}
}

func TestNoiseContinuousAcrossNegativeCells(t *testing.T) {
	// Approaching a lattice point from below must land on its hash value,
	// which only holds if the in-cell offset stays in [0, 1) for negatives.
	p := math3d.V3(-2, -3, -1)
	want := Noise(p)
	got := Noise(p.Sub(math3d.V3(1e-9, 1e-9, 1e-9)))
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("Noise just below %v = %v, want ~%v", p, got, want)
	}
}

func TestNoiseRange(t *testing.T) {
	for i := range 200 {
		f := float64(i)
		p := math3d.V3(f*0.13, -f*0.07, f*0.29)
		n := Noise(p)
		if n < 0 || n > 1 {
			t.Fatalf("Noise(%v) = %v out of range", p, n)
		}
	}
}

func TestFractalNoiseZeroOctaves(t *testing.T) {
	p := math3d.V3(0.3, 0.4, 0.5)
	if got := FractalNoise(p, 0); got != 0 {
		t.Errorf("FractalNoise(p, 0) = %v, want 0", got)
	}
	if got := FractalNoise(p, -3); got != 0 {
		t.Errorf("FractalNoise(p, -3) = %v, want 0", got)
	}
}

func TestFractalNoiseSingleOctave(t *testing.T) {
	p := math3d.V3(1.7, 2.2, -0.4)
	if got, want := FractalNoise(p, 1), Noise(p); got != want {
		t.Errorf("FractalNoise(p, 1) = %v, want Noise(p) = %v", got, want)
	}
}

func TestFractalNoiseBound(t *testing.T) {
	// Sum of 1, 0.35, 0.1225, ... stays below 1/(1-0.35).
	limit := 1 / (1 - 0.5*Persistence)
	for i := range 100 {
		f := float64(i)
		p := math3d.V3(f*0.11, f*0.23, -f*0.05)
		if got := FractalNoise(p, 6); got < 0 || got > limit {
			t.Fatalf("FractalNoise(%v, 6) = %v, want [0, %v]", p, got, limit)
		}
	}
}

func TestRotateY(t *testing.T) {
	p := math3d.V3(1, 2, 0)
	got := RotateY(p, math.Pi/2, 1)
	want := math3d.V3(0, 2, 1)
	if got.Distance(want) > 1e-9 {
		t.Errorf("RotateY = %v, want %v", got, want)
	}
	if got := RotateY(p, 0, 5); got != p {
		t.Errorf("RotateY at t=0 = %v, want %v", got, p)
	}
}

func TestLambert(t *testing.T) {
	tests := []struct {
		name   string
		normal math3d.Vec3
		want   float64
	}{
		{"facing", math3d.V3(1, 0, 0), 1},
		{"away", math3d.V3(-1, 0, 0), AmbientFloor},
		{"saturated", math3d.V3(1, 1, 1), 1},
		{"partial", math3d.V3(0.5, 0, 0), 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lambert(tt.normal, math3d.V3(1, 0, 0), AmbientFloor, 1)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Lambert = %v, want %v", got, tt.want)
			}
		})
	}
}
