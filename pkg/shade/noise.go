// Package shade computes procedural surface colors for the planet renderer.
// Every function here is pure: output depends only on position, time and
// the selected planet type.
package shade

import (
	"math"

	"github.com/taigrr/planetoid/pkg/math3d"
)

// Lattice multipliers folding a 3D cell coordinate into one hash input.
const (
	latticeY = 57.0
	latticeZ = 113.0
)

// Persistence is the extra per-octave weight applied on top of the usual
// amplitude halving in FractalNoise.
const Persistence = 0.7

// Hash maps n to a pseudo-random value in [0, 1).
// The same n always yields the same bits.
func Hash(n float64) float64 {
	h := math.Sin(n*1234567.0) * 43758.5453
	return h - math.Floor(h)
}

// Noise returns trilinearly interpolated lattice noise in [0, 1) at p,
// eased with smoothstep (3t^2 - 2t^3) inside each cell.
func Noise(p math3d.Vec3) float64 {
	cell := p.Floor()
	f := p.Fract()

	u := smooth(f.X)
	v := smooth(f.Y)
	w := smooth(f.Z)

	corner := func(i, j, k float64) float64 {
		return Hash((cell.X + i) + (cell.Y+j)*latticeY + (cell.Z+k)*latticeZ)
	}

	x1 := lerp(corner(0, 0, 0), corner(1, 0, 0), u)
	x2 := lerp(corner(0, 1, 0), corner(1, 1, 0), u)
	x3 := lerp(corner(0, 0, 1), corner(1, 0, 1), u)
	x4 := lerp(corner(0, 1, 1), corner(1, 1, 1), u)

	y1 := lerp(x1, x2, v)
	y2 := lerp(x3, x4, v)

	return lerp(y1, y2, w)
}

// FractalNoise sums octaves layers of Noise. Each layer doubles the
// frequency, halves the amplitude and is further scaled by Persistence.
// Zero (or negative) octaves yield exactly 0.
func FractalNoise(p math3d.Vec3, octaves int) float64 {
	var value float64
	amplitude, frequency, weight := 1.0, 1.0, 1.0
	for range max(octaves, 0) {
		value += Noise(p.Scale(frequency)) * amplitude * weight
		amplitude *= 0.5
		frequency *= 2
		weight *= Persistence
	}
	return value
}

func smooth(t float64) float64 {
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
