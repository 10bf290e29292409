package shade

import (
	"math"

	"github.com/taigrr/planetoid/pkg/math3d"
)

// SunDirection is the fixed light vector the surface functions shade
// against. It is deliberately not normalized: dot products with unit
// normals reach full brightness before the normal lines up with it.
var SunDirection = math3d.V3(1, 1, 1)

// Ambient floors used by the surface functions.
const (
	AmbientFloor = 0.1
	GasFloor     = 0.3
	DayFloor     = 0.2
)

// Lambert returns dot(normal, lightDir) clamped to [lo, hi].
func Lambert(normal, lightDir math3d.Vec3, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, normal.Dot(lightDir)))
}

// RotateY spins p around the vertical axis by time*speed radians.
func RotateY(p math3d.Vec3, time, speed float64) math3d.Vec3 {
	s, c := math.Sincos(time * speed)
	return math3d.V3(
		p.X*c-p.Z*s,
		p.Y,
		p.X*s+p.Z*c,
	)
}

// mix blends a towards b with t clamped to [0, 1].
func mix(a, b math3d.Vec3, t float64) math3d.Vec3 {
	return a.Lerp(b, math.Max(0, math.Min(1, t)))
}

// latitude returns the polar angle of p measured against the z axis.
func latitude(p math3d.Vec3) float64 {
	r := math.Max(p.Len(), 0.001)
	return math.Asin(math.Max(-1, math.Min(1, p.Z/r)))
}
