package shade

import (
	"math"

	"github.com/taigrr/planetoid/pkg/math3d"
)

var (
	ringLight  = math3d.V3(0.88, 0.82, 0.65)
	ringDark   = math3d.V3(0.65, 0.58, 0.4)
	ringNormal = math3d.V3(0, 1, 0)

	moonRock   = math3d.V3(0.65, 0.62, 0.6)
	moonCrater = math3d.V3(0.5, 0.48, 0.45)
)

// RingColor shades a ring fragment at planar distance radius from the
// planet center. Rings are lit as a flat disk facing +Y.
func RingColor(radius, t float64) math3d.Vec3 {
	pattern := math.Abs(math.Sin(radius*40 + t*0.15))
	color := mix(ringLight, ringDark, pattern*0.5)
	return color.Scale(Lambert(ringNormal, SunDirection, AmbientFloor, 1)).Clamp(0, 1)
}

// MoonColor shades a moon fragment at world position world, given the
// moon's current center.
func MoonColor(world, center math3d.Vec3) math3d.Vec3 {
	color := moonRock
	if FractalNoise(world.Scale(8), 2) > 0.6 {
		color = moonCrater
	}
	normal := world.Sub(center)
	return color.Scale(Lambert(normal, SunDirection, AmbientFloor, 1)).Clamp(0, 1)
}
