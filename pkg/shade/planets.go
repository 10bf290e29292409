package shade

import (
	"math"

	"github.com/taigrr/planetoid/pkg/math3d"
)

// PlanetType selects one of the procedural surface styles.
type PlanetType int

const (
	Rocky PlanetType = iota
	Gaseous
	Bioluminescent
	Ringed
	Icy
)

// PlanetCount is the number of selectable planet types.
const PlanetCount = 5

// Fallback is returned for planet types outside the known range.
var Fallback = math3d.V3(0.5, 0.5, 0.5)

var planetNames = [PlanetCount]string{
	Rocky:          "rocky",
	Gaseous:        "gaseous",
	Bioluminescent: "bioluminescent",
	Ringed:         "ringed",
	Icy:            "icy",
}

// String returns the lowercase planet name.
func (p PlanetType) String() string {
	if !p.Valid() {
		return "unknown"
	}
	return planetNames[p]
}

// Valid reports whether p names a known planet type.
func (p PlanetType) Valid() bool {
	return p >= 0 && p < PlanetCount
}

// ParsePlanet converts a planet name or its index ("0".."4") into a type.
func ParsePlanet(s string) (PlanetType, bool) {
	for i, name := range planetNames {
		if s == name {
			return PlanetType(i), true
		}
	}
	if len(s) == 1 && s[0] >= '0' && s[0] < '0'+PlanetCount {
		return PlanetType(s[0] - '0'), true
	}
	return 0, false
}

// SurfaceFunc colors a point on the unit sphere at time t.
type SurfaceFunc func(pos math3d.Vec3, t float64) math3d.Vec3

var surfaces = [PlanetCount]SurfaceFunc{
	Rocky:          rocky,
	Gaseous:        gaseous,
	Bioluminescent: bioluminescent,
	Ringed:         ringed,
	Icy:            icy,
}

// Surface returns the lit color of planet p at pos and time t, with each
// channel clamped to [0, 1]. Unknown planet types return Fallback.
func Surface(p PlanetType, pos math3d.Vec3, t float64) math3d.Vec3 {
	if !p.Valid() {
		return Fallback
	}
	return surfaces[p](pos, t).Clamp(0, 1)
}

// Spin rates in radians per second.
const (
	rockySpin   = 0.25
	gasSpin     = 1.3
	glowSpin    = 0.6
	ringedSpin  = 0.5
	icySpin     = 0.3
	craterSize  = 0.18
	stormRadius = 0.22
)

var (
	rockLow    = math3d.V3(0.55, 0.25, 0.15)
	rockHigh   = math3d.V3(0.75, 0.45, 0.25)
	craterTint = math3d.V3(0.2, 0.15, 0.1)
	craters    = [...]math3d.Vec3{
		math3d.V3(0.6, 0.2, 0.1),
		math3d.V3(-0.5, -0.3, 0.2),
		math3d.V3(0.1, 0.8, -0.2),
	}
)

func rocky(pos math3d.Vec3, t float64) math3d.Vec3 {
	p := RotateY(pos, t, rockySpin)

	elevation := (FractalNoise(p, 4)+FractalNoise(p.Scale(8), 2)*0.3)*0.5 + 0.5

	var color math3d.Vec3
	switch {
	case elevation < 0.3:
		color = rockLow
	case elevation > 0.7:
		color = rockHigh
	default:
		color = mix(rockLow, rockHigh, (elevation-0.3)/0.4)
	}

	for _, c := range craters {
		d := p.Distance(c)
		if d < craterSize {
			blend := 1 - d/craterSize
			color = mix(color, craterTint, blend*blend*0.8)
		}
	}

	return color.Scale(Lambert(p, SunDirection, AmbientFloor, 1))
}

var (
	gasBase  = math3d.V3(0.92, 0.82, 0.65)
	gasBelt  = math3d.V3(0.55, 0.35, 0.2)
	gasBand  = math3d.V3(0.4, 0.3, 0.6)
	gasStorm = math3d.V3(0.88, 0.25, 0.18)
)

func gaseous(pos math3d.Vec3, t float64) math3d.Vec3 {
	p := RotateY(pos, t, gasSpin)
	lat := latitude(p)

	color := gasBase
	if math.Abs(math.Sin(lat*9+t*0.25)) > 0.75 {
		color = mix(color, gasBelt, 0.5)
	}
	if math.Abs(math.Cos(lat*14+t*0.35+0.7)) > 0.8 {
		color = mix(color, gasBand, 0.4)
	}

	sx := p.X + 0.35 + math.Sin(t*0.1)*0.05
	sy := p.Y - 0.2 + math.Cos(t*0.1)*0.03
	if d := math.Hypot(sx, sy); d < stormRadius {
		s := 1 - d/stormRadius
		color = mix(color, gasStorm, s*s*0.7)
	}

	cloud := FractalNoise(math3d.V3(p.X*25, p.Y*25, t*0.12), 4)
	color = color.Add(math3d.V3(1, 1, 1).Scale(math.Max(cloud*0.3, 0)))

	light := Lambert(p, SunDirection, AmbientFloor, 1)
	return color.Scale(math.Max(GasFloor, math.Min(1, light)))
}

var (
	glowOcean = math3d.V3(0.02, 0.05, 0.15)
	glowLand  = math3d.V3(0.1, 0.3, 0.1)
	glowTint  = math3d.V3(0.2, 0.8, 0.4)
	glowPolar = math3d.V3(0.85, 0.9, 1.0)
)

func bioluminescent(pos math3d.Vec3, t float64) math3d.Vec3 {
	p := RotateY(pos, t, glowSpin)
	elevation := FractalNoise(p, 4)*0.5 + 0.5

	color := glowLand
	if elevation < 0.4 {
		color = glowOcean
	}

	glowing := FractalNoise(p.Scale(6), 3) > 0.6 && elevation > 0.5
	if glowing {
		color = mix(color, glowTint, 0.7)
	}

	if math.Abs(latitude(p)) > 1.1 {
		color = glowPolar
	}

	d := p.Dot(SunDirection)
	if d > 0 {
		return color.Scale(math.Max(d, DayFloor))
	}
	color = color.Scale(AmbientFloor)
	if glowing {
		color = color.Add(glowTint.Scale(0.3))
	}
	return color
}

var (
	ringedBase = math3d.V3(0.75, 0.65, 0.5)
	ringedBand = math3d.V3(0.85, 0.75, 0.4)
)

func ringed(pos math3d.Vec3, t float64) math3d.Vec3 {
	p := RotateY(pos, t, ringedSpin)
	band := math.Abs(math.Sin(latitude(p)*7+t*0.08)) * 0.35
	color := mix(ringedBase, ringedBand, band)
	return color.Scale(Lambert(p, SunDirection, AmbientFloor, 1))
}

var (
	iceDeep    = math3d.V3(0.6, 0.8, 0.95)
	iceCrystal = math3d.V3(0.9, 0.98, 1.0)
	iceBase    = math3d.V3(0.85, 0.95, 1.0)
	white      = math3d.V3(1, 1, 1)
)

func icy(pos math3d.Vec3, t float64) math3d.Vec3 {
	p := RotateY(pos, t, icySpin)
	n := FractalNoise(p, 5)
	cracks := FractalNoise(math3d.V3(p.X*10, p.Y*10, p.Z*10+t), 3)

	var color math3d.Vec3
	switch {
	case n < 0.3:
		color = iceDeep
	case cracks > 0.7:
		color = iceCrystal
	default:
		color = iceBase
	}

	d := p.Dot(SunDirection)
	rim := 1 - math.Abs(d)
	color = mix(color, white, rim*rim*rim*0.3)
	return color.Scale(math.Max(d, DayFloor))
}
