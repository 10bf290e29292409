package scene

import (
	"math"

	"github.com/taigrr/planetoid/pkg/math3d"
	"github.com/taigrr/planetoid/pkg/render"
	"github.com/taigrr/planetoid/pkg/shade"
)

// Shade returns the surface color of a body fragment for the planet and
// time in u. Channels are in [0, 1].
func Shade(f render.Fragment, u render.Uniforms) math3d.Vec3 {
	return shade.Surface(u.Planet, f.World, u.Time)
}

// RingBand is the planar distance range from the world origin in which
// ring fragments are kept.
type RingBand struct {
	Inner, Outer float64
}

// DefaultRingBand matches DefaultRingShape with some margin.
var DefaultRingBand = RingBand{Inner: 1.6, Outer: 2.4}

// Contains reports whether a world position lies inside the band.
func (b RingBand) Contains(world math3d.Vec3) (float64, bool) {
	r := math.Hypot(world.X, world.Z)
	return r, r >= b.Inner && r <= b.Outer
}

// PassStats counts what one render pass did.
type PassStats struct {
	Mode       render.RenderMode
	Culled     bool // Skipped entirely by the frustum test
	Triangles  int  // Triangles assembled
	Degenerate int  // Triangles with no area
	Fragments  int  // Fragments produced by the rasterizer
	Filtered   int  // Fragments dropped by the ring band
	Written    int  // Pixels that passed the depth test
}

func (s *PassStats) add(o PassStats) {
	s.Triangles += o.Triangles
	s.Degenerate += o.Degenerate
	s.Fragments += o.Fragments
	s.Filtered += o.Filtered
	s.Written += o.Written
}

// FrameStats collects the passes of one frame in the order they ran.
type FrameStats struct {
	Passes []PassStats
	Edges  int // Wireframe edges drawn
}

// Total sums every pass.
func (s FrameStats) Total() PassStats {
	var t PassStats
	for _, p := range s.Passes {
		t.add(p)
	}
	return t
}

// CulledPasses counts the passes skipped by the frustum test.
func (s FrameStats) CulledPasses() int {
	var n int
	for _, p := range s.Passes {
		if p.Culled {
			n++
		}
	}
	return n
}

// Pass returns the stats for mode, if that pass ran.
func (s FrameStats) Pass(mode render.RenderMode) (PassStats, bool) {
	for _, p := range s.Passes {
		if p.Mode == mode {
			return p, true
		}
	}
	return PassStats{}, false
}

// HasRings reports whether planet p gets a ring pass.
func HasRings(p shade.PlanetType) bool {
	return p == shade.Ringed
}

// HasMoon reports whether planet p gets a moon pass.
func HasMoon(p shade.PlanetType) bool {
	return p == shade.Rocky
}
