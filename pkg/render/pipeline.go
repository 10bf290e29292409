package render

import (
	"math"

	"github.com/taigrr/planetoid/pkg/math3d"
	"github.com/taigrr/planetoid/pkg/shade"
)

// Vertex carries a mesh vertex through the pipeline. Position and Normal
// stay in object space; the Transformed fields are filled by TransformVertex.
type Vertex struct {
	Position math3d.Vec3 // Object-space position
	Normal   math3d.Vec3 // Object-space normal
	UV       math3d.Vec2 // Texture coordinates
	Color    math3d.Vec3 // Linear RGB in [0, 1]

	TransformedPosition math3d.Vec3 // Screen x, y and NDC depth
	TransformedNormal   math3d.Vec3 // Unit normal after the model matrix, or zero
	WorldPosition       math3d.Vec3 // Position after remap and model matrix
}

// RenderMode selects how the pipeline reinterprets the shared mesh.
type RenderMode int

const (
	ModeBody RenderMode = iota // planet surface, positions unchanged
	ModeRing                   // mesh flattened into a ring disc
	ModeMoon                   // mesh shrunk onto an orbiting moon
)

func (m RenderMode) String() string {
	switch m {
	case ModeBody:
		return "body"
	case ModeRing:
		return "ring"
	case ModeMoon:
		return "moon"
	default:
		return "unknown"
	}
}

// Uniforms are the per-pass constants shared by every vertex and fragment.
type Uniforms struct {
	Model      math3d.Mat4
	View       math3d.Mat4
	Projection math3d.Mat4
	Viewport   math3d.Mat4
	Time       float64 // Seconds of animation
	Delta      float64 // Seconds since the previous frame
	Planet     shade.PlanetType
	Mode       RenderMode
}

// RingShape remaps object-space positions onto a thin annulus in the XZ
// plane.
type RingShape struct {
	BaseRadius float64 // Radius before wobble
	Wobble     float64 // Amplitude of the radius perturbation
	WobbleFreq float64 // Frequency of the perturbation along object z
	Thickness  float64 // Scale applied to object y
	Spin       float64 // Angular speed in radians per second
}

// DefaultRingShape places the ring between roughly 1.6 and 2.0 units.
var DefaultRingShape = RingShape{
	BaseRadius: 1.8,
	Wobble:     0.2,
	WobbleFreq: 0.3,
	Thickness:  0.05,
	Spin:       0.2,
}

// Remap maps p onto the ring at time t.
func (r RingShape) Remap(p math3d.Vec3, t float64) math3d.Vec3 {
	angle := math.Mod(math.Atan2(p.X, p.Y)+t*r.Spin, 2*math.Pi)
	radius := r.BaseRadius + math.Sin(p.Z*r.WobbleFreq)*r.Wobble
	s, c := math.Sincos(angle)
	return math3d.V3(radius*c, p.Y*r.Thickness, radius*s)
}

// MoonOrbit shrinks the mesh and moves it along a bobbing circular orbit.
type MoonOrbit struct {
	Radius  float64 // Orbit radius around the planet
	Speed   float64 // Orbit angular speed in radians per second
	Bob     float64 // Vertical oscillation amplitude
	BobFreq float64 // Vertical oscillations per orbit
	Scale   float64 // Moon size relative to the planet mesh
}

// DefaultMoonOrbit keeps the moon just outside the ring band.
var DefaultMoonOrbit = MoonOrbit{
	Radius:  2.8,
	Speed:   0.4,
	Bob:     0.2,
	BobFreq: 3,
	Scale:   0.25,
}

// Center returns the moon's object-space center at time t.
func (m MoonOrbit) Center(t float64) math3d.Vec3 {
	a := t * m.Speed
	return math3d.V3(
		m.Radius*math.Cos(a),
		math.Sin(a*m.BobFreq)*m.Bob,
		m.Radius*math.Sin(a),
	)
}

// Remap maps p onto the moon at time t.
func (m MoonOrbit) Remap(p math3d.Vec3, t float64) math3d.Vec3 {
	return m.Center(t).Add(p.Scale(m.Scale))
}

// Pipeline holds the geometry used by the ring and moon modes.
type Pipeline struct {
	Ring RingShape
	Moon MoonOrbit
}

// DefaultPipeline uses DefaultRingShape and DefaultMoonOrbit.
var DefaultPipeline = Pipeline{Ring: DefaultRingShape, Moon: DefaultMoonOrbit}

// Remap applies the position strategy for mode. ModeBody and unknown modes
// return p unchanged.
func (p Pipeline) Remap(pos math3d.Vec3, mode RenderMode, t float64) math3d.Vec3 {
	switch mode {
	case ModeRing:
		return p.Ring.Remap(pos, t)
	case ModeMoon:
		return p.Moon.Remap(pos, t)
	default:
		return pos
	}
}

// Transform runs v through remap, model, view, projection, perspective
// divide and viewport.
func (p Pipeline) Transform(v Vertex, u Uniforms) Vertex {
	local := p.Remap(v.Position, u.Mode, u.Time)

	world := u.Model.MulVec4(math3d.V4FromV3(local, 1))
	clip := u.Projection.MulVec4(u.View.MulVec4(world))
	ndc := clip.PerspectiveDivide()
	screen := u.Viewport.MulVec4(math3d.V4FromV3(ndc, 1))

	v.TransformedPosition = screen.Vec3()
	v.WorldPosition = world.Vec3()
	v.TransformedNormal = TransformNormal(v.Normal, u.Model)
	return v
}

// TransformVertex transforms v with DefaultPipeline.
func TransformVertex(v Vertex, u Uniforms) Vertex {
	return DefaultPipeline.Transform(v, u)
}

// TransformNormal applies the linear part of model to n and renormalizes.
// A normal that collapses to zero length stays zero.
func TransformNormal(n math3d.Vec3, model math3d.Mat4) math3d.Vec3 {
	return model.MulVec3Dir(n).Normalize()
}
