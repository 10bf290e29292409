// Package scene drives the render passes of a planet frame: it owns the
// simulation clock, builds per-frame uniforms and runs the body, ring and
// moon passes into a framebuffer.
package scene

import (
	"github.com/taigrr/planetoid/pkg/math3d"
	"github.com/taigrr/planetoid/pkg/render"
	"github.com/taigrr/planetoid/pkg/shade"
)

// DefaultMaxStep caps a single clock step so a stalled frame does not
// fast-forward the animation.
const DefaultMaxStep = 0.1

// Clock tracks animation time and the selected planet between frames.
type Clock struct {
	Time    float64          // Seconds of animation so far
	Delta   float64          // Length of the last step
	Planet  shade.PlanetType // Planet rendered by the next frame
	MaxStep float64          // Upper bound for a single step; <= 0 disables it
}

// NewClock returns a clock at time zero showing planet.
func NewClock(planet shade.PlanetType) *Clock {
	return &Clock{Planet: planet, MaxStep: DefaultMaxStep}
}

// Advance moves time forward by dt seconds and returns the step actually
// taken. Negative steps are ignored.
func (c *Clock) Advance(dt float64) float64 {
	dt = max(dt, 0)
	if c.MaxStep > 0 {
		dt = min(dt, c.MaxStep)
	}
	c.Delta = dt
	c.Time += dt
	return dt
}

// SelectPlanet switches to p. Unknown planet types are rejected and the
// selection is left unchanged.
func (c *Clock) SelectPlanet(p shade.PlanetType) bool {
	if !p.Valid() {
		return false
	}
	c.Planet = p
	return true
}

// Uniforms builds body-pass uniforms for a width x height target seen
// through cam.
func (c *Clock) Uniforms(cam *render.Camera, model math3d.Mat4, width, height int) render.Uniforms {
	return render.Uniforms{
		Model:      model,
		View:       cam.ViewMatrix(),
		Projection: cam.ProjectionMatrix(),
		Viewport:   math3d.Viewport(0, 0, float64(width), float64(height)),
		Time:       c.Time,
		Delta:      c.Delta,
		Planet:     c.Planet,
		Mode:       render.ModeBody,
	}
}
