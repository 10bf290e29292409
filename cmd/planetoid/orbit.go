package main

import (
	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/planetoid/pkg/render"
)

// OrbitAxis is one orbit velocity that a spring eases back to zero.
type OrbitAxis struct {
	Velocity float64
	spring   harmonica.Spring
	accel    float64 // spring velocity of Velocity itself
}

// NewOrbitAxis creates an axis that decays over a few frames at fps.
func NewOrbitAxis(fps int) OrbitAxis {
	return OrbitAxis{
		// Critically damped so the camera never swings back
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Step returns the velocity to apply this frame and decays it.
func (a *OrbitAxis) Step() float64 {
	v := a.Velocity
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, 0)
	return v
}

// OrbitControl turns key presses into smooth camera orbiting and zooming.
type OrbitControl struct {
	Yaw, Pitch, Zoom OrbitAxis
	fps              int
}

// NewOrbitControl creates an idle control for the given frame rate.
func NewOrbitControl(fps int) *OrbitControl {
	o := &OrbitControl{fps: fps}
	o.Reset()
	return o
}

// Push adds velocity to the axes.
func (o *OrbitControl) Push(yaw, pitch, zoom float64) {
	o.Yaw.Velocity += yaw
	o.Pitch.Velocity += pitch
	o.Zoom.Velocity += zoom
}

// Reset stops all motion.
func (o *OrbitControl) Reset() {
	o.Yaw = NewOrbitAxis(o.fps)
	o.Pitch = NewOrbitAxis(o.fps)
	o.Zoom = NewOrbitAxis(o.fps)
}

// Apply moves cam by one frame of motion.
func (o *OrbitControl) Apply(cam *render.Camera) {
	cam.Rotate(o.Yaw.Step(), o.Pitch.Step())
	cam.Zoom(o.Zoom.Step())
}
