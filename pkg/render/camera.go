package render

import (
	"math"

	"github.com/taigrr/planetoid/pkg/math3d"
)

// maxPitch keeps the orbit away from the poles where LookAt degenerates.
const maxPitch = math.Pi/2 - 0.01

// Camera is a perspective camera that looks at a target point and can
// orbit around it.
type Camera struct {
	Position math3d.Vec3
	Target   math3d.Vec3
	Up       math3d.Vec3

	// Projection parameters
	FOV         float64 // Vertical field of view in radians
	AspectRatio float64 // Width / Height
	Near        float64 // Near clipping plane
	Far         float64 // Far clipping plane

	MinDistance float64 // Closest zoom allowed

	// Cached matrices (computed on demand)
	viewMatrix math3d.Mat4
	projMatrix math3d.Mat4
	viewDirty  bool
	projDirty  bool
}

// NewCamera creates a camera at (0, 0, 8) looking at the origin.
func NewCamera() *Camera {
	return &Camera{
		Position:    math3d.V3(0, 0, 8),
		Target:      math3d.Zero3(),
		Up:          math3d.Up(),
		FOV:         math.Pi / 3, // 60 degrees
		AspectRatio: 16.0 / 9.0,
		Near:        0.1,
		Far:         100,
		MinDistance: 1.5,
		viewDirty:   true,
		projDirty:   true,
	}
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.viewDirty = true
}

// SetTarget sets the point the camera looks at.
func (c *Camera) SetTarget(target math3d.Vec3) {
	c.Target = target
	c.viewDirty = true
}

// SetFOV sets the field of view (in radians).
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.projDirty = true
}

// SetAspectRatio sets the aspect ratio.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.projDirty = true
}

// SetClipPlanes sets the near and far clipping planes.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
	c.projDirty = true
}

// Orbit returns the camera's yaw, pitch and distance around its target.
// Yaw 0 and pitch 0 place the camera on the target's +Z side.
func (c *Camera) Orbit() (yaw, pitch, distance float64) {
	offset := c.Position.Sub(c.Target)
	distance = offset.Len()
	if distance == 0 {
		return 0, 0, 0
	}
	yaw = math.Atan2(offset.X, offset.Z)
	pitch = math.Asin(math.Max(-1, math.Min(1, offset.Y/distance)))
	return yaw, pitch, distance
}

// SetOrbit places the camera on a sphere around its target. Pitch is
// clamped short of the poles and distance to at least MinDistance.
func (c *Camera) SetOrbit(yaw, pitch, distance float64) {
	pitch = math.Max(-maxPitch, math.Min(maxPitch, pitch))
	distance = math.Max(c.MinDistance, distance)

	sy, cy := math.Sincos(yaw)
	sp, cp := math.Sincos(pitch)
	c.Position = c.Target.Add(math3d.V3(distance*cp*sy, distance*sp, distance*cp*cy))
	c.viewDirty = true
}

// Rotate orbits the camera around its target by the given angles.
func (c *Camera) Rotate(deltaYaw, deltaPitch float64) {
	yaw, pitch, distance := c.Orbit()
	c.SetOrbit(yaw+deltaYaw, pitch+deltaPitch, distance)
}

// Zoom moves the camera towards the target by amount (away if negative).
func (c *Camera) Zoom(amount float64) {
	yaw, pitch, distance := c.Orbit()
	c.SetOrbit(yaw, pitch, distance-amount)
}

// ViewMatrix returns the view matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		c.viewMatrix = math3d.LookAt(c.Position, c.Target, c.Up)
		c.viewDirty = false
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.projMatrix = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.projDirty = false
	}
	return c.projMatrix
}

// ViewProjectionMatrix returns the combined view-projection matrix.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}
