package render

import "github.com/taigrr/planetoid/pkg/math3d"

// Light is a point light treated as directional from the origin.
type Light struct {
	Position math3d.Vec3
}

// DefaultLight sits above and to the right of the camera.
var DefaultLight = Light{Position: math3d.V3(5, 5, 5)}

// Direction returns the unit vector from the origin towards the light.
func (l Light) Direction() math3d.Vec3 {
	return l.Position.Normalize()
}
