package render

import (
	"math"

	"github.com/taigrr/planetoid/pkg/math3d"
)

// Plane represents a plane in 3D space using the equation: Ax + By + Cz + D = 0
// where (A, B, C) is the normal and D is the distance from origin.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// Normalize normalizes the plane equation so the normal has unit length.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1.0 / l)
	p.D /= l
}

// DistanceToPoint returns the signed distance from the plane to a point.
// Positive = in front (same side as normal), negative = behind.
func (p Plane) DistanceToPoint(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum represents the 6 planes of a view frustum.
// Each plane's normal points inward.
type Frustum struct {
	Planes [6]Plane
}

// FrustumPlane indices for clarity.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// NewFrustumFromMatrix extracts frustum planes from a view-projection matrix
// with the Gribb/Hartmann method.
func NewFrustumFromMatrix(m math3d.Mat4) Frustum {
	row := func(i int) (math3d.Vec3, float64) {
		return math3d.V3(m.Get(i, 0), m.Get(i, 1), m.Get(i, 2)), m.Get(i, 3)
	}
	w, ww := row(3)

	var f Frustum
	for axis := range 3 {
		r, rw := row(axis)
		f.Planes[2*axis] = Plane{Normal: w.Add(r), D: ww + rw}
		f.Planes[2*axis+1] = Plane{Normal: w.Sub(r), D: ww - rw}
	}
	for i := range f.Planes {
		f.Planes[i].Normalize()
	}
	return f
}

// ContainsPoint tests if a point is inside the frustum.
func (f Frustum) ContainsPoint(p math3d.Vec3) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceToPoint(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectsSphere tests if a sphere intersects the frustum.
// center is the sphere center, radius is the sphere radius.
func (f Frustum) IntersectsSphere(center math3d.Vec3, radius float64) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceToPoint(center) < -radius {
			return false
		}
	}
	return true
}

// Sphere is a bounding sphere.
type Sphere struct {
	Center math3d.Vec3
	Radius float64
}

// Transform returns a sphere enclosing s after m. The radius grows by the
// largest axis scale of m.
func (s Sphere) Transform(m math3d.Mat4) Sphere {
	sx := m.MulVec3Dir(math3d.V3(1, 0, 0)).Len()
	sy := m.MulVec3Dir(math3d.V3(0, 1, 0)).Len()
	sz := m.MulVec3Dir(math3d.V3(0, 0, 1)).Len()
	return Sphere{
		Center: m.MulVec3(s.Center),
		Radius: s.Radius * math.Max(sx, math.Max(sy, sz)),
	}
}

// Frustum returns the current view frustum.
func (c *Camera) Frustum() Frustum {
	return NewFrustumFromMatrix(c.ViewProjectionMatrix())
}
