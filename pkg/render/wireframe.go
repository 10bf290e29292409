package render

import (
	"math"

	"github.com/taigrr/planetoid/pkg/math3d"
)

// Wireframe draws the screen-space edges of transformed triangles on top
// of a framebuffer, ignoring depth.
type Wireframe struct {
	fb    *Framebuffer
	Color Color
}

// NewWireframe creates a new wireframe renderer.
func NewWireframe(fb *Framebuffer) *Wireframe {
	return &Wireframe{
		fb:    fb,
		Color: ColorWire,
	}
}

// DrawTriangle outlines one transformed triangle. Degenerate triangles and
// edges far outside the framebuffer are skipped.
func (w *Wireframe) DrawTriangle(v0, v1, v2 Vertex) int {
	if Degenerate(v0, v1, v2) {
		return 0
	}
	p := [3]math3d.Vec3{v0.TransformedPosition, v1.TransformedPosition, v2.TransformedPosition}
	drawn := 0
	for i := range 3 {
		if w.drawEdge(p[i], p[(i+1)%3]) {
			drawn++
		}
	}
	return drawn
}

// DrawVertices outlines every consecutive triple of vs and returns the
// number of edges drawn.
func (w *Wireframe) DrawVertices(vs []Vertex) int {
	drawn := 0
	for i := 0; i+2 < len(vs); i += 3 {
		drawn += w.DrawTriangle(vs[i], vs[i+1], vs[i+2])
	}
	return drawn
}

func (w *Wireframe) drawEdge(a, b math3d.Vec3) bool {
	if !w.onCanvas(a) || !w.onCanvas(b) {
		return false
	}
	w.fb.DrawLine(int(math.Floor(a.X)), int(math.Floor(a.Y)), int(math.Floor(b.X)), int(math.Floor(b.Y)), w.Color)
	return true
}

// onCanvas accepts points within a guard band of one framebuffer size
// around the visible area.
func (w *Wireframe) onCanvas(p math3d.Vec3) bool {
	fw, fh := float64(w.fb.Width), float64(w.fb.Height)
	return p.X >= -fw && p.X <= 2*fw && p.Y >= -fh && p.Y <= 2*fh
}
