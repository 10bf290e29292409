package render

import (
	"math"
	"testing"
)

func TestWireframeDrawVertices(t *testing.T) {
	fb := NewFramebuffer(20, 20)
	w := NewWireframe(fb)

	vs := []Vertex{
		screenVertex(2, 2, 0), screenVertex(15, 2, 0), screenVertex(2, 15, 0),
		screenVertex(5, 5, 0), screenVertex(5, 5, 0), screenVertex(5, 5, 0), // degenerate
		screenVertex(1, 1, 0), // incomplete triple is ignored
	}
	if got := w.DrawVertices(vs); got != 3 {
		t.Errorf("drew %d edges, want 3", got)
	}
	for _, p := range [][2]int{{2, 2}, {15, 2}, {2, 15}, {8, 2}} {
		if fb.GetPixel(p[0], p[1]) != ColorWire {
			t.Errorf("pixel %v not drawn", p)
		}
	}
	if fb.GetPixel(10, 10) == ColorWire {
		t.Error("interior pixel drawn")
	}
}

func TestWireframeSkipsFarEdges(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	w := NewWireframe(fb)
	got := w.DrawTriangle(screenVertex(1, 1, 0), screenVertex(1e9, 2, 0), screenVertex(3, 8, 0))
	if got != 1 {
		t.Errorf("drew %d edges, want 1", got)
	}
	if n := w.DrawTriangle(screenVertex(math.NaN(), 1, 0), screenVertex(2, 2, 0), screenVertex(3, 8, 0)); n != 0 {
		t.Errorf("drew %d edges of a NaN triangle", n)
	}
}
