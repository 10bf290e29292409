package scene

import (
	"log/slog"
	"math"

	"github.com/taigrr/planetoid/pkg/math3d"
	"github.com/taigrr/planetoid/pkg/models"
	"github.com/taigrr/planetoid/pkg/render"
	"github.com/taigrr/planetoid/pkg/shade"
)

// Renderer draws planet frames from one static vertex array that is reused
// for the body, the ring and the moon. A Renderer is not safe for
// concurrent use.
type Renderer struct {
	Pipeline  render.Pipeline
	Light     render.Light
	Band      RingBand
	Cull      bool // Skip passes whose bounds miss the view frustum
	Wireframe bool // Outline body triangles after shading
	Logger    *slog.Logger

	vertices []render.Vertex
	scratch  []render.Vertex
	reach    float64 // Largest object-space distance from the origin
}

// NewRenderer creates a renderer for a flat vertex array, three vertices
// per triangle.
func NewRenderer(vertices []render.Vertex) *Renderer {
	var reach float64
	for _, v := range vertices {
		reach = math.Max(reach, v.Position.Len())
	}
	return &Renderer{
		Pipeline: render.DefaultPipeline,
		Light:    render.DefaultLight,
		Band:     DefaultRingBand,
		Cull:     true,
		vertices: vertices,
		scratch:  make([]render.Vertex, len(vertices)),
		reach:    reach,
	}
}

// NewMeshRenderer expands mesh into a vertex array and wraps it.
func NewMeshRenderer(mesh *models.Mesh) *Renderer {
	return NewRenderer(Vertices(mesh))
}

// Vertices converts a mesh into white pipeline vertices in face order.
func Vertices(mesh *models.Mesh) []render.Vertex {
	flat := mesh.VertexArray()
	out := make([]render.Vertex, len(flat))
	for i, mv := range flat {
		out[i] = render.Vertex{
			Position: mv.Position,
			Normal:   mv.Normal,
			UV:       mv.UV,
			Color:    math3d.V3(1, 1, 1),
		}
	}
	return out
}

// TriangleCount returns the number of triangles per pass.
func (r *Renderer) TriangleCount() int {
	return len(r.vertices) / 3
}

func (r *Renderer) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

// RenderFrame clears fb and draws the planet plus whichever auxiliary
// passes the planet type calls for: rings for the ringed planet, a moon for
// the rocky one.
func (r *Renderer) RenderFrame(fb *render.Framebuffer, u render.Uniforms) FrameStats {
	fb.Clear()

	var stats FrameStats
	stats.Passes = append(stats.Passes, r.RenderPlanet(fb, u))
	if HasRings(u.Planet) {
		stats.Passes = append(stats.Passes, r.RenderRings(fb, u))
	}
	if HasMoon(u.Planet) {
		stats.Passes = append(stats.Passes, r.RenderMoon(fb, u))
	}
	if r.Wireframe {
		body := u
		body.Mode = render.ModeBody
		r.transform(body)
		stats.Edges = render.NewWireframe(fb).DrawVertices(r.scratch)
	}

	total := stats.Total()
	r.logger().Debug("frame rendered",
		"planet", u.Planet,
		"time", u.Time,
		"passes", len(stats.Passes),
		"fragments", total.Fragments,
		"written", total.Written,
	)
	return stats
}

// RenderPlanet draws the planet body with the procedural surface of
// u.Planet.
func (r *Renderer) RenderPlanet(fb *render.Framebuffer, u render.Uniforms) PassStats {
	u.Mode = render.ModeBody
	bounds := render.Sphere{Radius: r.reach}
	return r.pass(fb, u, bounds, func(f render.Fragment) (math3d.Vec3, bool) {
		return Shade(f, u), true
	})
}

// RenderRings draws the mesh flattened into a ring, keeping only fragments
// inside r.Band.
func (r *Renderer) RenderRings(fb *render.Framebuffer, u render.Uniforms) PassStats {
	u.Mode = render.ModeRing
	ring := r.Pipeline.Ring
	bounds := render.Sphere{
		Radius: math.Hypot(math.Abs(ring.BaseRadius)+math.Abs(ring.Wobble), math.Abs(ring.Thickness)*r.reach),
	}
	return r.pass(fb, u, bounds, func(f render.Fragment) (math3d.Vec3, bool) {
		radius, ok := r.Band.Contains(f.World)
		if !ok {
			return math3d.Vec3{}, false
		}
		return shade.RingColor(radius, u.Time), true
	})
}

// RenderMoon draws the mesh shrunk onto the moon's orbit.
func (r *Renderer) RenderMoon(fb *render.Framebuffer, u render.Uniforms) PassStats {
	u.Mode = render.ModeMoon
	moon := r.Pipeline.Moon
	local := moon.Center(u.Time)
	center := u.Model.MulVec3(local)
	bounds := render.Sphere{Center: local, Radius: math.Abs(moon.Scale) * r.reach}
	return r.pass(fb, u, bounds, func(f render.Fragment) (math3d.Vec3, bool) {
		return shade.MoonColor(f.World, center), true
	})
}

// pass transforms every vertex, rasterizes consecutive triples and writes
// the colors returned by color. A false from color drops the fragment.
func (r *Renderer) pass(fb *render.Framebuffer, u render.Uniforms, bounds render.Sphere, color func(render.Fragment) (math3d.Vec3, bool)) PassStats {
	stats := PassStats{Mode: u.Mode}

	if r.Cull {
		world := bounds.Transform(u.Model)
		frustum := render.NewFrustumFromMatrix(u.Projection.Mul(u.View))
		if !frustum.IntersectsSphere(world.Center, world.Radius) {
			stats.Culled = true
			r.logger().Debug("pass culled", "mode", u.Mode, "center", world.Center, "radius", world.Radius)
			return stats
		}
	}

	r.transform(u)
	clip := fb.Bounds()

	for i := 0; i+2 < len(r.scratch); i += 3 {
		v0, v1, v2 := r.scratch[i], r.scratch[i+1], r.scratch[i+2]
		stats.Triangles++
		if render.Degenerate(v0, v1, v2) {
			stats.Degenerate++
			continue
		}
		for f := range render.RasterizeClipped(v0, v1, v2, r.Light, clip) {
			stats.Fragments++
			c, ok := color(f)
			if !ok {
				stats.Filtered++
				continue
			}
			if fb.Point(f.X, f.Y, render.ColorFromVec(c), f.Depth) {
				stats.Written++
			}
		}
	}
	return stats
}

func (r *Renderer) transform(u render.Uniforms) {
	for i, v := range r.vertices {
		r.scratch[i] = r.Pipeline.Transform(v, u)
	}
}
