package render

import (
	"image"
	"iter"
	"math"

	"github.com/taigrr/planetoid/pkg/math3d"
)

// Fragment is one covered pixel of a rasterized triangle.
type Fragment struct {
	X, Y   int
	Depth  float64
	Color  math3d.Vec3 // Interpolated vertex color scaled by diffuse light
	World  math3d.Vec3 // Interpolated world-space position
	Normal math3d.Vec3 // Interpolated transformed normal, unit length or zero
	Bary   math3d.Vec3 // Weights of v0, v1, v2; they sum to 1
}

// MinTriangleArea is the smallest doubled screen-space area rasterized.
// Anything thinner is treated as degenerate.
const MinTriangleArea = 1e-9

// Diffuse floor applied to the fragment color hint.
const ambient = 0.1

// guardBand bounds the unclipped pixel box so it always fits in an int.
const guardBand float64 = 1 << 30

// Rasterize yields a fragment for every pixel center covered by the
// screen-space triangle v0 v1 v2. Either winding is accepted. Degenerate
// triangles yield nothing. The bounding box is not clipped, so callers
// drawing into a framebuffer should prefer RasterizeClipped.
func Rasterize(v0, v1, v2 Vertex, light Light) iter.Seq[Fragment] {
	return rasterize(v0, v1, v2, light, nil)
}

// RasterizeClipped is Rasterize with the bounding box clamped to bounds.
// Fragments inside bounds are identical to those Rasterize produces.
func RasterizeClipped(v0, v1, v2 Vertex, light Light, bounds image.Rectangle) iter.Seq[Fragment] {
	return rasterize(v0, v1, v2, light, &bounds)
}

// Degenerate reports whether the triangle has no rasterizable area.
func Degenerate(v0, v1, v2 Vertex) bool {
	_, ok := signedArea(v0, v1, v2)
	return !ok
}

func signedArea(v0, v1, v2 Vertex) (float64, bool) {
	p0, p1, p2 := v0.TransformedPosition, v1.TransformedPosition, v2.TransformedPosition
	for _, c := range [...]float64{p0.X, p0.Y, p0.Z, p1.X, p1.Y, p1.Z, p2.X, p2.Y, p2.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return 0, false
		}
	}
	area := math3d.V2(p1.X, p1.Y).Sub(math3d.V2(p0.X, p0.Y)).Cross(
		math3d.V2(p2.X, p2.Y).Sub(math3d.V2(p0.X, p0.Y)))
	return area, math.Abs(area) > MinTriangleArea
}

func rasterize(v0, v1, v2 Vertex, light Light, bounds *image.Rectangle) iter.Seq[Fragment] {
	return func(yield func(Fragment) bool) {
		area, ok := signedArea(v0, v1, v2)
		if !ok {
			return
		}

		p0, p1, p2 := v0.TransformedPosition, v1.TransformedPosition, v2.TransformedPosition

		// Clamp in float space first: converting a huge coordinate to int
		// overflows and would empty the box.
		loX, loY, hiX, hiY := -guardBand, -guardBand, guardBand, guardBand
		if bounds != nil {
			loX, loY = float64(bounds.Min.X), float64(bounds.Min.Y)
			hiX, hiY = float64(bounds.Max.X-1), float64(bounds.Max.Y-1)
		}
		minX, maxX := span(min3(p0.X, p1.X, p2.X), max3(p0.X, p1.X, p2.X), loX, hiX)
		minY, maxY := span(min3(p0.Y, p1.Y, p2.Y), max3(p0.Y, p1.Y, p2.Y), loY, hiY)

		// Edge functions opposite each vertex, pre-divided by the area so
		// the three values at a pixel are its barycentric weights.
		inv := 1 / area
		a0, b0, c0 := edgeCoeffs(p1.X, p1.Y, p2.X, p2.Y)
		a1, b1, c1 := edgeCoeffs(p2.X, p2.Y, p0.X, p0.Y)
		a2, b2, c2 := edgeCoeffs(p0.X, p0.Y, p1.X, p1.Y)

		lightDir := light.Direction()

		for y := minY; y <= maxY; y++ {
			py := float64(y) + 0.5
			for x := minX; x <= maxX; x++ {
				px := float64(x) + 0.5

				w0 := edgeFunc(a0, b0, c0, px, py) * inv
				w1 := edgeFunc(a1, b1, c1, px, py) * inv
				w2 := edgeFunc(a2, b2, c2, px, py) * inv
				if w0 < 0 || w1 < 0 || w2 < 0 {
					continue
				}

				normal := blend(v0.TransformedNormal, v1.TransformedNormal, v2.TransformedNormal, w0, w1, w2).Normalize()
				intensity := math.Max(ambient, math.Min(1, normal.Dot(lightDir)))

				frag := Fragment{
					X:      x,
					Y:      y,
					Depth:  w0*p0.Z + w1*p1.Z + w2*p2.Z,
					Color:  blend(v0.Color, v1.Color, v2.Color, w0, w1, w2).Scale(intensity),
					World:  blend(v0.WorldPosition, v1.WorldPosition, v2.WorldPosition, w0, w1, w2),
					Normal: normal,
					Bary:   math3d.V3(w0, w1, w2),
				}
				if !yield(frag) {
					return
				}
			}
		}
	}
}

// span converts the float extent [lo, hi] to whole pixels inside
// [minPx, maxPx].
func span(lo, hi, minPx, maxPx float64) (int, int) {
	return int(math.Floor(math.Max(lo, minPx))), int(math.Ceil(math.Min(hi, maxPx)))
}

// edgeCoeffs returns A, B, C for the edge function A*x + B*y + C of the
// directed edge (x0, y0) -> (x1, y1). It is positive on the left.
func edgeCoeffs(x0, y0, x1, y1 float64) (A, B, C float64) {
	A = y0 - y1
	B = x1 - x0
	C = x0*y1 - x1*y0
	return
}

func edgeFunc(A, B, C, x, y float64) float64 {
	return A*x + B*y + C
}

func blend(a, b, c math3d.Vec3, wa, wb, wc float64) math3d.Vec3 {
	return math3d.V3(
		a.X*wa+b.X*wb+c.X*wc,
		a.Y*wa+b.Y*wb+c.Y*wc,
		a.Z*wa+b.Z*wb+c.Z*wc,
	)
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
