package models

import (
	"math"

	"github.com/taigrr/planetoid/pkg/math3d"
)

// NewIcosphere builds a unit sphere by subdividing an icosahedron.
// Zero subdivisions gives the bare icosahedron: 12 vertices, 20 faces.
// Normals equal positions and UVs are equirectangular.
func NewIcosphere(subdivisions int) *Mesh {
	t := (1 + math.Sqrt(5)) / 2
	points := []math3d.Vec3{
		{X: -1, Y: t}, {X: 1, Y: t}, {X: -1, Y: -t}, {X: 1, Y: -t},
		{Y: -1, Z: t}, {Y: 1, Z: t}, {Y: -1, Z: -t}, {Y: 1, Z: -t},
		{X: t, Z: -1}, {X: t, Z: 1}, {X: -t, Z: -1}, {X: -t, Z: 1},
	}
	for i := range points {
		points[i] = points[i].Normalize()
	}

	faces := [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}

	for range subdivisions {
		midpoints := make(map[[2]int]int)
		midpoint := func(a, b int) int {
			key := [2]int{min(a, b), max(a, b)}
			if idx, ok := midpoints[key]; ok {
				return idx
			}
			points = append(points, points[a].Add(points[b]).Scale(0.5).Normalize())
			midpoints[key] = len(points) - 1
			return len(points) - 1
		}

		next := make([][3]int, 0, len(faces)*4)
		for _, f := range faces {
			ab := midpoint(f[0], f[1])
			bc := midpoint(f[1], f[2])
			ca := midpoint(f[2], f[0])
			next = append(next,
				[3]int{f[0], ab, ca},
				[3]int{f[1], bc, ab},
				[3]int{f[2], ca, bc},
				[3]int{ab, bc, ca},
			)
		}
		faces = next
	}

	mesh := NewMesh("icosphere")
	for _, p := range points {
		mesh.Vertices = append(mesh.Vertices, MeshVertex{
			Position: p,
			Normal:   p,
			UV: math3d.V2(
				0.5+math.Atan2(p.Z, p.X)/(2*math.Pi),
				0.5+math.Asin(math.Max(-1, math.Min(1, p.Y)))/math.Pi,
			),
		})
	}
	for _, f := range faces {
		mesh.Faces = append(mesh.Faces, Face{V: f})
	}
	mesh.CalculateBounds()

	return mesh
}
