// Package models provides the mesh representation the planet renderer
// consumes and the loaders that produce it.
package models

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/taigrr/planetoid/pkg/math3d"
)

var (
	// ErrNoTriangles is returned when a mesh file parses but yields no faces.
	ErrNoTriangles = errors.New("mesh has no triangles")
	// ErrUnsupportedFormat is returned by Load for unknown file extensions.
	ErrUnsupportedFormat = errors.New("unsupported mesh format")
)

// Mesh represents an indexed triangle mesh.
type Mesh struct {
	Name     string
	Vertices []MeshVertex
	Faces    []Face

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Face represents a triangle face as indices into Mesh.Vertices.
type Face struct {
	V [3]int
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]MeshVertex, 0),
		Faces:    make([]Face, 0),
	}
}

// Load reads a mesh file, choosing the loader from the file extension.
func Load(path string) (*Mesh, error) {
	var (
		mesh *Mesh
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		mesh, err = LoadOBJ(path)
	case ".glb", ".gltf":
		mesh, err = LoadGLB(path)
	default:
		return nil, fmt.Errorf("%w: %q (use .obj or .glb)", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	if mesh.TriangleCount() == 0 {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), ErrNoTriangles)
	}
	return mesh, nil
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// BoundingRadius returns the distance from the object-space origin to the
// farthest vertex.
func (m *Mesh) BoundingRadius() float64 {
	var r float64
	for _, v := range m.Vertices {
		r = max(r, v.Position.Len())
	}
	return r
}

// Fit centers the mesh's bounding box on the origin and scales it so the
// farthest vertex lies at radius. Normals are unaffected by a uniform scale.
func (m *Mesh) Fit(radius float64) {
	if len(m.Vertices) == 0 {
		return
	}
	m.CalculateBounds()
	center := m.Center()
	for i := range m.Vertices {
		m.Vertices[i].Position = m.Vertices[i].Position.Sub(center)
	}
	if r := m.BoundingRadius(); r > 0 {
		s := radius / r
		for i := range m.Vertices {
			m.Vertices[i].Position = m.Vertices[i].Position.Scale(s)
		}
	}
	m.CalculateBounds()
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// HasNormals reports whether any vertex carries a non-zero normal.
func (m *Mesh) HasNormals() bool {
	for _, v := range m.Vertices {
		if v.Normal.Len() > 0.001 {
			return true
		}
	}
	return false
}

// CalculateSmoothNormals computes averaged normals for smooth shading.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}

	// Accumulate area-weighted face normals per vertex
	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position

		normal := v1.Sub(v0).Cross(v2.Sub(v0))

		m.Vertices[f.V[0]].Normal = m.Vertices[f.V[0]].Normal.Add(normal)
		m.Vertices[f.V[1]].Normal = m.Vertices[f.V[1]].Normal.Add(normal)
		m.Vertices[f.V[2]].Normal = m.Vertices[f.V[2]].Normal.Add(normal)
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// VertexArray expands the indexed faces into a flat vertex list where every
// consecutive group of three is one triangle, in face order and with the
// source winding.
func (m *Mesh) VertexArray() []MeshVertex {
	out := make([]MeshVertex, 0, len(m.Faces)*3)
	for _, f := range m.Faces {
		out = append(out, m.Vertices[f.V[0]], m.Vertices[f.V[1]], m.Vertices[f.V[2]])
	}
	return out
}
