package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/planetoid/pkg/math3d"
)

// LoadOBJ reads a Wavefront .obj file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	return ParseOBJ(f, filepath.Base(path))
}

// ParseOBJ reads Wavefront OBJ geometry (v, vt, vn, f records) from r.
// Polygons are fan-triangulated; every other record type is ignored.
// Malformed numbers or out-of-range indices are errors.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	mesh := NewMesh(name)

	var (
		positions []math3d.Vec3
		normals   []math3d.Vec3
		uvs       []math3d.Vec2
	)
	seen := make(map[string]int) // "v/vt/vn" -> vertex index

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)

		switch parts[0] {
		case "v":
			p, err := parseFloats(parts[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			positions = append(positions, math3d.V3(p[0], p[1], p[2]))
		case "vn":
			n, err := parseFloats(parts[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			normals = append(normals, math3d.V3(n[0], n[1], n[2]))
		case "vt":
			t, err := parseFloats(parts[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: texcoord: %w", lineNo, err)
			}
			uvs = append(uvs, math3d.V2(t[0], t[1]))
		case "f":
			if len(parts) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			corners := make([]int, 0, len(parts)-1)
			for _, ref := range parts[1:] {
				if idx, ok := seen[ref]; ok {
					corners = append(corners, idx)
					continue
				}
				v, err := parseFaceVertex(ref, positions, normals, uvs)
				if err != nil {
					return nil, fmt.Errorf("line %d: face %q: %w", lineNo, ref, err)
				}
				idx := len(mesh.Vertices)
				mesh.Vertices = append(mesh.Vertices, v)
				seen[ref] = idx
				corners = append(corners, idx)
			}
			for i := 2; i < len(corners); i++ {
				mesh.Faces = append(mesh.Faces, Face{V: [3]int{corners[0], corners[i-1], corners[i]}})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	if len(normals) == 0 {
		mesh.CalculateSmoothNormals()
	}
	mesh.CalculateBounds()

	return mesh, nil
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d components, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := range n {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// parseFaceVertex resolves one "v", "v/vt", "v//vn" or "v/vt/vn" reference.
func parseFaceVertex(ref string, positions, normals []math3d.Vec3, uvs []math3d.Vec2) (MeshVertex, error) {
	var v MeshVertex
	fields := strings.Split(ref, "/")

	pi, err := resolveIndex(fields[0], len(positions))
	if err != nil {
		return v, fmt.Errorf("position: %w", err)
	}
	v.Position = positions[pi]

	if len(fields) > 1 && fields[1] != "" {
		ti, err := resolveIndex(fields[1], len(uvs))
		if err != nil {
			return v, fmt.Errorf("texcoord: %w", err)
		}
		v.UV = uvs[ti]
	}
	if len(fields) > 2 && fields[2] != "" {
		ni, err := resolveIndex(fields[2], len(normals))
		if err != nil {
			return v, fmt.Errorf("normal: %w", err)
		}
		v.Normal = normals[ni]
	}
	return v, nil
}

// resolveIndex converts a 1-based (or negative, relative) OBJ index into a
// 0-based slice index.
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	}
	return 0, fmt.Errorf("index %d out of range (have %d)", i, n)
}
