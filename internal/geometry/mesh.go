// Package geometry turns raw triangle meshes and parametric grids into flat,
// non-indexed vertex/normal/color arrays ready for upload.
//
// Every function in this package is pure; independent builds may run in parallel.
package geometry

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidInput is returned for malformed builder input.
var ErrInvalidInput = errors.New("invalid geometry input")

// FloatsPerVertex is the width of one interleaved row: position, normal, color.
const FloatsPerVertex = 9

// Mesh holds one entry per emitted triangle corner in three parallel slices.
type Mesh struct {
	Vertices []mgl32.Vec3
	Normals  []mgl32.Vec3
	Colors   []mgl32.Vec3
}

// NewMesh validates the parallel arrays and wraps them.
func NewMesh(vertices, normals, colors []mgl32.Vec3) (*Mesh, error) {
	if len(vertices) != len(normals) || len(vertices) != len(colors) {
		return nil, fmt.Errorf("%w: %d vertices, %d normals, %d colors",
			ErrInvalidInput, len(vertices), len(normals), len(colors))
	}
	if len(vertices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d vertices is not a whole number of triangles",
			ErrInvalidInput, len(vertices))
	}
	return &Mesh{Vertices: vertices, Normals: normals, Colors: colors}, nil
}

// Len returns the number of triangle corners.
func (m *Mesh) Len() int {
	return len(m.Vertices)
}

// Triangles returns the number of triangles.
func (m *Mesh) Triangles() int {
	return len(m.Vertices) / 3
}

// Interleaved packs the mesh as consecutive [position normal color] rows.
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Vertices)*FloatsPerVertex)
	for i := range m.Vertices {
		v, n, c := m.Vertices[i], m.Normals[i], m.Colors[i]
		out = append(out,
			v[0], v[1], v[2],
			n[0], n[1], n[2],
			c[0], c[1], c[2],
		)
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the vertices.
// An empty mesh yields two zero vectors.
func (m *Mesh) Bounds() (lo, hi mgl32.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	lo, hi = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for k := 0; k < 3; k++ {
			if v[k] < lo[k] {
				lo[k] = v[k]
			}
			if v[k] > hi[k] {
				hi[k] = v[k]
			}
		}
	}
	return lo, hi
}
