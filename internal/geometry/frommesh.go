package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultColor is used when a mesh has neither an override color nor vertex colors.
var DefaultColor = mgl32.Vec3{102.0 / 255, 102.0 / 255, 102.0 / 255}

// RawMesh is an indexed triangle mesh as produced by a file parser.
type RawMesh struct {
	Vertices      []mgl32.Vec3
	Faces         [][3]uint32
	VertexNormals []mgl32.Vec3
	FaceNormals   []mgl32.Vec3
	// VertexColors are RGBA in the 0-255 range. Nil when the file has none.
	VertexColors [][4]uint8
}

// MeshOptions controls how a RawMesh is flattened.
type MeshOptions struct {
	// Color overrides every vertex color when non-nil.
	Color            *mgl32.Vec3
	UseVertexNormals bool
}

// Validate checks the shape of the raw mesh for the given options.
func (r *RawMesh) Validate(opts MeshOptions) error {
	if len(r.Faces) == 0 {
		return fmt.Errorf("%w: mesh has no faces", ErrInvalidInput)
	}
	n := uint32(len(r.Vertices))
	for i, f := range r.Faces {
		if f[0] >= n || f[1] >= n || f[2] >= n {
			return fmt.Errorf("%w: face %d references vertex outside [0,%d)", ErrInvalidInput, i, n)
		}
	}
	if opts.UseVertexNormals {
		if len(r.VertexNormals) != len(r.Vertices) {
			return fmt.Errorf("%w: %d vertex normals for %d vertices",
				ErrInvalidInput, len(r.VertexNormals), len(r.Vertices))
		}
	} else if len(r.FaceNormals) != len(r.Faces) {
		return fmt.Errorf("%w: %d face normals for %d faces",
			ErrInvalidInput, len(r.FaceNormals), len(r.Faces))
	}
	if r.VertexColors != nil && len(r.VertexColors) != len(r.Vertices) {
		return fmt.Errorf("%w: %d vertex colors for %d vertices",
			ErrInvalidInput, len(r.VertexColors), len(r.Vertices))
	}
	return nil
}

// FromMesh flattens an indexed mesh so that every face emits its three corners.
func FromMesh(raw *RawMesh, opts MeshOptions) (*Mesh, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: nil mesh", ErrInvalidInput)
	}
	if err := raw.Validate(opts); err != nil {
		return nil, err
	}

	rows := 3 * len(raw.Faces)
	vertices := make([]mgl32.Vec3, 0, rows)
	normals := make([]mgl32.Vec3, 0, rows)
	colors := make([]mgl32.Vec3, 0, rows)

	for fi, f := range raw.Faces {
		for _, vi := range f {
			vertices = append(vertices, raw.Vertices[vi])

			if opts.UseVertexNormals {
				normals = append(normals, raw.VertexNormals[vi])
			} else {
				normals = append(normals, raw.FaceNormals[fi])
			}

			switch {
			case opts.Color != nil:
				colors = append(colors, *opts.Color)
			case raw.VertexColors != nil:
				c := raw.VertexColors[vi]
				colors = append(colors, mgl32.Vec3{
					float32(c[0]) / 255,
					float32(c[1]) / 255,
					float32(c[2]) / 255,
				})
			default:
				colors = append(colors, DefaultColor)
			}
		}
	}

	return NewMesh(vertices, normals, colors)
}
