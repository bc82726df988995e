package meshio

import (
	"fmt"

	"github.com/fogleman/simplify"
	"github.com/go-gl/mathgl/mgl32"

	"viz3d/internal/geometry"
)

// Simplify decimates raw to roughly factor times its triangle count using
// quadric error edge collapses. A factor of 1 returns raw unchanged. Vertex
// colors and file normals do not survive; normals are recomputed.
func Simplify(raw *geometry.RawMesh, factor float64) (*geometry.RawMesh, error) {
	if factor <= 0 || factor > 1 {
		return nil, fmt.Errorf("%w: simplify factor %v outside (0,1]", geometry.ErrInvalidInput, factor)
	}
	if factor == 1 {
		return raw, nil
	}

	triangles := make([]*simplify.Triangle, len(raw.Faces))
	for i, f := range raw.Faces {
		triangles[i] = simplify.NewTriangle(
			toVector(raw.Vertices[f[0]]),
			toVector(raw.Vertices[f[1]]),
			toVector(raw.Vertices[f[2]]),
		)
	}
	decimated := simplify.NewMesh(triangles).Simplify(factor)

	b := newSTLBuilder()
	for _, t := range decimated.Triangles {
		b.facet(fromVector(t.V1), fromVector(t.V2), fromVector(t.V3))
	}
	if len(b.raw.Faces) == 0 {
		return nil, fmt.Errorf("%w: simplify left no faces", geometry.ErrInvalidInput)
	}
	finish(b.raw)
	return b.raw, nil
}

func toVector(v mgl32.Vec3) simplify.Vector {
	return simplify.Vector{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}

func fromVector(v simplify.Vector) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}
