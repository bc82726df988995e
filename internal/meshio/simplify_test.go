package meshio

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viz3d/internal/geometry"
)

func wavyGrid(n int) *geometry.RawMesh {
	raw := &geometry.RawMesh{}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			z := float32(0.1 * math.Sin(float64(i)) * math.Cos(float64(j)))
			raw.Vertices = append(raw.Vertices, mgl32.Vec3{float32(j), float32(i), z})
		}
	}
	for i := 0; i < n-1; i++ {
		for j := 0; j < n-1; j++ {
			a := uint32(i*n + j)
			raw.Faces = append(raw.Faces, [3]uint32{a, a + 1, a + uint32(n) + 1}, [3]uint32{a, a + uint32(n) + 1, a + uint32(n)})
		}
	}
	return raw
}

func TestSimplifyReducesFaces(t *testing.T) {
	raw := wavyGrid(20)
	out, err := Simplify(raw, 0.25)
	require.NoError(t, err)

	assert.NotEmpty(t, out.Faces)
	assert.Less(t, len(out.Faces), len(raw.Faces))
	assert.Len(t, out.FaceNormals, len(out.Faces))
	assert.Len(t, out.VertexNormals, len(out.Vertices))

	_, err = geometry.FromMesh(out, geometry.MeshOptions{})
	assert.NoError(t, err)
}

func TestSimplifyFactor(t *testing.T) {
	raw := wavyGrid(4)

	same, err := Simplify(raw, 1)
	require.NoError(t, err)
	assert.Same(t, raw, same)

	for _, f := range []float64{0, -0.5, 1.5} {
		_, err := Simplify(raw, f)
		assert.ErrorIs(t, err, geometry.ErrInvalidInput, "factor %v", f)
	}
}
