package geometry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoTriangleMesh() *RawMesh {
	vertices := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	faces := [][3]uint32{{0, 1, 2}, {0, 2, 3}}
	return &RawMesh{
		Vertices:      vertices,
		Faces:         faces,
		VertexNormals: VertexNormals(vertices, faces),
		FaceNormals:   FaceNormals(vertices, faces),
	}
}

func TestNewMeshRejectsMismatchedLengths(t *testing.T) {
	v := make([]mgl32.Vec3, 3)
	_, err := NewMesh(v, make([]mgl32.Vec3, 2), v)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewMesh(make([]mgl32.Vec3, 4), make([]mgl32.Vec3, 4), make([]mgl32.Vec3, 4))
	assert.ErrorIs(t, err, ErrInvalidInput, "partial triangle must be rejected")
}

func TestFromMeshFlattensByFace(t *testing.T) {
	raw := twoTriangleMesh()
	m, err := FromMesh(raw, MeshOptions{})
	require.NoError(t, err)

	require.Equal(t, 6, m.Len())
	assert.Len(t, m.Normals, 6)
	assert.Len(t, m.Colors, 6)

	want := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	assert.Equal(t, want, m.Vertices)
	for _, n := range m.Normals {
		assert.Equal(t, mgl32.Vec3{0, 0, 1}, n)
	}
	for _, c := range m.Colors {
		assert.Equal(t, DefaultColor, c)
	}
}

func TestFromMeshConstantColor(t *testing.T) {
	red := mgl32.Vec3{1, 0, 0}
	raw := twoTriangleMesh()
	raw.VertexColors = [][4]uint8{{0, 0, 0, 255}, {0, 0, 0, 255}, {0, 0, 0, 255}, {0, 0, 0, 255}}

	m, err := FromMesh(raw, MeshOptions{Color: &red})
	require.NoError(t, err)
	for _, c := range m.Colors {
		assert.Equal(t, red, c, "override color wins over vertex colors")
	}
}

func TestFromMeshVertexColorsDropAlpha(t *testing.T) {
	raw := twoTriangleMesh()
	raw.VertexColors = [][4]uint8{{255, 0, 0, 10}, {0, 255, 0, 20}, {0, 0, 255, 30}, {51, 102, 204, 40}}

	m, err := FromMesh(raw, MeshOptions{})
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, m.Colors[0])
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, m.Colors[1])
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, m.Colors[2])
	assert.InDeltaSlice(t, []float32{0.2, 0.4, 0.8}, m.Colors[5][:], 1e-6)
}

func TestFromMeshVertexNormals(t *testing.T) {
	raw := twoTriangleMesh()
	raw.VertexNormals[2] = mgl32.Vec3{0, 1, 0}

	m, err := FromMesh(raw, MeshOptions{UseVertexNormals: true})
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, m.Normals[2])
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, m.Normals[4])
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, m.Normals[0])
}

func TestFromMeshInvalidInput(t *testing.T) {
	cases := map[string]func(r *RawMesh){
		"no faces":           func(r *RawMesh) { r.Faces = nil },
		"index out of range": func(r *RawMesh) { r.Faces[1][2] = 9 },
		"face normals":       func(r *RawMesh) { r.FaceNormals = r.FaceNormals[:1] },
		"vertex colors":      func(r *RawMesh) { r.VertexColors = [][4]uint8{{1, 2, 3, 4}} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			raw := twoTriangleMesh()
			mutate(raw)
			_, err := FromMesh(raw, MeshOptions{})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	raw := twoTriangleMesh()
	raw.VertexNormals = nil
	_, err := FromMesh(raw, MeshOptions{UseVertexNormals: true})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = FromMesh(nil, MeshOptions{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNormalizeRoundTrip(t *testing.T) {
	in := Linspace(-1, 1, 7)
	out := Normalize(in)
	assert.InDeltaSlice(t, in, out, 1e-12)
}

func TestNormalizeRange(t *testing.T) {
	out := Normalize([]float64{3, 5, 7, 4})
	assert.InDeltaSlice(t, []float64{-1, 0, 1, -0.5}, out, 1e-12)
}

func TestNormalizeConstantAxisIsZero(t *testing.T) {
	out := Normalize([]float64{2, 2, 2})
	assert.Equal(t, []float64{0, 0, 0}, out)
}

func grid3x3() (X, Y, Z [][]float64) {
	X, Y = Meshgrid(Linspace(0, 2, 3), Linspace(0, 2, 3))
	Z = [][]float64{{0, 1, 0}, {1, 2, 1}, {0, 1, 0}}
	return
}

func TestFromGridRowCountAndFlatShading(t *testing.T) {
	X, Y, Z := grid3x3()
	m, err := FromGrid(X, Y, Z, nil)
	require.NoError(t, err)

	require.Equal(t, 24, m.Len())
	for i := 0; i < m.Len(); i += 3 {
		assert.Equal(t, m.Normals[i], m.Normals[i+1])
		assert.Equal(t, m.Normals[i], m.Normals[i+2])
	}
}

func TestFromGridTriangulationOrder(t *testing.T) {
	X, Y := Meshgrid([]float64{0, 1}, []float64{0, 1})
	Z := [][]float64{{0, 0}, {0, 1}}
	m, err := FromGrid(X, Y, Z, nil)
	require.NoError(t, err)
	require.Equal(t, 6, m.Len())

	p00 := mgl32.Vec3{-1, -1, -1}
	p01 := mgl32.Vec3{1, -1, -1}
	p10 := mgl32.Vec3{-1, 1, -1}
	p11 := mgl32.Vec3{1, 1, 1}
	assert.Equal(t, []mgl32.Vec3{p00, p01, p11, p00, p11, p10}, m.Vertices)

	// cross(a-b, c-b) for the first triangle
	want := p00.Sub(p01).Cross(p11.Sub(p01))
	assert.Equal(t, want, m.Normals[0])
}

func TestFromGridColors(t *testing.T) {
	X, Y, Z := grid3x3()

	gray, err := FromGrid(X, Y, Z, nil)
	require.NoError(t, err)
	for i, v := range gray.Vertices {
		assert.Equal(t, mgl32.Vec3{v[2], v[2], v[2]}, gray.Colors[i])
	}

	red := func(z float32) mgl32.Vec3 { return mgl32.Vec3{1, 0, z} }
	colored, err := FromGrid(X, Y, Z, red)
	require.NoError(t, err)
	for i, v := range colored.Vertices {
		assert.Equal(t, mgl32.Vec3{1, 0, v[2]}, colored.Colors[i])
	}
}

func TestFromGridFlatAxisHasNoNaN(t *testing.T) {
	X, Y := Meshgrid(Linspace(0, 1, 3), Linspace(0, 1, 3))
	Z := [][]float64{{5, 5, 5}, {5, 5, 5}, {5, 5, 5}}
	m, err := FromGrid(X, Y, Z, nil)
	require.NoError(t, err)
	for _, v := range m.Vertices {
		assert.Equal(t, float32(0), v[2])
	}
}

func TestFromGridInvalidShapes(t *testing.T) {
	X, Y, Z := grid3x3()

	_, err := FromGrid(X, Y, Z[:2], nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	ragged := [][]float64{{0, 1, 0}, {1, 2}, {0, 1, 0}}
	_, err = FromGrid(X, Y, ragged, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = FromGrid([][]float64{{1, 2}}, [][]float64{{1, 2}}, [][]float64{{1, 2}}, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFromGridRejectsNonFinite(t *testing.T) {
	for _, bad := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		X, Y, Z := grid3x3()
		Z[1][1] = bad
		_, err := FromGrid(X, Y, Z, nil)
		assert.ErrorIs(t, err, ErrInvalidInput, "z = %v", bad)

		X, Y, Z = grid3x3()
		X[0][2] = bad
		_, err = FromGrid(X, Y, Z, nil)
		assert.ErrorIs(t, err, ErrInvalidInput, "x = %v", bad)
	}
}

func TestInterleavedRows(t *testing.T) {
	m, err := NewMesh(
		[]mgl32.Vec3{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}},
		[]mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		[]mgl32.Vec3{{.1, .2, .3}, {.4, .5, .6}, {.7, .8, .9}},
	)
	require.NoError(t, err)
	data := m.Interleaved()
	require.Len(t, data, 3*FloatsPerVertex)
	assert.Equal(t, []float32{4, 5, 6, 0, 0, 1, .4, .5, .6}, data[FloatsPerVertex:2*FloatsPerVertex])
}

func TestBounds(t *testing.T) {
	m := &Mesh{Vertices: []mgl32.Vec3{{1, -2, 3}, {-1, 4, 0}, {0, 0, 5}}}
	lo, hi := m.Bounds()
	assert.Equal(t, mgl32.Vec3{-1, -2, 0}, lo)
	assert.Equal(t, mgl32.Vec3{1, 4, 5}, hi)
}

func BenchmarkFromGrid_100x100(b *testing.B) {
	X, Y := Meshgrid(Linspace(-3, 3, 100), Linspace(-3, 3, 100))
	Z := make([][]float64, len(X))
	for i := range X {
		Z[i] = make([]float64, len(X[i]))
		for j := range X[i] {
			Z[i][j] = X[i][j] * Y[i][j]
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = FromGrid(X, Y, Z, nil)
	}
}
