package meshio

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadOBJ = `# unit quad
v 0 0 0 1 0 0
v 1 0 0 0 1 0
v 1 1 0 0 0 1
v 0 1 0 1 1 1
vt 0 0
vn 0 0 1
f 1/1/1 2/1/1 3/1/1 4/1/1
`

func TestReadOBJQuadWithColors(t *testing.T) {
	raw, err := ReadOBJ(strings.NewReader(quadOBJ))
	require.NoError(t, err)

	assert.Len(t, raw.Vertices, 4)
	assert.Equal(t, [][3]uint32{{0, 1, 2}, {0, 2, 3}}, raw.Faces)
	require.Len(t, raw.VertexColors, 4)
	assert.Equal(t, [4]uint8{255, 0, 0, 255}, raw.VertexColors[0])
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, raw.VertexColors[3])
}

func TestReadOBJNegativeIndicesAndNoColors(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n"
	raw, err := ReadOBJ(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, [][3]uint32{{0, 1, 2}}, raw.Faces)
	assert.Nil(t, raw.VertexColors)
}

func TestReadOBJMergesObjects(t *testing.T) {
	src := `o first
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
o second
v 0 0 1
f 1 3 4
`
	raw, err := ReadOBJ(strings.NewReader(src))
	require.NoError(t, err)
	assert.Len(t, raw.Vertices, 4)
	assert.Equal(t, [][3]uint32{{0, 1, 2}, {0, 2, 3}}, raw.Faces)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, raw.Vertices[3])
}

func TestReadOBJErrors(t *testing.T) {
	for name, src := range map[string]string{
		"short vertex":    "v 1 2\n",
		"bad number":      "v 1 x 2\n",
		"index too large": "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n",
		"short face":      "v 0 0 0\nf 1 1\n",
		"index too small": "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -4 1 2\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadOBJ(strings.NewReader(src))
			assert.Error(t, err)
		})
	}
}

const tetraSTL = `solid tetra
facet normal 0 0 0
 outer loop
  vertex 0 0 0
  vertex 1 0 0
  vertex 0 1 0
 endloop
endfacet
facet normal 0 0 0
 outer loop
  vertex 0 0 0
  vertex 0 1 0
  vertex 0 0 1
 endloop
endfacet
endsolid tetra
`

func TestReadSTLASCIIMergesVertices(t *testing.T) {
	raw, err := ReadSTL(strings.NewReader(tetraSTL))
	require.NoError(t, err)
	assert.Len(t, raw.Vertices, 4)
	assert.Equal(t, [][3]uint32{{0, 1, 2}, {0, 2, 3}}, raw.Faces)
}

func binarySTL(tris [][3]mgl32.Vec3) []byte {
	var buf bytes.Buffer
	buf.Write(make([]byte, 80)) // header
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(tris)))
	for _, tri := range tris {
		buf.Write(make([]byte, 12))
		for _, v := range tri {
			for _, c := range v {
				_ = binary.Write(&buf, binary.LittleEndian, math.Float32bits(c))
			}
		}
		buf.Write([]byte{0, 0})
	}
	return buf.Bytes()
}

func TestReadSTLBinary(t *testing.T) {
	data := binarySTL([][3]mgl32.Vec3{
		{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}},
		{{0, 0, 0}, {1, 1, 0}, {0, 1, 0}},
	})
	raw, err := ReadSTL(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, raw.Vertices, 4)
	assert.Len(t, raw.Faces, 2)
	assert.Equal(t, mgl32.Vec3{1, 1, 0}, raw.Vertices[raw.Faces[1][1]])
}

func TestReadSTLRejectsGarbage(t *testing.T) {
	_, err := ReadSTL(strings.NewReader("hello"))
	assert.Error(t, err)
}

func TestLoadComputesNormals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	require.NoError(t, os.WriteFile(path, []byte(quadOBJ), 0o644))

	raw, err := Load(path)
	require.NoError(t, err)
	require.Len(t, raw.FaceNormals, 2)
	require.Len(t, raw.VertexNormals, 4)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, raw.FaceNormals[0])
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, raw.VertexNormals[2])
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.obj"))
	assert.ErrorIs(t, err, ErrLoad)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(filepath.Join(dir, "model.ply"))
	assert.ErrorIs(t, err, ErrLoad)

	empty := filepath.Join(dir, "empty.obj")
	require.NoError(t, os.WriteFile(empty, []byte("v 0 0 0\n"), 0o644))
	_, err = Load(empty)
	assert.ErrorIs(t, err, ErrLoad)
}

func TestReadGLTFPrimitives(t *testing.T) {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	col := modeler.WriteColor(doc, [][4]uint8{{255, 0, 0, 255}, {0, 255, 0, 255}, {0, 0, 255, 255}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: map[string]int{gltf.POSITION: pos, gltf.COLOR_0: col},
		}},
	}}

	raw, err := readGLTF(doc)
	require.NoError(t, err)
	assert.Len(t, raw.Vertices, 3)
	assert.Equal(t, [][3]uint32{{0, 1, 2}}, raw.Faces)
	require.Len(t, raw.VertexColors, 3)
	assert.Equal(t, [4]uint8{0, 255, 0, 255}, raw.VertexColors[1])
	assert.Nil(t, raw.VertexNormals, "normals are left for Load to compute")
}
