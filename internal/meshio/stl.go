package meshio

import (
	"bytes"
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hschendel/stl"

	"viz3d/internal/geometry"
)

func loadSTLFile(path string) (*geometry.RawMesh, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSTL(f)
}

// ReadSTL parses ASCII or binary STL. Corners sharing a position are merged
// into one vertex; the stored facet normals are discarded and recomputed.
func ReadSTL(r io.Reader) (*geometry.RawMesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	solid, err := stl.ReadAll(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	b := newSTLBuilder()
	for _, t := range solid.Triangles {
		b.facet(mgl32.Vec3(t.Vertices[0]), mgl32.Vec3(t.Vertices[1]), mgl32.Vec3(t.Vertices[2]))
	}
	return b.raw, nil
}

// stlBuilder welds corners with identical positions into shared vertices.
type stlBuilder struct {
	raw   *geometry.RawMesh
	index map[mgl32.Vec3]uint32
}

func newSTLBuilder() *stlBuilder {
	return &stlBuilder{
		raw:   &geometry.RawMesh{},
		index: make(map[mgl32.Vec3]uint32),
	}
}

func (b *stlBuilder) vertex(v mgl32.Vec3) uint32 {
	if i, ok := b.index[v]; ok {
		return i
	}
	i := uint32(len(b.raw.Vertices))
	b.raw.Vertices = append(b.raw.Vertices, v)
	b.index[v] = i
	return i
}

func (b *stlBuilder) facet(a, c, d mgl32.Vec3) {
	b.raw.Faces = append(b.raw.Faces, [3]uint32{b.vertex(a), b.vertex(c), b.vertex(d)})
}
