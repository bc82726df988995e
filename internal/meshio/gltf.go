package meshio

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"viz3d/internal/geometry"
)

// loadGLTF merges every triangle primitive of a .gltf or .glb file into one mesh.
// Node transforms are not applied.
func loadGLTF(path string) (*geometry.RawMesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, err
	}
	return readGLTF(doc)
}

func readGLTF(doc *gltf.Document) (*geometry.RawMesh, error) {
	raw := &geometry.RawMesh{}
	var (
		normals   []mgl32.Vec3
		colors    [][4]uint8
		hasColors bool
		complete  = true
	)

	for _, mesh := range doc.Meshes {
		for _, primitive := range mesh.Primitives {
			if primitive.Mode != gltf.PrimitiveTriangles {
				continue
			}
			posIdx, ok := primitive.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
			if err != nil {
				return nil, fmt.Errorf("mesh %q: %w", mesh.Name, err)
			}
			base := uint32(len(raw.Vertices))
			for _, p := range positions {
				raw.Vertices = append(raw.Vertices, mgl32.Vec3(p))
			}

			if normIdx, ok := primitive.Attributes[gltf.NORMAL]; ok {
				ns, err := modeler.ReadNormal(doc, doc.Accessors[normIdx], nil)
				if err != nil {
					return nil, fmt.Errorf("mesh %q: %w", mesh.Name, err)
				}
				for _, n := range ns {
					normals = append(normals, mgl32.Vec3(n))
				}
			} else {
				complete = false
			}

			if colIdx, ok := primitive.Attributes[gltf.COLOR_0]; ok {
				cs, err := modeler.ReadColor(doc, doc.Accessors[colIdx], nil)
				if err != nil {
					return nil, fmt.Errorf("mesh %q: %w", mesh.Name, err)
				}
				colors = append(colors, cs...)
				hasColors = true
			} else {
				for range positions {
					colors = append(colors, [4]uint8{102, 102, 102, 255})
				}
			}

			var indices []uint32
			if primitive.Indices != nil {
				indices, err = modeler.ReadIndices(doc, doc.Accessors[*primitive.Indices], nil)
				if err != nil {
					return nil, fmt.Errorf("mesh %q: %w", mesh.Name, err)
				}
			} else {
				indices = make([]uint32, len(positions))
				for k := range indices {
					indices[k] = uint32(k)
				}
			}
			for i := 0; i+2 < len(indices); i += 3 {
				raw.Faces = append(raw.Faces, [3]uint32{
					base + indices[i],
					base + indices[i+1],
					base + indices[i+2],
				})
			}
		}
	}

	if complete && len(normals) == len(raw.Vertices) {
		raw.VertexNormals = normals
	}
	if hasColors && len(colors) == len(raw.Vertices) {
		raw.VertexColors = colors
	}
	return raw, nil
}
