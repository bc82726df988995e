// Package meshio reads triangle meshes from OBJ, STL and glTF files into
// geometry.RawMesh values.
package meshio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"viz3d/internal/geometry"
)

// ErrLoad is returned when a mesh file cannot be read or parsed.
var ErrLoad = errors.New("mesh load failed")

// Formats lists the file extensions Load understands.
var Formats = []string{".obj", ".stl", ".gltf", ".glb"}

// Load reads the mesh at path, picking the parser from the file extension.
// Normals missing from the file are computed from the faces.
func Load(path string) (*geometry.RawMesh, error) {
	var (
		raw *geometry.RawMesh
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		raw, err = loadOBJFile(path)
	case ".stl":
		raw, err = loadSTLFile(path)
	case ".gltf", ".glb":
		raw, err = loadGLTF(path)
	default:
		return nil, fmt.Errorf("%w: %s: unsupported format %q", ErrLoad, path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}
	if len(raw.Faces) == 0 {
		return nil, fmt.Errorf("%w: %s: no faces", ErrLoad, path)
	}
	n := uint32(len(raw.Vertices))
	for i, f := range raw.Faces {
		if f[0] >= n || f[1] >= n || f[2] >= n {
			return nil, fmt.Errorf("%w: %s: face %d references a missing vertex", ErrLoad, path, i)
		}
	}
	finish(raw)
	return raw, nil
}

func finish(raw *geometry.RawMesh) {
	if len(raw.FaceNormals) != len(raw.Faces) {
		raw.FaceNormals = geometry.FaceNormals(raw.Vertices, raw.Faces)
	}
	if len(raw.VertexNormals) != len(raw.Vertices) {
		raw.VertexNormals = geometry.VertexNormals(raw.Vertices, raw.Faces)
	}
}

func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open mesh file: %w", err)
	}
	return f, nil
}
