package meshio

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/g3n/engine/loader/obj"
	"github.com/go-gl/mathgl/mgl32"

	"viz3d/internal/geometry"
)

func loadOBJFile(path string) (*geometry.RawMesh, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadOBJ(f)
}

// ReadOBJ parses Wavefront OBJ geometry. Faces of every object are merged into
// one mesh and polygons are fan-triangulated. Vertex colors may follow the
// position on "v" lines as three floats in [0,1]. Materials, texture
// coordinates and per-corner normals are ignored.
func ReadOBJ(r io.Reader) (*geometry.RawMesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	// an empty material library keeps the decoder from looking for .mtl files
	dec, err := obj.DecodeReader(bytes.NewReader(data), strings.NewReader(""))
	if err != nil {
		return nil, err
	}

	n := len(dec.Vertices) / 3
	raw := &geometry.RawMesh{Vertices: make([]mgl32.Vec3, n)}
	for i := range raw.Vertices {
		raw.Vertices[i] = mgl32.Vec3{dec.Vertices[3*i], dec.Vertices[3*i+1], dec.Vertices[3*i+2]}
	}

	for _, o := range dec.Objects {
		for fi, face := range o.Faces {
			idx := make([]uint32, len(face.Vertices))
			for k, vi := range face.Vertices {
				if vi < 0 || vi >= n {
					return nil, fmt.Errorf("object %q face %d: vertex index %d out of range", o.Name, fi, vi)
				}
				idx[k] = uint32(vi)
			}
			for i := 1; i < len(idx)-1; i++ {
				raw.Faces = append(raw.Faces, [3]uint32{idx[0], idx[i], idx[i+1]})
			}
		}
	}

	colors, err := objVertexColors(data, n)
	if err != nil {
		return nil, err
	}
	raw.VertexColors = colors
	return raw, nil
}

// objVertexColors picks up the "v x y z r g b" extension, which the decoder
// drops. It returns nil when no vertex carries a color.
func objVertexColors(data []byte, count int) ([][4]uint8, error) {
	colors := make([][4]uint8, 0, count)
	hasColors := false

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || fields[0] != "v" {
			continue
		}
		c := [4]uint8{102, 102, 102, 255}
		if len(fields) >= 7 {
			rgb, err := parseVec3(fields[4:7])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			c = [4]uint8{unitToByte(rgb[0]), unitToByte(rgb[1]), unitToByte(rgb[2]), 255}
			hasColors = true
		}
		colors = append(colors, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !hasColors || len(colors) != count {
		return nil, nil
	}
	return colors, nil
}

func parseVec3(fields []string) (mgl32.Vec3, error) {
	var v mgl32.Vec3
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return v, fmt.Errorf("bad number %q", fields[i])
		}
		v[i] = float32(f)
	}
	return v, nil
}

func unitToByte(f float32) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(f*255 + 0.5)
}
