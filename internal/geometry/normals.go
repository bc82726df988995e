package geometry

import "github.com/go-gl/mathgl/mgl32"

// FaceNormals returns the unit normal of every face, counter-clockwise winding.
// Degenerate faces get a zero normal.
func FaceNormals(vertices []mgl32.Vec3, faces [][3]uint32) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(faces))
	for i, f := range faces {
		out[i] = safeNormalize(faceCross(vertices, f))
	}
	return out
}

// VertexNormals averages the normals of the faces around each vertex,
// weighted by face area, and returns them at unit length.
func VertexNormals(vertices []mgl32.Vec3, faces [][3]uint32) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(vertices))
	for _, f := range faces {
		// the cross product length is twice the face area
		n := faceCross(vertices, f)
		for _, vi := range f {
			out[vi] = out[vi].Add(n)
		}
	}
	for i := range out {
		out[i] = safeNormalize(out[i])
	}
	return out
}

func faceCross(vertices []mgl32.Vec3, f [3]uint32) mgl32.Vec3 {
	a, b, c := vertices[f[0]], vertices[f[1]], vertices[f[2]]
	return b.Sub(a).Cross(c.Sub(a))
}

func safeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() == 0 {
		return mgl32.Vec3{}
	}
	return v.Normalize()
}
