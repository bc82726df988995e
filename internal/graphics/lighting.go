package graphics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Luminance evaluates MeshFragmentShader's lighting term on the CPU:
// acos(dot(normalize(normal), normalize(vertex - light))) / pi, clamped to [0,1].
func Luminance(vertex, normal, light mgl32.Vec3) float32 {
	n := normalize(normal)
	d := normalize(vertex.Sub(light))
	dot := n.Dot(d)
	// acos is undefined outside [-1,1]; rounding can push a unit dot past it
	dot = math32.Max(-1, math32.Min(1, dot))
	lum := math32.Acos(dot) / math32.Pi
	return math32.Max(0, math32.Min(1, lum))
}

// Shade applies Luminance to a vertex color like the fragment shader does.
func Shade(color, vertex, normal, light mgl32.Vec3) mgl32.Vec3 {
	return color.Mul(Luminance(vertex, normal, light))
}

func normalize(v mgl32.Vec3) mgl32.Vec3 {
	l := math32.Sqrt(v.Dot(v))
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}
