package graphics

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrRenderResource is returned when a GPU resource cannot be created.
var ErrRenderResource = errors.New("render resource error")

// Program is a linked shader program.
type Program uint32

// Buffer is a vertex buffer holding float32 data.
type Buffer uint32

// VertexArray binds a buffer's interleaved vec3 attributes to a program.
type VertexArray struct {
	ID    uint32
	Count int32 // vertices to draw
}

// Backend is the GPU surface the renderables talk to. Handles are only valid on
// the goroutine that owns the rendering context.
type Backend interface {
	CompileProgram(vertexSrc, fragmentSrc string) (Program, error)
	UploadBuffer(data []float32) (Buffer, error)
	// BuildVertexArray maps consecutive vec3 attributes of each buffer row to
	// the named program inputs, in order.
	BuildVertexArray(p Program, b Buffer, attributes ...string) (VertexArray, error)
	Draw(va VertexArray)
	SetUniform(p Program, name string, value []float32)
	Clear(color mgl32.Vec4)
	DeleteProgram(p Program)
	DeleteBuffer(b Buffer)
	DeleteVertexArray(va VertexArray)
}

// Uniform is a named shader input and its raw float values.
type Uniform struct {
	Name  string
	Value []float32
}

// Vec3Uniform wraps a vector uniform.
func Vec3Uniform(name string, v mgl32.Vec3) Uniform {
	return Uniform{Name: name, Value: []float32{v[0], v[1], v[2]}}
}

// Mat4Uniform wraps a column-major matrix uniform.
func Mat4Uniform(name string, m mgl32.Mat4) Uniform {
	value := make([]float32, 16)
	copy(value, m[:])
	return Uniform{Name: name, Value: value}
}
