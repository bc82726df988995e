package graphics

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// GLBackend implements Backend on an OpenGL 4.1 core context.
// gl.Init must have been called on the current thread.
type GLBackend struct {
	// floats stored in each buffer, needed to size vertex arrays
	sizes map[Buffer]int
}

// NewGLBackend configures the fixed pipeline state used by the meshes.
func NewGLBackend() *GLBackend {
	gl.Enable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	return &GLBackend{sizes: make(map[Buffer]int)}
}

func (g *GLBackend) CompileProgram(vertexSrc, fragmentSrc string) (Program, error) {
	id, err := buildProgram(glDriver{}, vertexSrc, fragmentSrc)
	if err != nil {
		return 0, err
	}
	return Program(id), nil
}

func (g *GLBackend) UploadBuffer(data []float32) (Buffer, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("%w: empty vertex buffer", ErrRenderResource)
	}
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	if vbo == 0 {
		return 0, fmt.Errorf("%w: glGenBuffers returned 0", ErrRenderResource)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	if err := gl.GetError(); err != gl.NO_ERROR {
		gl.DeleteBuffers(1, &vbo)
		return 0, fmt.Errorf("%w: buffer upload failed: 0x%x", ErrRenderResource, err)
	}

	b := Buffer(vbo)
	g.sizes[b] = len(data)
	return b, nil
}

func (g *GLBackend) BuildVertexArray(p Program, b Buffer, attributes ...string) (VertexArray, error) {
	size, ok := g.sizes[b]
	if !ok {
		return VertexArray{}, fmt.Errorf("%w: unknown buffer %d", ErrRenderResource, b)
	}
	if len(attributes) == 0 {
		return VertexArray{}, fmt.Errorf("%w: no vertex attributes", ErrRenderResource)
	}
	rowFloats := 3 * len(attributes)
	stride := int32(rowFloats * 4)

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	if vao == 0 {
		return VertexArray{}, fmt.Errorf("%w: glGenVertexArrays returned 0", ErrRenderResource)
	}
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b))

	for i, name := range attributes {
		loc := gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00"))
		if loc < 0 {
			gl.BindVertexArray(0)
			gl.DeleteVertexArrays(1, &vao)
			return VertexArray{}, fmt.Errorf("%w: attribute %q not found in program", ErrRenderResource, name)
		}
		gl.EnableVertexAttribArray(uint32(loc))
		gl.VertexAttribPointerWithOffset(uint32(loc), 3, gl.FLOAT, false, stride, uintptr(i*3*4))
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return VertexArray{ID: vao, Count: int32(size / rowFloats)}, nil
}

func (g *GLBackend) Draw(va VertexArray) {
	gl.BindVertexArray(va.ID)
	gl.DrawArrays(gl.TRIANGLES, 0, va.Count)
	gl.BindVertexArray(0)
}

func (g *GLBackend) SetUniform(p Program, name string, value []float32) {
	gl.UseProgram(uint32(p))
	loc := gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
	if loc < 0 || len(value) == 0 {
		return
	}
	switch len(value) {
	case 1:
		gl.Uniform1fv(loc, 1, &value[0])
	case 3:
		gl.Uniform3fv(loc, 1, &value[0])
	case 4:
		gl.Uniform4fv(loc, 1, &value[0])
	case 16:
		gl.UniformMatrix4fv(loc, 1, false, &value[0])
	}
}

func (g *GLBackend) Clear(c mgl32.Vec4) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (g *GLBackend) DeleteProgram(p Program) {
	if p != 0 {
		gl.DeleteProgram(uint32(p))
	}
}

func (g *GLBackend) DeleteBuffer(b Buffer) {
	if b == 0 {
		return
	}
	id := uint32(b)
	gl.DeleteBuffers(1, &id)
	delete(g.sizes, b)
}

func (g *GLBackend) DeleteVertexArray(va VertexArray) {
	if va.ID != 0 {
		gl.DeleteVertexArrays(1, &va.ID)
	}
}

// Viewport resizes the GL viewport to the framebuffer size.
func (g *GLBackend) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}
