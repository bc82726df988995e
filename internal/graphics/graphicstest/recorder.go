// Package graphicstest provides an in-memory graphics.Backend for tests.
package graphicstest

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"viz3d/internal/graphics"
)

// UniformWrite records one SetUniform call.
type UniformWrite struct {
	Program graphics.Program
	Name    string
	Value   []float32
}

// Recorder hands out sequential handles and records every call.
// Setting a Fail* field makes the matching operation return ErrRenderResource.
type Recorder struct {
	FailCompile bool
	FailUpload  bool
	FailBuild   bool

	Compiled  int
	Buffers   map[graphics.Buffer][]float32
	Arrays    []graphics.VertexArray
	Attribs   [][]string
	Draws     []graphics.VertexArray
	Uniforms  []UniformWrite
	Clears    []mgl32.Vec4
	Deleted   int
	nextID    uint32
	liveCount int
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{Buffers: make(map[graphics.Buffer][]float32)}
}

func (r *Recorder) next() uint32 {
	r.nextID++
	r.liveCount++
	return r.nextID
}

// Live returns the number of handles created and not yet deleted.
func (r *Recorder) Live() int {
	return r.liveCount
}

func (r *Recorder) CompileProgram(vertexSrc, fragmentSrc string) (graphics.Program, error) {
	if r.FailCompile {
		return 0, fmt.Errorf("%w: compile disabled", graphics.ErrRenderResource)
	}
	r.Compiled++
	return graphics.Program(r.next()), nil
}

func (r *Recorder) UploadBuffer(data []float32) (graphics.Buffer, error) {
	if r.FailUpload {
		return 0, fmt.Errorf("%w: upload disabled", graphics.ErrRenderResource)
	}
	b := graphics.Buffer(r.next())
	r.Buffers[b] = append([]float32(nil), data...)
	return b, nil
}

func (r *Recorder) BuildVertexArray(p graphics.Program, b graphics.Buffer, attributes ...string) (graphics.VertexArray, error) {
	if r.FailBuild {
		return graphics.VertexArray{}, fmt.Errorf("%w: vertex array disabled", graphics.ErrRenderResource)
	}
	data, ok := r.Buffers[b]
	if !ok || len(attributes) == 0 {
		return graphics.VertexArray{}, fmt.Errorf("%w: bad vertex array request", graphics.ErrRenderResource)
	}
	va := graphics.VertexArray{ID: r.next(), Count: int32(len(data) / (3 * len(attributes)))}
	r.Arrays = append(r.Arrays, va)
	r.Attribs = append(r.Attribs, attributes)
	return va, nil
}

func (r *Recorder) Draw(va graphics.VertexArray) {
	r.Draws = append(r.Draws, va)
}

func (r *Recorder) SetUniform(p graphics.Program, name string, value []float32) {
	r.Uniforms = append(r.Uniforms, UniformWrite{Program: p, Name: name, Value: append([]float32(nil), value...)})
}

func (r *Recorder) Clear(c mgl32.Vec4) {
	r.Clears = append(r.Clears, c)
}

func (r *Recorder) DeleteProgram(p graphics.Program) {
	if p != 0 {
		r.release()
	}
}

func (r *Recorder) DeleteBuffer(b graphics.Buffer) {
	if b != 0 {
		delete(r.Buffers, b)
		r.release()
	}
}

func (r *Recorder) DeleteVertexArray(va graphics.VertexArray) {
	if va.ID != 0 {
		r.release()
	}
}

func (r *Recorder) release() {
	r.Deleted++
	r.liveCount--
}

// UniformNames lists the names of every recorded uniform write, in order.
func (r *Recorder) UniformNames() []string {
	names := make([]string, len(r.Uniforms))
	for i, u := range r.Uniforms {
		names[i] = u.Name
	}
	return names
}

// Reset forgets recorded draws and uniform writes, keeping live handles.
func (r *Recorder) Reset() {
	r.Draws = nil
	r.Uniforms = nil
	r.Clears = nil
}

var _ graphics.Backend = (*Recorder)(nil)
