// Package meshes implements the renderable triangle mesh.
package meshes

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"viz3d/internal/geometry"
	"viz3d/internal/graphics"
	"viz3d/internal/meshio"
	"viz3d/internal/profiling"
)

// Mesh draws flat vertex/normal/color arrays with the fixed lighting shaders.
type Mesh struct {
	data *geometry.Mesh

	backend graphics.Backend
	program graphics.Program
	vbo     graphics.Buffer
	vao     graphics.VertexArray
	ready   bool
}

// New wraps already built geometry. GPU resources are created by Init.
func New(data *geometry.Mesh) *Mesh {
	return &Mesh{data: data}
}

// NewFromArrays validates the three parallel arrays and wraps them.
func NewFromArrays(vertices, normals, colors []mgl32.Vec3) (*Mesh, error) {
	data, err := geometry.NewMesh(vertices, normals, colors)
	if err != nil {
		return nil, err
	}
	return New(data), nil
}

// Options controls FromFile.
type Options struct {
	// Color overrides the file's vertex colors when non-nil.
	Color            *mgl32.Vec3
	UseVertexNormals bool
	// Simplify keeps roughly this fraction of the triangles; 0 or 1 disables it.
	Simplify float64
}

// FromFile loads a mesh file and flattens it for drawing.
func FromFile(path string, opts Options) (*Mesh, error) {
	defer profiling.Track("meshes.FromFile")()

	raw, err := meshio.Load(path)
	if err != nil {
		return nil, err
	}
	if opts.Simplify != 0 {
		if raw, err = meshio.Simplify(raw, opts.Simplify); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	data, err := geometry.FromMesh(raw, geometry.MeshOptions{
		Color:            opts.Color,
		UseVertexNormals: opts.UseVertexNormals,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return New(data), nil
}

// FromXYZ triangulates a height field; see geometry.FromGrid.
func FromXYZ(X, Y, Z [][]float64, cmap geometry.Colormap) (*Mesh, error) {
	defer profiling.Track("meshes.FromXYZ")()

	data, err := geometry.FromGrid(X, Y, Z, cmap)
	if err != nil {
		return nil, err
	}
	return New(data), nil
}

// Data returns the CPU-side geometry.
func (m *Mesh) Data() *geometry.Mesh {
	return m.data
}

// Init compiles the shaders, uploads the interleaved geometry and builds the
// vertex array. Calls after the first successful one do nothing. On failure every
// partially created resource is released and the error is returned.
func (m *Mesh) Init(b graphics.Backend) error {
	if m.ready {
		return nil
	}
	if m.data == nil {
		return fmt.Errorf("%w: mesh has no geometry", graphics.ErrRenderResource)
	}

	program, err := b.CompileProgram(graphics.MeshVertexShader, graphics.MeshFragmentShader)
	if err != nil {
		return err
	}
	vbo, err := b.UploadBuffer(m.data.Interleaved())
	if err != nil {
		b.DeleteProgram(program)
		return err
	}
	vao, err := b.BuildVertexArray(program, vbo,
		graphics.AttribVertex, graphics.AttribNormal, graphics.AttribColor)
	if err != nil {
		b.DeleteBuffer(vbo)
		b.DeleteProgram(program)
		return err
	}

	m.backend = b
	m.program = program
	m.vbo = vbo
	m.vao = vao
	m.ready = true
	return nil
}

// Initialized reports whether Init has succeeded.
func (m *Mesh) Initialized() bool {
	return m.ready
}

// Render draws the mesh. It does nothing before Init.
func (m *Mesh) Render() {
	if !m.ready {
		return
	}
	m.backend.Draw(m.vao)
}

// UpdateUniforms forwards the light and mvp uniforms to the program; any other
// name is ignored.
func (m *Mesh) UpdateUniforms(uniforms []graphics.Uniform) {
	if !m.ready {
		return
	}
	for _, u := range uniforms {
		switch u.Name {
		case graphics.UniformLight, graphics.UniformMVP:
			m.backend.SetUniform(m.program, u.Name, u.Value)
		}
	}
}

// Dispose releases the GPU resources. The mesh may be initialized again afterwards.
func (m *Mesh) Dispose() {
	if !m.ready {
		return
	}
	m.backend.DeleteVertexArray(m.vao)
	m.backend.DeleteBuffer(m.vbo)
	m.backend.DeleteProgram(m.program)
	m.backend = nil
	m.ready = false
}

// Replace swaps the geometry in place. GPU resources are released and rebuilt
// by the next Init, so the mesh keeps its identity in scenes and behaviours.
func (m *Mesh) Replace(data *geometry.Mesh) {
	m.Dispose()
	m.data = data
}
