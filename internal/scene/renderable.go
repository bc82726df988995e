package scene

import "viz3d/internal/graphics"

// Renderable defines the lifecycle of anything a Scene can draw.
// Init acquires GPU resources and must be idempotent; the scene calls it before
// every draw and only the first call does work.
type Renderable interface {
	Init(b graphics.Backend) error
	Render()
	UpdateUniforms(uniforms []graphics.Uniform)
	Dispose()
}
