// Package scene holds the camera, the light and the ordered set of renderables
// that the render loop draws each frame.
package scene

import (
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"viz3d/internal/graphics"
)

// Scene is not safe for concurrent use; it belongs to the render loop.
type Scene struct {
	Camera     *graphics.Camera
	Background mgl32.Vec4

	light   mgl32.Vec3
	objects []Renderable
	// every renderable ever added, released by Dispose
	owned []Renderable
}

// New creates a scene with the default camera and light.
func New(width, height int) *Scene {
	return &Scene{
		Camera:     graphics.NewCamera(width, height),
		Background: mgl32.Vec4{1, 1, 1, 1},
		light:      mgl32.Vec3{-0.5, -0.8, -2},
	}
}

func (s *Scene) CameraPosition() mgl32.Vec3 {
	return s.Camera.Position
}

func (s *Scene) SetCameraPosition(p mgl32.Vec3) {
	s.Camera.Position = p
}

func (s *Scene) Light() mgl32.Vec3 {
	return s.light
}

func (s *Scene) SetLight(l mgl32.Vec3) {
	s.light = l
}

// Add appends r unless it is already in the scene.
func (s *Scene) Add(r Renderable) {
	if s.Contains(r) {
		return
	}
	s.objects = append(s.objects, r)
	if !slices.Contains(s.owned, r) {
		s.owned = append(s.owned, r)
	}
}

// Remove takes r out of the scene. Removing an absent renderable is a no-op.
// GPU resources are kept so that r can be added again cheaply.
func (s *Scene) Remove(r Renderable) {
	if i := slices.Index(s.objects, r); i >= 0 {
		s.objects = slices.Delete(s.objects, i, i+1)
	}
}

func (s *Scene) Contains(r Renderable) bool {
	return slices.Contains(s.objects, r)
}

// Objects returns the renderables in draw order.
func (s *Scene) Objects() []Renderable {
	return slices.Clone(s.objects)
}

func (s *Scene) Len() int {
	return len(s.objects)
}

// SetViewport updates the camera aspect ratio.
func (s *Scene) SetViewport(width, height int) {
	s.Camera.SetViewport(width, height)
}

// Uniforms returns the per-frame shader inputs: the light and the mvp matrix.
func (s *Scene) Uniforms() []graphics.Uniform {
	return []graphics.Uniform{
		graphics.Vec3Uniform(graphics.UniformLight, s.light),
		graphics.Mat4Uniform(graphics.UniformMVP, s.Camera.MVP()),
	}
}

// Render clears the frame and draws every renderable in insertion order,
// initializing renderables on first use. An Init failure aborts the frame.
func (s *Scene) Render(b graphics.Backend) error {
	b.Clear(s.Background)
	uniforms := s.Uniforms()
	for i, r := range s.objects {
		if err := r.Init(b); err != nil {
			return fmt.Errorf("init renderable %d: %w", i, err)
		}
		r.UpdateUniforms(uniforms)
		r.Render()
	}
	return nil
}

// Dispose releases every renderable ever added, in reverse order.
func (s *Scene) Dispose() {
	for i := len(s.owned) - 1; i >= 0; i-- {
		s.owned[i].Dispose()
	}
	s.owned = nil
	s.objects = nil
}
