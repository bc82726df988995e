package app

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"viz3d/internal/behaviours"
	"viz3d/internal/input"
)

// maxElevation bounds |cos| between the view direction and the up vector so
// the look-at basis never degenerates at the poles
const maxElevation = 0.995

// Controls turns held input actions into camera moves. It runs as a behaviour
// every tick, including while the scheduled behaviours are paused.
type Controls struct {
	Input      *input.InputManager
	OrbitSpeed float32 // radians per tick while an orbit key is held
	DragSpeed  float32 // radians per pixel of cursor drag
	ZoomStep   float32 // fraction of the distance per tick or scroll notch
}

// NewControls returns controls with the default speeds.
func NewControls(im *input.InputManager) *Controls {
	return &Controls{Input: im, OrbitSpeed: 0.03, DragSpeed: 0.01, ZoomStep: 0.05}
}

func (c *Controls) Behave(p *behaviours.Params) {
	var yaw, pitch float32
	if c.Input.IsActive(input.ActionOrbitLeft) {
		yaw -= c.OrbitSpeed
	}
	if c.Input.IsActive(input.ActionOrbitRight) {
		yaw += c.OrbitSpeed
	}
	if c.Input.IsActive(input.ActionOrbitUp) {
		pitch += c.OrbitSpeed
	}
	if c.Input.IsActive(input.ActionOrbitDown) {
		pitch -= c.OrbitSpeed
	}
	if c.Input.IsActive(input.ActionDrag) {
		dx, dy := c.Input.CursorDelta()
		yaw -= float32(dx) * c.DragSpeed
		pitch += float32(dy) * c.DragSpeed
	}

	zoom := float32(1)
	if c.Input.IsActive(input.ActionZoomIn) {
		zoom *= 1 - c.ZoomStep
	}
	if c.Input.IsActive(input.ActionZoomOut) {
		zoom *= 1 + c.ZoomStep
	}
	if s := c.Input.Scroll(); s != 0 {
		zoom *= math32.Pow(1-c.ZoomStep, float32(s))
	}

	cam := p.Scene.Camera
	if yaw != 0 {
		cam.Orbit(yaw, cam.Up)
		p.Refresh = true
	}
	if pitch != 0 {
		prev := cam.Position
		right := cam.Position.Sub(cam.Target).Cross(cam.Up)
		cam.Orbit(pitch, right)
		if elevation(cam.Position.Sub(cam.Target), cam.Up) > maxElevation {
			cam.Position = prev
		} else {
			p.Refresh = true
		}
	}
	if zoom != 1 {
		cam.Zoom(zoom)
		p.Refresh = true
	}
}

func elevation(offset, up mgl32.Vec3) float32 {
	if offset.Len() == 0 || up.Len() == 0 {
		return 0
	}
	return math32.Abs(offset.Normalize().Dot(up.Normalize()))
}
