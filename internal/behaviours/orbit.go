package behaviours

import "github.com/go-gl/mathgl/mgl32"

// CameraOrbit turns the camera around its target by a fixed angle every tick.
type CameraOrbit struct {
	Step float32    // radians per tick
	Axis mgl32.Vec3 // zero means the camera's up vector
}

func (b *CameraOrbit) Behave(p *Params) {
	if b.Step == 0 {
		return
	}
	cam := p.Scene.Camera
	axis := b.Axis
	if axis.Len() == 0 {
		axis = cam.Up
	}
	cam.Orbit(b.Step, axis)
	p.Refresh = true
}
