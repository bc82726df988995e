package behaviours

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Tolerances used to decide that the light already sits at its target.
const (
	closeRelTol = 1e-5
	closeAbsTol = 1e-8
)

// LightToCamera keeps the light at the camera position plus a fixed offset so
// that whatever the camera looks at is lit.
type LightToCamera struct {
	Offset mgl32.Vec3
}

// NewLightToCamera returns a LightToCamera with the given offset.
func NewLightToCamera(offset mgl32.Vec3) *LightToCamera {
	return &LightToCamera{Offset: offset}
}

func (b *LightToCamera) Behave(p *Params) {
	target := p.Scene.CameraPosition().Add(b.Offset)
	if allClose(target, p.Scene.Light()) {
		return
	}
	p.Scene.SetLight(target)
	p.Refresh = true
}

// allClose reports whether |a-b| <= atol + rtol*|b| holds for every component.
func allClose(a, b mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		x, y := float64(a[i]), float64(b[i])
		if math.Abs(x-y) > closeAbsTol+closeRelTol*math.Abs(y) {
			return false
		}
	}
	return true
}
