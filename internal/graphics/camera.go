package graphics

import "github.com/go-gl/mathgl/mgl32"

// Camera holds the view and projection parameters of a scene
type Camera struct {
	Position    mgl32.Vec3
	Target      mgl32.Vec3
	Up          mgl32.Vec3
	AspectRatio float32
	FOV         float32 // degrees
	NearPlane   float32
	FarPlane    float32
}

func NewCamera(width, height int) *Camera {
	c := &Camera{
		Position:  mgl32.Vec3{-2, -2, -2},
		Up:        mgl32.Vec3{0, 0, 1},
		FOV:       45.0,
		NearPlane: 0.1,
		FarPlane:  1000.0,
	}
	c.SetViewport(width, height)
	return c
}

// SetViewport updates the aspect ratio; a zero height (minimized window) is ignored
func (c *Camera) SetViewport(width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// MVP returns projection * view; meshes are drawn in world space
func (c *Camera) MVP() mgl32.Mat4 {
	return c.GetProjectionMatrix().Mul4(c.GetViewMatrix())
}

// Orbit rotates the camera position around the target about axis by angle radians
func (c *Camera) Orbit(angle float32, axis mgl32.Vec3) {
	if angle == 0 || axis.Len() == 0 {
		return
	}
	q := mgl32.QuatRotate(angle, axis.Normalize())
	c.Position = c.Target.Add(q.Rotate(c.Position.Sub(c.Target)))
}

// Zoom scales the distance between camera and target
func (c *Camera) Zoom(factor float32) {
	if factor <= 0 {
		return
	}
	c.Position = c.Target.Add(c.Position.Sub(c.Target).Mul(factor))
}
