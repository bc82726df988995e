package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestKeyEdgesAndHold(t *testing.T) {
	im := NewInputManager()

	im.HandleKeyEvent(glfw.KeyLeft, glfw.Press)
	assert.True(t, im.IsActive(ActionOrbitLeft))
	assert.True(t, im.JustPressed(ActionOrbitLeft))

	im.PostUpdate()
	im.HandleKeyEvent(glfw.KeyLeft, glfw.Repeat)
	assert.True(t, im.IsActive(ActionOrbitLeft))
	assert.False(t, im.JustPressed(ActionOrbitLeft), "repeat is not a new press")

	im.HandleKeyEvent(glfw.KeyLeft, glfw.Release)
	assert.False(t, im.IsActive(ActionOrbitLeft))
}

func TestAlternateBindings(t *testing.T) {
	im := NewInputManager()
	im.HandleKeyEvent(glfw.KeyQ, glfw.Press)
	assert.True(t, im.JustPressed(ActionQuit))

	im.HandleKeyEvent(glfw.KeyF12, glfw.Press)
	for a := Action(0); a < ActionCount; a++ {
		if a != ActionQuit {
			assert.False(t, im.IsActive(a))
		}
	}
	assert.False(t, im.IsActive(ActionCount))
}

func TestCursorAndScrollAccumulate(t *testing.T) {
	im := NewInputManager()
	im.HandleMouseButtonEvent(glfw.MouseButtonLeft, glfw.Press)
	assert.True(t, im.IsActive(ActionDrag))

	im.HandleCursorPos(10, 10)
	im.HandleCursorPos(15, 8)
	im.HandleCursorPos(20, 4)
	im.HandleScroll(1)
	im.HandleScroll(0.5)

	dx, dy := im.CursorDelta()
	assert.Equal(t, 10.0, dx)
	assert.Equal(t, -6.0, dy)
	assert.Equal(t, 1.5, im.Scroll())

	im.PostUpdate()
	dx, dy = im.CursorDelta()
	assert.Zero(t, dx)
	assert.Zero(t, dy)
	assert.Zero(t, im.Scroll())
	assert.True(t, im.IsActive(ActionDrag), "held buttons survive PostUpdate")
}
