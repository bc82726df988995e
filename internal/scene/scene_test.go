package scene

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viz3d/internal/graphics"
	"viz3d/internal/graphics/graphicstest"
)

type fakeRenderable struct {
	name     string
	inits    int
	renders  int
	disposed int
	uniforms []graphics.Uniform
	initErr  error
}

func (f *fakeRenderable) Init(b graphics.Backend) error {
	if f.initErr != nil {
		return f.initErr
	}
	f.inits++
	return nil
}

func (f *fakeRenderable) Render() { f.renders++ }
func (f *fakeRenderable) UpdateUniforms(u []graphics.Uniform) { f.uniforms = u }
func (f *fakeRenderable) Dispose() { f.disposed++ }

func TestAddIsIdempotentAndRemoveTolerant(t *testing.T) {
	s := New(800, 600)
	a, b := &fakeRenderable{name: "a"}, &fakeRenderable{name: "b"}

	s.Add(a)
	s.Add(b)
	s.Add(a)
	assert.Equal(t, []Renderable{a, b}, s.Objects())

	s.Remove(a)
	s.Remove(a)
	assert.Equal(t, []Renderable{b}, s.Objects())
	assert.False(t, s.Contains(a))
	assert.Equal(t, 1, s.Len())
}

func TestRenderSendsLightAndMVP(t *testing.T) {
	rec := graphicstest.NewRecorder()
	s := New(800, 600)
	s.SetLight(mgl32.Vec3{1, 2, 3})
	a := &fakeRenderable{}
	s.Add(a)

	require.NoError(t, s.Render(rec))
	require.NoError(t, s.Render(rec))

	assert.Equal(t, 2, a.renders)
	require.Len(t, a.uniforms, 2)
	assert.Equal(t, "light", a.uniforms[0].Name)
	assert.Equal(t, []float32{1, 2, 3}, a.uniforms[0].Value)
	assert.Equal(t, "mvp", a.uniforms[1].Name)
	assert.Len(t, rec.Clears, 2)
}

func TestRenderPropagatesInitError(t *testing.T) {
	rec := graphicstest.NewRecorder()
	s := New(800, 600)
	boom := errors.New("boom")
	ok, bad := &fakeRenderable{}, &fakeRenderable{initErr: boom}
	s.Add(ok)
	s.Add(bad)

	err := s.Render(rec)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, ok.renders)
	assert.Equal(t, 0, bad.renders)
}

func TestDisposeReleasesRemovedObjectsToo(t *testing.T) {
	s := New(800, 600)
	a, b := &fakeRenderable{}, &fakeRenderable{}
	s.Add(a)
	s.Add(b)
	s.Remove(a)

	s.Dispose()
	assert.Equal(t, 1, a.disposed)
	assert.Equal(t, 1, b.disposed)
	assert.Equal(t, 0, s.Len())
}

func TestCameraAccessors(t *testing.T) {
	s := New(800, 600)
	assert.Equal(t, mgl32.Vec3{-2, -2, -2}, s.CameraPosition())
	s.SetCameraPosition(mgl32.Vec3{0, 0, 5})
	assert.Equal(t, mgl32.Vec3{0, 0, 5}, s.Camera.Position)
	assert.Equal(t, mgl32.Vec3{-0.5, -0.8, -2}, s.Light())
}
