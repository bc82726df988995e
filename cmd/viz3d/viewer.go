package main

import (
	"context"
	"log"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"viz3d/internal/app"
	"viz3d/internal/behaviours"
	"viz3d/internal/config"
	"viz3d/internal/graphics/renderables/meshes"
	"viz3d/internal/meshing"
	"viz3d/internal/scene"
)

// populateFunc adds the initial renderables and the content behaviours.
type populateFunc func(sc *scene.Scene, sched *behaviours.Scheduler) error

// buildMeshes runs the builders on a worker pool sized to the machine.
func buildMeshes(ctx context.Context, builds []meshing.BuildFunc) ([]*meshes.Mesh, error) {
	pool := meshing.NewWorkerPool(min(runtime.NumCPU(), len(builds)), len(builds))
	defer pool.Shutdown()

	start := time.Now()
	ms, err := pool.BuildAll(ctx, builds)
	if err != nil {
		return nil, err
	}
	triangles := 0
	for _, m := range ms {
		triangles += m.Data().Triangles()
	}
	log.Printf("built %d meshes (%d triangles) in %v", len(ms), triangles, time.Since(start).Round(time.Millisecond))
	return ms, nil
}

func newScene(cfg config.Config) *scene.Scene {
	sc := scene.New(cfg.Window.Width, cfg.Window.Height)
	sc.Background = mgl32.Vec4(cfg.Window.Background)
	sc.Camera.Position = mgl32.Vec3(cfg.Camera.Position)
	sc.Camera.Target = mgl32.Vec3(cfg.Camera.Target)
	sc.Camera.Up = mgl32.Vec3(cfg.Camera.Up)
	sc.Camera.FOV = cfg.Camera.FOV
	sc.SetLight(mgl32.Vec3(cfg.Light.Position))
	return sc
}

// show opens the window and runs the viewer until it is closed. Content
// behaviours run first, then the camera orbit, then the light so that the
// light follows the camera within the same tick.
func show(cfg config.Config, populate populateFunc) error {
	sc := newScene(cfg)
	sched := behaviours.NewScheduler()
	if err := populate(sc, sched); err != nil {
		return err
	}
	if cfg.Camera.OrbitStep != 0 {
		sched.Register(&behaviours.CameraOrbit{Step: cfg.Camera.OrbitStep})
	}
	if cfg.Light.FollowCamera {
		sched.Register(behaviours.NewLightToCamera(mgl32.Vec3(cfg.Light.Offset)))
	}

	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	window, err := app.OpenWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer window.Destroy()

	a := app.New(window, sc, sched, cfg.Window.FrameLimit())
	defer a.Close()
	return a.Run()
}

func renderables(ms []*meshes.Mesh) []scene.Renderable {
	out := make([]scene.Renderable, len(ms))
	for i, m := range ms {
		out[i] = m
	}
	return out
}

// present puts the meshes on screen: a single mesh statically, several either
// accumulated one by one or cycled one at a time.
func present(ms []*meshes.Mesh, cycle bool, interval int, sc *scene.Scene, sched *behaviours.Scheduler) error {
	if len(ms) == 1 {
		sc.Add(ms[0])
		return nil
	}
	if cycle {
		groups := make([][]scene.Renderable, len(ms))
		for i, r := range renderables(ms) {
			groups[i] = []scene.Renderable{r}
		}
		b, err := behaviours.NewCycleThroughObjects(groups, interval)
		if err != nil {
			return err
		}
		sched.Register(b)
		return nil
	}
	b, err := behaviours.NewAddObjectsSequentially(renderables(ms), interval)
	if err != nil {
		return err
	}
	sched.Register(b)
	return nil
}
