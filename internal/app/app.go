// Package app runs the viewer window: it polls input, ticks the behaviours and
// redraws the scene when something changed.
package app

import (
	"log"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"viz3d/internal/behaviours"
	"viz3d/internal/graphics"
	"viz3d/internal/input"
	"viz3d/internal/profiling"
	"viz3d/internal/scene"
)

const slowFrame = 16 * time.Millisecond

type App struct {
	window       *glfw.Window
	inputManager *input.InputManager
	backend      *graphics.GLBackend
	scene        *scene.Scene

	controls   *behaviours.Scheduler
	behaviours *behaviours.Scheduler

	paused bool
	redraw bool

	fpsLimiter *FPSLimiter
}

// New wires sc and sched to window and caps the loop at fpsLimit frames per
// second (0 for uncapped). The GL context of window must be current.
func New(window *glfw.Window, sc *scene.Scene, sched *behaviours.Scheduler, fpsLimit int) *App {
	im := input.NewInputManager()
	im.Install(window)

	a := &App{
		window:       window,
		inputManager: im,
		backend:      graphics.NewGLBackend(),
		scene:        sc,
		controls:     behaviours.NewScheduler(NewControls(im)),
		behaviours:   sched,
		redraw:       true,
		fpsLimiter:   NewFPSLimiter(fpsLimit),
	}

	width, height := window.GetFramebufferSize()
	a.backend.Viewport(width, height)
	sc.SetViewport(width, height)

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		a.resize(width, height)
	})
	return a
}

// Run loops until the window is closed or a frame fails to render.
func (a *App) Run() error {
	for !a.window.ShouldClose() {
		if err := a.tick(); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) tick() error {
	profiling.ResetFrame()
	startTick := time.Now()

	glfw.PollEvents()

	if a.inputManager.JustPressed(input.ActionQuit) {
		a.window.SetShouldClose(true)
	}
	if a.inputManager.JustPressed(input.ActionPause) {
		a.paused = !a.paused
		log.Printf("behaviours paused: %v", a.paused)
	}

	if a.controls.Tick(a.scene) {
		a.redraw = true
	}
	if !a.paused && a.behaviours.Tick(a.scene) {
		a.redraw = true
	}

	if a.redraw {
		if err := a.render(); err != nil {
			return err
		}
	}

	// Check if frame took too long
	processingDuration := time.Since(startTick)
	if processingDuration > slowFrame {
		log.Printf("Slow frame: %v. Top tasks: %s", processingDuration, profiling.TopN(5))
	}

	a.inputManager.PostUpdate() // Clear "JustPressed" flags and cursor deltas

	a.fpsLimiter.Wait(a.paused)
	return nil
}

func (a *App) render() error {
	defer profiling.Track("scene.Render")()
	if err := a.scene.Render(a.backend); err != nil {
		return err
	}
	a.window.SwapBuffers()
	a.redraw = false
	return nil
}

// resize handles framebuffer size changes and repaints right away, since some
// platforms block the main loop while the window is being dragged.
func (a *App) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.backend.Viewport(width, height)
	a.scene.SetViewport(width, height)
	if err := a.render(); err != nil {
		log.Printf("repaint after resize: %v", err)
		a.redraw = true
	}
}

// Close releases the GPU resources of every renderable the scene has owned.
func (a *App) Close() {
	a.scene.Dispose()
}
