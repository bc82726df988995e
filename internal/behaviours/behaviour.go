// Package behaviours implements per-tick callbacks that mutate a scene.
//
// The render loop owns a Scheduler and calls Tick once per frame. Each
// registered Behaviour runs synchronously in registration order and may add or
// remove renderables, move the camera or the light, and request a redraw by
// setting Params.Refresh.
package behaviours

import (
	"errors"
	"fmt"
	"reflect"

	"viz3d/internal/profiling"
	"viz3d/internal/scene"
)

// ErrInvalidConfig is returned when a behaviour is constructed with unusable arguments.
var ErrInvalidConfig = errors.New("invalid behaviour config")

// DefaultInterval is the number of ticks between scheduled scene changes.
const DefaultInterval = 30

// Params is the per-tick bundle handed to every behaviour.
type Params struct {
	Scene *scene.Scene
	// Refresh requests a redraw. Behaviours only ever set it.
	Refresh bool
}

// Behaviour is a callback run once per tick.
type Behaviour interface {
	Behave(p *Params)
}

// Scheduler runs behaviours in registration order.
type Scheduler struct {
	behaviours []Behaviour
	names      []string
}

// NewScheduler registers bs in order.
func NewScheduler(bs ...Behaviour) *Scheduler {
	s := &Scheduler{}
	for _, b := range bs {
		s.Register(b)
	}
	return s
}

// Register appends b to the run order.
func (s *Scheduler) Register(b Behaviour) {
	s.behaviours = append(s.behaviours, b)
	s.names = append(s.names, "behaviours."+typeName(b))
}

// Len returns the number of registered behaviours.
func (s *Scheduler) Len() int {
	return len(s.behaviours)
}

// Tick runs every behaviour once against sc and reports whether any of them
// asked for a redraw.
func (s *Scheduler) Tick(sc *scene.Scene) bool {
	p := &Params{Scene: sc}
	for i, b := range s.behaviours {
		stop := profiling.Track(s.names[i])
		b.Behave(p)
		stop()
	}
	return p.Refresh
}

func typeName(b Behaviour) string {
	t := reflect.TypeOf(b)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.Name()
}

func checkInterval(interval int) error {
	if interval < 0 {
		return fmt.Errorf("%w: interval must not be negative, got %d", ErrInvalidConfig, interval)
	}
	return nil
}
