package behaviours

import (
	"fmt"

	"viz3d/internal/scene"
)

// AddObjectsSequentially adds one object to the scene every interval ticks.
// Once every object is shown, the next trigger clears them all and starts over
// from the first one.
type AddObjectsSequentially struct {
	objects  []scene.Renderable
	interval int
	ticks    int
	index    int
}

// NewAddObjectsSequentially rejects an empty object list and a negative interval.
// An interval of 0 adds an object on every tick.
func NewAddObjectsSequentially(objects []scene.Renderable, interval int) (*AddObjectsSequentially, error) {
	if len(objects) == 0 {
		return nil, fmt.Errorf("%w: no objects to add", ErrInvalidConfig)
	}
	if err := checkInterval(interval); err != nil {
		return nil, err
	}
	return &AddObjectsSequentially{
		objects:  objects,
		interval: interval,
		// start saturated so that the first tick clears and adds objects[0]
		ticks: interval,
		index: len(objects),
	}, nil
}

func (b *AddObjectsSequentially) Behave(p *Params) {
	b.ticks++
	if b.ticks <= b.interval {
		return
	}
	b.ticks = 0
	if b.index >= len(b.objects) {
		for _, o := range b.objects {
			p.Scene.Remove(o)
		}
		b.index = 0
	}
	p.Scene.Add(b.objects[b.index])
	b.index++
	p.Refresh = true
}

// CycleThroughObjects shows one group of objects at a time, swapping to the
// next group every interval ticks and wrapping around at the end.
type CycleThroughObjects struct {
	groups   [][]scene.Renderable
	interval int
	ticks    int
	current  int // -1 until the first group is shown
}

// NewCycleThroughObjects rejects an empty group list and a negative interval.
// Empty groups inside the list are allowed and show nothing.
func NewCycleThroughObjects(groups [][]scene.Renderable, interval int) (*CycleThroughObjects, error) {
	if len(groups) == 0 {
		return nil, fmt.Errorf("%w: no object groups to cycle", ErrInvalidConfig)
	}
	if err := checkInterval(interval); err != nil {
		return nil, err
	}
	return &CycleThroughObjects{
		groups:   groups,
		interval: interval,
		ticks:    interval,
		current:  -1,
	}, nil
}

// Current returns the index of the group on screen, or -1 before the first swap.
func (b *CycleThroughObjects) Current() int {
	return b.current
}

func (b *CycleThroughObjects) Behave(p *Params) {
	b.ticks++
	if b.ticks <= b.interval {
		return
	}
	b.ticks = 0
	if b.current >= 0 {
		for _, o := range b.groups[b.current] {
			p.Scene.Remove(o)
		}
	}
	b.current = (b.current + 1) % len(b.groups)
	for _, o := range b.groups[b.current] {
		p.Scene.Add(o)
	}
	p.Refresh = true
}
