package profiling

import (
	"fmt"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"
)

// Per-frame CPU timings for behaviours, mesh builds and drawing.

var (
	mu     sync.Mutex
	totals = make(map[string]time.Duration)
)

// Track returns a stop function that records the elapsed time under name.
// Usage: defer profiling.Track("scene.Render")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		Record(name, time.Since(start))
	}
}

// Record adds d to the total for name.
func Record(name string, d time.Duration) {
	mu.Lock()
	totals[name] += d
	mu.Unlock()
}

// ResetFrame clears the totals. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(totals)
	mu.Unlock()
}

// Snapshot returns a copy of the current totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	return maps.Clone(totals)
}

// TopN formats the n slowest entries, e.g. "scene.Render:4.2ms, behaviours.LightToCamera:0.1ms".
func TopN(n int) string {
	ss := Snapshot()
	names := make([]string, 0, len(ss))
	for k := range ss {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool {
		if ss[names[i]] == ss[names[j]] {
			return names[i] < names[j]
		}
		return ss[names[i]] > ss[names[j]]
	})
	if n > len(names) {
		n = len(names)
	}
	parts := make([]string, 0, n)
	for _, name := range names[:n] {
		parts = append(parts, name+":"+formatMs(ss[name]))
	}
	return strings.Join(parts, ", ")
}

func formatMs(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000.0
	s := fmt.Sprintf("%.1f", ms)
	return strings.TrimSuffix(s, ".0") + "ms"
}
