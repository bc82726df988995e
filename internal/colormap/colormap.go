// Package colormap provides scalar-to-RGB gradients for height fields and
// parses user supplied colors.
package colormap

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Func maps a scalar to an RGB triple with channels in [0,1].
type Func func(v float32) mgl32.Vec3

type keypoint struct {
	col colorful.Color
	pos float64
}

// Gradient is a piecewise gradient over [0,1], blended in Lab space.
type Gradient []keypoint

// NewGradient builds a gradient from evenly spaced hex colors.
func NewGradient(hexes ...string) (Gradient, error) {
	if len(hexes) < 2 {
		return nil, fmt.Errorf("gradient needs at least 2 colors, got %d", len(hexes))
	}
	g := make(Gradient, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("gradient color %q: %w", h, err)
		}
		g[i] = keypoint{col: c, pos: float64(i) / float64(len(hexes)-1)}
	}
	return g, nil
}

func mustGradient(hexes ...string) Gradient {
	g, err := NewGradient(hexes...)
	if err != nil {
		panic(err)
	}
	return g
}

// At returns the color at t, clamping t into [0,1].
func (g Gradient) At(t float64) colorful.Color {
	if t <= g[0].pos {
		return g[0].col
	}
	last := g[len(g)-1]
	if t >= last.pos {
		return last.col
	}
	for i := 0; i < len(g)-1; i++ {
		a, b := g[i], g[i+1]
		if t >= a.pos && t <= b.pos {
			return a.col.BlendLab(b.col, (t-a.pos)/(b.pos-a.pos)).Clamped()
		}
	}
	return last.col
}

// Func exposes the gradient over [0,1].
func (g Gradient) Func() Func {
	return func(v float32) mgl32.Vec3 {
		return vec(g.At(float64(v)))
	}
}

var (
	Viridis  = mustGradient("#440154", "#482878", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725")
	Plasma   = mustGradient("#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786", "#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921")
	Coolwarm = mustGradient("#3b4cc0", "#7396f5", "#b0cbfc", "#dddddd", "#f6bfa6", "#e7745b", "#b40426")
	Gray     = mustGradient("#000000", "#ffffff")
)

var byName = map[string]Gradient{
	"viridis":  Viridis,
	"plasma":   Plasma,
	"coolwarm": Coolwarm,
	"gray":     Gray,
}

// Names lists the built-in gradients.
func Names() []string {
	names := make([]string, 0, len(byName))
	for n := range byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ByName looks up a built-in gradient, case-insensitively.
func ByName(name string) (Gradient, error) {
	g, ok := byName[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown colormap %q (want one of %s)", name, strings.Join(Names(), ", "))
	}
	return g, nil
}

// Rescaled maps [lo,hi] onto the [0,1] domain of f.
func Rescaled(f Func, lo, hi float32) Func {
	span := hi - lo
	return func(v float32) mgl32.Vec3 {
		if span == 0 {
			return f(0)
		}
		return f((v - lo) / span)
	}
}

// ParseColor accepts "#rgb", "#rrggbb" or an SVG color name such as "steelblue".
func ParseColor(s string) (mgl32.Vec3, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		if len(s) == 4 {
			s = "#" + string([]byte{s[1], s[1], s[2], s[2], s[3], s[3]})
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return mgl32.Vec3{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		return vec(c), nil
	}
	named, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return mgl32.Vec3{}, fmt.Errorf("parse color %q: unknown color name", s)
	}
	return fromRGBA(named), nil
}

func vec(c colorful.Color) mgl32.Vec3 {
	return mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)}
}

func fromRGBA(c color.RGBA) mgl32.Vec3 {
	return mgl32.Vec3{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}
