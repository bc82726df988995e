package main

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"viz3d/internal/behaviours"
	"viz3d/internal/colormap"
	"viz3d/internal/geometry"
	"viz3d/internal/graphics/renderables/meshes"
	"viz3d/internal/meshing"
	"viz3d/internal/scene"
)

// surfaceFn is a height field z = f(x, y) sampled over [-extent, extent]².
type surfaceFn struct {
	f      func(x, y float64) float64
	extent float64
}

var surfaces = map[string]surfaceFn{
	"ripple": {
		f: func(x, y float64) float64 {
			r := math.Hypot(x, y)
			return math.Sin(3*r) * math.Exp(-0.2*r)
		},
		extent: 3 * math.Pi / 2,
	},
	"saddle": {
		f:      func(x, y float64) float64 { return x*x - y*y },
		extent: 1,
	},
	"peaks": {
		f: func(x, y float64) float64 {
			return 3*(1-x)*(1-x)*math.Exp(-x*x-(y+1)*(y+1)) -
				10*(x/5-x*x*x-math.Pow(y, 5))*math.Exp(-x*x-y*y) -
				math.Exp(-(x+1)*(x+1)-y*y)/3
		},
		extent: 3,
	},
}

func surfaceNames() []string {
	names := make([]string, 0, len(surfaces))
	for n := range surfaces {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// sampleSurface evaluates fn on a size×size grid.
func sampleSurface(fn surfaceFn, size int) (X, Y, Z [][]float64) {
	axis := geometry.Linspace(-fn.extent, fn.extent, size)
	X, Y = geometry.Meshgrid(axis, axis)
	Z = make([][]float64, len(X))
	for i := range X {
		Z[i] = make([]float64, len(X[i]))
		for j := range X[i] {
			Z[i][j] = fn.f(X[i][j], Y[i][j])
		}
	}
	return X, Y, Z
}

func newSurfaceCmd(load configLoader) *cobra.Command {
	var (
		fns      []string
		size     int
		cmapName string
		interval int
	)

	cmd := &cobra.Command{
		Use:   "surface",
		Short: "Show a sampled height field",
		Long: "Show z = f(x, y) for a built-in function. Several --fn values are shown\n" +
			"one at a time, switching every --interval ticks.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("interval") {
				interval = cfg.Behaviour.Interval
			}
			if len(fns) == 0 {
				return fmt.Errorf("--fn needs at least one function")
			}
			if size < 2 {
				return fmt.Errorf("--size must be at least 2, got %d", size)
			}
			gradient, err := colormap.ByName(cmapName)
			if err != nil {
				return err
			}
			// FromGrid hands the colormap z values normalized into [-1,1]
			cmap := geometry.Colormap(colormap.Rescaled(gradient.Func(), -1, 1))

			builds := make([]meshing.BuildFunc, 0, len(fns))
			for _, name := range fns {
				fn, ok := surfaces[strings.ToLower(name)]
				if !ok {
					return fmt.Errorf("unknown function %q (want one of %s)", name, strings.Join(surfaceNames(), ", "))
				}
				builds = append(builds, func() (*meshes.Mesh, error) {
					X, Y, Z := sampleSurface(fn, size)
					return meshes.FromXYZ(X, Y, Z, cmap)
				})
			}
			ms, err := buildMeshes(cmd.Context(), builds)
			if err != nil {
				return err
			}

			return show(cfg, func(sc *scene.Scene, sched *behaviours.Scheduler) error {
				return present(ms, true, interval, sc, sched)
			})
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&fns, "fn", []string{"peaks"}, "`function` to plot, one of "+strings.Join(surfaceNames(), ", "))
	f.IntVar(&size, "size", 100, "grid samples per axis")
	f.StringVar(&cmapName, "colormap", "viridis", "colormap, one of "+strings.Join(colormap.Names(), ", "))
	f.IntVar(&interval, "interval", behaviours.DefaultInterval, "ticks between functions when several are given")
	return cmd
}
