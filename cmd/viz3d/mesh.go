package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/xlab/closer"

	"viz3d/internal/app"
	"viz3d/internal/behaviours"
	"viz3d/internal/colormap"
	"viz3d/internal/geometry"
	"viz3d/internal/graphics/renderables/meshes"
	"viz3d/internal/meshing"
	"viz3d/internal/meshio"
	"viz3d/internal/scene"
)

func newMeshCmd(load configLoader) *cobra.Command {
	var (
		color         string
		vertexNormals bool
		simplify      float64
		interval      int
		cycle         bool
		watch         bool
	)

	cmd := &cobra.Command{
		Use:   "mesh FILE...",
		Short: "Show mesh files (" + strings.Join(meshio.Formats, ", ") + ")",
		Long: "Show one or more mesh files. A single file is shown as is; several files are\n" +
			"added one after the other, or shown one at a time with --cycle.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("interval") {
				interval = cfg.Behaviour.Interval
			}

			opts := meshes.Options{UseVertexNormals: vertexNormals, Simplify: simplify}
			if color != "" {
				c, err := colormap.ParseColor(color)
				if err != nil {
					return err
				}
				opts.Color = &c
			}

			builds := make([]meshing.BuildFunc, len(args))
			for i, path := range args {
				builds[i] = func() (*meshes.Mesh, error) { return meshes.FromFile(path, opts) }
			}
			ms, err := buildMeshes(cmd.Context(), builds)
			if err != nil {
				return err
			}

			var reloader *app.Reloader
			if watch {
				targets := make(map[string]*meshes.Mesh, len(args))
				for i, path := range args {
					targets[path] = ms[i]
				}
				reloader, err = app.NewReloader(targets, func(path string) (*geometry.Mesh, error) {
					m, err := meshes.FromFile(path, opts)
					if err != nil {
						return nil, err
					}
					return m.Data(), nil
				})
				if err != nil {
					return err
				}
				// the watcher holds no GL state, so it can be released from the signal handler
				closer.Bind(func() { reloader.Close() })
				defer reloader.Close()
			}

			return show(cfg, func(sc *scene.Scene, sched *behaviours.Scheduler) error {
				if err := present(ms, cycle, interval, sc, sched); err != nil {
					return err
				}
				if reloader != nil {
					sched.Register(reloader)
				}
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&color, "color", "", "paint every mesh with one `color` (#rrggbb or a name)")
	f.BoolVar(&vertexNormals, "vertex-normals", false, "shade with per-vertex normals instead of face normals")
	f.Float64Var(&simplify, "simplify", 0, "keep about this `fraction` of the triangles (0 keeps all)")
	f.IntVar(&interval, "interval", behaviours.DefaultInterval, "ticks between scene changes")
	f.BoolVar(&cycle, "cycle", false, "show the files one at a time instead of accumulating them")
	f.BoolVar(&watch, "watch", false, "reload files when they change on disk")
	return cmd
}
