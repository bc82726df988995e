package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"viz3d/internal/config"
)

type configLoader func() (config.Config, error)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "viz3d",
		Short:        "Interactive 3D viewer for meshes and surfaces",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "TOML settings `file`")

	load := func() (config.Config, error) {
		if configPath == "" {
			return config.Default(), nil
		}
		return config.Load(configPath)
	}

	root.AddCommand(newMeshCmd(load), newSurfaceCmd(load), newConfigCmd(load))
	return root
}

func newConfigCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective settings as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			out, err := config.Encode(cfg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), string(out))
			return err
		},
	}
}
