/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/gopxl/pixel/v2/backends/opengl"
	"github.com/spf13/cobra"

	"github.com/dronet-sim/dronet/internal/config"
	"github.com/dronet-sim/dronet/internal/renderer"
	"github.com/dronet-sim/dronet/internal/sim"
)

var renderConfigPath string

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a simulation",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if renderConfigPath != "" {
			loaded, err := config.Load(renderConfigPath)
			if err != nil {
				return err
			}
			cfg = loaded
		}

		runner, err := sim.New(cfg)
		if err != nil {
			return err
		}

		opengl.Run(func() { renderer.Run(runner, cfg.Width, cfg.Height) })
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderConfigPath, "config", "c", "", "path to a JSON config file")
}
