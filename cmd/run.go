/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dronet-sim/dronet/internal/config"
	"github.com/dronet-sim/dronet/internal/sim"
)

var (
	runConfigPath string
	runSteps      int
	runSeed       int64
	runRouting    string
	runReportPath string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if runConfigPath != "" {
			loaded, err := config.Load(runConfigPath)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		if cmd.Flags().Changed("steps") {
			cfg.Steps = runSteps
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed = runSeed
		}
		if cmd.Flags().Changed("routing") {
			cfg.Routing = runRouting
		}
		if cmd.Flags().Changed("report") {
			cfg.ReportPath = runReportPath
		}

		runner, err := sim.New(cfg)
		if err != nil {
			return err
		}
		if err := runner.Run(); err != nil {
			return err
		}

		report := runner.Metrics().Report()
		log.WithFields(log.Fields{
			"events_generated": report.GeneratedEvents,
			"packets_created":  report.CreatedPackets,
			"delivered":        report.DeliveredPackets,
			"missed":           report.MissedEvents,
		}).Info("simulation complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "path to a JSON config file")
	runCmd.Flags().IntVar(&runSteps, "steps", 3000, "number of simulation steps")
	runCmd.Flags().Int64Var(&runSeed, "seed", 1, "random seed")
	runCmd.Flags().StringVar(&runRouting, "routing", "GEO", "routing strategy (GEO, RND, GEOS, QL)")
	runCmd.Flags().StringVar(&runReportPath, "report", "", "write the JSON metrics report to this path")
}
