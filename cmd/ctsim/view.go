package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ctsim/internal/config"
	"ctsim/internal/jobsim"
	"ctsim/internal/logging"
	"ctsim/internal/store"
	"ctsim/internal/tui"
)

var (
	viewJobPath string
	viewRuns    string
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Browse simulation results interactively",
	Long:  "view simulates a job, or loads recorded runs, and opens them in a terminal viewer.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if viewRuns != "" {
			var recs collector
			if _, err := store.ReplayFile(viewRuns, &recs); err != nil {
				return err
			}
			if len(recs) == 0 {
				return fmt.Errorf("%s holds no runs", viewRuns)
			}
			return tui.Show(recs...)
		}
		if viewJobPath == "" {
			return fmt.Errorf("either --job or --runs is required")
		}
		cfg, err := config.Load(simConfigPath, simSchemaPath)
		if err != nil {
			return err
		}
		job, err := config.LoadJob(viewJobPath, simSchemaPath)
		if err != nil {
			return err
		}
		res := jobsim.NewSimulator(cfg, logging.FromContext(cmd.Context())).Simulate(job)
		return tui.Show(store.NewRecord(job, res, time.Now()))
	},
}

// collector buffers records in memory.
type collector []store.Record

func (c *collector) Write(rec store.Record) error {
	*c = append(*c, rec)
	return nil
}

func init() {
	viewCmd.Flags().StringVar(&viewJobPath, "job", "", "Path to job definition YAML")
	viewCmd.Flags().StringVar(&simConfigPath, "config", "", "Path to simulation configuration YAML")
	viewCmd.Flags().StringVar(&simSchemaPath, "schema", "", "Path to CUE schema file")
	viewCmd.Flags().StringVar(&viewRuns, "runs", "", "JSONL run record file to browse instead of simulating")
	viewCmd.MarkFlagsMutuallyExclusive("job", "runs")
}
