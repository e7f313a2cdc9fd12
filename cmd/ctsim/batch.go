package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ctsim/internal/batch"
	"ctsim/internal/config"
	"ctsim/internal/jobsim"
	"ctsim/internal/logging"
	"ctsim/internal/store"
	"ctsim/internal/tui"
)

var (
	batchInput      string
	batchOutput     string
	batchConfigPath string
	batchStoreDir   string
	batchWorkers    int
	batchPrintOnly  bool
	batchTUI        bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Simulate many jobs from a JSONL file",
	Long:  "batch simulates one job per JSON line concurrently and emits the run records in input order.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.FromContext(cmd.Context())
		cfg, err := config.Load(batchConfigPath, "")
		if err != nil {
			return err
		}
		s, err := newSinks(sinkOptions{
			stdout:    batchOutput == "" && !batchTUI,
			printOnly: batchPrintOnly,
			logFile:   batchOutput,
			storeDir:  batchStoreDir,
		}, log)
		if err != nil {
			return err
		}
		defer s.close()

		w := s.writer
		var viewer *tui.Writer
		if batchTUI {
			viewer = tui.Start()
			if w == nil {
				w = viewer
			} else {
				w = store.NewMultiWriter(w, viewer)
			}
		}

		runner := batch.NewRunner(jobsim.NewSimulator(cfg, log), batchWorkers, log)
		sum, err := runner.RunFile(cmd.Context(), batchInput, w)
		if err != nil {
			return err
		}
		if viewer != nil {
			if err := viewer.Wait(); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%d jobs: %d feasible, %d infeasible, %d failed\n",
			sum.Jobs, sum.Feasible, sum.Infeasible, sum.Failed)
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchInput, "input", "", "JSONL file with one job per line")
	batchCmd.Flags().StringVar(&batchOutput, "output", "", "Write run records to this JSONL file (.zst to compress) instead of STDOUT")
	batchCmd.Flags().StringVar(&batchConfigPath, "config", "", "Path to simulation configuration YAML")
	batchCmd.Flags().StringVar(&batchStoreDir, "store", "", "Persist run records in this badger directory")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "Concurrent simulations (0 uses GOMAXPROCS)")
	batchCmd.Flags().BoolVar(&batchPrintOnly, "print-only", false, "Do not write to GreptimeDB even if GREPTIMEDB_ENDPOINT is set")
	batchCmd.Flags().BoolVar(&batchTUI, "tui", false, "Browse results in an interactive viewer")
	batchCmd.MarkFlagRequired("input")
}
