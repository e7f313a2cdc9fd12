package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ctsim/internal/config"
	"ctsim/internal/jobsim"
	"ctsim/internal/logging"
	"ctsim/internal/report"
	"ctsim/internal/store"
)

var (
	simJobPath    string
	simConfigPath string
	simSchemaPath string
	simFormat     string
	simOut        string
	simLogFile    string
	simStoreDir   string
	simPrintOnly  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate a coiled tubing job",
	Long:  "simulate screens a job against unit limits and runs the force, hydraulics, time, fatigue and risk pipeline.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.FromContext(cmd.Context())
		cfg, err := config.Load(simConfigPath, simSchemaPath)
		if err != nil {
			return err
		}
		job, err := config.LoadJob(simJobPath, simSchemaPath)
		if err != nil {
			return err
		}
		res := jobsim.NewSimulator(cfg, log).Simulate(job)
		rec := store.NewRecord(job, res, time.Now())

		s, err := newSinks(sinkOptions{printOnly: simPrintOnly, logFile: simLogFile, storeDir: simStoreDir}, log)
		if err != nil {
			return err
		}
		defer s.close()
		if s.writer != nil {
			if err := s.writer.Write(rec); err != nil {
				return fmt.Errorf("record run: %w", err)
			}
		}

		out := cmd.OutOrStdout()
		if simOut != "" {
			f, err := os.Create(simOut)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		if err := writeReport(out, res, simFormat, simOut == ""); err != nil {
			return err
		}
		log.Info("simulation complete", "run_id", rec.RunID, "well", res.WellName, "feasible", res.Feasibility.IsFeasible)
		if !res.OK() {
			return fmt.Errorf("simulation failed: %s", res.Error)
		}
		return nil
	},
}

// writeReport renders res in the named format. An empty format means text
// on a terminal and JSON otherwise.
func writeReport(w io.Writer, res jobsim.SimulationResult, format string, toStdout bool) error {
	if format == "" {
		format = string(report.FormatJSON)
		if toStdout && isTerminal() {
			format = string(report.FormatText)
		}
	}
	f, err := report.ParseFormat(format)
	if err != nil {
		return err
	}
	gen, err := report.New(f)
	if err != nil {
		return err
	}
	if tg, ok := gen.(report.TextGenerator); ok && toStdout {
		tg.Width = terminalWidth()
		gen = tg
	}
	data, err := gen.Generate(res)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func addJobFlags(cmd *cobra.Command, jobPath *string) {
	cmd.Flags().StringVar(jobPath, "job", "", "Path to job definition YAML")
	cmd.Flags().StringVar(&simConfigPath, "config", "", "Path to simulation configuration YAML (defaults built in)")
	cmd.Flags().StringVar(&simSchemaPath, "schema", "", "Path to CUE schema file (bundled schema when empty)")
	cmd.MarkFlagRequired("job")
}

func init() {
	addJobFlags(simulateCmd, &simJobPath)
	simulateCmd.Flags().StringVar(&simFormat, "format", "", "Report format (json, csv, cbor, text)")
	simulateCmd.Flags().StringVar(&simOut, "out", "", "Write the report to this file instead of STDOUT")
	simulateCmd.Flags().StringVar(&simLogFile, "log-file", "", "Append the run record to a JSONL file (.zst to compress)")
	simulateCmd.Flags().StringVar(&simStoreDir, "store", "", "Persist the run record in this badger directory")
	simulateCmd.Flags().BoolVar(&simPrintOnly, "print-only", false, "Do not write to GreptimeDB even if GREPTIMEDB_ENDPOINT is set")
}
