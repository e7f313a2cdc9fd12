package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ctsim/internal/api"
	"ctsim/internal/config"
	"ctsim/internal/jobsim"
	"ctsim/internal/logging"
	"ctsim/internal/store"
)

var (
	serveAddr       string
	serveConfigPath string
	serveStoreDir   string
	serveLogFile    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculation and simulation HTTP API",
	Long:  "serve exposes calculators, job simulation, stored runs and Prometheus metrics over HTTP.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.FromContext(cmd.Context())
		cfg, err := config.Load(serveConfigPath, "")
		if err != nil {
			return err
		}
		runs, err := store.OpenBadgerStore(serveStoreDir, log)
		if err != nil {
			return err
		}
		defer runs.Close()
		s, err := newSinks(sinkOptions{logFile: serveLogFile}, log)
		if err != nil {
			return err
		}
		defer s.close()

		opts := []api.Option{api.WithRunStore(runs)}
		if s.writer != nil {
			opts = append(opts, api.WithSink(s.writer))
		}
		srv := api.NewServer(jobsim.NewSimulator(cfg, log), log, opts...)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		err = srv.Start(ctx, serveAddr)
		log.Info("api stopped")
		return err
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to simulation configuration YAML")
	serveCmd.Flags().StringVar(&serveStoreDir, "store", "", "Badger directory for run records (in-memory when empty)")
	serveCmd.Flags().StringVar(&serveLogFile, "log-file", "", "Append run records to a JSONL file (.zst to compress)")
}
