package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"ctsim/internal/logging"
)

var (
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "ctsim",
	Short: "Coiled tubing job planning toolkit",
	Long:  "ctsim runs coiled tubing engineering calculations and whole-job simulations.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log := logging.New(os.Stderr, logging.ParseLevel(logLevel), logFormat)
		slog.SetDefault(log)
		cmd.SetContext(logging.NewContext(cmd.Context(), log))
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", envOr(logging.EnvLevel, "info"), "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", envOr(logging.EnvFormat, "text"), "Log format (text, json)")
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(dashboardCmd)
}
