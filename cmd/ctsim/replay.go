package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ctsim/internal/logging"
	"ctsim/internal/store"
)

var (
	replayInput     string
	replayStoreDir  string
	replayPrintOnly bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a run record file",
	Long:  "replay feeds run records from a JSONL file back into GreptimeDB, a badger store or STDOUT.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.FromContext(cmd.Context())
		s, err := newSinks(sinkOptions{
			stdout:    replayPrintOnly || (replayStoreDir == "" && os.Getenv("GREPTIMEDB_ENDPOINT") == ""),
			printOnly: replayPrintOnly,
			storeDir:  replayStoreDir,
		}, log)
		if err != nil {
			return err
		}
		defer s.close()
		n, err := store.ReplayFile(replayInput, s.writer)
		if err != nil {
			return fmt.Errorf("replay %s: %w", replayInput, err)
		}
		log.Info("replay complete", "records", n)
		return nil
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to run record file (.zst accepted)")
	replayCmd.Flags().StringVar(&replayStoreDir, "store", "", "Load records into this badger directory")
	replayCmd.Flags().BoolVar(&replayPrintOnly, "print-only", false, "Print records to STDOUT instead of writing to DB")
	replayCmd.MarkFlagRequired("input")
}
