package main

import (
	"os"

	"github.com/spf13/cobra"

	"ctsim/internal/dashboard"
	"ctsim/internal/logging"
)

var dashboardOut string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Render Grafana dashboards for the GreptimeDB run tables",
	Long:  "dashboard writes Grafana dashboard JSON querying the tables the GreptimeDB sink fills. GREPTIMEDB_DATASOURCE_UID must be set.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tables := dashboard.Tables{
			Runs:    os.Getenv("GREPTIMEDB_TABLE"),
			Profile: os.Getenv("GREPTIMEDB_PROFILE_TABLE"),
		}
		if err := dashboard.Render(dashboardOut, tables); err != nil {
			return err
		}
		logging.FromContext(cmd.Context()).Info("dashboards rendered", "dir", dashboardOut)
		return nil
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardOut, "out", "build", "Output directory")
}
