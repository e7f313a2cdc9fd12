package main

import (
	"github.com/spf13/cobra"

	"ctsim/internal/config"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the bundled CUE schema",
	Long:  "schema prints the CUE schema used to validate job and configuration files.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := config.BundledSchema()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}
