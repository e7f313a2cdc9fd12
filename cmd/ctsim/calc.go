package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"ctsim/internal/calc"
	"ctsim/internal/config"
)

var (
	calcInput      string
	calcConfigPath string
)

var calcCmd = &cobra.Command{
	Use:   "calc [calculator]",
	Short: "Run a single engineering calculation",
	Long: "calc decodes a YAML or JSON request and prints the calculator result as JSON.\n" +
		"Without arguments it lists the calculators: " + strings.Join(calc.Calculators, ", ") + ".",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			for _, name := range calc.Calculators {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		}
		cfg, err := config.Load(calcConfigPath, "")
		if err != nil {
			return err
		}
		in := cmd.InOrStdin()
		if calcInput != "" && calcInput != "-" {
			f, err := os.Open(calcInput)
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}
		return runCalc(calc.New(cfg.Calc), args[0], in, cmd.OutOrStdout())
	},
}

// runCalc decodes one request from in, runs the named calculator and writes
// the indented JSON result to out.
func runCalc(e calc.Engine, name string, in io.Reader, out io.Writer) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	res, err := e.Run(name, func(req any) error {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(req); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func init() {
	calcCmd.Flags().StringVar(&calcInput, "input", "", "Request file (YAML or JSON); STDIN when empty or -")
	calcCmd.Flags().StringVar(&calcConfigPath, "config", "", "Simulation configuration YAML supplying the calculation coefficients")
}
