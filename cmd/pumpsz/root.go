package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pumpsz",
	Short: "Centrifugal pump sizing tool",
	Long: `pumpsz - centrifugal pump sizing from the command line

Runs the same hydraulic engine the HTTP service exposes: total
manometric head across reservoir level scenarios, NPSH verification,
hydraulic power and the engineering validation rules.

Cases are plain JSON files, the same payload the API accepts:

  pumpsz calc -i case.json
  pumpsz calc -i case.json --chart curve.png --report sizing.pdf
  pumpsz curve -i case.json -o curve.png`,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
