package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/chart"
	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/hydraulics"
	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/sizing"
)

var (
	curveInput   string
	curveSamples int
	curveOut     string
	curveJSON    bool
	curveWidth   int
	curveHeight  int
)

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Sample the system head curve",
	Long: `Samples the worst, nominal and best system curves from zero to 1.5x
the design flow. Without flags the curve is drawn in the terminal.

Examples:
  pumpsz curve -i case.json
  pumpsz curve -i case.json -o curve.png
  pumpsz curve -i case.json --json --samples 25`,
	Run: runCurve,
}

func init() {
	rootCmd.AddCommand(curveCmd)

	curveCmd.Flags().StringVarP(&curveInput, "input", "i", "", "Case file (JSON) [required]")
	curveCmd.Flags().IntVar(&curveSamples, "samples", 100, "Number of flow samples")
	curveCmd.Flags().StringVarP(&curveOut, "output", "o", "", "Write the curve PNG to this file")
	curveCmd.Flags().BoolVar(&curveJSON, "json", false, "Print the sampled points as JSON")
	curveCmd.Flags().IntVar(&curveWidth, "width", 0, "Terminal graph width")
	curveCmd.Flags().IntVar(&curveHeight, "height", 0, "Terminal graph height")
	curveCmd.MarkFlagRequired("input")
}

func runCurve(cmd *cobra.Command, args []string) {
	in, err := loadCase(curveInput)
	if err != nil {
		fail(err)
	}

	engine := sizing.NewEngine(hydraulics.DefaultConfig())
	points := engine.Curve(in, curveSamples)
	if len(points) == 0 {
		fail(errors.New("flow and at least one destination required"))
	}

	if curveJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(points)
		return
	}

	if curveOut != "" {
		res, err := engine.Calculate(in)
		if err != nil {
			fail(err)
		}
		if err := chart.SavePNG(curveOut, points, res.FlowM3H, res.Destinations[0].HmtNominalM); err != nil {
			fail(err)
		}
		fmt.Printf("System curve written to %s\n", curveOut)
		return
	}

	fmt.Println(chart.ASCII(points, curveWidth, curveHeight))
}
