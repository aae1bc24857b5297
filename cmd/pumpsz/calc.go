package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/chart"
	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/hydraulics"
	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/report"
	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/sizing"
)

var (
	calcInput  string
	calcJSON   bool
	calcASCII  bool
	calcChart  string
	calcReport string
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Size a pump for a case file",
	Long: `Runs the full sizing for a JSON case file: governing head over all
destinations and level scenarios, NPSH verification and the validation
rules, printed as a terminal summary.

Examples:
  # Plain summary
  pumpsz calc -i case.json

  # Summary plus terminal curve
  pumpsz calc -i case.json --ascii

  # Machine-readable output and artifacts
  pumpsz calc -i case.json --json
  pumpsz calc -i case.json --chart curve.png --report sizing.pdf`,
	Run: runCalc,
}

func init() {
	rootCmd.AddCommand(calcCmd)

	calcCmd.Flags().StringVarP(&calcInput, "input", "i", "", "Case file (JSON) [required]")
	calcCmd.Flags().BoolVar(&calcJSON, "json", false, "Print the raw result JSON instead of the summary")
	calcCmd.Flags().BoolVar(&calcASCII, "ascii", false, "Draw the system curve in the terminal")
	calcCmd.Flags().StringVar(&calcChart, "chart", "", "Write the system curve PNG to this file")
	calcCmd.Flags().StringVar(&calcReport, "report", "", "Write the PDF report to this file")
	calcCmd.MarkFlagRequired("input")
}

func loadCase(path string) (sizing.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return sizing.Input{}, err
	}
	var in sizing.Input
	if err := json.Unmarshal(data, &in); err != nil {
		return sizing.Input{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return in, nil
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runCalc(cmd *cobra.Command, args []string) {
	in, err := loadCase(calcInput)
	if err != nil {
		fail(err)
	}

	engine := sizing.NewEngine(hydraulics.DefaultConfig())
	res, err := engine.Calculate(in)
	if err != nil {
		fail(err)
	}

	if calcJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(res)
	} else {
		printResult(res)
	}

	points := engine.Curve(in, 0)
	if calcASCII && len(points) > 0 {
		fmt.Println()
		fmt.Println(chart.ASCII(points, 0, 0))
	}

	if calcChart != "" {
		if err := chart.SavePNG(calcChart, points, res.FlowM3H, res.Destinations[0].HmtNominalM); err != nil {
			fail(err)
		}
		fmt.Printf("System curve written to %s\n", calcChart)
	}

	if calcReport != "" {
		var png bytes.Buffer
		if len(points) > 0 {
			if err := chart.WritePNG(&png, points, res.FlowM3H, res.Destinations[0].HmtNominalM); err != nil {
				png.Reset()
			}
		}
		f, err := os.Create(calcReport)
		if err != nil {
			fail(err)
		}
		if err := report.Build(f, res, png.Bytes()); err != nil {
			f.Close()
			fail(err)
		}
		if err := f.Close(); err != nil {
			fail(err)
		}
		fmt.Printf("Report written to %s\n", calcReport)
	}
}

const rule = "---------------------------------------------------------------"

func printResult(res *sizing.Result) {
	title := "PUMP SIZING"
	if res.Project != "" {
		title += " - " + res.Project
	}
	banner := strings.Repeat("=", len(rule))
	fmt.Println()
	fmt.Println(banner)
	fmt.Printf("   %s\n", title)
	fmt.Println(banner)
	fmt.Println()

	fmt.Println("DUTY:")
	fmt.Println(rule)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Design flow:\t%.2f m3/h\n", res.FlowM3H)
	fmt.Fprintf(w, "  Total head (governing):\t%.2f m\n", res.HmtM)
	fmt.Fprintf(w, "  Discharge pressure:\t%.2f bar\n", res.PressureBar)
	fmt.Fprintf(w, "  Hydraulic power:\t%.2f kW\n", res.PowerKW)
	fmt.Fprintf(w, "  Temperature:\t%.1f C\n", res.TemperatureC)
	fmt.Fprintf(w, "  Viscosity:\t%.1f cP\n", res.ViscosityCP)
	fmt.Fprintf(w, "  Status:\t%s\n", strings.ToUpper(res.Status))
	w.Flush()
	fmt.Println()

	fmt.Println("SUCTION:")
	fmt.Println(rule)
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Max velocity:\t%.2f m/s\n", res.SuctionVelocityMS)
	fmt.Fprintf(w, "  Friction loss:\t%.3f m\n", res.SuctionFrictionM)
	fmt.Fprintf(w, "  Local loss:\t%.3f m\n", res.SuctionLocalM)
	fmt.Fprintf(w, "  Vapor pressure:\t%.0f Pa\n", res.VaporPressurePa)
	fmt.Fprintf(w, "  NPSH required + margin:\t%.2f m + %.2f m\n", res.NPSHRequiredM, res.NPSHMarginM)
	w.Flush()
	fmt.Println()

	fmt.Println("DESTINATIONS:")
	fmt.Println(rule)
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tWORST\tNOMINAL\tBEST\tNPSHa\tCAVITATION")
	for _, d := range res.Destinations {
		cav := "OK"
		if !d.CavitationOK {
			cav = "RISK"
		}
		fmt.Fprintf(w, "  %s\t%.2f m\t%.2f m\t%.2f m\t%.2f m\t%s\n",
			d.ID, d.HmtWorstM, d.HmtNominalM, d.HmtBestM, d.NPSHAvailableM, cav)
	}
	w.Flush()
	fmt.Println()

	if len(res.Errors) > 0 {
		fmt.Println("IMPEDITIVE ERRORS:")
		fmt.Println(rule)
		for _, f := range res.Errors {
			printFinding(f)
		}
		fmt.Println()
	}
	if len(res.Warnings) > 0 {
		fmt.Println("WARNINGS:")
		fmt.Println(rule)
		for _, f := range res.Warnings {
			printFinding(f)
		}
		fmt.Println()
	}
	if len(res.Recommendations) > 0 {
		fmt.Println("RECOMMENDATIONS:")
		fmt.Println(rule)
		for _, rec := range res.Recommendations {
			fmt.Printf("  - %s\n", rec)
		}
		fmt.Println()
	}
}

func printFinding(f sizing.Finding) {
	fmt.Printf("  [%s] %s\n", f.Level, f.Message)
	if f.Impact != "" {
		fmt.Printf("      impact: %s\n", f.Impact)
	}
	for _, a := range f.Actions {
		fmt.Printf("      - %s\n", a)
	}
}
