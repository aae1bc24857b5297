// Package report renders a sizing result as a PDF document: status
// banner, duty summary, per-destination table, system curve and the
// full list of findings.
package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/sizing"
)

// Build writes the report for one result. curvePNG is optional; when
// present it is embedded after the duty summary.
func Build(w io.Writer, res *sizing.Result, curvePNG []byte) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()

	// Header band
	pdf.SetFillColor(31, 73, 125)
	pdf.Rect(0, 0, pageW, 24, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(10, 5)
	pdf.Cell(0, 8, "PUMP SIZING REPORT")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(10, 14)
	pdf.Cell(0, 5, "Hydraulic selection summary")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(30)

	pdf.SetFont("Helvetica", "", 10)
	if res.Project != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Project: %s", res.Project))
		pdf.Ln(6)
	}
	if res.CaseID != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Case: %s", res.CaseID))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02 15:04")))
	pdf.Ln(10)

	statusBanner(pdf, res.Status)

	section(pdf, "Duty")
	row(pdf, "Design flow", fmt.Sprintf("%.2f m3/h", res.FlowM3H))
	row(pdf, "Total head (governing)", fmt.Sprintf("%.2f m", res.HmtM))
	row(pdf, "Discharge pressure", fmt.Sprintf("%.2f bar", res.PressureBar))
	row(pdf, "Hydraulic power", fmt.Sprintf("%.2f kW", res.PowerKW))
	row(pdf, "Fluid temperature", fmt.Sprintf("%.1f C", res.TemperatureC))
	row(pdf, "Fluid viscosity", fmt.Sprintf("%.1f cP", res.ViscosityCP))
	row(pdf, "Suction velocity (max)", fmt.Sprintf("%.2f m/s", res.SuctionVelocityMS))
	row(pdf, "Suction losses", fmt.Sprintf("%.3f m", res.SuctionFrictionM+res.SuctionLocalM))
	pdf.Ln(4)

	destinationTable(pdf, res)

	if len(curvePNG) > 0 {
		opts := gofpdf.ImageOptions{ImageType: "png"}
		pdf.RegisterImageOptionsReader("system-curve", opts, bytes.NewReader(curvePNG))
		pdf.ImageOptions("system-curve", 15, pdf.GetY(), 180, 0, true, opts, 0, "")
		pdf.Ln(4)
	}

	if len(res.Errors) > 0 {
		section(pdf, "Impeditive errors")
		for _, f := range res.Errors {
			finding(pdf, f)
		}
	}
	if len(res.Warnings) > 0 {
		section(pdf, "Warnings")
		for _, f := range res.Warnings {
			finding(pdf, f)
		}
	}
	if len(res.Recommendations) > 0 {
		section(pdf, "Recommendations")
		pdf.SetFont("Helvetica", "", 10)
		for _, rec := range res.Recommendations {
			pdf.MultiCell(0, 5, "- "+rec, "", "L", false)
		}
	}

	return pdf.Output(w)
}

func statusBanner(pdf *gofpdf.Fpdf, status string) {
	label := "DESIGN OK"
	r, g, b := 46, 125, 50
	switch status {
	case sizing.StatusError:
		label, r, g, b = "IMPEDITIVE ERRORS", 198, 40, 40
	case sizing.StatusWarning:
		label, r, g, b = "CHECK WARNINGS", 249, 168, 37
	}
	pdf.SetFillColor(r, g, b)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 9, label, "", 1, "C", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
}

func row(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(80, 6, label)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 6, value)
	pdf.Ln(6)
}

func destinationTable(pdf *gofpdf.Fpdf, res *sizing.Result) {
	section(pdf, "Destinations")

	widths := []float64{50, 28, 28, 28, 28, 28}
	headers := []string{"Destination", "Worst (m)", "Nominal (m)", "Best (m)", "NPSHa (m)", "Cavitation"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 236, 245)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, d := range res.Destinations {
		cav := "OK"
		if !d.CavitationOK {
			cav = "RISK"
		}
		cells := []string{
			d.ID,
			fmt.Sprintf("%.2f", d.HmtWorstM),
			fmt.Sprintf("%.2f", d.HmtNominalM),
			fmt.Sprintf("%.2f", d.HmtBestM),
			fmt.Sprintf("%.2f", d.NPSHAvailableM),
			cav,
		}
		for i, c := range cells {
			align := "C"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 7, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

func finding(pdf *gofpdf.Fpdf, f sizing.Finding) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.MultiCell(0, 5, fmt.Sprintf("[%s] %s", f.Level, f.Message), "", "L", false)
	pdf.SetFont("Helvetica", "", 9)
	if f.Impact != "" {
		pdf.MultiCell(0, 5, "Impact: "+f.Impact, "", "L", false)
	}
	for _, a := range f.Actions {
		pdf.MultiCell(0, 5, "- "+a, "", "L", false)
	}
	pdf.Ln(2)
}
