// Package export moves sizing cases in and out of xlsx workbooks: a
// result workbook for download, and an importer that reads the same
// Case/Legs/Segments sheets back into an input.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"

	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/hydraulics"
	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/sizing"
)

const (
	sheetCase         = "Case"
	sheetLegs         = "Legs"
	sheetSegments     = "Segments"
	sheetSummary      = "Summary"
	sheetDestinations = "Destinations"
	sheetCurve        = "Curve"
	sheetFindings     = "Findings"
)

// Workbook builds the download for one calculated case. The input
// sheets make the file importable again; the result sheets carry the
// outcome.
func Workbook(in sizing.Input, res *sizing.Result, points []sizing.CurvePoint) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetCase); err != nil {
		return nil, err
	}
	if err := writeInputSheets(f, in); err != nil {
		return nil, err
	}
	if err := writeResultSheets(f, res, points); err != nil {
		return nil, err
	}
	idx, err := f.GetSheetIndex(sheetSummary)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	return f, nil
}

func writeInputSheets(f *excelize.File, in sizing.Input) error {
	caseRows := [][]interface{}{
		{"project", in.Project},
		{"flow_m3h", in.FlowM3H},
		{"density_kgm3", in.Fluid.DensityKgM3},
		{"viscosity_pas", in.Fluid.ViscosityPaS},
		{"temperature_c", in.Fluid.TemperatureC},
		{"atm_pressure_pa", in.Fluid.AtmPressurePa},
		{"npsh_required_m", in.NPSHRequiredM},
		{"npsh_margin_m", in.NPSHMarginM},
		{"friction_model", in.FrictionModel},
	}
	for i, row := range caseRows {
		if err := setRow(f, sheetCase, i+1, row...); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(sheetLegs); err != nil {
		return err
	}
	if err := setRow(f, sheetLegs, 1, "leg", "reservoir", "gauge_pressure_pa",
		"level_m", "level_min_m", "level_max_m"); err != nil {
		return err
	}
	if err := writeLegRow(f, 2, "suction", in.Suction); err != nil {
		return err
	}
	for i, d := range in.Destinations {
		if err := writeLegRow(f, i+3, destinationID(d, i), d.Leg); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(sheetSegments); err != nil {
		return err
	}
	if err := setRow(f, sheetSegments, 1, "leg", "length_m", "diameter_m",
		"material", "roughness_mm", "connections", "k_per_connection"); err != nil {
		return err
	}
	row := 2
	for _, s := range in.Suction.Segments {
		if err := writeSegmentRow(f, row, "suction", s); err != nil {
			return err
		}
		row++
	}
	for i, d := range in.Destinations {
		for _, s := range d.Segments {
			if err := writeSegmentRow(f, row, destinationID(d, i), s); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func writeResultSheets(f *excelize.File, res *sizing.Result, points []sizing.CurvePoint) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return err
	}
	summary := [][]interface{}{
		{"case_id", res.CaseID},
		{"status", res.Status},
		{"project", res.Project},
		{"flow_m3h", res.FlowM3H},
		{"hmt_m", res.HmtM},
		{"pressure_bar", res.PressureBar},
		{"power_kw", res.PowerKW},
		{"temperature_c", res.TemperatureC},
		{"viscosity_cp", res.ViscosityCP},
		{"vapor_pressure_pa", res.VaporPressurePa},
		{"suction_velocity_ms", res.SuctionVelocityMS},
		{"suction_friction_loss_m", res.SuctionFrictionM},
		{"suction_local_loss_m", res.SuctionLocalM},
		{"npsh_required_m", res.NPSHRequiredM},
		{"npsh_margin_m", res.NPSHMarginM},
	}
	for i, row := range summary {
		if err := setRow(f, sheetSummary, i+1, row...); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(sheetDestinations); err != nil {
		return err
	}
	if err := setRow(f, sheetDestinations, 1, "id", "hmt_worst_m", "hmt_nominal_m",
		"hmt_best_m", "friction_loss_m", "local_loss_m", "max_velocity_ms",
		"npsh_available_m", "cavitation_ok"); err != nil {
		return err
	}
	for i, d := range res.Destinations {
		err := setRow(f, sheetDestinations, i+2, d.ID, d.HmtWorstM, d.HmtNominalM,
			d.HmtBestM, d.FrictionLossM, d.LocalLossM, d.MaxVelocityMS,
			d.NPSHAvailableM, d.CavitationOK)
		if err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(sheetCurve); err != nil {
		return err
	}
	if err := setRow(f, sheetCurve, 1, "flow_m3h", "worst_m", "nominal_m", "best_m"); err != nil {
		return err
	}
	for i, p := range points {
		if err := setRow(f, sheetCurve, i+2, p.FlowM3H, p.WorstM, p.NominalM, p.BestM); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(sheetFindings); err != nil {
		return err
	}
	if err := setRow(f, sheetFindings, 1, "kind", "level", "category", "message"); err != nil {
		return err
	}
	row := 2
	for _, fd := range res.Errors {
		if err := setRow(f, sheetFindings, row, "error", fd.Level, fd.Category, fd.Message); err != nil {
			return err
		}
		row++
	}
	for _, fd := range res.Warnings {
		if err := setRow(f, sheetFindings, row, "warning", fd.Level, fd.Category, fd.Message); err != nil {
			return err
		}
		row++
	}
	for _, rec := range res.Recommendations {
		if err := setRow(f, sheetFindings, row, "recommendation", "", "", rec); err != nil {
			return err
		}
		row++
	}
	return nil
}

// ParseInput reads the Case, Legs and Segments sheets back into a
// sizing input. Rows it cannot make sense of are skipped; a workbook
// with none of the three sheets is rejected.
func ParseInput(r io.Reader) (sizing.Input, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return sizing.Input{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var in sizing.Input
	found := false

	if rows := sheetRows(f, sheetCase); len(rows) > 0 {
		found = true
		parseCase(rows, &in)
	}

	// destination id (lowercased) -> slice index
	index := make(map[string]int)

	if rows := sheetRows(f, sheetLegs); len(rows) > 1 {
		found = true
		for _, row := range rows[1:] {
			name := cellString(row, 0)
			if name == "" {
				continue
			}
			leg := parseLeg(row)
			if strings.EqualFold(name, "suction") {
				segs := in.Suction.Segments
				in.Suction = leg
				in.Suction.Segments = segs
				continue
			}
			index[strings.ToLower(name)] = len(in.Destinations)
			in.Destinations = append(in.Destinations, sizing.Destination{ID: name, Leg: leg})
		}
	}

	if rows := sheetRows(f, sheetSegments); len(rows) > 1 {
		found = true
		for _, row := range rows[1:] {
			name := cellString(row, 0)
			if name == "" || len(row) < 3 {
				continue
			}
			seg := parseSegment(row)
			if strings.EqualFold(name, "suction") {
				in.Suction.Segments = append(in.Suction.Segments, seg)
				continue
			}
			key := strings.ToLower(name)
			i, ok := index[key]
			if !ok {
				// segments may reference a leg never declared on Legs
				i = len(in.Destinations)
				index[key] = i
				in.Destinations = append(in.Destinations, sizing.Destination{ID: name})
			}
			in.Destinations[i].Segments = append(in.Destinations[i].Segments, seg)
		}
	}

	if !found {
		return sizing.Input{}, errors.New("workbook has no Case, Legs or Segments sheet")
	}
	return in, nil
}

func parseCase(rows [][]string, in *sizing.Input) {
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		val := strings.TrimSpace(row[1])
		switch strings.ToLower(strings.TrimSpace(row[0])) {
		case "project":
			in.Project = val
		case "flow_m3h":
			in.FlowM3H = cast.ToFloat64(val)
		case "density_kgm3":
			in.Fluid.DensityKgM3 = cast.ToFloat64(val)
		case "viscosity_pas":
			in.Fluid.ViscosityPaS = cast.ToFloat64(val)
		case "temperature_c":
			in.Fluid.TemperatureC = cast.ToFloat64(val)
		case "atm_pressure_pa":
			in.Fluid.AtmPressurePa = cast.ToFloat64(val)
		case "npsh_required_m":
			in.NPSHRequiredM = cast.ToFloat64(val)
		case "npsh_margin_m":
			in.NPSHMarginM = cast.ToFloat64(val)
		case "friction_model":
			in.FrictionModel = strings.ToLower(val)
		}
	}
}

// row: leg | reservoir | gauge_pressure_pa | level_m | level_min_m | level_max_m
func parseLeg(row []string) sizing.Leg {
	return sizing.Leg{
		Reservoir:       strings.ToLower(cellString(row, 1)),
		GaugePressurePa: cast.ToFloat64(cellString(row, 2)),
		LevelM:          cast.ToFloat64(cellString(row, 3)),
		LevelMinM:       optFloat(row, 4),
		LevelMaxM:       optFloat(row, 5),
	}
}

// row: leg | length_m | diameter_m | material | roughness_mm | connections | k_per_connection
func parseSegment(row []string) hydraulics.Segment {
	return hydraulics.Segment{
		LengthM:        cast.ToFloat64(cellString(row, 1)),
		DiameterM:      cast.ToFloat64(cellString(row, 2)),
		Material:       cellString(row, 3),
		RoughnessMM:    cast.ToFloat64(cellString(row, 4)),
		Connections:    cast.ToInt(cellString(row, 5)),
		KPerConnection: cast.ToFloat64(cellString(row, 6)),
	}
}

func writeLegRow(f *excelize.File, row int, name string, leg sizing.Leg) error {
	return setRow(f, sheetLegs, row, name, leg.Reservoir, leg.GaugePressurePa,
		leg.LevelM, optCell(leg.LevelMinM), optCell(leg.LevelMaxM))
}

func writeSegmentRow(f *excelize.File, row int, name string, s hydraulics.Segment) error {
	return setRow(f, sheetSegments, row, name, s.LengthM, s.DiameterM,
		s.Material, s.RoughnessMM, s.Connections, s.KPerConnection)
}

func destinationID(d sizing.Destination, i int) string {
	if d.ID != "" {
		return d.ID
	}
	return fmt.Sprintf("destination-%d", i+1)
}

func setRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func sheetRows(f *excelize.File, name string) [][]string {
	rows, err := f.GetRows(name)
	if err != nil {
		return nil
	}
	return rows
}

func cellString(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func optFloat(row []string, i int) *float64 {
	s := cellString(row, i)
	if s == "" {
		return nil
	}
	v := cast.ToFloat64(s)
	return &v
}

func optCell(p *float64) interface{} {
	if p == nil {
		return ""
	}
	return *p
}
