package export

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/hydraulics"
	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/sizing"
)

func f64(v float64) *float64 { return &v }

func waterCase() sizing.Input {
	return sizing.Input{
		Project: "transfer station",
		FlowM3H: 72,
		Fluid:   sizing.Fluid{TemperatureC: 20},
		Suction: sizing.Leg{
			LevelMinM: f64(-1),
			Segments: []hydraulics.Segment{
				{LengthM: 10, DiameterM: 0.1, Material: "pvc", Connections: 2},
			},
		},
		Destinations: []sizing.Destination{
			{
				ID: "tank",
				Leg: sizing.Leg{
					LevelM: 20,
					Segments: []hydraulics.Segment{
						{LengthM: 50, DiameterM: 0.1, Material: "pvc", Connections: 5},
						{LengthM: 5, DiameterM: 0.08, Material: "steel_new", Connections: 1},
					},
				},
			},
		},
	}
}

func buildWorkbook(t *testing.T, in sizing.Input) []byte {
	t.Helper()
	eng := sizing.NewEngine(hydraulics.DefaultConfig())
	res, err := eng.Calculate(in)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	f, err := Workbook(in, res, eng.Curve(in, 0))
	if err != nil {
		t.Fatalf("Workbook: %v", err)
	}
	defer f.Close()
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return buf.Bytes()
}

func TestWorkbookRoundTrip(t *testing.T) {
	in := waterCase()
	data := buildWorkbook(t, in)

	got, err := ParseInput(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseInput: %v", err)
	}

	if got.Project != in.Project {
		t.Errorf("project = %q, want %q", got.Project, in.Project)
	}
	if got.FlowM3H != in.FlowM3H {
		t.Errorf("flow = %v, want %v", got.FlowM3H, in.FlowM3H)
	}
	if got.Suction.LevelMinM == nil || *got.Suction.LevelMinM != -1 {
		t.Errorf("suction level_min_m = %v, want -1", got.Suction.LevelMinM)
	}
	if got.Suction.LevelMaxM != nil {
		t.Errorf("suction level_max_m should stay unset, got %v", *got.Suction.LevelMaxM)
	}
	if len(got.Suction.Segments) != 1 || got.Suction.Segments[0].LengthM != 10 {
		t.Fatalf("suction segments = %+v", got.Suction.Segments)
	}
	if len(got.Destinations) != 1 {
		t.Fatalf("destinations = %d, want 1", len(got.Destinations))
	}
	d := got.Destinations[0]
	if d.ID != "tank" || d.LevelM != 20 {
		t.Errorf("destination = %q level %v", d.ID, d.LevelM)
	}
	if len(d.Segments) != 2 || d.Segments[1].Material != "steel_new" {
		t.Fatalf("destination segments = %+v", d.Segments)
	}
	if d.Segments[0].Connections != 5 {
		t.Errorf("connections = %d, want 5", d.Segments[0].Connections)
	}
}

func TestParseInputHandAuthored(t *testing.T) {
	// Segments-only workbook, the way a checklist spreadsheet tends to
	// arrive: no Case sheet, no Legs sheet, legs inferred from rows.
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "Segments"); err != nil {
		t.Fatal(err)
	}
	rows := [][]interface{}{
		{"leg", "length_m", "diameter_m", "material", "roughness_mm", "connections", "k_per_connection"},
		{"suction", "8", "0.1", "pvc", "", "2", ""},
		{"roof-tank", "40", "0.08", "steel_new", "", "6", "0.7"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Segments", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	got, err := ParseInput(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ParseInput: %v", err)
	}
	if len(got.Suction.Segments) != 1 || got.Suction.Segments[0].Connections != 2 {
		t.Fatalf("suction segments = %+v", got.Suction.Segments)
	}
	if len(got.Destinations) != 1 || got.Destinations[0].ID != "roof-tank" {
		t.Fatalf("destinations = %+v", got.Destinations)
	}
	seg := got.Destinations[0].Segments[0]
	if seg.KPerConnection != 0.7 || seg.DiameterM != 0.08 {
		t.Errorf("segment = %+v", seg)
	}
}

func TestParseInputRejectsForeignWorkbook(t *testing.T) {
	f := excelize.NewFile()
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseInput(bytes.NewReader(buf.Bytes())); err == nil {
		t.Fatal("expected an error for a workbook without case sheets")
	}
}

func TestParseInputRejectsGarbage(t *testing.T) {
	if _, err := ParseInput(strings.NewReader("not a zip archive")); err == nil {
		t.Fatal("expected an error for a non-xlsx payload")
	}
}

func multipartBody(t *testing.T, workbook []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "case.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(workbook); err != nil {
		t.Fatal(err)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &body, mw.FormDataContentType()
}

func TestImportHandler(t *testing.T) {
	h := &Handler{Engine: sizing.NewEngine(hydraulics.DefaultConfig())}
	body, contentType := multipartBody(t, buildWorkbook(t, waterCase()), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/user/sizing/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Import(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var res sizing.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.FlowM3H != 72 {
		t.Errorf("flow = %v, want 72", res.FlowM3H)
	}
	if res.CaseID == "" {
		t.Error("case id missing")
	}
	if len(res.Destinations) != 1 || res.Destinations[0].ID != "tank" {
		t.Errorf("destinations = %+v", res.Destinations)
	}
}

func TestImportHandlerFormOverrides(t *testing.T) {
	h := &Handler{Engine: sizing.NewEngine(hydraulics.DefaultConfig())}
	body, contentType := multipartBody(t, buildWorkbook(t, waterCase()), map[string]string{
		"flow_m3h": "90",
		"project":  "retrofit",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/user/sizing/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Import(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var res sizing.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.FlowM3H != 90 {
		t.Errorf("flow = %v, want the 90 override", res.FlowM3H)
	}
	if res.Project != "retrofit" {
		t.Errorf("project = %q, want the override", res.Project)
	}
}

func TestImportHandlerRequiresFile(t *testing.T) {
	h := &Handler{Engine: sizing.NewEngine(hydraulics.DefaultConfig())}

	req := httptest.NewRequest(http.MethodPost, "/api/user/sizing/import", strings.NewReader(""))
	rec := httptest.NewRecorder()
	h.Import(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestExportHandler(t *testing.T) {
	h := &Handler{Engine: sizing.NewEngine(hydraulics.DefaultConfig())}

	payload, _ := json.Marshal(waterCase())
	req := httptest.NewRequest(http.MethodPost, "/api/user/sizing/export", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Export(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "sizing-case.xlsx") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("response is not a workbook: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"Case", "Legs", "Segments", "Summary", "Destinations", "Curve", "Findings"} {
		if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
			t.Errorf("sheet %s missing (index %d, err %v)", sheet, idx, err)
		}
	}
	status, err := f.GetCellValue("Summary", "B2")
	if err != nil || status != sizing.StatusOK {
		t.Errorf("Summary!B2 = %q, %v", status, err)
	}
	rows, err := f.GetRows("Curve")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 101 { // header + 100 samples
		t.Errorf("curve rows = %d, want 101", len(rows))
	}
}

func TestExportHandlerRejectsBadCase(t *testing.T) {
	h := &Handler{Engine: sizing.NewEngine(hydraulics.DefaultConfig())}

	req := httptest.NewRequest(http.MethodPost, "/api/user/sizing/export", strings.NewReader(`{"flow_m3h":0}`))
	rec := httptest.NewRecorder()
	h.Export(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}
