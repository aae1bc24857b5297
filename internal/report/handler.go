package report

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/chart"
	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/sizing"
)

type Handler struct {
	Engine *sizing.Engine
}

// Generate runs the calculation for the posted case and streams the
// PDF back as an attachment.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var in sizing.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request data", http.StatusBadRequest)
		return
	}

	res, err := h.Engine.Calculate(in)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res.CaseID = uuid.NewString()

	// The report still renders without the curve if the plot fails.
	var png bytes.Buffer
	if points := h.Engine.Curve(in, 0); len(points) > 0 {
		duty := res.Destinations[0].HmtNominalM
		if err := chart.WritePNG(&png, points, res.FlowM3H, duty); err != nil {
			log.Printf("report: curve render: %v", err)
			png.Reset()
		}
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="sizing-report.pdf"`)
	if err := Build(w, res, png.Bytes()); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
	}
}
