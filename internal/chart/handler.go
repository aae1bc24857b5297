package chart

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/sizing"
)

type Handler struct {
	Engine *sizing.Engine
}

// Chart sizes the system and streams the curve as a PNG.
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	var in sizing.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := h.Engine.Calculate(in)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	points := h.Engine.Curve(in, 0)

	w.Header().Set("Content-Type", "image/png")
	if err := WritePNG(w, points, res.FlowM3H, res.Destinations[0].HmtNominalM); err != nil {
		log.Printf("chart: render: %v", err)
	}
}
