package export

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/spf13/cast"

	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/sizing"
)

type Handler struct {
	Engine *sizing.Engine
}

// Import reads an uploaded workbook, runs the calculation and returns
// the result envelope. Scalar form fields override the Case sheet so a
// generic segment workbook can be re-run at a different duty.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	in, err := ParseInput(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	applyOverrides(r, &in)

	res, err := h.Engine.Calculate(in)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res.CaseID = uuid.NewString()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// Export runs the calculation for the posted case and streams the
// workbook back as an attachment.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
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

	f, err := Workbook(in, res, h.Engine.Curve(in, 0))
	if err != nil {
		http.Error(w, "Export generation error", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="sizing-case.xlsx"`)
	if err := f.Write(w); err != nil {
		http.Error(w, "Export generation error", http.StatusInternalServerError)
	}
}

func applyOverrides(r *http.Request, in *sizing.Input) {
	if v := r.FormValue("project"); v != "" {
		in.Project = v
	}
	if v := r.FormValue("flow_m3h"); v != "" {
		in.FlowM3H = cast.ToFloat64(v)
	}
	if v := r.FormValue("npsh_required_m"); v != "" {
		in.NPSHRequiredM = cast.ToFloat64(v)
	}
	if v := r.FormValue("npsh_margin_m"); v != "" {
		in.NPSHMarginM = cast.ToFloat64(v)
	}
}
