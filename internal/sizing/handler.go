package sizing

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/auth"
	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/repo"
)

// Handler exposes the engine over HTTP. Repo may be nil; results are
// then returned without being persisted.
type Handler struct {
	Engine *Engine
	Repo   repo.Repository
}

// writeError emits the error envelope the API promises on every
// non-2xx response.
func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  StatusError,
		"message": msg,
	})
}

// Calc runs a full sizing and returns the result envelope. Impeditive
// findings come back inside a 200: the request was well-formed, the
// design is what's broken.
func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	res, err := h.Engine.Calculate(in)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res.CaseID = uuid.NewString()
	h.persist(r, res)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// CurveData returns the sampled system curve as JSON.
func (h *Handler) CurveData(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	points := h.Engine.Curve(in, 0)
	if points == nil {
		writeError(w, http.StatusBadRequest, "flow and at least one destination required")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(points)
}

// persist saves the finished case for the authenticated user. Best
// effort: a storage failure is logged, never surfaced.
func (h *Handler) persist(r *http.Request, res *Result) {
	if h.Repo == nil {
		return
	}
	owner, ok := auth.Login(r.Context())
	if !ok {
		return
	}
	payload, err := json.Marshal(res)
	if err != nil {
		log.Printf("sizing: marshal case %s: %v", res.CaseID, err)
		return
	}
	c := repo.Case{
		ID:        res.CaseID,
		Owner:     owner,
		Project:   res.Project,
		Status:    res.Status,
		FlowM3H:   res.FlowM3H,
		HmtM:      res.HmtM,
		PowerKW:   res.PowerKW,
		Result:    payload,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Repo.SaveCase(r.Context(), c); err != nil {
		log.Printf("sizing: save case %s: %v", res.CaseID, err)
	}
}
