// Package cases serves the saved sizing runs of an account.
package cases

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/auth"
	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/repo"
)

type Handler struct {
	Repo repo.Repository
}

// List returns the account's saved cases, newest first. The optional
// limit query parameter caps the page size.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.Login(r.Context())
	if !ok || owner == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if h.Repo == nil {
		http.Error(w, "Case storage unavailable", http.StatusServiceUnavailable)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	list, err := h.Repo.ListCases(r.Context(), owner, limit)
	if err != nil {
		log.Printf("cases: list for %s: %v", owner, err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []repo.CaseSummary{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Get returns one saved case with its full stored result.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.Login(r.Context())
	if !ok || owner == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if h.Repo == nil {
		http.Error(w, "Case storage unavailable", http.StatusServiceUnavailable)
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "Case id required", http.StatusBadRequest)
		return
	}

	c, err := h.Repo.CaseByID(r.Context(), owner, id)
	if err != nil {
		log.Printf("cases: get %s for %s: %v", id, owner, err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	if c == nil {
		http.Error(w, "Case not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}
