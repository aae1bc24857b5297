package sizing

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/auth"
	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/hydraulics"
	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/repo"
)

func newTestHandler() *Handler {
	return &Handler{Engine: NewEngine(hydraulics.DefaultConfig())}
}

func postJSON(t *testing.T, h http.HandlerFunc, v interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/user/sizing/calc", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestCalcHandler(t *testing.T) {
	h := newTestHandler()
	rec := postJSON(t, h.Calc, waterCase())

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	var res Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Status != StatusOK {
		t.Errorf("Status = %q, want ok", res.Status)
	}
	if res.CaseID == "" {
		t.Error("expected a case id on every result")
	}
	if res.HmtM <= 20 || res.HmtM >= 25 {
		t.Errorf("HmtM = %g, want in (20, 25)", res.HmtM)
	}
}

func TestCalcHandlerBadPayload(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/user/sizing/calc",
		strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Calc(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var envelope map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope["status"] != StatusError || envelope["message"] == "" {
		t.Errorf("error envelope malformed: %v", envelope)
	}
}

func TestCalcHandlerRejectsZeroFlow(t *testing.T) {
	in := waterCase()
	in.FlowM3H = 0

	h := newTestHandler()
	rec := postJSON(t, h.Calc, in)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "flow") {
		t.Errorf("message should name the offending field: %s", rec.Body)
	}
}

func TestCurveDataHandler(t *testing.T) {
	h := newTestHandler()
	rec := postJSON(t, h.CurveData, waterCase())

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	var points []CurvePoint
	if err := json.NewDecoder(rec.Body).Decode(&points); err != nil {
		t.Fatalf("decode points: %v", err)
	}
	if len(points) != 100 {
		t.Errorf("expected 100 samples, got %d", len(points))
	}
}

type captureRepo struct {
	stubCases
	saved []repo.Case
}

type stubCases struct{}

func (stubCases) CreateUser(context.Context, string, string, string) (int, error) {
	return 0, nil
}

func (stubCases) GetByLogin(context.Context, string) (int, string, error) {
	return 0, "", nil
}

func (stubCases) CaseByID(context.Context, string, string) (*repo.Case, error) {
	return nil, nil
}

func (stubCases) ListCases(context.Context, string, int) ([]repo.CaseSummary, error) {
	return nil, nil
}

func (c *captureRepo) SaveCase(_ context.Context, cs repo.Case) error {
	c.saved = append(c.saved, cs)
	return nil
}

func TestCalcHandlerSkipsPersistenceWithoutIdentity(t *testing.T) {
	store := &captureRepo{}
	h := newTestHandler()
	h.Repo = store

	// No auth middleware ran, so there is no login in the context and
	// nothing must be written.
	rec := postJSON(t, h.Calc, waterCase())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(store.saved) != 0 {
		t.Errorf("expected no persisted cases, got %d", len(store.saved))
	}
}

func TestCalcHandlerPersistsCase(t *testing.T) {
	store := &captureRepo{}
	h := newTestHandler()
	h.Repo = store

	body, err := json.Marshal(waterCase())
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/user/sizing/calc", bytes.NewReader(body))
	req = req.WithContext(auth.WithIdentity(req.Context(), 7, "alice"))
	rec := httptest.NewRecorder()
	h.Calc(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(store.saved) != 1 {
		t.Fatalf("persisted cases = %d, want 1", len(store.saved))
	}
	saved := store.saved[0]
	if saved.Owner != "alice" {
		t.Errorf("owner = %q", saved.Owner)
	}
	var res Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if saved.ID != res.CaseID {
		t.Errorf("stored id %q != returned id %q", saved.ID, res.CaseID)
	}
	if saved.HmtM != res.HmtM || saved.Status != res.Status {
		t.Errorf("stored summary diverges from the response: %+v", saved)
	}
	var stored Result
	if err := json.Unmarshal(saved.Result, &stored); err != nil {
		t.Fatalf("stored payload is not the result JSON: %v", err)
	}
	if stored.CaseID != res.CaseID {
		t.Errorf("stored payload id = %q", stored.CaseID)
	}
}
