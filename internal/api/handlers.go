package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/Olliwn/truth-engine-sub001/internal/calculation"
	"github.com/Olliwn/truth-engine-sub001/internal/data"
	"github.com/Olliwn/truth-engine-sub001/internal/domain"
	"github.com/Olliwn/truth-engine-sub001/internal/store/sqlite"
)

// Default simulation window for requests that leave it unset.
const (
	defaultStartYear = 1990
	defaultEndYear   = 2060
)

// Handler holds the engine and the optional run store. A nil store
// disables the /api/runs routes with 503 instead of panicking.
type Handler struct {
	Engine *calculation.Engine
	Store  *sqlite.Store
}

// NewHandler creates an API handler.
func NewHandler(engine *calculation.Engine, store *sqlite.Store) *Handler {
	return &Handler{Engine: engine, Store: store}
}

// SimulateRequest is the body of POST /api/simulate.
type SimulateRequest struct {
	Scenario  domain.ScenarioConfig `json:"scenario"`
	StartYear int                   `json:"startYear,omitempty"`
	EndYear   int                   `json:"endYear,omitempty"`

	// Save persists the run summary under SaveName when set.
	Save     bool   `json:"save,omitempty"`
	SaveName string `json:"saveName,omitempty"`
}

// SimulateResponse wraps the result with the id of the saved run, if any.
type SimulateResponse struct {
	Result  *domain.SimulationResult `json:"result"`
	SavedID *int64                   `json:"savedId,omitempty"`
}

// Simulate runs one scenario.
// POST /api/simulate
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	start, end := windowOrDefault(req.StartYear, req.EndYear)
	if start > end {
		writeError(w, http.StatusBadRequest, "startYear is after endYear", nil)
		return
	}

	result, err := h.Engine.SimulateRange(r.Context(), start, end, req.Scenario)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Simulation failed", err)
		return
	}

	resp := SimulateResponse{Result: result}
	if req.Save {
		if h.Store == nil {
			writeError(w, http.StatusServiceUnavailable, "Run store not configured", nil)
			return
		}
		name := req.SaveName
		if name == "" {
			name = req.Scenario.Name
		}
		id, err := h.Store.SaveRun(r.Context(), name, req.Scenario, result)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save run", err)
			return
		}
		resp.SavedID = &id
	}
	writeJSON(w, http.StatusOK, resp)
}

// PyramidRequest is the body of POST /api/pyramid/{year}. An empty body
// runs the default scenario.
type PyramidRequest struct {
	Scenario  domain.ScenarioConfig `json:"scenario"`
	StartYear int                   `json:"startYear,omitempty"`
	EndYear   int                   `json:"endYear,omitempty"`
}

// PyramidResponse is one year's age-by-sex structure.
type PyramidResponse struct {
	Year  int                  `json:"year"`
	Bands []domain.PyramidBand `json:"bands"`
}

// Pyramid slices one year's population pyramid out of a scenario run.
// POST /api/pyramid/{year}
func (h *Handler) Pyramid(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	var req PyramidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	start, end := windowOrDefault(req.StartYear, req.EndYear)
	if year < start || year > end {
		writeError(w, http.StatusBadRequest, "Year outside simulation window", nil)
		return
	}

	bands, err := h.Engine.Pyramid(r.Context(), start, end, req.Scenario, year)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Simulation failed", err)
		return
	}
	writeJSON(w, http.StatusOK, PyramidResponse{Year: year, Bands: bands})
}

// PresetsResponse lists every preset catalog.
type PresetsResponse struct {
	BirthRate    []data.BirthRatePreset   `json:"birthRate"`
	GDPGrowth    []data.RatePreset        `json:"gdpGrowth"`
	InterestRate []data.RatePreset        `json:"interestRate"`
	Unemployment []data.RatePreset        `json:"unemployment"`
	Immigration  []data.ImmigrationPreset `json:"immigration"`
}

// Presets returns the preset catalogs.
// GET /api/presets
func (h *Handler) Presets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, PresetsResponse{
		BirthRate:    data.BirthRatePresets(),
		GDPGrowth:    data.GDPPresets(),
		InterestRate: data.InterestPresets(),
		Unemployment: data.UnemploymentPresets(),
		Immigration:  data.ImmigrationPresets(),
	})
}

// ListRuns returns all saved runs.
// GET /api/runs
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "Run store not configured", nil)
		return
	}
	runs, err := h.Store.ListRuns(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list runs", err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

// GetRun returns one saved run.
// GET /api/runs/{id}
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "Run store not configured", nil)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid run id", err)
		return
	}
	run, err := h.Store.GetRun(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Run not found", err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// DeleteRun removes one saved run.
// DELETE /api/runs/{id}
func (h *Handler) DeleteRun(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "Run store not configured", nil)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid run id", err)
		return
	}
	if err := h.Store.DeleteRun(r.Context(), id); err != nil {
		writeError(w, http.StatusNotFound, "Run not found", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func windowOrDefault(start, end int) (int, int) {
	if start == 0 {
		start = defaultStartYear
	}
	if end == 0 {
		end = defaultEndYear
	}
	return start, end
}

// ErrorResponse is the JSON shape of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
