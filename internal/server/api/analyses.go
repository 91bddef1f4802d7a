// Package api provides HTTP API handlers for the swing analysis service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/rohanv/swingsight/internal/analysis"
	"github.com/rohanv/swingsight/internal/pose"
	"github.com/rohanv/swingsight/internal/store"
	"github.com/rohanv/swingsight/internal/swing"
)

// AnalysisHandler handles HTTP requests for analysis resources.
type AnalysisHandler struct {
	store  *store.Store
	engine *analysis.Engine
}

// NewAnalysisHandler creates a new AnalysisHandler with the given store and
// engine.
func NewAnalysisHandler(s *store.Store, e *analysis.Engine) *AnalysisHandler {
	return &AnalysisHandler{store: s, engine: e}
}

// ServeHTTP implements the http.Handler interface and routes requests to
// appropriate methods.
func (h *AnalysisHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/analyses, /api/analyses/{id} or
	// /api/analyses/{id}/reanalyze
	path := strings.TrimPrefix(r.URL.Path, "/api/analyses")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/analyses
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	if id, ok := strings.CutSuffix(path, "/reanalyze"); ok {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.reanalyze(w, r, id)
		return
	}

	// Item endpoint: /api/analyses/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type createAnalysisRequest struct {
	VideoID      string         `json:"video_id"`
	Frames       []pose.Frame   `json:"frames"`
	ClubOverride swing.ClubType `json:"club_override,omitempty"`
}

type reanalyzeRequest struct {
	ClubOverride swing.ClubType `json:"club_override"`
}

type analysisResponse struct {
	ID        string                `json:"id"`
	CreatedAt string                `json:"created_at"`
	Result    *swing.AnalysisResult `json:"result"`
}

type listAnalysesResponse struct {
	Analyses []*store.Summary `json:"analyses"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Analysis to an analysisResponse.
func toResponse(a *store.Analysis) analysisResponse {
	return analysisResponse{
		ID:        a.ID,
		CreatedAt: a.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Result:    a.Result,
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/analyses and returns summaries of all analyses.
func (h *AnalysisHandler) list(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.store.Analyses().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list analyses")
		return
	}

	response := listAnalysesResponse{Analyses: summaries}
	if response.Analyses == nil {
		response.Analyses = []*store.Summary{}
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/analyses/{id} and returns a single analysis.
func (h *AnalysisHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	a, err := h.store.Analyses().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Analysis not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get analysis")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(a))
}

// create handles POST /api/analyses: it runs the analysis pipeline over the
// posted landmark frames and stores the result.
func (h *AnalysisHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.VideoID == "" {
		writeError(w, http.StatusBadRequest, "video_id is required")
		return
	}
	if req.ClubOverride != "" && !validClub(req.ClubOverride) {
		writeError(w, http.StatusBadRequest, "Invalid club_override")
		return
	}

	result := h.engine.Analyze(req.Frames, req.VideoID, analysis.Options{
		ClubTypeOverride: req.ClubOverride,
	})

	a := &store.Analysis{
		ID:      uuid.New().String(),
		VideoID: req.VideoID,
		Result:  result,
		Frames:  req.Frames,
	}
	if err := h.store.Analyses().Create(a); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store analysis")
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(a))
}

// reanalyze handles POST /api/analyses/{id}/reanalyze: it reruns the
// pipeline over a stored analysis's frames, typically with a club override,
// and stores the outcome as a new analysis. The original is left untouched.
func (h *AnalysisHandler) reanalyze(w http.ResponseWriter, r *http.Request, id string) {
	orig, err := h.store.Analyses().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Analysis not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get analysis")
		return
	}

	var req reanalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.ClubOverride != "" && !validClub(req.ClubOverride) {
		writeError(w, http.StatusBadRequest, "Invalid club_override")
		return
	}

	result := h.engine.Analyze(orig.Frames, orig.VideoID, analysis.Options{
		ClubTypeOverride: req.ClubOverride,
	})

	a := &store.Analysis{
		ID:      uuid.New().String(),
		VideoID: orig.VideoID,
		Result:  result,
		Frames:  orig.Frames,
	}
	if err := h.store.Analyses().Create(a); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store analysis")
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(a))
}

// delete handles DELETE /api/analyses/{id} and removes an analysis.
func (h *AnalysisHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Analyses().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Analysis not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete analysis")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// validClub reports whether the value is an accepted club override.
func validClub(c swing.ClubType) bool {
	return c == swing.Driver || c == swing.Iron || c == swing.UnknownClub
}
