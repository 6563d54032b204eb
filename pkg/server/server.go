// Package server exposes the assessment engine over a small JSON API.
// The engine itself defines no wire protocol; this adapter exists so
// dashboards can call it without linking the library.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/meridian-grc/resilscore/pkg/assess"
	"github.com/meridian-grc/resilscore/pkg/catalog"
	"github.com/meridian-grc/resilscore/pkg/evidence"
	"github.com/meridian-grc/resilscore/pkg/mappings"
	"github.com/meridian-grc/resilscore/pkg/maturity"
	"github.com/meridian-grc/resilscore/pkg/snapshot"
)

type Server struct {
	assessor *assess.Assessor
	graph    *mappings.Graph
	tracker  *snapshot.Tracker
	log      *zap.Logger
}

func New(assessor *assess.Assessor, graph *mappings.Graph, tracker *snapshot.Tracker, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{assessor: assessor, graph: graph, tracker: tracker, log: log}
}

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/assessments", s.handleAssess)
	r.Get("/coverage", s.handleCoverage)
	r.Post("/snapshots", s.handleCreateSnapshot)
	r.Get("/snapshots/latest", s.handleLatestSnapshot)
	r.Get("/trend", s.handleTrend)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type assessRequest struct {
	Framework      catalog.Framework `json:"framework"`
	OrganizationID string            `json:"organization_id"`
	VendorID       string            `json:"vendor_id,omitempty"`
	Evidence       evidence.Bundle   `json:"evidence"`
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	var req assessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Framework == "" || req.OrganizationID == "" {
		writeError(w, http.StatusBadRequest, "framework and organization_id are required")
		return
	}
	res, err := s.assessor.Assess(r.Context(), req.Framework, assess.Input{
		OrganizationID: req.OrganizationID,
		VendorID:       req.VendorID,
		Bundle:         req.Evidence,
	})
	if err != nil {
		s.log.Error("assessment failed", zap.Error(err))
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCoverage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	src := catalog.Framework(q.Get("source"))
	dst := catalog.Framework(q.Get("target"))
	if src == "" || dst == "" {
		writeError(w, http.StatusBadRequest, "source and target are required")
		return
	}
	var pct float64
	if v := q.Get("compliance"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "compliance must be numeric")
			return
		}
		pct = parsed
	}
	if reqID := q.Get("requirement"); reqID != "" {
		writeJSON(w, http.StatusOK, s.graph.TransferredCoverage(src, dst, reqID, pct))
		return
	}
	writeJSON(w, http.StatusOK, s.graph.Overlap(src, dst))
}

type snapshotRequest struct {
	Framework      catalog.Framework `json:"framework"`
	OrganizationID string            `json:"organization_id"`
	VendorID       string            `json:"vendor_id,omitempty"`
	Evidence       evidence.Bundle   `json:"evidence"`
	CreatedBy      string            `json:"created_by,omitempty"`
	Notes          string            `json:"notes,omitempty"`
}

func (s *Server) handleCreateSnapshot(w http.ResponseWriter, r *http.Request) {
	var req snapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := s.assessor.Assess(r.Context(), req.Framework, assess.Input{
		OrganizationID: req.OrganizationID,
		VendorID:       req.VendorID,
		Bundle:         req.Evidence,
	})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	snap, err := s.tracker.Record(r.Context(), res, req.CreatedBy, req.Notes)
	if errors.Is(err, snapshot.ErrSnapshotExists) {
		writeError(w, http.StatusConflict, "a snapshot already exists for this date")
		return
	}
	if err != nil {
		s.log.Error("snapshot write failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "snapshot write failed")
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) handleLatestSnapshot(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	snap, err := s.tracker.Latest(r.Context(), q.Get("organization_id"), q.Get("vendor_id"))
	if errors.Is(err, snapshot.ErrNotFound) {
		writeError(w, http.StatusNotFound, "no snapshot for this key")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "snapshot lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	to := time.Now().UTC()
	from := to.AddDate(0, -6, 0)
	if v := q.Get("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "from must be YYYY-MM-DD")
			return
		}
		from = t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "to must be YYYY-MM-DD")
			return
		}
		to = t
	}
	target := maturity.L3
	if v := q.Get("target"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || !maturity.Level(n).Valid() {
			writeError(w, http.StatusBadRequest, "target must be 0-4")
			return
		}
		target = maturity.Level(n)
	}
	trend, err := s.tracker.Trend(r.Context(), q.Get("organization_id"), q.Get("vendor_id"), from, to, target)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "trend computation failed")
		return
	}
	writeJSON(w, http.StatusOK, trend)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
