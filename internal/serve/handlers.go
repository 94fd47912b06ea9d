package serve

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pagelens/pagelens/internal/common"
	"github.com/pagelens/pagelens/models"
	"github.com/pagelens/pagelens/pkg/db"
)

// handleHealth reports liveness plus the size of the loaded resources,
// so a probe can tell an empty deployment from a healthy one.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":        "ok",
		"corpus_pages":  s.corpus.Len(),
		"model_classes": len(s.model.Classes),
		"history":       s.history != nil,
		"time":          time.Now().UTC(),
	})
}

// handleAnalyze runs the pipeline for one URL. A fetch or extraction
// failure is a domain result, not a transport error: the response is
// still 200 with a failed-status report.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.URL == "" {
		respondError(w, http.StatusBadRequest, "url is required")
		return
	}
	if err := common.ValidateURL(common.NormalizeURL(req.URL)); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Mode != "" {
		if _, err := models.ParseExtractMode(string(req.Mode)); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.TopN < 0 {
		respondError(w, http.StatusBadRequest, "top_n must not be negative")
		return
	}

	start := time.Now()
	report := s.analyzer.Analyze(r.Context(), req)

	quality := string(report.Quality)
	if quality == "" {
		quality = "none"
	}
	s.metrics.analysesTotal.WithLabelValues(report.Status, quality).Inc()
	if report.Failed() {
		s.metrics.failuresTotal.WithLabelValues(report.ErrorType).Inc()
	}
	s.metrics.analysisSeconds.Observe(time.Since(start).Seconds())

	if s.history != nil {
		if err := s.history.InsertReport(report); err != nil {
			s.logger.Warn("failed to record analysis", "url", report.URL, "error", err)
		}
	}

	respondJSON(w, http.StatusOK, report)
}

// handleCorpusStats returns corpus-wide aggregates.
func (s *Server) handleCorpusStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	respondJSON(w, http.StatusOK, s.corpus.Stats())
}

// handleCorpusKeywords returns the most common terms across the corpus.
func (s *Server) handleCorpusKeywords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	top := 25
	if v := r.URL.Query().Get("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "top must be a positive integer")
			return
		}
		top = n
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"keywords": s.corpus.Keywords(top),
	})
}

// handleHistoryList returns recent analyses, newest first.
func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.history == nil {
		respondError(w, http.StatusServiceUnavailable, "history is disabled; set history.path to enable it")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	analyses, err := s.history.ListAnalyses(limit)
	if err != nil {
		s.logger.Error("failed to list analyses", "error", err)
		respondError(w, http.StatusInternalServerError, "database error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"analyses": analyses,
		"count":    len(analyses),
	})
}

// handleHistoryShow returns one stored report by analysis ID.
func (s *Server) handleHistoryShow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.history == nil {
		respondError(w, http.StatusServiceUnavailable, "history is disabled; set history.path to enable it")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/history/")
	if id == "" || strings.Contains(id, "/") {
		respondError(w, http.StatusBadRequest, "analysis id is required")
		return
	}

	report, err := s.history.GetAnalysis(id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondError(w, http.StatusNotFound, "analysis not found")
			return
		}
		s.logger.Error("failed to load analysis", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "database error")
		return
	}

	respondJSON(w, http.StatusOK, report)
}
