// Package serve exposes the analysis pipeline over HTTP: an endpoint
// that analyzes URLs on demand, read-only views of the corpus and the
// history database, and Prometheus metrics.
package serve

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pagelens/pagelens/models"
	"github.com/pagelens/pagelens/pkg/analyzer"
	"github.com/pagelens/pagelens/pkg/classifier"
	"github.com/pagelens/pagelens/pkg/corpus"
	"github.com/pagelens/pagelens/pkg/db"
)

// Options carries the loaded resources the server serves from.
type Options struct {
	Config   *models.Config
	Analyzer *analyzer.Analyzer
	Model    *classifier.Model
	Corpus   *corpus.Corpus
	History  *db.DB // nil disables the history endpoints
	Logger   *slog.Logger
}

// Server is the HTTP API around one loaded model and corpus.
type Server struct {
	analyzer *analyzer.Analyzer
	model    *classifier.Model
	corpus   *corpus.Corpus
	history  *db.DB
	server   *http.Server
	mux      *http.ServeMux
	metrics  *metrics
	logger   *slog.Logger
}

// NewServer builds the server and registers its routes.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		analyzer: opts.Analyzer,
		model:    opts.Model,
		corpus:   opts.Corpus,
		history:  opts.History,
		mux:      http.NewServeMux(),
		metrics:  newMetrics(),
		logger:   logger,
	}
	s.registerRoutes()

	cfg := opts.Config
	s.server = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      s.middleware(s.mux),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/analyze", s.handleAnalyze)
	s.mux.HandleFunc("/api/corpus/stats", s.handleCorpusStats)
	s.mux.HandleFunc("/api/corpus/keywords", s.handleCorpusKeywords)
	s.mux.HandleFunc("/api/history", s.handleHistoryList)
	s.mux.HandleFunc("/api/history/", s.handleHistoryShow) // /api/history/{id}
	s.mux.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
}

// Start serves requests until Shutdown or a listener error.
func (s *Server) Start() error {
	s.logger.Info("http api listening", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown drains in-flight requests, then closes the history handle.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http api")
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	if s.history != nil {
		return s.history.Close()
	}
	return nil
}

// Handler returns the middleware-wrapped route table, for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// middleware adds CORS headers, request logging, and request metrics
// around every route.
func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start)

		path := normalizePath(r.URL.Path)
		s.metrics.requestsTotal.WithLabelValues(path, r.Method, strconv.Itoa(rec.status)).Inc()
		s.metrics.requestDuration.WithLabelValues(path).Observe(elapsed.Seconds())

		// Health and metrics scrapes would drown out real traffic.
		if path != "/health" && path != "/metrics" {
			s.logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration_ms", elapsed.Milliseconds())
		}
	})
}

// statusRecorder captures the response code for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// normalizePath collapses ID-bearing paths into one metric label so
// cardinality stays bounded.
func normalizePath(path string) string {
	if strings.HasPrefix(path, "/api/history/") && path != "/api/history/" {
		return "/api/history/{id}"
	}
	return path
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
