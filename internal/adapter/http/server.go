// Package http exposes the published report plus health, readiness, and
// metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReportRefresher regenerates the report when it is stale and reports
// service readiness.
type ReportRefresher interface {
	EnsureFresh(ctx context.Context) error
	CheckReadiness(ctx context.Context) error
}

// Server exposes the report file and operational HTTP endpoints.
type Server struct {
	httpServer *http.Server
	refresher  ReportRefresher
	reportPath string
	logger     *slog.Logger
}

// NewServer creates an HTTP server with report, /healthz, /readyz, and
// /metrics routes.
func NewServer(addr, reportPath string, refresher ReportRefresher, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		refresher:  refresher,
		reportPath: reportPath,
		logger:     logger,
	}

	mux.HandleFunc("GET /{$}", s.handleReport)
	mux.HandleFunc("GET /precios.txt", s.handleReport)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(refresher))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handleReport refreshes the report when stale and serves it. A failed
// refresh still serves the last good report; only a missing file is a 503.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if err := s.refresher.EnsureFresh(r.Context()); err != nil {
		s.logger.Error("report refresh failed", "error", err)
	}

	data, err := os.ReadFile(s.reportPath)
	if err != nil {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("no report available yet\n")) //nolint:errcheck // best-effort error body
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write(data) //nolint:errcheck // client may hang up mid-body
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReportRefresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort health response
}
