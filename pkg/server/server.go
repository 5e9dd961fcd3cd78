// Package server exposes remote analysis over HTTP.
//
// Routes:
//
//	POST /api/remote/analyze   {"repoUrl": "...", "branch": "..."}
//	GET  /api/remote/history   ?limit=N
//	GET  /healthz
//
// Every /api response uses the same envelope:
//
//	{"success": true, "data": ...}
//	{"success": false, "error": "..."}
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/depscope/pkg/pipeline"
)

// Analyzer runs one remote analysis.
type Analyzer interface {
	Analyze(ctx context.Context, repoURL, branch string) (*pipeline.Result, error)
}

// History lists recorded analyses.
type History interface {
	Recent(ctx context.Context, limit int) ([]*pipeline.Result, error)
}

// Server is the HTTP API.
type Server struct {
	analyzer Analyzer
	history  History
	logger   *log.Logger
	router   chi.Router
}

// New creates a server. A nil history disables the history route's data
// (it answers with an empty list).
func New(analyzer Analyzer, history History, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{analyzer: analyzer, history: history, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/remote", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/history", s.handleHistory)
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
