// Package server exposes the layout pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz            liveness and version
//	GET  /v1/engines         available layout engines
//	POST /v1/validate        204 when the topology is valid
//	POST /v1/layout          positioned diagram JSON
//	POST /v1/flow            canvas flow JSON
//	POST /v1/render/svg      static SVG preview
//
// Every POST takes a topology document as its body. Query parameters
// engine, lenient, refresh, absolute and pairs map onto [pipeline.Options].
// Errors are JSON objects {"code": ..., "message": ...}; caller mistakes
// are reported with status 400.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/clustergraph/pkg/observability"
	"github.com/matzehuels/clustergraph/pkg/pipeline"
)

// DefaultMaxBodyBytes bounds request bodies when MaxBodyBytes is unset.
const DefaultMaxBodyBytes = 8 << 20

// Server serves the pipeline. Its fields must not change once Handler has
// been called.
type Server struct {
	Runner *pipeline.Runner
	Logger *log.Logger
	// Hooks observes every request; nil disables them.
	Hooks        observability.HTTPHooks
	MaxBodyBytes int64
	Version      string
	// Timeout bounds a single request's layout work; zero disables it.
	Timeout time.Duration
}

// New returns a server running r.
func New(r *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{Runner: r, Logger: logger, MaxBodyBytes: DefaultMaxBodyBytes}
}

// Handler returns the routed handler with request ids, panic recovery and
// request logging installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	if s.Timeout > 0 {
		r.Use(middleware.Timeout(s.Timeout))
	}

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/engines", s.handleEngines)
		r.Post("/validate", s.handleValidate)
		r.Post("/layout", s.handleLayout)
		r.Post("/flow", s.handleFlow)
		r.Post("/render/svg", s.handleSVG)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then drains open
// requests for up to ten seconds.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      writeTimeout,
	}
	errc := make(chan error, 1)
	go func() {
		s.Logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.Logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) maxBody() int64 {
	if s.MaxBodyBytes <= 0 {
		return DefaultMaxBodyBytes
	}
	return s.MaxBodyBytes
}
