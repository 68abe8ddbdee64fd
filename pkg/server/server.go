// Package server exposes the seqmap pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz       build info
//	POST /v1/layout     document → layout JSON
//	POST /v1/render     document → SVG, PNG or layout JSON
//	POST /v1/edit       document + edits → edited document
//	POST /v1/notation   span text → span text in another notation
//
// Request documents use the same JSON shape as document files. Errors are
// returned as {"error": CODE, "message": "..."} with a status derived from
// the error code.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/seqmap/pkg/pipeline"
)

const (
	// DefaultMaxBody caps request bodies.
	DefaultMaxBody = 16 << 20

	// DefaultTimeout bounds a single request.
	DefaultTimeout = 60 * time.Second

	shutdownTimeout = 10 * time.Second
)

// Server serves the HTTP API. Create it with New.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	defaults pipeline.Options
	maxBody  int64
	timeout  time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithDefaults sets the options merged under every request's options,
// typically loaded from the config file.
func WithDefaults(opts pipeline.Options) Option {
	return func(s *Server) { s.defaults = opts }
}

// WithMaxBody sets the request body limit in bytes.
func WithMaxBody(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New creates a server running requests through runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{
		runner:  runner,
		logger:  logger,
		maxBody: DefaultMaxBody,
		timeout: DefaultTimeout,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Handler returns the routed API handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(forwardOrigin)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
		r.Post("/edit", s.handleEdit)
		r.Post("/notation", s.handleNotation)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeHTTPError(w, http.StatusNotFound, "NOT_FOUND", "no route for "+r.Method+" "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeHTTPError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" not allowed on "+r.URL.Path)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
