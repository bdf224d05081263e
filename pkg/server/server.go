// Package server exposes the glyphgrid pipeline and viewer sessions over HTTP.
//
// # Routes
//
//	GET    /healthz
//	GET    /render.{format}                  grid from query parameters
//	GET    /specs/{name}/render.{format}     grid file from the spec directory
//	POST   /sessions                         body: grid file JSON
//	GET    /sessions/{id}
//	DELETE /sessions/{id}
//	POST   /sessions/{id}/pointer            body: {type, pointer_id, x, y}
//	PUT    /sessions/{id}/scale              body: {scale}
//	POST   /sessions/{id}/reset
//	GET    /sessions/{id}/render.{format}
//	GET    /sessions/{id}/ws                 websocket pointer stream
//
// Render routes accept theme, ratio, ops and refresh query parameters in
// addition to the grid parameters. Errors are written as
// {"code": ..., "error": ...} with a status derived from the code.
// Request bodies are capped at [httputil.MaxBodyBytes], and grids or scales
// past the pipeline size limits are rejected with INVALID_SIZE.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/glyphgrid/pkg/httputil"
	"github.com/matzehuels/glyphgrid/pkg/pipeline"
	"github.com/matzehuels/glyphgrid/pkg/session"
)

const (
	// DefaultAddr is the listen address of [Server.ListenAndServe].
	DefaultAddr = "localhost:8080"

	janitorInterval = time.Minute
	shutdownTimeout = 10 * time.Second
)

// Server serves renders and viewer sessions.
type Server struct {
	runner   *pipeline.Runner
	store    session.Store
	logger   *log.Logger
	specDir  string
	ttl      time.Duration
	upgrader websocket.Upgrader
	router   chi.Router
}

// Option configures a [Server].
type Option func(*Server)

// WithLogger sets the logger for request errors and lifecycle messages.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// WithSpecDir serves the grid files in dir under /specs/{name}.
func WithSpecDir(dir string) Option { return func(s *Server) { s.specDir = dir } }

// WithSessionTTL sets the idle time before a viewer session expires.
func WithSessionTTL(d time.Duration) Option { return func(s *Server) { s.ttl = d } }

// WithStore replaces the in-memory session store.
func WithStore(st session.Store) Option { return func(s *Server) { s.store = st } }

// New builds a server that renders through runner.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{
		runner: runner,
		logger: log.Default(),
		ttl:    session.DefaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = session.NewMemoryStore()
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestSize(httputil.MaxBodyBytes))
	r.Use(observe)

	r.Get("/healthz", s.handleHealth)
	r.Get("/render.{format}", s.handleRender)
	if s.specDir != "" {
		r.Get("/specs/{name}/render.{format}", s.handleSpecRender)
	}

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Post("/pointer", s.handlePointer)
			r.Put("/scale", s.handleScale)
			r.Post("/reset", s.handleReset)
			r.Get("/render.{format}", s.handleSessionRender)
			r.Get("/ws", s.handleWebSocket)
		})
	})
	return r
}

// ServeHTTP implements [http.Handler].
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.router.ServeHTTP(w, r) }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. Expired sessions are swept in the background meanwhile.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		session.Janitor(ctx, s.store, janitorInterval)
		return nil
	})
	g.Go(func() error {
		s.logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
