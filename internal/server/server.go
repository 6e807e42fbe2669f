package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/schedgrid/pkg/cache"
	"github.com/matzehuels/schedgrid/pkg/errors"
	"github.com/matzehuels/schedgrid/pkg/pipeline"
	"github.com/matzehuels/schedgrid/pkg/storage"
)

const (
	// DefaultAddr is the listen address used when Config.Addr is empty.
	DefaultAddr = ":8080"

	// maxBodyBytes caps schedule uploads.
	maxBodyBytes = 4 << 20

	shutdownTimeout = 10 * time.Second
)

// Config configures a Server.
type Config struct {
	Addr   string
	Store  storage.Store
	Cache  cache.Cache // nil disables artifact caching
	Logger *log.Logger

	// Defaults seeds every request's pipeline options. Query parameters
	// override the selection fields.
	Defaults pipeline.Options
}

// Server serves the HTTP API.
type Server struct {
	addr     string
	store    storage.Store
	runner   *pipeline.Runner
	logger   *log.Logger
	defaults pipeline.Options
	router   chi.Router
}

// New validates cfg and builds the router.
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "server requires an event store")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	defaults := cfg.Defaults
	if err := defaults.ValidateForLayout(); err != nil {
		return nil, err
	}
	// Requests log through the runner's logger.
	defaults.Logger = nil

	s := &Server{
		addr:     cfg.Addr,
		store:    cfg.Store,
		runner:   pipeline.NewRunner(cfg.Store, cfg.Cache, nil, cfg.Logger),
		logger:   cfg.Logger,
		defaults: defaults,
	}
	if s.addr == "" {
		s.addr = DefaultAddr
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(serverHeader)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/events", s.handleListEvents)
		r.Route("/events/{eventID}", func(r chi.Router) {
			r.Get("/", s.handleGetEvent)
			r.Put("/", s.handlePutEvent)
			r.Delete("/", s.handleDeleteEvent)
			r.Get("/days", s.handleDays)
			r.Get("/grid", s.handleEventGrid)
		})
		r.Post("/grid", s.handleAdHocGrid)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})
	return r
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Addr returns the listen address.
func (s *Server) Addr() string { return s.addr }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", s.addr)

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Close releases the store and cache.
func (s *Server) Close() error { return s.runner.Close() }
