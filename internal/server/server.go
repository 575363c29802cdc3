// Package server exposes the roadmap engine over HTTP.
//
// Routes:
//
//	GET  /healthz       liveness probe
//	POST /v1/normalize  raw payload (JSON or plain text) -> normalized modules
//	POST /v1/graph      pipeline options -> snapshot
//	POST /v1/status     snapshot graph + completed -> statuses
//	POST /v1/visibility snapshot graph + collapsed -> visible set
//	GET  /statsz        event counters, when exposed with [Server.ExposeStats]
//
// Normalization results are cached by payload hash; the X-Cache response
// header reports "hit" or "miss".
//
// Errors are returned as {"code": "...", "message": "..."} using the codes
// from pkg/errors.
package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cariskill/roadmap/internal/config"
	"github.com/cariskill/roadmap/pkg/cache"
	"github.com/cariskill/roadmap/pkg/errors"
	"github.com/cariskill/roadmap/pkg/observability"
	"github.com/cariskill/roadmap/pkg/pipeline"
)

const cacheHeader = "X-Cache"

// Server serves engine operations. Handlers share one stateless runner.
type Server struct {
	cfg    *config.Config
	runner *pipeline.Runner
	cache  cache.Cache
	stats  *observability.Stats
	logger *log.Logger
	router chi.Router
}

// New creates a server for cfg. A nil logger discards output.
func New(cfg *config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	s := &Server{
		cfg:    cfg,
		runner: pipeline.NewRunner(logger),
		cache:  newCache(cfg.Server.Cache, logger),
		logger: logger,
	}
	s.router = s.routes()
	return s
}

// newCache picks the backend for cfg. A cache directory that cannot be
// created falls back to the in-process cache.
func newCache(cfg config.CacheConfig, logger *log.Logger) cache.Cache {
	if cfg.TTL <= 0 {
		return cache.NewNullCache()
	}
	if cfg.Dir == "" {
		return cache.NewMemory()
	}
	fc, err := cache.NewFileCache(cfg.Dir)
	if err != nil {
		logger.Warn("Cache directory unavailable, using memory", "dir", cfg.Dir, "error", err)
		return cache.NewMemory()
	}
	return fc
}

// ExposeStats serves st at /statsz. The caller installs st as the
// observability hooks.
func (s *Server) ExposeStats(st *observability.Stats) { s.stats = st }

// Close releases the cache.
func (s *Server) Close() error { return s.cache.Close() }

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Get("/statsz", s.handleStats)
	r.Route("/v1", func(r chi.Router) {
		r.With(middleware.AllowContentType("application/json", "text/plain")).
			Post("/normalize", s.handleNormalize)
		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			r.Post("/graph", s.handleGraph)
			r.Post("/status", s.handleStatus)
			r.Post("/visibility", s.handleVisibility)
		})
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	defer s.Close()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("Shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

// observe logs each request and reports it to the HTTP hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		dur := time.Since(start)

		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), dur)
		s.logger.Debug("Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", dur.Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
