// Package server exposes gauge rendering and live gauges over HTTP.
//
// Routes:
//
//	GET    /healthz
//	GET    /metrics
//	POST   /v1/render?format=svg|json|png|pdf
//	PUT    /v1/gauges/{name}
//	GET    /v1/gauges/{name}?format=svg|json|png|pdf
//	POST   /v1/gauges/{name}/value
//	DELETE /v1/gauges/{name}
//
// A live gauge keeps its chart in memory: posting a value runs the update
// pipeline, so a GET shortly afterwards shows the needle mid-transition.
// Definitions are persisted through the cache so a restarted (or sibling)
// server can restore them on first access.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/gaugechart/pkg/cache"
	"github.com/matzehuels/gaugechart/pkg/pipeline"
)

// Options configures a Server. Zero values select defaults.
type Options struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
	Clock    clockwork.Clock
	Gatherer prometheus.Gatherer

	// RequestTimeout bounds each request, including PNG/PDF conversion.
	RequestTimeout time.Duration

	// ArtifactTTL overrides how long one-shot renders stay cached.
	ArtifactTTL time.Duration
}

// DefaultRequestTimeout is used when Options.RequestTimeout is zero.
const DefaultRequestTimeout = 30 * time.Second

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Server is the HTTP API server.
type Server struct {
	router   chi.Router
	runner   *pipeline.Runner
	gauges   *Registry
	logger   *log.Logger
	gatherer prometheus.Gatherer
	timeout  time.Duration
}

// New creates a server with all routes and middleware.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	runner := pipeline.NewRunner(opts.Cache, opts.Keyer, logger)
	if opts.ArtifactTTL > 0 {
		runner.TTL = opts.ArtifactTTL
	}

	s := &Server{
		runner:   runner,
		gauges:   NewRegistry(opts.Cache, opts.Keyer, opts.Clock, logger),
		logger:   logger,
		gatherer: gatherer,
		timeout:  timeout,
	}
	s.router = s.buildRouter()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Gauges returns the live gauge registry, which the value feed updates.
func (s *Server) Gauges() *Registry { return s.gauges }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// Close releases the runner's cache.
func (s *Server) Close() error { return s.runner.Close() }

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(s.renderID)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)

		r.Route("/gauges", func(r chi.Router) {
			r.Get("/", s.handleListGauges)
			r.Put("/{name}", s.handlePutGauge)
			r.Get("/{name}", s.handleGetGauge)
			r.Delete("/{name}", s.handleDeleteGauge)
			r.Post("/{name}/value", s.handleUpdateGauge)
		})
	})

	return r
}
