// Package server exposes the proxy over HTTP. It is thin glue: every
// handler shapes JSON in and out of the backend service, which in turn
// borrows connections from the pool.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/DoubleNemesis/mongo-test/backend"
)

// Runner executes a proxy request; implemented by backend.Service and
// by fakes in tests.
type Runner interface {
	Run(ctx context.Context, req *backend.Request) (any, error)
}

// Server routes proxy traffic to a Runner.
type Server struct {
	run Runner
	log zerolog.Logger
}

// Options configures the HTTP surface.
type Options struct {
	// AllowedOrigins for CORS; empty means allow any origin.
	AllowedOrigins []string

	// Registry serves /metrics when non-nil.
	Registry *prometheus.Registry
}

// New builds the HTTP handler: health check, the /mongo/{op} family,
// optional /metrics, CORS and request logging.
func New(run Runner, log zerolog.Logger, opt Options) http.Handler {
	s := &Server{run: run, log: log}

	origins := opt.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(s.logRequests)

	r.Get("/health", s.handleHealth)
	r.Post("/mongo/{op}", s.handleMongo)
	if opt.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opt.Registry, promhttp.HandlerOpts{}))
	}
	return r
}

// logRequests emits one structured line per request.
// Bodies are never logged: they carry secret-bearing connection URIs.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.status).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
