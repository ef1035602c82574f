// Package httpserver assembles the storefront router and its middleware stack.
package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dejobratic/tomoca/internal/httpx"
)

// RouteRegistrar is implemented by every handler group.
type RouteRegistrar interface {
	Routes(r chi.Router)
}

// Config holds what the router needs.
type Config struct {
	Logger *slog.Logger
	// Metrics is recorded per route pattern and exported over OTLP only.
	Metrics *Metrics
	// Ready reports whether the snapshot store can serve. Nil means always ready.
	Ready  func(ctx context.Context) error
	Groups []RouteRegistrar
}

// NewRouter mounts every group under /v1 behind the middleware stack.
func NewRouter(cfg Config) http.Handler {
	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(WithLogging(cfg.Logger))
	router.Use(WithRecovery(cfg.Logger))
	if cfg.Metrics != nil {
		router.Use(WithMetrics(cfg.Metrics))
	}

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if cfg.Ready != nil {
			if err := cfg.Ready(r.Context()); err != nil {
				httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "error": err.Error()})
				return
			}
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	router.Route("/v1", func(r chi.Router) {
		for _, group := range cfg.Groups {
			group.Routes(r)
		}
	})

	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteError(w, http.StatusNotFound, "not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return router
}

// NewServer wraps handler with the service timeouts.
func NewServer(port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
