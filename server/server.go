// Package server exposes the efficiency calculation over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ac_efficiency_calc/config"
)

// Server wires the router, middleware and metrics of the API.
type Server struct {
	cfg       *config.Config
	logger    *slog.Logger
	accessLog io.Writer
	registry  *prometheus.Registry
	metrics   *Metrics
	limiter   *Limiter
}

// New builds a Server. accessLog receives one Apache-style line per request.
func New(cfg *config.Config, logger *slog.Logger, accessLog io.Writer) *Server {
	registry := prometheus.NewRegistry()
	return &Server{
		cfg:       cfg,
		logger:    logger,
		accessLog: accessLog,
		registry:  registry,
		metrics:   NewMetrics(registry),
		limiter:   NewLimiter(cfg.RateLimit),
	}
}

// NewRouter registers all routes.
func (s *Server) NewRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestID)

	r.HandleFunc("/health", s.healthHandler).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(s.limiter.Middleware(s.metrics))
	api.HandleFunc("/efficiency", s.efficiencyHandler).Methods(http.MethodPost)
	api.HandleFunc("/efficiency/manual", s.manualHandler).Methods(http.MethodPost)
	api.HandleFunc("/efficiency/batch", s.batchHandler).Methods(http.MethodPost)

	return r
}

// Handler returns the router wrapped with metrics, access logging and CORS.
func (s *Server) Handler() http.Handler {
	cors := handlers.CORS(
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", requestIDHeader}),
	)
	return cors(handlers.LoggingHandler(s.accessLog, s.metrics.Wrap(s.NewRouter())))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         ":" + s.cfg.Server.Port,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("efficiency API listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down efficiency API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
