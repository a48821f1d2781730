// Package server exposes address validation and route planning over HTTP/JSON.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/raphaelgruber/pinroute/internal/metrics"
	"github.com/raphaelgruber/pinroute/internal/service"
)

// Server wires the services to HTTP routes.
type Server struct {
	addresses *service.AddressService
	routes    *service.RouteService
	metrics   *metrics.Collector
	logger    *slog.Logger
	timeout   time.Duration
}

// Deps holds the server's collaborators. Metrics may be nil.
type Deps struct {
	Addresses *service.AddressService
	Routes    *service.RouteService
	Metrics   *metrics.Collector
	Logger    *slog.Logger
	// Timeout bounds each request; zero disables it.
	Timeout time.Duration
}

// New creates a server from deps.
func New(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		addresses: deps.Addresses,
		routes:    deps.Routes,
		metrics:   deps.Metrics,
		logger:    logger,
		timeout:   deps.Timeout,
	}
}

// Handler returns the routed handler with logging and timeout middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/address/validate", s.handleValidate)
	mux.HandleFunc("GET /api/address/search/{query}", s.handleSearch)
	mux.HandleFunc("POST /api/routing/calculate", s.handleCalculate)
	mux.HandleFunc("GET /api/routing/hubs", s.handleHubs)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	return LoggingMiddleware(s.logger)(TimeoutMiddleware(s.timeout)(mux))
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: s.timeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP API available", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	s.logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}
