// Package ops serves the operational HTTP endpoints: liveness and
// readiness probes plus Prometheus metrics exposition. It is separate from
// the MCP transport so a supervised deployment can probe the process even
// when the server speaks stdio.
package ops

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jkaninda/okapi"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jkaninda/hesabu/internal/config"
	"github.com/jkaninda/hesabu/internal/observability"
)

// Server is the operational HTTP server.
type Server struct {
	cfg    *config.OpsConfig
	obs    *observability.Observability
	logger *slog.Logger

	okapi  *okapi.Okapi
	server *http.Server
}

// HealthResponse is the JSON response for the health endpoints.
type HealthResponse struct {
	Status string `json:"status"`
}

// NewServer creates the operational server. Returns nil when the ops
// section is absent or disabled.
func NewServer(cfg *config.OpsConfig, obs *observability.Observability, logger *slog.Logger) *Server {
	if cfg == nil || !cfg.Enabled {
		return nil
	}
	return &Server{
		cfg:    cfg,
		obs:    obs,
		logger: logger,
		okapi:  okapi.New(),
	}
}

// Start launches the HTTP server and blocks until it exits.
func (s *Server) Start(ctx context.Context) error {
	// Metrics/tracing middleware (applied globally).
	if m := s.obs.MetricsOrNil(); m != nil {
		s.okapi.UseMiddleware(func(next http.Handler) http.Handler {
			return observability.HTTPMetricsMiddleware(m, s.obs.TracerOrNil().Tracer(), next)
		})
	}

	s.okapi.Get("/healthz", s.handleLiveness)
	s.okapi.Get("/readyz", s.handleReadiness)

	if m := s.obs.MetricsOrNil(); m != nil {
		s.okapi.HandleStd("GET", "/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}).ServeHTTP)
	}

	s.server = &http.Server{
		Addr:              s.cfg.Addr(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	s.logger.Info("ops server starting", slog.String("addr", s.cfg.Addr()))
	return s.okapi.StartServer(s.server)
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(_ context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	s.logger.Info("ops server stopping")
	return s.okapi.Shutdown(s.server)
}

// handleLiveness is the liveness probe: the process is up.
func (s *Server) handleLiveness(c *okapi.Context) error {
	return c.OK(&HealthResponse{Status: "ok"})
}

// handleReadiness checks all registered dependencies and returns 200 or 503.
func (s *Server) handleReadiness(c *okapi.Context) error {
	if s.obs == nil || s.obs.Health == nil {
		return c.OK(&HealthResponse{Status: "ok"})
	}

	status := s.obs.Health.CheckReady(c.Context())
	code := http.StatusOK
	if status.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, status)
}
