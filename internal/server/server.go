// Package server assembles the MCP server: the routing tools that are
// always live plus one MCP tool per catalog entry, dispatched to the
// accounting backend boundary. Transport is stdio by default, streamable
// HTTP behind a flag.
package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/jkaninda/hesabu/internal/catalog"
	"github.com/jkaninda/hesabu/internal/dispatch"
	"github.com/jkaninda/hesabu/internal/observability"
	"github.com/jkaninda/hesabu/internal/router"
)

// Server wraps the MCP server with the routing engine and the dispatch
// registry behind it.
type Server struct {
	mcp      *server.MCPServer
	router   *router.Router
	registry *dispatch.Registry
	logger   *slog.Logger
	obs      *observability.Observability

	httpServer *server.StreamableHTTPServer
}

// New builds the MCP server and registers every tool. The router and the
// registry arrive fully validated; a catalog entry the registry cannot
// resolve is a startup error, not a call-time surprise.
func New(version string, r *router.Router, reg *dispatch.Registry, obs *observability.Observability, logger *slog.Logger) (*Server, error) {
	s := &Server{
		mcp: server.NewMCPServer(
			"hesabu",
			version,
			server.WithToolCapabilities(false),
		),
		router:   r,
		registry: reg,
		logger:   logger,
		obs:      obs,
	}

	s.registerRoutingTools()
	if err := s.registerBusinessTools(); err != nil {
		return nil, fmt.Errorf("registering business tools: %w", err)
	}

	if obs != nil && obs.Health != nil {
		obs.Health.AddCheck("catalog", func(context.Context) error {
			if len(catalog.Entries()) == 0 {
				return fmt.Errorf("empty tool catalog")
			}
			return nil
		})
	}

	logger.Info("mcp server assembled",
		slog.Int("tools", len(catalog.Entries())),
		slog.String("version", version),
	)
	return s, nil
}

// ServeStdio runs the server on stdin/stdout and blocks until the client
// disconnects. Stdout belongs to the transport; all logging goes to stderr.
func (s *Server) ServeStdio() error {
	s.logger.Info("serving mcp over stdio")
	return server.ServeStdio(s.mcp)
}

// ServeHTTP runs the streamable HTTP transport on addr and blocks.
func (s *Server) ServeHTTP(addr string) error {
	s.httpServer = server.NewStreamableHTTPServer(s.mcp)
	s.logger.Info("serving mcp over http", slog.String("addr", addr))
	return s.httpServer.Start(addr)
}

// Shutdown stops the HTTP transport, if one is running.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
