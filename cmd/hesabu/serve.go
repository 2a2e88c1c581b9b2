package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	goutils "github.com/jkaninda/go-utils"

	"github.com/jkaninda/hesabu/internal/catalog"
	"github.com/jkaninda/hesabu/internal/config"
	"github.com/jkaninda/hesabu/internal/dispatch"
	"github.com/jkaninda/hesabu/internal/observability"
	"github.com/jkaninda/hesabu/internal/ops"
	"github.com/jkaninda/hesabu/internal/router"
	"github.com/jkaninda/hesabu/internal/server"
)

var (
	serveConfigPath string
	serveHTTPAddr   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server (stdio by default, streamable HTTP with --http)",
	RunE:  runServe,
}

func init() {
	// Register flags on both root and serve so that
	// `hesabu -c path` and `hesabu serve -c path` both work.
	for _, cmd := range []*cobra.Command{rootCmd, serveCmd} {
		cmd.Flags().StringVarP(&serveConfigPath, "config", "c", config.DefaultConfigPath(), "path to config file (optional)")
		cmd.Flags().StringVar(&serveHTTPAddr, "http", "", "serve MCP over streamable HTTP on this address instead of stdio (e.g. :8085)")
	}
}

// runServe wires config, logging, observability, routing, and dispatch,
// then blocks on the chosen MCP transport. Stdout belongs to the stdio
// transport; every log line goes to stderr.
func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(goutils.Env("HESABU_CONFIG", serveConfigPath))
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	obs, err := observability.New(cfg.Observability, logger)
	if err != nil {
		return err
	}
	defer obs.Shutdown(context.Background())

	rt, err := router.New(routerParams(cfg.Routing), logger)
	if err != nil {
		return err
	}
	rt.WithObservability(obs.MetricsOrNil(), obs.TracerOrNil())

	reg := dispatch.NewRegistry(dispatch.DefaultHandlers(dispatch.UnconfiguredInvoker{})...)
	if err := reg.Bind(catalog.Entries()); err != nil {
		return fmt.Errorf("binding tool handlers: %w", err)
	}

	srv, err := server.New(version, rt, reg, obs, logger)
	if err != nil {
		return err
	}

	// Signal-aware context.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Operational HTTP server (optional).
	if opsSrv := ops.NewServer(cfg.Ops, obs, logger); opsSrv != nil {
		go func() {
			if err := opsSrv.Start(ctx); err != nil {
				logger.Error("ops server exited", slog.String("error", err.Error()))
			}
		}()
		defer func() { _ = opsSrv.Stop(context.Background()) }()
	}

	if serveHTTPAddr != "" {
		errCh := make(chan error, 1)
		go func() { errCh <- srv.ServeHTTP(serveHTTPAddr) }()
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		case err := <-errCh:
			return err
		}
	}
	return srv.ServeStdio()
}

// routerParams maps the config section onto the router's tunables. Zero
// values keep the preserved defaults.
func routerParams(rc config.RoutingConfig) router.Params {
	return router.Params{
		TopN:              rc.TopN,
		MinKeywords:       rc.MinKeywords,
		FuzzyThreshold:    rc.FuzzyThreshold,
		NameOverlapWeight: rc.NameOverlapWeight,
		ActionVerbBonus:   rc.ActionVerbBonus,
	}
}
