package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	goutils "github.com/jkaninda/go-utils"

	"github.com/jkaninda/hesabu/internal/config"
	"github.com/jkaninda/hesabu/internal/router"
)

var (
	routeConfigPath string
	routeToday      string
	routePretty     bool
)

var routeCmd = &cobra.Command{
	Use:   "route <query>",
	Short: "Route one query and print the result as JSON (table-authoring debug loop)",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoute,
}

func init() {
	routeCmd.Flags().StringVarP(&routeConfigPath, "config", "c", config.DefaultConfigPath(), "path to config file (optional)")
	routeCmd.Flags().StringVar(&routeToday, "today", "", "reference day as YYYY-MM-DD (default: now)")
	routeCmd.Flags().BoolVar(&routePretty, "pretty", false, "indent the JSON output")
}

// runRoute performs one routing pass and prints the result to stdout.
// It never touches the accounting backend.
func runRoute(_ *cobra.Command, args []string) error {
	cfg, err := config.Load(goutils.Env("HESABU_CONFIG", routeConfigPath))
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn, // Keep the debug loop's stderr quiet.
	}))

	rt, err := router.New(routerParams(cfg.Routing), logger)
	if err != nil {
		return err
	}

	today := time.Now()
	if routeToday != "" {
		today, err = time.Parse("2006-01-02", routeToday)
		if err != nil {
			return fmt.Errorf("parsing --today: %w", err)
		}
	}

	res := rt.RouteAt(context.Background(), args[0], today)

	var out []byte
	if routePretty {
		out, err = json.MarshalIndent(res, "", "  ")
	} else {
		out, err = json.Marshal(res)
	}
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
