// Package config handles loading and validating Hesabu configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	goutils "github.com/jkaninda/go-utils"
	"gopkg.in/yaml.v3"
)

func init() {
	// Load .env file if it exists
	_ = godotenv.Load()
}

// Config is the root configuration for Hesabu. The config file is
// optional; a missing file yields the defaults, and individual values can
// be overridden through HESABU_* environment variables.
type Config struct {
	LogLevel      string               `json:"log_level,omitempty" yaml:"log_level,omitempty"`         // "debug", "info", "warn", "error". Default: "info". Override: HESABU_LOG_LEVEL env var.
	Routing       RoutingConfig        `json:"routing" yaml:"routing"`                                 // Routing tunables; zero values fall back to preserved defaults.
	Observability *ObservabilityConfig `json:"observability,omitempty" yaml:"observability,omitempty"` // nil = observability disabled
	Ops           *OpsConfig           `json:"ops,omitempty" yaml:"ops,omitempty"`                     // nil = operational HTTP server disabled
}

// RoutingConfig exposes the routing engine's tunables. Every field
// defaults to the preserved constant when zero; these values were chosen
// empirically and must not be retuned silently.
type RoutingConfig struct {
	TopN              int     `json:"top_n" yaml:"top_n"`                             // Suggestions kept after ranking. Default: 5.
	MinKeywords       int     `json:"min_keywords" yaml:"min_keywords"`               // Recognized keywords below which an unmatched query asks for clarification. Default: 2.
	FuzzyThreshold    int     `json:"fuzzy_threshold" yaml:"fuzzy_threshold"`         // Minimum 0-100 similarity for typo recovery. Default: 80.
	NameOverlapWeight float64 `json:"name_overlap_weight" yaml:"name_overlap_weight"` // Score per query keyword found in the tool name. Default: 0.5.
	ActionVerbBonus   float64 `json:"action_verb_bonus" yaml:"action_verb_bonus"`     // One-time bonus for a verb matching the tool-name suffix. Default: 0.5.
}

// ObservabilityConfig configures metrics and tracing.
// When nil, all observability features are disabled with zero overhead.
type ObservabilityConfig struct {
	Metrics *MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Tracing *TracingConfig `json:"tracing,omitempty" yaml:"tracing,omitempty"`
}

// MetricsConfig configures Prometheus metrics exposition.
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path"` // Default: "/metrics"
}

// MetricsPath returns the exposition path with a default of "/metrics".
func (m *MetricsConfig) MetricsPath() string {
	if m != nil && m.Path != "" {
		return m.Path
	}
	return "/metrics"
}

// TracingConfig configures OpenTelemetry distributed tracing.
type TracingConfig struct {
	Enabled     bool    `json:"enabled" yaml:"enabled"`
	Endpoint    string  `json:"endpoint" yaml:"endpoint"`         // OTLP endpoint, e.g. "localhost:4317". Override: HESABU_OTLP_ENDPOINT env var.
	Protocol    string  `json:"protocol" yaml:"protocol"`         // "grpc" or "http". Default: "grpc"
	ServiceName string  `json:"service_name" yaml:"service_name"` // Default: "hesabu"
	SampleRate  float64 `json:"sample_rate" yaml:"sample_rate"`   // 0.0–1.0. Default: 1.0
	Insecure    bool    `json:"insecure" yaml:"insecure"`         // Skip TLS for dev
}

// OpsConfig configures the operational HTTP server serving health probes
// and the metrics endpoint. It exists so a supervised deployment can probe
// the process even when the MCP transport is stdio.
type OpsConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	ListenAddr string `json:"listen_addr" yaml:"listen_addr"` // Default: ":8086". Override: HESABU_OPS_ADDR env var.
}

// Addr returns the listen address with a default of ":8086".
func (o *OpsConfig) Addr() string {
	if o != nil && o.ListenAddr != "" {
		return o.ListenAddr
	}
	return ":8086"
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	return "config.yaml"
}

// Load reads a YAML config file and returns a validated Config. A missing
// file is not an error: the defaults apply, so the server runs with no
// configuration at all. Environment variables take precedence over file
// values.
func Load(path string) (*Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("resolving config path %s: %w", path, err)
	}

	var cfg Config
	data, err := os.ReadFile(resolved)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", resolved, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", resolved, err)
		}
	}

	// Environment variable overrides — env vars take precedence over config values.
	cfg.LogLevel = goutils.Env("HESABU_LOG_LEVEL", cfg.LogLevel)
	if addr := os.Getenv("HESABU_OPS_ADDR"); addr != "" {
		if cfg.Ops == nil {
			cfg.Ops = &OpsConfig{Enabled: true}
		}
		cfg.Ops.ListenAddr = addr
	}
	if ep := os.Getenv("HESABU_OTLP_ENDPOINT"); ep != "" {
		if cfg.Observability == nil {
			cfg.Observability = &ObservabilityConfig{}
		}
		if cfg.Observability.Tracing == nil {
			cfg.Observability.Tracing = &TracingConfig{Enabled: true}
		}
		cfg.Observability.Tracing.Endpoint = ep
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// resolvePath expands ~ to the user home directory and returns an absolute path.
func resolvePath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return filepath.Abs(path)
}

// SlogLevel maps the configured log level to a slog.Level, defaulting to Info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q is not supported (use debug, info, warn, or error)", c.LogLevel)
	}
	if c.Routing.TopN < 0 {
		return fmt.Errorf("routing.top_n must not be negative")
	}
	if c.Routing.MinKeywords < 0 {
		return fmt.Errorf("routing.min_keywords must not be negative")
	}
	if c.Routing.FuzzyThreshold < 0 || c.Routing.FuzzyThreshold > 100 {
		return fmt.Errorf("routing.fuzzy_threshold must be between 0 and 100")
	}
	if c.Routing.NameOverlapWeight < 0 {
		return fmt.Errorf("routing.name_overlap_weight must not be negative")
	}
	if c.Routing.ActionVerbBonus < 0 {
		return fmt.Errorf("routing.action_verb_bonus must not be negative")
	}
	if t := tracingOf(c); t != nil && t.Enabled {
		if t.Endpoint == "" {
			return fmt.Errorf("observability.tracing.endpoint is required when tracing is enabled")
		}
		switch t.Protocol {
		case "", "grpc", "http":
		default:
			return fmt.Errorf("observability.tracing.protocol %q is not supported (use grpc or http)", t.Protocol)
		}
		if t.SampleRate < 0 || t.SampleRate > 1 {
			return fmt.Errorf("observability.tracing.sample_rate must be between 0.0 and 1.0")
		}
	}
	return nil
}

func tracingOf(c *Config) *TracingConfig {
	if c.Observability == nil {
		return nil
	}
	return c.Observability.Tracing
}
