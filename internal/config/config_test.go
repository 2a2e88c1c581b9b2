package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Observability != nil {
		t.Error("observability should be nil by default")
	}
	if cfg.Ops != nil {
		t.Error("ops should be nil by default")
	}
	if cfg.SlogLevel() != slog.LevelInfo {
		t.Errorf("default level = %v, want info", cfg.SlogLevel())
	}
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
routing:
  top_n: 3
  fuzzy_threshold: 90
observability:
  metrics:
    enabled: true
ops:
  enabled: true
  listen_addr: ":9099"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("level = %v, want debug", cfg.SlogLevel())
	}
	if cfg.Routing.TopN != 3 {
		t.Errorf("top_n = %d, want 3", cfg.Routing.TopN)
	}
	if cfg.Routing.FuzzyThreshold != 90 {
		t.Errorf("fuzzy_threshold = %d, want 90", cfg.Routing.FuzzyThreshold)
	}
	if cfg.Observability == nil || cfg.Observability.Metrics == nil || !cfg.Observability.Metrics.Enabled {
		t.Error("metrics should be enabled")
	}
	if got := cfg.Ops.Addr(); got != ":9099" {
		t.Errorf("ops addr = %q, want :9099", got)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HESABU_LOG_LEVEL", "warn")
	t.Setenv("HESABU_OPS_ADDR", ":7007")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SlogLevel() != slog.LevelWarn {
		t.Errorf("level = %v, want warn", cfg.SlogLevel())
	}
	if cfg.Ops == nil || !cfg.Ops.Enabled {
		t.Fatal("HESABU_OPS_ADDR should enable the ops server")
	}
	if cfg.Ops.Addr() != ":7007" {
		t.Errorf("ops addr = %q, want :7007", cfg.Ops.Addr())
	}
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad log level", "log_level: loud", "log_level"},
		{"negative top_n", "routing:\n  top_n: -1", "top_n"},
		{"threshold over 100", "routing:\n  fuzzy_threshold: 150", "fuzzy_threshold"},
		{"tracing without endpoint", "observability:\n  tracing:\n    enabled: true", "endpoint"},
		{"bad protocol", "observability:\n  tracing:\n    enabled: true\n    endpoint: localhost:4317\n    protocol: udp", "protocol"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestOpsAddrDefault(t *testing.T) {
	var o *OpsConfig
	if got := o.Addr(); got != ":8086" {
		t.Errorf("nil ops addr = %q, want :8086", got)
	}
	if got := (&OpsConfig{}).Addr(); got != ":8086" {
		t.Errorf("empty ops addr = %q, want :8086", got)
	}
}
