package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ironsheep/chromakey-mcp/internal/imaging"
)

// isolate points the user config directory at a temp dir and clears the
// environment overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvTolerance, "")
	t.Setenv(EnvColor, "")
	return dir
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	def := Default()
	if cfg.DefaultColor != "white" || cfg.DefaultTolerance != 30 {
		t.Errorf("got %s/%d, want white/30", cfg.DefaultColor, cfg.DefaultTolerance)
	}
	if cfg.OutputSuffix != "_transparent" {
		t.Errorf("OutputSuffix = %q", cfg.OutputSuffix)
	}
	if cfg.Workers != def.Workers || cfg.LogLevel != "info" {
		t.Errorf("workers %d level %s", cfg.Workers, cfg.LogLevel)
	}
	if ttl, _ := cfg.TTL(); ttl != imaging.DefaultCacheTTL {
		t.Errorf("TTL = %v, want %v", ttl, imaging.DefaultCacheTTL)
	}
}

func TestLoad_DefaultPathFile(t *testing.T) {
	dir := isolate(t)
	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(path, dir) {
		t.Skipf("user config dir %s not under %s on this platform", path, dir)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("default_tolerance: 12\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DefaultTolerance != 12 {
		t.Errorf("DefaultTolerance = %d, want 12", cfg.DefaultTolerance)
	}
}

func TestLoad_ExplicitMissing(t *testing.T) {
	dir := isolate(t)
	if _, err := Load(filepath.Join(dir, "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestLoad_File(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, `
default_color: studio
default_tolerance: 45
output_suffix: _cut
workers: 2
cache_ttl: 5m
log_level: debug
colors:
  studio: "#F0F0F0"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DefaultColor != "studio" || cfg.DefaultTolerance != 45 || cfg.OutputSuffix != "_cut" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Workers != 2 || cfg.LogLevel != "debug" {
		t.Errorf("workers %d level %s", cfg.Workers, cfg.LogLevel)
	}
	if ttl, err := cfg.TTL(); err != nil || ttl != 5*time.Minute {
		t.Errorf("TTL = %v, %v; want 5m", ttl, err)
	}

	palette, err := cfg.Palette()
	if err != nil {
		t.Fatal(err)
	}
	if palette["studio"] != (imaging.RGBColor{R: 240, G: 240, B: 240}) {
		t.Errorf("studio = %v", palette["studio"])
	}
	if _, ok := palette["white"]; !ok {
		t.Error("built-in colors missing from palette")
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, "default_color: green\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DefaultColor != "green" || cfg.DefaultTolerance != 30 || cfg.OutputSuffix != "_transparent" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, "default_tolerance: 10\nlog_level: warn\n")
	t.Setenv(EnvTolerance, "55")
	t.Setenv(EnvColor, "#00FF00")
	t.Setenv(EnvLogLevel, "trace")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DefaultTolerance != 55 || cfg.DefaultColor != "#00FF00" || cfg.LogLevel != "trace" {
		t.Errorf("env not applied: %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  string
	}{
		{"bad yaml", "default_tolerance: [", ""},
		{"tolerance too high", "default_tolerance: 101\n", ""},
		{"negative tolerance", "default_tolerance: -1\n", ""},
		{"zero workers", "workers: 0\n", ""},
		{"suffix with separator", "output_suffix: a/b\n", ""},
		{"bad ttl", "cache_ttl: soon\n", ""},
		{"bad palette hex", "colors:\n  studio: nothex\n", ""},
		{"unknown default color", "default_color: plaid\n", ""},
		{"non-numeric env tolerance", "", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			if tt.env != "" {
				t.Setenv(EnvTolerance, tt.env)
			}
			path := writeConfig(t, dir, tt.body)
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestValidateTolerance(t *testing.T) {
	for _, v := range []int{0, 1, 50, 100} {
		if err := ValidateTolerance(v); err != nil {
			t.Errorf("ValidateTolerance(%d) = %v", v, err)
		}
	}
	for _, v := range []int{-1, 101, 300} {
		if err := ValidateTolerance(v); err == nil {
			t.Errorf("ValidateTolerance(%d) should fail", v)
		}
	}
}

func TestTTL_ZeroDisablesExpiry(t *testing.T) {
	cfg := Default()
	cfg.CacheTTL = "0s"
	ttl, err := cfg.TTL()
	if err != nil || ttl != 0 {
		t.Errorf("TTL = %v, %v; want 0", ttl, err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}
