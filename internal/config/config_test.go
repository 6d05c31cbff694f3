package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cattree/internal/adapters/commons"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadFile_Missing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RootCategory != DefaultRootCategory || cfg.MaxDepth != DefaultMaxDepth {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestDefault_MatchesClientDefaults(t *testing.T) {
	cfg := Default()
	if cfg.APIURL != commons.DefaultAPIURL {
		t.Errorf("expected api url %q, got %q", commons.DefaultAPIURL, cfg.APIURL)
	}
	if cfg.UserAgent != commons.DefaultUserAgent {
		t.Errorf("expected user agent %q, got %q", commons.DefaultUserAgent, cfg.UserAgent)
	}
}

func TestLoadFile_Values(t *testing.T) {
	path := writeConfig(t, `
root_category = "Shetland"
max_depth = 3
output = "/tmp/shetland.json"
delay = "250ms"
timeout = "5s"
user_agent = "test-agent"
history = false
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.RootCategory != "Shetland" {
		t.Errorf("expected root Shetland, got %q", cfg.RootCategory)
	}
	if cfg.MaxDepth != 3 {
		t.Errorf("expected max depth 3, got %d", cfg.MaxDepth)
	}
	if cfg.Output != "/tmp/shetland.json" {
		t.Errorf("unexpected output %q", cfg.Output)
	}
	if cfg.Delay != 250*time.Millisecond {
		t.Errorf("expected 250ms delay, got %s", cfg.Delay)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %s", cfg.Timeout)
	}
	if cfg.UserAgent != "test-agent" {
		t.Errorf("unexpected user agent %q", cfg.UserAgent)
	}
	if cfg.History {
		t.Error("expected history disabled")
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("unset api_url should keep default, got %q", cfg.APIURL)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"bad toml", "root_category = ", "failed to parse"},
		{"bad delay", `delay = "soon"`, "invalid delay"},
		{"bad timeout", `timeout = "10"`, "invalid timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.content))
			if err == nil {
				t.Fatalf("expected error containing %q", tt.errMsg)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty root", func(c *Config) { c.RootCategory = "  " }, true},
		{"zero depth", func(c *Config) { c.MaxDepth = 0 }, true},
		{"negative delay", func(c *Config) { c.Delay = -time.Second }, true},
		{"zero delay", func(c *Config) { c.Delay = 0 }, false},
		{"empty output", func(c *Config) { c.Output = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `root_category = "Shetland"`)
	t.Setenv("CATTREE_CONFIG", path)
	t.Setenv("CATTREE_ROOT", "Fair Isle")
	t.Setenv("CATTREE_MAX_DEPTH", "2")
	t.Setenv("CATTREE_OUTPUT", "out.json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RootCategory != "Fair Isle" {
		t.Errorf("env should override file, got %q", cfg.RootCategory)
	}
	if cfg.MaxDepth != 2 {
		t.Errorf("expected max depth 2, got %d", cfg.MaxDepth)
	}
	if cfg.Output != "out.json" {
		t.Errorf("expected output out.json, got %q", cfg.Output)
	}
}

func TestLoad_BadEnvDepth(t *testing.T) {
	t.Setenv("CATTREE_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("CATTREE_MAX_DEPTH", "deep")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric CATTREE_MAX_DEPTH")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandPath("~/data/history.db")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != filepath.Join(home, "data", "history.db") {
		t.Errorf("unexpected expansion %q", got)
	}

	got, _ = ExpandPath("/abs/history.db")
	if got != "/abs/history.db" {
		t.Errorf("absolute path should be unchanged, got %q", got)
	}

	got, _ = ExpandPath("~bob/history.db")
	if got != "~bob/history.db" {
		t.Errorf("named home directories are not expanded, got %q", got)
	}
}
