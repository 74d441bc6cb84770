package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFromAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[tui]
shell = "deck"

[catalog]
search_limit = 20
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.TUI.Shell != "deck" {
		t.Errorf("TUI.Shell = %q, want %q", cfg.TUI.Shell, "deck")
	}
	if cfg.Catalog.SearchLimit != 20 {
		t.Errorf("Catalog.SearchLimit = %d, want 20", cfg.Catalog.SearchLimit)
	}
	if cfg.Catalog.BaseURL != DefaultBaseURL {
		t.Errorf("Catalog.BaseURL = %q, want %q", cfg.Catalog.BaseURL, DefaultBaseURL)
	}
	if cfg.Playback.Volume != 70 {
		t.Errorf("Playback.Volume = %d, want 70", cfg.Playback.Volume)
	}
	if !cfg.Playback.AutoPlay() {
		t.Error("Playback.AutoPlay() = false, want true by default")
	}
}

func TestAutoPlayDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[playback]\nauto_play_on_insert = false\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Playback.AutoPlay() {
		t.Error("Playback.AutoPlay() = true, want false")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TAPEDECK_STORAGE_PATH", "/tmp/elsewhere.db")
	t.Setenv("TAPEDECK_LOG_LEVEL", "debug")
	t.Setenv("TAPEDECK_CATALOG_IMPORT_WORKERS", "9")

	cfg := &Config{}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	if cfg.Storage.Path != "/tmp/elsewhere.db" {
		t.Errorf("Storage.Path = %q", cfg.Storage.Path)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Catalog.ImportWorkers != 9 {
		t.Errorf("Catalog.ImportWorkers = %d, want 9", cfg.Catalog.ImportWorkers)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bad shell", func(c *Config) { c.TUI.Shell = "walkman" }, "invalid shell"},
		{"bad theme", func(c *Config) { c.TUI.Theme = "neon" }, "invalid theme"},
		{"volume", func(c *Config) { c.Playback.Volume = 101 }, "volume must be between"},
		{"scheme", func(c *Config) { c.Catalog.BaseURL = "ftp://example.com" }, "scheme must be http"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
