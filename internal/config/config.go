package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.tapedeckrc, $XDG_CONFIG_HOME/tapedeck/config.toml, ~/.config/tapedeck/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	// Try loading from file
	path := findConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Path returns the config file that Load would read, or "" if none exists.
func Path() string {
	return findConfigFile()
}

// findConfigFile returns the first existing config file path.
func findConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	paths := []string{
		filepath.Join(home, ".tapedeckrc"),
	}

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	paths = append(paths, filepath.Join(xdgConfig, "tapedeck", "config.toml"))

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to the config.
// A .env file in the working directory is read first; variables already set
// in the environment win over it.
func applyEnvOverrides(cfg *Config) {
	_ = godotenv.Load()

	// Catalog
	if v := os.Getenv("TAPEDECK_CATALOG_BASE_URL"); v != "" {
		cfg.Catalog.BaseURL = v
	}
	if v := os.Getenv("TAPEDECK_CATALOG_LYRICS_FALLBACK_URL"); v != "" {
		cfg.Catalog.LyricsFallbackURL = v
	}
	if v := os.Getenv("TAPEDECK_CATALOG_CACHE_TTL"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Catalog.CacheTTL = i
		}
	}
	if v := os.Getenv("TAPEDECK_CATALOG_IMPORT_WORKERS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Catalog.ImportWorkers = i
		}
	}

	// Storage
	if v := os.Getenv("TAPEDECK_STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}

	// Playback
	if v := os.Getenv("TAPEDECK_PLAYBACK_FFMPEG"); v != "" {
		cfg.Playback.FFmpeg = v
	}
	if v := os.Getenv("TAPEDECK_PLAYBACK_VOLUME"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Playback.Volume = i
		}
	}

	// TUI
	if v := os.Getenv("TAPEDECK_TUI_SHELL"); v != "" {
		cfg.TUI.Shell = v
	}
	if v := os.Getenv("TAPEDECK_TUI_THEME"); v != "" {
		cfg.TUI.Theme = v
	}
	if v := os.Getenv("TAPEDECK_TUI_REFRESH_INTERVAL"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.TUI.RefreshInterval = i
		}
	}

	// Server
	if v := os.Getenv("TAPEDECK_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}

	// Log
	if v := os.Getenv("TAPEDECK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TAPEDECK_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("TAPEDECK_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
