package config

import (
	"os"
	"path/filepath"
)

const (
	DefaultBaseURL           = "https://www.jiosaavn.com/api.php"
	DefaultLyricsFallbackURL = "https://lrclib.net/api/search"
	DefaultUserAgent         = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	DefaultShareBaseURL      = "https://tapedeck.app/"
)

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	autoPlay := true
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:           DefaultBaseURL,
			LyricsFallbackURL: DefaultLyricsFallbackURL,
			UserAgent:         DefaultUserAgent,
			SearchLimit:       60,
			CacheTTL:          86400,
			ImportWorkers:     4,
			ShareBaseURL:      DefaultShareBaseURL,
		},
		Storage: StorageConfig{
			Path: defaultStoragePath(),
		},
		Playback: PlaybackConfig{
			Volume:           70,
			FFmpeg:           "ffmpeg",
			AutoPlayOnInsert: &autoPlay,
		},
		TUI: TUIConfig{
			Shell:           "pod",
			Theme:           "classic",
			RefreshInterval: 500,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8787",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Catalog
	if c.Catalog.BaseURL == "" {
		c.Catalog.BaseURL = d.Catalog.BaseURL
	}
	if c.Catalog.LyricsFallbackURL == "" {
		c.Catalog.LyricsFallbackURL = d.Catalog.LyricsFallbackURL
	}
	if c.Catalog.UserAgent == "" {
		c.Catalog.UserAgent = d.Catalog.UserAgent
	}
	if c.Catalog.SearchLimit == 0 {
		c.Catalog.SearchLimit = d.Catalog.SearchLimit
	}
	if c.Catalog.ImportWorkers == 0 {
		c.Catalog.ImportWorkers = d.Catalog.ImportWorkers
	}
	if c.Catalog.ShareBaseURL == "" {
		c.Catalog.ShareBaseURL = d.Catalog.ShareBaseURL
	}

	// Storage
	if c.Storage.Path == "" {
		c.Storage.Path = d.Storage.Path
	}

	// Playback
	if c.Playback.Volume == 0 {
		c.Playback.Volume = d.Playback.Volume
	}
	if c.Playback.FFmpeg == "" {
		c.Playback.FFmpeg = d.Playback.FFmpeg
	}
	if c.Playback.AutoPlayOnInsert == nil {
		c.Playback.AutoPlayOnInsert = d.Playback.AutoPlayOnInsert
	}

	// TUI
	if c.TUI.Shell == "" {
		c.TUI.Shell = d.TUI.Shell
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = d.TUI.Theme
	}
	if c.TUI.RefreshInterval == 0 {
		c.TUI.RefreshInterval = d.TUI.RefreshInterval
	}

	// Server
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
}

// defaultStoragePath returns $XDG_DATA_HOME/tapedeck/tapedeck.db.
func defaultStoragePath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "tapedeck.db"
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "tapedeck", "tapedeck.db")
}
