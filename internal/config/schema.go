package config

// Config is the root configuration structure.
type Config struct {
	Catalog  CatalogConfig  `toml:"catalog"`
	Storage  StorageConfig  `toml:"storage"`
	Playback PlaybackConfig `toml:"playback"`
	TUI      TUIConfig      `toml:"tui"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
}

// CatalogConfig holds song provider settings.
type CatalogConfig struct {
	BaseURL           string `toml:"base_url"`
	LyricsFallbackURL string `toml:"lyrics_fallback_url"`
	UserAgent         string `toml:"user_agent"`
	SearchLimit       int    `toml:"search_limit"`
	CacheTTL          int    `toml:"cache_ttl"`
	ImportWorkers     int    `toml:"import_workers"`
	ShareBaseURL      string `toml:"share_base_url"`
}

// StorageConfig holds the location of the local database.
type StorageConfig struct {
	Path string `toml:"path"`
}

// PlaybackConfig holds audio output settings.
type PlaybackConfig struct {
	Volume           int    `toml:"volume"`
	FFmpeg           string `toml:"ffmpeg"`
	AutoPlayOnInsert *bool  `toml:"auto_play_on_insert"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Shell           string `toml:"shell"`
	Theme           string `toml:"theme"`
	RefreshInterval int    `toml:"refresh_interval"`
	Notify          bool   `toml:"notify"`
}

// ServerConfig holds the proxy server settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// AutoPlay reports whether inserting a mix starts playback.
func (c *PlaybackConfig) AutoPlay() bool {
	return c.AutoPlayOnInsert == nil || *c.AutoPlayOnInsert
}
