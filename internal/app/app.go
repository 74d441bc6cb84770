// Package app builds the object graph shared by the CLI, the shells and the
// proxy server.
package app

import (
	"context"
	"time"

	"github.com/tessro/tapedeck/internal/audio"
	"github.com/tessro/tapedeck/internal/catalog"
	"github.com/tessro/tapedeck/internal/config"
	"github.com/tessro/tapedeck/internal/core"
	"github.com/tessro/tapedeck/internal/library"
	"github.com/tessro/tapedeck/internal/logger"
	"github.com/tessro/tapedeck/internal/lrclib"
	"github.com/tessro/tapedeck/internal/playback"
	"github.com/tessro/tapedeck/internal/saavn"
	"github.com/tessro/tapedeck/internal/store"
)

// Backend is the durable key-value store plus the catalog cache.
type Backend interface {
	store.KV
	catalog.Cache
}

// App is the explicit context threaded through every surface.
type App struct {
	Config    *config.Config
	Logger    *logger.Logger
	Store     Backend
	Settings  *store.SettingsRepo
	History   *store.HistoryRepo
	Library   *library.Store
	Saavn     *saavn.Client
	Lyrics    *lrclib.Client
	Catalog   *catalog.Client
	Engine    *playback.Engine
	Transport core.Transport

	db *store.DB
}

// Option customizes New.
type Option func(*options)

type options struct {
	backend   Backend
	transport core.Transport
}

// WithBackend replaces the sqlite store, e.g. with store.NewMemory().
func WithBackend(b Backend) Option {
	return func(o *options) { o.backend = b }
}

// WithTransport replaces the ffmpeg audio transport.
func WithTransport(t core.Transport) Option {
	return func(o *options) { o.transport = t }
}

// New builds the application from cfg. Storage failures fall back to an
// in-memory store and are logged.
func New(cfg *config.Config, log *logger.Logger, opts ...Option) *App {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if log == nil {
		log = logger.Discard()
	}

	a := &App{Config: cfg, Logger: log}

	a.Store = o.backend
	if a.Store == nil {
		db, err := store.Open(cfg.Storage.Path)
		if err != nil {
			log.Error("storage unavailable, changes will not persist", "path", cfg.Storage.Path, "error", err)
			a.Store = store.NewMemory()
		} else {
			a.db = db
			a.Store = db
		}
	}

	a.Settings = store.NewSettingsRepo(a.Store, log)
	a.History = store.NewHistoryRepo(a.Store)
	a.seedSettings()
	a.Library = library.New(a.Store, log)

	a.Saavn = saavn.New(cfg.Catalog.BaseURL,
		saavn.WithUserAgent(cfg.Catalog.UserAgent),
		saavn.WithLogger(log),
	)
	a.Lyrics = lrclib.New(cfg.Catalog.LyricsFallbackURL, log)

	var provider catalog.Provider = catalog.NewSaavnProvider(a.Saavn, a.Lyrics, cfg.Catalog.SearchLimit, log)
	if cfg.Catalog.CacheTTL > 0 {
		provider = catalog.NewCachedProvider(provider, a.Store, time.Duration(cfg.Catalog.CacheTTL)*time.Second)
	}
	a.Catalog = catalog.New(provider, log, cfg.Catalog.ImportWorkers)

	a.Transport = o.transport
	if a.Transport == nil {
		a.Transport = audio.New(cfg.Playback.FFmpeg, log)
	}
	a.Engine = playback.New(a.Library, a.Transport, a.Catalog, a.Settings, log,
		playback.Options{AutoPlay: cfg.Playback.AutoPlay()})

	return a
}

// seedSettings writes configured defaults the first time settings are
// created. Persisted settings always win afterwards.
func (a *App) seedSettings() {
	if _, ok, err := a.Store.Get(store.KeySettings); ok || err != nil {
		return
	}
	theme := core.Theme(a.Config.TUI.Theme)
	if _, err := a.Settings.Update(func(s *core.Settings) {
		s.Volume = core.ClampUnit(float64(a.Config.Playback.Volume) / 100)
		if theme.Valid() {
			s.Theme = theme
		}
	}); err != nil {
		a.Logger.Warn("failed to seed settings", "error", err)
	}
}

// ImportShared decodes a share link and imports it into the library.
func (a *App) ImportShared(ctx context.Context, link string) (library.ShareResult, error) {
	payload, err := library.DecodeShare(link)
	if err != nil {
		return library.ShareResult{}, err
	}
	return a.Library.ImportShared(ctx, payload, a.Catalog)
}

// ShareURL is the share link of mix under the configured base URL.
func (a *App) ShareURL(mix core.Mix) string {
	return library.ShareURL(a.Config.Catalog.ShareBaseURL, mix)
}

// Close stops playback and releases storage.
func (a *App) Close() error {
	a.Engine.Close()
	if a.db != nil {
		if pruned, err := a.db.PruneCache(); err == nil && pruned > 0 {
			a.Logger.Debug("pruned catalog cache", "rows", pruned)
		}
		return a.db.Close()
	}
	return nil
}
