package store

import (
	"encoding/json"
	"sync"

	"github.com/tessro/tapedeck/internal/core"
	"github.com/tessro/tapedeck/internal/logger"
)

// SettingsRepo persists user preferences under KeySettings. Update is
// serialized so concurrent read-modify-writes do not drop each other.
type SettingsRepo struct {
	kv  KV
	log *logger.Logger
	mu  sync.Mutex
}

// NewSettingsRepo wraps kv. A nil log discards output.
func NewSettingsRepo(kv KV, log *logger.Logger) *SettingsRepo {
	if log == nil {
		log = logger.Discard()
	}
	return &SettingsRepo{kv: kv, log: log.WithComponent("settings")}
}

// Load returns the stored settings merged over the defaults. Missing or
// corrupt data yields the defaults.
func (r *SettingsRepo) Load() core.Settings {
	s := core.DefaultSettings()
	raw, ok, err := r.kv.Get(KeySettings)
	if err != nil {
		r.log.Warn("failed to read settings", "error", err)
		return s
	}
	if !ok {
		return s
	}

	// Unmarshal over the defaults so absent fields keep their default value.
	merged := s
	if err := json.Unmarshal([]byte(raw), &merged); err != nil {
		r.log.Warn("stored settings are corrupt, using defaults", "error", err)
		return s
	}
	merged.Volume = core.ClampUnit(merged.Volume)
	if !merged.Theme.Valid() {
		merged.Theme = core.ThemeClassic
	}
	merged.Version = core.SettingsVersion
	return merged
}

// Update applies fn to the current settings and persists the result.
func (r *SettingsRepo) Update(fn func(*core.Settings)) (core.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.Load()
	fn(&s)
	s.Volume = core.ClampUnit(s.Volume)
	s.Version = core.SettingsVersion
	if err := r.Save(s); err != nil {
		return s, err
	}
	return s, nil
}

// Save writes s as-is.
func (r *SettingsRepo) Save(s core.Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.kv.Set(KeySettings, string(data))
}

// Reset restores the defaults.
func (r *SettingsRepo) Reset() (core.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := core.DefaultSettings()
	return s, r.Save(s)
}
