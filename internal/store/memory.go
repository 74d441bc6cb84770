package store

import (
	"errors"
	"sync"
	"time"
)

// ErrWriteFailed is returned by Memory when write failures are simulated.
var ErrWriteFailed = errors.New("write failed")

type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is an in-process KV and cache. It backs tests and is the fallback
// when the database cannot be opened.
type Memory struct {
	mu         sync.Mutex
	data       map[string]string
	cache      map[string]cacheEntry
	failWrites bool
	writes     int
}

var _ KV = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		data:  make(map[string]string),
		cache: make(map[string]cacheEntry),
	}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return ErrWriteFailed
	}
	m.data[key] = value
	m.writes++
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return ErrWriteFailed
	}
	delete(m.data, key)
	m.writes++
	return nil
}

// FailWrites makes every subsequent write return ErrWriteFailed.
func (m *Memory) FailWrites(fail bool) {
	m.mu.Lock()
	m.failWrites = fail
	m.mu.Unlock()
}

// Writes returns the number of successful writes.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *Memory) GetCache(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.cache[key]
	if !ok {
		return nil, nil
	}
	if !e.expiresAt.IsZero() && !time.Now().Before(e.expiresAt) {
		delete(m.cache, key)
		return nil, nil
	}
	return e.data, nil
}

func (m *Memory) SetCache(key string, data []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := cacheEntry{data: data}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	m.cache[key] = e
	return nil
}

func (m *Memory) ClearCache() error {
	m.mu.Lock()
	m.cache = make(map[string]cacheEntry)
	m.mu.Unlock()
	return nil
}
