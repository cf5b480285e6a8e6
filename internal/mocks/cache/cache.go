package cache

// Package cache provides an in-memory CacheRepository fake for unit tests.

import (
	"context"
	"sync"
	"time"

	"github.com/launchpath/lp-gateway/internal/ports"
)

var _ ports.CacheRepository = (*MemoryCacheRepo)(nil)

// MemoryCacheRepo is a map-backed cache repository. TTLs are recorded but
// never enforced; tests that care about expiry should inspect TTLs directly.
type MemoryCacheRepo struct {
	mu      sync.RWMutex
	entries map[string][]byte
	ttls    map[string]time.Duration

	// Err, when set, is returned from every operation. Use it to simulate a
	// cache outage.
	Err error
}

func NewMemoryCacheRepo() *MemoryCacheRepo {
	return &MemoryCacheRepo{
		entries: make(map[string][]byte),
		ttls:    make(map[string]time.Duration),
	}
}

func (m *MemoryCacheRepo) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = append([]byte(nil), value...)
	m.ttls[key] = ttl
	return nil
}

func (m *MemoryCacheRepo) Get(_ context.Context, key string) ([]byte, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.entries[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), value...), nil
}

func (m *MemoryCacheRepo) Delete(_ context.Context, key string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	delete(m.entries, key)
	delete(m.ttls, key)
	return ok, nil
}

func (m *MemoryCacheRepo) Exists(_ context.Context, key string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entries[key]
	return ok, nil
}

func (m *MemoryCacheRepo) SetIfNotExists(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[key]; ok {
		return false, nil
	}
	m.entries[key] = append([]byte(nil), value...)
	m.ttls[key] = ttl
	return true, nil
}

func (m *MemoryCacheRepo) Health(context.Context) error {
	return m.Err
}

// TTL reports the TTL recorded for key at its last write.
func (m *MemoryCacheRepo) TTL(key string) (time.Duration, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ttl, ok := m.ttls[key]
	return ttl, ok
}

// Len reports the number of stored entries.
func (m *MemoryCacheRepo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
