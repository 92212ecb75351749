// Package storage keeps per-session client state (cart, language, theme,
// signed-in user) as JSON values under fixed namespaced keys.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Namespaced keys of the persisted client state.
const (
	KeyCart     = "restaurant-cart"
	KeyLanguage = "restaurant-language"
	KeyTheme    = "restaurant-theme"
	KeyUser     = "restaurant-user"
)

// ErrNotFound is returned by Get when nothing is stored under the key.
var ErrNotFound = errors.New("storage: key not found")

// Store is a session-scoped key/value store.
type Store interface {
	Get(ctx context.Context, sessionID, key string) ([]byte, error)
	Set(ctx context.Context, sessionID, key string, value []byte) error
	Delete(ctx context.Context, sessionID, key string) error
}

// LoadJSON decodes the value under key into a T. When the value is absent,
// unreadable or corrupt it returns fallback together with the reason, so
// callers can log and carry on with the default.
func LoadJSON[T any](ctx context.Context, s Store, sessionID, key string, fallback T) (T, error) {
	raw, err := s.Get(ctx, sessionID, key)
	if err != nil {
		return fallback, err
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return fallback, fmt.Errorf("decode %s: %w", key, err)
	}
	return v, nil
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(ctx context.Context, s Store, sessionID, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, sessionID, key, raw)
}

// MemoryStore is an in-process Store used when Redis is not configured.
// With a positive ttl, entries expire ttl after their last write, the same
// as keys in the RedisStore.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
	ttl  time.Duration
	now  func() time.Time
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// NewMemoryStore creates an empty MemoryStore whose entries never expire.
func NewMemoryStore() *MemoryStore {
	return NewExpiringMemoryStore(0)
}

// NewExpiringMemoryStore creates an empty MemoryStore with a per-entry ttl.
func NewExpiringMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{data: make(map[string]memoryEntry), ttl: ttl, now: time.Now}
}

func memoryKey(sessionID, key string) string {
	return key + ":" + sessionID
}

func (m *MemoryStore) Get(_ context.Context, sessionID, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.data[memoryKey(sessionID, key)]
	if !ok || e.expired(m.now()) {
		return nil, ErrNotFound
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

func (m *MemoryStore) Set(_ context.Context, sessionID, key string, value []byte) error {
	e := memoryEntry{value: make([]byte, len(value))}
	copy(e.value, value)
	if m.ttl > 0 {
		e.expiresAt = m.now().Add(m.ttl)
	}
	m.mu.Lock()
	m.data[memoryKey(sessionID, key)] = e
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sessionID, key string) error {
	m.mu.Lock()
	delete(m.data, memoryKey(sessionID, key))
	m.mu.Unlock()
	return nil
}

// Cleanup drops entries that expired before now and returns how many it removed.
func (m *MemoryStore) Cleanup(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for k, e := range m.data {
		if e.expired(now) {
			delete(m.data, k)
			removed++
		}
	}
	return removed
}

// Len reports how many entries are held, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
