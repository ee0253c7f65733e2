package store

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// MemoryStore is a concurrent-safe LRU store with per-entry expiry. It lives
// as long as the process and is the default for single-node use.
type MemoryStore struct {
	mu         sync.Mutex
	entries    map[string]*memoryEntry
	order      []string // LRU order: front=oldest, back=newest
	maxEntries int
	hits       atomic.Int64
	misses     atomic.Int64

	now func() time.Time
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// Stats contains cache performance statistics.
type Stats struct {
	Entries    int     `json:"entries"`
	MaxEntries int     `json:"max_entries"`
	Hits       int64   `json:"hits"`
	Misses     int64   `json:"misses"`
	HitRate    float64 `json:"hit_rate"`
}

// NewMemory creates a MemoryStore holding at most maxEntries entries. A
// non-positive maxEntries means unbounded.
func NewMemory(maxEntries int) *MemoryStore {
	return &MemoryStore{
		entries:    make(map[string]*memoryEntry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		m.misses.Add(1)
		return nil, nil
	}
	if !m.now().Before(entry.expiresAt) {
		delete(m.entries, key)
		m.removeFromOrder(key)
		m.misses.Add(1)
		return nil, nil
	}

	m.removeFromOrder(key)
	m.order = append(m.order, key)
	m.hits.Add(1)

	out := make([]byte, len(entry.data))
	copy(out, entry.data)
	return out, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)

	if _, ok := m.entries[key]; ok {
		m.removeFromOrder(key)
	} else if m.maxEntries > 0 {
		for len(m.entries) >= m.maxEntries && len(m.order) > 0 {
			oldest := m.order[0]
			m.order = m.order[1:]
			delete(m.entries, oldest)
		}
	}

	m.entries[key] = &memoryEntry{data: stored, expiresAt: m.now().Add(ttl)}
	m.order = append(m.order, key)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		if _, ok := m.entries[key]; ok {
			delete(m.entries, key)
			m.removeFromOrder(key)
		}
	}
	return nil
}

func (m *MemoryStore) DeleteExpired(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	kept := m.order[:0]
	for _, key := range m.order {
		if !now.Before(m.entries[key].expiresAt) {
			delete(m.entries, key)
			removed++
			continue
		}
		kept = append(kept, key)
	}
	m.order = kept
	return removed, nil
}

// Stats returns current cache statistics.
func (m *MemoryStore) Stats() Stats {
	m.mu.Lock()
	n := len(m.entries)
	m.mu.Unlock()

	hits := m.hits.Load()
	misses := m.misses.Load()
	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}
	return Stats{
		Entries:    n,
		MaxEntries: m.maxEntries,
		Hits:       hits,
		Misses:     misses,
		HitRate:    rate,
	}
}

func (m *MemoryStore) Migrate(context.Context) error { return nil }

func (m *MemoryStore) Close() error { return nil }

// removeFromOrder removes a key from the LRU order slice. Caller must hold mu.
func (m *MemoryStore) removeFromOrder(key string) {
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}
