// internal/common/cache/cache.go

// Package cache provides the website memoization cache. A cached empty
// string is a remembered negative result ("no website listed"), distinct
// from a miss. Implementations must be safe for concurrent use; a race that
// duplicates a remote fetch for the same key is acceptable.
package cache

import (
	"context"
	"sync"
)

const DefaultCapacity = 1024

type Cache interface {
	Get(ctx context.Context, key string) (value string, ok bool)
	Set(ctx context.Context, key, value string)
}

// Memory is a capacity-bounded in-process cache with insertion-order
// eviction. It is the default backend.
type Memory struct {
	mu       sync.RWMutex
	entries  map[string]string
	order    []string
	capacity int
}

func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Memory{
		entries:  make(map[string]string, capacity),
		capacity: capacity,
	}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	return v, ok
}

func (m *Memory) Set(_ context.Context, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; exists {
		m.entries[key] = value
		return
	}

	if len(m.order) >= m.capacity {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.entries, oldest)
	}

	m.entries[key] = value
	m.order = append(m.order, key)
}

// Len reports the number of cached entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
