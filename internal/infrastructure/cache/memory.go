package cache

import (
	"context"
	"slices"
	"sync"
	"time"
)

type entry struct {
	data    []byte
	expires time.Time
}

// Memory is a process-local cache. A zero TTL keeps entries until invalidated.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, collection string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[collection]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		m.mu.Lock()
		if cur, still := m.entries[collection]; still && cur.expires.Equal(e.expires) {
			delete(m.entries, collection)
		}
		m.mu.Unlock()
		return nil, false, nil
	}
	return slices.Clone(e.data), true, nil
}

func (m *Memory) Set(_ context.Context, collection string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[collection] = entry{data: slices.Clone(data), expires: expiry(m.now(), m.ttl)}
	return nil
}

func (m *Memory) Invalidate(_ context.Context, collection string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, collection)
	return nil
}
