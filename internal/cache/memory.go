package cache

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process cache. A zero ttl keeps entries until evicted.
type Memory struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]map[string]memoryEntry
}

type memoryEntry struct {
	value   []byte
	expires time.Time // zero: never
}

var _ Cache = (*Memory)(nil)

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]map[string]memoryEntry),
	}
}

func (m *Memory) Get(_ context.Context, namespace, key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[namespace][key]
	m.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		return nil, false, nil
	}

	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, true, nil
}

func (m *Memory) Put(_ context.Context, namespace, key string, value []byte) error {
	e := memoryEntry{value: make([]byte, len(value))}
	copy(e.value, value)
	if m.ttl > 0 {
		e.expires = m.now().Add(m.ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ns, ok := m.entries[namespace]
	if !ok {
		ns = make(map[string]memoryEntry)
		m.entries[namespace] = ns
	}
	ns[key] = e
	return nil
}

func (m *Memory) EvictAll(_ context.Context, namespace string) error {
	m.mu.Lock()
	delete(m.entries, namespace)
	m.mu.Unlock()
	return nil
}
