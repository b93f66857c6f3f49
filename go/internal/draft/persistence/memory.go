package persistence

import (
	"context"
	"maps"
	"sync"
)

// MemoryStore keeps encoded snapshots in a map
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
	saves  int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Save(_ context.Context, s Snapshot) error {
	values, err := Encode(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	maps.Copy(m.values, values)
	m.saves++
	return nil
}

func (m *MemoryStore) Load(_ context.Context) (*Snapshot, error) {
	m.mu.Lock()
	values := maps.Clone(m.values)
	m.mu.Unlock()
	return Decode(values)
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.values)
	return nil
}

// Set writes one raw value, bypassing encoding
func (m *MemoryStore) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Value returns one raw stored value
func (m *MemoryStore) Value(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

// Saves counts successful Save calls
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
