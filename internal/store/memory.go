package store

import "sync"

// Memory is an in-memory document store for testing.
type Memory struct {
	mu  sync.RWMutex
	doc []DocLine
}

// NewMemory creates a new in-memory document store.
func NewMemory() *Memory {
	return &Memory{}
}

// Save replaces the persisted document.
func (m *Memory) Save(doc []DocLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc = append([]DocLine(nil), doc...)
	return nil
}

// Load retrieves the persisted document.
func (m *Memory) Load() ([]DocLine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]DocLine(nil), m.doc...), nil
}

// Close is a no-op for the memory store.
func (m *Memory) Close() error {
	return nil
}
