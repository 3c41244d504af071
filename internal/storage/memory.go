package storage

import "sync"

// Memory is a map-backed store implementing ScalarStore and BlobStore.
// It is used by tests and by callers that do not want on-disk state.
type Memory struct {
	mu      sync.Mutex
	scalars map[string][]byte
	blobs   map[string][]byte
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		scalars: make(map[string][]byte),
		blobs:   make(map[string][]byte),
	}
}

// Get retrieves a scalar value
func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.scalars[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

// Put stores a scalar value
func (m *Memory) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scalars[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes a scalar value. Absence is not an error.
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.scalars, key)
	return nil
}

// Load retrieves a blob record
func (m *Memory) Load(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[name]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

// Store writes a blob record, overwriting any previous value
func (m *Memory) Store(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[name] = append([]byte(nil), data...)
	return nil
}

// Remove deletes a blob record. Absence is not an error.
func (m *Memory) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, name)
	return nil
}

// Has reports whether a blob record exists
func (m *Memory) Has(name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.blobs[name]
	return ok, nil
}
