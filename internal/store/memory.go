package store

import (
	"encoding/json"
	"sync"
)

// MemoryAdapter keeps snapshots in process memory. Used by tests and as an
// ephemeral fallback when no database is wired.
type MemoryAdapter struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryAdapter constructs an empty MemoryAdapter.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{data: make(map[string][]byte)}
}

// Save marshals value and overwrites the entry for key.
func (a *MemoryAdapter) Save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.data[key] = data
	a.mu.Unlock()
	return nil
}

// Load unmarshals the stored snapshot into dest.
func (a *MemoryAdapter) Load(key string, dest any) (bool, error) {
	a.mu.RLock()
	data, ok := a.data[key]
	a.mu.RUnlock()
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the entry for key.
func (a *MemoryAdapter) Delete(key string) error {
	a.mu.Lock()
	delete(a.data, key)
	a.mu.Unlock()
	return nil
}

// Corrupt overwrites the raw bytes stored for key. Exists so tests can
// exercise tolerant restoration of malformed snapshots.
func (a *MemoryAdapter) Corrupt(key string, raw []byte) {
	a.mu.Lock()
	a.data[key] = raw
	a.mu.Unlock()
}
