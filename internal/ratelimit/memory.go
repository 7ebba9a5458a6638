package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps submission timestamps in process memory. Records
// vanish on restart, which is acceptable for a courtesy cool-down.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]time.Time)}
}

// Get returns the recorded timestamp for key.
func (s *MemoryStore) Get(_ context.Context, key string) (time.Time, bool, error) {
	s.mu.RLock()
	t, ok := s.entries[key]
	s.mu.RUnlock()
	return t, ok, nil
}

// Set records t for key.
func (s *MemoryStore) Set(_ context.Context, key string, t time.Time) error {
	s.mu.Lock()
	s.entries[key] = t
	s.mu.Unlock()
	return nil
}
