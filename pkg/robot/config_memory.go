package robot

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryConfigStore is an in-memory ConfigStore.
// Values are kept JSON-encoded so callers never share state with the store.
type MemoryConfigStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryConfigStore creates an empty in-memory store.
func NewMemoryConfigStore() *MemoryConfigStore {
	return &MemoryConfigStore{values: make(map[string][]byte)}
}

func (s *MemoryConfigStore) Get(ctx context.Context, key string, dst any) error {
	s.mu.RLock()
	raw, ok := s.values[key]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrConfigNotFound, key)
	}
	return json.Unmarshal(raw, dst)
}

func (s *MemoryConfigStore) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode config %s: %w", key, err)
	}
	s.mu.Lock()
	s.values[key] = raw
	s.mu.Unlock()
	return nil
}
