package store

import (
	"context"
	"sync"
)

// MemoryStore is a map-backed Store. It serves tests and the fail-open path
// when Redis is unreachable at startup; nothing survives a restart.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (s *MemoryStore) GetMany(_ context.Context, keys []string) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([][]byte, len(keys))
	for i, key := range keys {
		if val, ok := s.data[key]; ok {
			cp := make([]byte, len(val))
			copy(cp, val)
			out[i] = cp
		}
	}
	return out, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	s.data[key] = cp
	return nil
}

func (s *MemoryStore) SetMany(ctx context.Context, pairs []KV) error {
	for _, p := range pairs {
		if err := s.Set(ctx, p.Key, p.Value); err != nil {
			return err
		}
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

func (s *MemoryStore) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for key := range s.data {
		keys = append(keys, key)
	}
	return keys, nil
}

func (s *MemoryStore) Entries(_ context.Context) ([]KV, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]KV, 0, len(s.data))
	for key, val := range s.data {
		cp := make([]byte, len(val))
		copy(cp, val)
		entries = append(entries, KV{Key: key, Value: cp})
	}
	return entries, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string][]byte)
	return nil
}

// Len reports the number of stored keys. Test helper.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
