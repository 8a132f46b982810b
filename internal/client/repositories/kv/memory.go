package kv

import (
	"context"
	"sync"
)

// MemoryRepository is an in-process Repository. Its contents vanish with
// the process. Values are copied on the way in and out.
type MemoryRepository struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: make(map[string][]byte)}
}

func (r *MemoryRepository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte{}, v...), nil
}

func (r *MemoryRepository) Set(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[key] = append([]byte{}, value...)
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.data, key)
	return nil
}

func (r *MemoryRepository) List(_ context.Context) (map[string][]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string][]byte, len(r.data))
	for k, v := range r.data {
		result[k] = append([]byte{}, v...)
	}
	return result, nil
}

func (r *MemoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data = make(map[string][]byte)
	return nil
}

// Apply sets every entry of set and removes every key of del in one step.
// Readers never observe a partial update.
func (r *MemoryRepository) Apply(set map[string][]byte, del []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, k := range del {
		delete(r.data, k)
	}
	for k, v := range set {
		r.data[k] = append([]byte{}, v...)
	}
}
