package session

import (
	"context"
	"sync"
)

type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]map[string]string)}
}

func (r *MemoryRepo) Get(_ context.Context, clientID, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.data[clientID][key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (r *MemoryRepo) Set(_ context.Context, clientID, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kv, ok := r.data[clientID]
	if !ok {
		kv = make(map[string]string)
		r.data[clientID] = kv
	}
	kv[key] = value
	return nil
}

func (r *MemoryRepo) Delete(_ context.Context, clientID string, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kv, ok := r.data[clientID]
	if !ok {
		return nil
	}
	for _, k := range keys {
		delete(kv, k)
	}
	if len(kv) == 0 {
		delete(r.data, clientID)
	}
	return nil
}
