package store

import (
	"context"
	"sync"
)

// MemoryStore keeps encoded meshes in process memory.
type MemoryStore struct {
	m typedSyncMap
}

type typedSyncMap struct {
	m sync.Map
}

func (m *typedSyncMap) Load(k MeshKey) ([]byte, bool) {
	v, exists := m.m.Load(k)
	if !exists {
		return nil, false
	}
	return v.([]byte), true
}

func (m *typedSyncMap) Store(k MeshKey, v []byte) {
	m.m.Store(k, v)
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

var _ MeshStore = (*MemoryStore)(nil)

func (s *MemoryStore) Get(_ context.Context, key MeshKey) ([]byte, bool, error) {
	v, exists := s.m.Load(key)
	return v, exists, nil
}

func (s *MemoryStore) Set(_ context.Context, key MeshKey, payload []byte) error {
	s.m.Store(key, payload)
	return nil
}
