package blobstore

import (
	"context"
	"sync"

	"github.com/carbontrackr/engine/internal/core/domain"
)

var _ domain.BlobStore = (*InMemoryBlobStore)(nil)

// InMemoryBlobStore keeps blobs in a process-local map. It is the default
// backend and the fake used across tests; contents vanish on restart, which
// matches the "no guaranteed durability" contract.
type InMemoryBlobStore struct {
	blobs map[string][]byte

	mu sync.RWMutex
}

func NewInMemoryBlobStore() *InMemoryBlobStore {
	return &InMemoryBlobStore{
		blobs: make(map[string][]byte),
	}
}

func (s *InMemoryBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.blobs[key]
	if !ok {
		return nil, domain.ErrBlobNotFound
	}

	copied := make([]byte, len(value))
	copy(copied, value)
	return copied, nil
}

func (s *InMemoryBlobStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]byte, len(value))
	copy(copied, value)
	s.blobs[key] = copied
	return nil
}

func (s *InMemoryBlobStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.blobs, key)
	return nil
}
