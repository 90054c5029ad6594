package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/pardis/internal/core/domain"
	"github.com/custodia-labs/pardis/internal/core/ports/driven"
)

// Ensure BlobStore implements the interface.
var _ driven.BlobStore = (*BlobStore)(nil)

// BlobStore is an in-memory implementation of driven.BlobStore.
type BlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewBlobStore creates a new in-memory blob store.
func NewBlobStore() *BlobStore {
	return &BlobStore{blobs: make(map[string][]byte)}
}

// PutBlob stores a copy of data under id.
func (s *BlobStore) PutBlob(_ context.Context, id string, data []byte) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[id] = append([]byte(nil), data...)
	return nil
}

// GetBlob returns a copy of the blob for id.
func (s *BlobStore) GetBlob(_ context.Context, id string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

// DeleteBlob removes the blob for id.
func (s *BlobStore) DeleteBlob(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, id)
	return nil
}

// Close is a no-op.
func (s *BlobStore) Close() error {
	return nil
}
