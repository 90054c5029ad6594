package badger

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"

	"github.com/custodia-labs/pardis/internal/core/domain"
	"github.com/custodia-labs/pardis/internal/core/ports/driven"
)

// ChunkSize is the largest value written under a single key.
const ChunkSize = 2 << 20

// BlobDir is the directory created inside the data directory.
const BlobDir = "blobs"

// Ensure BlobStore implements the interface.
var _ driven.BlobStore = (*BlobStore)(nil)

// BlobStore stores attached files in Badger.
type BlobStore struct {
	db   *badger.DB
	path string
}

// NewBlobStore opens or creates a blob store under dataDir.
// If dataDir is empty, defaults to ~/.pardis/data.
func NewBlobStore(dataDir string) (*BlobStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".pardis", "data")
	}

	path := filepath.Join(dataDir, BlobDir)
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, fmt.Errorf("creating blob directory: %w", err)
	}

	db, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("opening badger: %w", err)
	}
	return &BlobStore{db: db, path: path}, nil
}

// Path returns the Badger directory.
func (s *BlobStore) Path() string {
	return s.path
}

// PutBlob stores or replaces the blob for id.
func (s *BlobStore) PutBlob(ctx context.Context, id string, data []byte) error {
	if id == "" {
		return fmt.Errorf("put blob: empty id: %w", domain.ErrInvalidInput)
	}

	oldCount, err := s.chunkCount(id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	newCount := uint32(0)
	for off := 0; off < len(data); off += ChunkSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(off+ChunkSize, len(data))
		chunk := append([]byte(nil), data[off:end]...)
		if err := wb.Set(chunkKey(id, newCount), chunk); err != nil {
			return fmt.Errorf("writing chunk %d of %s: %w", newCount, id, err)
		}
		newCount++
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flushing chunks of %s: %w", id, err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		manifest := make([]byte, 4)
		binary.BigEndian.PutUint32(manifest, newCount)
		if err := txn.Set(manifestKey(id), manifest); err != nil {
			return fmt.Errorf("writing manifest of %s: %w", id, err)
		}
		for n := newCount; n < oldCount; n++ {
			if err := txn.Delete(chunkKey(id, n)); err != nil {
				return fmt.Errorf("dropping stale chunk %d of %s: %w", n, id, err)
			}
		}
		return nil
	})
}

// GetBlob returns domain.ErrNotFound if no blob exists.
func (s *BlobStore) GetBlob(_ context.Context, id string) ([]byte, error) {
	out := []byte{}
	err := s.db.View(func(txn *badger.Txn) error {
		count, err := readManifest(txn, id)
		if err != nil {
			return err
		}
		for n := uint32(0); n < count; n++ {
			item, err := txn.Get(chunkKey(id, n))
			if err != nil {
				return fmt.Errorf("reading chunk %d of %s: %w", n, id, err)
			}
			err = item.Value(func(val []byte) error {
				out = append(out, val...)
				return nil
			})
			if err != nil {
				return fmt.Errorf("copying chunk %d of %s: %w", n, id, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteBlob removes the blob for id. A missing blob is not an error.
func (s *BlobStore) DeleteBlob(_ context.Context, id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		count, err := readManifest(txn, id)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := txn.Delete(manifestKey(id)); err != nil {
			return fmt.Errorf("deleting manifest of %s: %w", id, err)
		}
		for n := uint32(0); n < count; n++ {
			if err := txn.Delete(chunkKey(id, n)); err != nil {
				return fmt.Errorf("deleting chunk %d of %s: %w", n, id, err)
			}
		}
		return nil
	})
}

// Close releases the database.
func (s *BlobStore) Close() error {
	return s.db.Close()
}

func (s *BlobStore) chunkCount(id string) (uint32, error) {
	var count uint32
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		count, err = readManifest(txn, id)
		return err
	})
	return count, err
}

func readManifest(txn *badger.Txn, id string) (uint32, error) {
	item, err := txn.Get(manifestKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("reading manifest of %s: %w", id, err)
	}
	var count uint32
	err = item.Value(func(val []byte) error {
		if len(val) != 4 {
			return fmt.Errorf("manifest of %s is %d bytes", id, len(val))
		}
		count = binary.BigEndian.Uint32(val)
		return nil
	})
	return count, err
}

func manifestKey(id string) []byte {
	return []byte("blob:" + id)
}

// chunkKey sorts chunks of one blob together and in order.
func chunkKey(id string, n uint32) []byte {
	return []byte(fmt.Sprintf("chunk:%s:%08d", id, n))
}
