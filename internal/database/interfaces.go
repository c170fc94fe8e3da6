package database

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates the key has never been written
	ErrNotFound = errors.New("key not found")
	// ErrVersionConflict indicates the stored version moved past the one the
	// writer last read
	ErrVersionConflict = errors.New("stored version has changed")
)

// Record is one versioned document in the key-value store
type Record struct {
	Key       string
	Value     []byte
	Version   int64
	UpdatedAt time.Time
}

// KVRepository reads and writes versioned documents. Put with
// expectedVersion 0 creates the key; any other value must match the stored
// version or ErrVersionConflict is returned.
type KVRepository interface {
	Get(ctx context.Context, key string) (Record, error)
	Put(ctx context.Context, key string, value []byte, expectedVersion int64) (int64, error)
	Delete(ctx context.Context, key string) error
}
