package storage

import (
	"context"
	"errors"
)

// ErrReadOnly is returned when a write is attempted inside a View
var ErrReadOnly = errors.New("write attempted in read-only transaction")

// ErrConflict is returned when an optimistic transaction could not commit
// after exhausting its retries
var ErrConflict = errors.New("transaction conflict")

// Record is one key/value pair returned by a scan
type Record struct {
	Key   string
	Value []byte
}

// Tx is the view of the record store available inside one transaction.
// Writes are only visible to other callers once the enclosing Update commits.
type Tx interface {
	// Get returns the value stored at key, or nil if the key is absent
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Scan returns every record ordered lexically by key
	Scan(ctx context.Context) ([]Record, error)
}

// Storage defines the interface for the keyed record store
type Storage interface {
	// Update runs fn in a read-write transaction. If fn returns an error
	// nothing it wrote is committed.
	Update(ctx context.Context, fn func(tx Tx) error) error

	// View runs fn in a read-only transaction
	View(ctx context.Context, fn func(tx Tx) error) error

	Close() error
}
