package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/upmpoly/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Update calls are serialized; View calls may run concurrently.
type Storage struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		records: make(map[string][]byte),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) Update(ctx context.Context, fn func(tx storage.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &txn{store: s, writes: make(map[string][]byte)}
	if err := fn(t); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for key, value := range t.writes {
		if value == nil {
			delete(s.records, key)
			continue
		}
		s.records[key] = value
	}
	return nil
}

func (s *Storage) View(ctx context.Context, fn func(tx storage.Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&txn{store: s, readOnly: true})
}

func (s *Storage) Close() error {
	return nil
}

// txn buffers writes until commit. A nil value in writes marks a delete.
type txn struct {
	store    *Storage
	readOnly bool
	writes   map[string][]byte
}

func (t *txn) Get(ctx context.Context, key string) ([]byte, error) {
	if value, ok := t.writes[key]; ok {
		return clone(value), nil
	}
	return clone(t.store.records[key]), nil
}

func (t *txn) Put(ctx context.Context, key string, value []byte) error {
	if t.readOnly {
		return storage.ErrReadOnly
	}
	if value == nil {
		value = []byte{}
	}
	t.writes[key] = clone(value)
	return nil
}

func (t *txn) Delete(ctx context.Context, key string) error {
	if t.readOnly {
		return storage.ErrReadOnly
	}
	t.writes[key] = nil
	return nil
}

func (t *txn) Scan(ctx context.Context) ([]storage.Record, error) {
	merged := make(map[string][]byte, len(t.store.records))
	for key, value := range t.store.records {
		merged[key] = value
	}
	for key, value := range t.writes {
		if value == nil {
			delete(merged, key)
			continue
		}
		merged[key] = value
	}

	keys := make([]string, 0, len(merged))
	for key := range merged {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	records := make([]storage.Record, len(keys))
	for i, key := range keys {
		records[i] = storage.Record{Key: key, Value: clone(merged[key])}
	}
	return records, nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
