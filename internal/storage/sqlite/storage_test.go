package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/upmpoly/internal/storage"
	"github.com/mcoot/upmpoly/internal/storage/storagetest"
)

func newTestStorage(t *testing.T, path string) *Storage {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Path = path
	s, err := New(cfg)
	require.NoError(t, err)
	return s
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, &storagetest.Suite{
		NewStorage: func(t *testing.T) storage.Storage {
			return newTestStorage(t, filepath.Join(t.TempDir(), "ledger.db"))
		},
	})
}

func TestRecordsSurviveReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	s := newTestStorage(t, path)
	err := s.Update(ctx, func(tx storage.Tx) error {
		return tx.Put(ctx, "player1", []byte(`{"kind":"player"}`))
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened := newTestStorage(t, path)
	defer func() { _ = reopened.Close() }()

	err = reopened.View(ctx, func(tx storage.Tx) error {
		value, err := tx.Get(ctx, "player1")
		require.NoError(t, err)
		assert.Equal(t, `{"kind":"player"}`, string(value))
		return nil
	})
	require.NoError(t, err)
}
