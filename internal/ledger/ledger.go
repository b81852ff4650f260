// Package ledger reads and writes players and faculties inside one store
// transaction. It owns key uniqueness and the per-entity invariants; the
// economy controller composes it into atomic transitions.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/mcoot/upmpoly/internal/codec"
	"github.com/mcoot/upmpoly/internal/model"
	"github.com/mcoot/upmpoly/internal/storage"
)

// Ledger wraps a store transaction with typed entity access
type Ledger struct {
	tx storage.Tx
}

// New creates a Ledger bound to tx
func New(tx storage.Tx) *Ledger {
	return &Ledger{tx: tx}
}

// Exists reports whether a non-empty record is stored at id
func (l *Ledger) Exists(ctx context.Context, id string) (bool, error) {
	data, err := l.tx.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return len(data) > 0, nil
}

// AssertExists fails with ErrAssetNotFound if nothing is stored at id
func (l *Ledger) AssertExists(ctx context.Context, id string) error {
	exists, err := l.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", model.ErrAssetNotFound, id)
	}
	return nil
}

// assertAbsent fails with ErrAssetAlreadyExists if id is taken by either kind
func (l *Ledger) assertAbsent(ctx context.Context, id string) error {
	exists, err := l.Exists(ctx, id)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", model.ErrAssetAlreadyExists, id)
	}
	return nil
}

// read loads the raw record at id, failing with ErrAssetNotFound if absent
func (l *Ledger) read(ctx context.Context, id string) ([]byte, error) {
	data, err := l.tx.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrAssetNotFound, id)
	}
	return data, nil
}

// Delete removes the record at id after checking it exists
func (l *Ledger) Delete(ctx context.Context, id string) error {
	if err := l.AssertExists(ctx, id); err != nil {
		return err
	}
	return l.tx.Delete(ctx, id)
}

// Assets returns every decodable record in key order. Records of unknown
// shape are skipped.
func (l *Ledger) Assets(ctx context.Context) ([]model.Asset, error) {
	records, err := l.tx.Scan(ctx)
	if err != nil {
		return nil, err
	}

	assets := make([]model.Asset, 0, len(records))
	for _, rec := range records {
		asset, err := codec.Decode(rec.Value)
		if err != nil {
			if errors.Is(err, model.ErrWrongAssetKind) {
				continue
			}
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, nil
}
