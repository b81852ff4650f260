// Package sqlite implements the record store on a single SQLite table.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/mcoot/upmpoly/internal/storage"
)

const schemaSQL = `CREATE TABLE IF NOT EXISTS records (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
)`

// Storage is a SQLite-backed implementation of the storage interface.
// The pool is limited to one connection, so transactions are serialized.
type Storage struct {
	db  *sql.DB
	cfg Config
}

// New opens (creating if needed) the database at cfg.Path
func New(cfg Config) (*Storage, error) {
	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.BusyTimeoutMillis)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Storage{db: db, cfg: cfg}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) Update(ctx context.Context, fn func(tx storage.Tx) error) error {
	return s.run(ctx, false, fn)
}

func (s *Storage) View(ctx context.Context, fn func(tx storage.Tx) error) error {
	return s.run(ctx, true, fn)
}

func (s *Storage) run(ctx context.Context, readOnly bool, fn func(tx storage.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&txn{tx: tx, readOnly: readOnly}); err != nil {
		return err
	}
	if readOnly {
		return nil
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type txn struct {
	tx       *sql.Tx
	readOnly bool
}

func (t *txn) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := t.tx.QueryRowContext(ctx, `SELECT value FROM records WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return value, nil
}

func (t *txn) Put(ctx context.Context, key string, value []byte) error {
	if t.readOnly {
		return storage.ErrReadOnly
	}
	if value == nil {
		value = []byte{}
	}
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO records (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	return err
}

func (t *txn) Delete(ctx context.Context, key string) error {
	if t.readOnly {
		return storage.ErrReadOnly
	}
	_, err := t.tx.ExecContext(ctx, `DELETE FROM records WHERE key = ?`, key)
	return err
}

func (t *txn) Scan(ctx context.Context) ([]storage.Record, error) {
	rows, err := t.tx.QueryContext(ctx, `SELECT key, value FROM records ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []storage.Record
	for rows.Next() {
		var rec storage.Record
		if err := rows.Scan(&rec.Key, &rec.Value); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
