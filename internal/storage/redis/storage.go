package redis

import (
	"context"
	"errors"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/upmpoly/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Update uses WATCH/MULTI/EXEC: every key read inside the transaction is
// watched, and the buffered writes are applied in one MULTI block.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultConfig().KeyPrefix
	}
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) Update(ctx context.Context, fn func(tx storage.Tx) error) error {
	for attempt := 0; attempt <= s.cfg.MaxTxRetries; attempt++ {
		err := s.client.Watch(ctx, func(rtx *redis.Tx) error {
			t := &txn{store: s, cmd: rtx, rtx: rtx, writes: make(map[string][]byte)}
			if err := fn(t); err != nil {
				return err
			}
			return t.commit(ctx)
		})
		if errors.Is(err, redis.TxFailedErr) {
			if err := sleepCtx(ctx, retryBackoff(attempt)); err != nil {
				return err
			}
			continue
		}
		return err
	}
	return storage.ErrConflict
}

// retryBackoff spreads competing writers apart: exponential from 1ms,
// capped at 64ms, with full jitter
func retryBackoff(attempt int) time.Duration {
	ceiling := time.Millisecond << min(attempt, 6)
	return rand.N(ceiling) + 1
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Storage) View(ctx context.Context, fn func(tx storage.Tx) error) error {
	return fn(&txn{store: s, cmd: s.client, readOnly: true})
}

// txn buffers writes until commit. A nil value in writes marks a delete.
type txn struct {
	store    *Storage
	cmd      redis.Cmdable
	rtx      *redis.Tx // nil for read-only views
	readOnly bool
	writes   map[string][]byte
}

func (t *txn) watch(ctx context.Context, keys ...string) error {
	if t.rtx == nil || len(keys) == 0 {
		return nil
	}
	return t.rtx.Watch(ctx, keys...).Err()
}

func (t *txn) Get(ctx context.Context, key string) ([]byte, error) {
	if value, ok := t.writes[key]; ok {
		return value, nil
	}

	rkey := t.store.recordKey(key)
	if err := t.watch(ctx, rkey); err != nil {
		return nil, err
	}

	data, err := t.cmd.Get(ctx, rkey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (t *txn) Put(ctx context.Context, key string, value []byte) error {
	if t.readOnly {
		return storage.ErrReadOnly
	}
	if value == nil {
		value = []byte{}
	}
	t.writes[key] = value
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
	idx := t.store.indexKey()
	if err := t.watch(ctx, idx); err != nil {
		return nil, err
	}

	keys, err := t.cmd.ZRange(ctx, idx, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	merged := make(map[string][]byte, len(keys))
	if len(keys) > 0 {
		rkeys := make([]string, len(keys))
		for i, key := range keys {
			rkeys[i] = t.store.recordKey(key)
		}
		if err := t.watch(ctx, rkeys...); err != nil {
			return nil, err
		}

		// Fetch all records in one round trip using MGET
		values, err := t.cmd.MGet(ctx, rkeys...).Result()
		if err != nil {
			return nil, err
		}
		for i, val := range values {
			str, ok := val.(string)
			if !ok {
				continue // Index entry without a record
			}
			merged[keys[i]] = []byte(str)
		}
	}

	for key, value := range t.writes {
		if value == nil {
			delete(merged, key)
			continue
		}
		merged[key] = value
	}

	ordered := make([]string, 0, len(merged))
	for key := range merged {
		ordered = append(ordered, key)
	}
	sort.Strings(ordered)

	records := make([]storage.Record, len(ordered))
	for i, key := range ordered {
		records[i] = storage.Record{Key: key, Value: merged[key]}
	}
	return records, nil
}

// commit applies the buffered writes and their index updates in one MULTI block
func (t *txn) commit(ctx context.Context) error {
	if len(t.writes) == 0 {
		return nil
	}

	keys := make([]string, 0, len(t.writes))
	for key := range t.writes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	idx := t.store.indexKey()
	_, err := t.rtx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			value := t.writes[key]
			if value == nil {
				pipe.Del(ctx, t.store.recordKey(key))
				pipe.ZRem(ctx, idx, key)
				continue
			}
			pipe.Set(ctx, t.store.recordKey(key), value, 0)
			pipe.ZAdd(ctx, idx, redis.Z{Score: 0, Member: key})
		}
		return nil
	})
	return err
}
