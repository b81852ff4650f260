// Package storagetest holds the conformance suite every storage backend runs.
package storagetest

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/upmpoly/internal/storage"
)

// Suite exercises the storage.Storage contract. Backends embed it via
// suite.Run with NewStorage set.
type Suite struct {
	suite.Suite
	NewStorage func(t *testing.T) storage.Storage

	store storage.Storage
	ctx   context.Context
}

func (s *Suite) SetupTest() {
	s.store = s.NewStorage(s.T())
	s.ctx = context.Background()
}

func (s *Suite) TearDownTest() {
	if s.store != nil {
		_ = s.store.Close()
	}
}

func (s *Suite) put(key, value string) {
	err := s.store.Update(s.ctx, func(tx storage.Tx) error {
		return tx.Put(s.ctx, key, []byte(value))
	})
	s.Require().NoError(err)
}

func (s *Suite) get(key string) []byte {
	var value []byte
	err := s.store.View(s.ctx, func(tx storage.Tx) error {
		var err error
		value, err = tx.Get(s.ctx, key)
		return err
	})
	s.Require().NoError(err)
	return value
}

func (s *Suite) TestGetMissingKeyReturnsNil() {
	s.Nil(s.get("missing"))
}

func (s *Suite) TestPutAndGet() {
	s.put("p1", `{"kind":"player"}`)
	s.Equal(`{"kind":"player"}`, string(s.get("p1")))
}

func (s *Suite) TestPutOverwrites() {
	s.put("p1", "one")
	s.put("p1", "two")
	s.Equal("two", string(s.get("p1")))
}

func (s *Suite) TestReadYourWritesInsideUpdate() {
	err := s.store.Update(s.ctx, func(tx storage.Tx) error {
		if err := tx.Put(s.ctx, "p1", []byte("value")); err != nil {
			return err
		}
		got, err := tx.Get(s.ctx, "p1")
		s.Require().NoError(err)
		s.Equal("value", string(got))
		return nil
	})
	s.Require().NoError(err)
}

func (s *Suite) TestFailedUpdateWritesNothing() {
	s.put("p1", "before")
	boom := errors.New("boom")

	err := s.store.Update(s.ctx, func(tx storage.Tx) error {
		if err := tx.Put(s.ctx, "p1", []byte("after")); err != nil {
			return err
		}
		if err := tx.Put(s.ctx, "p2", []byte("new")); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	s.Equal("before", string(s.get("p1")))
	s.Nil(s.get("p2"))
}

func (s *Suite) TestDelete() {
	s.put("p1", "value")

	err := s.store.Update(s.ctx, func(tx storage.Tx) error {
		return tx.Delete(s.ctx, "p1")
	})
	s.Require().NoError(err)
	s.Nil(s.get("p1"))
}

func (s *Suite) TestDeleteMissingKeyIsHarmless() {
	err := s.store.Update(s.ctx, func(tx storage.Tx) error {
		return tx.Delete(s.ctx, "missing")
	})
	s.NoError(err)
}

func (s *Suite) TestScanIsLexicallyOrdered() {
	s.put("player2", "b")
	s.put("faculty1", "c")
	s.put("player10", "a")

	var records []storage.Record
	err := s.store.View(s.ctx, func(tx storage.Tx) error {
		var err error
		records, err = tx.Scan(s.ctx)
		return err
	})
	s.Require().NoError(err)

	s.Require().Len(records, 3)
	s.Equal("faculty1", records[0].Key)
	s.Equal("player10", records[1].Key)
	s.Equal("player2", records[2].Key)
	s.Equal("a", string(records[1].Value))
}

func (s *Suite) TestScanSeesPendingWrites() {
	s.put("a", "1")
	s.put("b", "2")

	err := s.store.Update(s.ctx, func(tx storage.Tx) error {
		if err := tx.Delete(s.ctx, "a"); err != nil {
			return err
		}
		if err := tx.Put(s.ctx, "c", []byte("3")); err != nil {
			return err
		}
		records, err := tx.Scan(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(records, 2)
		s.Equal("b", records[0].Key)
		s.Equal("c", records[1].Key)
		return nil
	})
	s.Require().NoError(err)
}

func (s *Suite) TestScanEmptyStore() {
	err := s.store.View(s.ctx, func(tx storage.Tx) error {
		records, err := tx.Scan(s.ctx)
		s.Require().NoError(err)
		s.Empty(records)
		return nil
	})
	s.Require().NoError(err)
}

func (s *Suite) TestViewRejectsWrites() {
	err := s.store.View(s.ctx, func(tx storage.Tx) error {
		return tx.Put(s.ctx, "p1", []byte("value"))
	})
	s.ErrorIs(err, storage.ErrReadOnly)

	err = s.store.View(s.ctx, func(tx storage.Tx) error {
		return tx.Delete(s.ctx, "p1")
	})
	s.ErrorIs(err, storage.ErrReadOnly)
}

func (s *Suite) TestConcurrentUpdatesAreIsolated() {
	const workers = 4
	const increments = 5

	s.put("counter", "0")

	var wg sync.WaitGroup
	errs := make(chan error, workers*increments)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < increments; i++ {
				errs <- s.store.Update(s.ctx, func(tx storage.Tx) error {
					raw, err := tx.Get(s.ctx, "counter")
					if err != nil {
						return err
					}
					n, err := strconv.Atoi(string(raw))
					if err != nil {
						return err
					}
					return tx.Put(s.ctx, "counter", []byte(strconv.Itoa(n+1)))
				})
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		s.Require().NoError(err)
	}
	s.Equal(strconv.Itoa(workers*increments), string(s.get("counter")))
}
