package memory

import (
	"context"
	"sync"

	"vote-ledger/internal/domain/ledger"
)

var _ ledger.Store = (*Store)(nil)

// Store keeps records in process memory. Nothing survives a restart.
type Store struct {
	mu      sync.Mutex
	records map[string]ledger.Record
}

func NewStore() *Store {
	return &Store{records: make(map[string]ledger.Record)}
}

func (s *Store) Get(ctx context.Context, key string) (ledger.Record, error) {
	if err := ctx.Err(); err != nil {
		return ledger.Record{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[key]
	if !ok {
		return ledger.Record{}, ledger.ErrKeyNotFound
	}
	return clone(rec), nil
}

func (s *Store) CompareAndSet(ctx context.Context, key string, expected int64, value []byte) (bool, int64, error) {
	if err := ctx.Err(); err != nil {
		return false, 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.records[key]
	if cur.Version != expected {
		return false, cur.Version, nil
	}
	next := clone(ledger.Record{Value: value, Version: cur.Version + 1})
	s.records[key] = next
	return true, next.Version, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := clone(ledger.Record{Value: value, Version: s.records[key].Version + 1})
	s.records[key] = next
	return next.Version, nil
}

func clone(rec ledger.Record) ledger.Record {
	return ledger.Record{Value: append([]byte(nil), rec.Value...), Version: rec.Version}
}
