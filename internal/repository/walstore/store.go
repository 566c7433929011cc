package walstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/tidwall/wal"

	"vote-ledger/internal/domain/ledger"
)

var _ ledger.Store = (*Store)(nil)

const defaultCompactEvery = 1024

type entry struct {
	Value   []byte `json:"value"`
	Version int64  `json:"version"`
}

// Store keeps the current records in memory and appends the full record map
// to a write-ahead log on every commit, so only the last log entry is needed
// to recover.
type Store struct {
	mu           sync.Mutex
	log          *wal.Log
	records      map[string]entry
	compactEvery uint64
}

func Open(dir string) (*Store, error) {
	log, err := wal.Open(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("open wal %s: %w", dir, err)
	}

	s := &Store{
		log:          log,
		records:      make(map[string]entry),
		compactEvery: defaultCompactEvery,
	}
	if err := s.recover(); err != nil {
		_ = log.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) recover() error {
	last, err := s.log.LastIndex()
	if err != nil {
		return fmt.Errorf("wal last index: %w", err)
	}
	if last == 0 {
		return nil
	}
	data, err := s.log.Read(last)
	if err != nil {
		return fmt.Errorf("wal read %d: %w", last, err)
	}
	if err := json.Unmarshal(data, &s.records); err != nil {
		return fmt.Errorf("wal decode %d: %w", last, err)
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Close()
}

func (s *Store) Get(ctx context.Context, key string) (ledger.Record, error) {
	if err := ctx.Err(); err != nil {
		return ledger.Record{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.records[key]
	if !ok {
		return ledger.Record{}, ledger.ErrKeyNotFound
	}
	return ledger.Record{Value: append([]byte(nil), e.Value...), Version: e.Version}, nil
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
	version, err := s.commit(key, value, cur.Version+1)
	if err != nil {
		return false, 0, err
	}
	return true, version, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(key, value, s.records[key].Version+1)
}

// commit must be called with s.mu held. The in-memory map only changes once
// the log write succeeded.
func (s *Store) commit(key string, value []byte, version int64) (int64, error) {
	next := make(map[string]entry, len(s.records)+1)
	for k, e := range s.records {
		next[k] = e
	}
	next[key] = entry{Value: append([]byte(nil), value...), Version: version}

	data, err := json.Marshal(next)
	if err != nil {
		return 0, err
	}

	last, err := s.log.LastIndex()
	if err != nil {
		return 0, fmt.Errorf("wal last index: %w", err)
	}
	index := last + 1
	if err := s.log.Write(index, data); err != nil {
		return 0, fmt.Errorf("wal write %d: %w", index, err)
	}
	s.records = next

	s.compact(index)
	return version, nil
}

// compact drops entries older than index once the log has grown past
// compactEvery. A failed truncate only costs disk space.
func (s *Store) compact(index uint64) {
	first, err := s.log.FirstIndex()
	if err != nil || index-first < s.compactEvery {
		return
	}
	_ = s.log.TruncateFront(index)
}
