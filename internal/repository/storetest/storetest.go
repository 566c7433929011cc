// Package storetest holds the behaviour every ledger.Store backend must share.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"vote-ledger/internal/domain/ledger"
)

// Run exercises the Store contract against a fresh store from newStore.
func Run(t *testing.T, newStore func(t *testing.T) ledger.Store) {
	t.Run("GetMissingKey", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(context.Background(), "missing")
		require.ErrorIs(t, err, ledger.ErrKeyNotFound)
	})

	t.Run("CompareAndSetCreatesAtVersionZero", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		ok, v, err := s.CompareAndSet(ctx, "k", 0, []byte(`{"a":1}`))
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, int64(1), v)

		rec, err := s.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, int64(1), rec.Version)
		require.JSONEq(t, `{"a":1}`, string(rec.Value))

		ok, v, err = s.CompareAndSet(ctx, "k", 0, []byte(`{"a":2}`))
		require.NoError(t, err)
		require.False(t, ok, "create over an existing key must conflict")
		require.Equal(t, int64(1), v)
	})

	t.Run("CompareAndSetRejectsStaleVersion", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		_, _, err := s.CompareAndSet(ctx, "k", 0, []byte(`{"n":1}`))
		require.NoError(t, err)
		ok, v, err := s.CompareAndSet(ctx, "k", 1, []byte(`{"n":2}`))
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, int64(2), v)

		ok, v, err = s.CompareAndSet(ctx, "k", 1, []byte(`{"n":3}`))
		require.NoError(t, err)
		require.False(t, ok)
		require.Equal(t, int64(2), v)

		rec, err := s.Get(ctx, "k")
		require.NoError(t, err)
		require.JSONEq(t, `{"n":2}`, string(rec.Value))
	})

	t.Run("SetAlwaysBumpsVersion", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		v, err := s.Set(ctx, "k", []byte(`{"n":1}`))
		require.NoError(t, err)
		require.Equal(t, int64(1), v)

		_, _, err = s.CompareAndSet(ctx, "k", 1, []byte(`{"n":2}`))
		require.NoError(t, err)

		v, err = s.Set(ctx, "k", []byte(`{}`))
		require.NoError(t, err)
		require.Equal(t, int64(3), v)

		ok, _, err := s.CompareAndSet(ctx, "k", 2, []byte(`{"n":9}`))
		require.NoError(t, err)
		require.False(t, ok, "a CAS based on a pre-reset version must fail")
	})

	t.Run("ConcurrentLedgerVotes", func(t *testing.T) {
		s := newStore(t)
		const voters = 20
		svc := ledger.NewService(s, ledger.WithMaxAttempts(voters+1))
		ctx := context.Background()

		c, _, err := svc.AddCandidate(ctx, "Alice")
		require.NoError(t, err)

		var wg sync.WaitGroup
		errs := make(chan error, voters)
		for i := 0; i < voters; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				if _, err := svc.CastVote(ctx, fmt.Sprintf("S%d", i), c.ID); err != nil {
					errs <- err
				}
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		snap, err := svc.Snapshot(ctx)
		require.NoError(t, err)
		require.Equal(t, int64(voters), snap.VoterCount)
		require.Equal(t, int64(voters), snap.Candidates[0].VoteCount)
		require.Equal(t, int64(voters+1), snap.Version)
	})
}
