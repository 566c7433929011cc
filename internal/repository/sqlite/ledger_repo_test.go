package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"vote-ledger/internal/domain/ledger"
	"vote-ledger/internal/platform/database"
	"vote-ledger/internal/repository/storetest"
)

func openRepo(t *testing.T) *LedgerRepo {
	t.Helper()
	db, err := database.NewSQLite(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewLedgerRepo(db)
	require.NoError(t, repo.EnsureSchema(context.Background()))
	return repo
}

func TestLedgerRepoContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) ledger.Store { return openRepo(t) })
}

func TestLedgerRepoPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	ctx := context.Background()

	db, err := database.NewSQLite(path)
	require.NoError(t, err)
	repo := NewLedgerRepo(db)
	require.NoError(t, repo.EnsureSchema(ctx))
	_, err = repo.Set(ctx, "k", []byte(`{"n":1}`))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = database.NewSQLite(path)
	require.NoError(t, err)
	defer db.Close()

	rec, err := NewLedgerRepo(db).Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, int64(1), rec.Version)
	require.JSONEq(t, `{"n":1}`, string(rec.Value))
}
