package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"vote-ledger/internal/domain/ledger"
	"vote-ledger/internal/platform/database"
	"vote-ledger/internal/repository/storetest"
)

// Runs only when TEST_DB_DSN points at a disposable database.
func TestLedgerRepoContract(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}

	db, err := database.NewPostgres(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewLedgerRepo(db)
	require.NoError(t, repo.EnsureSchema(context.Background()))

	storetest.Run(t, func(t *testing.T) ledger.Store {
		_, err := db.Exec(`TRUNCATE ledger_records`)
		require.NoError(t, err)
		return repo
	})
}
