package repository

import (
	"context"
	"fmt"

	"vote-ledger/internal/config"
	"vote-ledger/internal/domain/ledger"
	"vote-ledger/internal/platform/database"
	"vote-ledger/internal/repository/memory"
	"vote-ledger/internal/repository/postgres"
	"vote-ledger/internal/repository/sqlite"
	"vote-ledger/internal/repository/walstore"
)

// Open builds the ledger store selected by cfg.StoreBackend. The returned
// close func releases whatever the backend holds.
func Open(ctx context.Context, cfg config.Config) (ledger.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StoreBackend {
	case config.BackendMemory:
		return memory.NewStore(), noop, nil

	case config.BackendPostgres:
		db, err := database.NewPostgres(cfg.DB_DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres connect: %w", err)
		}
		repo := postgres.NewLedgerRepo(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("postgres schema: %w", err)
		}
		return repo, db.Close, nil

	case config.BackendSQLite:
		db, err := database.NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite open: %w", err)
		}
		repo := sqlite.NewLedgerRepo(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("sqlite schema: %w", err)
		}
		return repo, db.Close, nil

	case config.BackendWAL:
		s, err := walstore.Open(cfg.WALDir)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
