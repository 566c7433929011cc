package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3"

	"vote-ledger/internal/domain/ledger"
)

var _ ledger.Store = (*LedgerRepo)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS ledger_records (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    version    INTEGER NOT NULL CHECK (version > 0),
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// LedgerRepo is the single-file counterpart of the postgres repository.
type LedgerRepo struct {
	db *sql.DB
}

func NewLedgerRepo(db *sql.DB) *LedgerRepo {
	return &LedgerRepo{db: db}
}

func (r *LedgerRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

func (r *LedgerRepo) Get(ctx context.Context, key string) (ledger.Record, error) {
	var rec ledger.Record
	err := r.db.QueryRowContext(ctx, `SELECT value, version FROM ledger_records WHERE key = ?`, key).
		Scan(&rec.Value, &rec.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.Record{}, ledger.ErrKeyNotFound
	}
	if err != nil {
		return ledger.Record{}, err
	}
	return rec, nil
}

func (r *LedgerRepo) CompareAndSet(ctx context.Context, key string, expected int64, value []byte) (bool, int64, error) {
	var version int64

	if expected == 0 {
		err := r.db.QueryRowContext(ctx, `
            INSERT INTO ledger_records (key, value, version)
            VALUES (?, ?, 1)
            RETURNING version
        `, key, string(value)).Scan(&version)
		if err == nil {
			return true, version, nil
		}
		if !isConstraintViolation(err) {
			return false, 0, err
		}
		current, err := r.currentVersion(ctx, key)
		return false, current, err
	}

	err := r.db.QueryRowContext(ctx, `
        UPDATE ledger_records
        SET value = ?, version = version + 1, updated_at = CURRENT_TIMESTAMP
        WHERE key = ? AND version = ?
        RETURNING version
    `, string(value), key, expected).Scan(&version)
	if err == nil {
		return true, version, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, 0, err
	}
	current, err := r.currentVersion(ctx, key)
	return false, current, err
}

func (r *LedgerRepo) Set(ctx context.Context, key string, value []byte) (int64, error) {
	var version int64
	err := r.db.QueryRowContext(ctx, `
        INSERT INTO ledger_records (key, value, version)
        VALUES (?, ?, 1)
        ON CONFLICT (key) DO UPDATE
        SET value = excluded.value,
            version = ledger_records.version + 1,
            updated_at = CURRENT_TIMESTAMP
        RETURNING version
    `, key, string(value)).Scan(&version)
	return version, err
}

func (r *LedgerRepo) currentVersion(ctx context.Context, key string) (int64, error) {
	var version int64
	err := r.db.QueryRowContext(ctx, `SELECT version FROM ledger_records WHERE key = ?`, key).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return version, err
}

func isConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}
