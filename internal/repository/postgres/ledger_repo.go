package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"vote-ledger/internal/domain/ledger"
)

var _ ledger.Store = (*LedgerRepo)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS ledger_records (
    key        TEXT PRIMARY KEY,
    value      JSONB NOT NULL,
    version    BIGINT NOT NULL CHECK (version > 0),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

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
	err := r.db.QueryRowContext(ctx, `
        SELECT value, version FROM ledger_records WHERE key = $1
    `, key).Scan(&rec.Value, &rec.Version)
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
            VALUES ($1, $2, 1)
            RETURNING version
        `, key, string(value)).Scan(&version)
		if err == nil {
			return true, version, nil
		}
		if !isUniqueViolation(err) {
			return false, 0, err
		}
		current, err := r.currentVersion(ctx, key)
		return false, current, err
	}

	err := r.db.QueryRowContext(ctx, `
        UPDATE ledger_records
        SET value = $1, version = version + 1, updated_at = now()
        WHERE key = $2 AND version = $3
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
        VALUES ($1, $2, 1)
        ON CONFLICT (key) DO UPDATE
        SET value = EXCLUDED.value,
            version = ledger_records.version + 1,
            updated_at = now()
        RETURNING version
    `, key, string(value)).Scan(&version)
	return version, err
}

func (r *LedgerRepo) currentVersion(ctx context.Context, key string) (int64, error) {
	var version int64
	err := r.db.QueryRowContext(ctx, `SELECT version FROM ledger_records WHERE key = $1`, key).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return version, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
