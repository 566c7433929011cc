package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// NewSQLite opens path with WAL journaling. SQLite allows one writer at a
// time, so the pool is pinned to a single connection.
func NewSQLite(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := waitReady(db, 5*time.Second); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
