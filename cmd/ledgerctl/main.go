package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vote-ledger/internal/config"
	"vote-ledger/internal/domain/admin"
	"vote-ledger/internal/domain/ledger"
	"vote-ledger/internal/platform/logging"
	"vote-ledger/internal/repository"
)

var (
	flagBackend    string
	flagDSN        string
	flagSQLitePath string
	flagWALDir     string
)

var rootCmd = &cobra.Command{
	Use:           "ledgerctl",
	Short:         "Inspect and operate a vote ledger store directly",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagBackend, "backend", "", "store backend: memory, postgres, sqlite or wal (default from STORE_BACKEND)")
	pf.StringVar(&flagDSN, "dsn", "", "postgres DSN (default from DB_DSN)")
	pf.StringVar(&flagSQLitePath, "sqlite-path", "", "sqlite database file (default from SQLITE_PATH)")
	pf.StringVar(&flagWALDir, "wal-dir", "", "write-ahead log directory (default from WAL_DIR)")
}

// session bundles an opened ledger with the func that releases its store.
type session struct {
	ledger *ledger.Service
	admin  *admin.Controller
	close  func() error
}

func openSession(ctx context.Context) (*session, error) {
	cfg := config.Load()
	if flagBackend != "" {
		cfg.StoreBackend = flagBackend
	}
	if flagDSN != "" {
		cfg.DB_DSN = flagDSN
	}
	if flagSQLitePath != "" {
		cfg.SQLitePath = flagSQLitePath
	}
	if flagWALDir != "" {
		cfg.WALDir = flagWALDir
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	store, closeStore, err := repository.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StoreBackend, err)
	}

	svc := ledger.NewService(store,
		ledger.WithMaxAttempts(cfg.CASMaxAttempts),
		ledger.WithRetryDelay(cfg.CASRetryDelay),
		ledger.WithMaxRetryDelay(cfg.CASMaxRetryDelay),
		ledger.WithLogger(logger),
	)
	return &session{ledger: svc, admin: admin.NewController(svc), close: closeStore}, nil
}

// withSession opens the configured store for the duration of fn.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()
	return fn(ctx, s)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
