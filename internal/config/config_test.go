package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func lookupFrom(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := parse(lookupFrom(nil))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Port != "8080" || cfg.StoreBackend != BackendMemory {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.PollInterval != 2*time.Second || cfg.CASMaxAttempts != 20 ||
		cfg.CASRetryDelay != time.Millisecond || cfg.CASMaxRetryDelay != 100*time.Millisecond {
		t.Fatalf("unexpected ledger defaults %+v", cfg)
	}
}

func TestParseOverrides(t *testing.T) {
	cfg, err := parse(lookupFrom(map[string]string{
		"STORE_BACKEND":    "wal",
		"WAL_DIR":          "/var/lib/ledger",
		"POLL_INTERVAL":    "500ms",
		"CAS_MAX_ATTEMPTS": "9",
	}))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.StoreBackend != BackendWAL || cfg.WALDir != "/var/lib/ledger" {
		t.Fatalf("unexpected backend %+v", cfg)
	}
	if cfg.PollInterval != 500*time.Millisecond || cfg.CASMaxAttempts != 9 {
		t.Fatalf("unexpected overrides %+v", cfg)
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	cases := []map[string]string{
		{"STORE_BACKEND": "redis"},
		{"POLL_INTERVAL": "soon"},
		{"CAS_MAX_ATTEMPTS": "0"},
		{"VOTE_RATE_BURST": "lots"},
		{"CAS_MAX_RETRY_DELAY": "fast"},
	}
	for _, c := range cases {
		if _, err := parse(lookupFrom(c)); err == nil {
			t.Fatalf("expected error for %v", c)
		}
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.yml")
	data := "STORE_BACKEND: sqlite\nSQLITE_PATH: /tmp/ledger.db\nCAS_MAX_ATTEMPTS: 7\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	file, err := readFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	cfg, err := parse(lookupFrom(file))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.StoreBackend != BackendSQLite || cfg.SQLitePath != "/tmp/ledger.db" || cfg.CASMaxAttempts != 7 {
		t.Fatalf("unexpected config from file %+v", cfg)
	}

	if m, err := readFile(""); err != nil || m != nil {
		t.Fatalf("empty path must be a no-op, got %v %v", m, err)
	}
}

func TestParseReportsInsecureDefaults(t *testing.T) {
	cfg, err := parse(lookupFrom(map[string]string{"JWT_SECRET": ""}))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(cfg.InsecureDefaults) != 2 || cfg.InsecureDefaults[0] != "JWT_SECRET" || cfg.InsecureDefaults[1] != "ADMIN_PASSWORD" {
		t.Fatalf("expected both secrets flagged, got %v", cfg.InsecureDefaults)
	}
	if cfg.JWTSecret == "" || cfg.AdminPassword == "" {
		t.Fatalf("dev values must still be usable, got %+v", cfg)
	}

	cfg, err = parse(lookupFrom(map[string]string{
		"JWT_SECRET":     "s3cret",
		"ADMIN_PASSWORD": "hunter2",
	}))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(cfg.InsecureDefaults) != 0 {
		t.Fatalf("configured secrets must not be flagged, got %v", cfg.InsecureDefaults)
	}
}
