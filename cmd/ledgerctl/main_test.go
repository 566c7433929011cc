package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"vote-ledger/internal/domain/admin"
	"vote-ledger/internal/domain/candidate"
)

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"--backend", "wal", "--wal-dir", dir}, args...))
	resetConfirmed = false
	err := rootCmd.Execute()
	return out.String(), err
}

func TestLedgerctlRoundTrip(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "add-candidate", "Alice")
	if err != nil {
		t.Fatalf("add-candidate: %v", err)
	}
	var c candidate.Candidate
	if err := json.Unmarshal([]byte(out), &c); err != nil {
		t.Fatalf("decode candidate: %v (%s)", err, out)
	}
	if c.Name != "Alice" || c.ID == "" {
		t.Fatalf("unexpected candidate %+v", c)
	}

	if _, err := run(t, dir, "vote", "u1", c.ID); err != nil {
		t.Fatalf("vote: %v", err)
	}
	if _, err := run(t, dir, "vote", "u1", c.ID); err == nil || !strings.Contains(err.Error(), "already voted") {
		t.Fatalf("expected already voted error, got %v", err)
	}

	out, err = run(t, dir, "has-voted", "u1")
	if err != nil {
		t.Fatalf("has-voted: %v", err)
	}
	if !strings.Contains(out, `"hasVoted": true`) {
		t.Fatalf("expected hasVoted true, got %s", out)
	}

	out, err = run(t, dir, "tally")
	if err != nil {
		t.Fatalf("tally: %v", err)
	}
	var tally admin.Tally
	if err := json.Unmarshal([]byte(out), &tally); err != nil {
		t.Fatalf("decode tally: %v", err)
	}
	if tally.VoterCount != 1 || len(tally.Candidates) != 1 || tally.Candidates[0].VoteCount != 1 {
		t.Fatalf("unexpected tally %+v", tally)
	}
}

func TestResetRequiresConfirmation(t *testing.T) {
	dir := t.TempDir()

	if _, err := run(t, dir, "add-candidate", "Bob"); err != nil {
		t.Fatalf("add-candidate: %v", err)
	}
	if _, err := run(t, dir, "reset"); err == nil {
		t.Fatal("expected reset without --yes to fail")
	}

	out, err := run(t, dir, "reset", "--yes")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	var tally admin.Tally
	if err := json.Unmarshal([]byte(out), &tally); err != nil {
		t.Fatalf("decode tally: %v", err)
	}
	if len(tally.Candidates) != 0 || tally.VoterCount != 0 {
		t.Fatalf("expected empty tally, got %+v", tally)
	}
}
