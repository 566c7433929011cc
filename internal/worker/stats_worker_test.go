package worker

import (
	"context"
	"testing"
	"time"

	"vote-ledger/internal/domain/ledger"
	"vote-ledger/internal/metrics"
)

func TestStatsWorkerDrainsUntilClosed(t *testing.T) {
	ch := make(chan ledger.Event, 3)
	ch <- ledger.Event{Op: ledger.OpAddCandidate, CandidateName: "Alice", Version: 1}
	ch <- ledger.Event{Op: ledger.OpCastVote, CandidateName: "Alice", Version: 2, VoterCount: 1}
	ch <- ledger.Event{Op: ledger.OpReset, Version: 3}
	close(ch)

	done := make(chan struct{})
	go func() {
		NewStatsWorker(ch, nil).Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("worker did not stop on closed channel")
	}
	if len(ch) != 0 {
		t.Fatalf("expected all events consumed, %d left", len(ch))
	}
}

func TestStatsWorkerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewStatsWorker(make(chan ledger.Event), nil).Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("worker did not stop on cancel")
	}
}

func TestStatsWorkerIgnoresOutOfOrderVersions(t *testing.T) {
	w := NewStatsWorker(nil, nil)
	w.handle(ledger.Event{Op: ledger.OpCastVote, CandidateName: "Alice", Version: 1_000_007, VoterCount: 7})
	w.handle(ledger.Event{Op: ledger.OpCastVote, CandidateName: "Alice", Version: 1_000_005, VoterCount: 5})

	if got := metrics.LedgerVersion(); got < 1_000_007 {
		t.Fatalf("version gauge went backwards to %d", got)
	}
}
