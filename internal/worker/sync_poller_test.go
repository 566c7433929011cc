package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"vote-ledger/internal/domain/candidate"
	"vote-ledger/internal/domain/ledger"
	"vote-ledger/internal/metrics"
)

type fakeSource struct {
	mu    sync.Mutex
	snap  ledger.Snapshot
	err   error
	calls int
}

func (f *fakeSource) Snapshot(ctx context.Context) (ledger.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return ledger.Snapshot{}, f.err
	}
	return f.snap, nil
}

func (f *fakeSource) set(snap ledger.Snapshot, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap = snap
	f.err = err
}

func snapshotAt(version int64, votes int64) ledger.Snapshot {
	return ledger.Snapshot{
		Candidates: []candidate.Candidate{{ID: "a", Name: "Alice", VoteCount: votes}},
		VoterCount: votes,
		Version:    version,
	}
}

func TestPollOnceNotifiesOnNewVersionOnly(t *testing.T) {
	src := &fakeSource{snap: snapshotAt(1, 0)}
	p := NewSyncPoller(src, time.Second, nil)

	var seen []int64
	p.Register(ObserverFunc(func(s ledger.Snapshot) { seen = append(seen, s.Version) }))

	ctx := context.Background()
	if err := p.PollOnce(ctx); err != nil {
		t.Fatalf("poll: %v", err)
	}
	_ = p.PollOnce(ctx)
	src.set(snapshotAt(2, 1), nil)
	_ = p.PollOnce(ctx)

	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Fatalf("expected notifications for v1 and v2, got %v", seen)
	}
}

func TestPollOnceKeepsLastGoodSnapshot(t *testing.T) {
	src := &fakeSource{snap: snapshotAt(3, 2)}
	p := NewSyncPoller(src, time.Second, nil)

	notified := 0
	p.Register(ObserverFunc(func(ledger.Snapshot) { notified++ }))

	ctx := context.Background()
	_ = p.PollOnce(ctx)

	src.set(ledger.Snapshot{}, ledger.ErrStoreUnavailable)
	if err := p.PollOnce(ctx); !errors.Is(err, ledger.ErrStoreUnavailable) {
		t.Fatalf("expected store error, got %v", err)
	}

	last, ok := p.Last()
	if !ok || last.Version != 3 || last.VoterCount != 2 {
		t.Fatalf("expected last good v3, got %+v ok=%v", last, ok)
	}
	if notified != 1 {
		t.Fatalf("failed poll must not notify, got %d notifications", notified)
	}
}

func TestLastBeforeFirstPoll(t *testing.T) {
	p := NewSyncPoller(&fakeSource{err: ledger.ErrStoreUnavailable}, 0, nil)
	_ = p.PollOnce(context.Background())
	if _, ok := p.Last(); ok {
		t.Fatalf("expected no snapshot yet")
	}
}

func TestSubscribeReceivesNewestSnapshot(t *testing.T) {
	src := &fakeSource{snap: snapshotAt(1, 0)}
	p := NewSyncPoller(src, time.Second, nil)
	ctx := context.Background()
	_ = p.PollOnce(ctx)

	ch, cancel := p.Subscribe()
	defer cancel()

	first := <-ch
	if first.Version != 1 {
		t.Fatalf("expected current snapshot on subscribe, got v%d", first.Version)
	}

	// Nobody reads between these two polls; only v3 must be buffered.
	src.set(snapshotAt(2, 1), nil)
	_ = p.PollOnce(ctx)
	src.set(snapshotAt(3, 2), nil)
	_ = p.PollOnce(ctx)

	select {
	case got := <-ch:
		if got.Version != 3 {
			t.Fatalf("expected newest v3, got v%d", got.Version)
		}
	default:
		t.Fatalf("expected a buffered snapshot")
	}

	cancel()
	if _, open := <-ch; open {
		t.Fatalf("expected channel closed after cancel")
	}
	// Publishing after cancel must not panic.
	src.set(snapshotAt(4, 3), nil)
	_ = p.PollOnce(ctx)
}

func TestRunPollsUntilCanceled(t *testing.T) {
	src := &fakeSource{snap: snapshotAt(1, 0)}
	p := NewSyncPoller(src, 5*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for {
		src.mu.Lock()
		calls := src.calls
		src.mu.Unlock()
		if calls >= 3 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("poller did not poll, calls=%d", calls)
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("poller did not stop")
	}
}

func TestMetricsObserverTracksPolledVersion(t *testing.T) {
	src := &fakeSource{snap: snapshotAt(5_000_000, 3)}
	p := NewSyncPoller(src, time.Second, nil)
	p.Register(MetricsObserver())

	if err := p.PollOnce(context.Background()); err != nil {
		t.Fatalf("poll: %v", err)
	}
	if got := metrics.LedgerVersion(); got < 5_000_000 {
		t.Fatalf("expected version gauge at least 5000000, got %d", got)
	}
}
