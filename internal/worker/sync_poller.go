package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"vote-ledger/internal/domain/ledger"
	"vote-ledger/internal/metrics"
)

const DefaultPollInterval = 2 * time.Second

type SnapshotSource interface {
	Snapshot(ctx context.Context) (ledger.Snapshot, error)
}

type Observer interface {
	OnSnapshot(ledger.Snapshot)
}

type ObserverFunc func(ledger.Snapshot)

func (f ObserverFunc) OnSnapshot(s ledger.Snapshot) { f(s) }

// SyncPoller reads the ledger on a fixed interval and pushes each new version
// to its observers. It never writes. A failed read keeps the last good
// snapshot and notifies nobody.
type SyncPoller struct {
	src      SnapshotSource
	interval time.Duration
	logger   *slog.Logger

	mu        sync.RWMutex
	observers []Observer
	subs      map[chan ledger.Snapshot]struct{}
	last      ledger.Snapshot
	hasLast   bool
}

func NewSyncPoller(src SnapshotSource, interval time.Duration, logger *slog.Logger) *SyncPoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncPoller{
		src:      src,
		interval: interval,
		logger:   logger,
		subs:     make(map[chan ledger.Snapshot]struct{}),
	}
}

// MetricsObserver keeps the ledger version and voter gauges at the newest
// polled snapshot.
func MetricsObserver() Observer {
	return ObserverFunc(func(s ledger.Snapshot) {
		metrics.SetLedgerState(s.Version, s.VoterCount)
	})
}

func (p *SyncPoller) Register(o Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, o)
}

// Subscribe returns a channel carrying every published snapshot. A slow
// reader only ever sees the newest one. Call cancel to release it.
func (p *SyncPoller) Subscribe() (<-chan ledger.Snapshot, func()) {
	ch := make(chan ledger.Snapshot, 1)

	p.mu.Lock()
	p.subs[ch] = struct{}{}
	if p.hasLast {
		ch <- p.last
	}
	p.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subs, ch)
			close(ch)
			p.mu.Unlock()
		})
	}
	return ch, cancel
}

// Last returns the last good snapshot, if any poll has succeeded yet.
func (p *SyncPoller) Last() (ledger.Snapshot, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last, p.hasLast
}

func (p *SyncPoller) Run(ctx context.Context) {
	p.logger.Info("sync poller started", "interval", p.interval.String())
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	_ = p.PollOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("sync poller stopped")
			return
		case <-ticker.C:
			_ = p.PollOnce(ctx)
		}
	}
}

// PollOnce runs a single cycle. The error is informational; the poller
// already handled it by keeping the previous snapshot.
func (p *SyncPoller) PollOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	snap, err := p.src.Snapshot(ctx)
	if err != nil {
		metrics.IncPollFailure()
		p.logger.Warn("sync poll skipped", "error", err)
		return err
	}

	p.mu.Lock()
	changed := !p.hasLast || snap.Version != p.last.Version
	p.last = snap
	p.hasLast = true
	observers := append([]Observer(nil), p.observers...)
	if changed {
		for ch := range p.subs {
			offer(ch, snap)
		}
	}
	p.mu.Unlock()

	if !changed {
		return nil
	}
	for _, o := range observers {
		o.OnSnapshot(snap)
	}
	return nil
}

func offer(ch chan ledger.Snapshot, snap ledger.Snapshot) {
	select {
	case ch <- snap:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snap:
	default:
	}
}
