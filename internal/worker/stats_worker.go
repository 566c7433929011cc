package worker

import (
	"context"
	"log/slog"

	"vote-ledger/internal/domain/ledger"
	"vote-ledger/internal/metrics"
)

type StatsWorker struct {
	Ch     <-chan ledger.Event
	logger *slog.Logger
}

func NewStatsWorker(ch <-chan ledger.Event, logger *slog.Logger) *StatsWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsWorker{Ch: ch, logger: logger}
}

func (w *StatsWorker) Run(ctx context.Context) {
	w.logger.Info("stats worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("stats worker stopped")
			return
		case ev, ok := <-w.Ch:
			if !ok {
				w.logger.Info("stats worker stopped", "reason", "channel closed")
				return
			}
			w.handle(ev)
		}
	}
}

func (w *StatsWorker) handle(ev ledger.Event) {
	switch ev.Op {
	case ledger.OpCastVote:
		metrics.IncVoteCast(ev.CandidateName)
		w.logger.Info("vote committed",
			"candidate_id", ev.CandidateID,
			"candidate", ev.CandidateName,
			"version", ev.Version,
			"voters", ev.VoterCount,
		)
	case ledger.OpAddCandidate:
		w.logger.Info("candidate added", "candidate_id", ev.CandidateID, "candidate", ev.CandidateName, "version", ev.Version)
	case ledger.OpReset:
		w.logger.Info("ledger reset committed", "version", ev.Version)
	}
	metrics.SetLedgerState(ev.Version, ev.VoterCount)
}
