package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"vote-ledger/internal/domain/candidate"
	"vote-ledger/internal/domain/voter"
	"vote-ledger/internal/metrics"
	"vote-ledger/internal/retry"
)

// Defaults sized so a burst of concurrent voters against a store with a
// few milliseconds of write latency all commit within the bound.
const (
	DefaultMaxAttempts   = 20
	DefaultRetryDelay    = time.Millisecond
	DefaultMaxRetryDelay = 100 * time.Millisecond
)

type Option func(*Service)

func WithMaxAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithRetryDelay sets the base backoff between CAS attempts. Zero retries
// immediately.
func WithRetryDelay(d time.Duration) Option {
	return func(s *Service) { s.retryDelay = d }
}

// WithMaxRetryDelay caps the backoff ceiling between CAS attempts.
func WithMaxRetryDelay(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.maxRetryDelay = d
		}
	}
}

// WithEvents publishes committed mutations on ch. Sends never block: a full
// channel drops the event.
func WithEvents(ch chan<- Event) Option {
	return func(s *Service) { s.events = ch }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithRegistry(r *candidate.Registry) Option {
	return func(s *Service) {
		if r != nil {
			s.registry = r
		}
	}
}

func WithKey(key string) Option {
	return func(s *Service) {
		if key != "" {
			s.key = key
		}
	}
}

// Service is the vote ledger. Every mutation reads the combined record,
// validates against it, and writes back with CompareAndSet on the version it
// read; a lost race re-reads and re-validates, up to maxAttempts times.
type Service struct {
	store         Store
	key           string
	registry      *candidate.Registry
	voters        *voter.Ledger
	maxAttempts   int
	retryDelay    time.Duration
	maxRetryDelay time.Duration
	events        chan<- Event
	logger        *slog.Logger
	now           func() time.Time
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:         store,
		key:           DefaultKey,
		registry:      candidate.NewRegistry(),
		voters:        voter.NewLedger(),
		maxAttempts:   DefaultMaxAttempts,
		retryDelay:    DefaultRetryDelay,
		maxRetryDelay: DefaultMaxRetryDelay,
		logger:        slog.Default(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	return s.load(ctx)
}

func (s *Service) HasVoted(ctx context.Context, voterID string) (bool, error) {
	voterID = strings.TrimSpace(voterID)
	if voterID == "" {
		return false, fmt.Errorf("%w: voter id is required", ErrValidation)
	}
	snap, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	return s.voters.HasVoted(snap.voters, voterID), nil
}

// CastVote records one vote for candidateID by voterID. A voter that already
// voted gets ErrAlreadyVoted and the tally is left untouched.
func (s *Service) CastVote(ctx context.Context, voterID, candidateID string) (Snapshot, error) {
	voterID = strings.TrimSpace(voterID)
	candidateID = strings.TrimSpace(candidateID)
	if voterID == "" {
		return Snapshot{}, fmt.Errorf("%w: voter id is required", ErrValidation)
	}
	if candidateID == "" {
		return Snapshot{}, fmt.Errorf("%w: candidate id is required", ErrValidation)
	}

	var name string
	snap, err := s.mutate(ctx, OpCastVote, func(cur Snapshot) (Snapshot, error) {
		idx := candidate.Find(cur.Candidates, candidateID)
		if idx < 0 {
			return Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, candidateID)
		}
		if s.voters.HasVoted(cur.voters, voterID) {
			return Snapshot{}, fmt.Errorf("%w: %s", ErrAlreadyVoted, voterID)
		}

		cands, err := s.registry.IncrementVote(cur.Candidates, candidateID)
		if err != nil {
			return Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, candidateID)
		}
		set, _ := s.voters.Record(cur.voters, voterID)
		name = cur.Candidates[idx].Name

		return Snapshot{
			Candidates: cands,
			VoterCount: s.voters.Count(set),
			voters:     set,
		}, nil
	})
	if err != nil {
		return Snapshot{}, err
	}

	s.publish(Event{
		Op:            OpCastVote,
		VoterID:       voterID,
		CandidateID:   candidateID,
		CandidateName: name,
		Version:       snap.Version,
		VoterCount:    snap.VoterCount,
	})
	return snap, nil
}

func (s *Service) AddCandidate(ctx context.Context, name string) (candidate.Candidate, Snapshot, error) {
	if strings.TrimSpace(name) == "" {
		return candidate.Candidate{}, Snapshot{}, fmt.Errorf("%w: %w", ErrValidation, candidate.ErrBlankName)
	}

	var added candidate.Candidate
	snap, err := s.mutate(ctx, OpAddCandidate, func(cur Snapshot) (Snapshot, error) {
		cands, c, err := s.registry.Add(cur.Candidates, name)
		if err != nil {
			return Snapshot{}, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		added = c
		return Snapshot{
			Candidates: cands,
			VoterCount: cur.VoterCount,
			voters:     cur.voters,
		}, nil
	})
	if err != nil {
		return candidate.Candidate{}, Snapshot{}, err
	}

	s.publish(Event{
		Op:            OpAddCandidate,
		CandidateID:   added.ID,
		CandidateName: added.Name,
		Version:       snap.Version,
		VoterCount:    snap.VoterCount,
	})
	return added, snap, nil
}

// ResetAll replaces the ledger with an empty one. It does not compare
// versions; the store bumps the version so any CAS still in flight fails and
// re-validates against the empty ledger. A vote racing a reset may therefore
// be rejected, never half-applied.
func (s *Service) ResetAll(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{
		Candidates: s.registry.Clear(),
		voters:     s.voters.Clear(),
	}
	payload, err := encode(snap)
	if err != nil {
		return Snapshot{}, err
	}

	version, err := s.store.Set(ctx, s.key, payload)
	if err != nil {
		metrics.IncMutation(OpReset, "error")
		return Snapshot{}, unavailable(err)
	}
	snap.Version = version
	metrics.IncMutation(OpReset, "committed")
	s.logger.Info("ledger reset", "version", version)

	s.publish(Event{Op: OpReset, Version: version})
	return snap, nil
}

func (s *Service) mutate(ctx context.Context, op string, apply func(Snapshot) (Snapshot, error)) (Snapshot, error) {
	var committed Snapshot
	attempt := 0

	backoff := retry.Backoff{Attempts: s.maxAttempts, Base: s.retryDelay, Max: s.maxRetryDelay}
	err := retry.Do(ctx, backoff, func() error {
		attempt++
		cur, err := s.load(ctx)
		if err != nil {
			return retry.Stop(err)
		}

		next, err := apply(cur)
		if err != nil {
			return retry.Stop(err)
		}

		payload, err := encode(next)
		if err != nil {
			return retry.Stop(err)
		}

		ok, version, err := s.store.CompareAndSet(ctx, s.key, cur.Version, payload)
		if err != nil {
			return retry.Stop(unavailable(err))
		}
		if !ok {
			metrics.IncConflict(op)
			s.logger.Debug("ledger cas conflict",
				"op", op,
				"attempt", attempt,
				"expected_version", cur.Version,
				"current_version", version,
			)
			return fmt.Errorf("%w: expected version %d, found %d", ErrConflict, cur.Version, version)
		}

		next.Version = version
		committed = next
		return nil
	})
	if err != nil {
		result := "rejected"
		switch {
		case errors.Is(err, ErrConflict):
			result = "conflict"
			s.logger.Warn("ledger retries exhausted", "op", op, "attempts", attempt)
		case errors.Is(err, ErrStoreUnavailable):
			result = "error"
		}
		metrics.IncMutation(op, result)
		return Snapshot{}, err
	}

	metrics.IncMutation(op, "committed")
	return committed, nil
}

func (s *Service) load(ctx context.Context) (Snapshot, error) {
	rec, err := s.store.Get(ctx, s.key)
	if errors.Is(err, ErrKeyNotFound) {
		return emptySnapshot(), nil
	}
	if err != nil {
		return Snapshot{}, unavailable(err)
	}
	return decode(rec)
}

func (s *Service) publish(ev Event) {
	if s.events == nil {
		return
	}
	ev.At = s.now()
	select {
	case s.events <- ev:
	default:
		s.logger.Warn("ledger event dropped", "op", ev.Op, "version", ev.Version)
	}
}

func unavailable(err error) error {
	if errors.Is(err, ErrStoreUnavailable) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
