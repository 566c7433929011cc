package ledger

import (
	"context"
	"time"

	"vote-ledger/internal/domain/candidate"
	"vote-ledger/internal/domain/voter"
)

// DefaultKey is the single combined record holding candidates and voters, so
// both change under one version.
const DefaultKey = "ledger"

// Record is a versioned value as held by a Store. Version 0 means absent.
type Record struct {
	Value   []byte
	Version int64
}

// Store is the persistent key-value collaborator. Implementations must make
// CompareAndSet and Set atomic with respect to each other.
type Store interface {
	// Get returns ErrKeyNotFound when the key is absent.
	Get(ctx context.Context, key string) (Record, error)
	// CompareAndSet writes value only if the stored version equals expected
	// (0 = key must be absent). It returns the version after the call: the new
	// version when committed, the conflicting one otherwise.
	CompareAndSet(ctx context.Context, key string, expected int64, value []byte) (bool, int64, error)
	// Set writes value unconditionally and returns the new version, which is
	// always greater than any version previously stored under key.
	Set(ctx context.Context, key string, value []byte) (int64, error)
}

// Snapshot is an immutable read of the ledger tagged with its version.
type Snapshot struct {
	Candidates []candidate.Candidate `json:"candidates"`
	VoterCount int64                 `json:"voterCount"`
	Version    int64                 `json:"version"`

	voters voter.Set
}

func (s Snapshot) HasVoted(voterID string) bool {
	return s.voters[voterID]
}

const (
	OpCastVote     = "cast_vote"
	OpAddCandidate = "add_candidate"
	OpReset        = "reset"
)

// Event describes a committed mutation.
type Event struct {
	Op            string
	VoterID       string
	CandidateID   string
	CandidateName string
	Version       int64
	VoterCount    int64
	At            time.Time
}
