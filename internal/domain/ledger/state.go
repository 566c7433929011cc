package ledger

import (
	"encoding/json"
	"fmt"

	"vote-ledger/internal/domain/candidate"
	"vote-ledger/internal/domain/voter"
)

// persisted is the stored layout of the combined record.
type persisted struct {
	Candidates []candidate.Candidate `json:"candidates"`
	VotedUsers voter.Set             `json:"votedUsers"`
}

func emptySnapshot() Snapshot {
	return Snapshot{
		Candidates: []candidate.Candidate{},
		voters:     voter.Set{},
	}
}

func decode(rec Record) (Snapshot, error) {
	var p persisted
	if err := json.Unmarshal(rec.Value, &p); err != nil {
		return Snapshot{}, fmt.Errorf("decode ledger record v%d: %w", rec.Version, err)
	}
	if p.Candidates == nil {
		p.Candidates = []candidate.Candidate{}
	}
	if p.VotedUsers == nil {
		p.VotedUsers = voter.Set{}
	}
	return Snapshot{
		Candidates: p.Candidates,
		VoterCount: int64(len(p.VotedUsers)),
		Version:    rec.Version,
		voters:     p.VotedUsers,
	}, nil
}

func encode(s Snapshot) ([]byte, error) {
	p := persisted{Candidates: s.Candidates, VotedUsers: s.voters}
	if p.Candidates == nil {
		p.Candidates = []candidate.Candidate{}
	}
	if p.VotedUsers == nil {
		p.VotedUsers = voter.Set{}
	}
	return json.Marshal(p)
}
