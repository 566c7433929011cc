package admin

import (
	"context"

	"vote-ledger/internal/domain/candidate"
	"vote-ledger/internal/domain/ledger"
)

// Ledger is the subset of ledger.Service the controller delegates to.
type Ledger interface {
	AddCandidate(ctx context.Context, name string) (candidate.Candidate, ledger.Snapshot, error)
	ResetAll(ctx context.Context) (ledger.Snapshot, error)
	Snapshot(ctx context.Context) (ledger.Snapshot, error)
}

type Result struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	VoteCount  int64   `json:"voteCount"`
	Percentage float64 `json:"percentage"`
}

type Tally struct {
	Candidates []Result `json:"candidates"`
	VoterCount int64    `json:"voterCount"`
	Version    int64    `json:"version"`
}

// Controller holds no state of its own; every call goes straight to the ledger.
type Controller struct {
	ledger Ledger
}

func NewController(l Ledger) *Controller {
	return &Controller{ledger: l}
}

func (c *Controller) AddCandidate(ctx context.Context, name string) (candidate.Candidate, error) {
	added, _, err := c.ledger.AddCandidate(ctx, name)
	return added, err
}

func (c *Controller) ResetAll(ctx context.Context) (ledger.Snapshot, error) {
	return c.ledger.ResetAll(ctx)
}

func (c *Controller) CurrentTally(ctx context.Context) (Tally, error) {
	snap, err := c.ledger.Snapshot(ctx)
	if err != nil {
		return Tally{}, err
	}
	return TallyOf(snap), nil
}

func TallyOf(snap ledger.Snapshot) Tally {
	total := candidate.TotalVotes(snap.Candidates)
	results := make([]Result, 0, len(snap.Candidates))
	for _, c := range snap.Candidates {
		var p float64
		if total > 0 {
			p = float64(c.VoteCount) * 100.0 / float64(total)
		}
		results = append(results, Result{
			ID:         c.ID,
			Name:       c.Name,
			VoteCount:  c.VoteCount,
			Percentage: p,
		})
	}
	return Tally{
		Candidates: results,
		VoterCount: snap.VoterCount,
		Version:    snap.Version,
	}
}
