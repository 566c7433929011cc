package candidate

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrBlankName = errors.New("candidate name is required")
	ErrNotFound  = errors.New("candidate not found")
)

// Registry operates on an ordered candidate list. It never mutates the slice it
// is given; every change returns a fresh copy so callers can hold on to the
// snapshot they read.
type Registry struct {
	newID func() string
}

func NewRegistry() *Registry {
	return &Registry{newID: uuid.NewString}
}

// NewRegistryWithIDs is used where ids must be deterministic.
func NewRegistryWithIDs(newID func() string) *Registry {
	if newID == nil {
		newID = uuid.NewString
	}
	return &Registry{newID: newID}
}

func (r *Registry) Add(list []Candidate, name string) ([]Candidate, Candidate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, Candidate{}, ErrBlankName
	}

	c := Candidate{ID: r.newID(), Name: name}
	for Find(list, c.ID) >= 0 {
		c.ID = r.newID()
	}

	next := make([]Candidate, len(list), len(list)+1)
	copy(next, list)
	next = append(next, c)
	return next, c, nil
}

func (r *Registry) List(list []Candidate) []Candidate {
	out := make([]Candidate, len(list))
	copy(out, list)
	return out
}

func (r *Registry) IncrementVote(list []Candidate, id string) ([]Candidate, error) {
	idx := Find(list, id)
	if idx < 0 {
		return nil, ErrNotFound
	}
	next := r.List(list)
	next[idx].VoteCount++
	return next, nil
}

func (r *Registry) Clear() []Candidate {
	return []Candidate{}
}

// Find returns the index of the candidate with the given id, or -1.
func Find(list []Candidate, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

func TotalVotes(list []Candidate) int64 {
	var total int64
	for _, c := range list {
		total += c.VoteCount
	}
	return total
}
