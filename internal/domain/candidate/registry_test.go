package candidate

import (
	"errors"
	"strconv"
	"testing"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return "c" + strconv.Itoa(n)
	}
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	reg := NewRegistryWithIDs(sequentialIDs())

	list, alice, err := reg.Add(nil, "  Alice ")
	if err != nil {
		t.Fatalf("add alice: %v", err)
	}
	if alice.Name != "Alice" || alice.VoteCount != 0 {
		t.Fatalf("unexpected candidate %+v", alice)
	}

	list, _, err = reg.Add(list, "Bob")
	if err != nil {
		t.Fatalf("add bob: %v", err)
	}

	got := reg.List(list)
	if len(got) != 2 || got[0].Name != "Alice" || got[1].Name != "Bob" {
		t.Fatalf("unexpected order %+v", got)
	}
	if got[0].ID == got[1].ID {
		t.Fatalf("ids must be unique, got %q twice", got[0].ID)
	}
}

func TestAddRejectsBlankNames(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"", "   ", "\t\n"} {
		if _, _, err := reg.Add(nil, name); !errors.Is(err, ErrBlankName) {
			t.Fatalf("expected ErrBlankName for %q, got %v", name, err)
		}
	}
}

func TestAddRegeneratesDuplicateID(t *testing.T) {
	ids := []string{"dup", "dup", "fresh"}
	reg := NewRegistryWithIDs(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	})

	list, _, _ := reg.Add(nil, "Alice")
	_, bob, err := reg.Add(list, "Bob")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if bob.ID != "fresh" {
		t.Fatalf("expected regenerated id, got %q", bob.ID)
	}
}

func TestIncrementVoteDoesNotMutateInput(t *testing.T) {
	reg := NewRegistryWithIDs(sequentialIDs())
	list, alice, _ := reg.Add(nil, "Alice")

	next, err := reg.IncrementVote(list, alice.ID)
	if err != nil {
		t.Fatalf("increment: %v", err)
	}
	if next[0].VoteCount != 1 {
		t.Fatalf("expected 1 vote, got %d", next[0].VoteCount)
	}
	if list[0].VoteCount != 0 {
		t.Fatalf("input slice was mutated")
	}
	if TotalVotes(next) != 1 {
		t.Fatalf("expected total 1, got %d", TotalVotes(next))
	}

	if _, err := reg.IncrementVote(list, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClear(t *testing.T) {
	if got := NewRegistry().Clear(); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}
}
