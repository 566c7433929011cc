package voter

// Set holds the voter ids that have cast a vote. Presence is the "has voted"
// fact; the value is always true.
type Set map[string]bool

type Ledger struct{}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) HasVoted(set Set, voterID string) bool {
	return set[voterID]
}

// Record returns a copy of set with voterID added. added is false when the id
// was already present, in which case the returned set has the same contents.
func (l *Ledger) Record(set Set, voterID string) (next Set, added bool) {
	next = make(Set, len(set)+1)
	for id := range set {
		next[id] = true
	}
	if set[voterID] {
		return next, false
	}
	next[voterID] = true
	return next, true
}

func (l *Ledger) Count(set Set) int64 {
	return int64(len(set))
}

func (l *Ledger) Clear() Set {
	return Set{}
}
