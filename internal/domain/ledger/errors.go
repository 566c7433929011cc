package ledger

import "errors"

var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("candidate not found")
	ErrAlreadyVoted     = errors.New("voter already voted")
	ErrConflict         = errors.New("ledger changed concurrently")
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrKeyNotFound is returned by Store.Get when the key has never been written.
	ErrKeyNotFound = errors.New("key not found")
)
