package watchlist

import "errors"

var (
	// ErrNotFound is returned by Storage.Get when a key has no value
	ErrNotFound = errors.New("key not found")
	// ErrPersist wraps every failure to write the watchlist
	ErrPersist = errors.New("failed to persist watchlist")
)
