// Package store persists the ytmix selection history: the used-video
// dedup ledger and saved playlists.
//
// Both stores are whole-file JSON read-modify-write. Reads fail open
// to an empty structure; write failures propagate to the caller.
package store

import (
	"errors"
	"fmt"
)

// Sentinel errors for store conditions.
var (
	// ErrNotFound indicates the requested record was not found.
	ErrNotFound = errors.New("store: not found")
)

// StoreError wraps store errors with operation and entity context.
type StoreError struct {
	// Op is the operation that failed ("save", "delete", "clear").
	Op string
	// Entity is the record type ("playlist", "used_video").
	Entity string
	// ID is the record identifier if applicable.
	ID string
	// Err is the underlying error.
	Err error
}

// Error returns a string representation of the store error.
func (e *StoreError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("store: %s %s %s: %v", e.Op, e.Entity, e.ID, e.Err)
	}
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Entity, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *StoreError) Unwrap() error { return e.Err }
