package ytmix

import (
	"ytmix/keys"
	"ytmix/search"
	"ytmix/store"
	"ytmix/youtube"
)

// Error handling types exported for library users.
//
// All error types support the standard error handling patterns:
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, ytmix.ErrQuotaExceeded) {
//		fmt.Println("Daily quota exhausted")
//	}
//
// Using errors.As() for wrapped errors:
//
//	var storeErr *ytmix.StoreError
//	if errors.As(err, &storeErr) {
//		fmt.Printf("%s %s failed: %v\n", storeErr.Op, storeErr.Entity, storeErr.Err)
//	}

// Type aliases for convenient error handling.
type (
	// StoreError wraps errors during store operations.
	StoreError = store.StoreError
	// BelowMinimumError reports a search that found too few videos.
	BelowMinimumError = search.BelowMinimumError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrQuotaExceeded indicates the API quota is exhausted.
	ErrQuotaExceeded = youtube.ErrQuotaExceeded
	// ErrInvalidKey indicates the API key was rejected as invalid.
	ErrInvalidKey = youtube.ErrInvalidKey
	// ErrNoDetails indicates the detail record for a video is unavailable.
	ErrNoDetails = youtube.ErrNoDetails
	// ErrChannelNotFound indicates no channel matched the search.
	ErrChannelNotFound = youtube.ErrChannelNotFound

	// Key pool errors
	// ErrNoKeys indicates no API key is configured.
	ErrNoKeys = keys.ErrNoKeys
	// ErrDuplicateKey indicates the key is already in the pool.
	ErrDuplicateKey = keys.ErrDuplicateKey

	// Store errors
	// ErrNotFound indicates an entity was not found in the store.
	ErrNotFound = store.ErrNotFound
)

// Classify maps an error to a stable remote-failure kind.
func Classify(err error) youtube.Kind {
	return youtube.Classify(err)
}
