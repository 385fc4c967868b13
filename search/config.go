// Package search implements the playlist-generation search engine: a
// bounded, best-effort sampler over the YouTube search API that
// filters, deduplicates, and accumulates candidate videos.
package search

import "time"

// SoftQuotaCeiling is the engine's conservative per-key daily budget,
// kept below the API's 10,000-unit ceiling to leave headroom for
// probes and out-of-band usage.
const SoftQuotaCeiling = 9500

// Config holds immutable per-run search settings. Defaults bias toward
// non-regional music content.
type Config struct {
	// TargetCount is the number of videos a generated playlist aims for.
	TargetCount int
	// MinDurationSeconds is the inclusive lower duration bound.
	MinDurationSeconds int
	// MaxDurationSeconds is the inclusive upper duration bound.
	// Zero disables the upper bound.
	MaxDurationSeconds int
	// MinViewCount is the minimum popularity threshold.
	MinViewCount uint64
	// ExcludeKeywords reject a candidate when any appears in its title
	// (case-insensitive substring).
	ExcludeKeywords []string
	// IncludeKeywords accept a candidate when any appears in its title;
	// the generic music-indicator vocabulary also counts.
	IncludeKeywords []string
	// DaysBack is the recency window for searches.
	DaysBack int
	// CategoryID restricts searches to one content category.
	CategoryID string
	// Region is the search regionCode.
	Region string
	// TermSample is how many trending terms one smart search draws.
	TermSample int
	// MinPlaylistSize is the minimum accepted-video count for a
	// generated playlist.
	MinPlaylistSize int
	// MinAdHocResults is the minimum result count for an ad hoc search
	// to be considered satisfying.
	MinAdHocResults int
	// PaceInterval is the delay between consecutive remote calls.
	PaceInterval time.Duration
	// RetryDelay is the fixed delay before the single retry of a
	// transient remote error.
	RetryDelay time.Duration
}

// DefaultConfig returns the stock music-playlist configuration.
func DefaultConfig() Config {
	return Config{
		TargetCount:        50,
		MinDurationSeconds: 180,
		MaxDurationSeconds: 3650,
		MinViewCount:       100,
		ExcludeKeywords: []string{
			"hindi", "bollywood", "tamil", "telugu", "punjabi", "bhojpuri",
		},
		IncludeKeywords: []string{
			"pop", "urban", "rnb", "mixes", "hiphop", "kenyan rnb",
			"russian trap", "afrobeat", "afropop", "reggae", "kikuyu gospel",
		},
		DaysBack:        2000,
		CategoryID:      "10",
		Region:          "US",
		TermSample:      15,
		MinPlaylistSize: 10,
		MinAdHocResults: 5,
		PaceInterval:    100 * time.Millisecond,
		RetryDelay:      2 * time.Second,
	}
}
