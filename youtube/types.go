// Package youtube wraps the YouTube Data API v3 surface ytmix consumes:
// video search, detail lookups, and channel resolution, all bound to a
// single API key.
package youtube

import (
	"context"
	"time"
)

// Quota costs in units, per the YouTube Data API cost table.
const (
	// CostSearch is the cost of one search.list call.
	CostSearch = 100
	// CostVideoDetails is the cost of one videos.list call.
	CostVideoDetails = 1
	// CostPing is the cost of the cheap channels.list probe.
	CostPing = 1
)

// Search result ordering accepted by SearchParams.Order.
const (
	OrderRelevance = "relevance"
	OrderViewCount = "viewCount"
	OrderDate      = "date"
	OrderRating    = "rating"
)

// Duration buckets accepted by SearchParams.Duration.
const (
	DurationAny    = "any"
	DurationShort  = "short"  // under 4 minutes
	DurationMedium = "medium" // 4 to 20 minutes
	DurationLong   = "long"   // over 20 minutes
)

// SearchParams configures one search.list call.
type SearchParams struct {
	// Query is the free-text search term.
	Query string
	// Order is one of the Order* constants. Empty means relevance.
	Order string
	// PublishedAfter restricts results to videos published after this
	// time. Zero means no restriction.
	PublishedAfter time.Time
	// CategoryID restricts results to one content category
	// (e.g. "10" for music).
	CategoryID string
	// Region is the regionCode parameter (e.g. "US").
	Region string
	// Duration is one of the Duration* constants. Empty means any.
	Duration string
	// ChannelID scopes the search to one channel. Empty means all.
	ChannelID string
	// MaxResults caps the page size (the API caps it at 50).
	MaxResults int64
}

// SearchResult is one item stub returned by a search call.
type SearchResult struct {
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	ChannelTitle string    `json:"channel_title"`
	PublishedAt  time.Time `json:"published_at"`
}

// VideoDetails is the detail record for a single video.
type VideoDetails struct {
	VideoID         string `json:"video_id"`
	Title           string `json:"title"`
	ChannelTitle    string `json:"channel_title"`
	DurationSeconds int    `json:"duration_seconds"`
	ViewCount       uint64 `json:"view_count"`
	LikeCount       uint64 `json:"like_count"`
}

// API is the remote surface the rest of ytmix consumes. Implementations
// are bound to a single API key; *Client is the production
// implementation.
type API interface {
	// SearchVideos issues one search.list call and returns up to
	// p.MaxResults item stubs.
	SearchVideos(ctx context.Context, p SearchParams) ([]SearchResult, error)
	// VideoDetails fetches the detail record for one video. A payload
	// missing the expected fields yields ErrNoDetails.
	VideoDetails(ctx context.Context, videoID string) (*VideoDetails, error)
	// ResolveChannelID resolves a channel name to its channel ID.
	ResolveChannelID(ctx context.Context, name string) (string, error)
	// Ping issues a minimal, low-cost call to verify the key works.
	Ping(ctx context.Context) error
}
