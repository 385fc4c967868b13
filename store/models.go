package store

import "time"

// UsedVideo records one previously surfaced video. Presence in the
// ledger permanently excludes the video from future searches until
// the ledger is cleared.
type UsedVideo struct {
	// UsedAt is when the video was selected.
	UsedAt time.Time `json:"used_at"`
	// PlaylistType labels the originating search ("smart", "advanced").
	PlaylistType string `json:"playlist_type"`
	// Cached metadata, kept so history is readable without remote calls.
	Title     string `json:"title,omitempty"`
	Channel   string `json:"channel,omitempty"`
	Duration  int    `json:"duration,omitempty"`
	ViewCount uint64 `json:"viewCount,omitempty"`
	LikeCount uint64 `json:"likeCount,omitempty"`
}

// Playlist is a saved, named selection of video IDs.
type Playlist struct {
	// ID is an internal unique identifier (UUID).
	ID string `json:"id"`
	// URL is the playable watch URL for the selection.
	URL string `json:"url"`
	// VideoIDs is the ordered selection.
	VideoIDs []string `json:"video_ids"`
	// CreatedAt is when the playlist was saved.
	CreatedAt time.Time `json:"created_at"`
	// LastPlayed is when the playlist was last opened, nil if never.
	LastPlayed *time.Time `json:"last_played"`
}
