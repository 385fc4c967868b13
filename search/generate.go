package search

import (
	"context"
	"fmt"
	"time"

	"ytmix/store"
	"ytmix/youtube"
)

// BelowMinimumError reports that a search accepted fewer videos than
// the caller's minimum threshold.
type BelowMinimumError struct {
	Found   int
	Minimum int
}

// Error returns a string representation of the error.
func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("search: only %d videos found, need at least %d", e.Found, e.Minimum)
}

// PlaylistResult is the outcome of a successful playlist generation.
type PlaylistResult struct {
	Name   string
	URL    string
	Videos []youtube.VideoDetails
}

// GeneratePlaylist runs a smart search, requires at least
// MinPlaylistSize accepted videos, writes the selection to the dedup
// ledger, and saves the playlist under name. An empty name gets a
// timestamped default.
func (e *Engine) GeneratePlaylist(ctx context.Context, name string) (*PlaylistResult, error) {
	videos, err := e.SmartSearch(ctx, e.cfg.TargetCount)
	if err != nil {
		return nil, err
	}
	if len(videos) < e.cfg.MinPlaylistSize {
		return nil, &BelowMinimumError{Found: len(videos), Minimum: e.cfg.MinPlaylistSize}
	}

	ids := make([]string, len(videos))
	usedMeta := make(map[string]store.UsedVideo, len(videos))
	now := time.Now()
	for i, v := range videos {
		ids[i] = v.VideoID
		usedMeta[v.VideoID] = store.UsedVideo{
			UsedAt:       now,
			PlaylistType: "smart",
			Title:        v.Title,
			Channel:      v.ChannelTitle,
			Duration:     v.DurationSeconds,
			ViewCount:    v.ViewCount,
			LikeCount:    v.LikeCount,
		}
	}

	url := youtube.WatchURL(ids)

	if err := e.used.MarkAllUsed(usedMeta); err != nil {
		return nil, err
	}

	if name == "" {
		name = "smart-" + now.Format("20060102-150405")
	}
	if _, err := e.playlists.Save(name, url, ids); err != nil {
		return nil, err
	}

	e.log.WithFields(map[string]any{"name": name, "videos": len(ids)}).Info("playlist generated")
	return &PlaylistResult{Name: name, URL: url, Videos: videos}, nil
}
