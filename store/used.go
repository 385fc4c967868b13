package store

import (
	"os"
	"sync"

	"ytmix/internal/logger"
	"ytmix/internal/storage"

	log "github.com/sirupsen/logrus"
)

// UsedVideos is the persistent dedup ledger, a flat mapping from video
// ID to usage metadata.
type UsedVideos struct {
	mu   sync.Mutex
	path string
	data map[string]UsedVideo
	log  *log.Entry
}

// OpenUsedVideos loads the ledger at path, or starts empty if the file
// is missing or unreadable.
func OpenUsedVideos(path string) *UsedVideos {
	u := &UsedVideos{
		path: path,
		data: make(map[string]UsedVideo),
		log:  logger.WithComponent("store"),
	}

	var data map[string]UsedVideo
	if err := storage.ReadJSON(path, &data); err != nil {
		if !storage.IsNotExist(err) {
			u.log.WithError(err).Warn("used-videos ledger unreadable, starting empty")
		}
		return u
	}
	if data != nil {
		u.data = data
	}
	return u
}

// IsUsed reports whether videoID has been surfaced before.
func (u *UsedVideos) IsUsed(videoID string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	_, ok := u.data[videoID]
	return ok
}

// MarkUsed records videoID with its metadata, overwriting any previous
// record, and persists the ledger.
func (u *UsedVideos) MarkUsed(videoID string, meta UsedVideo) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.data[videoID] = meta
	if err := u.save(); err != nil {
		return &StoreError{Op: "save", Entity: "used_video", ID: videoID, Err: err}
	}
	return nil
}

// MarkAllUsed records a batch of videos with one persist.
func (u *UsedVideos) MarkAllUsed(videos map[string]UsedVideo) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	for id, meta := range videos {
		u.data[id] = meta
	}
	if err := u.save(); err != nil {
		return &StoreError{Op: "save", Entity: "used_video", Err: err}
	}
	return nil
}

// Count returns the number of ledger entries.
func (u *UsedVideos) Count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.data)
}

// Clear deletes the backing file and resets the in-memory ledger. A
// missing file is not an error.
func (u *UsedVideos) Clear() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.data = make(map[string]UsedVideo)
	if err := os.Remove(u.path); err != nil && !os.IsNotExist(err) {
		return &StoreError{Op: "clear", Entity: "used_video", Err: err}
	}
	return nil
}

// save persists the ledger. Callers must hold u.mu.
func (u *UsedVideos) save() error {
	return storage.WriteJSON(u.path, u.data)
}
