package store

import (
	"sort"
	"sync"
	"time"

	"ytmix/internal/logger"
	"ytmix/internal/storage"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Playlists persists named playlists. Names are unique; saving an
// existing name replaces the record wholesale.
type Playlists struct {
	mu   sync.Mutex
	path string
	data map[string]*Playlist
	log  *log.Entry
}

// OpenPlaylists loads the playlist store at path, or starts empty if
// the file is missing or unreadable.
func OpenPlaylists(path string) *Playlists {
	p := &Playlists{
		path: path,
		data: make(map[string]*Playlist),
		log:  logger.WithComponent("store"),
	}

	var data map[string]*Playlist
	if err := storage.ReadJSON(path, &data); err != nil {
		if !storage.IsNotExist(err) {
			p.log.WithError(err).Warn("playlist store unreadable, starting empty")
		}
		return p
	}
	if data != nil {
		p.data = data
	}
	return p
}

// Save stores a playlist under name, replacing any existing record,
// and persists the store.
func (p *Playlists) Save(name, url string, videoIDs []string) (*Playlist, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pl := &Playlist{
		ID:        uuid.NewString(),
		URL:       url,
		VideoIDs:  append([]string(nil), videoIDs...),
		CreatedAt: time.Now(),
	}
	p.data[name] = pl

	if err := p.save(); err != nil {
		return nil, &StoreError{Op: "save", Entity: "playlist", ID: name, Err: err}
	}
	return pl, nil
}

// Get returns the playlist saved under name.
func (p *Playlists) Get(name string) (*Playlist, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pl, ok := p.data[name]
	if !ok {
		return nil, &StoreError{Op: "read", Entity: "playlist", ID: name, Err: ErrNotFound}
	}
	return pl, nil
}

// List returns all playlist names, newest first.
func (p *Playlists) List() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	names := make([]string, 0, len(p.data))
	for name := range p.data {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return p.data[names[i]].CreatedAt.After(p.data[names[j]].CreatedAt)
	})
	return names
}

// Delete removes the playlist saved under name and persists the store.
func (p *Playlists) Delete(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.data[name]; !ok {
		return &StoreError{Op: "delete", Entity: "playlist", ID: name, Err: ErrNotFound}
	}
	delete(p.data, name)

	if err := p.save(); err != nil {
		return &StoreError{Op: "delete", Entity: "playlist", ID: name, Err: err}
	}
	return nil
}

// MarkPlayed stamps the playlist's last-played time and persists the
// store.
func (p *Playlists) MarkPlayed(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	pl, ok := p.data[name]
	if !ok {
		return &StoreError{Op: "update", Entity: "playlist", ID: name, Err: ErrNotFound}
	}
	now := time.Now()
	pl.LastPlayed = &now

	if err := p.save(); err != nil {
		return &StoreError{Op: "update", Entity: "playlist", ID: name, Err: err}
	}
	return nil
}

// save persists the store. Callers must hold p.mu.
func (p *Playlists) save() error {
	return storage.WriteJSON(p.path, p.data)
}
