// Package cache persists time-boxed YouTube API responses so repeated
// searches do not re-spend quota.
//
// Three independent namespaces are kept: search results, video detail
// records, and channel-name resolutions. Entries expire lazily: an
// entry older than the cache lifetime is treated as absent, never
// actively purged. The file also carries a legacy running quota
// counter that predates the quota ledger; callers keep both in sync.
package cache

import (
	"strings"
	"sync"
	"time"

	"ytmix/internal/logger"
	"ytmix/internal/storage"
	"ytmix/youtube"

	log "github.com/sirupsen/logrus"
)

// DefaultTTL is the default cache entry lifetime.
const DefaultTTL = 24 * time.Hour

type searchEntry struct {
	Results   []youtube.SearchResult `json:"results"`
	Timestamp time.Time              `json:"timestamp"`
}

type detailsEntry struct {
	Details   youtube.VideoDetails `json:"details"`
	Timestamp time.Time            `json:"timestamp"`
}

type channelEntry struct {
	ChannelID string    `json:"channel_id"`
	Timestamp time.Time `json:"timestamp"`
}

// cacheFile is the persisted shape. last_quota_reset and quota_used
// are legacy fields kept for backward format compatibility; the quota
// ledger is authoritative.
type cacheFile struct {
	SearchCache       map[string]searchEntry  `json:"search_cache"`
	VideoDetailsCache map[string]detailsEntry `json:"video_details_cache"`
	ChannelCache      map[string]channelEntry `json:"channel_cache"`
	LastQuotaReset    time.Time               `json:"last_quota_reset"`
	QuotaUsed         int                     `json:"quota_used"`
}

// Cache is the response cache. Unbounded growth is an accepted
// tradeoff; only the dedup ledger has an explicit clearing command.
type Cache struct {
	mu   sync.Mutex
	path string
	ttl  time.Duration
	data cacheFile
	log  *log.Entry

	now func() time.Time
}

// Open loads the cache at path, or starts with the empty four-field
// shape if the file is missing or unreadable.
func Open(path string, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		path: path,
		ttl:  ttl,
		data: emptyFile(),
		log:  logger.WithComponent("cache"),
		now:  time.Now,
	}

	var data cacheFile
	if err := storage.ReadJSON(path, &data); err != nil {
		if !storage.IsNotExist(err) {
			c.log.WithError(err).Warn("cache unreadable, starting empty")
		}
		return c
	}
	if data.SearchCache == nil {
		data.SearchCache = make(map[string]searchEntry)
	}
	if data.VideoDetailsCache == nil {
		data.VideoDetailsCache = make(map[string]detailsEntry)
	}
	if data.ChannelCache == nil {
		data.ChannelCache = make(map[string]channelEntry)
	}
	c.data = data
	return c
}

func emptyFile() cacheFile {
	return cacheFile{
		SearchCache:       make(map[string]searchEntry),
		VideoDetailsCache: make(map[string]detailsEntry),
		ChannelCache:      make(map[string]channelEntry),
		LastQuotaReset:    time.Now(),
	}
}

// SearchKey builds the composite key for the search namespace.
func SearchKey(query, order, duration, channel string) string {
	return strings.Join([]string{query, order, duration, channel}, "|")
}

func (c *Cache) fresh(ts time.Time) bool {
	return c.now().Sub(ts) < c.ttl
}

// GetSearch returns cached search results for key, if present and fresh.
func (c *Cache) GetSearch(key string) ([]youtube.SearchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.data.SearchCache[key]
	if !ok || !c.fresh(e.Timestamp) {
		return nil, false
	}
	return e.Results, true
}

// PutSearch stores search results under key, stamped with the current
// time, and persists the cache.
func (c *Cache) PutSearch(key string, results []youtube.SearchResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data.SearchCache[key] = searchEntry{Results: results, Timestamp: c.now()}
	return c.save()
}

// GetDetails returns the cached detail record for videoID, if present
// and fresh.
func (c *Cache) GetDetails(videoID string) (*youtube.VideoDetails, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.data.VideoDetailsCache[videoID]
	if !ok || !c.fresh(e.Timestamp) {
		return nil, false
	}
	d := e.Details
	return &d, true
}

// PutDetails stores a detail record and persists the cache.
func (c *Cache) PutDetails(d *youtube.VideoDetails) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data.VideoDetailsCache[d.VideoID] = detailsEntry{Details: *d, Timestamp: c.now()}
	return c.save()
}

// GetChannel returns the cached channel ID for a channel name, if
// present and fresh.
func (c *Cache) GetChannel(name string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.data.ChannelCache[name]
	if !ok || !c.fresh(e.Timestamp) {
		return "", false
	}
	return e.ChannelID, true
}

// PutChannel stores a channel-name resolution and persists the cache.
func (c *Cache) PutChannel(name, channelID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data.ChannelCache[name] = channelEntry{ChannelID: channelID, Timestamp: c.now()}
	return c.save()
}

// AddQuotaUsed increments the legacy running quota counter, rolling it
// over when a day has passed since the last reset. The quota ledger
// remains authoritative; this keeps the legacy file fields coherent.
func (c *Cache) AddQuotaUsed(units int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.now().Sub(c.data.LastQuotaReset) > 24*time.Hour {
		c.data.QuotaUsed = 0
		c.data.LastQuotaReset = c.now()
	}
	c.data.QuotaUsed += units
	return c.save()
}

// QuotaUsed returns the legacy running quota counter.
func (c *Cache) QuotaUsed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data.QuotaUsed
}

// Save persists the cache. Best effort: the cache can always be
// rebuilt from remote calls.
func (c *Cache) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save()
}

// save persists the cache. Callers must hold c.mu.
func (c *Cache) save() error {
	return storage.WriteJSON(c.path, c.data)
}
