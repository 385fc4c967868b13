// Package quota tracks per-key daily usage of the YouTube Data API.
//
// Usage is persisted as a mapping from API key to calendar day (local
// clock) to accumulated cost units. Reads fail open to an empty ledger;
// writes propagate errors to the caller.
package quota

import (
	"sync"
	"time"

	"ytmix/internal/logger"
	"ytmix/internal/storage"

	log "github.com/sirupsen/logrus"
)

// DailyCeiling is the standard daily quota for a YouTube Data API key.
const DailyCeiling = 10000

const dayFormat = "2006-01-02"

// Status summarizes usage for a single key.
type Status struct {
	Today          int `json:"today_usage"`
	Week           int `json:"week_usage"`
	Month          int `json:"month_usage"`
	RemainingToday int `json:"remaining_today"`
}

// Ledger records API quota consumption per key per day. Every recorded
// usage is persisted immediately, so a crash loses at most the
// in-flight call.
type Ledger struct {
	mu   sync.Mutex
	path string
	data map[string]map[string]int
	log  *log.Entry

	// now is swappable for tests.
	now func() time.Time
}

// Open loads the ledger at path, or starts empty if the file is
// missing or unreadable.
func Open(path string) *Ledger {
	l := &Ledger{
		path: path,
		data: make(map[string]map[string]int),
		log:  logger.WithComponent("quota"),
		now:  time.Now,
	}

	var data map[string]map[string]int
	if err := storage.ReadJSON(path, &data); err != nil {
		if !storage.IsNotExist(err) {
			l.log.WithError(err).Warn("quota ledger unreadable, starting empty")
		}
		return l
	}
	if data != nil {
		l.data = data
	}
	return l
}

// RecordUsage adds cost units to the key's bucket for today and
// persists the ledger.
func (l *Ledger) RecordUsage(key string, cost int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	today := l.now().Format(dayFormat)
	if l.data[key] == nil {
		l.data[key] = make(map[string]int)
	}
	l.data[key][today] += cost

	return l.save()
}

// RecordCall records a single default-cost unit for key.
func (l *Ledger) RecordCall(key string) error {
	return l.RecordUsage(key, 1)
}

// Usage sums the key's buckets for today and the previous days-1 days.
// Missing buckets count as zero.
func (l *Ledger) Usage(key string, days int) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	buckets, ok := l.data[key]
	if !ok {
		return 0
	}

	total := 0
	date := l.now()
	for i := 0; i < days; i++ {
		total += buckets[date.Format(dayFormat)]
		date = date.AddDate(0, 0, -1)
	}
	return total
}

// Keys returns the keys with recorded usage.
func (l *Ledger) Keys() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	keys := make([]string, 0, len(l.data))
	for k := range l.data {
		keys = append(keys, k)
	}
	return keys
}

// GetStatus returns today/week/month usage and the remaining daily
// allowance for key.
func (l *Ledger) GetStatus(key string) Status {
	today := l.Usage(key, 1)
	remaining := DailyCeiling - today
	if remaining < 0 {
		remaining = 0
	}
	return Status{
		Today:          today,
		Week:           l.Usage(key, 7),
		Month:          l.Usage(key, 30),
		RemainingToday: remaining,
	}
}

// CleanOldData deletes day buckets older than daysToKeep and drops
// keys left with no buckets. Malformed date keys are skipped, not
// deleted.
func (l *Ledger) CleanOldData(daysToKeep int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().AddDate(0, 0, -daysToKeep)
	for key, buckets := range l.data {
		for day := range buckets {
			parsed, err := time.ParseInLocation(dayFormat, day, time.Local)
			if err != nil {
				continue
			}
			if parsed.Before(cutoff) {
				delete(buckets, day)
			}
		}
		if len(buckets) == 0 {
			delete(l.data, key)
		}
	}

	return l.save()
}

// save persists the ledger. Callers must hold l.mu.
func (l *Ledger) save() error {
	return storage.WriteJSON(l.path, l.data)
}
