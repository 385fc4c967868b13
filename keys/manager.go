// Package keys manages the ordered ring of YouTube API keys: rotation
// on quota exhaustion, removal of proven-invalid keys, and validation
// of new candidates.
package keys

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"ytmix/internal/logger"
	"ytmix/internal/storage"
	"ytmix/quota"
	"ytmix/youtube"

	log "github.com/sirupsen/logrus"
)

// Sentinel errors for key management.
var (
	// ErrNoKeys indicates no API key is available.
	ErrNoKeys = errors.New("keys: no api keys configured")
	// ErrDuplicateKey indicates the candidate is already in the ring.
	ErrDuplicateKey = errors.New("keys: key already present")
)

// ClientFactory builds a remote-API handle bound to one key.
// Construction is stateless and idempotent.
type ClientFactory func(ctx context.Context, apiKey string) (youtube.API, error)

func defaultFactory(ctx context.Context, apiKey string) (youtube.API, error) {
	return youtube.NewClient(ctx, apiKey)
}

// Manager holds the ordered key ring and the active index. Every probe
// it issues consumes real remote quota and is recorded against the
// quota ledger.
type Manager struct {
	mu      sync.Mutex
	path    string
	keys    []string
	current int
	ledger  *quota.Ledger
	factory ClientFactory

	// ExhaustedPenalty is the cost charged against a candidate whose
	// validation probe was rejected for quota. A quota rejection is
	// treated as proof the key is already exhausted for the day.
	ExhaustedPenalty int

	log *log.Entry
}

// NewManager loads the persisted key list at path and merges in the
// bootstrap key (typically from the environment) if it is not already
// present. A missing or unreadable list starts empty.
func NewManager(path, bootstrap string, ledger *quota.Ledger) *Manager {
	m := &Manager{
		path:             path,
		ledger:           ledger,
		factory:          defaultFactory,
		ExhaustedPenalty: quota.DailyCeiling,
		log:              logger.WithComponent("keys"),
	}

	var list []string
	if err := storage.ReadJSON(path, &list); err != nil {
		if !storage.IsNotExist(err) {
			m.log.WithError(err).Warn("key list unreadable, starting empty")
		}
	}
	m.keys = list

	if bootstrap != "" && !contains(m.keys, bootstrap) {
		m.keys = append(m.keys, bootstrap)
	}
	return m
}

// SetClientFactory replaces the API client factory. Used by tests and
// callers that need custom transport options.
func (m *Manager) SetClientFactory(f ClientFactory) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.factory = f
}

// Keys returns a copy of the key ring in order.
func (m *Manager) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.keys...)
}

// ActiveKey returns the currently active key, or "" when the ring is
// empty.
func (m *Manager) ActiveKey() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.keys) == 0 {
		return ""
	}
	return m.keys[m.current]
}

// Client builds a remote-API handle for the active key.
func (m *Manager) Client(ctx context.Context) (youtube.API, error) {
	m.mu.Lock()
	if len(m.keys) == 0 {
		m.mu.Unlock()
		return nil, ErrNoKeys
	}
	key := m.keys[m.current]
	factory := m.factory
	m.mu.Unlock()

	return factory(ctx, key)
}

// Rotate advances through the ring, probing each candidate at most
// once with a minimal low-cost call. On success the new index is
// committed and the list persisted. Quota and transient failures skip
// to the next candidate; a proven-invalid key is removed from the
// ring. If every candidate fails, the original active key (or a
// clamped index if it was removed) is restored and Rotate reports
// false. The ring shrinks only on confirmed invalidity.
func (m *Manager) Rotate(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.keys) == 0 {
		return false
	}

	origKey := m.keys[m.current]
	origIdx := m.current
	candidates := append([]string(nil), m.keys...)
	tried := make(map[string]bool)

	for off := 1; off <= len(candidates); off++ {
		key := candidates[(origIdx+off)%len(candidates)]
		if tried[key] {
			continue
		}
		tried[key] = true

		pos := indexOf(m.keys, key)
		if pos < 0 {
			continue
		}

		err := m.probe(ctx, key)
		if err == nil {
			m.current = pos
			if perr := m.persist(); perr != nil {
				m.log.WithError(perr).Warn("failed to persist key list")
			}
			m.log.WithField("key", redact(key)).Info("rotated to new api key")
			return true
		}

		switch youtube.Classify(err) {
		case youtube.KindQuotaExceeded:
			m.log.WithField("key", redact(key)).Debug("candidate key exhausted, trying next")
		case youtube.KindInvalidKey:
			m.log.WithField("key", redact(key)).Warn("removing invalid api key")
			m.removeAt(pos)
		default:
			m.log.WithError(err).WithField("key", redact(key)).Debug("probe failed, trying next")
		}
	}

	// No candidate worked: restore the original active key.
	if pos := indexOf(m.keys, origKey); pos >= 0 {
		m.current = pos
	} else if len(m.keys) > 0 {
		m.current = origIdx % len(m.keys)
	} else {
		m.current = 0
	}
	return false
}

// Add validates a candidate key and appends it to the ring. The
// validation call is cost-bearing: a successful probe charges 100
// units against the new key; a quota-type rejection charges
// ExhaustedPenalty and the key is not added. This is a deliberate
// deterrent against add-spamming untested keys.
func (m *Manager) Add(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if contains(m.keys, key) {
		return ErrDuplicateKey
	}

	client, err := m.factory(ctx, key)
	if err != nil {
		return fmt.Errorf("build client: %w", err)
	}

	_, err = client.SearchVideos(ctx, youtube.SearchParams{Query: "music", MaxResults: 1})
	if err != nil {
		switch youtube.Classify(err) {
		case youtube.KindQuotaExceeded:
			if lerr := m.ledger.RecordUsage(key, m.ExhaustedPenalty); lerr != nil {
				return lerr
			}
			return fmt.Errorf("candidate key exhausted for today: %w", youtube.ErrQuotaExceeded)
		case youtube.KindInvalidKey:
			return fmt.Errorf("candidate key rejected: %w", youtube.ErrInvalidKey)
		default:
			return fmt.Errorf("validate key: %w", err)
		}
	}

	if lerr := m.ledger.RecordUsage(key, youtube.CostSearch); lerr != nil {
		return lerr
	}

	m.keys = append(m.keys, key)
	if err := m.persist(); err != nil {
		return err
	}
	m.log.WithField("key", redact(key)).Info("added api key")
	return nil
}

// Remove deletes key from the ring, adjusting the active index to stay
// in bounds, and persists the list.
func (m *Manager) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	pos := indexOf(m.keys, key)
	if pos < 0 {
		return fmt.Errorf("keys: %q not in ring", redact(key))
	}
	m.removeAt(pos)
	return m.persist()
}

// Test probes key with the minimal low-cost call and returns the probe
// error, if any. The probe cost is recorded against the ledger.
func (m *Manager) Test(ctx context.Context, key string) error {
	m.mu.Lock()
	factory := m.factory
	m.mu.Unlock()

	client, err := factory(ctx, key)
	if err != nil {
		return err
	}
	err = client.Ping(ctx)
	if lerr := m.ledger.RecordUsage(key, youtube.CostPing); lerr != nil {
		m.log.WithError(lerr).Warn("failed to record probe cost")
	}
	return err
}

// probe checks one key with the cheap Ping call, recording its cost.
// Callers must hold m.mu.
func (m *Manager) probe(ctx context.Context, key string) error {
	client, err := m.factory(ctx, key)
	if err != nil {
		return err
	}
	err = client.Ping(ctx)
	if lerr := m.ledger.RecordUsage(key, youtube.CostPing); lerr != nil {
		m.log.WithError(lerr).Warn("failed to record probe cost")
	}
	return err
}

// removeAt drops the key at pos and keeps the active index in bounds.
// Callers must hold m.mu.
func (m *Manager) removeAt(pos int) {
	m.keys = append(m.keys[:pos], m.keys[pos+1:]...)
	if len(m.keys) == 0 {
		m.current = 0
		return
	}
	if m.current > pos {
		m.current--
	}
	m.current %= len(m.keys)
}

// persist writes the key list. Callers must hold m.mu.
func (m *Manager) persist() error {
	return storage.WriteJSON(m.path, m.keys)
}

func contains(keys []string, key string) bool {
	return indexOf(keys, key) >= 0
}

func indexOf(keys []string, key string) int {
	for i, k := range keys {
		if k == key {
			return i
		}
	}
	return -1
}

// redact shortens a key for log output.
func redact(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
