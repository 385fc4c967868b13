package search

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"ytmix/cache"
	"ytmix/internal/logger"
	"ytmix/internal/retry"
	"ytmix/keys"
	"ytmix/quota"
	"ytmix/store"
	"ytmix/youtube"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Engine orchestrates multi-term searches against the active API key:
// cache first, then a quota check, then the remote call, then filters
// against the dedup ledger and content rules.
type Engine struct {
	keys      *keys.Manager
	cache     *cache.Cache
	ledger    *quota.Ledger
	used      *store.UsedVideos
	playlists *store.Playlists
	cfg       Config

	limiter  *rate.Limiter
	retryCfg retry.Config
	rng      *rand.Rand
	log      *log.Entry
}

// New builds an engine over the given collaborators.
func New(km *keys.Manager, c *cache.Cache, ledger *quota.Ledger, used *store.UsedVideos, playlists *store.Playlists, cfg Config) *Engine {
	if cfg.PaceInterval <= 0 {
		cfg.PaceInterval = DefaultConfig().PaceInterval
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultConfig().RetryDelay
	}
	return &Engine{
		keys:      km,
		cache:     c,
		ledger:    ledger,
		used:      used,
		playlists: playlists,
		cfg:       cfg,
		limiter:   rate.NewLimiter(rate.Every(cfg.PaceInterval), 1),
		retryCfg:  retry.FixedDelay(cfg.RetryDelay),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		log:       logger.WithComponent("search"),
	}
}

// Config returns the engine's search configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// SmartSearch runs the multi-term multi-order sampler: a random sample
// of trending terms, each queried under four ranking orders, candidates
// filtered and accumulated until maxResults is reached or the term
// space is exhausted.
//
// Quota exhaustion mid-run halts further remote calls and returns the
// partial result set; fewer results than requested is a valid outcome,
// not an error.
func (e *Engine) SmartSearch(ctx context.Context, maxResults int) ([]youtube.VideoDetails, error) {
	if maxResults <= 0 {
		maxResults = e.cfg.TargetCount
	}

	client, err := e.keys.Client(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -e.cfg.DaysBack)
	seen := make(map[string]bool)
	var accepted []youtube.VideoDetails

	for _, term := range e.sampleTerms() {
		if len(accepted) >= maxResults {
			break
		}
		for _, order := range searchOrders {
			if len(accepted) >= maxResults {
				break
			}

			results, err := e.searchPage(ctx, client, youtube.SearchParams{
				Query:          term,
				Order:          order,
				PublishedAfter: cutoff,
				CategoryID:     e.cfg.CategoryID,
				Region:         e.cfg.Region,
				MaxResults:     50,
			})
			if err != nil {
				if youtube.Classify(err) == youtube.KindQuotaExceeded {
					e.log.WithField("accepted", len(accepted)).Info("quota exhausted, returning partial results")
					return accepted, nil
				}
				e.log.WithError(err).WithFields(log.Fields{"term": term, "order": order}).Warn("search failed, trying next order")
				continue
			}

			for _, r := range results {
				if len(accepted) >= maxResults {
					break
				}
				if seen[r.VideoID] || e.used.IsUsed(r.VideoID) {
					continue
				}
				seen[r.VideoID] = true

				d, err := e.details(ctx, client, r.VideoID)
				if err != nil {
					if youtube.Classify(err) == youtube.KindQuotaExceeded {
						e.log.WithField("accepted", len(accepted)).Info("quota exhausted, returning partial results")
						return accepted, nil
					}
					if errors.Is(err, youtube.ErrNoDetails) {
						e.log.WithField("video", r.VideoID).Debug("no details available, skipping")
						continue
					}
					e.log.WithError(err).WithField("video", r.VideoID).Warn("detail fetch failed, skipping")
					continue
				}

				if e.accept(d, e.cfg.MinDurationSeconds, e.cfg.MaxDurationSeconds) {
					accepted = append(accepted, *d)
				}
			}
		}
	}

	return accepted, nil
}

// sampleTerms draws a random sample of trending terms.
func (e *Engine) sampleTerms() []string {
	terms := append([]string(nil), trendingTerms...)
	e.rng.Shuffle(len(terms), func(i, j int) {
		terms[i], terms[j] = terms[j], terms[i]
	})
	n := e.cfg.TermSample
	if n <= 0 || n > len(terms) {
		n = len(terms)
	}
	return terms[:n]
}

// searchPage issues one cache-first search call. Uncached calls pass
// the soft-ceiling quota check first and retry once on a transient
// error after a fixed delay.
func (e *Engine) searchPage(ctx context.Context, client youtube.API, p youtube.SearchParams) ([]youtube.SearchResult, error) {
	key := cache.SearchKey(p.Query, p.Order, p.Duration, p.ChannelID)
	if results, ok := e.cache.GetSearch(key); ok {
		return results, nil
	}

	if err := e.checkQuota(youtube.CostSearch); err != nil {
		return nil, err
	}
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var results []youtube.SearchResult
	err := retry.Do(ctx, e.retryCfg, transientOnly, func(ctx context.Context) error {
		r, err := client.SearchVideos(ctx, p)
		if err != nil {
			return err
		}
		results = r
		return nil
	})
	if rerr := e.recordUsage(youtube.CostSearch); rerr != nil {
		return nil, rerr
	}
	if err != nil {
		return nil, err
	}

	if cerr := e.cache.PutSearch(key, results); cerr != nil {
		e.log.WithError(cerr).Warn("failed to persist search cache")
	}
	return results, nil
}

// details fetches the detail record for one video, cache first.
func (e *Engine) details(ctx context.Context, client youtube.API, videoID string) (*youtube.VideoDetails, error) {
	if d, ok := e.cache.GetDetails(videoID); ok {
		return d, nil
	}

	if err := e.checkQuota(youtube.CostVideoDetails); err != nil {
		return nil, err
	}
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	d, err := client.VideoDetails(ctx, videoID)
	if rerr := e.recordUsage(youtube.CostVideoDetails); rerr != nil {
		return nil, rerr
	}
	if err != nil {
		return nil, err
	}

	if cerr := e.cache.PutDetails(d); cerr != nil {
		e.log.WithError(cerr).Warn("failed to persist details cache")
	}
	return d, nil
}

// resolveChannel resolves a channel name to its ID, cache first.
func (e *Engine) resolveChannel(ctx context.Context, client youtube.API, name string) (string, error) {
	if id, ok := e.cache.GetChannel(name); ok {
		return id, nil
	}

	if err := e.checkQuota(youtube.CostSearch); err != nil {
		return "", err
	}
	if err := e.limiter.Wait(ctx); err != nil {
		return "", err
	}

	id, err := client.ResolveChannelID(ctx, name)
	if rerr := e.recordUsage(youtube.CostSearch); rerr != nil {
		return "", rerr
	}
	if err != nil {
		return "", err
	}

	if cerr := e.cache.PutChannel(name, id); cerr != nil {
		e.log.WithError(cerr).Warn("failed to persist channel cache")
	}
	return id, nil
}

// checkQuota verifies the active key can absorb cost without crossing
// the soft ceiling.
func (e *Engine) checkQuota(cost int) error {
	key := e.keys.ActiveKey()
	if key == "" {
		return keys.ErrNoKeys
	}
	if e.ledger.Usage(key, 1)+cost > SoftQuotaCeiling {
		return fmt.Errorf("soft ceiling %d reached for active key: %w", SoftQuotaCeiling, youtube.ErrQuotaExceeded)
	}
	return nil
}

// recordUsage charges cost against the active key and mirrors it into
// the cache's legacy running counter.
func (e *Engine) recordUsage(cost int) error {
	key := e.keys.ActiveKey()
	if key == "" {
		return keys.ErrNoKeys
	}
	if err := e.ledger.RecordUsage(key, cost); err != nil {
		return err
	}
	if err := e.cache.AddQuotaUsed(cost); err != nil {
		e.log.WithError(err).Warn("failed to update legacy quota counter")
	}
	return nil
}

// accept applies the content filters with explicit duration bounds.
// maxDuration of 0 disables the upper bound.
func (e *Engine) accept(d *youtube.VideoDetails, minDuration, maxDuration int) bool {
	if d.DurationSeconds < minDuration {
		return false
	}
	if maxDuration > 0 && d.DurationSeconds > maxDuration {
		return false
	}

	title := strings.ToLower(d.Title)
	for _, kw := range e.cfg.ExcludeKeywords {
		if strings.Contains(title, strings.ToLower(kw)) {
			return false
		}
	}
	if !containsAny(title, e.cfg.IncludeKeywords) && !containsAny(title, musicIndicators) {
		return false
	}

	if d.ViewCount < e.cfg.MinViewCount {
		return false
	}
	return true
}

func containsAny(title string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(title, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// transientOnly retries only transient remote errors.
func transientOnly(err error) bool {
	return youtube.Classify(err) == youtube.KindTransient
}
