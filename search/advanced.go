package search

import (
	"context"
	"time"

	"ytmix/youtube"
)

// advancedRotateRetries bounds how many key rotations one advanced
// search attempts before surfacing a quota failure.
const advancedRotateRetries = 3

// AdvancedOptions configures a single-term ad hoc search.
type AdvancedOptions struct {
	// Query is the search term.
	Query string
	// Order is one of the youtube.Order* constants. Empty means
	// relevance.
	Order string
	// Duration is one of the youtube.Duration* bucket constants.
	Duration string
	// Channel optionally scopes the search to one channel by name.
	Channel string
	// MaxResults caps the accepted set. The remote page is capped at
	// 50 regardless.
	MaxResults int
}

// AdvancedSearch runs a single-term, single-order search through the
// same cache-then-quota-then-fetch-then-filter pipeline as SmartSearch,
// capped at one page of the search endpoint. Quota exhaustion triggers
// up to three key rotations before the failure surfaces.
func (e *Engine) AdvancedSearch(ctx context.Context, opts AdvancedOptions) ([]youtube.VideoDetails, error) {
	if opts.MaxResults <= 0 || opts.MaxResults > 50 {
		opts.MaxResults = 50
	}
	if opts.Order == "" {
		opts.Order = youtube.OrderRelevance
	}

	client, err := e.keys.Client(ctx)
	if err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		results, err := e.advancedOnce(ctx, client, opts)
		if err == nil {
			return results, nil
		}
		if youtube.Classify(err) != youtube.KindQuotaExceeded || attempt >= advancedRotateRetries {
			return nil, err
		}

		e.log.WithField("attempt", attempt+1).Info("quota exhausted, rotating api key")
		if !e.keys.Rotate(ctx) {
			return nil, err
		}
		client, err = e.keys.Client(ctx)
		if err != nil {
			return nil, err
		}
	}
}

// advancedOnce performs one pass of the advanced pipeline with the
// current client.
func (e *Engine) advancedOnce(ctx context.Context, client youtube.API, opts AdvancedOptions) ([]youtube.VideoDetails, error) {
	channelID := ""
	if opts.Channel != "" {
		id, err := e.resolveChannel(ctx, client, opts.Channel)
		if err != nil {
			return nil, err
		}
		channelID = id
	}

	results, err := e.searchPage(ctx, client, youtube.SearchParams{
		Query:          opts.Query,
		Order:          opts.Order,
		PublishedAfter: time.Now().AddDate(0, 0, -e.cfg.DaysBack),
		CategoryID:     e.cfg.CategoryID,
		Region:         e.cfg.Region,
		Duration:       opts.Duration,
		ChannelID:      channelID,
		MaxResults:     50,
	})
	if err != nil {
		return nil, err
	}

	minDur, maxDur := e.durationBounds(opts.Duration)
	seen := make(map[string]bool)
	var accepted []youtube.VideoDetails
	for _, r := range results {
		if len(accepted) >= opts.MaxResults {
			break
		}
		if seen[r.VideoID] || e.used.IsUsed(r.VideoID) {
			continue
		}
		seen[r.VideoID] = true

		d, err := e.details(ctx, client, r.VideoID)
		if err != nil {
			if youtube.Classify(err) == youtube.KindQuotaExceeded {
				return nil, err
			}
			e.log.WithError(err).WithField("video", r.VideoID).Debug("skipping candidate without details")
			continue
		}
		if e.accept(d, minDur, maxDur) {
			accepted = append(accepted, *d)
		}
	}

	return accepted, nil
}

// durationBounds combines the configured duration bounds with the
// explicit bucket bounds of the advanced path.
func (e *Engine) durationBounds(bucket string) (int, int) {
	minDur := e.cfg.MinDurationSeconds
	maxDur := e.cfg.MaxDurationSeconds

	switch bucket {
	case youtube.DurationShort:
		if maxDur == 0 || maxDur > 240 {
			maxDur = 240
		}
	case youtube.DurationMedium:
		if minDur < 240 {
			minDur = 240
		}
		if maxDur == 0 || maxDur > 1200 {
			maxDur = 1200
		}
	case youtube.DurationLong:
		if minDur < 1200 {
			minDur = 1200
		}
	}
	return minDur, maxDur
}
