package youtube

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

// probeChannelID is a well-known channel used for the cheap Ping call.
const probeChannelID = "UC_x5XG1OV2P6uZZ5FSM9Ttw" // Google Developers

// Client implements API against the YouTube Data API v3, bound to one
// API key. Construction is stateless and idempotent: building several
// clients for the same key is harmless.
type Client struct {
	service *yt.Service
	apiKey  string
}

// NewClient builds a client bound to apiKey.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}

	service, err := yt.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &Client{service: service, apiKey: apiKey}, nil
}

// Key returns the API key this client is bound to.
func (c *Client) Key() string {
	return c.apiKey
}

// SearchVideos issues one search.list call (100 quota units).
func (c *Client) SearchVideos(ctx context.Context, p SearchParams) ([]SearchResult, error) {
	if p.MaxResults <= 0 || p.MaxResults > 50 {
		p.MaxResults = 50
	}

	call := c.service.Search.List([]string{"id", "snippet"}).
		Q(p.Query).
		Type("video").
		MaxResults(p.MaxResults).
		Context(ctx)

	if p.Order != "" {
		call = call.Order(p.Order)
	}
	if p.CategoryID != "" {
		call = call.VideoCategoryId(p.CategoryID)
	}
	if p.Region != "" {
		call = call.RegionCode(p.Region)
	}
	if !p.PublishedAfter.IsZero() {
		call = call.PublishedAfter(p.PublishedAfter.UTC().Format(time.RFC3339))
	}
	if p.Duration != "" && p.Duration != DurationAny {
		call = call.VideoDuration(p.Duration)
	}
	if p.ChannelID != "" {
		call = call.ChannelId(p.ChannelID)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		r := SearchResult{VideoID: item.Id.VideoId}
		if item.Snippet != nil {
			r.Title = item.Snippet.Title
			r.ChannelTitle = item.Snippet.ChannelTitle
			if t, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
				r.PublishedAt = t
			}
		}
		results = append(results, r)
	}
	return results, nil
}

// VideoDetails issues one videos.list call (1 quota unit) for videoID.
func (c *Client) VideoDetails(ctx context.Context, videoID string) (*VideoDetails, error) {
	resp, err := c.service.Videos.List([]string{"contentDetails", "snippet", "statistics"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("%w: video %s", ErrNoDetails, videoID)
	}

	item := resp.Items[0]
	if item.ContentDetails == nil || item.Snippet == nil {
		return nil, fmt.Errorf("%w: video %s", ErrNoDetails, videoID)
	}

	d := &VideoDetails{
		VideoID:         videoID,
		Title:           item.Snippet.Title,
		ChannelTitle:    item.Snippet.ChannelTitle,
		DurationSeconds: ParseISODuration(item.ContentDetails.Duration),
	}
	if item.Statistics != nil {
		d.ViewCount = item.Statistics.ViewCount
		d.LikeCount = item.Statistics.LikeCount
	}
	return d, nil
}

// ResolveChannelID resolves a channel name to its ID via a
// type=channel search (100 quota units).
func (c *Client) ResolveChannelID(ctx context.Context, name string) (string, error) {
	resp, err := c.service.Search.List([]string{"id"}).
		Q(name).
		Type("channel").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}

	if len(resp.Items) == 0 || resp.Items[0].Id == nil || resp.Items[0].Id.ChannelId == "" {
		return "", fmt.Errorf("%w: %q", ErrChannelNotFound, name)
	}
	return resp.Items[0].Id.ChannelId, nil
}

// Ping issues a minimal channels.list call (1 quota unit) to verify
// the key is accepted by the API.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.service.Channels.List([]string{"id"}).
		Id(probeChannelID).
		MaxResults(1).
		Context(ctx).
		Do()
	return err
}
