// Package ytmix generates YouTube music playlists from quota-aware
// multi-key API searches.
//
// It discovers fresh music videos by sampling a trending-term
// vocabulary under several ranking orders, filters candidates against
// content rules and a persistent dedup ledger, and assembles the
// survivors into anonymous watch_videos playlists. All remote access
// runs through a pool of API keys with per-key daily quota accounting
// and automatic rotation when a key is exhausted.
//
// Overview
//
// The sub-packages divide the work:
//
//   - search: the multi-term smart search engine and playlist generator
//   - keys: the API key ring with validation, rotation, and removal
//   - quota: per-key per-day usage accounting against the 10k ceiling
//   - cache: a time-boxed cache of search, detail, and channel lookups
//   - store: the dedup ledger and the saved-playlist store
//   - youtube: the Data API v3 client, error classification, helpers
//   - config: file/env configuration resolution
//
// Quick Start
//
// Generate a playlist:
//
//	cfg, err := config.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//	ledger := quota.Open(cfg.QuotaPath())
//	km := keys.NewManager(cfg.KeysPath(), cfg.APIKey, ledger)
//	engine := search.New(km,
//		cache.Open(cfg.CachePath(), cfg.CacheTTL),
//		ledger,
//		store.OpenUsedVideos(cfg.UsedVideosPath()),
//		store.OpenPlaylists(cfg.PlaylistsPath()),
//		cfg.Search)
//
//	result, err := engine.GeneratePlaylist(ctx, "friday-mix")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.URL)
//
// Error Handling
//
// Remote failures classify into stable kinds:
//
//	if youtube.Classify(err) == youtube.KindQuotaExceeded {
//		km.Rotate(ctx)
//	}
//
// Checking for sentinel errors:
//
//	if errors.Is(err, ytmix.ErrQuotaExceeded) {
//		fmt.Println("Daily quota exhausted")
//	}
//
// Dependencies
//
// ytmix requires at least one YouTube Data API v3 key, supplied via the
// YOUTUBE_API_KEY environment variable or added with `ytmix keys add`.
package ytmix
