// Package cli implements the ytmix CLI commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ytmix/cache"
	"ytmix/config"
	"ytmix/internal/logger"
	"ytmix/internal/storage"
	"ytmix/keys"
	"ytmix/quota"
	"ytmix/search"
	"ytmix/store"

	"github.com/spf13/cobra"
)

var (
	dataDirFlag  string
	logLevelFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "ytmix",
	Short: "Quota-aware YouTube music playlist generator",
	Long: "ytmix searches YouTube for fresh music videos across a rotating pool of\n" +
		"API keys, filters out everything it has surfaced before, and assembles\n" +
		"the survivors into anonymous watch playlists.",
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dataDirFlag, "data-dir", "d", "", "Data directory (default: $YTMIX_DATA_DIR or ./data)")
	RootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
}

// app bundles the wired collaborators a command needs. The data-dir
// lock is held for the life of the process.
type app struct {
	cfg       *config.Config
	lock      *storage.FileLock
	ledger    *quota.Ledger
	cache     *cache.Cache
	used      *store.UsedVideos
	playlists *store.Playlists
	keys      *keys.Manager
	engine    *search.Engine
}

// buildApp loads configuration and wires the stores, key manager, and
// search engine. Stale quota buckets are pruned on every startup.
func buildApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dataDirFlag != "" {
		cfg.DataDir = dataDirFlag
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}
	logger.SetLevel(cfg.LogLevel)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	// One process per data directory. The lock releases on exit.
	lock := storage.NewFileLock(filepath.Join(cfg.DataDir, "ytmix"))
	if err := lock.Lock(5 * time.Second); err != nil {
		return nil, fmt.Errorf("another ytmix process is using %s: %w", cfg.DataDir, err)
	}

	ledger := quota.Open(cfg.QuotaPath())
	if err := ledger.CleanOldData(cfg.QuotaHorizonDays); err != nil {
		return nil, fmt.Errorf("prune quota ledger: %w", err)
	}

	c := cache.Open(cfg.CachePath(), cfg.CacheTTL)
	used := store.OpenUsedVideos(cfg.UsedVideosPath())
	playlists := store.OpenPlaylists(cfg.PlaylistsPath())
	km := keys.NewManager(cfg.KeysPath(), cfg.APIKey, ledger)

	return &app{
		cfg:       cfg,
		lock:      lock,
		ledger:    ledger,
		cache:     c,
		used:      used,
		playlists: playlists,
		keys:      km,
		engine:    search.New(km, c, ledger, used, playlists, cfg.Search),
	}, nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
