// Package fetch downloads the upstream fuel-price CSV, keeping a local
// on-disk cache that is reused until it goes stale.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/lmaidana/surtidor-etl/internal/config"
)

// The dataset host rejects requests without a browser-like User-Agent.
const userAgent = "Mozilla/5.0 WidgetViaje"

// Fetcher implements pipeline.Source over the remote dataset with a local
// file cache.
type Fetcher struct {
	url        string
	cachePath  string
	maxAge     time.Duration
	httpClient *http.Client
	clock      clockwork.Clock
	logger     *slog.Logger
}

// New creates a Fetcher for the configured dataset URL and cache path.
func New(cfg *config.Config, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		url:        cfg.DatasetURL,
		cachePath:  cfg.CSVCachePath,
		maxAge:     cfg.RefreshInterval,
		httpClient: &http.Client{Timeout: cfg.FetchTimeout},
		clock:      clockwork.NewRealClock(),
		logger:     logger,
	}
}

// Open returns a readable stream of the dataset CSV, downloading a fresh
// copy first when the cache is missing or older than the refresh interval.
// The caller owns the returned handle.
func (f *Fetcher) Open(ctx context.Context) (io.ReadCloser, error) {
	if age, fresh := f.cacheAge(); fresh {
		f.logger.Debug("reusing cached dataset", "path", f.cachePath, "age", age)
		return os.Open(f.cachePath)
	}

	if err := f.download(ctx); err != nil {
		return nil, err
	}
	return os.Open(f.cachePath)
}

// cacheAge reports the cache file's age and whether it is still usable.
func (f *Fetcher) cacheAge() (time.Duration, bool) {
	info, err := os.Stat(f.cachePath)
	if err != nil {
		return 0, false
	}
	age := f.clock.Now().Sub(info.ModTime())
	return age, age < f.maxAge
}

// download streams the dataset to a temp file and renames it over the cache
// path, so a failed transfer never clobbers a usable cache.
func (f *Fetcher) download(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("download dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download dataset: status %d", resp.StatusCode)
	}

	tmp := f.cachePath + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create cache file: %w", err)
	}

	n, err := io.Copy(out, resp.Body)
	if err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("write cache file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close cache file: %w", err)
	}
	if err := os.Rename(tmp, f.cachePath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("publish cache file: %w", err)
	}

	f.logger.Info("dataset downloaded", "url", f.url, "path", f.cachePath, "bytes", n)
	return nil
}
