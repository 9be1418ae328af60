// Package content fetches the remote data the game can run without: the
// sweet-mode overlay table and the tower banner art.
package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/jwebster45206/tower-engine/pkg/overlay"
)

// maxBody caps how much of a remote document is read.
const maxBody = 1 << 20

// Noticer receives the player-facing messages a failed fetch prints.
type Noticer interface {
	Notice(line string)
}

// Options configures a Fetcher. OverlayFile takes precedence over
// OverlayURL.
type Options struct {
	OverlayURL  string
	OverlayFile string
	BannerURL   string
	Timeout     time.Duration
}

// Fetcher loads content over HTTP or from disk. Every failure degrades to
// an empty result.
type Fetcher struct {
	opts       Options
	httpClient *http.Client
	out        Noticer
	logger     *slog.Logger

	mu     sync.Mutex
	banner string
}

// NewFetcher builds a Fetcher. client may be nil. A zero Timeout leaves
// requests unbounded.
func NewFetcher(opts Options, client *http.Client, out Noticer, logger *slog.Logger) *Fetcher {
	if opts.Timeout < 0 {
		opts.Timeout = 0
	}
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		opts:       opts,
		httpClient: client,
		out:        out,
		logger:     logger,
	}
}

// FetchOverlay returns the substitution table, or an empty one after
// printing "Error loading dialogue: ...".
func (f *Fetcher) FetchOverlay(ctx context.Context) *overlay.Table {
	table, err := f.loadOverlay(ctx)
	if err != nil {
		f.logger.Warn("Failed to load overlay", "error", err)
		f.notice(fmt.Sprintf("Error loading dialogue: %v", err))
		return overlay.Empty()
	}
	f.logger.Debug("Overlay loaded", "locations", table.Len())
	return table
}

func (f *Fetcher) loadOverlay(ctx context.Context) (*overlay.Table, error) {
	if f.opts.OverlayFile != "" {
		data, err := os.ReadFile(f.opts.OverlayFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read overlay file: %w", err)
		}
		return overlay.Parse(f.opts.OverlayFile, data)
	}
	if f.opts.OverlayURL == "" {
		return nil, errors.New("no overlay source configured")
	}

	data, err := f.get(ctx, f.opts.OverlayURL)
	if err != nil {
		return nil, err
	}
	name := f.opts.OverlayURL
	if u, err := url.Parse(f.opts.OverlayURL); err == nil {
		name = u.Path
	}
	return overlay.Parse(name, data)
}

// FetchBanner returns the tower art. A successful fetch is cached for the
// life of the Fetcher.
func (f *Fetcher) FetchBanner(ctx context.Context) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.banner != "" {
		return f.banner, true
	}

	if f.opts.BannerURL == "" {
		return "", false
	}
	data, err := f.get(ctx, f.opts.BannerURL)
	if err != nil {
		f.logger.Warn("Failed to load banner", "error", err)
		f.notice(fmt.Sprintf("Error loading CN Tower art: %v", err))
		return "", false
	}
	art := strings.TrimRight(string(data), "\n")
	if strings.TrimSpace(art) == "" {
		return "", false
	}
	f.banner = art
	return art, true
}

func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	if f.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.opts.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request to %s failed with status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

func (f *Fetcher) notice(line string) {
	if f.out != nil {
		f.out.Notice(line)
	}
}
