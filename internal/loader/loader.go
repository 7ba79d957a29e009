// Package loader runs load cycles: fetch the configured sheet, parse it, and
// fall back to demo data when that is not possible.
package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seuros/lpexplorer/internal/config"
	"github.com/seuros/lpexplorer/internal/httpx"
	"github.com/seuros/lpexplorer/internal/logging"
	"github.com/seuros/lpexplorer/internal/sheet"
)

// FetchFunc retrieves the CSV body at url.
type FetchFunc func(ctx context.Context, url string) (string, error)

// Loader performs load cycles for one configuration.
type Loader struct {
	cfg   *config.Config
	fetch FetchFunc
	now   func() time.Time
}

// New returns a Loader fetching over HTTP with cfg.FetchTimeout.
func New(cfg *config.Config) *Loader {
	client := httpx.NewClient(cfg.FetchTimeout)
	return NewWithFetcher(cfg, func(ctx context.Context, url string) (string, error) {
		return httpx.FetchText(ctx, client, url)
	})
}

// NewWithFetcher returns a Loader using fetch instead of HTTP.
func NewWithFetcher(cfg *config.Config, fetch FetchFunc) *Loader {
	return &Loader{cfg: cfg, fetch: fetch, now: time.Now}
}

// Load runs one cycle. It always returns a usable snapshot; fetch failures
// are reported through Snapshot.Err and Snapshot.Notice.
func (l *Loader) Load(ctx context.Context) *Snapshot {
	snap := &Snapshot{
		ID:       uuid.New(),
		LoadedAt: l.now().UTC(),
	}
	log := logging.With(zap.String("snapshot", snap.ID.String()))

	if l.cfg.UsesDemo() {
		snap.Source = SourceDemo
		snap.Pages = DemoPages()
		snap.Notice = "Using demo data, configure sheet_url to connect your Google Sheet"
		log.Info("using demo dataset", zap.Int("pages", len(snap.Pages)))
		return snap
	}

	snap.SheetURL = l.cfg.SheetURL
	text, err := l.fetch(ctx, l.cfg.SheetURL)
	if err != nil {
		snap.Source = SourceDemo
		snap.Pages = DemoPages()
		snap.Err = err
		snap.Notice = fmt.Sprintf("Error loading sheet: %v", err)
		log.Warn("sheet fetch failed, falling back to demo data", zap.Error(err))
		return snap
	}

	snap.Source = SourceLive
	snap.Pages = sheet.Parse(text, l.cfg.ColumnMapping(), l.cfg.BaseURL)
	snap.Notice = fmt.Sprintf("Loaded %d pages from your sheet", len(snap.Pages))
	log.Info("sheet loaded", zap.Int("pages", len(snap.Pages)), zap.Int("bytes", len(text)))
	return snap
}

// FetchRaw returns the unparsed sheet body. Used by diagnostics.
func (l *Loader) FetchRaw(ctx context.Context) (string, error) {
	return l.fetch(ctx, l.cfg.SheetURL)
}
