package services

import (
	"context"
	"log/slog"
	"time"

	"unfurl/internal/cache"
	"unfurl/internal/config"
	"unfurl/internal/extract"
	"unfurl/internal/fetch"
	"unfurl/internal/metrics"
	"unfurl/internal/model"
	"unfurl/internal/store"
)

// UnfurlService encapsulates the core, non-HTTP unfurl logic: fetch a page,
// run the extractor over it, and return the preview record. Fetch failures
// come back as *fetch.Error for the boundary to map; extraction itself never
// fails.
type UnfurlService interface {
	Unfurl(ctx context.Context, url string) (*model.Preview, error)
}

type unfurlService struct {
	cfg     *config.Config
	fetcher *fetch.Fetcher
	cache   *cache.Cache
	store   *store.Store
	logger  *slog.Logger
}

// NewUnfurlService constructs an UnfurlService. cache and st may be nil when
// the corresponding features are not configured.
func NewUnfurlService(cfg *config.Config, fetcher *fetch.Fetcher, pc *cache.Cache, st *store.Store, logger *slog.Logger) UnfurlService {
	return &unfurlService{
		cfg:     cfg,
		fetcher: fetcher,
		cache:   pc,
		store:   st,
		logger:  logger,
	}
}

func (s *unfurlService) Unfurl(ctx context.Context, url string) (*model.Preview, error) {
	if s.cache != nil {
		if pv, ok := s.cache.Get(ctx, url); ok {
			metrics.RecordCacheLookup(true)
			metrics.RecordUnfurl("ok")
			return pv, nil
		}
		metrics.RecordCacheLookup(false)
	}

	start := time.Now()
	page, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.recordFailure(url, err, time.Since(start))
		return nil, err
	}

	pv := extract.Extract(page.HTML, url)
	elapsed := time.Since(start)

	if s.cache != nil {
		s.cache.Set(ctx, url, pv)
	}
	s.recordSuccess(url, pv, elapsed)

	return pv, nil
}

func (s *unfurlService) recordSuccess(url string, pv *model.Preview, elapsed time.Duration) {
	metrics.RecordUnfurl("ok")
	if s.store.Enabled() {
		// History writes use their own short deadline so a slow database
		// cannot stall the response path.
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.store.AddLookup(ctx, url, "ok", "", elapsed, pv); err != nil && s.logger != nil {
			s.logger.Warn("lookup history write failed", "url", url, "error", err)
		}
	}
}

func (s *unfurlService) recordFailure(url string, err error, elapsed time.Duration) {
	outcome := string(fetch.KindUnexpected)
	if fe, ok := err.(*fetch.Error); ok {
		outcome = string(fe.Kind)
	}
	metrics.RecordUnfurl(outcome)
	metrics.RecordFetchFailure(outcome)

	if s.store.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if serr := s.store.AddLookup(ctx, url, outcome, err.Error(), elapsed, nil); serr != nil && s.logger != nil {
			s.logger.Warn("lookup history write failed", "url", url, "error", serr)
		}
	}
}
