// Package pipeline assembles a listing result from the search API and the
// listing pages, and memoizes it. Only identifier resolution can fail a
// call; every upstream stage degrades to an empty contribution.
package pipeline

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/CodeTest-git/testovoe-otsivy/internal/cache"
	"github.com/CodeTest-git/testovoe-otsivy/internal/config"
	"github.com/CodeTest-git/testovoe-otsivy/internal/extract"
	"github.com/CodeTest-git/testovoe-otsivy/internal/model"
	"github.com/CodeTest-git/testovoe-otsivy/internal/placeid"
	"github.com/CodeTest-git/testovoe-otsivy/internal/reviews"
	"github.com/CodeTest-git/testovoe-otsivy/pkg/yandex"
)

// DefaultCompanyName is shown when no source yields a name.
const DefaultCompanyName = "Компания"

// ErrInvalidPage is returned for incremental loads of page 1 or below; the
// first page belongs to the main record.
var ErrInvalidPage = eris.New("page must be 2 or greater")

// PageFetcher retrieves listing pages.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*extract.Page, error)
}

// Pipeline orchestrates fetches for listing URLs.
type Pipeline struct {
	cfg       *config.Config
	api       yandex.Client
	pages     PageFetcher
	extractor *extract.Extractor
	merger    *reviews.Merger
	cache     *cache.Cache
	now       func() time.Time
}

// New creates a new Pipeline with all dependencies. api may be nil.
func New(
	cfg *config.Config,
	api yandex.Client,
	pages PageFetcher,
	ext *extract.Extractor,
	merger *reviews.Merger,
	c *cache.Cache,
) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		api:       api,
		pages:     pages,
		extractor: ext,
		merger:    merger,
		cache:     c,
		now:       time.Now,
	}
}

// ExtractPlaceID resolves the organization identifier of a listing URL.
func (p *Pipeline) ExtractPlaceID(rawURL string) (string, bool) {
	return placeid.Extract(rawURL)
}

// FetchByURL returns the listing result for rawURL, from cache when
// possible. forceRefresh drops the cached main record and pages first.
func (p *Pipeline) FetchByURL(ctx context.Context, rawURL string, forceRefresh bool) (*model.Result, error) {
	id, ok := placeid.Extract(rawURL)
	if !ok {
		return nil, placeid.ErrUnresolvable
	}
	log := zap.L().With(zap.String("place_id", id))

	if forceRefresh {
		if err := p.clear(ctx, id); err != nil {
			log.Warn("pipeline: cache invalidation failed", zap.Error(err))
		}
	} else if cached, ok := cache.Peek[model.Result](ctx, p.cache, cache.MainKey(id)); ok {
		log.Debug("pipeline: serving cached result")
		return &cached, nil
	}

	start := p.now()
	result := p.build(ctx, id, rawURL)

	// A placeholder result is kept only as long as a page so the real
	// reviews show up soon after the upstream recovers.
	ttl := p.cfg.Cache.MainTTL()
	if result.Placeholder {
		ttl = p.cfg.Cache.PageTTL()
	}
	cache.Put(ctx, p.cache, cache.MainKey(id), result, ttl)

	log.Info("pipeline: listing fetched",
		zap.String("company", result.CompanyName),
		zap.Int("reviews", len(result.Reviews)),
		zap.Int("photos", len(result.Photos)),
		zap.Bool("placeholder", result.Placeholder),
		zap.Duration("elapsed", p.now().Sub(start)),
	)
	return result, nil
}

// ClearCache drops the main record and the incremental pages of the
// listing. An unresolvable URL has nothing cached and is not an error.
func (p *Pipeline) ClearCache(ctx context.Context, rawURL string) error {
	id, ok := placeid.Extract(rawURL)
	if !ok {
		return nil
	}
	return p.clear(ctx, id)
}

func (p *Pipeline) clear(ctx context.Context, id string) error {
	keys := []string{cache.MainKey(id)}
	for page := 2; page <= p.cfg.Cache.ClearMaxPage; page++ {
		keys = append(keys, cache.PageKey(id, page))
	}
	if err := p.cache.Forget(ctx, keys...); err != nil {
		return eris.Wrapf(err, "pipeline: clear cache for %s", id)
	}
	zap.L().Debug("pipeline: cache cleared", zap.String("place_id", id), zap.Int("keys", len(keys)))
	return nil
}
