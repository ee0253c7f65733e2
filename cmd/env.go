package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/CodeTest-git/testovoe-otsivy/internal/cache"
	"github.com/CodeTest-git/testovoe-otsivy/internal/extract"
	"github.com/CodeTest-git/testovoe-otsivy/internal/pipeline"
	"github.com/CodeTest-git/testovoe-otsivy/internal/resilience"
	"github.com/CodeTest-git/testovoe-otsivy/internal/reviews"
	"github.com/CodeTest-git/testovoe-otsivy/internal/sanitize"
	"github.com/CodeTest-git/testovoe-otsivy/internal/scrape"
	"github.com/CodeTest-git/testovoe-otsivy/internal/store"
	"github.com/CodeTest-git/testovoe-otsivy/pkg/yandex"
)

// pipelineEnv holds the store and the pipeline needed by the fetch, serve
// and warm commands.
type pipelineEnv struct {
	Store    store.Store
	Cache    *cache.Cache
	Pipeline *pipeline.Pipeline
}

// Close releases resources held by the pipeline environment.
func (pe *pipelineEnv) Close() {
	if pe.Store == nil {
		return
	}
	if mem, ok := pe.Store.(*store.MemoryStore); ok {
		stats := mem.Stats()
		zap.L().Info("cache stats",
			zap.Int("entries", stats.Entries),
			zap.Int("max_entries", stats.MaxEntries),
			zap.Int64("hits", stats.Hits),
			zap.Int64("misses", stats.Misses),
			zap.Float64("hit_rate", stats.HitRate),
		)
	}
	_ = pe.Store.Close()
}

// initPipeline sets up the store, the upstream clients and the extraction
// rules, and builds the Pipeline. Callers should defer env.Close().
func initPipeline(ctx context.Context, mode string) (*pipelineEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	san, err := initSanitizer()
	if err != nil {
		return nil, err
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	cooldown := time.Duration(cfg.Breaker.ResetTimeoutSecs) * time.Second
	pageBreaker := resilience.NewBreaker(resilience.BreakerConfig{
		Name:             "listing_pages",
		FailureThreshold: cfg.Breaker.FailureThreshold,
		Cooldown:         cooldown,
		ShouldTrip:       scrape.ShouldTrip,
		OnStateChange:    logBreakerChange,
	})
	fetcher := scrape.NewFetcher(scrape.FetcherOptions{
		UserAgent:         cfg.Yandex.UserAgent,
		AcceptLanguage:    cfg.Yandex.AcceptLanguage,
		Timeout:           time.Duration(cfg.Yandex.PageTimeoutSecs) * time.Second,
		RequestsPerSecond: cfg.Yandex.RequestsPerSecond,
		Burst:             cfg.Yandex.Burst,
		MaxBodyBytes:      cfg.Scrape.MaxBodyBytes,
		Breaker:           pageBreaker,
	})

	// Search API client (optional; pages are the fallback for metadata).
	var api yandex.Client
	if cfg.Yandex.APIKey != "" {
		api = yandex.NewClient(cfg.Yandex.APIKey,
			yandex.WithBaseURL(cfg.Yandex.APIBaseURL),
			yandex.WithLang(cfg.Yandex.Lang),
			yandex.WithTimeout(time.Duration(cfg.Yandex.APITimeoutSecs)*time.Second),
			yandex.WithBreaker(resilience.NewBreaker(resilience.BreakerConfig{
				Name:             "search_api",
				FailureThreshold: cfg.Breaker.FailureThreshold,
				Cooldown:         cooldown,
				ShouldTrip:       resilience.IsTransient,
				OnStateChange:    logBreakerChange,
			})),
		)
		zap.L().Info("search api enabled")
	} else {
		zap.L().Debug("REVIEWS_YANDEX_API_KEY not set, metadata comes from pages only")
	}

	extCfg := extract.DefaultConfig()
	extCfg.MaxPhotos = cfg.Scrape.MaxPhotos

	c := cache.New(st)
	p := pipeline.New(cfg, api, fetcher, extract.New(extCfg, san), reviews.NewMerger(san), c)

	return &pipelineEnv{Store: st, Cache: c, Pipeline: p}, nil
}

// initStore opens the configured cache backend.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Cache.Driver {
	case "", "memory":
		return store.NewMemory(cfg.Cache.MaxEntries), nil
	case "sqlite":
		dsn := cfg.Cache.DatabaseURL
		if dsn == "" {
			dsn = "reviews-cache.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Cache.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("unsupported cache driver: %s", cfg.Cache.Driver)
	}
}

func initSanitizer() (*sanitize.Sanitizer, error) {
	rules := sanitize.DefaultRules()
	if cfg.Scrape.RulesFile != "" {
		loaded, err := sanitize.LoadRules(cfg.Scrape.RulesFile)
		if err != nil {
			return nil, eris.Wrap(err, "load sanitizer rules")
		}
		rules = loaded
	}
	san, err := sanitize.New(rules)
	if err != nil {
		return nil, eris.Wrap(err, "compile sanitizer rules")
	}
	return san, nil
}

func logBreakerChange(name string, from, to resilience.State) {
	zap.L().Warn("circuit breaker state change",
		zap.String("upstream", name),
		zap.Stringer("from", from),
		zap.Stringer("to", to),
	)
}
