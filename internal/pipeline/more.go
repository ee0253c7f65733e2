package pipeline

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/CodeTest-git/testovoe-otsivy/internal/cache"
	"github.com/CodeTest-git/testovoe-otsivy/internal/extract"
	"github.com/CodeTest-git/testovoe-otsivy/internal/model"
	"github.com/CodeTest-git/testovoe-otsivy/internal/placeid"
	"github.com/CodeTest-git/testovoe-otsivy/internal/reviews"
	"github.com/CodeTest-git/testovoe-otsivy/internal/scrape"
)

// FetchMoreReviews returns reviews page n (n >= 2) of the listing. Reviews
// already served in the cached main record or earlier cached pages are
// dropped. A failed fetch yields an empty page and is not cached.
func (p *Pipeline) FetchMoreReviews(ctx context.Context, rawURL string, page int) (*model.PageResult, error) {
	id, ok := placeid.Extract(rawURL)
	if !ok {
		return nil, placeid.ErrUnresolvable
	}
	if page < 2 {
		return nil, eris.Wrapf(ErrInvalidPage, "got %d", page)
	}

	var strategy string
	var merged int
	result, err := cache.Remember(ctx, p.cache, cache.PageKey(id, page), p.cfg.Cache.PageTTL(),
		func(ctx context.Context) (model.PageResult, error) {
			fetched, err := p.pages.Fetch(ctx, scrape.ReviewsURL(p.cfg.Yandex.MapsBaseURL, id, page))
			if err != nil {
				return model.PageResult{}, err
			}
			var raw []model.RawReview
			raw, strategy = p.extractor.Reviews(fetched)
			cleaned := p.merger.CleanAndMerge(raw)
			merged = len(cleaned)

			r := model.PageResult{
				Page:           page,
				Reviews:        reviews.Dedup(cleaned, p.served(ctx, id, page)),
				HasMoreReviews: extract.HasNextPage(fetched, page),
			}
			r.Normalize()
			return r, nil
		})
	if err != nil {
		logFetchFailure("reviews_page", id, err)
		return &model.PageResult{Page: page, Reviews: []model.Review{}}, nil
	}

	zap.L().Debug("pipeline: reviews page served",
		zap.String("place_id", id),
		zap.Int("page", page),
		zap.String("strategy", strategy),
		zap.Int("merged", merged),
		zap.Int("fresh", len(result.Reviews)),
	)
	return &result, nil
}

// served collects the fingerprints of reviews already handed out for the
// listing before page.
func (p *Pipeline) served(ctx context.Context, id string, page int) reviews.Seen {
	seen := reviews.Seen{}
	if main, ok := cache.Peek[model.Result](ctx, p.cache, cache.MainKey(id)); ok && !main.Placeholder {
		seen.Add(main.Reviews...)
	}
	for n := 2; n < page; n++ {
		if prev, ok := cache.Peek[model.PageResult](ctx, p.cache, cache.PageKey(id, n)); ok {
			seen.Add(prev.Reviews...)
		}
	}
	return seen
}
