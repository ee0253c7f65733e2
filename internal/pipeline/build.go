package pipeline

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"

	"github.com/CodeTest-git/testovoe-otsivy/internal/extract"
	"github.com/CodeTest-git/testovoe-otsivy/internal/model"
	"github.com/CodeTest-git/testovoe-otsivy/internal/placeid"
	"github.com/CodeTest-git/testovoe-otsivy/internal/reviews"
	"github.com/CodeTest-git/testovoe-otsivy/internal/scrape"
	"github.com/CodeTest-git/testovoe-otsivy/pkg/yandex"
)

// scraped is what the listing pages contributed.
type scraped struct {
	meta    []extract.Metadata
	logo    string
	photos  []model.Photo
	reviews []model.Review
	hasMore bool
}

// build runs the stages in order: search API, main page, first reviews
// page, then the merge.
func (p *Pipeline) build(ctx context.Context, id, rawURL string) *model.Result {
	log := zap.L().With(zap.String("place_id", id))

	org := p.searchAPI(ctx, id)
	var s scraped
	p.scrapeMain(ctx, id, &s)
	p.scrapeReviews(ctx, id, &s)

	result := &model.Result{
		PlaceID:        id,
		Reviews:        s.reviews,
		HasMoreReviews: s.hasMore,
		FetchedAt:      p.now().UTC(),
	}
	if len(s.reviews) == 0 {
		log.Warn("pipeline: no reviews recovered, using placeholders")
		result.Reviews = reviews.Placeholders()
		result.HasMoreReviews = false
		result.Placeholder = true
		result.Error = reviews.PlaceholderMessage
	}

	company := mergeCompany(org, s.meta, rawURL)
	if company.ReviewsCount == 0 && !result.Placeholder {
		company.ReviewsCount = len(s.reviews)
	}
	result.CompanyName = company.Name
	result.Rating = company.Rating
	result.ReviewsCount = company.ReviewsCount

	result.CompanyLogo, result.Photos = p.resolveLogo(s.logo, s.photos)
	result.Normalize()
	return result
}

func (p *Pipeline) searchAPI(ctx context.Context, id string) yandex.Organization {
	if p.api == nil {
		return yandex.Organization{}
	}
	org, err := p.api.SearchOrganization(ctx, id)
	if err != nil {
		if errors.Is(err, yandex.ErrNoAPIKey) {
			zap.L().Debug("pipeline: search api skipped, no key", zap.String("place_id", id))
		} else {
			zap.L().Warn("pipeline: search api failed", zap.String("place_id", id), zap.Error(err))
		}
		return yandex.Organization{}
	}
	if org == nil {
		return yandex.Organization{}
	}
	return *org
}

func (p *Pipeline) scrapeMain(ctx context.Context, id string, s *scraped) {
	page, err := p.pages.Fetch(ctx, scrape.MainURL(p.cfg.Yandex.MapsBaseURL, id))
	if err != nil {
		logFetchFailure("main", id, err)
		return
	}
	s.photos = p.extractor.Photos(page)
	s.logo = p.extractor.Logo(page)
	s.meta = append(s.meta, p.extractor.Metadata(page))
}

func (p *Pipeline) scrapeReviews(ctx context.Context, id string, s *scraped) {
	page, err := p.pages.Fetch(ctx, scrape.ReviewsURL(p.cfg.Yandex.MapsBaseURL, id, 1))
	if err != nil {
		logFetchFailure("reviews", id, err)
		return
	}
	raw, strategy := p.extractor.Reviews(page)
	s.reviews = reviews.Dedup(p.merger.CleanAndMerge(raw), reviews.Seen{})
	s.hasMore = extract.HasNextPage(page, 1)
	s.meta = append(s.meta, p.extractor.Metadata(page))
	if s.logo == "" {
		s.logo = p.extractor.Logo(page)
	}
	zap.L().Debug("pipeline: reviews extracted",
		zap.String("place_id", id),
		zap.String("strategy", strategy),
		zap.Int("raw", len(raw)),
		zap.Int("kept", len(s.reviews)),
	)
}

// mergeCompany applies the source priority: search API, scraped pages, URL
// slug, then the generic name.
func mergeCompany(org yandex.Organization, meta []extract.Metadata, rawURL string) model.Company {
	c := model.Company{
		Name:         org.Name,
		Rating:       org.Rating,
		ReviewsCount: org.ReviewsCount,
	}
	for _, m := range meta {
		if c.Name == "" {
			c.Name = m.Name
		}
		if c.Rating == 0 {
			c.Rating = m.Rating
		}
		if c.ReviewsCount == 0 {
			c.ReviewsCount = m.ReviewsCount
		}
	}
	if c.Name == "" {
		c.Name = placeid.NameFromSlug(placeid.Slug(rawURL))
	}
	if c.Name == "" {
		c.Name = DefaultCompanyName
	}
	c.Rating = math.Max(0, math.Min(5, c.Rating))
	if c.ReviewsCount < 0 {
		c.ReviewsCount = 0
	}
	return c
}

// resolveLogo promotes the first gallery photo to logo when no dedicated
// logo was found. The logo's base path never stays in the gallery, which is
// then capped.
func (p *Pipeline) resolveLogo(logo string, photos []model.Photo) (string, []model.Photo) {
	if logo == "" && len(photos) > 0 {
		logo = photos[0].Thumbnail
	}
	if logo != "" {
		photos = extract.RemoveBase(photos, logo)
	}
	if limit := p.extractor.Config().MaxPhotos; len(photos) > limit {
		photos = photos[:limit]
	}
	return logo, photos
}

func logFetchFailure(stage, id string, err error) {
	fields := []zap.Field{
		zap.String("stage", stage),
		zap.String("place_id", id),
		zap.Error(err),
	}
	switch {
	case errors.Is(err, scrape.ErrBlocked):
		zap.L().Warn("pipeline: page blocked by challenge", fields...)
	case errors.Is(err, context.Canceled):
		zap.L().Debug("pipeline: page fetch canceled", fields...)
	default:
		zap.L().Warn("pipeline: page fetch failed", fields...)
	}
}
