package extract

import (
	"go.uber.org/zap"

	"github.com/CodeTest-git/testovoe-otsivy/internal/model"
)

// Strategy is one way of recovering review candidates from a page. Extract
// must not mutate the page and returns nil when its markers are absent.
type Strategy struct {
	Name    string
	Extract func(p *Page) []model.RawReview
}

// Chain tries review strategies in priority order, returning the first
// non-empty result.
type Chain struct {
	strategies []Strategy
}

// NewChain creates a Chain. Strategies are tried in the given order.
func NewChain(strategies ...Strategy) *Chain {
	return &Chain{strategies: strategies}
}

// Run returns the candidates of the first strategy that finds any, with the
// strategy name. Both are empty when every strategy comes up empty.
func (c *Chain) Run(p *Page) ([]model.RawReview, string) {
	for _, s := range c.strategies {
		reviews := s.Extract(p)
		if len(reviews) > 0 {
			zap.L().Debug("extract: review strategy matched",
				zap.String("strategy", s.Name),
				zap.String("url", p.URL),
				zap.Int("candidates", len(reviews)),
			)
			return reviews, s.Name
		}
		zap.L().Debug("extract: review strategy empty, trying next",
			zap.String("strategy", s.Name),
			zap.String("url", p.URL),
		)
	}
	zap.L().Debug("extract: no review strategy matched",
		zap.String("url", p.URL),
		zap.Strings("tried", c.Names()),
	)
	return nil, ""
}

// Names lists the strategies in priority order.
func (c *Chain) Names() []string {
	names := make([]string, len(c.strategies))
	for i, s := range c.strategies {
		names[i] = s.Name
	}
	return names
}
