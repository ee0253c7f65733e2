package extract

import (
	"regexp"
	"sort"

	"go.uber.org/zap"

	"github.com/CodeTest-git/testovoe-otsivy/internal/model"
)

// maxStateDepth bounds the recursive search through the embedded state.
const maxStateDepth = 10

// stateReviewKeys name the lists that hold reviews in the embedded state.
var stateReviewKeys = map[string]bool{
	"reviews":     true,
	"reviewsList": true,
	"items":       true,
	"comments":    true,
}

func (e *Extractor) stateReviews(p *Page) []model.RawReview {
	state := p.State()
	if state == nil {
		return nil
	}
	var lists [][]any
	findReviewLists(state, 0, &lists)

	var out []model.RawReview
	for _, list := range lists {
		out = append(out, e.reviewsFromList(list)...)
	}
	return out
}

// findReviewLists walks v depth-first, collecting arrays stored under a
// review key whose elements look like reviews. Object keys are visited in
// sorted order so results are stable.
func findReviewLists(v any, depth int, out *[][]any) {
	if depth > maxStateDepth {
		return
	}
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			child := t[k]
			if list, ok := child.([]any); ok && stateReviewKeys[k] && containsReview(list) {
				*out = append(*out, list)
				continue
			}
			findReviewLists(child, depth+1, out)
		}
	case []any:
		for _, child := range t {
			findReviewLists(child, depth+1, out)
		}
	}
}

func containsReview(list []any) bool {
	for _, item := range list {
		if looksLikeReview(item) {
			return true
		}
	}
	return false
}

var inlineReviewsRe = regexp.MustCompile(`"reviews"\s*:\s*\[`)

// inlineReviews decodes every "reviews": [...] fragment in the page source
// independently; fragments that fail to decode are skipped.
func (e *Extractor) inlineReviews(p *Page) []model.RawReview {
	var out []model.RawReview
	for _, loc := range inlineReviewsRe.FindAllStringIndex(p.HTML, -1) {
		raw, ok := balanced(p.HTML, loc[1]-1)
		if !ok {
			continue
		}
		v, err := decodeJSON(raw)
		if err != nil {
			zap.L().Debug("extract: inline reviews fragment skipped", zap.String("url", p.URL), zap.Error(err))
			continue
		}
		list, ok := v.([]any)
		if !ok {
			continue
		}
		out = append(out, e.reviewsFromList(list)...)
	}
	return out
}
