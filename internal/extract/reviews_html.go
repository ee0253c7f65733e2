package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/CodeTest-git/testovoe-otsivy/internal/model"
	"github.com/CodeTest-git/testovoe-otsivy/internal/sanitize"
)

const reviewBlockSelector = ".business-review-view"

// reviewTextSelectors are tried in order; the last resort is the longest
// clean text run in the block.
var reviewTextSelectors = []string{
	`[itemprop="reviewBody"]`,
	`.business-review-view__body-text`,
	`.spoiler-view__text-container`,
	`.business-review-view__body`,
}

var (
	firstNumberRe = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
	bgImageRe     = regexp.MustCompile(`background-image:\s*url\(\s*['"]?([^'")]+)['"]?\s*\)`)
)

func (e *Extractor) htmlBlockReviews(p *Page) []model.RawReview {
	doc, err := p.Document()
	if err != nil {
		return nil
	}
	var out []model.RawReview
	doc.Find(reviewBlockSelector).Each(func(_ int, block *goquery.Selection) {
		author := blockAuthor(block)
		text := e.blockText(block, author)
		if text == "" {
			return
		}
		out = append(out, model.RawReview{
			Author:           author,
			AuthorStatus:     sanitize.CollapseSpace(block.Find(".business-review-view__author-caption").First().Text()),
			AuthorAvatar:     e.blockAvatar(block),
			AuthorProfileURL: e.blockProfile(block),
			Rating:           blockRating(block),
			Date:             blockDate(block),
			Text:             text,
		})
	})
	return out
}

func blockAuthor(block *goquery.Selection) string {
	name := block.Find(`[itemprop="author"] [itemprop="name"]`).First()
	if v, ok := name.Attr("content"); ok && strings.TrimSpace(v) != "" {
		return sanitize.CollapseSpace(v)
	}
	if v := sanitize.CollapseSpace(name.Text()); v != "" {
		return v
	}
	return sanitize.CollapseSpace(block.Find(".business-review-view__author-name").First().Text())
}

func (e *Extractor) blockText(block *goquery.Selection, author string) string {
	for _, sel := range reviewTextSelectors {
		text := sanitize.CollapseSpace(block.Find(sel).First().Text())
		if text == "" {
			continue
		}
		if e.san.Acceptable(text) {
			return text
		}
	}
	return e.longestRun(block, author)
}

// longestRun picks the longest text node in block that is long enough and
// is neither noise, code nor the author's name.
func (e *Extractor) longestRun(block *goquery.Selection, author string) string {
	minLen := e.san.Rules().FallbackMinLength
	var best string
	block.Find("*").AddSelection(block).Contents().Each(func(_ int, s *goquery.Selection) {
		if len(s.Nodes) == 0 || s.Nodes[0].Type != html.TextNode {
			return
		}
		parent := s.Parent()
		if parent.Is("script, style, noscript") {
			return
		}
		text := sanitize.CollapseSpace(s.Text())
		if text == author || utf8.RuneCountInString(text) < minLen {
			return
		}
		if !e.san.Acceptable(text) {
			return
		}
		if utf8.RuneCountInString(text) > utf8.RuneCountInString(best) {
			best = text
		}
	})
	return best
}

func (e *Extractor) blockAvatar(block *goquery.Selection) string {
	if style, ok := block.Find(".user-icon-view__icon[style]").First().Attr("style"); ok {
		if m := bgImageRe.FindStringSubmatch(style); m != nil {
			return withSize(absoluteURL(sanitize.DecodeEntities(m[1])), e.cfg.AvatarSize)
		}
	}
	raw, err := goquery.OuterHtml(block)
	if err != nil {
		return ""
	}
	raw = sanitize.DecodeEntities(raw)
	for _, re := range e.cdn.avatar {
		if m := re.FindString(raw); m != "" {
			return withSize(absoluteURL(m), e.cfg.AvatarSize)
		}
	}
	return ""
}

func (e *Extractor) blockProfile(block *goquery.Selection) string {
	href, ok := block.Find(`a[href*="/maps/user/"]`).First().Attr("href")
	if !ok {
		href, ok = block.Find(`a.business-review-view__link[href]`).First().Attr("href")
	}
	if !ok || href == "" {
		return ""
	}
	return e.absoluteSiteURL(href)
}

func (e *Extractor) absoluteSiteURL(href string) string {
	href = absoluteURL(href)
	if strings.HasPrefix(href, "/") {
		return strings.TrimRight(e.cfg.SiteURL, "/") + href
	}
	return href
}

func blockRating(block *goquery.Selection) int {
	if v, ok := block.Find(`[itemprop="reviewRating"] [itemprop="ratingValue"]`).First().Attr("content"); ok {
		if r := parseRating(v); r > 0 {
			return r
		}
	}
	if v, ok := block.Find(`[aria-label]`).FilterFunction(func(_ int, s *goquery.Selection) bool {
		label, _ := s.Attr("aria-label")
		return strings.Contains(strings.ToLower(label), "оценка") || strings.Contains(strings.ToLower(label), "rating")
	}).First().Attr("aria-label"); ok {
		if r := parseRating(v); r > 0 {
			return r
		}
	}
	return block.Find(".business-rating-badge-view__star._full").Length()
}

func parseRating(s string) int {
	m := firstNumberRe.FindString(s)
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.Replace(m, ",", ".", 1), 64)
	if err != nil {
		return 0
	}
	return int(math.Round(f))
}

func blockDate(block *goquery.Selection) string {
	if v, ok := block.Find(`[itemprop="datePublished"]`).First().Attr("content"); ok && v != "" {
		return strings.TrimSpace(v)
	}
	return sanitize.CollapseSpace(block.Find(".business-review-view__date").First().Text())
}
