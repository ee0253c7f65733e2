package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/CodeTest-git/testovoe-otsivy/internal/sanitize"
)

// Metadata is the listing summary scraped from a page. Zero values mean
// the field was not found.
type Metadata struct {
	Name         string
	Rating       float64
	ReviewsCount int
}

var (
	nameSelectors = []string{
		`h1.orgpage-header-view__header`,
		`.orgpage-header-view__header`,
		`h1[itemprop="name"]`,
		`h1`,
	}
	ratingSelectors = []string{
		`.business-summary-rating-badge-view__rating-text`,
		`.business-rating-badge-view__rating-text`,
	}
	countSelectors = []string{
		`.business-header-rating-view__text`,
		`.business-rating-amount-view`,
	}
	titleSuffixRe = regexp.MustCompile(`\s+[—–|-]\s+.*$`)
	jsonRatingRe  = regexp.MustCompile(`"ratingValue"\s*:\s*"?(\d+(?:[.,]\d+)?)`)
	jsonCountRe   = regexp.MustCompile(`"reviewCount"\s*:\s*"?(\d+)`)
	countInTextRe = regexp.MustCompile(`(\d[\d\s\x{a0}]*)\s*(?:отзыв|оцен|review)`)
)

const nextPageFormat = "reviews/?page=%d"

// Metadata reads name, rating and review count from microdata, header
// markup, the page title and inline JSON, in that order.
func (e *Extractor) Metadata(p *Page) Metadata {
	var md Metadata
	doc, err := p.Document()
	if err == nil {
		for _, sel := range nameSelectors {
			if name := sanitize.CollapseSpace(doc.Find(sel).First().Text()); name != "" {
				md.Name = name
				break
			}
		}
		if md.Name == "" {
			md.Name = TitleName(doc.Find("title").First().Text())
		}

		if v, ok := doc.Find(`[itemprop="aggregateRating"] [itemprop="ratingValue"], meta[itemprop="ratingValue"]`).First().Attr("content"); ok {
			md.Rating = parseScore(v)
		}
		for _, sel := range ratingSelectors {
			if md.Rating > 0 {
				break
			}
			md.Rating = parseScore(doc.Find(sel).First().Text())
		}

		if v, ok := doc.Find(`[itemprop="aggregateRating"] [itemprop="reviewCount"], meta[itemprop="reviewCount"]`).First().Attr("content"); ok {
			md.ReviewsCount = parseCount(v)
		}
		for _, sel := range countSelectors {
			if md.ReviewsCount > 0 {
				break
			}
			if m := countInTextRe.FindStringSubmatch(doc.Find(sel).First().Text()); m != nil {
				md.ReviewsCount = parseCount(m[1])
			}
		}
	}

	if md.Rating == 0 {
		if m := jsonRatingRe.FindStringSubmatch(p.HTML); m != nil {
			md.Rating = parseScore(m[1])
		}
	}
	if md.ReviewsCount == 0 {
		if m := jsonCountRe.FindStringSubmatch(p.HTML); m != nil {
			md.ReviewsCount = parseCount(m[1])
		}
	}
	return md
}

// TitleName derives a business name from a document title such as
// "Кофейня Добро, Москва — Яндекс Карты".
func TitleName(title string) string {
	title = sanitize.CollapseSpace(sanitize.DecodeEntities(title))
	title = titleSuffixRe.ReplaceAllString(title, "")
	if i := strings.Index(title, ", "); i > 0 {
		title = title[:i]
	}
	return strings.TrimSpace(title)
}

// HasNextPage reports whether the page links to reviews page n+1.
func HasNextPage(p *Page, n int) bool {
	link := fmt.Sprintf(nextPageFormat, n+1)
	flat := p.Flat()
	for i := 0; ; {
		j := strings.Index(flat[i:], link)
		if j < 0 {
			return false
		}
		end := i + j + len(link)
		if end == len(flat) || flat[end] < '0' || flat[end] > '9' {
			return true
		}
		i = end
	}
}

func parseScore(s string) float64 {
	m := firstNumberRe.FindString(s)
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.Replace(m, ",", ".", 1), 64)
	if err != nil || f < 0 || f > 5 {
		return 0
	}
	return f
}

func parseCount(s string) int {
	s = strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
