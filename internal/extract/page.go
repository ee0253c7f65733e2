// Package extract pulls reviews, logo, gallery photos and listing metadata
// out of fetched listing pages. Every extractor degrades to an empty result
// when its markers are missing.
package extract

import (
	"regexp"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

var escapedSlashRe = regexp.MustCompile(`\\(?:/|u002[fF])`)

// Page is a fetched HTML document. The parsed DOM, the unescaped source and
// the embedded state are computed lazily and memoized.
type Page struct {
	URL  string
	HTML string

	docOnce sync.Once
	doc     *goquery.Document
	docErr  error

	flatOnce sync.Once
	flat     string

	stateOnce sync.Once
	state     any
}

// NewPage wraps raw HTML fetched from url.
func NewPage(url, html string) *Page {
	return &Page{URL: url, HTML: html}
}

// Document returns the parsed DOM.
func (p *Page) Document() (*goquery.Document, error) {
	p.docOnce.Do(func() {
		p.doc, p.docErr = goquery.NewDocumentFromReader(strings.NewReader(p.HTML))
		if p.docErr != nil {
			p.docErr = eris.Wrap(p.docErr, "extract: parse html")
		}
	})
	return p.doc, p.docErr
}

// Flat returns the page source with JSON-escaped slashes resolved, so CDN
// URLs inside inline scripts match the same patterns as those in markup.
func (p *Page) Flat() string {
	p.flatOnce.Do(func() {
		p.flat = escapedSlashRe.ReplaceAllString(p.HTML, "/")
	})
	return p.flat
}

// State returns the decoded embedded state object, or nil when the page has
// none or it cannot be parsed even after repair.
func (p *Page) State() any {
	p.stateOnce.Do(func() {
		p.state = locateState(p)
	})
	return p.state
}
