package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/CodeTest-git/testovoe-otsivy/internal/sanitize"
)

// stateLogoPaths are key paths into the embedded state that hold the logo,
// either as a URL string or as an object with a URL field.
var stateLogoPaths = [][]string{
	{"company", "logo"},
	{"company", "logoUrl"},
	{"orgpage", "company", "logo"},
	{"businessInfo", "logo"},
	{"business", "logo"},
	{"logo"},
}

var inlineLogoRe = regexp.MustCompile(`"logoUrl"\s*:\s*"([^"]+)"`)

// Logo returns the business logo URL, or "" when no candidate survives.
// Candidates are tried from the most CDN-specific to the most generic.
// The page's og:image is never used: it is usually a gallery photo.
func (e *Extractor) Logo(p *Page) string {
	candidates := []func(*Page) string{
		e.logoFromCDN,
		logoFromBackground,
		logoFromBackgroundChild,
		logoFromImg,
		e.logoFromState,
		logoFromInline,
	}
	for _, c := range candidates {
		u := c(p)
		if u == "" {
			continue
		}
		u = withSize(absoluteURL(sanitize.DecodeEntities(sanitize.UnescapeJSString(u))), e.cfg.LogoSize)
		if e.usableLogo(u) {
			return u
		}
	}
	return ""
}

func (e *Extractor) usableLogo(u string) bool {
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return false
	}
	for _, p := range e.cfg.CatalogThumbPrefixes {
		if strings.Contains(u, p) {
			return false
		}
	}
	return true
}

func (e *Extractor) logoFromCDN(p *Page) string {
	flat := p.Flat()
	for _, re := range e.cdn.logo {
		if m := re.FindString(flat); m != "" {
			return m
		}
	}
	return ""
}

func logoFromBackground(p *Page) string {
	doc, err := p.Document()
	if err != nil {
		return ""
	}
	style, _ := doc.Find(`[class*="logo"][style*="background-image"]`).First().Attr("style")
	return backgroundURL(style)
}

func logoFromBackgroundChild(p *Page) string {
	doc, err := p.Document()
	if err != nil {
		return ""
	}
	style, _ := doc.Find(`[class*="logo"] [style*="background-image"]`).First().Attr("style")
	return backgroundURL(style)
}

func logoFromImg(p *Page) string {
	doc, err := p.Document()
	if err != nil {
		return ""
	}
	var src string
	doc.Find(`img[class*="logo"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		for _, attr := range []string{"src", "data-src"} {
			if v, ok := s.Attr(attr); ok && strings.TrimSpace(v) != "" && !strings.HasPrefix(v, "data:") {
				src = v
				return false
			}
		}
		return true
	})
	return src
}

func (e *Extractor) logoFromState(p *Page) string {
	state := p.State()
	if state == nil {
		return ""
	}
	for _, path := range stateLogoPaths {
		v, ok := lookup(state, path...)
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			if t != "" {
				return t
			}
		case map[string]any:
			if u := firstString(t, "urlTemplate", "url", "href", "src"); u != "" {
				return u
			}
		}
	}
	return ""
}

func logoFromInline(p *Page) string {
	if m := inlineLogoRe.FindStringSubmatch(p.HTML); m != nil {
		return m[1]
	}
	return ""
}

func backgroundURL(style string) string {
	if style == "" {
		return ""
	}
	if m := bgImageRe.FindStringSubmatch(sanitize.DecodeEntities(style)); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
