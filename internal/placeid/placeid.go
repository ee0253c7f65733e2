// Package placeid resolves the organization identifier embedded in a maps
// listing URL.
package placeid

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnresolvable is returned by callers when a URL carries no identifier.
var ErrUnresolvable = eris.New("could not resolve organization from URL")

// MinPathDigits is the minimum identifier length accepted from URL paths.
const MinPathDigits = 5

var (
	oidInURIRe = regexp.MustCompile(`(?:^|[?&])oid=(\d+)`)
	digitsRe   = regexp.MustCompile(`^\d+$`)
	slugPathRe = regexp.MustCompile(`/org/([^/?#]+)/(\d+)(?:[/?#]|$)`)
	barePathRe = regexp.MustCompile(`/org/(\d+)(?:[/?#]|$)`)
)

// Extract returns the organization identifier for rawURL. Patterns are tried
// in order: the poi[uri] query parameter, the oid query parameter, the
// /org/<slug>/<digits>/ path and the /org/<digits>/ path. Identifiers taken
// from the path must have at least MinPathDigits digits.
func Extract(rawURL string) (string, bool) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", false
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}

	q := u.Query()
	if uri := q.Get("poi[uri]"); uri != "" {
		if m := oidInURIRe.FindStringSubmatch(uriQuery(uri)); m != nil {
			return m[1], true
		}
	}
	if oid := q.Get("oid"); digitsRe.MatchString(oid) {
		return oid, true
	}

	path := u.EscapedPath()
	if m := slugPathRe.FindStringSubmatch(path); m != nil && len(m[2]) >= MinPathDigits {
		return m[2], true
	}
	if m := barePathRe.FindStringSubmatch(path); m != nil && len(m[1]) >= MinPathDigits {
		return m[1], true
	}
	return "", false
}

// Slug returns the human-readable slug of an /org/<slug>/<digits>/ URL, or
// "" when the URL has none.
func Slug(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	m := slugPathRe.FindStringSubmatch(u.EscapedPath())
	if m == nil || len(m[2]) < MinPathDigits || digitsRe.MatchString(m[1]) {
		return ""
	}
	slug, err := url.PathUnescape(m[1])
	if err != nil {
		return m[1]
	}
	return slug
}

// uriQuery returns the query part of an org-scheme URI such as
// "ymapsbm1://org?oid=42".
func uriQuery(uri string) string {
	if i := strings.IndexByte(uri, '?'); i >= 0 {
		return uri[i+1:]
	}
	return uri
}

var titleCaser = cases.Title(language.Russian)

// NameFromSlug turns a URL slug such as "kofejnya_dobro" into a display
// name ("Kofejnya Dobro").
func NameFromSlug(slug string) string {
	slug = strings.NewReplacer("_", " ", "-", " ", "+", " ").Replace(slug)
	slug = strings.Join(strings.Fields(slug), " ")
	if slug == "" {
		return ""
	}
	return titleCaser.String(slug)
}
