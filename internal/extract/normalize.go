package extract

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/CodeTest-git/testovoe-otsivy/internal/model"
	"github.com/CodeTest-git/testovoe-otsivy/internal/sanitize"
)

// Field aliases seen across the state shapes of different page versions.
var (
	authorNameKeys   = []string{"name", "displayName", "publicName", "login"}
	topAuthorKeys    = []string{"authorName", "userName", "displayName", "name"}
	avatarKeys       = []string{"avatarUrl", "avatar", "authorAvatar", "avatarUrlTemplate", "pic"}
	profileKeys      = []string{"profileUrl", "publicProfileUrl", "authorProfileUrl", "url"}
	statusKeys       = []string{"professionLevel", "status", "level", "authorStatus"}
	ratingKeys       = []string{"rating", "stars", "score", "ratingValue"}
	dateKeys         = []string{"date", "createdAt", "updatedAt", "updatedTime", "time", "datePublished"}
	textKeys         = []string{"text", "comment", "body", "reviewBody", "content"}
	reviewMarkerKeys = []string{"text", "comment", "body", "reviewBody", "author", "authorName"}
)

const (
	millisThreshold   = 1e12
	unixSecsThreshold = 1e9
)

// looksLikeReview reports whether v is an object carrying review fields.
func looksLikeReview(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	for _, k := range reviewMarkerKeys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}

// Normalize maps a review object of any known shape onto RawReview. Missing
// fields are left empty; the avatar {size} placeholder is substituted.
func (e *Extractor) Normalize(m map[string]any) model.RawReview {
	var r model.RawReview

	switch a := m["author"].(type) {
	case map[string]any:
		r.Author = firstString(a, authorNameKeys...)
		r.AuthorAvatar = firstString(a, avatarKeys...)
		r.AuthorProfileURL = firstString(a, profileKeys...)
		r.AuthorStatus = firstString(a, statusKeys...)
	case string:
		r.Author = a
	}
	if r.Author == "" {
		r.Author = firstString(m, topAuthorKeys...)
	}
	if r.AuthorAvatar == "" {
		r.AuthorAvatar = firstString(m, avatarKeys...)
	}
	if r.AuthorStatus == "" {
		r.AuthorStatus = firstString(m, statusKeys...)
	}
	if r.AuthorProfileURL == "" {
		if u := firstString(m, "authorProfileUrl", "profileUrl"); u != "" {
			r.AuthorProfileURL = u
		}
	}

	r.Author = sanitize.CollapseSpace(r.Author)
	r.AuthorStatus = sanitize.CollapseSpace(r.AuthorStatus)
	if r.AuthorAvatar != "" {
		r.AuthorAvatar = withSize(absoluteURL(r.AuthorAvatar), e.cfg.AvatarSize)
	}
	if r.AuthorProfileURL != "" {
		r.AuthorProfileURL = e.absoluteSiteURL(r.AuthorProfileURL)
	}

	for _, k := range ratingKeys {
		if n := numberValue(m[k]); n > 0 {
			r.Rating = int(math.Round(n))
			break
		}
	}
	for _, k := range dateKeys {
		if d := dateValue(m[k]); d != "" {
			r.Date = d
			break
		}
	}
	r.Text = sanitize.CleanText(firstString(m, textKeys...))
	return r
}

// reviewsFromList normalizes the review-looking objects of a JSON array.
func (e *Extractor) reviewsFromList(list []any) []model.RawReview {
	var out []model.RawReview
	for _, item := range list {
		if !looksLikeReview(item) {
			continue
		}
		r := e.Normalize(item.(map[string]any))
		if r.Text == "" && r.Author == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// numberValue reads a rating that may be a number, a numeric string or an
// object with a value field.
func numberValue(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(t), ",", ".", 1), 64)
		if err != nil {
			return 0
		}
		return f
	case map[string]any:
		return numberValue(t["value"])
	}
	return 0
}

// dateValue reads a date given as a string or as a unix timestamp in
// seconds or milliseconds.
func dateValue(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		switch {
		case t >= millisThreshold:
			return time.UnixMilli(int64(t)).UTC().Format(time.RFC3339)
		case t >= unixSecsThreshold:
			return time.Unix(int64(t), 0).UTC().Format(time.RFC3339)
		}
	}
	return ""
}
