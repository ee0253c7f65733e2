package model

import (
	"strings"
	"unicode"
)

// Review is an accepted review. Only the merge step produces values of this
// type, after text passed the garbage, code and length filters.
type Review struct {
	Author           string `json:"author"`
	AuthorStatus     string `json:"authorStatus,omitempty"`
	AuthorAvatar     string `json:"authorAvatar,omitempty"`
	AuthorProfileURL string `json:"authorProfileUrl,omitempty"`
	Rating           int    `json:"rating"`
	Date             string `json:"date"`
	Text             string `json:"text"`
}

// RawReview is an unfiltered candidate produced by an extraction strategy.
// Text may be empty or noisy; Rating may be zero when no signal was found.
type RawReview struct {
	Author           string `json:"author"`
	AuthorStatus     string `json:"authorStatus,omitempty"`
	AuthorAvatar     string `json:"authorAvatar,omitempty"`
	AuthorProfileURL string `json:"authorProfileUrl,omitempty"`
	Rating           int    `json:"rating"`
	Date             string `json:"date"`
	Text             string `json:"text"`
}

// HasAuthor reports whether the candidate carries a real author name: not
// the anonymous default and holding at least one letter or digit.
func (r RawReview) HasAuthor() bool {
	if r.Author == "" || r.Author == DefaultAuthor {
		return false
	}
	return strings.IndexFunc(r.Author, func(c rune) bool {
		return unicode.IsLetter(c) || unicode.IsDigit(c)
	}) >= 0
}

// ClampRating bounds a rating to the 1..5 star scale. Zero means unknown and
// is mapped to 5, which is how the listing renders an unrated review.
func ClampRating(r int) int {
	switch {
	case r <= 0:
		return 5
	case r > 5:
		return 5
	default:
		return r
	}
}
