// Package reviews turns raw review candidates into accepted reviews and
// de-duplicates them across incremental loads.
package reviews

import (
	"github.com/CodeTest-git/testovoe-otsivy/internal/model"
	"github.com/CodeTest-git/testovoe-otsivy/internal/sanitize"
)

// Merger filters noise out of raw candidates and re-joins authors that the
// markup split away from their review text.
type Merger struct {
	san *sanitize.Sanitizer
}

// NewMerger creates a Merger using san for text classification.
func NewMerger(san *sanitize.Sanitizer) *Merger {
	return &Merger{san: san}
}

// CleanAndMerge walks candidates in order with a single pending-author slot.
// An author-only candidate fills the slot; the next anonymous candidate with
// acceptable text adopts it. Noise leaves the slot untouched.
//
// The heuristic can attribute a review to the wrong author when unrelated
// author-only and anonymous candidates happen to be adjacent.
func (m *Merger) CleanAndMerge(raw []model.RawReview) []model.Review {
	out := make([]model.Review, 0, len(raw))
	var pending *model.RawReview

	for i := range raw {
		c := raw[i]
		text := sanitize.CleanText(c.Text)
		author := sanitize.CollapseSpace(sanitize.DecodeEntities(c.Author))

		if text == "" {
			c.Author = author
			if c.HasAuthor() {
				pending = &c
			}
			continue
		}
		if !m.san.Acceptable(text) || m.san.IsFragment(text) {
			continue
		}

		r := model.Review{
			Author:           author,
			AuthorStatus:     sanitize.CollapseSpace(sanitize.DecodeEntities(c.AuthorStatus)),
			AuthorAvatar:     c.AuthorAvatar,
			AuthorProfileURL: c.AuthorProfileURL,
			Rating:           model.ClampRating(c.Rating),
			Date:             c.Date,
			Text:             text,
		}
		if (r.Author == "" || r.Author == model.DefaultAuthor) && pending != nil {
			r.Author = pending.Author
			if r.AuthorStatus == "" {
				r.AuthorStatus = sanitize.CollapseSpace(sanitize.DecodeEntities(pending.AuthorStatus))
			}
			if r.AuthorAvatar == "" {
				r.AuthorAvatar = pending.AuthorAvatar
			}
			if r.AuthorProfileURL == "" {
				r.AuthorProfileURL = pending.AuthorProfileURL
			}
			if r.Date == "" {
				r.Date = pending.Date
			}
		}
		if r.Author == "" {
			r.Author = model.DefaultAuthor
		}
		pending = nil
		out = append(out, r)
	}
	return out
}
