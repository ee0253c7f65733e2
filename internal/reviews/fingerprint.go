package reviews

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/CodeTest-git/testovoe-otsivy/internal/model"
	"github.com/CodeTest-git/testovoe-otsivy/internal/sanitize"
)

// fingerprintTextRunes is how much of the text takes part in the
// fingerprint.
const fingerprintTextRunes = 50

var fold = cases.Fold()

// Fingerprint is the identity of a review across loads: author, date and the
// start of the text, Unicode-normalized and case-folded. Two distinct
// reviews by one author on one day that start the same way collide.
func Fingerprint(r model.Review) string {
	text := r.Text
	if utf8.RuneCountInString(text) > fingerprintTextRunes {
		text = string([]rune(text)[:fingerprintTextRunes])
	}
	return normalizeKey(r.Author) + "|" + normalizeKey(r.Date) + "|" + normalizeKey(text)
}

func normalizeKey(s string) string {
	s = norm.NFKC.String(s)
	s = fold.String(s)
	return sanitize.CollapseSpace(strings.ReplaceAll(s, "ё", "е"))
}

// Seen is a set of fingerprints already served to the caller.
type Seen map[string]struct{}

// Add records the fingerprints of reviews.
func (s Seen) Add(reviews ...model.Review) {
	for _, r := range reviews {
		s[Fingerprint(r)] = struct{}{}
	}
}

// Has reports whether r was already recorded.
func (s Seen) Has(r model.Review) bool {
	_, ok := s[Fingerprint(r)]
	return ok
}

// Dedup drops reviews already in seen, including repeats within reviews
// itself, and records the survivors. Order is preserved.
func Dedup(reviews []model.Review, seen Seen) []model.Review {
	out := make([]model.Review, 0, len(reviews))
	for _, r := range reviews {
		if seen.Has(r) {
			continue
		}
		seen.Add(r)
		out = append(out, r)
	}
	return out
}
