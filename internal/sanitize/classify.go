package sanitize

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
)

var templateRe = regexp.MustCompile(`\{\{[^}]*\}\}`)

// Sanitizer classifies text against a fixed set of Rules. It is safe for
// concurrent use.
type Sanitizer struct {
	rules    Rules
	phrases  map[string]struct{}
	patterns []*regexp.Regexp
}

// New compiles rules into a Sanitizer.
func New(rules Rules) (*Sanitizer, error) {
	s := &Sanitizer{
		rules:   rules,
		phrases: make(map[string]struct{}, len(rules.NoisePhrases)),
	}
	for _, p := range rules.NoisePhrases {
		s.phrases[strings.ToLower(strings.TrimSpace(p))] = struct{}{}
	}
	for _, p := range rules.NoisePatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, eris.Wrapf(err, "sanitize: compile noise pattern %q", p)
		}
		s.patterns = append(s.patterns, re)
	}
	return s, nil
}

// Default returns a Sanitizer built from DefaultRules.
func Default() *Sanitizer {
	s, err := New(DefaultRules())
	if err != nil {
		panic(err)
	}
	return s
}

// Rules returns the configuration the Sanitizer was built with.
func (s *Sanitizer) Rules() Rules {
	return s.rules
}

// IsGarbage reports whether text is an interface label, a badge, or carries
// no letters at all.
func (s *Sanitizer) IsGarbage(text string) bool {
	text = CollapseSpace(text)
	if text == "" {
		return true
	}
	if _, ok := s.phrases[strings.ToLower(strings.Trim(text, " .!:…"))]; ok {
		return true
	}
	for _, re := range s.patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// LooksLikeCode reports whether text is leaked script source, serialized
// data or an unrendered template rather than prose.
func (s *Sanitizer) LooksLikeCode(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if text[0] == '{' || text[0] == '[' {
		return true
	}
	lower := strings.ToLower(text)
	for _, p := range s.rules.CodePrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	if templateRe.MatchString(text) {
		return true
	}

	n := utf8.RuneCountInString(text)
	if n < s.rules.SpecialCharMinLength {
		return false
	}
	var special int
	for _, r := range text {
		if strings.ContainsRune(s.rules.SpecialChars, r) {
			special++
		}
	}
	return float64(special)/float64(n) > s.rules.SpecialCharRatio
}

// IsFragment reports whether text is short and does not end in
// sentence-final punctuation, which is how author names and labels look when
// they leak into the text slot.
func (s *Sanitizer) IsFragment(text string) bool {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) >= s.rules.FragmentLength {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(text)
	return !strings.ContainsRune(".!?…", last)
}

// Acceptable reports whether text may be emitted as a review body.
func (s *Sanitizer) Acceptable(text string) bool {
	text = CollapseSpace(text)
	if utf8.RuneCountInString(text) < s.rules.MinReviewLength {
		return false
	}
	return !s.IsGarbage(text) && !s.LooksLikeCode(text)
}
