// Package sanitize cleans scraped markup into plain text and classifies text
// that is interface noise or leaked code rather than user-written content.
package sanitize

import (
	"encoding/json"
	"html"
	"regexp"
	"strings"
)

var (
	scriptStyleRe = regexp.MustCompile(`(?is)<(script|style|noscript)\b[^>]*>.*?</(script|style|noscript)>`)
	breakTagRe    = regexp.MustCompile(`(?i)<\s*(br|/p|/div|/li)\s*/?>`)
	tagRe         = regexp.MustCompile(`<[^>]*>`)
	spaceRe       = regexp.MustCompile(`\s+`)
)

// StripTags removes script/style blocks and all markup tags from s. Block
// boundaries become spaces so adjacent words do not merge.
func StripTags(s string) string {
	s = scriptStyleRe.ReplaceAllString(s, " ")
	s = breakTagRe.ReplaceAllString(s, " ")
	return tagRe.ReplaceAllString(s, " ")
}

// DecodeEntities decodes HTML entities, including doubly encoded ones such as
// "&amp;quot;".
func DecodeEntities(s string) string {
	for range 3 {
		if !strings.Contains(s, "&") {
			break
		}
		decoded := html.UnescapeString(s)
		if decoded == s {
			break
		}
		s = decoded
	}
	return s
}

// CollapseSpace folds all whitespace runs (including non-breaking spaces)
// into single spaces and trims the result.
func CollapseSpace(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.ReplaceAll(s, "\u200b", "")
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// CleanText turns an HTML fragment into normalized plain text.
func CleanText(s string) string {
	return CollapseSpace(DecodeEntities(StripTags(s)))
}

// UnescapeJSString resolves the escapes that appear when text or URLs are
// lifted out of inline JSON with a regular expression.
func UnescapeJSString(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var out string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &out); err == nil {
		return out
	}
	return jsEscapes.Replace(s)
}

var jsEscapes = strings.NewReplacer(
	`\/`, `/`,
	`\"`, `"`,
	`\n`, " ",
	`\t`, " ",
	`\\`, `\`,
)
