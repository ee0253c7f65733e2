// Package scrape fetches listing pages and recognizes anti-bot challenge
// pages served in their place.
package scrape

import (
	"net/http"
	"strings"
)

// BlockType describes the kind of block detected.
type BlockType string

const (
	BlockNone      BlockType = ""
	BlockCaptcha   BlockType = "captcha"
	BlockChallenge BlockType = "robot_challenge"
)

// captchaMarkers only appear on the challenge page itself. The regular
// listing embeds a captcha fingerprinting script, so the bare word
// "captcha" is not among them.
var captchaMarkers = []string{
	"checkboxcaptcha",
	"advancedcaptcha",
	"checkbox-captcha-form",
	"captcha__image",
	"smartcaptcha-",
	`action="/checkcaptcha`,
	"/showcaptcha?",
}

var robotPhrases = []string{
	"не робот",
	"подтвердите, что запросы отправляли вы",
	"not a robot",
	"confirm that you",
}

// contentMarkers are containers present on every real listing page.
var contentMarkers = []string{
	"business-review-view",
	"business-reviews-card-view",
	"orgpage-header-view",
	"business-card-view",
	"card-section-header",
}

// DetectBlock reports whether a response is a challenge page instead of the
// listing. resp may be nil when only the body is available.
func DetectBlock(resp *http.Response, body []byte) (bool, BlockType) {
	if resp != nil && resp.Request != nil && resp.Request.URL != nil &&
		strings.Contains(resp.Request.URL.Path, "showcaptcha") {
		return true, BlockCaptcha
	}

	lower := strings.ToLower(string(body))
	for _, m := range captchaMarkers {
		if strings.Contains(lower, m) {
			return true, BlockCaptcha
		}
	}

	for _, p := range robotPhrases {
		if !strings.Contains(lower, p) {
			continue
		}
		for _, c := range contentMarkers {
			if strings.Contains(lower, c) {
				return false, BlockNone
			}
		}
		return true, BlockChallenge
	}
	return false, BlockNone
}
