package scrape

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectBlock_CaptchaWidget(t *testing.T) {
	body := []byte(`<html><body><form id="checkbox-captcha-form" action="/checkcaptcha?key=abc"><div class="CheckboxCaptcha"></div></form></body></html>`)
	blocked, bt := DetectBlock(nil, body)
	assert.True(t, blocked)
	assert.Equal(t, BlockCaptcha, bt)
}

func TestDetectBlock_ShowCaptchaRedirect(t *testing.T) {
	resp := &http.Response{
		StatusCode: 200,
		Request:    &http.Request{URL: &url.URL{Scheme: "https", Host: "yandex.ru", Path: "/showcaptcha"}},
	}
	blocked, bt := DetectBlock(resp, []byte("<html></html>"))
	assert.True(t, blocked)
	assert.Equal(t, BlockCaptcha, bt)
}

func TestDetectBlock_FingerprintScriptOnly(t *testing.T) {
	body := []byte(`<html><head><script src="https://yastatic.net/captcha-fingerprint/v1/captcha.js"></script></head>
<body><div class="orgpage-header-view"><h1>Кофейня</h1></div><div class="business-review-view">Отзыв</div></body></html>`)
	blocked, bt := DetectBlock(nil, body)
	assert.False(t, blocked)
	assert.Equal(t, BlockNone, bt)
}

func TestDetectBlock_RobotPhraseWithoutContent(t *testing.T) {
	body := []byte(`<html><body><h1>Подтвердите, что запросы отправляли вы, а не робот</h1></body></html>`)
	blocked, bt := DetectBlock(nil, body)
	assert.True(t, blocked)
	assert.Equal(t, BlockChallenge, bt)
}

func TestDetectBlock_RobotPhraseInsideContent(t *testing.T) {
	body := []byte(`<html><body><div class="business-review-view">Я не робот, я просто люблю этот кофе!</div></body></html>`)
	blocked, _ := DetectBlock(nil, body)
	assert.False(t, blocked)
}

func TestDetectBlock_CleanPage(t *testing.T) {
	blocked, bt := DetectBlock(&http.Response{StatusCode: 200}, []byte("<html><body>ok</body></html>"))
	assert.False(t, blocked)
	assert.Equal(t, BlockNone, bt)
}

func TestURLs(t *testing.T) {
	assert.Equal(t, "https://yandex.ru/maps/org/123456/", MainURL(DefaultMapsBaseURL, "123456"))
	assert.Equal(t, "https://yandex.ru/maps/org/123456/reviews/", ReviewsURL(DefaultMapsBaseURL+"/", "123456", 1))
	assert.Equal(t, "https://yandex.ru/maps/org/123456/reviews/?page=3", ReviewsURL(DefaultMapsBaseURL, "123456", 3))
}
