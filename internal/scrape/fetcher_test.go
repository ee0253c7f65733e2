package scrape

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeTest-git/testovoe-otsivy/internal/resilience"
)

var listingBody = "<html><body><div class=\"orgpage-header-view\"><h1>Кофейня</h1></div>" + strings.Repeat("<p>ok</p>", 20) + "</body></html>"

func TestFetcher_SendsBrowserHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/maps/org/123456/", r.URL.Path)
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")
		assert.Contains(t, r.Header.Get("Accept"), "text/html")
		assert.Equal(t, "ru-RU", r.Header.Get("Accept-Language"))
		_, _ = w.Write([]byte(listingBody))
	}))
	defer srv.Close()

	f := NewFetcher(FetcherOptions{AcceptLanguage: "ru-RU"})
	page, err := f.Fetch(context.Background(), MainURL(srv.URL+"/maps", "123456"))
	require.NoError(t, err)
	assert.Equal(t, listingBody, page.HTML)
	assert.True(t, strings.HasSuffix(page.URL, "/maps/org/123456/"))
}

func TestFetcher_Blocked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div class="AdvancedCaptcha">` + strings.Repeat(" ", 200) + `</div></body></html>`))
	}))
	defer srv.Close()

	_, err := NewFetcher(FetcherOptions{}).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBlocked))
	assert.True(t, ShouldTrip(err))
}

func TestFetcher_StatusErrors(t *testing.T) {
	status := http.StatusNotFound
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(listingBody))
	}))
	defer srv.Close()

	f := NewFetcher(FetcherOptions{})
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.False(t, resilience.IsTransient(err))

	status = http.StatusServiceUnavailable
	_, err = f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, resilience.IsTransient(err))
}

func TestFetcher_EmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	_, err := NewFetcher(FetcherOptions{}).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty page")
}

func TestFetcher_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	f := NewFetcher(FetcherOptions{Timeout: 50 * time.Millisecond})
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, resilience.IsTransient(err))
}

func TestFetcher_BreakerStopsCalls(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	breaker := resilience.NewBreaker(resilience.BreakerConfig{
		Name:             "pages",
		FailureThreshold: 2,
		Cooldown:         time.Hour,
		ShouldTrip:       ShouldTrip,
	})
	f := NewFetcher(FetcherOptions{Breaker: breaker})

	for i := 0; i < 4; i++ {
		_, err := f.Fetch(context.Background(), srv.URL)
		require.Error(t, err)
	}
	assert.Equal(t, int32(2), hits.Load())
	assert.Equal(t, resilience.Open, breaker.State())
}

func TestFetcher_RateLimiterHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(listingBody))
	}))
	defer srv.Close()

	f := NewFetcher(FetcherOptions{RequestsPerSecond: 0.001, Burst: 1})
	_, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = f.Fetch(ctx, srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait")
}
