package scrape

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/CodeTest-git/testovoe-otsivy/internal/extract"
	"github.com/CodeTest-git/testovoe-otsivy/internal/resilience"
)

// ErrBlocked is returned when the upstream served a challenge page.
var ErrBlocked = eris.New("scrape: blocked by challenge page")

const (
	defaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	defaultAccept         = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8"
	defaultAcceptLanguage = "ru-RU,ru;q=0.9,en-US;q=0.8,en;q=0.7"
	defaultMaxBody        = 8 << 20
	minPageBytes          = 100
)

// FetcherOptions configures a Fetcher.
type FetcherOptions struct {
	UserAgent      string
	AcceptLanguage string
	// Timeout bounds a single page fetch, body included.
	Timeout time.Duration
	// RequestsPerSecond and Burst bound the load put on the upstream.
	// Zero disables the limiter.
	RequestsPerSecond float64
	Burst             int
	MaxBodyBytes      int64
	// Breaker is optional.
	Breaker    *resilience.Breaker
	HTTPClient *http.Client
}

// Fetcher retrieves listing pages with a fixed browser-like header set. It
// never retries: a failed fetch is reported once and the caller degrades.
type Fetcher struct {
	client  *http.Client
	opts    FetcherOptions
	limiter *rate.Limiter
	breaker *resilience.Breaker
}

// NewFetcher creates a Fetcher, filling zero options with defaults.
func NewFetcher(opts FetcherOptions) *Fetcher {
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.AcceptLanguage == "" {
		opts.AcceptLanguage = defaultAcceptLanguage
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBody
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	f := &Fetcher{client: client, opts: opts, breaker: opts.Breaker}
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		f.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	return f
}

// Fetch downloads targetURL and returns it as a page. Challenge pages yield
// ErrBlocked; non-2xx statuses and empty bodies are errors too.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string) (*extract.Page, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "scrape: rate limit wait")
		}
	}
	if f.breaker == nil {
		return f.fetch(ctx, targetURL)
	}
	return resilience.DoVal(ctx, f.breaker, func(ctx context.Context) (*extract.Page, error) {
		return f.fetch(ctx, targetURL)
	})
}

func (f *Fetcher) fetch(ctx context.Context, targetURL string) (*extract.Page, error) {
	ctx, cancel := context.WithTimeout(ctx, f.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "scrape: create request")
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", defaultAccept)
	req.Header.Set("Accept-Language", f.opts.AcceptLanguage)
	req.Header.Set("Cache-Control", "no-cache")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || resilience.IsTransient(err) {
			return nil, resilience.NewTransientError(eris.Wrap(err, "scrape: fetch"), 0)
		}
		return nil, eris.Wrap(err, "scrape: fetch")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.opts.MaxBodyBytes))
	if err != nil {
		return nil, resilience.NewTransientError(eris.Wrap(err, "scrape: read body"), resp.StatusCode)
	}

	if blocked, blockType := DetectBlock(resp, body); blocked {
		return nil, eris.Wrapf(ErrBlocked, "scrape: %s at %s", blockType, targetURL)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := eris.Errorf("scrape: status %d for %s", resp.StatusCode, targetURL)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(err, resp.StatusCode)
		}
		return nil, err
	}
	if len(body) < minPageBytes {
		return nil, eris.Errorf("scrape: empty page %s", targetURL)
	}

	zap.L().Debug("scrape: page fetched",
		zap.String("url", targetURL),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return extract.NewPage(targetURL, string(body)), nil
}

// ShouldTrip counts challenge pages and transient failures toward opening
// a page breaker; a 404 for one organization says nothing about the rest.
func ShouldTrip(err error) bool {
	return errors.Is(err, ErrBlocked) || resilience.IsTransient(err)
}
