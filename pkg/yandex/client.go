// Package yandex is a client for the organization search API of the maps
// service. It only answers the metadata the listing pages are slow to give:
// name, rating and the number of ratings.
package yandex

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"

	"github.com/CodeTest-git/testovoe-otsivy/internal/resilience"
)

const (
	defaultBaseURL = "https://search-maps.yandex.ru/v1/"
	defaultLang    = "ru_RU"
	maxErrorBody   = 512
)

// ErrNoAPIKey is returned without a request when the client has no key.
var ErrNoAPIKey = eris.New("yandex: api key is not configured")

// Client performs organization search API operations.
type Client interface {
	SearchOrganization(ctx context.Context, placeID string) (*Organization, error)
}

// Organization is the normalized metadata of one organization. A zero field
// means the API did not report it.
type Organization struct {
	Name         string  `json:"name"`
	Rating       float64 `json:"rating"`
	ReviewsCount int     `json:"reviewsCount"`
}

// SearchResponse is the GeoJSON envelope returned by the API.
type SearchResponse struct {
	Features []Feature `json:"features"`
}

// Feature is one search hit.
type Feature struct {
	Properties Properties `json:"properties"`
}

// Properties holds the hit's metadata.
type Properties struct {
	Name            string           `json:"name"`
	CompanyMetaData *CompanyMetaData `json:"CompanyMetaData"`
}

// CompanyMetaData is present on organization hits.
type CompanyMetaData struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Ratings *Ratings `json:"Ratings"`
}

// Ratings is the aggregate score of an organization.
type Ratings struct {
	Score   float64 `json:"score"`
	Ratings int     `json:"ratings"`
	Reviews int     `json:"reviews"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithLang sets the response language, e.g. "ru_RU".
func WithLang(lang string) Option {
	return func(c *httpClient) {
		if lang != "" {
			c.lang = lang
		}
	}
}

// WithTimeout bounds a single API call.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithBreaker guards calls with a circuit breaker.
func WithBreaker(b *resilience.Breaker) Option {
	return func(c *httpClient) {
		c.breaker = b
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	lang    string
	http    *http.Client
	breaker *resilience.Breaker
}

// NewClient creates an organization search API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		lang:    defaultLang,
		http: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) SearchOrganization(ctx context.Context, placeID string) (*Organization, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if c.breaker == nil {
		return c.search(ctx, placeID)
	}
	return resilience.DoVal(ctx, c.breaker, func(ctx context.Context) (*Organization, error) {
		return c.search(ctx, placeID)
	})
}

func (c *httpClient) search(ctx context.Context, placeID string) (*Organization, error) {
	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("uri", "ymapsbm1://org?oid="+placeID)
	q.Set("type", "biz")
	q.Set("lang", c.lang)
	q.Set("results", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "yandex: create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, resilience.NewTransientError(eris.Wrap(err, "yandex: send request"), 0)
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "yandex: read response")
	}

	if resp.StatusCode != http.StatusOK {
		if len(respBody) > maxErrorBody {
			respBody = respBody[:maxErrorBody]
		}
		err := eris.Errorf("yandex: unexpected status %d: %s", resp.StatusCode, string(respBody))
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(err, resp.StatusCode)
		}
		return nil, err
	}

	var result SearchResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "yandex: unmarshal response")
	}

	return result.Organization(), nil
}

// Organization normalizes the first organization hit. It returns an empty
// Organization when the response carries none.
func (r SearchResponse) Organization() *Organization {
	org := &Organization{}
	for _, f := range r.Features {
		meta := f.Properties.CompanyMetaData
		if meta == nil {
			continue
		}
		org.Name = meta.Name
		if org.Name == "" {
			org.Name = f.Properties.Name
		}
		if meta.Ratings != nil {
			org.Rating = meta.Ratings.Score
			org.ReviewsCount = meta.Ratings.Ratings
		}
		break
	}
	return org
}
