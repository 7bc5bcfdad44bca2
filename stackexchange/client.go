// Package stackexchange provides a client for the Stack Exchange API with a
// disk-backed cache, so that repeated test runs do not burn through the API
// rate limit.
package stackexchange

import (
	"net/http"
	"strings"
	"time"

	"github.com/DylanKirbs/Stack-Overflow-Scraper-Tests/framework"
)

const defaultRequestTimeout = time.Second * 30

// Client issues requests to the Stack Exchange API through per-URL caches.
type Client struct {
	baseURL    string
	site       string
	cacheDir   string
	cacheTTL   time.Duration
	httpClient *http.Client
	logger     framework.Logger
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger for cache warnings and debug output.
func WithLogger(logger framework.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a Client. baseURL is the versioned API root, e.g.
// "https://api.stackexchange.com/2.3". Cached responses live under cacheDir
// and are refreshed when older than cacheTTL.
func NewClient(baseURL, site, cacheDir string, cacheTTL time.Duration, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		site:       site,
		cacheDir:   cacheDir,
		cacheTTL:   cacheTTL,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		logger:     framework.NullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL builds the full request URL for an endpoint path and raw query string.
// The site parameter is always included because the API rejects most requests
// without it.
func (c *Client) URL(endpoint, rawQuery string) string {
	return c.baseURL + endpoint + "?" + WithSiteParam(rawQuery, c.site)
}

// CachedGet returns the decoded response for the endpoint, served from the
// cache when it is fresh enough.
func (c *Client) CachedGet(endpoint, rawQuery string) (map[string]interface{}, error) {
	cache, err := c.Cache(endpoint, rawQuery)
	if err != nil {
		return nil, err
	}
	return cache.Fetch()
}

// Cache returns the cache entry for the endpoint without fetching it.
func (c *Client) Cache(endpoint, rawQuery string) (*Cache, error) {
	return NewCache(c.cacheDir, c.URL(endpoint, rawQuery), c.cacheTTL, c.httpClient, c.logger)
}

// WithSiteParam appends "site=<site>" to a raw query string unless a site
// parameter is already present.
func WithSiteParam(rawQuery, site string) string {
	if strings.HasPrefix(rawQuery, "site=") || strings.Contains(rawQuery, "&site=") {
		return rawQuery
	}
	if rawQuery == "" {
		return "site=" + site
	}
	return rawQuery + "&site=" + site
}
