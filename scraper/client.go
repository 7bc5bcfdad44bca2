// Package scraper manages the scraper service under test: launching it as a
// child process, waiting for it to answer HTTP, and querying its endpoints.
package scraper

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/DylanKirbs/Stack-Overflow-Scraper-Tests/framework"
)

const defaultRequestTimeout = time.Second * 30
const readyPollInterval = time.Millisecond * 100

// readyEndpoint is the endpoint polled to decide whether the service is up.
const readyEndpoint = "/questions"

// Client queries the scraper service under test.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     framework.Logger
}

// Response is a raw response from the scraper service.
type Response struct {
	StatusCode int
	Body       []byte
}

// DecodeJSON decodes the response body as a JSON object.
func (r *Response) DecodeJSON() (map[string]interface{}, error) {
	var payload map[string]interface{}
	if err := json.Unmarshal(r.Body, &payload); err != nil {
		return nil, errors.Wrap(err, "decoding scraper response")
	}
	return payload, nil
}

// BodySnippet returns a shortened form of the body for failure messages.
func (r *Response) BodySnippet() string {
	const max = 200
	s := string(r.Body)
	if len(s) > max {
		s = s[:max] + "..."
	}
	return s
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger for request debug output.
func WithLogger(logger framework.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a Client for a scraper service at baseURL, e.g.
// "http://localhost:5000".
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		logger:     framework.NullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get requests an endpoint path with a raw query string and returns the
// response regardless of status code.
func (c *Client) Get(endpoint, rawQuery string) (*Response, error) {
	url := c.baseURL + endpoint
	if rawQuery != "" {
		url += "?" + rawQuery
	}
	c.logger.Printf("GET %s", url)
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, errors.Wrapf(err, "requesting %s", url)
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, errors.Wrapf(err, "reading response from %s", url)
	}
	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// AwaitReady polls the service until it answers with status 200, writing a
// progress dot for each attempt. It returns an error if the deadline passes
// first.
func (c *Client) AwaitReady(timeout time.Duration, output io.Writer) error {
	fmt.Fprintf(output, "Waiting for the scraper service at %s", c.baseURL)
	defer fmt.Fprintln(output)

	deadline := time.Now().Add(timeout)
	var lastErr error
	for time.Now().Before(deadline) {
		fmt.Fprint(output, ".")
		resp, err := c.httpClient.Get(c.baseURL + readyEndpoint)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
			lastErr = errors.Errorf("service returned status code %d", resp.StatusCode)
		} else {
			lastErr = err
		}
		time.Sleep(readyPollInterval)
	}
	return errors.Wrap(lastErr, "timed out waiting for the scraper service")
}
