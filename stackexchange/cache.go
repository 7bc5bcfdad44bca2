package stackexchange

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/DylanKirbs/Stack-Overflow-Scraper-Tests/framework"
)

const maxErrorBodySnippet = 200

// Cache is a disk-backed copy of one API response, refreshed when older than
// its update interval. Each cached URL gets its own JSON file containing the
// response payload and bookkeeping metadata.
type Cache struct {
	meta       cacheMeta
	payload    map[string]interface{}
	filePath   string
	httpClient *http.Client
	logger     framework.Logger
	now        func() time.Time
}

type cacheMeta struct {
	LastUpdate     int64  `json:"last_update"`
	URL            string `json:"url"`
	UpdateInterval int64  `json:"update_interval"`
}

type cacheFile struct {
	Meta  cacheMeta              `json:"meta"`
	Cache map[string]interface{} `json:"cache"`
}

// NewCache opens or creates the cache entry for the given URL. The cache
// directory is created if it does not exist yet.
func NewCache(dir, url string, ttl time.Duration, httpClient *http.Client, logger framework.Logger) (*Cache, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	if logger == nil {
		logger = framework.NullLogger()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating cache directory")
	}

	c := &Cache{
		meta: cacheMeta{
			URL:            url,
			UpdateInterval: int64(ttl / time.Second),
		},
		filePath:   filepath.Join(dir, cacheFileName(url)),
		httpClient: httpClient,
		logger:     logger,
		now:        time.Now,
	}

	if _, err := os.Stat(c.filePath); os.IsNotExist(err) {
		if err := c.save(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Fetch returns the cached payload, refreshing it first if it is out of date.
//
// If the refresh fails the previous payload is returned, which may be out of
// date; the failure is logged as a warning. Fetch only returns an error when
// there is no usable payload at all.
func (c *Cache) Fetch() (map[string]interface{}, error) {
	if err := c.load(); err != nil {
		return nil, err
	}

	if c.now().Unix()-c.meta.LastUpdate > c.meta.UpdateInterval {
		c.Refresh()
	}

	if c.payload == nil {
		return nil, errors.Errorf("no cached response available for %s", c.meta.URL)
	}
	return c.payload, nil
}

// Refresh queries the URL and replaces the cached payload on success. On any
// failure the existing payload is left untouched.
func (c *Cache) Refresh() {
	resp, err := c.httpClient.Get(c.meta.URL)
	if err != nil {
		c.logger.Printf("Request to %s failed, no changes will be made to the cache: %s", c.meta.URL, err)
		return
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		c.logger.Printf("Reading response from %s failed, no changes will be made to the cache: %s", c.meta.URL, err)
		return
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Printf("Erroneous response from %s: %d %s. No changes will be made to the cache.",
			c.meta.URL, resp.StatusCode, bodySnippet(body))
		return
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		c.logger.Printf("Response from %s was not valid JSON, no changes will be made to the cache: %s", c.meta.URL, err)
		return
	}

	c.payload = payload
	c.meta.LastUpdate = c.now().Unix()

	if err := c.save(); err != nil {
		c.logger.Printf("Could not persist cache for %s: %s", c.meta.URL, err)
	}
}

func (c *Cache) save() error {
	data, err := json.Marshal(cacheFile{Meta: c.meta, Cache: c.payload})
	if err != nil {
		return errors.Wrap(err, "encoding cache file")
	}
	if err := os.WriteFile(c.filePath, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing cache file %s", c.filePath)
	}
	return nil
}

func (c *Cache) load() error {
	data, err := os.ReadFile(c.filePath)
	if err != nil {
		return errors.Wrapf(err, "reading cache file %s", c.filePath)
	}
	var f cacheFile
	if err := json.Unmarshal(data, &f); err != nil {
		return errors.Wrapf(err, "decoding cache file %s", c.filePath)
	}
	c.meta = f.Meta
	c.payload = f.Cache
	return nil
}

// cacheFileName maps a URL to a flat file name, replacing characters that are
// unsafe in file names.
func cacheFileName(url string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		":", "_",
		"?", "_",
		"&", "_",
		"=", "_",
		"#", "_",
		"%", "_",
		"\\", "_",
	)
	return replacer.Replace(url) + ".json"
}

func bodySnippet(body []byte) string {
	s := string(body)
	if len(s) > maxErrorBodySnippet {
		s = s[:maxErrorBodySnippet] + "..."
	}
	return s
}
