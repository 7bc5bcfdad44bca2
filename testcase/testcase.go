// Package testcase defines the contributor-facing test_cases.json format.
//
// The file is a JSON array. Each element is either a plain string holding an
// endpoint path plus query string:
//
//	"/collectives?key=value&another_key=another_value"
//
// or an object when the case needs more control:
//
//	{
//	  "endpoint": "/collectives?order=desc",
//	  "name": "collectives descending",
//	  "expectedStatus": 200,
//	  "ignoreFields": ["items.last_activity_date"],
//	  "similarityThreshold": 0.95
//	}
//
// All fields other than "endpoint" are optional.
package testcase

import (
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/DylanKirbs/Stack-Overflow-Scraper-Tests/framework"
)

// Case is a single entry of test_cases.json.
type Case struct {
	// Endpoint is the path plus optional query string, e.g. "/collectives?order=desc".
	Endpoint string `json:"endpoint"`

	// Name optionally overrides how the case appears in test output.
	Name string `json:"name,omitempty"`

	// ExpectedStatus is the status code the scraper must return. When unset,
	// 200 is expected and the response body is compared against the API.
	ExpectedStatus ldvalue.OptionalInt `json:"expectedStatus,omitempty"`

	// IgnoreFields lists dotted field paths excluded from comparison.
	IgnoreFields []string `json:"ignoreFields,omitempty"`

	// SimilarityThreshold, when nonzero, relaxes string comparison to a
	// similarity ratio at or above this value.
	SimilarityThreshold float64 `json:"similarityThreshold,omitempty"`
}

// caseObject avoids recursing into Case.UnmarshalJSON.
type caseObject Case

// UnmarshalJSON accepts either the plain string form or the object form.
func (c *Case) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var endpoint string
		if err := json.Unmarshal(data, &endpoint); err != nil {
			return err
		}
		*c = Case{Endpoint: strings.TrimSpace(endpoint)}
		return nil
	}
	var obj caseObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	obj.Endpoint = strings.TrimSpace(obj.Endpoint)
	*c = Case(obj)
	return nil
}

// Path returns the endpoint path without the query string.
func (c Case) Path() string {
	path, _, _ := strings.Cut(c.Endpoint, "?")
	return path
}

// Query returns the raw query string, without the leading "?".
func (c Case) Query() string {
	_, query, _ := strings.Cut(c.Endpoint, "?")
	return query
}

// Title is the case's display name in test output.
func (c Case) Title() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Endpoint
}

func (c Case) validate() error {
	if c.Endpoint == "" {
		return errors.New("endpoint must not be empty")
	}
	if !strings.HasPrefix(c.Endpoint, "/") {
		return errors.Errorf("endpoint %q must begin with /", c.Endpoint)
	}
	return nil
}

// Load reads the test case file. If the file does not exist it is created
// containing an empty array, a warning is logged telling the contributor to
// add cases, and an empty list is returned.
func Load(path string, logger framework.Logger) ([]Case, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("[]\n"), 0o644); err != nil {
			return nil, errors.Wrapf(err, "creating %s", path)
		}
		logger.Printf("Warning, no test cases found. Please add test cases to %s", path)
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	var cases []Case
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	for i, c := range cases {
		if err := c.validate(); err != nil {
			return nil, errors.Wrapf(err, "%s entry %d", path, i)
		}
	}
	return cases, nil
}
