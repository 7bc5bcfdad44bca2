package scrapertests

import (
	"fmt"
	"net/http"

	"github.com/stretchr/testify/require"

	"github.com/DylanKirbs/Stack-Overflow-Scraper-Tests/compare"
	"github.com/DylanKirbs/Stack-Overflow-Scraper-Tests/reporter"
	"github.com/DylanKirbs/Stack-Overflow-Scraper-Tests/stackexchange"
	"github.com/DylanKirbs/Stack-Overflow-Scraper-Tests/testcase"
)

// DoContractTests runs one subtest per entry of test_cases.json. Case numbers
// start at 1; they double as the artifact file names under the results
// directory.
func DoContractTests(t *T) {
	for i, tc := range t.env.Cases {
		id := i + 1
		tc := tc
		t.Run(fmt.Sprintf("case %d %s", id, tc.Title()), func(t *T) {
			runContractTest(t, id, tc)
		})
	}
}

func runContractTest(t *T, id int, tc testcase.Case) {
	// Both sides must see the identical query, including the site parameter.
	query := stackexchange.WithSiteParam(tc.Query(), t.env.Site)

	t.Debug("getting scraper response for %s?%s", tc.Path(), query)
	resp, err := t.env.Scraper.Get(tc.Path(), query)
	require.NoError(t, err)

	wantStatus := tc.ExpectedStatus.OrElse(http.StatusOK)
	require.Equal(t, wantStatus, resp.StatusCode,
		"bad response code from scraper: %d: %s", resp.StatusCode, resp.BodySnippet())

	if wantStatus != http.StatusOK {
		// An error case asserts only the status; there is no API payload to
		// compare an error response against.
		return
	}

	actual, err := resp.DecodeJSON()
	require.NoError(t, err, "scraper response was not valid JSON")

	t.Debug("getting API response for %s?%s", tc.Path(), query)
	expected, err := t.env.API.CachedGet(tc.Path(), query)
	require.NoError(t, err)

	diff := compare.Diff(expected, actual, compare.Options{
		IgnoreFields:        tc.IgnoreFields,
		SimilarityThreshold: tc.SimilarityThreshold,
	})

	artifactPath, err := t.env.Reporter.WriteArtifact(id, reporter.Artifact{
		Diff:    diff,
		Cached:  compare.StripVolatile(expected),
		Scraper: actual,
	})
	if err != nil {
		t.Debug("could not write result artifact: %s", err)
	} else {
		t.Debug("results written to %s", artifactPath)
	}

	if diff != "" {
		t.Errorf("differences found between API and scraper responses:\n%s", diff)
	}
}
