package scrapertests

import (
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DoUnknownEndpointTest verifies that the scraper rejects an endpoint it does
// not implement instead of forwarding it blindly.
func DoUnknownEndpointTest(t *T) {
	resp, err := t.env.Scraper.Get("/bad-endpoint", "")
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode,
		"unknown endpoint should return 400, got %d: %s", resp.StatusCode, resp.BodySnippet())
}
