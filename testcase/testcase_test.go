package testcase

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCases(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test_cases.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadStringEntries(t *testing.T) {
	path := writeCases(t, `[
		"/collectives?key=value&another_key=another_value",
		"/questions"
	]`)

	cases, err := Load(path, nil)
	require.NoError(t, err)
	require.Len(t, cases, 2)

	assert.Equal(t, "/collectives", cases[0].Path())
	assert.Equal(t, "key=value&another_key=another_value", cases[0].Query())
	assert.Equal(t, "/questions", cases[1].Path())
	assert.Equal(t, "", cases[1].Query())
	assert.False(t, cases[0].ExpectedStatus.IsDefined())
}

func TestLoadObjectEntries(t *testing.T) {
	path := writeCases(t, `[
		{
			"endpoint": "/collectives?order=desc",
			"name": "collectives descending",
			"expectedStatus": 200,
			"ignoreFields": ["items.last_activity_date"],
			"similarityThreshold": 0.95
		}
	]`)

	cases, err := Load(path, nil)
	require.NoError(t, err)
	require.Len(t, cases, 1)

	c := cases[0]
	assert.Equal(t, "collectives descending", c.Title())
	assert.Equal(t, "/collectives", c.Path())
	assert.Equal(t, "order=desc", c.Query())
	assert.Equal(t, 200, c.ExpectedStatus.OrElse(0))
	assert.Equal(t, []string{"items.last_activity_date"}, c.IgnoreFields)
	assert.Equal(t, 0.95, c.SimilarityThreshold)
}

func TestLoadMixedEntries(t *testing.T) {
	path := writeCases(t, `[
		"/questions?pagesize=10",
		{"endpoint": "/tags"}
	]`)

	cases, err := Load(path, nil)
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, "/questions?pagesize=10", cases[0].Title())
	assert.Equal(t, "/tags", cases[1].Title())
}

func TestLoadCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_cases.json")

	cases, err := Load(path, nil)
	require.NoError(t, err)
	assert.Empty(t, cases)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := writeCases(t, `{"/collectives?key=value" // not valid json`)
	_, err := Load(path, nil)
	assert.Error(t, err)
}

func TestLoadRejectsEmptyEndpoint(t *testing.T) {
	path := writeCases(t, `[{"name": "no endpoint"}]`)
	_, err := Load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry 0")
}

func TestLoadRejectsEndpointWithoutLeadingSlash(t *testing.T) {
	path := writeCases(t, `["collectives?order=desc"]`)
	_, err := Load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must begin with /")
}
