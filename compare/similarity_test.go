package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarityIdenticalStrings(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("hello", "hello"))
}

func TestSimilarityBothEmpty(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("", ""))
}

func TestSimilarityCompletelyDifferent(t *testing.T) {
	assert.Equal(t, 0.0, Similarity("aaaa", "bbbb"))
}

func TestSimilarityPartialOverlap(t *testing.T) {
	// Whitespace-only differences, the case that motivated fuzzy comparison
	// of scraped HTML bodies.
	a := "<p>paragraph one</p>\n<p>paragraph two</p>\n"
	b := "<p>paragraph one</p>\n\n<p>paragraph two</p>\n"

	ratio := Similarity(a, b)
	assert.Greater(t, ratio, 0.95)
	assert.Less(t, ratio, 1.0)
}

func TestSimilarityIsSymmetric(t *testing.T) {
	a := "the quick brown fox"
	b := "the slow brown fox"
	assert.Equal(t, Similarity(a, b), Similarity(b, a))
}
