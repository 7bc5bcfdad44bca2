// Package compare performs deep comparison of decoded JSON payloads, the way
// the test suite judges whether the scraper's output matches the Stack
// Exchange API's.
package compare

import (
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// volatileFields are top-level response fields that legitimately differ
// between the cached API response and a live scraper response and are never
// compared.
var volatileFields = []string{"quota_max", "quota_remaining"}

// Options adjusts how two payloads are compared.
type Options struct {
	// IgnoreFields lists dotted field paths to remove from both payloads
	// before comparison, e.g. "items.owner.profile_image". A path segment
	// descends into every element of an array.
	IgnoreFields []string

	// SimilarityThreshold, when nonzero, makes string values compare equal if
	// their similarity ratio is at or above the threshold. Useful for HTML
	// bodies where whitespace differs between the API and the scraped page.
	SimilarityThreshold float64
}

// Diff deep-compares two decoded JSON payloads and returns a human-readable
// description of the differences, or an empty string if they are equivalent.
// Array order is ignored. Volatile quota fields and any configured ignore
// paths are removed from both sides first. Neither input is modified.
func Diff(expected, actual map[string]interface{}, opts Options) string {
	e := StripVolatile(expected)
	a := StripVolatile(actual)
	for _, path := range opts.IgnoreFields {
		prunePath(e, strings.Split(path, "."))
		prunePath(a, strings.Split(path, "."))
	}

	cmpOpts := []cmp.Option{
		cmpopts.SortSlices(lessCanonical),
	}
	if opts.SimilarityThreshold > 0 {
		threshold := opts.SimilarityThreshold
		cmpOpts = append(cmpOpts, cmp.Comparer(func(x, y string) bool {
			return x == y || Similarity(x, y) >= threshold
		}))
	}

	return cmp.Diff(e, a, cmpOpts...)
}

// StripVolatile returns a deep copy of the payload without the volatile
// quota fields.
func StripVolatile(payload map[string]interface{}) map[string]interface{} {
	c := clone(payload)
	for _, field := range volatileFields {
		delete(c, field)
	}
	return c
}

// clone deep-copies a decoded JSON value via a marshal round trip.
func clone(payload map[string]interface{}) map[string]interface{} {
	if payload == nil {
		return nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return payload
	}
	var c map[string]interface{}
	if err := json.Unmarshal(data, &c); err != nil {
		return payload
	}
	return c
}

// prunePath removes the value at a dotted path from a decoded JSON value,
// descending into every element of intermediate arrays.
func prunePath(v interface{}, segments []string) {
	if len(segments) == 0 {
		return
	}
	switch tv := v.(type) {
	case map[string]interface{}:
		if len(segments) == 1 {
			delete(tv, segments[0])
			return
		}
		prunePath(tv[segments[0]], segments[1:])
	case []interface{}:
		for _, item := range tv {
			prunePath(item, segments)
		}
	}
}

// lessCanonical orders arbitrary JSON values by their canonical encoding so
// that array comparisons are order-insensitive.
func lessCanonical(a, b interface{}) bool {
	return canonical(a) < canonical(b)
}

func canonical(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
