package compare

import "github.com/sergi/go-diff/diffmatchpatch"

// Similarity returns the similarity ratio of two strings in [0, 1], computed
// as twice the number of matching characters divided by the total length of
// both strings. Two empty strings are considered identical.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	total := len(a) + len(b)
	if total == 0 {
		return 1
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)

	matched := 0
	for _, d := range diffs {
		if d.Type == diffmatchpatch.DiffEqual {
			matched += len(d.Text)
		}
	}
	return 2 * float64(matched) / float64(total)
}
