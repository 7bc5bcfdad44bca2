package framework

import (
	"fmt"
	"io"
	"strings"
)

// Results accumulates the outcome of every test in a run.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Skips    []TestResult
}

// TestResult is the outcome of a single test.
type TestResult struct {
	TestID     TestID
	Errors     []error
	Skipped    bool
	SkipReason string
}

// OK returns true if no test in the run failed. Skipped tests do not count as
// failures.
func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// TestID identifies a test as a path of subtest names, printed joined with
// slashes. The regex filters match against the printed form.
type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// TestFailure pairs a test ID with one of the errors it reported.
type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

// PrintResults writes a human-readable summary of the run to dest.
func PrintResults(dest io.Writer, results Results) {
	ran := len(results.Tests) - len(results.Skips)
	fmt.Fprintf(dest, "Ran %d tests (%d skipped)\n", ran, len(results.Skips))
	if results.OK() {
		fmt.Fprintln(dest, "All tests passed")
		return
	}
	fmt.Fprintf(dest, "FAILED %d tests:\n", len(results.Failures))
	for _, f := range results.Failures {
		fmt.Fprintf(dest, "  %s\n", f.TestID)
		for _, e := range f.Errors {
			for _, line := range strings.Split(e.Error(), "\n") {
				fmt.Fprintf(dest, "    %s\n", line)
			}
		}
	}
}
