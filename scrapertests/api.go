package scrapertests

import (
	"github.com/DylanKirbs/Stack-Overflow-Scraper-Tests/framework"
	"github.com/DylanKirbs/Stack-Overflow-Scraper-Tests/reporter"
	"github.com/DylanKirbs/Stack-Overflow-Scraper-Tests/scraper"
	"github.com/DylanKirbs/Stack-Overflow-Scraper-Tests/stackexchange"
	"github.com/DylanKirbs/Stack-Overflow-Scraper-Tests/testcase"
)

// Environment holds everything a contract test needs: the cached API client
// providing expected payloads, the scraper client providing actual payloads,
// the reporter for artifacts, and the loaded test cases.
type Environment struct {
	API      *stackexchange.Client
	Scraper  *scraper.Client
	Reporter *reporter.Reporter
	Site     string
	Cases    []testcase.Case
}

// T represents a test or subtest in the scraper test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an
// environment that is outside of the Go test runner, with extra features such
// as captured debug logging. Those features are provided by the lower-level
// framework package. To make test assertions, use the assert and require
// packages, passing the *T as if it were a *testing.T.
type T struct {
	context *framework.Context
	env     *Environment
}

// Errorf is called by assertions to log a test failure. It does not cause an
// immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately
// exit. The methods in the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Skip skips the rest of the test.
func (t *T) Skip() {
	t.context.Skip()
}

func (t *T) SkipWithReason(reason string) {
	t.context.SkipWithReason(reason)
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(&T{context: c, env: t.env})
	})
}

// Debug logs debug output for the test, shown according to the verbosity
// options for the run.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

func (t *T) DebugLogger() framework.Logger {
	return t.context.DebugLogger()
}
