// Package framework contains the low-level test harness infrastructure that is
// not specific to scraper testing.
//
// The general model is:
//
// 1. The harness runs a suite of tests against a service under test, outside of
// the Go test runner. There is a notion of a test context which is similar to
// Go's *testing.T, allowing pieces of test logic to be associated with a test
// identifier and to accumulate success/failure results.
//
// 2. Tests can be selected or excluded with regex filters supplied on the
// command line.
//
// 3. Each test has a debug logger whose output is captured and only shown
// according to the verbosity options for the run.
//
// The domain-specific code that knows what is being tested (the scrapertests
// package) is responsible for fetching responses from the service under test
// and from the reference API, and for providing a domain-specific test API on
// top of the test context.
package framework
