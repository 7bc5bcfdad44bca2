// Package scrapertests contains the contract test suite for the Stack
// Overflow scraper. Each test fetches the same endpoint from the cached Stack
// Exchange API and from the scraper service and compares the payloads.
package scrapertests

import (
	"github.com/DylanKirbs/Stack-Overflow-Scraper-Tests/framework"
)

// RunTestSuite runs the whole suite against the given environment and returns
// the accumulated results.
func RunTestSuite(
	env *Environment,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := &T{context: c, env: env}

		t.Run("unknown endpoint", DoUnknownEndpointTest)
		DoContractTests(t)
	})
}
